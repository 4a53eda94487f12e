// Package extraction reads plain text out of uploaded PDF and Word documents.
package extraction
