// Package rendering lays out resume data as A4 PDF documents with go-pdf/fpdf.
package rendering
