// Package config loads and validates the resume processor configuration.
//
// Settings come from an optional YAML file, a .env file and the process
// environment. Every setting can be supplied through the environment
// variable names the service has always used (OPENAI_API_KEY, COSMOS_HOST,
// BLOB_CONNECTION_STRING, ...).
package config
