// Package llm implements the resume parser, job analyzer and resume tailor on top of an
// OpenAI-compatible chat completion API. Completers can be wrapped with retries and a
// Redis response cache.
package llm
