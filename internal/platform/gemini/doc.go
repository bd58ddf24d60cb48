// Package gemini provides the LLM-backed narrative generator using
// Google's Gemini API. It implements the narrative.Generator interface
// with retry logic for transient API failures.
package gemini
