// Package narrative turns a computed daily energy reading into prose.
//
// The Generator interface is the boundary between the score pipeline and
// whatever produces the text: the deterministic TemplateGenerator here,
// or the LLM-backed implementation in platform/gemini. The reading
// itself is always computed deterministically; narration only rephrases
// it and never feeds back into scores.
package narrative
