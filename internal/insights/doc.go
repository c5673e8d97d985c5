// Package insights turns a scraped game into a short narrative note.
// Two generators implement the same interface: one prompts an
// OpenAI-compatible chat completions endpoint, the other derives
// highlights locally from the stat lines. The pipeline picks the LLM
// generator when an API key is configured and falls back to the local
// one otherwise, so the insights table is populated either way.
package insights
