// Package models lists the OpenAI chat models that can serve as the
// openai transliteration provider for the current API key.
package models
