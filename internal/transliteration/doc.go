// Package transliteration converts Chinese text to simplified characters and
// tone-marked pinyin. It offers an offline dictionary backend and OpenAI or
// Gemini backed services, plus decorators for caching and circuit breaking.
package transliteration
