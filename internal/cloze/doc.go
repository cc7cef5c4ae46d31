// Package cloze turns vocabulary log lines into cloze flashcards.
//
// Each line contributes one card: the first occurrence of the word in its
// sentence is wrapped in {{c1::...}} and so is the matching syllable group
// of the sentence pinyin. Cards are built concurrently but are returned in
// the order of the input lines, and a single failing transliteration call
// fails the whole batch.
package cloze
