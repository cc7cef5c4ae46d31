package anki

import (
	"strings"
)

// RecordSeparator separates the fields of an exported record
const RecordSeparator = " | "

// Card represents a single cloze flashcard
type Card struct {
	Word        string // The vocabulary word hidden by the cloze
	Sentence    string // The example sentence as written in the log
	Text        string // Sentence with cloze markup
	Pinyin      string // Pinyin of the sentence with cloze markup
	Translation string // Translation of the sentence
	Tag         string // Run tag shared by all cards of one run
}

// Record renders the card as text | pinyin | translation | tag
func (c Card) Record() string {
	return strings.Join([]string{c.Text, c.Pinyin, c.Translation, c.Tag}, RecordSeparator)
}

// HasSentenceCloze reports whether the sentence field carries a cloze
func (c Card) HasSentenceCloze() bool {
	return strings.Contains(c.Text, "{{c1::")
}

// HasPinyinCloze reports whether the pinyin field carries a cloze
func (c Card) HasPinyinCloze() bool {
	return strings.Contains(c.Pinyin, "{{c1::")
}

// Generator collects cards for export
type Generator struct {
	cards []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator() *Generator {
	return &Generator{
		cards: make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddCards adds cards in order
func (g *Generator) AddCards(cards []Card) {
	g.cards = append(g.cards, cards...)
}

// GetCards returns the collected cards
func (g *Generator) GetCards() []Card {
	return g.cards
}

// Records renders every card, one record per line, in insertion order
func (g *Generator) Records() []string {
	records := make([]string, 0, len(g.cards))
	for _, card := range g.cards {
		records = append(records, card.Record())
	}
	return records
}

// GenerateAPKG creates an .apkg package with a cloze note per card and
// returns how many cards had no cloze to export.
func (g *Generator) GenerateAPKG(outputPath, deckName string) (int, error) {
	apkgGen := NewAPKGGenerator(deckName)
	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}
	return apkgGen.Skipped(), apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withSentenceCloze, withPinyinCloze int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.HasSentenceCloze() {
			withSentenceCloze++
		}
		if card.HasPinyinCloze() {
			withPinyinCloze++
		}
	}

	return
}
