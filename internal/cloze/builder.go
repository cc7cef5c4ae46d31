package cloze

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/hanzicloze/internal/anki"
	"codeberg.org/snonux/hanzicloze/internal/transliteration"
	"codeberg.org/snonux/hanzicloze/internal/vocablog"
)

// Rejection describes a log line that could not become a card
type Rejection struct {
	Position int // Position of the line within the built slice
	Line     string
	Err      error
}

// Batch is the outcome of building one run's cards
type Batch struct {
	Cards    []anki.Card
	Rejected []Rejection
}

// Builder builds cloze cards through a transliteration service
type Builder struct {
	service     transliteration.Service
	tag         string
	concurrency int
	logger      *slog.Logger
}

// NewBuilder creates a builder that stamps every card with tag
func NewBuilder(service transliteration.Service, tag string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		service: service,
		tag:     tag,
		logger:  logger,
	}
}

// SetConcurrency bounds the number of entries transliterated at once.
// Zero or less means unbounded.
func (b *Builder) SetConcurrency(n int) {
	b.concurrency = n
}

// Build turns lines into cards, one per well-formed line, in input order.
// Blank lines are skipped and malformed lines are rejected without stopping
// the batch. Any transliteration error fails the whole batch.
func (b *Builder) Build(ctx context.Context, lines []string) (Batch, error) {
	var batch Batch
	entries := make([]vocablog.Entry, 0, len(lines))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := vocablog.ParseEntry(line)
		if err != nil {
			b.logger.Warn("Rejecting vocabulary line", "position", i, "line", line, "error", err)
			batch.Rejected = append(batch.Rejected, Rejection{Position: i, Line: line, Err: err})
			continue
		}
		entries = append(entries, entry)
	}

	cards := make([]anki.Card, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	if b.concurrency > 0 {
		g.SetLimit(b.concurrency)
	}

	for i, entry := range entries {
		g.Go(func() error {
			card, err := b.buildCard(gctx, entry)
			if err != nil {
				return fmt.Errorf("failed to build card for %q: %w", entry.Word, err)
			}
			cards[i] = card
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Batch{Rejected: batch.Rejected}, err
	}

	batch.Cards = cards
	b.logger.Debug("Built cards", "cards", len(cards), "rejected", len(batch.Rejected), "backend", b.service.Name())
	return batch, nil
}

func (b *Builder) buildCard(ctx context.Context, entry vocablog.Entry) (anki.Card, error) {
	sentenceSegments, err := b.transcribe(ctx, entry.Sentence)
	if err != nil {
		return anki.Card{}, fmt.Errorf("sentence: %w", err)
	}

	wordSegments, err := b.transcribe(ctx, entry.Word)
	if err != nil {
		return anki.Card{}, fmt.Errorf("word: %w", err)
	}

	return anki.Card{
		Word:        entry.Word,
		Sentence:    entry.Sentence,
		Text:        Sentence(entry.Sentence, entry.Word),
		Pinyin:      Pinyin(sentenceSegments, Token(wordSegments)),
		Translation: entry.Translation,
		Tag:         b.tag,
	}, nil
}

// transcribe simplifies text before asking for its pinyin
func (b *Builder) transcribe(ctx context.Context, text string) ([]string, error) {
	simplified, err := b.service.Simplify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("simplify: %w", err)
	}

	segments, err := b.service.Transcribe(ctx, simplified)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	return segments, nil
}
