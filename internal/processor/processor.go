package processor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/hanzicloze/internal"
	"codeberg.org/snonux/hanzicloze/internal/anki"
	"codeberg.org/snonux/hanzicloze/internal/cli"
	"codeberg.org/snonux/hanzicloze/internal/cloze"
	"codeberg.org/snonux/hanzicloze/internal/transliteration"
	"codeberg.org/snonux/hanzicloze/internal/vocablog"
)

// Result summarizes one run
type Result struct {
	Tag            string
	LoadStatus     vocablog.LoadStatus
	NewEntries     int
	Cards          []anki.Card
	Rejected       []cloze.Rejection
	OutputPath     string // Empty when no card file was written
	APKGPath       string // Empty when no package was written
	MarkerAdvanced bool
}

// Processor handles the main card generation logic
type Processor struct {
	flags   *cli.Flags
	service transliteration.Service
	logger  *slog.Logger
	out     io.Writer
	now     func() time.Time
}

// NewProcessor creates a new card processor
func NewProcessor(flags *cli.Flags, service transliteration.Service, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		flags:   flags,
		service: service,
		logger:  logger,
		out:     os.Stdout,
		now:     time.Now,
	}
}

// SetOutput redirects progress and summary output
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// SetClock replaces the clock the run tag is derived from
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// Run processes every entry added to the log since the last run. The end
// marker only moves once the card file has been written, so a failed run
// picks up the same entries next time.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	result := &Result{Tag: internal.DateTag(p.now())}

	log := vocablog.NewFile(p.flags.InputFile, p.logger)
	loaded := log.Load()
	result.LoadStatus = loaded.Status
	if !loaded.OK() {
		fmt.Fprintf(p.out, "Could not load %s (%s), nothing to do\n", log.Path(), loaded.Status)
		return result, nil
	}

	if cursor := vocablog.LocateCursor(loaded.Lines); cursor.Found {
		p.logger.Debug("Resuming after end marker",
			"path", log.Path(),
			"line", cursor.Index+1,
			"following_lines", cursor.Pending(len(loaded.Lines)))
	} else {
		p.logger.Info("No end marker found, treating the whole log as new", "path", log.Path())
	}

	entries := vocablog.NewEntries(loaded.Lines)
	result.NewEntries = len(entries)
	fmt.Fprintf(p.out, "Found %d new entries in %s\n", len(entries), log.Path())

	builder := cloze.NewBuilder(p.service, result.Tag, p.logger)
	builder.SetConcurrency(p.flags.Concurrency)

	batch, err := builder.Build(ctx, entries)
	result.Rejected = batch.Rejected
	if err != nil {
		return result, fmt.Errorf("failed to build cards: %w", err)
	}
	result.Cards = batch.Cards

	gen := anki.NewGenerator()
	gen.AddCards(batch.Cards)

	if p.flags.DryRun {
		for _, record := range gen.Records() {
			fmt.Fprintln(p.out, record)
		}
		p.printSummary(result, gen)
		return result, nil
	}

	if len(batch.Cards) > 0 {
		outputPath, err := p.writeCards(result.Tag, gen)
		if err != nil {
			return result, err
		}
		result.OutputPath = outputPath

		if p.flags.GenerateAPKG {
			result.APKGPath = p.writePackage(result.Tag, gen)
		}
	} else {
		fmt.Fprintln(p.out, "No new flashcards found.")
	}

	if err := log.Stamp(loaded.Lines); err != nil {
		return result, fmt.Errorf("failed to update end marker: %w", err)
	}
	result.MarkerAdvanced = true

	p.printSummary(result, gen)
	return result, nil
}

// writeCards writes the card records next to earlier runs' files
func (p *Processor) writeCards(tag string, gen *anki.Generator) (string, error) {
	outputPath := filepath.Join(p.flags.OutputDir, internal.OutputFileName(tag, "csv"))

	if err := vocablog.WriteLines(outputPath, gen.Records()); err != nil {
		p.logger.Error("Failed to write cards", "path", outputPath, "error", err)
		return "", fmt.Errorf("failed to write cards: %w", err)
	}

	p.logger.Info("Cards written", "path", outputPath, "cards", len(gen.GetCards()))
	return outputPath, nil
}

// writePackage writes the optional .apkg. A failure only produces a warning
// because the card file already holds every card.
func (p *Processor) writePackage(tag string, gen *anki.Generator) string {
	apkgPath := filepath.Join(p.flags.OutputDir, internal.OutputFileName(tag, "apkg"))

	skipped, err := gen.GenerateAPKG(apkgPath, p.flags.DeckName)
	if err != nil {
		p.logger.Warn("Failed to generate Anki package", "path", apkgPath, "error", err)
		fmt.Fprintf(p.out, "Warning: Failed to generate Anki package: %v\n", err)
		return ""
	}
	if skipped > 0 {
		p.logger.Warn("Cards without cloze left out of the package", "skipped", skipped)
	}

	return apkgPath
}

func (p *Processor) printSummary(result *Result, gen *anki.Generator) {
	total, withSentenceCloze, withPinyinCloze := gen.Stats()

	fmt.Fprintf(p.out, "\n=== Run Summary (%s) ===\n", result.Tag)
	fmt.Fprintf(p.out, "New entries: %d\n", result.NewEntries)
	fmt.Fprintf(p.out, "Cards: %d (%d with sentence cloze, %d with pinyin cloze)\n",
		total, withSentenceCloze, withPinyinCloze)
	if len(result.Rejected) > 0 {
		fmt.Fprintf(p.out, "Rejected lines: %d\n", len(result.Rejected))
	}
	if result.OutputPath != "" {
		fmt.Fprintf(p.out, "Cards file: %s\n", result.OutputPath)
	}
	if result.APKGPath != "" {
		fmt.Fprintf(p.out, "Anki package: %s\n", result.APKGPath)
	}
	if p.flags.DryRun {
		fmt.Fprintln(p.out, "Dry run: nothing written")
	} else {
		fmt.Fprintf(p.out, "End marker advanced: %t\n", result.MarkerAdvanced)
	}
	fmt.Fprintf(p.out, "================================\n")
}
