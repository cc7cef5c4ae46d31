package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cardFilePattern matches the files a run writes into the output directory
const cardFilePattern = "*_anki_sentences.*"

// ErrNothingToArchive is returned when the output directory holds no card files
var ErrNothingToArchive = errors.New("no card files to archive")

// ArchiveCards moves the generated card files of outputDir into a
// timestamped directory below outputDir/archive and returns its path.
func ArchiveCards(outputDir string) (string, error) {
	// Check if output directory exists
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return "", fmt.Errorf("output directory does not exist: %s", outputDir)
	}

	files, err := filepath.Glob(filepath.Join(outputDir, cardFilePattern))
	if err != nil {
		return "", fmt.Errorf("failed to list card files: %w", err)
	}
	if len(files) == 0 {
		return "", ErrNothingToArchive
	}

	// Generate timestamp
	archiveDir := filepath.Join(outputDir, "archive")
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("copypaste-%s", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("copypaste-%s", timestamp))
	}

	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	for _, file := range files {
		target := filepath.Join(archivePath, filepath.Base(file))
		if err := os.Rename(file, target); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", filepath.Base(file), err)
		}
	}

	fmt.Printf("Archived %d card files to: %s\n", len(files), archivePath)
	return archivePath, nil
}
