package archive

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"codeberg.org/snonux/hanzicloze/internal/testutil"
)

func TestArchiveCards(t *testing.T) {
	outputDir := t.TempDir()

	cardFiles := []string{
		"copypaste_20240305_1709670600000_anki_sentences.csv",
		"copypaste_20240305_1709670600000_anki_sentences.apkg",
		"copypaste_20240306_1709757000000_anki_sentences.csv",
	}
	for _, name := range cardFiles {
		testutil.CreateTestFile(t, filepath.Join(outputDir, name), []byte("cards"))
	}

	// Unrelated files stay where they are
	otherFile := filepath.Join(outputDir, "notes.txt")
	testutil.CreateTestFile(t, otherFile, []byte("keep me"))

	archivePath, err := ArchiveCards(outputDir)
	if err != nil {
		t.Fatalf("ArchiveCards failed: %v", err)
	}

	if filepath.Dir(archivePath) != filepath.Join(outputDir, "archive") {
		t.Errorf("Unexpected archive location: %s", archivePath)
	}

	// Verify the archived directory name starts with "copypaste-"
	if !strings.HasPrefix(filepath.Base(archivePath), "copypaste-") {
		t.Errorf("Archived directory name doesn't start with 'copypaste-': %s", archivePath)
	}

	archived := testutil.ListFiles(t, archivePath)
	sort.Strings(archived)
	want := append([]string(nil), cardFiles...)
	sort.Strings(want)
	if strings.Join(archived, ",") != strings.Join(want, ",") {
		t.Errorf("Archived files = %v, want %v", archived, want)
	}

	remaining := testutil.ListFiles(t, outputDir)
	if len(remaining) != 1 || remaining[0] != "notes.txt" {
		t.Errorf("Expected only notes.txt to remain, got %v", remaining)
	}
}

func TestArchiveCards_NonExistentDirectory(t *testing.T) {
	nonExistentDir := filepath.Join(t.TempDir(), "nonexistent")

	_, err := ArchiveCards(nonExistentDir)
	if err == nil {
		t.Fatal("Expected error for non-existent directory")
	}

	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveCards_NothingToArchive(t *testing.T) {
	outputDir := t.TempDir()

	_, err := ArchiveCards(outputDir)
	if !errors.Is(err, ErrNothingToArchive) {
		t.Errorf("Expected ErrNothingToArchive, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "archive")); !os.IsNotExist(err) {
		t.Error("Archive directory should not be created when there is nothing to archive")
	}
}

func TestArchiveCards_MultipleArchives(t *testing.T) {
	outputDir := t.TempDir()

	// Archive twice to ensure unique directories
	for i := 0; i < 2; i++ {
		name := filepath.Join(outputDir, "copypaste_20240305_1_anki_sentences.csv")
		testutil.CreateTestFile(t, name, []byte("cards"))

		if _, err := ArchiveCards(outputDir); err != nil {
			t.Fatalf("ArchiveCards failed on iteration %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Join(outputDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries in archive directory, got %d", len(entries))
	}
}
