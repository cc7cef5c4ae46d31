package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// extractCollection unpacks collection.anki2 from an .apkg into a temp file
func extractCollection(t *testing.T, apkgPath string) string {
	t.Helper()

	reader, err := zip.OpenReader(apkgPath)
	if err != nil {
		t.Fatalf("Failed to open apkg: %v", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name != "collection.anki2" {
			continue
		}

		src, err := file.Open()
		if err != nil {
			t.Fatalf("Failed to open collection: %v", err)
		}
		defer src.Close()

		dbPath := filepath.Join(t.TempDir(), "collection.anki2")
		dst, err := os.Create(dbPath)
		if err != nil {
			t.Fatalf("Failed to create collection copy: %v", err)
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			t.Fatalf("Failed to copy collection: %v", err)
		}
		return dbPath
	}

	t.Fatal("collection.anki2 not found in package")
	return ""
}

func countRows(t *testing.T, apkgPath, table string) int {
	t.Helper()

	db, err := sql.Open("sqlite3", extractCollection(t, apkgPath))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
}

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen == nil {
		t.Fatal("NewAPKGGenerator returned nil")
	}

	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}

	if len(gen.cards) != 0 {
		t.Errorf("Expected empty cards slice, got %d cards", len(gen.cards))
	}

	if gen.modelID == gen.deckID {
		t.Error("Expected distinct model and deck IDs")
	}
}

func TestAPKGAddCardSkipsCardsWithoutCloze(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	for _, card := range sampleCards() {
		gen.AddCard(card)
	}

	if len(gen.cards) != 1 {
		t.Errorf("Expected 1 card, got %d", len(gen.cards))
	}
	if gen.Skipped() != 1 {
		t.Errorf("Expected 1 skipped card, got %d", gen.Skipped())
	}
}

func TestGenerateAPKG(t *testing.T) {
	gen := NewAPKGGenerator("Chinese Sentences")
	card := sampleCards()[0]
	gen.AddCard(card)

	outputPath := filepath.Join(t.TempDir(), "test.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG failed: %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	names := make(map[string]bool)
	for _, file := range reader.File {
		names[file.Name] = true
	}
	reader.Close()

	for _, name := range []string{"collection.anki2", "media"} {
		if !names[name] {
			t.Errorf("Expected %s in package", name)
		}
	}

	db, err := sql.Open("sqlite3", extractCollection(t, outputPath))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var flds, sfld, tags, guid string
	var csum int64
	err = db.QueryRow("SELECT flds, sfld, tags, guid, csum FROM notes").Scan(&flds, &sfld, &tags, &guid, &csum)
	if err != nil {
		t.Fatalf("Failed to query note: %v", err)
	}

	fields := strings.Split(flds, "\x1f")
	if len(fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(fields))
	}
	if fields[0] != card.Text || fields[1] != card.Pinyin || fields[2] != card.Translation {
		t.Errorf("Unexpected fields: %q", fields)
	}
	if sfld != card.Text {
		t.Errorf("Expected sort field %q, got %q", card.Text, sfld)
	}
	if strings.TrimSpace(tags) != card.Tag {
		t.Errorf("Expected tag %q, got %q", card.Tag, tags)
	}
	if guid == "" {
		t.Error("Expected a note GUID")
	}
	if csum != checksum(card.Text) {
		t.Errorf("Expected checksum %d, got %d", checksum(card.Text), csum)
	}

	var ord int
	if err := db.QueryRow("SELECT ord FROM cards").Scan(&ord); err != nil {
		t.Fatalf("Failed to query card: %v", err)
	}
	if ord != 0 {
		t.Errorf("Expected card ord 0, got %d", ord)
	}

	var modelsJSON string
	if err := db.QueryRow("SELECT models FROM col").Scan(&modelsJSON); err != nil {
		t.Fatalf("Failed to query models: %v", err)
	}
	var models map[string]struct {
		Type int `json:"type"`
		Flds []struct {
			Name string `json:"name"`
		} `json:"flds"`
	}
	if err := json.Unmarshal([]byte(modelsJSON), &models); err != nil {
		t.Fatalf("Failed to decode models: %v", err)
	}
	model, ok := models[strconv.FormatInt(gen.modelID, 10)]
	if !ok {
		t.Fatal("Expected note type in collection")
	}
	if model.Type != modelTypeCloze {
		t.Errorf("Expected cloze note type, got type %d", model.Type)
	}
	if len(model.Flds) != 3 || model.Flds[0].Name != "Text" {
		t.Errorf("Unexpected note type fields: %+v", model.Flds)
	}
}

func TestGenerateAPKGEmpty(t *testing.T) {
	gen := NewAPKGGenerator("Empty")

	outputPath := filepath.Join(t.TempDir(), "empty.apkg")
	if err := gen.GenerateAPKG(outputPath); err != nil {
		t.Fatalf("GenerateAPKG failed: %v", err)
	}

	if got := countRows(t, outputPath, "cards"); got != 0 {
		t.Errorf("Expected 0 cards, got %d", got)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"你好", "你好"},
		{"<b>你</b>好", "你好"},
		{"  {{c1::幾}} ", "{{c1::幾}}"},
	}

	for _, tt := range tests {
		if got := stripHTML(tt.input); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestChecksum(t *testing.T) {
	// sha1("abc") = a9993e36...
	if got := checksum("abc"); got != 0xa9993e36 {
		t.Errorf("checksum(abc) = %x, want a9993e36", got)
	}
}
