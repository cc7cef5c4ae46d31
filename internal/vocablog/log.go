package vocablog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// DefaultFileName is the log file looked up in the working directory.
const DefaultFileName = "sentence_flashcards.csv"

// LoadStatus describes how loading the log went
type LoadStatus int

const (
	// Loaded means the file was read, possibly with zero lines
	Loaded LoadStatus = iota
	// Missing means the file does not exist
	Missing
	// Failed means the file exists but could not be read
	Failed
)

func (s LoadStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the outcome of reading the log. Lines is empty unless
// Status is Loaded.
type LoadResult struct {
	Lines  []string
	Status LoadStatus
	Err    error
}

// OK reports whether the log was read.
func (r LoadResult) OK() bool {
	return r.Status == Loaded
}

// File is the vocabulary log on disk
type File struct {
	path   string
	logger *slog.Logger
}

// NewFile creates a handle for the log at path
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{path: path, logger: logger}
}

// Path returns the location of the log
func (f *File) Path() string {
	return f.path
}

// Load reads the whole log into lines. Read failures are logged and
// reported through the result instead of an error.
func (f *File) Load() LoadResult {
	content, err := os.ReadFile(f.path)
	if err != nil {
		status := Failed
		if errors.Is(err, fs.ErrNotExist) {
			status = Missing
		}
		f.logger.Error("failed to read vocabulary log",
			"path", f.path,
			"status", status.String(),
			"error", err)
		return LoadResult{Status: status, Err: fmt.Errorf("failed to read vocabulary log: %w", err)}
	}

	lines := splitLines(string(content))
	f.logger.Debug("vocabulary log loaded", "path", f.path, "lines", len(lines))

	return LoadResult{Lines: lines, Status: Loaded}
}

// Stamp restamps the marker on the given lines and writes them over the log.
func (f *File) Stamp(lines []string) error {
	cursor := LocateCursor(lines)
	if cursor.Duplicates > 0 {
		f.logger.Warn("removing duplicate end markers",
			"path", f.path,
			"duplicates", cursor.Duplicates)
	}

	if err := WriteLines(f.path, Restamp(lines)); err != nil {
		f.logger.Error("failed to stamp end marker", "path", f.path, "error", err)
		return err
	}

	f.logger.Info("end marker stamped", "path", f.path)
	return nil
}

// splitLines splits content at newlines. Unlike strings.Split on "\n" it
// also removes the carriage return of CRLF files. A final newline yields a
// trailing empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
