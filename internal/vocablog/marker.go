package vocablog

import "strings"

// MarkerLine is the line stamped after the last converted entry.
const MarkerLine = "end||"

const markerKeyword = "end"

// IsMarker reports whether a line is an end marker, i.e. its first three
// characters spell "end". A vocabulary line such as "endless|..." matches
// as well and is treated as a marker everywhere, including by Restamp.
func IsMarker(line string) bool {
	return strings.HasPrefix(line, markerKeyword)
}

// FindMarker returns the index of the first marker line or -1.
func FindMarker(lines []string) int {
	for i, line := range lines {
		if IsMarker(line) {
			return i
		}
	}
	return -1
}

// Cursor is the parsed resume position of a log
type Cursor struct {
	// Index of the first marker line, -1 when there is none
	Index int
	// Found is false when the log has never been stamped
	Found bool
	// Duplicates counts marker lines after the first one
	Duplicates int
}

// LocateCursor parses the resume position from a sequence of lines.
func LocateCursor(lines []string) Cursor {
	cursor := Cursor{Index: -1}
	for i, line := range lines {
		if !IsMarker(line) {
			continue
		}
		if cursor.Found {
			cursor.Duplicates++
			continue
		}
		cursor.Index = i
		cursor.Found = true
	}
	return cursor
}

// Pending returns how many lines follow the cursor in a sequence of n lines.
func (c Cursor) Pending(n int) int {
	if c.Index >= n {
		return 0
	}
	return n - c.Index - 1
}

// Body strips the header line and a blank trailing line from the raw log.
func Body(lines []string) []string {
	lines = dropTrailingBlank(lines)
	if len(lines) == 0 {
		return nil
	}
	return lines[1:]
}

// SelectNew returns the lines after the marker. Without a marker nothing has
// been converted yet, so every line is new.
func SelectNew(body []string) []string {
	index := FindMarker(body)
	return body[index+1:]
}

// NewEntries composes Body and SelectNew on the raw log lines.
func NewEntries(lines []string) []string {
	return SelectNew(Body(lines))
}

// Restamp removes every marker line, not only the first, drops a blank
// trailing line and appends a fresh marker followed by an empty line, so the
// joined log ends with a newline and holds exactly one marker. Lines that
// merely start with "end" are removed too. The input slice is not modified.
func Restamp(lines []string) []string {
	lines = dropTrailingBlank(lines)

	stamped := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		if IsMarker(line) {
			continue
		}
		stamped = append(stamped, line)
	}

	return append(stamped, MarkerLine, "")
}

func dropTrailingBlank(lines []string) []string {
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		return lines[:n-1]
	}
	return lines
}
