package internal

import (
	"fmt"
	"time"
)

// DateTag creates the run-scoped tag embedded into every card of one run.
// Format: copypaste_YYYYMMDD_epochMillis
func DateTag(now time.Time) string {
	return fmt.Sprintf("copypaste_%s_%d", now.Format("20060102"), now.UnixMilli())
}

// OutputFileName returns the name of the dated output file for a tag and
// extension (without the leading dot).
func OutputFileName(tag, ext string) string {
	return fmt.Sprintf("%s_anki_sentences.%s", tag, ext)
}
