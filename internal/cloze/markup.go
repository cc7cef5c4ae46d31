package cloze

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Wrap returns term as the first cloze deletion
func Wrap(term string) string {
	return "{{c1::" + term + "}}"
}

// Sentence hides the first occurrence of word in sentence. The sentence is
// returned unchanged when word does not occur in it.
func Sentence(sentence, word string) string {
	if word == "" || !strings.Contains(sentence, word) {
		return sentence
	}
	return strings.Replace(sentence, word, Wrap(word), 1)
}

// Pinyin joins segments with single spaces, hiding the first run of
// consecutive segments that spells token. Transcriptions may split a word
// into one segment per syllable, so a matched run is merged into a single
// cloze ("jīn nián" becomes "{{c1::jīnnián}}"). Punctuation trailing the run
// stays outside the cloze. Both sides are compared in NFC so composed and
// decomposed tone marks match.
func Pinyin(segments []string, token string) string {
	token = norm.NFC.String(token)

	clean := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = norm.NFC.String(strings.TrimSpace(segment))
		if segment != "" {
			clean = append(clean, segment)
		}
	}

	out := make([]string, 0, len(clean))
	hidden := false
	for i := 0; i < len(clean); i++ {
		if !hidden && token != "" {
			if last, tail, ok := matchRun(clean, i, token); ok {
				out = append(out, Wrap(token)+tail)
				i = last
				hidden = true
				continue
			}
		}
		out = append(out, clean[i])
	}

	return strings.TrimSpace(strings.Join(out, " "))
}

// matchRun reports whether the segments from start on spell token. It returns
// the index of the run's last segment and that segment's trailing punctuation.
// Punctuation inside a run ends it.
func matchRun(segments []string, start int, token string) (int, string, bool) {
	var run strings.Builder
	for j := start; j < len(segments); j++ {
		core, tail := splitTrailingPunct(segments[j])
		run.WriteString(core)

		spelled := run.String()
		if spelled == token {
			return j, tail, true
		}
		if tail != "" || !strings.HasPrefix(token, spelled) {
			return 0, "", false
		}
	}
	return 0, "", false
}

// splitTrailingPunct separates trailing punctuation such as "？" in "suì？"
func splitTrailingPunct(segment string) (core, tail string) {
	core = strings.TrimRightFunc(segment, unicode.IsPunct)
	return core, segment[len(core):]
}

// Token collapses the segments of a transcribed word into one syllable group
func Token(segments []string) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteString(strings.TrimSpace(segment))
	}
	return b.String()
}
