package transliteration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/longbridgeapp/opencc"
	"github.com/mozillazg/go-pinyin"
)

// Local transliterates with bundled OpenCC and pinyin dictionaries. It needs
// no network access and produces one pinyin segment per character.
type Local struct {
	mu        sync.Mutex
	converter *opencc.OpenCC
	args      pinyin.Args
}

// NewLocal creates the dictionary backed service
func NewLocal() (*Local, error) {
	converter, err := opencc.New("t2s")
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenCC dictionary: %w", err)
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Tone

	return &Local{
		converter: converter,
		args:      args,
	}, nil
}

// Name returns the backend name
func (l *Local) Name() string {
	return "local"
}

// Simplify converts traditional characters to simplified ones
func (l *Local) Simplify(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	simplified, err := l.converter.Convert(text)
	if err != nil {
		return "", fmt.Errorf("failed to simplify %q: %w", text, err)
	}
	return simplified, nil
}

// Transcribe returns one tone-marked syllable per Han character. Closing
// punctuation sticks to the syllable before it ("suì？"). Other runs of
// non-space characters, such as latin words or opening quotes, are kept as
// single segments.
func (l *Local) Transcribe(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var segments []string
	var han, other strings.Builder

	flushHan := func() {
		if han.Len() > 0 {
			segments = append(segments, pinyin.LazyPinyin(han.String(), l.args)...)
			han.Reset()
		}
	}
	flushOther := func() {
		if other.Len() == 0 {
			return
		}
		run := other.String()
		if n := len(segments); n > 0 && isTrailingPunct(run) {
			segments[n-1] += run
		} else {
			segments = append(segments, run)
		}
		other.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flushOther()
			han.WriteRune(r)
		case unicode.IsSpace(r):
			flushHan()
			flushOther()
		default:
			flushHan()
			other.WriteRune(r)
		}
	}
	flushHan()
	flushOther()

	return segments, nil
}

// isTrailingPunct reports whether run is punctuation that closes what comes
// before it rather than opening what follows.
func isTrailingPunct(run string) bool {
	for _, r := range run {
		if !unicode.IsPunct(r) || unicode.In(r, unicode.Ps, unicode.Pi) {
			return false
		}
	}
	return true
}
