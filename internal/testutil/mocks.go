package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
)

// MockTransliterator is a deterministic transliteration service. Unknown
// inputs simplify to themselves and transcribe to one segment per
// non-space rune.
type MockTransliterator struct {
	Simplified map[string]string
	Segments   map[string][]string
	Errors     map[string]error
	// Delays holds per-input latencies to shuffle completion order
	Delays map[string]time.Duration

	mu    sync.Mutex
	calls []string
}

// NewMockTransliterator creates an empty mock
func NewMockTransliterator() *MockTransliterator {
	return &MockTransliterator{
		Simplified: make(map[string]string),
		Segments:   make(map[string][]string),
		Errors:     make(map[string]error),
		Delays:     make(map[string]time.Duration),
	}
}

// Name returns the mock backend name
func (m *MockTransliterator) Name() string {
	return "mock"
}

// Simplify mocks script simplification
func (m *MockTransliterator) Simplify(ctx context.Context, text string) (string, error) {
	if err := m.enter(ctx, "Simplify", text); err != nil {
		return "", err
	}

	if simplified, ok := m.Simplified[text]; ok {
		return simplified, nil
	}
	return text, nil
}

// Transcribe mocks pinyin transcription
func (m *MockTransliterator) Transcribe(ctx context.Context, text string) ([]string, error) {
	if err := m.enter(ctx, "Transcribe", text); err != nil {
		return nil, err
	}

	if segments, ok := m.Segments[text]; ok {
		out := make([]string, len(segments))
		copy(out, segments)
		return out, nil
	}

	var segments []string
	for _, r := range text {
		if !unicode.IsSpace(r) {
			segments = append(segments, string(r))
		}
	}
	return segments, nil
}

// Calls returns the recorded calls in the order they happened
func (m *MockTransliterator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many calls mention text
func (m *MockTransliterator) CallCount(text string) int {
	count := 0
	for _, call := range m.Calls() {
		if strings.HasSuffix(call, ": "+text) {
			count++
		}
	}
	return count
}

func (m *MockTransliterator) enter(ctx context.Context, method, text string) error {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("%s: %s", method, text))
	m.mu.Unlock()

	if delay, ok := m.Delays[text]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err, ok := m.Errors[text]; ok {
		return err
	}
	return nil
}

// MockCompleter mocks a language model completer
type MockCompleter struct {
	Replies map[string]string
	Err     error

	mu    sync.Mutex
	Calls []string
}

// Complete returns the reply registered for input
func (m *MockCompleter) Complete(ctx context.Context, instruction, input string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, input)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if reply, ok := m.Replies[input]; ok {
		return reply, nil
	}
	return "", nil
}
