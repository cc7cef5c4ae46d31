package transliteration

import (
	"context"
	"fmt"
	"strings"
)

// Completer sends an instruction and an input text to a language model and
// returns its plain text reply.
type Completer interface {
	Complete(ctx context.Context, instruction, input string) (string, error)
}

const simplifyInstruction = `You convert Chinese text from traditional to simplified characters.
Reply with the converted text only. Keep punctuation, spacing and any non-Chinese text exactly as given.
Do not add explanations, quotes or pinyin.`

const transcribeInstruction = `You transcribe simplified Chinese text into Hanyu Pinyin with tone marks (for example "nǐ hǎo").
Write one segment per word, separated by single spaces, in the same order as the text.
Write the syllables of a multi-character word together without spaces (for example "jīnnián").
Attach punctuation to the segment before it without a space (for example "suì？"). Reply with the pinyin only, on a single line, lower case, no explanations.`

// LLM implements Service on top of a language model
type LLM struct {
	name      string
	completer Completer
}

// NewLLM creates a language model backed service
func NewLLM(name string, completer Completer) *LLM {
	return &LLM{
		name:      name,
		completer: completer,
	}
}

// Name returns the backend name
func (l *LLM) Name() string {
	return l.name
}

// Simplify asks the model for the simplified form of text
func (l *LLM) Simplify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	reply, err := l.completer.Complete(ctx, simplifyInstruction, text)
	if err != nil {
		return "", fmt.Errorf("%s simplify: %w", l.name, err)
	}

	simplified := cleanReply(reply)
	if simplified == "" {
		return "", fmt.Errorf("%s simplify: %w", l.name, ErrEmptyResponse)
	}
	return simplified, nil
}

// Transcribe asks the model for the pinyin segments of text
func (l *LLM) Transcribe(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	reply, err := l.completer.Complete(ctx, transcribeInstruction, text)
	if err != nil {
		return nil, fmt.Errorf("%s transcribe: %w", l.name, err)
	}

	segments := strings.Fields(cleanReply(reply))
	if len(segments) == 0 {
		return nil, fmt.Errorf("%s transcribe: %w", l.name, ErrEmptyResponse)
	}
	return segments, nil
}

// cleanReply strips surrounding whitespace, code fences and quotes models
// sometimes add despite the instructions.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)
	reply = strings.Trim(reply, "\"“”")
	return strings.TrimSpace(reply)
}
