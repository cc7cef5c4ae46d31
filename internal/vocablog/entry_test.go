package vocablog

import (
	"errors"
	"testing"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		wantErr bool
	}{
		{
			name: "compact",
			line: "幾|你今年幾歲？|How old are you this year?",
			want: Entry{Word: "幾", Sentence: "你今年幾歲？", Translation: "How old are you this year?"},
		},
		{
			name: "spaced",
			line: " 去 | 你去哪裡 | Where are you going ",
			want: Entry{Word: "去", Sentence: "你去哪裡", Translation: "Where are you going"},
		},
		{
			name: "extra separators stay in translation",
			line: "或|你要茶或咖啡？|Tea | or coffee?",
			want: Entry{Word: "或", Sentence: "你要茶或咖啡？", Translation: "Tea | or coffee?"},
		},
		{
			name: "empty translation is allowed",
			line: "好|你好|",
			want: Entry{Word: "好", Sentence: "你好"},
		},
		{name: "two fields", line: "好|你好", wantErr: true},
		{name: "no separator", line: "你好", wantErr: true},
		{name: "empty word", line: " |你好|hello", wantErr: true},
		{name: "empty sentence", line: "好||hello", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrMalformedEntry) {
					t.Errorf("expected ErrMalformedEntry, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseEntry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
