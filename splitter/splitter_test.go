package splitter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected []string
	}{
		{
			name:     "empty input produces no chunks",
			text:     "",
			max:      10,
			expected: nil,
		},
		{
			name:     "whitespace only input produces no chunks",
			text:     " \t\n ",
			max:      10,
			expected: nil,
		},
		{
			name:     "input within the budget is a single chunk",
			text:     "short text",
			max:      100,
			expected: []string{"short text"},
		},
		{
			name:     "words are grouped greedily by character count",
			text:     "the quick brown fox jumps",
			max:      10,
			expected: []string{"the quick", "brown fox", "jumps"},
		},
		{
			name:     "a word longer than the budget is emitted alone",
			text:     "hi incomprehensibilities ok",
			max:      10,
			expected: []string{"hi", "incomprehensibilities", "ok"},
		},
		{
			name:     "a leading overlong word does not produce an empty chunk",
			text:     "incomprehensibilities hi",
			max:      10,
			expected: []string{"incomprehensibilities", "hi"},
		},
		{
			name:     "separator spaces do not count towards the budget",
			text:     "aa bb cc dd",
			max:      8,
			expected: []string{"aa bb cc dd"},
		},
		{
			name:     "runs of whitespace collapse to single spaces",
			text:     "a\n\nb\t c",
			max:      10,
			expected: []string{"a b c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Split(tt.text, tt.max)
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Errorf("unexpected chunks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitPreservesWordSequence(t *testing.T) {
	text := `Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim
veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea
commodo consequat.`
	for _, max := range []int{1, 7, 25, 500} {
		chunks := Split(text, max)
		var words []string
		for _, chunk := range chunks {
			chunkWords := strings.Fields(chunk)
			var size int
			for _, w := range chunkWords {
				size += len(w)
			}
			if size > max && len(chunkWords) > 1 {
				t.Errorf("max=%d: chunk %q exceeds budget with %d words", max, chunk, len(chunkWords))
			}
			words = append(words, chunkWords...)
		}
		if diff := cmp.Diff(strings.Fields(text), words); diff != "" {
			t.Errorf("max=%d: word sequence not preserved (-want +got):\n%s", max, diff)
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	first := Split(text, 12)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Split(text, 12)); diff != "" {
			t.Fatalf("unexpected variation between runs (-want +got):\n%s", diff)
		}
	}
}
