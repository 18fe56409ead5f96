package tokens

import (
	"errors"
	"strings"
	"testing"
)

// fakeEncoder counts whitespace-separated words.
type fakeEncoder struct{}

func (fakeEncoder) Encode(text string, _, _ []string) []int {
	fields := strings.Fields(text)
	ids := make([]int, len(fields))
	return ids
}

func stubEncoder(t *testing.T, fn func(model string) (encoder, error)) {
	t.Helper()
	orig := encoderFor
	encoderFor = fn
	t.Cleanup(func() { encoderFor = orig })
}

func TestCountForModel_ExactWhenTokenizerAvailable(t *testing.T) {
	stubEncoder(t, func(string) (encoder, error) { return fakeEncoder{}, nil })

	if got := CountForModel("one two three", DefaultModel); got != 3 {
		t.Fatalf("CountForModel = %d, want 3", got)
	}
}

func TestCountForModel_FallbackOnUnknownModel(t *testing.T) {
	stubEncoder(t, func(string) (encoder, error) { return nil, errors.New("no encoding for model") })

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{"abcdefgh", 2},
		{strings.Repeat("x", 41), 10},
	}
	for _, tt := range tests {
		if got := CountForModel(tt.text, "no-such-model"); got != tt.want {
			t.Errorf("CountForModel(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestCountForModel_FallbackIsRuneBased(t *testing.T) {
	stubEncoder(t, func(string) (encoder, error) { return nil, errors.New("unavailable") })

	// Eight runes, regardless of byte length.
	if got := CountForModel("ααααββββ", "no-such-model"); got != 2 {
		t.Fatalf("CountForModel = %d, want 2", got)
	}
}

func TestCount_UsesDefaultModel(t *testing.T) {
	var seen string
	stubEncoder(t, func(model string) (encoder, error) {
		seen = model
		return fakeEncoder{}, nil
	})

	Count("hello world")
	if seen != DefaultModel {
		t.Fatalf("Count consulted model %q, want %q", seen, DefaultModel)
	}
}

func TestCountForModel_UnknownModelAgainstRealRegistry(t *testing.T) {
	// No stub: tiktoken has no mapping for this model, so the approximation
	// path is taken without any network access.
	if got := CountForModel("abcdefgh", "definitely-not-a-model"); got != 2 {
		t.Fatalf("CountForModel = %d, want 2", got)
	}
}
