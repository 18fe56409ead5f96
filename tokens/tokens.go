// Package tokens estimates token counts of text for usage reporting. Counts
// are best-effort: when the tokenizer for a model is unavailable the package
// degrades to a character-based approximation rather than failing.
package tokens

import (
	"log/slog"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultModel is the chat model whose tokenizer is used when the caller
// does not name one.
const DefaultModel = "gpt-3.5-turbo"

type encoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
}

// encoderFor is swapped out in tests to exercise both counting paths without
// touching the tiktoken registry.
var encoderFor = func(model string) (encoder, error) {
	return tiktoken.EncodingForModel(model)
}

// Count returns the token count of text under DefaultModel's tokenizer.
func Count(text string) int {
	return CountForModel(text, DefaultModel)
}

// CountForModel returns the exact token count of text under the named
// model's tokenizer. If the tokenizer cannot be obtained, it logs a warning
// and returns an approximation of one token per four characters. It never
// fails outward.
func CountForModel(text, model string) int {
	enc, err := encoderFor(model)
	if err != nil {
		slog.Warn("tokenizer unavailable, approximating token count", "model", model, "error", err)
		return utf8.RuneCountInString(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}
