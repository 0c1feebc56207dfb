package classical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// BookCipher locates each word of the input within a reference text and
// emits its 1-based position. Words missing from the reference become
// ?word? passthrough markers rather than failures; decode passes unknown
// markers and out-of-range indexes through the same way. Lookup is
// case-insensitive and O(n*m) against the reference text.
type BookCipher struct {
	encoder.Base
}

// NewBookCipher builds the book cipher encoder. The reference text is
// required; there is no sensible default.
func NewBookCipher() *BookCipher {
	return &BookCipher{Base: encoder.Base{
		IDValue:          "bookcipher",
		DescriptionValue: "Word positions within a reference text",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (bc *BookCipher) Encode(text string, p encoder.Param) (string, error) {
	ref, err := referenceWords(p)
	if err != nil {
		return "", err
	}

	var tokens []string
	for _, word := range strings.Fields(text) {
		idx := 0
		for i, candidate := range ref {
			if strings.EqualFold(candidate, word) {
				idx = i + 1
				break
			}
		}
		if idx == 0 {
			tokens = append(tokens, "?"+word+"?")
		} else {
			tokens = append(tokens, strconv.Itoa(idx))
		}
	}
	return strings.Join(tokens, " "), nil
}

func (bc *BookCipher) Decode(text string, p encoder.Param) (string, error) {
	ref, err := referenceWords(p)
	if err != nil {
		return "", err
	}

	var words []string
	for _, token := range strings.Fields(text) {
		if strings.HasPrefix(token, "?") && strings.HasSuffix(token, "?") && len(token) > 1 {
			words = append(words, strings.Trim(token, "?"))
			continue
		}
		idx, convErr := strconv.Atoi(token)
		if convErr != nil || idx < 1 || idx > len(ref) {
			words = append(words, "?"+token+"?")
			continue
		}
		words = append(words, ref[idx-1])
	}
	return strings.Join(words, " "), nil
}

func referenceWords(p encoder.Param) ([]string, error) {
	ref, err := encoder.TextOf(p, "")
	if err != nil {
		return nil, err
	}
	words := strings.Fields(ref)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: book cipher needs a reference text", encoder.ErrInvalidParam)
	}
	return words, nil
}
