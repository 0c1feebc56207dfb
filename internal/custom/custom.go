// Package custom builds encoders at runtime from user-supplied character
// tables. Keys are single characters, values arbitrary strings; decode runs
// a greedy longest-match scan over the reversed table.
package custom

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Pair is one row of the mapping table.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Spec describes a user-defined encoder. Mapping order matters: when two
// rows share an output value, the later row wins the reverse mapping, so
// decode of that value is deterministic but intentionally lossy.
type Spec struct {
	Name          string   `json:"name"`
	Emoji         string   `json:"emoji,omitempty"`
	Description   string   `json:"description,omitempty"`
	Mapping       []Pair   `json:"mapping"`
	CaseSensitive bool     `json:"caseSensitive"`
	Tags          []string `json:"tags,omitempty"`
}

// Encoder is a table-driven encoder built from a Spec.
type Encoder struct {
	encoder.Base

	spec      Spec
	forward   map[rune]string
	reverse   map[string]rune
	maxValLen int
}

// Build validates the spec and constructs its encoder. Each build gets a
// fresh unique id so two encoders from the same spec stay independently
// addressable.
func Build(spec Spec) (*Encoder, error) {
	return build("custom-"+uuid.NewString(), spec)
}

// BuildWithID is Build with a caller-chosen id, for table-driven encoders
// shipped as part of the default set.
func BuildWithID(id string, spec Spec) (*Encoder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: encoder id cannot be empty", encoder.ErrInvalidParam)
	}
	return build(id, spec)
}

func build(id string, spec Spec) (*Encoder, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("%w: custom encoder needs a name", encoder.ErrInvalidParam)
	}
	if len(spec.Mapping) == 0 {
		return nil, fmt.Errorf("%w: custom encoder needs at least one mapping row", encoder.ErrInvalidParam)
	}

	e := &Encoder{
		Base: encoder.Base{
			IDValue:          id,
			DescriptionValue: spec.Description,
			ReversibleValue:  true,
		},
		spec:    spec,
		forward: make(map[rune]string, len(spec.Mapping)),
		reverse: make(map[string]rune, len(spec.Mapping)),
	}

	for i, row := range spec.Mapping {
		key, err := singleRune(row.From, spec.CaseSensitive)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if row.To == "" {
			return nil, fmt.Errorf("%w: row %d maps %q to nothing", encoder.ErrInvalidParam, i, row.From)
		}
		if _, dup := e.forward[key]; dup {
			return nil, fmt.Errorf("%w: row %d repeats key %q", encoder.ErrInvalidParam, i, row.From)
		}

		e.forward[key] = row.To
		// Later rows overwrite earlier ones: last write wins on decode.
		e.reverse[row.To] = key
		if n := utf8.RuneCountInString(row.To); n > e.maxValLen {
			e.maxValLen = n
		}
	}

	return e, nil
}

func singleRune(s string, caseSensitive bool) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: mapping key %q must be a single character", encoder.ErrInvalidParam, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !caseSensitive {
		r = unicode.ToLower(r)
	}
	return r, nil
}

// Spec returns the table the encoder was built from.
func (e *Encoder) Spec() Spec {
	return e.spec
}

// Name returns the user-chosen display name.
func (e *Encoder) Name() string {
	return e.spec.Name
}

func (e *Encoder) Encode(text string, p encoder.Param) (string, error) {
	if p != nil {
		return "", fmt.Errorf("%w: custom encoders take no parameter", encoder.ErrInvalidParam)
	}

	var b strings.Builder
	for _, r := range text {
		key := r
		if !e.spec.CaseSensitive {
			key = unicode.ToLower(r)
		}
		value, ok := e.forward[key]
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteString(e.recase(value, r))
	}
	return b.String(), nil
}

// recase re-applies the input's upper case when the encoder is
// case-insensitive and the value is a single letter.
func (e *Encoder) recase(value string, original rune) string {
	if e.spec.CaseSensitive || !unicode.IsUpper(original) {
		return value
	}
	if utf8.RuneCountInString(value) != 1 {
		return value
	}
	v, _ := utf8.DecodeRuneInString(value)
	if !unicode.IsLetter(v) {
		return value
	}
	return string(unicode.ToUpper(v))
}

func (e *Encoder) Decode(text string, p encoder.Param) (string, error) {
	if p != nil {
		return "", fmt.Errorf("%w: custom encoders take no parameter", encoder.ErrInvalidParam)
	}

	runes := []rune(text)
	var b strings.Builder
	for i := 0; i < len(runes); {
		key, consumed := e.match(runes[i:])
		if consumed == 0 {
			b.WriteRune(runes[i])
			i++
			continue
		}
		b.WriteString(e.decase(key, runes[i]))
		i += consumed
	}
	return b.String(), nil
}

// match tries spans from the longest mapped value length down to 1 and
// returns the original key of the first hit.
func (e *Encoder) match(rest []rune) (key rune, consumed int) {
	limit := e.maxValLen
	if limit > len(rest) {
		limit = len(rest)
	}
	for l := limit; l >= 1; l-- {
		span := string(rest[:l])
		if k, ok := e.reverse[span]; ok {
			return k, l
		}
		if !e.spec.CaseSensitive {
			if k, ok := e.reverse[strings.ToLower(span)]; ok {
				return k, l
			}
		}
	}
	return 0, 0
}

// decase mirrors recase: a span that started upper case restores an upper
// case key when the encoder is case-insensitive.
func (e *Encoder) decase(key rune, first rune) string {
	if !e.spec.CaseSensitive && unicode.IsUpper(first) && unicode.IsLetter(key) {
		return string(unicode.ToUpper(key))
	}
	return string(key)
}
