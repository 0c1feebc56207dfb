package compose

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Shuffle encodes each input character through a randomly chosen member of
// an encoder palette. Every output unit is framed as
//
//	<palette-index>:<payload-rune-count>:<payload>
//
// so decode can route each unit back to the member that produced it with no
// state beyond the palette itself. Ambiguity is impossible by construction:
// the frame head is self-delimiting and the rune count pins the payload even
// when payloads contain digits or colons.
//
// The palette is held in canonical form (sorted, duplicates removed), so the
// indices in a stream mean the same thing no matter what order the ids were
// listed in when the shuffle was built.
type Shuffle struct {
	registry *encoder.Registry
	palette  []string
}

// NewShuffle validates the palette: at least one id, all known, all
// reversible. A one-way member would make every unit it touched
// undecodable, so it is rejected up front.
func NewShuffle(registry *encoder.Registry, palette []string) (*Shuffle, error) {
	if registry == nil {
		return nil, fmt.Errorf("shuffle needs a registry")
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("shuffle palette needs at least one encoder")
	}
	for i, id := range palette {
		enc, ok := registry.Get(id)
		if !ok {
			return nil, fmt.Errorf("palette entry %d: unknown encoder %q", i, id)
		}
		if !enc.Reversible() {
			return nil, fmt.Errorf("palette entry %d: encoder %q is not reversible", i, id)
		}
	}

	canonical := make([]string, len(palette))
	copy(canonical, palette)
	slices.Sort(canonical)
	canonical = slices.Compact(canonical)

	return &Shuffle{registry: registry, palette: canonical}, nil
}

// Palette returns a copy of the palette ids.
func (s *Shuffle) Palette() []string {
	out := make([]string, len(s.palette))
	copy(out, s.palette)
	return out
}

// Encode scatters the text across the palette, one framed unit per rune.
// Members run with their default parameters.
func (s *Shuffle) Encode(text string) (string, error) {
	var b strings.Builder
	for _, r := range text {
		idx := rand.IntN(len(s.palette))
		enc, _ := s.registry.Get(s.palette[idx])

		payload, err := enc.Encode(string(r), nil)
		if err != nil {
			return "", fmt.Errorf("palette encoder %s on %q: %w", s.palette[idx], r, err)
		}
		fmt.Fprintf(&b, "%d:%d:%s", idx, len([]rune(payload)), payload)
	}
	return b.String(), nil
}

// Decode walks the framed units and reverses each through the member named
// by its index. Any malformed frame fails the whole call: a shuffle stream
// with an unreadable unit cannot be trusted past that point.
func (s *Shuffle) Decode(text string) (string, error) {
	runes := []rune(text)
	var b strings.Builder

	pos := 0
	for pos < len(runes) {
		idx, next, err := readFrameInt(runes, pos)
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(s.palette) {
			return "", fmt.Errorf("%w: palette index %d out of range at offset %d", encoder.ErrMalformedInput, idx, pos)
		}

		length, next, err := readFrameInt(runes, next)
		if err != nil {
			return "", err
		}
		if length < 0 || next+length > len(runes) {
			return "", fmt.Errorf("%w: frame at offset %d claims %d runes past the end", encoder.ErrMalformedInput, pos, length)
		}

		payload := string(runes[next : next+length])
		enc, _ := s.registry.Get(s.palette[idx])
		out, err := enc.Decode(payload, nil)
		if err != nil {
			return "", fmt.Errorf("palette encoder %s on frame at offset %d: %w", s.palette[idx], pos, err)
		}
		b.WriteString(out)
		pos = next + length
	}
	return b.String(), nil
}

// readFrameInt parses a decimal run ending at a colon and returns the value
// and the position after the colon.
func readFrameInt(runes []rune, pos int) (value, next int, err error) {
	start := pos
	for pos < len(runes) && runes[pos] >= '0' && runes[pos] <= '9' {
		pos++
	}
	if pos == start || pos >= len(runes) || runes[pos] != ':' {
		return 0, 0, fmt.Errorf("%w: bad frame head at offset %d", encoder.ErrMalformedInput, start)
	}
	n, convErr := strconv.Atoi(string(runes[start:pos]))
	if convErr != nil {
		return 0, 0, fmt.Errorf("%w: frame number at offset %d: %v", encoder.ErrMalformedInput, start, convErr)
	}
	return n, pos + 1, nil
}
