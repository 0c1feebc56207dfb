package classical

import (
	"strings"

	"github.com/harlowgray/transmute/internal/alphabet"
	"github.com/harlowgray/transmute/internal/encoder"
)

// letterStream reduces text to its uppercase letters, folding J into I for
// the 5x5 grids. Non-letters and case are dropped from the digraph stream;
// decode returns the uppercase letter stream with fillers intact, keeping
// encode and decode symmetric.
func letterStream(text string) []rune {
	var out []rune
	for _, r := range strings.ToUpper(text) {
		if r >= 'A' && r <= 'Z' {
			if r == 'J' {
				r = 'I'
			}
			out = append(out, r)
		}
	}
	return out
}

// digraphs splits a letter stream into pairs, inserting a filler between
// equal letters and padding an odd final letter. The filler is X, or Q when
// the doubled letter is X itself.
func digraphs(letters []rune) [][2]rune {
	var pairs [][2]rune
	for i := 0; i < len(letters); {
		a := letters[i]
		var b rune
		switch {
		case i+1 >= len(letters):
			b = filler(a)
			i++
		case letters[i+1] == a:
			b = filler(a)
			i++
		default:
			b = letters[i+1]
			i += 2
		}
		pairs = append(pairs, [2]rune{a, b})
	}
	return pairs
}

func filler(a rune) rune {
	if a == 'X' {
		return 'Q'
	}
	return 'X'
}

// Playfair is the classic 5x5 digraph cipher. Equal letters in a pair are
// separated by a filler and an odd trailing letter is padded, so decode
// recovers the padded letter stream, not the raw input.
type Playfair struct {
	encoder.Base
}

// NewPlayfair builds the Playfair encoder with default keyword "KEYWORD".
func NewPlayfair() *Playfair {
	return &Playfair{Base: encoder.Base{
		IDValue:          "playfair",
		DescriptionValue: "Playfair 5x5 digraph cipher",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (pf *Playfair) Encode(text string, p encoder.Param) (string, error) {
	return playfairApply(text, p, 1, true)
}

func (pf *Playfair) Decode(text string, p encoder.Param) (string, error) {
	return playfairApply(text, p, -1, false)
}

func playfairApply(text string, p encoder.Param, dir int, pad bool) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEYWORD")
	if err != nil {
		return "", err
	}
	grid := alphabet.NewGrid5(keyword)

	letters := letterStream(text)
	var pairs [][2]rune
	if pad {
		pairs = digraphs(letters)
	} else {
		// Ciphertext is always an even stream of grid letters.
		if len(letters)%2 != 0 {
			return "", encoder.ErrMalformedInput
		}
		for i := 0; i < len(letters); i += 2 {
			pairs = append(pairs, [2]rune{letters[i], letters[i+1]})
		}
	}

	var b strings.Builder
	b.Grow(len(pairs) * 2)
	for _, pair := range pairs {
		ra, ca, _ := grid.Position(pair[0])
		rb, cb, _ := grid.Position(pair[1])
		switch {
		case ra == rb:
			b.WriteRune(grid.At(ra, mod(ca+dir, 5)))
			b.WriteRune(grid.At(rb, mod(cb+dir, 5)))
		case ca == cb:
			b.WriteRune(grid.At(mod(ra+dir, 5), ca))
			b.WriteRune(grid.At(mod(rb+dir, 5), cb))
		default:
			b.WriteRune(grid.At(ra, cb))
			b.WriteRune(grid.At(rb, ca))
		}
	}
	return b.String(), nil
}

// FourSquare uses two keyed grids plus two plain reference grids; each
// letter's row comes from its own grid and its column from the partner grid.
type FourSquare struct {
	encoder.Base
}

// NewFourSquare builds the four-square encoder with default keywords
// "EXAMPLE" and "KEYWORD".
func NewFourSquare() *FourSquare {
	return &FourSquare{Base: encoder.Base{
		IDValue:          "foursquare",
		DescriptionValue: "Four-square digraph cipher with two keyed grids",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (fs *FourSquare) Encode(text string, p encoder.Param) (string, error) {
	keys, err := encoder.DualKeyOf(p, encoder.DualKeyParam{First: "EXAMPLE", Second: "KEYWORD"})
	if err != nil {
		return "", err
	}
	plain := alphabet.NewGrid5("")
	top := alphabet.NewGrid5(keys.First)
	bottom := alphabet.NewGrid5(keys.Second)

	letters := letterStream(text)
	if len(letters)%2 != 0 {
		letters = append(letters, 'X')
	}

	var b strings.Builder
	b.Grow(len(letters))
	for i := 0; i < len(letters); i += 2 {
		ra, ca, _ := plain.Position(letters[i])
		rb, cb, _ := plain.Position(letters[i+1])
		b.WriteRune(top.At(ra, cb))
		b.WriteRune(bottom.At(rb, ca))
	}
	return b.String(), nil
}

func (fs *FourSquare) Decode(text string, p encoder.Param) (string, error) {
	keys, err := encoder.DualKeyOf(p, encoder.DualKeyParam{First: "EXAMPLE", Second: "KEYWORD"})
	if err != nil {
		return "", err
	}
	plain := alphabet.NewGrid5("")
	top := alphabet.NewGrid5(keys.First)
	bottom := alphabet.NewGrid5(keys.Second)

	letters := letterStream(text)
	if len(letters)%2 != 0 {
		return "", encoder.ErrMalformedInput
	}

	var b strings.Builder
	b.Grow(len(letters))
	for i := 0; i < len(letters); i += 2 {
		ra, ca, ok := top.Position(letters[i])
		if !ok {
			return "", encoder.ErrMalformedInput
		}
		rb, cb, ok := bottom.Position(letters[i+1])
		if !ok {
			return "", encoder.ErrMalformedInput
		}
		b.WriteRune(plain.At(ra, cb))
		b.WriteRune(plain.At(rb, ca))
	}
	return b.String(), nil
}
