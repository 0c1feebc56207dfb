package classical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harlowgray/transmute/internal/alphabet"
	"github.com/harlowgray/transmute/internal/encoder"
)

// Polybius maps each grid character to a two-digit (row, column) pair,
// 1-based, emitted as space-separated tokens. Characters outside the grid
// are dropped from the coordinate stream; decode passes unparseable tokens
// through unchanged.
type Polybius struct {
	encoder.Base
}

// NewPolybius builds the Polybius encoder, default 5x5 grid.
func NewPolybius() *Polybius {
	return &Polybius{Base: encoder.Base{
		IDValue:          "polybius",
		DescriptionValue: "Polybius square coordinates, 5x5 or 6x6",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (pb *Polybius) Encode(text string, p encoder.Param) (string, error) {
	grid, err := polybiusGrid(p)
	if err != nil {
		return "", err
	}

	var tokens []string
	for _, r := range strings.ToUpper(text) {
		if row, col, ok := grid.Position(r); ok {
			tokens = append(tokens, fmt.Sprintf("%d%d", row+1, col+1))
		}
	}
	return strings.Join(tokens, " "), nil
}

func (pb *Polybius) Decode(text string, p encoder.Param) (string, error) {
	grid, err := polybiusGrid(p)
	if err != nil {
		return "", err
	}
	size := grid.Size()

	var b strings.Builder
	for _, token := range strings.Fields(text) {
		if len(token) == 2 && validCoord(rune(token[0]), size) && validCoord(rune(token[1]), size) {
			row := int(token[0]-'0') - 1
			col := int(token[1]-'0') - 1
			b.WriteRune(grid.At(row, col))
		} else {
			b.WriteString(token)
		}
	}
	return b.String(), nil
}

func validCoord(r rune, size int) bool {
	return r >= '1' && int(r-'0') <= size
}

func polybiusGrid(p encoder.Param) (*alphabet.Grid, error) {
	size, err := encoder.IntOf(p, 5)
	if err != nil {
		return nil, err
	}
	switch size {
	case 5:
		return alphabet.NewGrid5(""), nil
	case 6:
		return alphabet.NewGrid6(""), nil
	default:
		return nil, fmt.Errorf("%w: polybius grid size must be 5 or 6, got %d", encoder.ErrInvalidParam, size)
	}
}

// adfgvxAlphabet indexes the coordinate letters of the ADFGVX cipher.
const adfgvxAlphabet = "ADFGVX"

// ADFGVX maps each character through a keyed 6x6 grid to a pair of letters
// from {A,D,F,G,V,X}, then columnar-transposes the result with a second
// keyword. Decode reverses the transposition first.
type ADFGVX struct {
	encoder.Base
}

// NewADFGVX builds the ADFGVX encoder with default keys "CIPHER"/"GERMAN".
func NewADFGVX() *ADFGVX {
	return &ADFGVX{Base: encoder.Base{
		IDValue:          "adfgvx",
		DescriptionValue: "ADFGVX fractionation plus columnar transposition",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (a *ADFGVX) Encode(text string, p encoder.Param) (string, error) {
	grid, order, err := adfgvxSetup(p)
	if err != nil {
		return "", err
	}

	var fractionated []rune
	for _, r := range strings.ToUpper(text) {
		if row, col, ok := grid.Position(r); ok {
			fractionated = append(fractionated, rune(adfgvxAlphabet[row]), rune(adfgvxAlphabet[col]))
		}
	}

	return string(columnarEncode(fractionated, order)), nil
}

func (a *ADFGVX) Decode(text string, p encoder.Param) (string, error) {
	grid, order, err := adfgvxSetup(p)
	if err != nil {
		return "", err
	}

	stream := []rune(strings.ToUpper(strings.ReplaceAll(text, " ", "")))
	for _, r := range stream {
		if !strings.ContainsRune(adfgvxAlphabet, r) {
			return "", fmt.Errorf("%w: %q is not an ADFGVX letter", encoder.ErrMalformedInput, r)
		}
	}
	if len(stream)%2 != 0 {
		return "", fmt.Errorf("%w: odd ADFGVX stream length %d", encoder.ErrMalformedInput, len(stream))
	}

	fractionated := columnarDecode(stream, order)

	var b strings.Builder
	b.Grow(len(fractionated) / 2)
	for i := 0; i < len(fractionated); i += 2 {
		row := strings.IndexRune(adfgvxAlphabet, fractionated[i])
		col := strings.IndexRune(adfgvxAlphabet, fractionated[i+1])
		b.WriteRune(grid.At(row, col))
	}
	return b.String(), nil
}

func adfgvxSetup(p encoder.Param) (*alphabet.Grid, []int, error) {
	keys, err := encoder.DualKeyOf(p, encoder.DualKeyParam{First: "CIPHER", Second: "GERMAN"})
	if err != nil {
		return nil, nil, err
	}
	order := alphabet.ColumnOrder(alphabet.Normalize(keys.Second))
	if order == nil {
		return nil, nil, fmt.Errorf("%w: ADFGVX transposition keyword must contain letters", encoder.ErrInvalidParam)
	}
	return alphabet.NewGrid6(keys.First), order, nil
}

// Nihilist sums each letter's Polybius coordinates with a repeating numeric
// key derived from a keyword's coordinates in the same grid.
type Nihilist struct {
	encoder.Base
}

// NewNihilist builds the Nihilist encoder with default keys "CIPHER"/"KEY".
func NewNihilist() *Nihilist {
	return &Nihilist{Base: encoder.Base{
		IDValue:          "nihilist",
		DescriptionValue: "Polybius coordinates summed with a repeating keyword",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (n *Nihilist) Encode(text string, p encoder.Param) (string, error) {
	grid, key, err := nihilistSetup(p)
	if err != nil {
		return "", err
	}

	var tokens []string
	i := 0
	for _, r := range letterStream(text) {
		row, col, _ := grid.Position(r)
		plain := (row+1)*10 + (col + 1)
		tokens = append(tokens, strconv.Itoa(plain+key[i%len(key)]))
		i++
	}
	return strings.Join(tokens, " "), nil
}

func (n *Nihilist) Decode(text string, p encoder.Param) (string, error) {
	grid, key, err := nihilistSetup(p)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	i := 0
	for _, token := range strings.Fields(text) {
		value, convErr := strconv.Atoi(token)
		if convErr != nil {
			b.WriteString(token)
			continue
		}
		plain := value - key[i%len(key)]
		i++
		row := plain/10 - 1
		col := plain%10 - 1
		if row < 0 || row >= grid.Size() || col < 0 || col >= grid.Size() {
			return "", fmt.Errorf("%w: value %d decodes outside the grid", encoder.ErrMalformedInput, value)
		}
		b.WriteRune(grid.At(row, col))
	}
	return b.String(), nil
}

func nihilistSetup(p encoder.Param) (*alphabet.Grid, []int, error) {
	keys, err := encoder.DualKeyOf(p, encoder.DualKeyParam{First: "CIPHER", Second: "KEY"})
	if err != nil {
		return nil, nil, err
	}
	grid := alphabet.NewGrid5(keys.First)

	var key []int
	for _, r := range letterStream(keys.Second) {
		row, col, _ := grid.Position(r)
		key = append(key, (row+1)*10+(col+1))
	}
	if len(key) == 0 {
		return nil, nil, fmt.Errorf("%w: nihilist additive keyword must contain letters", encoder.ErrInvalidParam)
	}
	return grid, key, nil
}
