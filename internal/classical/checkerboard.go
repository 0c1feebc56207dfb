package classical

import (
	"fmt"
	"strings"

	"github.com/harlowgray/transmute/internal/alphabet"
	"github.com/harlowgray/transmute/internal/encoder"
)

// checkerboard is the straddling checkerboard layout derived from an
// 8-letter keyword. The keyword's first eight unique letters fill the top
// row; the two digits left open are the shift prefixes for the two lower
// rows, which hold the remaining 18 letters plus "." and the digit-escape
// cell "/". The shift digits derive from the keyword itself: letter index
// mod 10 of the first and last of the eight letters, the second bumped
// until distinct.
type checkerboard struct {
	shift1, shift2 int
	codes          map[rune]string
	topRow         map[int]rune
	row1, row2     [10]rune
	escape         string
}

const checkerboardExtras = "./"

func newCheckerboard(keyword string) (*checkerboard, error) {
	unique := uniqueLetters(alphabet.Normalize(keyword))
	if len(unique) < 8 {
		return nil, fmt.Errorf("%w: checkerboard keyword needs 8 distinct letters, got %d", encoder.ErrInvalidParam, len(unique))
	}
	top := unique[:8]

	cb := &checkerboard{
		codes:  make(map[rune]string, 28),
		topRow: make(map[int]rune, 8),
	}

	cb.shift1 = int(top[0]-'A') % 10
	cb.shift2 = int(top[7]-'A') % 10
	for cb.shift2 == cb.shift1 {
		cb.shift2 = (cb.shift2 + 1) % 10
	}

	// Top-row letters take the eight digits that are not shift prefixes.
	next := 0
	for digit := 0; digit < 10; digit++ {
		if digit == cb.shift1 || digit == cb.shift2 {
			continue
		}
		cb.topRow[digit] = top[next]
		cb.codes[top[next]] = fmt.Sprintf("%d", digit)
		next++
	}

	// The two shifted rows hold the remaining letters plus the extras.
	var rest []rune
	inTop := make(map[rune]bool, 8)
	for _, r := range top {
		inTop[r] = true
	}
	for _, r := range alphabet.Letters {
		if !inTop[r] {
			rest = append(rest, r)
		}
	}
	rest = append(rest, []rune(checkerboardExtras)...)

	for j := 0; j < 10; j++ {
		cb.row1[j] = rest[j]
		cb.codes[rest[j]] = fmt.Sprintf("%d%d", cb.shift1, j)
	}
	for j := 0; j < 10; j++ {
		cb.row2[j] = rest[10+j]
		cb.codes[rest[10+j]] = fmt.Sprintf("%d%d", cb.shift2, j)
	}
	cb.escape = cb.codes['/']

	return cb, nil
}

func uniqueLetters(s string) []rune {
	seen := make(map[rune]bool, len(s))
	var out []rune
	for _, r := range s {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Checkerboard is the straddling checkerboard cipher: letters become one or
// two digits depending on the row, digits are escaped through the "/" cell,
// and decode consumes one or two digits per symbol based on the shift
// prefixes. Case is not preserved; other characters pass through.
type Checkerboard struct {
	encoder.Base
}

// NewCheckerboard builds the encoder with default keyword "SENORITA".
func NewCheckerboard() *Checkerboard {
	return &Checkerboard{Base: encoder.Base{
		IDValue:          "checkerboard",
		DescriptionValue: "Straddling checkerboard numeric encoding",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (c *Checkerboard) Encode(text string, p encoder.Param) (string, error) {
	cb, err := checkerboardParam(p)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(text) {
		switch {
		case isDigit(r):
			b.WriteString(cb.escape)
			b.WriteRune(r)
		case r == '/':
			// The escape cell is reserved for digits; a literal
			// slash passes through like any other uncoded rune.
			b.WriteRune(r)
		case cb.codes[r] != "":
			b.WriteString(cb.codes[r])
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func (c *Checkerboard) Decode(text string, p encoder.Param) (string, error) {
	cb, err := checkerboardParam(p)
	if err != nil {
		return "", err
	}

	runes := []rune(text)
	var b strings.Builder
	for i := 0; i < len(runes); {
		r := runes[i]
		if !isDigit(r) {
			b.WriteRune(r)
			i++
			continue
		}

		d := int(r - '0')
		if d != cb.shift1 && d != cb.shift2 {
			b.WriteRune(cb.topRow[d])
			i++
			continue
		}

		if i+1 >= len(runes) || !isDigit(runes[i+1]) {
			return "", fmt.Errorf("%w: dangling shift prefix %d at offset %d", encoder.ErrMalformedInput, d, i)
		}
		j := int(runes[i+1] - '0')
		var ch rune
		if d == cb.shift1 {
			ch = cb.row1[j]
		} else {
			ch = cb.row2[j]
		}
		i += 2

		if ch == '/' {
			if i >= len(runes) || !isDigit(runes[i]) {
				return "", fmt.Errorf("%w: digit escape without digit at offset %d", encoder.ErrMalformedInput, i)
			}
			b.WriteRune(runes[i])
			i++
			continue
		}
		b.WriteRune(ch)
	}
	return b.String(), nil
}

func checkerboardParam(p encoder.Param) (*checkerboard, error) {
	keyword, err := encoder.KeyOf(p, "SENORITA")
	if err != nil {
		return nil, err
	}
	return newCheckerboard(keyword)
}
