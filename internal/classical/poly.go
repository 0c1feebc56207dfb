package classical

import (
	"fmt"
	"strings"

	"github.com/harlowgray/transmute/internal/alphabet"
	"github.com/harlowgray/transmute/internal/encoder"
)

// applyKeyStream maps every letter of text through f, where i counts letters
// only. Non-letters pass through without consuming a key-stream position,
// the standard historical convention that round-trip correctness depends on.
func applyKeyStream(text string, f func(i int, r rune) rune) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for _, r := range text {
		if isLetter(r) {
			b.WriteRune(f(i, r))
			i++
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keywordShifts(keyword string) ([]int, error) {
	key := alphabet.Normalize(keyword)
	if key == "" {
		return nil, fmt.Errorf("%w: keyword must contain at least one letter", encoder.ErrInvalidParam)
	}
	shifts := make([]int, len(key))
	for i, r := range key {
		shifts[i] = int(r - 'A')
	}
	return shifts, nil
}

// Vigenere applies a repeating keyword shift to each letter.
type Vigenere struct {
	encoder.Base
}

// NewVigenere builds the Vigenere encoder with default keyword "KEY".
func NewVigenere() *Vigenere {
	return &Vigenere{Base: encoder.Base{
		IDValue:          "vigenere",
		DescriptionValue: "Repeating-keyword polyalphabetic shift",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (v *Vigenere) Encode(text string, p encoder.Param) (string, error) {
	return vigenereApply(text, p, 1)
}

func (v *Vigenere) Decode(text string, p encoder.Param) (string, error) {
	return vigenereApply(text, p, -1)
}

func vigenereApply(text string, p encoder.Param, sign int) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEY")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}
	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, sign*shifts[i%len(shifts)])
	}), nil
}

// Beaufort computes key minus plaintext; the same formula decodes, so
// encode and decode coincide.
type Beaufort struct {
	encoder.Base
}

// NewBeaufort builds the Beaufort encoder with default keyword "KEY".
func NewBeaufort() *Beaufort {
	return &Beaufort{Base: encoder.Base{
		IDValue:          "beaufort",
		DescriptionValue: "Beaufort cipher, key minus plaintext (self-inverse)",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (b *Beaufort) Encode(text string, p encoder.Param) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEY")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}
	return applyKeyStream(text, func(i int, r rune) rune {
		return letterAt(mod(shifts[i%len(shifts)]-letterIndex(r), 26), r)
	}), nil
}

func (b *Beaufort) Decode(text string, p encoder.Param) (string, error) {
	return b.Encode(text, p)
}

// Autokey extends the primer key with the plaintext itself, so the key
// stream grows with the message. Decode reconstructs the key incrementally
// because later key letters depend on already-recovered plaintext.
type Autokey struct {
	encoder.Base
}

// NewAutokey builds the autokey encoder with default primer "KEY".
func NewAutokey() *Autokey {
	return &Autokey{Base: encoder.Base{
		IDValue:          "autokey",
		DescriptionValue: "Vigenere with the plaintext appended to the primer key",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (a *Autokey) Encode(text string, p encoder.Param) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEY")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}

	// Key stream: primer shifts followed by the plaintext letters.
	for _, r := range text {
		if isLetter(r) {
			shifts = append(shifts, letterIndex(r))
		}
	}

	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, shifts[i])
	}), nil
}

func (a *Autokey) Decode(text string, p encoder.Param) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEY")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}

	return applyKeyStream(text, func(i int, r rune) rune {
		plain := shiftLetter(r, -shifts[i])
		shifts = append(shifts, letterIndex(plain))
		return plain
	}), nil
}

// Gronsfeld is Vigenere with a digit key; the shift at each position is the
// digit value.
type Gronsfeld struct {
	encoder.Base
}

// NewGronsfeld builds the Gronsfeld encoder with default key "31415".
func NewGronsfeld() *Gronsfeld {
	return &Gronsfeld{Base: encoder.Base{
		IDValue:          "gronsfeld",
		DescriptionValue: "Vigenere variant keyed by a digit sequence",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (g *Gronsfeld) Encode(text string, p encoder.Param) (string, error) {
	return gronsfeldApply(text, p, 1)
}

func (g *Gronsfeld) Decode(text string, p encoder.Param) (string, error) {
	return gronsfeldApply(text, p, -1)
}

func gronsfeldApply(text string, p encoder.Param, sign int) (string, error) {
	keyword, err := encoder.KeyOf(p, "31415")
	if err != nil {
		return "", err
	}

	var shifts []int
	for _, r := range keyword {
		if isDigit(r) {
			shifts = append(shifts, int(r-'0'))
		}
	}
	if len(shifts) == 0 {
		return "", fmt.Errorf("%w: gronsfeld key must contain at least one digit", encoder.ErrInvalidParam)
	}

	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, sign*shifts[i%len(shifts)])
	}), nil
}

// Trithemius shifts the letter at position i by (start + i) mod 26, with no
// keyword at all.
type Trithemius struct {
	encoder.Base
}

// NewTrithemius builds the Trithemius encoder with default start 0.
func NewTrithemius() *Trithemius {
	return &Trithemius{Base: encoder.Base{
		IDValue:          "trithemius",
		DescriptionValue: "Progressive shift: position i shifts by start+i",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (t *Trithemius) Encode(text string, p encoder.Param) (string, error) {
	start, err := encoder.ShiftOf(p, 0)
	if err != nil {
		return "", err
	}
	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, start+i)
	}), nil
}

func (t *Trithemius) Decode(text string, p encoder.Param) (string, error) {
	start, err := encoder.ShiftOf(p, 0)
	if err != nil {
		return "", err
	}
	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, -(start + i))
	}), nil
}

// Porta selects one of 13 reciprocal alphabets per position from the keyword
// letter; the transformation is its own inverse.
type Porta struct {
	encoder.Base
}

// NewPorta builds the Porta encoder with default keyword "KEY".
func NewPorta() *Porta {
	return &Porta{Base: encoder.Base{
		IDValue:          "porta",
		DescriptionValue: "Porta cipher with 13 reciprocal alphabets (self-inverse)",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (po *Porta) Encode(text string, p encoder.Param) (string, error) {
	keyword, err := encoder.KeyOf(p, "KEY")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(keyword)
	if err != nil {
		return "", err
	}

	return applyKeyStream(text, func(i int, r rune) rune {
		k := shifts[i%len(shifts)] / 2
		x := letterIndex(r)
		if x < 13 {
			return letterAt(13+mod(x+k, 13), r)
		}
		return letterAt(mod(x-13-k, 13), r)
	}), nil
}

func (po *Porta) Decode(text string, p encoder.Param) (string, error) {
	return po.Encode(text, p)
}

// RunningKey is Vigenere keyed by an arbitrarily long text. When the key's
// letters run out before the message does, the key cycles, keeping parity
// with the rest of the Vigenere family.
type RunningKey struct {
	encoder.Base
}

// NewRunningKey builds the running-key encoder.
func NewRunningKey() *RunningKey {
	return &RunningKey{Base: encoder.Base{
		IDValue:          "runningkey",
		DescriptionValue: "Vigenere keyed by a long reference text",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (rk *RunningKey) Encode(text string, p encoder.Param) (string, error) {
	return runningKeyApply(text, p, 1)
}

func (rk *RunningKey) Decode(text string, p encoder.Param) (string, error) {
	return runningKeyApply(text, p, -1)
}

func runningKeyApply(text string, p encoder.Param, sign int) (string, error) {
	ref, err := encoder.TextOf(p, "")
	if err != nil {
		return "", err
	}
	shifts, err := keywordShifts(ref)
	if err != nil {
		return "", fmt.Errorf("%w: running key text must contain letters", encoder.ErrInvalidParam)
	}

	return applyKeyStream(text, func(i int, r rune) rune {
		return shiftLetter(r, sign*shifts[i%len(shifts)])
	}), nil
}
