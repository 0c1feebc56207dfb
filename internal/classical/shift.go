package classical

import (
	"fmt"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Caesar shifts letters by a configurable amount, default 3. Non-letters
// pass through; the shift is normalized mod 26 before use.
type Caesar struct {
	encoder.Base
}

// NewCaesar builds the Caesar encoder.
func NewCaesar() *Caesar {
	return &Caesar{Base: encoder.Base{
		IDValue:          "caesar",
		DescriptionValue: "Shift letters by a fixed amount (default 3)",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (c *Caesar) Encode(text string, p encoder.Param) (string, error) {
	shift, err := encoder.ShiftOf(p, 3)
	if err != nil {
		return "", err
	}
	return shiftAll(text, shift), nil
}

func (c *Caesar) Decode(text string, p encoder.Param) (string, error) {
	shift, err := encoder.ShiftOf(p, 3)
	if err != nil {
		return "", err
	}
	return shiftAll(text, -shift), nil
}

func shiftAll(text string, n int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(shiftLetter(r, n))
	}
	return b.String()
}

// ROTN rotates letters by a configurable amount, default 13. It is the
// parametrized member of the ROT family; with the default shift it behaves
// like ROT13 but decode still subtracts rather than re-adding.
type ROTN struct {
	encoder.Base
}

// NewROTN builds the ROT-N encoder.
func NewROTN() *ROTN {
	return &ROTN{Base: encoder.Base{
		IDValue:          "rotn",
		DescriptionValue: "Rotate letters by a chosen amount (default 13)",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (r *ROTN) Encode(text string, p encoder.Param) (string, error) {
	shift, err := encoder.ShiftOf(p, 13)
	if err != nil {
		return "", err
	}
	return shiftAll(text, shift), nil
}

func (r *ROTN) Decode(text string, p encoder.Param) (string, error) {
	shift, err := encoder.ShiftOf(p, 13)
	if err != nil {
		return "", err
	}
	return shiftAll(text, -shift), nil
}

// ROT13 is the fixed-shift-13 Caesar; encode and decode coincide.
type ROT13 struct {
	encoder.Base
}

// NewROT13 builds the ROT13 encoder.
func NewROT13() *ROT13 {
	return &ROT13{Base: encoder.Base{
		IDValue:          "rot13",
		DescriptionValue: "Rotate letters by 13 places (self-inverse)",
		ReversibleValue:  true,
	}}
}

func (r *ROT13) Encode(text string, p encoder.Param) (string, error) {
	return shiftAll(text, 13), nil
}

func (r *ROT13) Decode(text string, p encoder.Param) (string, error) {
	return shiftAll(text, 13), nil
}

// ROT5 rotates digits by 5 positions mod 10; letters pass through.
type ROT5 struct {
	encoder.Base
}

// NewROT5 builds the ROT5 encoder.
func NewROT5() *ROT5 {
	return &ROT5{Base: encoder.Base{
		IDValue:          "rot5",
		DescriptionValue: "Rotate digits by 5 places (self-inverse)",
		ReversibleValue:  true,
	}}
}

func (r *ROT5) Encode(text string, p encoder.Param) (string, error) {
	return rotDigits(text, 5), nil
}

func (r *ROT5) Decode(text string, p encoder.Param) (string, error) {
	return rotDigits(text, 5), nil
}

func rotDigits(text string, n int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(shiftDigit(r, n))
	}
	return b.String()
}

// ROT18 combines ROT13 on letters with ROT5 on digits.
type ROT18 struct {
	encoder.Base
}

// NewROT18 builds the ROT18 encoder.
func NewROT18() *ROT18 {
	return &ROT18{Base: encoder.Base{
		IDValue:          "rot18",
		DescriptionValue: "ROT13 for letters plus ROT5 for digits (self-inverse)",
		ReversibleValue:  true,
	}}
}

func (r *ROT18) Encode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		b.WriteRune(shiftDigit(shiftLetter(c, 13), 5))
	}
	return b.String(), nil
}

func (r *ROT18) Decode(text string, p encoder.Param) (string, error) {
	return r.Encode(text, p)
}

// ROT47 rotates the printable ASCII range 33-126 by 47.
type ROT47 struct {
	encoder.Base
}

// NewROT47 builds the ROT47 encoder.
func NewROT47() *ROT47 {
	return &ROT47{Base: encoder.Base{
		IDValue:          "rot47",
		DescriptionValue: "Rotate printable ASCII 33-126 by 47 places (self-inverse)",
		ReversibleValue:  true,
	}}
}

func (r *ROT47) Encode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if c >= 33 && c <= 126 {
			c = 33 + rune(mod(int(c-33)+47, 94))
		}
		b.WriteRune(c)
	}
	return b.String(), nil
}

func (r *ROT47) Decode(text string, p encoder.Param) (string, error) {
	return r.Encode(text, p)
}

// Atbash mirrors each letter across the alphabet (A<->Z, B<->Y).
type Atbash struct {
	encoder.Base
}

// NewAtbash builds the Atbash encoder.
func NewAtbash() *Atbash {
	return &Atbash{Base: encoder.Base{
		IDValue:          "atbash",
		DescriptionValue: "Mirror letters across the alphabet (self-inverse)",
		ReversibleValue:  true,
	}}
}

func (a *Atbash) Encode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isLetter(r) {
			r = letterAt(25-letterIndex(r), r)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (a *Atbash) Decode(text string, p encoder.Param) (string, error) {
	return a.Encode(text, p)
}

// Affine applies E(x) = (a*x + b) mod 26. The multiplier must be coprime
// with 26; anything else is rejected rather than silently producing a
// non-invertible cipher.
type Affine struct {
	encoder.Base
}

// NewAffine builds the affine encoder with default coefficients a=5, b=8.
func NewAffine() *Affine {
	return &Affine{Base: encoder.Base{
		IDValue:          "affine",
		DescriptionValue: "Affine cipher E(x) = (a*x + b) mod 26",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (a *Affine) Encode(text string, p encoder.Param) (string, error) {
	pair, err := encoder.PairOf(p, encoder.PairParam{A: 5, B: 8})
	if err != nil {
		return "", err
	}
	if _, err := modInverse(pair.A, 26); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isLetter(r) {
			r = letterAt(mod(pair.A*letterIndex(r)+pair.B, 26), r)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (a *Affine) Decode(text string, p encoder.Param) (string, error) {
	pair, err := encoder.PairOf(p, encoder.PairParam{A: 5, B: 8})
	if err != nil {
		return "", err
	}
	inv, err := modInverse(pair.A, 26)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isLetter(r) {
			r = letterAt(mod(inv*(letterIndex(r)-pair.B), 26), r)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// modInverse returns the multiplicative inverse of a mod n, or
// ErrInvalidParam when a and n are not coprime.
func modInverse(a, n int) (int, error) {
	a = mod(a, n)
	for x := 1; x < n; x++ {
		if mod(a*x, n) == 1 {
			return x, nil
		}
	}
	return 0, fmt.Errorf("%w: affine multiplier %d is not coprime with %d", encoder.ErrInvalidParam, a, n)
}
