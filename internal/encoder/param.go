package encoder

import "fmt"

// Param is the typed parameter an encoder accepts. Each encoder family
// consumes exactly one variant; passing a different variant is an
// ErrInvalidParam, never a silent fallback. A nil Param always means "use the
// encoder's default".
type Param interface {
	isParam()
}

// ShiftParam carries an additive shift for the Caesar family. Values are
// normalized modulo the alphabet size by the consuming encoder.
type ShiftParam int

func (ShiftParam) isParam() {}

// IntParam carries a small structural count: rail count, scytale diameter,
// homophonic complexity, grid size.
type IntParam int

func (IntParam) isParam() {}

// KeyParam carries a single keyword.
type KeyParam string

func (KeyParam) isParam() {}

// TextParam carries long free text: a running key or a book-cipher reference
// text.
type TextParam string

func (TextParam) isParam() {}

// DualKeyParam carries the two keywords of double transposition and ADFGVX.
type DualKeyParam struct {
	First  string
	Second string
}

func (DualKeyParam) isParam() {}

// PairParam carries the two integer coefficients of the affine cipher.
type PairParam struct {
	A int
	B int
}

func (PairParam) isParam() {}

// ShiftOf extracts a ShiftParam, substituting def when p is nil.
func ShiftOf(p Param, def int) (int, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case ShiftParam:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: want shift, got %T", ErrInvalidParam, p)
	}
}

// IntOf extracts an IntParam, substituting def when p is nil.
func IntOf(p Param, def int) (int, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case IntParam:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: want int, got %T", ErrInvalidParam, p)
	}
}

// KeyOf extracts a KeyParam, substituting def when p is nil.
func KeyOf(p Param, def string) (string, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case KeyParam:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: want keyword, got %T", ErrInvalidParam, p)
	}
}

// TextOf extracts a TextParam, substituting def when p is nil.
func TextOf(p Param, def string) (string, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case TextParam:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: want text, got %T", ErrInvalidParam, p)
	}
}

// PairOf extracts a PairParam, substituting def when p is nil.
func PairOf(p Param, def PairParam) (PairParam, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case PairParam:
		return v, nil
	default:
		return PairParam{}, fmt.Errorf("%w: want coefficient pair, got %T", ErrInvalidParam, p)
	}
}

// DualKeyOf extracts a DualKeyParam, substituting def when p is nil.
func DualKeyOf(p Param, def DualKeyParam) (DualKeyParam, error) {
	switch v := p.(type) {
	case nil:
		return def, nil
	case DualKeyParam:
		return v, nil
	default:
		return DualKeyParam{}, fmt.Errorf("%w: want dual keyword, got %T", ErrInvalidParam, p)
	}
}
