// Package encoder defines the uniform contract every text transformation in
// transmute implements, the typed parameters those transformations accept,
// and the registry that makes them addressable by id.
package encoder

// Encoder represents a single named text transformation. Implementations are
// immutable after construction and safe for concurrent use: Encode and Decode
// are pure functions of their arguments.
type Encoder interface {
	// ID returns the unique, stable identifier for this encoder. Ids are
	// used for persistence and chaining and never change once published.
	ID() string

	// Description returns a human-readable description.
	Description() string

	// Reversible reports whether Decode is a mathematically valid inverse
	// of Encode.
	Reversible() bool

	// HasSettings reports whether Encode and Decode accept a parameter.
	HasSettings() bool

	// Special reports whether the output is non-literal (for example
	// contains zero-width characters) and must be displayed specially.
	Special() bool

	// Encode applies the transformation to text.
	Encode(text string, p Param) (string, error)

	// Decode inverts the transformation. Non-reversible encoders return
	// ErrNotReversible.
	Decode(text string, p Param) (string, error)
}

// Base provides the descriptor half of the Encoder contract. Concrete
// encoders embed it and implement Encode (and Decode when reversible); the
// default Decode fails with ErrNotReversible.
type Base struct {
	IDValue          string
	DescriptionValue string
	ReversibleValue  bool
	SettingsValue    bool
	SpecialValue     bool
}

func (b *Base) ID() string { return b.IDValue }

func (b *Base) Description() string { return b.DescriptionValue }

func (b *Base) Reversible() bool { return b.ReversibleValue }

func (b *Base) HasSettings() bool { return b.SettingsValue }

func (b *Base) Special() bool { return b.SpecialValue }

func (b *Base) Decode(text string, p Param) (string, error) {
	return "", ErrNotReversible
}
