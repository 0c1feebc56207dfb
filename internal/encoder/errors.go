package encoder

import "errors"

// Sentinel errors shared by every encoder family. Algorithms wrap these with
// context rather than inventing per-package error types, so callers can
// classify failures with errors.Is.
var (
	// ErrNotReversible is returned by Decode on one-way encoders.
	ErrNotReversible = errors.New("encoder is not reversible")

	// ErrInvalidParam marks a parameter the algorithm deterministically
	// rejects (wrong variant, empty keyword, affine key not coprime).
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrMalformedInput marks input that cannot be parsed as this
	// encoder's output format.
	ErrMalformedInput = errors.New("malformed input")
)
