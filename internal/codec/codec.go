// Package codec holds the byte-level and novelty encoders: textual
// transports (base64, hex, binary, URL, HTML entities), signal alphabets
// (morse, tap code, NATO), digests, and the special-output encoders that
// emit combining marks or zero-width runes. They share the registry with
// the classical ciphers and compose with them in chains.
package codec

import "github.com/harlowgray/transmute/internal/encoder"

// Encoders returns one instance of every codec encoder.
func Encoders() []encoder.Encoder {
	return []encoder.Encoder{
		NewBase64(),
		NewBase64URL(),
		NewHex(),
		NewBinary(),
		NewURL(),
		NewHTML(),
		NewGzip64(),
		NewMorse(),
		NewA1Z26(),
		NewTapCode(),
		NewNATO(),
		NewReverse(),
		NewUpsideDown(),
		NewZalgo(),
		NewInvisibleInk(),
		NewSHA256(),
		NewSHA512(),
		NewBlake3(),
		NewJWT(),
	}
}
