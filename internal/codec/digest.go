package codec

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/harlowgray/transmute/internal/encoder"
)

// SHA256 renders the SHA-256 digest as lowercase hex. One way.
type SHA256 struct {
	encoder.Base
}

func NewSHA256() *SHA256 {
	return &SHA256{Base: encoder.Base{
		IDValue:          "sha256",
		DescriptionValue: "SHA-256 digest as hex",
		ReversibleValue:  false,
	}}
}

func (e *SHA256) Encode(text string, p encoder.Param) (string, error) {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// SHA512 renders the SHA-512 digest as lowercase hex. One way.
type SHA512 struct {
	encoder.Base
}

func NewSHA512() *SHA512 {
	return &SHA512{Base: encoder.Base{
		IDValue:          "sha512",
		DescriptionValue: "SHA-512 digest as hex",
		ReversibleValue:  false,
	}}
}

func (e *SHA512) Encode(text string, p encoder.Param) (string, error) {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// Blake3 renders the BLAKE3 digest as lowercase hex. One way.
type Blake3 struct {
	encoder.Base
}

func NewBlake3() *Blake3 {
	return &Blake3{Base: encoder.Base{
		IDValue:          "blake3",
		DescriptionValue: "BLAKE3 digest as hex",
		ReversibleValue:  false,
	}}
}

func (e *Blake3) Encode(text string, p encoder.Param) (string, error) {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}
