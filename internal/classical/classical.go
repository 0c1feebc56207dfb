// Package classical implements the historical cipher catalog: shift and
// affine ciphers, polyalphabetic key-stream ciphers, grid and digraph
// ciphers, and the transposition family. Every encoder follows the uniform
// contract from the encoder package and is pure and reentrant.
package classical

import (
	"github.com/harlowgray/transmute/internal/encoder"
)

// Encoders returns every classical encoder, ready for registry construction.
func Encoders() []encoder.Encoder {
	return []encoder.Encoder{
		NewCaesar(),
		NewROTN(),
		NewROT13(),
		NewROT5(),
		NewROT18(),
		NewROT47(),
		NewAtbash(),
		NewAffine(),
		NewVigenere(),
		NewBeaufort(),
		NewAutokey(),
		NewGronsfeld(),
		NewTrithemius(),
		NewPorta(),
		NewRunningKey(),
		NewPlayfair(),
		NewFourSquare(),
		NewPolybius(),
		NewADFGVX(),
		NewNihilist(),
		NewRailFence(),
		NewColumnar(),
		NewDoubleTransposition(),
		NewScytale(),
		NewCheckerboard(),
		NewHomophonic(),
		NewBookCipher(),
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// shiftLetter shifts a letter within its case's alphabet, passing every other
// rune through unchanged.
func shiftLetter(r rune, n int) rune {
	switch {
	case isUpper(r):
		return 'A' + rune(mod(int(r-'A')+n, 26))
	case isLower(r):
		return 'a' + rune(mod(int(r-'a')+n, 26))
	default:
		return r
	}
}

// shiftDigit shifts a decimal digit mod 10, passing other runes through.
func shiftDigit(r rune, n int) rune {
	if !isDigit(r) {
		return r
	}
	return '0' + rune(mod(int(r-'0')+n, 10))
}

// letterIndex maps a letter of either case to 0-25.
func letterIndex(r rune) int {
	if isLower(r) {
		return int(r - 'a')
	}
	return int(r - 'A')
}

// letterAt restores a 0-25 index to a letter, matching the case of the
// original rune.
func letterAt(i int, like rune) rune {
	if isLower(like) {
		return 'a' + rune(i)
	}
	return 'A' + rune(i)
}
