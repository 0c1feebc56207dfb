// Package catalog assembles the default encoder set and maps each
// parameterized encoder to the wire kind of its parameter.
package catalog

import (
	"fmt"

	"github.com/harlowgray/transmute/internal/classical"
	"github.com/harlowgray/transmute/internal/codec"
	"github.com/harlowgray/transmute/internal/custom"
	"github.com/harlowgray/transmute/internal/encoder"
	"github.com/harlowgray/transmute/internal/wire"
)

// leetSpec is the stock leetspeak table, shipped as a table-driven encoder
// to exercise the same machinery user-defined encoders run on.
var leetSpec = custom.Spec{
	Name:        "Leetspeak",
	Emoji:       "🕹️",
	Description: "Classic letter-to-symbol substitutions",
	Mapping: []custom.Pair{
		{From: "a", To: "4"},
		{From: "b", To: "8"},
		{From: "e", To: "3"},
		{From: "g", To: "6"},
		{From: "i", To: "1"},
		{From: "o", To: "0"},
		{From: "s", To: "5"},
		{From: "t", To: "7"},
		{From: "z", To: "2"},
	},
	Tags: []string{"fun", "substitution"},
}

// Builtin returns the full stock encoder set.
func Builtin() []encoder.Encoder {
	out := classical.Encoders()
	out = append(out, codec.Encoders()...)

	leet, err := custom.BuildWithID("leetspeak", leetSpec)
	if err != nil {
		// The table is fixed at compile time; a build failure is a bug.
		panic(fmt.Sprintf("build leetspeak encoder: %v", err))
	}
	out = append(out, leet)

	return out
}

// NewRegistry builds a registry seeded with the stock encoder set.
func NewRegistry() (*encoder.Registry, error) {
	return encoder.NewRegistry(Builtin())
}

// paramKinds maps each parameterized stock encoder to its wire kind. Encoders
// absent from the table take no parameter.
var paramKinds = map[string]string{
	"caesar":              wire.KindShift,
	"rotn":                wire.KindShift,
	"affine":              wire.KindPair,
	"vigenere":            wire.KindKey,
	"beaufort":            wire.KindKey,
	"autokey":             wire.KindKey,
	"gronsfeld":           wire.KindKey,
	"trithemius":          wire.KindShift,
	"porta":               wire.KindKey,
	"runningkey":          wire.KindText,
	"playfair":            wire.KindKey,
	"foursquare":          wire.KindDualKey,
	"railfence":           wire.KindInt,
	"columnar":            wire.KindKey,
	"doubletransposition": wire.KindDualKey,
	"scytale":             wire.KindInt,
	"polybius":            wire.KindInt,
	"adfgvx":              wire.KindDualKey,
	"nihilist":            wire.KindDualKey,
	"checkerboard":        wire.KindKey,
	"homophonic":          wire.KindInt,
	"bookcipher":          wire.KindText,
	"zalgo":               wire.KindInt,
	"jwt":                 wire.KindKey,
}

// ParamKind reports the wire parameter kind for a stock encoder id. ok is
// false for encoders that take no parameter.
func ParamKind(id string) (kind string, ok bool) {
	kind, ok = paramKinds[id]
	return kind, ok
}
