// Package wire serializes chain and shuffle specs, recipes and parameters
// for files, URLs and APIs. Two codecs cover the two audiences: JSON for
// anything a person might read or edit, CBOR for compact machine exchange.
package wire

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// Codec turns values into bytes and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the human-readable codec.
type JSONCodec struct {
	// Indent pretty-prints output when set.
	Indent bool
}

func (c JSONCodec) Name() string { return "json" }

func (c JSONCodec) Marshal(v any) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (c JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// CBORCodec is the compact binary codec. Honors the same field tags as
// JSON.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBORCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
