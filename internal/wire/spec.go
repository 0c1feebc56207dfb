package wire

import (
	"fmt"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Param kinds on the wire.
const (
	KindShift   = "shift"
	KindInt     = "int"
	KindKey     = "key"
	KindText    = "text"
	KindDualKey = "dualkey"
	KindPair    = "pair"
)

// Param is the serializable form of an encoder parameter. A nil *Param
// means "encoder default", mirroring a nil parameter in the engine.
type Param struct {
	Kind   string `json:"kind"`
	Int    int    `json:"int,omitempty"`
	Key    string `json:"key,omitempty"`
	Text   string `json:"text,omitempty"`
	First  string `json:"first,omitempty"`
	Second string `json:"second,omitempty"`
	A      int    `json:"a,omitempty"`
	B      int    `json:"b,omitempty"`
}

// FromParam converts an engine parameter for serialization.
func FromParam(p encoder.Param) (*Param, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case encoder.ShiftParam:
		return &Param{Kind: KindShift, Int: int(v)}, nil
	case encoder.IntParam:
		return &Param{Kind: KindInt, Int: int(v)}, nil
	case encoder.KeyParam:
		return &Param{Kind: KindKey, Key: string(v)}, nil
	case encoder.TextParam:
		return &Param{Kind: KindText, Text: string(v)}, nil
	case encoder.DualKeyParam:
		return &Param{Kind: KindDualKey, First: v.First, Second: v.Second}, nil
	case encoder.PairParam:
		return &Param{Kind: KindPair, A: v.A, B: v.B}, nil
	default:
		return nil, fmt.Errorf("unserializable parameter type %T", p)
	}
}

// ToParam converts back to an engine parameter.
func (p *Param) ToParam() (encoder.Param, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Kind {
	case KindShift:
		return encoder.ShiftParam(p.Int), nil
	case KindInt:
		return encoder.IntParam(p.Int), nil
	case KindKey:
		return encoder.KeyParam(p.Key), nil
	case KindText:
		return encoder.TextParam(p.Text), nil
	case KindDualKey:
		return encoder.DualKeyParam{First: p.First, Second: p.Second}, nil
	case KindPair:
		return encoder.PairParam{A: p.A, B: p.B}, nil
	default:
		return nil, fmt.Errorf("unknown parameter kind %q", p.Kind)
	}
}

// ChainStep is one serialized chain link.
type ChainStep struct {
	Encoder string `json:"encoder"`
	Param   *Param `json:"param,omitempty"`
}

// ChainSpec is an ordered pipeline on the wire.
type ChainSpec struct {
	Steps []ChainStep `json:"steps"`
}

// ShuffleSpec is a palette on the wire; order carries no meaning.
type ShuffleSpec struct {
	Palette []string `json:"palette"`
}
