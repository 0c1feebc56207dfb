package compose

import (
	"errors"
	"testing"

	"github.com/harlowgray/transmute/internal/classical"
	"github.com/harlowgray/transmute/internal/codec"
	"github.com/harlowgray/transmute/internal/encoder"
)

func testRegistry(t *testing.T) *encoder.Registry {
	t.Helper()
	reg, err := encoder.NewRegistry(append(classical.Encoders(), codec.Encoders()...))
	if err != nil {
		t.Fatalf("registry construction failed: %v", err)
	}
	return reg
}

func TestChainEncodeDecode(t *testing.T) {
	reg := testRegistry(t)

	chain, err := NewChain(reg, []Step{
		{ID: "caesar", Param: encoder.ShiftParam(5)},
		{ID: "atbash"},
		{ID: "vigenere", Param: encoder.KeyParam("KEY")},
	})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}
	if !chain.Reversible() {
		t.Fatal("chain of reversible links must be reversible")
	}

	input := "Attack at dawn, 6am!"
	encoded, err := chain.Encode(input)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(encoded.Steps) != 3 {
		t.Fatalf("expected 3 step outputs, got %d", len(encoded.Steps))
	}
	if encoded.Steps[2].Output != encoded.Output {
		t.Error("final step output must equal chain output")
	}
	if encoded.Output == input {
		t.Error("chain should transform the text")
	}

	decoded := chain.Decode(encoded.Output)
	if decoded.Failed {
		t.Fatalf("decode failed at %s: %v", decoded.FailedStep, decoded.StepErr)
	}
	if decoded.Output != input {
		t.Errorf("roundtrip: expected %q, got %q", input, decoded.Output)
	}
}

func TestChainIntermediateOutputs(t *testing.T) {
	reg := testRegistry(t)

	chain, err := NewChain(reg, []Step{
		{ID: "rot13"},
		{ID: "reverse"},
	})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	result, err := chain.Encode("AB")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if result.Steps[0].Output != "NO" {
		t.Errorf("rot13 step: expected %q, got %q", "NO", result.Steps[0].Output)
	}
	if result.Steps[1].Output != "ON" {
		t.Errorf("reverse step: expected %q, got %q", "ON", result.Steps[1].Output)
	}
}

func TestChainReversibleIsConjunction(t *testing.T) {
	reg := testRegistry(t)

	reversible, err := NewChain(reg, []Step{{ID: "caesar"}, {ID: "base64"}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}
	if !reversible.Reversible() {
		t.Error("all-reversible chain reported irreversible")
	}

	oneWay, err := NewChain(reg, []Step{{ID: "caesar"}, {ID: "sha256"}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}
	if oneWay.Reversible() {
		t.Error("chain with a hash link reported reversible")
	}
}

func TestChainDecodeStopsAtOneWayLink(t *testing.T) {
	reg := testRegistry(t)

	chain, err := NewChain(reg, []Step{{ID: "caesar"}, {ID: "sha256"}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	result := chain.Decode("whatever")
	if !result.Failed {
		t.Fatal("decode through a hash must be flagged as failed")
	}
	if result.FailedStep != "sha256" {
		t.Errorf("expected failure at sha256, got %s", result.FailedStep)
	}
	if !errors.Is(result.StepErr, encoder.ErrNotReversible) {
		t.Errorf("expected ErrNotReversible, got %v", result.StepErr)
	}
	// Nothing was consumed before the failing step.
	if result.Output != "whatever" {
		t.Errorf("partial output: expected %q, got %q", "whatever", result.Output)
	}
}

func TestChainDecodeStopsAtFailingLink(t *testing.T) {
	reg := testRegistry(t)

	chain, err := NewChain(reg, []Step{{ID: "caesar"}, {ID: "binary"}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	result := chain.Decode("this is not binary")
	if !result.Failed {
		t.Fatal("decode of malformed input must be flagged as failed")
	}
	if result.FailedStep != "binary" {
		t.Errorf("expected failure at binary, got %s", result.FailedStep)
	}
	if !errors.Is(result.StepErr, encoder.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", result.StepErr)
	}
}

func TestChainPartialDecodeOutput(t *testing.T) {
	reg := testRegistry(t)

	// base64 succeeds, then the nested binary layer fails: the partial
	// output is the base64-decoded text.
	chain, err := NewChain(reg, []Step{{ID: "binary"}, {ID: "base64"}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	result := chain.Decode("bm90IGJpbmFyeQ==")
	if !result.Failed || result.FailedStep != "binary" {
		t.Fatalf("expected failure at binary, got %+v", result)
	}
	if result.Output != "not binary" {
		t.Errorf("partial output: expected %q, got %q", "not binary", result.Output)
	}
	if len(result.Steps) != 1 || result.Steps[0].ID != "base64" {
		t.Errorf("expected one completed step (base64), got %+v", result.Steps)
	}
}

func TestNewChainValidation(t *testing.T) {
	reg := testRegistry(t)

	if _, err := NewChain(reg, nil); err == nil {
		t.Error("empty chain must be rejected")
	}
	if _, err := NewChain(reg, []Step{{ID: "nope"}}); err == nil {
		t.Error("unknown encoder id must be rejected")
	}
	if _, err := NewChain(nil, []Step{{ID: "caesar"}}); err == nil {
		t.Error("nil registry must be rejected")
	}
}

func TestChainEncodeSurfacesStepErrors(t *testing.T) {
	reg := testRegistry(t)

	chain, err := NewChain(reg, []Step{{ID: "affine", Param: encoder.PairParam{A: 13, B: 1}}})
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	if _, err := chain.Encode("HELLO"); !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}
