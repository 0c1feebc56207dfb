package classical

import (
	"errors"
	"testing"

	"github.com/harlowgray/transmute/internal/encoder"
)

func TestVigenere(t *testing.T) {
	v := NewVigenere()

	tests := []struct {
		name     string
		input    string
		key      string
		expected string
	}{
		{"classic vector", "ATTACKATDAWN", "LEMON", "LXFOPVEFRNHR"},
		{"key stream skips non-letters", "ATTACK AT DAWN", "LEMON", "LXFOPV EF RNHR"},
		{"case preserved", "Attack at Dawn", "LEMON", "Lxfopv ef Rnhr"},
		{"lowercase key", "HELLO", "abc", "HFNLP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := v.Encode(tt.input, encoder.KeyParam(tt.key))
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("encode: expected %q, got %q", tt.expected, encoded)
			}

			decoded, err := v.Decode(encoded, encoder.KeyParam(tt.key))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.input {
				t.Errorf("roundtrip: expected %q, got %q", tt.input, decoded)
			}
		})
	}
}

func TestVigenereEmptyKeyword(t *testing.T) {
	v := NewVigenere()
	_, err := v.Encode("HELLO", encoder.KeyParam("123"))
	if !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("keyword without letters should be rejected, got %v", err)
	}
}

func TestBeaufort(t *testing.T) {
	b := NewBeaufort()

	encoded, err := b.Encode("Attack at dawn!", encoder.KeyParam("FORTIFY"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Beaufort is self-reciprocal: applying the same formula again
	// recovers the plaintext.
	decoded, err := b.Decode(encoded, encoder.KeyParam("FORTIFY"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "Attack at dawn!" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestAutokey(t *testing.T) {
	a := NewAutokey()

	tests := []struct {
		name  string
		input string
		key   string
	}{
		{"classic", "ATTACKATDAWN", "QUEENLY"},
		{"with punctuation", "Attack at dawn, tomorrow!", "QUEENLY"},
		{"message longer than primer", "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG", "KEY"},
		{"single letter", "A", "K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := a.Encode(tt.input, encoder.KeyParam(tt.key))
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			decoded, err := a.Decode(encoded, encoder.KeyParam(tt.key))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.input {
				t.Errorf("roundtrip: expected %q, got %q", tt.input, decoded)
			}
		})
	}
}

func TestAutokeyKnownVector(t *testing.T) {
	a := NewAutokey()
	// MEET AT THE FOUNTAIN with primer KILT.
	encoded, err := a.Encode("MEETATTHEFOUNTAIN", encoder.KeyParam("KILT"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "WMPMMXXAEYHBRYOCA" {
		t.Errorf("expected %q, got %q", "WMPMMXXAEYHBRYOCA", encoded)
	}
}

func TestGronsfeld(t *testing.T) {
	g := NewGronsfeld()

	encoded, err := g.Encode("HELLO", encoder.KeyParam("12345"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "IGOPT" {
		t.Errorf("expected %q, got %q", "IGOPT", encoded)
	}

	decoded, err := g.Decode(encoded, encoder.KeyParam("12345"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "HELLO" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestGronsfeldRejectsDigitlessKey(t *testing.T) {
	g := NewGronsfeld()
	_, err := g.Encode("HELLO", encoder.KeyParam("ABC"))
	if !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}

func TestTrithemius(t *testing.T) {
	tr := NewTrithemius()

	encoded, err := tr.Encode("abc", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "ace" {
		t.Errorf("expected %q, got %q", "ace", encoded)
	}

	// With a start offset the whole progression shifts.
	encoded, err = tr.Encode("AAA", encoder.ShiftParam(1))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "BCD" {
		t.Errorf("expected %q, got %q", "BCD", encoded)
	}

	decoded, err := tr.Decode("BCD", encoder.ShiftParam(1))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "AAA" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestPorta(t *testing.T) {
	p := NewPorta()

	// Key pair A/B selects the first alphabet: A maps to N.
	encoded, err := p.Encode("A", encoder.KeyParam("A"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "N" {
		t.Errorf("expected %q, got %q", "N", encoded)
	}

	// Self-inverse over a longer message.
	input := "Porta is its own inverse, always."
	encoded, err = p.Encode(input, encoder.KeyParam("SECRET"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := p.Decode(encoded, encoder.KeyParam("SECRET"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != input {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestRunningKey(t *testing.T) {
	rk := NewRunningKey()
	ref := encoder.TextParam("It was the best of times, it was the worst of times")

	input := "Meet me at the usual place at nine."
	encoded, err := rk.Encode(input, ref)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := rk.Decode(encoded, ref)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != input {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestRunningKeyCyclesShortKey(t *testing.T) {
	rk := NewRunningKey()

	// Key has 3 letters; message has more. The key cycles like Vigenere.
	encoded, err := rk.Encode("AAAAAA", encoder.TextParam("BCD"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "BCDBCD" {
		t.Errorf("expected %q, got %q", "BCDBCD", encoded)
	}
}

func TestRunningKeyRequiresLetters(t *testing.T) {
	rk := NewRunningKey()
	if _, err := rk.Encode("HELLO", nil); !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("missing reference text should be rejected, got %v", err)
	}
	if _, err := rk.Encode("HELLO", encoder.TextParam("1234")); !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("letterless reference should be rejected, got %v", err)
	}
}

func TestPolyalphabeticNonLetterPassthrough(t *testing.T) {
	input := "... 123 ---"
	encs := []encoder.Encoder{NewVigenere(), NewBeaufort(), NewAutokey(), NewGronsfeld(), NewTrithemius(), NewPorta()}
	for _, enc := range encs {
		got, err := enc.Encode(input, nil)
		if err != nil {
			t.Fatalf("%s: encode failed: %v", enc.ID(), err)
		}
		if got != input {
			t.Errorf("%s: non-letter input should pass through, got %q", enc.ID(), got)
		}
	}
}
