package classical

import (
	"errors"
	"testing"

	"github.com/harlowgray/transmute/internal/encoder"
)

func TestCaesar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shift    int
		expected string
	}{
		{"classic shift 3", "HELLO", 3, "KHOOR"},
		{"case preserved", "Hello, World!", 3, "Khoor, Zruog!"},
		{"wraparound", "xyz", 3, "abc"},
		{"shift normalized mod 26", "abc", 29, "def"},
		{"negative shift", "DEF", -3, "ABC"},
		{"non-letters only", "123 !?", 7, "123 !?"},
		{"empty", "", 5, ""},
	}

	c := NewCaesar()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := c.Encode(tt.input, encoder.ShiftParam(tt.shift))
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("encode: expected %q, got %q", tt.expected, encoded)
			}

			decoded, err := c.Decode(encoded, encoder.ShiftParam(tt.shift))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.input {
				t.Errorf("roundtrip: expected %q, got %q", tt.input, decoded)
			}
		})
	}
}

func TestCaesarDefaultShift(t *testing.T) {
	c := NewCaesar()
	encoded, err := c.Encode("ABC", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "DEF" {
		t.Errorf("default shift should be 3, got %q", encoded)
	}
}

func TestCaesarWrongParamVariant(t *testing.T) {
	c := NewCaesar()
	_, err := c.Encode("ABC", encoder.KeyParam("ZEBRA"))
	if !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}

func TestROTN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		shift    int
		expected string
	}{
		{"default matches rot13", "Hello", 13, "Uryyb"},
		{"shift 1", "abz", 1, "bca"},
		{"shift 25", "ABC", 25, "ZAB"},
		{"negative shift", "bcd", -1, "abc"},
		{"non-letters pass through", "R2-D2!", 7, "Y2-K2!"},
	}

	r := NewROTN()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := r.Encode(tt.input, encoder.ShiftParam(tt.shift))
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("encode: expected %q, got %q", tt.expected, encoded)
			}

			decoded, err := r.Decode(encoded, encoder.ShiftParam(tt.shift))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.input {
				t.Errorf("roundtrip: expected %q, got %q", tt.input, decoded)
			}
		})
	}
}

func TestROTNDefaultShift(t *testing.T) {
	r := NewROTN()
	encoded, err := r.Encode("Uryyb", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "Hello" {
		t.Errorf("default shift should be 13, got %q", encoded)
	}

	_, err = r.Encode("ABC", encoder.KeyParam("ZEBRA"))
	if !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}

func TestROT13(t *testing.T) {
	r := NewROT13()

	encoded, err := r.Encode("Why did the chicken cross the road?", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "Jul qvq gur puvpxra pebff gur ebnq?" {
		t.Errorf("unexpected output %q", encoded)
	}

	// Self-inverse.
	decoded, err := r.Encode(encoded, nil)
	if err != nil {
		t.Fatalf("second encode failed: %v", err)
	}
	if decoded != "Why did the chicken cross the road?" {
		t.Errorf("double ROT13 should be identity, got %q", decoded)
	}
}

func TestROT5(t *testing.T) {
	r := NewROT5()

	encoded, _ := r.Encode("agent 007", nil)
	if encoded != "agent 552" {
		t.Errorf("expected %q, got %q", "agent 552", encoded)
	}

	decoded, _ := r.Decode(encoded, nil)
	if decoded != "agent 007" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestROT18(t *testing.T) {
	r := NewROT18()

	encoded, _ := r.Encode("Crate 42", nil)
	if encoded != "Pengr 97" {
		t.Errorf("expected %q, got %q", "Pengr 97", encoded)
	}

	decoded, _ := r.Decode(encoded, nil)
	if decoded != "Crate 42" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestROT47(t *testing.T) {
	r := NewROT47()

	encoded, _ := r.Encode("Hello, World!", nil)
	decoded, _ := r.Decode(encoded, nil)
	if decoded != "Hello, World!" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
	if encoded == "Hello, World!" {
		t.Error("encode should change printable ASCII")
	}

	// Space is outside the rotated range and passes through.
	spaced, _ := r.Encode(" ", nil)
	if spaced != " " {
		t.Errorf("space should pass through, got %q", spaced)
	}
}

func TestAtbash(t *testing.T) {
	a := NewAtbash()

	tests := []struct {
		input    string
		expected string
	}{
		{"ABC", "ZYX"},
		{"Hello", "Svool"},
		{"atbash 123!", "zgyzhs 123!"},
	}

	for _, tt := range tests {
		encoded, _ := a.Encode(tt.input, nil)
		if encoded != tt.expected {
			t.Errorf("Encode(%q) = %q, want %q", tt.input, encoded, tt.expected)
		}
		decoded, _ := a.Decode(encoded, nil)
		if decoded != tt.input {
			t.Errorf("roundtrip of %q failed: %q", tt.input, decoded)
		}
	}
}

func TestAffine(t *testing.T) {
	a := NewAffine()

	// Known vector: a=5, b=8.
	encoded, err := a.Encode("AFFINECIPHER", encoder.PairParam{A: 5, B: 8})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "IHHWVCSWFRCP" {
		t.Errorf("expected %q, got %q", "IHHWVCSWFRCP", encoded)
	}

	decoded, err := a.Decode(encoded, encoder.PairParam{A: 5, B: 8})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "AFFINECIPHER" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestAffineCasePreserved(t *testing.T) {
	a := NewAffine()
	encoded, _ := a.Encode("Affine Cipher!", encoder.PairParam{A: 7, B: 2})
	decoded, _ := a.Decode(encoded, encoder.PairParam{A: 7, B: 2})
	if decoded != "Affine Cipher!" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestAffineRejectsNonCoprimeMultiplier(t *testing.T) {
	a := NewAffine()

	for _, badA := range []int{13, 2, 26, 0} {
		_, err := a.Encode("HELLO", encoder.PairParam{A: badA, B: 1})
		if !errors.Is(err, encoder.ErrInvalidParam) {
			t.Errorf("a=%d: expected ErrInvalidParam, got %v", badA, err)
		}
		_, err = a.Decode("HELLO", encoder.PairParam{A: badA, B: 1})
		if !errors.Is(err, encoder.ErrInvalidParam) {
			t.Errorf("a=%d decode: expected ErrInvalidParam, got %v", badA, err)
		}
	}
}

func TestShiftFamilyNonLetterPassthrough(t *testing.T) {
	input := "1234 .,;! é世"
	for _, enc := range []encoder.Encoder{NewCaesar(), NewROTN(), NewROT13(), NewAtbash(), NewAffine()} {
		got, err := enc.Encode(input, nil)
		if err != nil {
			t.Fatalf("%s: encode failed: %v", enc.ID(), err)
		}
		if got != input {
			t.Errorf("%s: non-letter input should pass through, got %q", enc.ID(), got)
		}
	}
}
