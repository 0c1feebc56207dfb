package classical

import (
	"errors"
	"testing"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Default keyword SENORITA yields shift prefixes 8 and 0, top row
// S=1 E=2 N=3 O=4 R=5 I=6 T=7 A=9, and rows BCDFGHJKLM / PQUVWXYZ./
// under the two prefixes.
func TestCheckerboardEncode(t *testing.T) {
	c := NewCheckerboard()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"top row only", "SENORITA", "12345679"},
		{"straddled letters", "HELLO", "85288884"},
		{"digit escaped", "A1", "9091"},
		{"period coded", ".", "08"},
		{"space passes through", "NO GO", "34 844"},
		{"literal slash passes through", "A/B", "9/80"},
		{"case folded", "senorita", "12345679"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := c.Encode(tt.input, nil)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, encoded)
			}
		})
	}
}

func TestCheckerboardDecode(t *testing.T) {
	c := NewCheckerboard()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"top row only", "12345679", "SENORITA"},
		{"straddled letters", "85288884", "HELLO"},
		{"digit escape", "9091", "A1"},
		{"escape at end of stream", "091", "1"},
		{"mixed prefixes back to back", "8008", "B."},
		{"non-digits pass through", "34 844", "NO GO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := c.Decode(tt.input, nil)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, decoded)
			}
		})
	}
}

func TestCheckerboardDecodeErrors(t *testing.T) {
	c := NewCheckerboard()

	tests := []struct {
		name  string
		input string
	}{
		{"dangling first shift", "8"},
		{"dangling second shift", "0"},
		{"shift followed by non-digit", "8x"},
		{"escape without digit", "09"},
		{"escape followed by non-digit", "09x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Decode(tt.input, nil); !errors.Is(err, encoder.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestCheckerboardRoundTrip(t *testing.T) {
	c := NewCheckerboard()

	inputs := []string{
		"THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG",
		"MEET AT 0600.",
		"X",
		"9",
		"A.B.C/D",
		"DIGITS 0123456789 EVERYWHERE",
	}

	for _, input := range inputs {
		encoded, err := c.Encode(input, nil)
		if err != nil {
			t.Fatalf("encode %q failed: %v", input, err)
		}
		decoded, err := c.Decode(encoded, nil)
		if err != nil {
			t.Fatalf("decode %q failed: %v", encoded, err)
		}
		if decoded != input {
			t.Errorf("roundtrip of %q gave %q", input, decoded)
		}
	}
}

func TestCheckerboardCustomKeyword(t *testing.T) {
	c := NewCheckerboard()

	encoded, err := c.Encode("STRIKE AT DAWN", encoder.KeyParam("BLACKSMITH"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := c.Decode(encoded, encoder.KeyParam("BLACKSMITH"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "STRIKE AT DAWN" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

// ABCDEFGK puts A and K at the ends of the top row; both map to shift
// digit 0, so the second prefix must be bumped to stay distinct.
func TestCheckerboardShiftCollision(t *testing.T) {
	c := NewCheckerboard()
	key := encoder.KeyParam("ABCDEFGK")

	encoded, err := c.Encode("COLLIDE", key)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := c.Decode(encoded, key)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "COLLIDE" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestCheckerboardRejectsShortKeyword(t *testing.T) {
	c := NewCheckerboard()
	_, err := c.Encode("HELLO", encoder.KeyParam("BANANA"))
	if !errors.Is(err, encoder.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
}
