package codec

import (
	"errors"
	"testing"

	"github.com/harlowgray/transmute/internal/encoder"
)

func TestMorse(t *testing.T) {
	e := NewMorse()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"distress", "SOS", "... --- ..."},
		{"two words", "HELLO WORLD", ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."},
		{"digits", "73", "--... ...--"},
		{"lowercase folded", "sos", "... --- ..."},
		{"uncodable runes dropped", "S!O?S", "... --- ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := e.Encode(tt.input, nil)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, encoded)
			}
		})
	}
}

func TestMorseDecode(t *testing.T) {
	e := NewMorse()

	decoded, err := e.Decode(".... . .-.. .-.. --- / .-- --- .-. .-.. -..", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "HELLO WORLD" {
		t.Errorf("expected %q, got %q", "HELLO WORLD", decoded)
	}

	// Unknown sequences pass through.
	decoded, err = e.Decode("... ........ ...", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "S........S" {
		t.Errorf("expected %q, got %q", "S........S", decoded)
	}
}

func TestA1Z26(t *testing.T) {
	e := NewA1Z26()

	encoded, err := e.Encode("HELLO WORLD", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "8-5-12-12-15 23-15-18-12-4" {
		t.Errorf("expected %q, got %q", "8-5-12-12-15 23-15-18-12-4", encoded)
	}

	decoded, err := e.Decode(encoded, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "HELLO WORLD" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestA1Z26DecodeLeavesBadTokens(t *testing.T) {
	e := NewA1Z26()

	decoded, err := e.Decode("8-99-x-5", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "H99xE" {
		t.Errorf("expected %q, got %q", "H99xE", decoded)
	}
}

func TestTapCode(t *testing.T) {
	e := NewTapCode()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first letters", "AB", ". .  . .."},
		{"k folds into c", "K", ". ..."},
		{"two words", "GO UP", ".. ..  ... .... / .... .....  ... ....."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := e.Encode(tt.input, nil)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, encoded)
			}
		})
	}
}

func TestTapCodeDecode(t *testing.T) {
	e := NewTapCode()

	decoded, err := e.Decode(". .  . ..", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "AB" {
		t.Errorf("expected %q, got %q", "AB", decoded)
	}

	// K comes back as C by design of the square.
	encoded, err := e.Encode("KNOCK", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err = e.Decode(encoded, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "CNOCC" {
		t.Errorf("expected %q, got %q", "CNOCC", decoded)
	}
}

func TestTapCodeDecodeErrors(t *testing.T) {
	e := NewTapCode()

	if _, err := e.Decode(". . .", nil); !errors.Is(err, encoder.ErrMalformedInput) {
		t.Errorf("three runs: expected ErrMalformedInput, got %v", err)
	}
	if _, err := e.Decode("...... .", nil); !errors.Is(err, encoder.ErrMalformedInput) {
		t.Errorf("oversized run: expected ErrMalformedInput, got %v", err)
	}
}

func TestNATO(t *testing.T) {
	e := NewNATO()

	encoded, err := e.Encode("GO 9", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "Golf Oscar / Niner" {
		t.Errorf("expected %q, got %q", "Golf Oscar / Niner", encoded)
	}

	decoded, err := e.Decode("golf OSCAR / niner", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "GO 9" {
		t.Errorf("expected %q, got %q", "GO 9", decoded)
	}

	// Unknown words pass through.
	decoded, err = e.Decode("Golf Banana", nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "GBanana" {
		t.Errorf("expected %q, got %q", "GBanana", decoded)
	}
}

func TestReverse(t *testing.T) {
	e := NewReverse()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ascii", "hello", "olleh"},
		{"multibyte runes survive", "héllo", "olléh"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := e.Encode(tt.input, nil)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if encoded != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, encoded)
			}

			decoded, err := e.Decode(encoded, nil)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded != tt.input {
				t.Errorf("roundtrip failed: %q", decoded)
			}
		})
	}
}

func TestUpsideDown(t *testing.T) {
	e := NewUpsideDown()

	encoded, err := e.Encode("hello", nil)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "ollǝɥ" {
		t.Errorf("expected %q, got %q", "ollǝɥ", encoded)
	}

	decoded, err := e.Decode(encoded, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != "hello" {
		t.Errorf("roundtrip failed: %q", decoded)
	}
}

func TestUpsideDownRoundTrip(t *testing.T) {
	e := NewUpsideDown()

	inputs := []string{"the quick brown fox", "WAIT!", "(a) [b] {c}", "1234567890"}
	for _, input := range inputs {
		encoded, err := e.Encode(input, nil)
		if err != nil {
			t.Fatalf("encode %q failed: %v", input, err)
		}
		decoded, err := e.Decode(encoded, nil)
		if err != nil {
			t.Fatalf("decode %q failed: %v", encoded, err)
		}
		if decoded != input {
			t.Errorf("roundtrip of %q gave %q", input, decoded)
		}
	}
}
