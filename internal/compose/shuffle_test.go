package compose

import (
	"errors"
	"strings"
	"testing"

	"github.com/harlowgray/transmute/internal/encoder"
)

func TestShuffleRoundTrip(t *testing.T) {
	reg := testRegistry(t)

	shuffle, err := NewShuffle(reg, []string{"caesar", "atbash", "rot13", "reverse"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	inputs := []string{
		"Attack at dawn!",
		"a",
		"",
		"punctuation, too: 1-2-3",
	}

	for _, input := range inputs {
		encoded, err := shuffle.Encode(input)
		if err != nil {
			t.Fatalf("encode %q failed: %v", input, err)
		}
		decoded, err := shuffle.Decode(encoded)
		if err != nil {
			t.Fatalf("decode %q failed: %v", encoded, err)
		}
		if decoded != input {
			t.Errorf("roundtrip of %q gave %q", input, decoded)
		}
	}
}

func TestShuffleRoundTripRepeated(t *testing.T) {
	reg := testRegistry(t)

	shuffle, err := NewShuffle(reg, []string{"caesar", "atbash", "binary"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	// Random member choice differs run to run; the roundtrip must not.
	input := "The same text every time."
	for i := 0; i < 16; i++ {
		encoded, err := shuffle.Encode(input)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		decoded, err := shuffle.Decode(encoded)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded != input {
			t.Fatalf("run %d: roundtrip gave %q", i, decoded)
		}
	}
}

func TestShufflePaletteOrderDoesNotMatter(t *testing.T) {
	reg := testRegistry(t)

	// The same ids in a different order must read the same stream: frame
	// indices point into the canonical palette, not the listing order.
	writer, err := NewShuffle(reg, []string{"caesar", "atbash"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}
	reader, err := NewShuffle(reg, []string{"atbash", "caesar"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	input := "HELLOWORLD"
	for i := 0; i < 16; i++ {
		encoded, err := writer.Encode(input)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		decoded, err := reader.Decode(encoded)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if decoded != input {
			t.Fatalf("run %d: cross-order decode gave %q", i, decoded)
		}
	}
}

func TestShufflePaletteCanonicalized(t *testing.T) {
	reg := testRegistry(t)

	shuffle, err := NewShuffle(reg, []string{"rot13", "caesar", "rot13", "atbash"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	got := shuffle.Palette()
	want := []string{"atbash", "caesar", "rot13"}
	if len(got) != len(want) {
		t.Fatalf("expected palette %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected palette %v, got %v", want, got)
		}
	}
}

func TestShuffleFraming(t *testing.T) {
	reg := testRegistry(t)

	// A palette of one makes the output deterministic.
	shuffle, err := NewShuffle(reg, []string{"atbash"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	encoded, err := shuffle.Encode("AB")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "0:1:Z0:1:Y" {
		t.Errorf("expected %q, got %q", "0:1:Z0:1:Y", encoded)
	}
}

func TestShuffleFramingSurvivesDigitsAndColons(t *testing.T) {
	reg := testRegistry(t)

	// Binary payloads are all digits; the rune count keeps the frames
	// unambiguous anyway.
	shuffle, err := NewShuffle(reg, []string{"binary"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	input := "1:2:3"
	encoded, err := shuffle.Encode(input)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := shuffle.Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != input {
		t.Errorf("roundtrip of %q gave %q", input, decoded)
	}
}

func TestShuffleDecodeFailsClosed(t *testing.T) {
	reg := testRegistry(t)

	shuffle, err := NewShuffle(reg, []string{"caesar", "atbash"})
	if err != nil {
		t.Fatalf("NewShuffle failed: %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"no frame head", "just text"},
		{"missing length", "0:"},
		{"missing payload separator", "0:1A"},
		{"index out of range", "9:1:A"},
		{"length past end", "0:5:AB"},
		{"truncated tail", "0:1:A1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := shuffle.Decode(tt.input); !errors.Is(err, encoder.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestNewShuffleValidation(t *testing.T) {
	reg := testRegistry(t)

	if _, err := NewShuffle(reg, nil); err == nil {
		t.Error("empty palette must be rejected")
	}
	if _, err := NewShuffle(reg, []string{"nope"}); err == nil {
		t.Error("unknown encoder id must be rejected")
	}

	_, err := NewShuffle(reg, []string{"caesar", "sha256"})
	if err == nil {
		t.Fatal("one-way palette member must be rejected")
	}
	if !strings.Contains(err.Error(), "sha256") {
		t.Errorf("error should name the offending encoder: %v", err)
	}
}
