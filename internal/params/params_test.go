package params

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlowgray/transmute/internal/encoder"
	"github.com/harlowgray/transmute/internal/wire"
)

func TestBagSetGetDelete(t *testing.T) {
	bag := NewBag()

	bag.Set("caesar", 7)
	v, ok := bag.Get("caesar")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	bag.Delete("caesar")
	_, ok = bag.Get("caesar")
	assert.False(t, ok, "value still present after Delete")
}

func TestBagParam(t *testing.T) {
	bag := NewBag()
	bag.Set("caesar", 5)
	bag.Set("railfence", float64(4)) // JSON round trips numbers as float64
	bag.Set("vigenere", "LEMON")
	bag.Set("bookcipher", "call me ishmael")
	bag.Set("doubletransposition.key1", "ZEBRA")
	bag.Set("doubletransposition.key2", "OCEAN")
	bag.Set("affine.a", 5)
	bag.Set("affine.b", 8)

	tests := []struct {
		id   string
		kind string
		want encoder.Param
	}{
		{"caesar", wire.KindShift, encoder.ShiftParam(5)},
		{"railfence", wire.KindInt, encoder.IntParam(4)},
		{"vigenere", wire.KindKey, encoder.KeyParam("LEMON")},
		{"bookcipher", wire.KindText, encoder.TextParam("call me ishmael")},
		{"doubletransposition", wire.KindDualKey, encoder.DualKeyParam{First: "ZEBRA", Second: "OCEAN"}},
		{"affine", wire.KindPair, encoder.PairParam{A: 5, B: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := bag.Param(tt.id, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBagParamMissingMeansDefault(t *testing.T) {
	bag := NewBag()

	for _, kind := range []string{
		wire.KindShift, wire.KindInt, wire.KindKey,
		wire.KindText, wire.KindDualKey, wire.KindPair,
	} {
		p, err := bag.Param("anything", kind)
		require.NoError(t, err, kind)
		assert.Nil(t, p, kind)
	}
}

func TestBagParamPartialDualKey(t *testing.T) {
	bag := NewBag()
	bag.Set("adfgvx.key1", "PHQGMEAYLNOFDXKRCVSZWBUTIJ")

	p, err := bag.Param("adfgvx", wire.KindDualKey)
	require.NoError(t, err)

	dk, ok := p.(encoder.DualKeyParam)
	require.True(t, ok, "expected DualKeyParam, got %T", p)
	assert.NotEmpty(t, dk.First)
	assert.Empty(t, dk.Second)
}

func TestBagParamTypeMismatch(t *testing.T) {
	bag := NewBag()
	bag.Set("caesar", "seven")
	bag.Set("vigenere", 12)

	_, err := bag.Param("caesar", wire.KindShift)
	assert.Error(t, err, "string value for a shift kind")

	_, err = bag.Param("vigenere", wire.KindKey)
	assert.Error(t, err, "numeric value for a key kind")
}

func TestBagParamUnknownKind(t *testing.T) {
	bag := NewBag()
	_, err := bag.Param("caesar", "telepathy")
	assert.Error(t, err)
}

func TestBagFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")

	bag := NewBag()
	bag.Set("caesar", 13)
	bag.Set("doubletransposition.key1", "ZEBRA")
	require.NoError(t, bag.SaveFile(path))

	loaded := NewBag()
	require.NoError(t, loaded.LoadFile(path))

	p, err := loaded.Param("caesar", wire.KindShift)
	require.NoError(t, err)
	assert.Equal(t, encoder.ShiftParam(13), p)

	v, ok := loaded.Get("doubletransposition.key1")
	require.True(t, ok)
	assert.Equal(t, "ZEBRA", v)
}

func TestBagLoadFileMissing(t *testing.T) {
	bag := NewBag()
	err := bag.LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
