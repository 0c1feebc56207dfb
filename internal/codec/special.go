package codec

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// zalgoMarks are combining characters stacked above, through and below the
// base rune.
var zalgoMarks = struct {
	up, mid, down []rune
}{
	up:   []rune{0x030D, 0x030E, 0x0304, 0x0305, 0x033F, 0x0311, 0x0306, 0x0310, 0x0352, 0x0357, 0x0351, 0x0307, 0x0308, 0x030A, 0x0342, 0x0343, 0x0344, 0x034A, 0x034B, 0x034C, 0x0303, 0x0302, 0x030C, 0x0350, 0x0300, 0x0301, 0x030B, 0x030F, 0x0312, 0x0313, 0x0314, 0x033D, 0x0309, 0x0363, 0x0364, 0x0365, 0x0366, 0x0367, 0x0368, 0x0369, 0x036A, 0x036B, 0x036C, 0x036D, 0x036E, 0x036F, 0x033E, 0x035B},
	mid:  []rune{0x0315, 0x031B, 0x0340, 0x0341, 0x0358, 0x0321, 0x0322, 0x0327, 0x0328, 0x0334, 0x0335, 0x0336, 0x034F, 0x035C, 0x035D, 0x035E, 0x035F, 0x0360, 0x0362, 0x0338, 0x0337, 0x0361, 0x0489},
	down: []rune{0x0316, 0x0317, 0x0318, 0x0319, 0x031C, 0x031D, 0x031E, 0x031F, 0x0320, 0x0324, 0x0325, 0x0326, 0x0329, 0x032A, 0x032B, 0x032C, 0x032D, 0x032E, 0x032F, 0x0330, 0x0331, 0x0332, 0x0333, 0x0339, 0x033A, 0x033B, 0x033C, 0x0345, 0x0347, 0x0348, 0x0349, 0x034D, 0x034E, 0x0353, 0x0354, 0x0355, 0x0356, 0x0359, 0x035A, 0x0323},
}

// Zalgo piles random combining marks onto each visible rune. Intensity
// (1-3, default 2) sets how many marks land on each rune. One way: the
// original spacing of marks is not recoverable.
type Zalgo struct {
	encoder.Base
}

func NewZalgo() *Zalgo {
	return &Zalgo{Base: encoder.Base{
		IDValue:          "zalgo",
		DescriptionValue: "Combining-mark corruption of the text",
		ReversibleValue:  false,
		SettingsValue:    true,
		SpecialValue:     true,
	}}
}

func (e *Zalgo) Encode(text string, p encoder.Param) (string, error) {
	intensity, err := encoder.IntOf(p, 2)
	if err != nil {
		return "", err
	}
	if intensity < 1 || intensity > 3 {
		return "", fmt.Errorf("%w: zalgo intensity must be 1-3, got %d", encoder.ErrInvalidParam, intensity)
	}

	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == ' ' || r == '\n' {
			continue
		}
		for i := 0; i < intensity; i++ {
			b.WriteRune(zalgoMarks.up[rand.IntN(len(zalgoMarks.up))])
			b.WriteRune(zalgoMarks.down[rand.IntN(len(zalgoMarks.down))])
			if intensity > 2 {
				b.WriteRune(zalgoMarks.mid[rand.IntN(len(zalgoMarks.mid))])
			}
		}
	}
	return b.String(), nil
}

// Zero-width runes carrying the invisible ink bitstream.
const (
	inkZero = '​' // zero width space
	inkOne  = '‌' // zero width non-joiner
)

// InvisibleInk hides the text as zero-width runes, one per bit of the
// UTF-8 bytes. Decode collects only the two carrier runes and ignores
// everything else, so the ink can ride inside visible cover text.
type InvisibleInk struct {
	encoder.Base
}

func NewInvisibleInk() *InvisibleInk {
	return &InvisibleInk{Base: encoder.Base{
		IDValue:          "invisibleink",
		DescriptionValue: "Zero-width rune steganography",
		ReversibleValue:  true,
		SpecialValue:     true,
	}}
}

func (e *InvisibleInk) Encode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	b.Grow(len(text) * 8 * 3)
	for _, c := range []byte(text) {
		for bit := 7; bit >= 0; bit-- {
			if c&(1<<bit) != 0 {
				b.WriteRune(inkOne)
			} else {
				b.WriteRune(inkZero)
			}
		}
	}
	return b.String(), nil
}

func (e *InvisibleInk) Decode(text string, p encoder.Param) (string, error) {
	var bits []byte
	for _, r := range text {
		switch r {
		case inkZero:
			bits = append(bits, 0)
		case inkOne:
			bits = append(bits, 1)
		}
	}
	if len(bits)%8 != 0 {
		return "", fmt.Errorf("%w: invisible ink carries %d bits, not a whole byte count", encoder.ErrMalformedInput, len(bits))
	}

	out := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		var c byte
		for _, bit := range bits[i : i+8] {
			c = c<<1 | bit
		}
		out = append(out, c)
	}
	return string(out), nil
}
