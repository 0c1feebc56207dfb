package classical

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Homophonic maps each letter to one of several two-digit codes chosen at
// random at encode time. The complexity parameter (1-3) controls the pool
// size per letter; decode treats every code in a letter's pool as
// equivalent, a many-to-one reverse mapping. Letter L's pool is
// {L, L+26, L+52} truncated to the complexity, rendered as zero-padded
// two-digit tokens. Spaces become "/" tokens, a literal slash becomes "//",
// and other whitespace runes become "/" followed by the rune's decimal value
// so they survive the space-joined stream. Remaining non-letter runes are
// emitted as their own literal token. Case is not preserved.
type Homophonic struct {
	encoder.Base
}

// NewHomophonic builds the homophonic encoder with default complexity 2.
func NewHomophonic() *Homophonic {
	return &Homophonic{Base: encoder.Base{
		IDValue:          "homophonic",
		DescriptionValue: "Letters map to random members of per-letter code pools",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (h *Homophonic) Encode(text string, p encoder.Param) (string, error) {
	complexity, err := homophonicComplexity(p)
	if err != nil {
		return "", err
	}

	var tokens []string
	for _, r := range text {
		switch {
		case isLetter(r):
			pool := letterIndex(r)
			code := pool + 26*rand.IntN(complexity)
			tokens = append(tokens, fmt.Sprintf("%02d", code))
		case r == ' ':
			tokens = append(tokens, "/")
		case r == '/':
			tokens = append(tokens, "//")
		case unicode.IsSpace(r):
			// A bare whitespace token would vanish in decode's field
			// split.
			tokens = append(tokens, "/"+strconv.Itoa(int(r)))
		default:
			tokens = append(tokens, string(r))
		}
	}
	return strings.Join(tokens, " "), nil
}

func (h *Homophonic) Decode(text string, p encoder.Param) (string, error) {
	if _, err := homophonicComplexity(p); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, token := range strings.Fields(text) {
		switch {
		case token == "/":
			b.WriteRune(' ')
		case token == "//":
			b.WriteRune('/')
		case len(token) > 1 && token[0] == '/':
			n, err := strconv.Atoi(token[1:])
			if err != nil {
				b.WriteString(token)
				continue
			}
			b.WriteRune(rune(n))
		case len(token) == 2 && isDigit(rune(token[0])) && isDigit(rune(token[1])):
			code, _ := strconv.Atoi(token)
			if code < 78 {
				b.WriteRune('A' + rune(code%26))
			} else {
				b.WriteString(token)
			}
		default:
			b.WriteString(token)
		}
	}
	return b.String(), nil
}

func homophonicComplexity(p encoder.Param) (int, error) {
	complexity, err := encoder.IntOf(p, 2)
	if err != nil {
		return 0, err
	}
	if complexity < 1 || complexity > 3 {
		return 0, fmt.Errorf("%w: homophonic complexity must be 1-3, got %d", encoder.ErrInvalidParam, complexity)
	}
	return complexity, nil
}
