package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

var morseTable = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

var morseReverse = func() map[string]rune {
	m := make(map[string]rune, len(morseTable))
	for r, code := range morseTable {
		m[code] = r
	}
	return m
}()

// Morse transcodes letters and digits to dot-dash sequences separated by
// spaces, with "/" between words. Runes without a morse code are dropped;
// decode passes unknown sequences through untouched. Case is not preserved.
type Morse struct {
	encoder.Base
}

func NewMorse() *Morse {
	return &Morse{Base: encoder.Base{
		IDValue:          "morse",
		DescriptionValue: "International morse code, / between words",
		ReversibleValue:  true,
	}}
}

func (e *Morse) Encode(text string, p encoder.Param) (string, error) {
	var tokens []string
	for _, r := range strings.ToUpper(text) {
		if r == ' ' {
			tokens = append(tokens, "/")
			continue
		}
		if code, ok := morseTable[r]; ok {
			tokens = append(tokens, code)
		}
	}
	return strings.Join(tokens, " "), nil
}

func (e *Morse) Decode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	for _, token := range strings.Fields(text) {
		switch {
		case token == "/":
			b.WriteRune(' ')
		default:
			if r, ok := morseReverse[token]; ok {
				b.WriteRune(r)
			} else {
				b.WriteString(token)
			}
		}
	}
	return b.String(), nil
}

// A1Z26 numbers the letters 1-26, dashes within a word and spaces between
// words. Other runes are dropped; decode passes unknown tokens through.
type A1Z26 struct {
	encoder.Base
}

func NewA1Z26() *A1Z26 {
	return &A1Z26{Base: encoder.Base{
		IDValue:          "a1z26",
		DescriptionValue: "Letter positions 1-26, dash-joined words",
		ReversibleValue:  true,
	}}
}

func (e *A1Z26) Encode(text string, p encoder.Param) (string, error) {
	var words []string
	for _, word := range strings.Fields(strings.ToUpper(text)) {
		var nums []string
		for _, r := range word {
			if r >= 'A' && r <= 'Z' {
				nums = append(nums, strconv.Itoa(int(r-'A')+1))
			}
		}
		if len(nums) > 0 {
			words = append(words, strings.Join(nums, "-"))
		}
	}
	return strings.Join(words, " "), nil
}

func (e *A1Z26) Decode(text string, p encoder.Param) (string, error) {
	var words []string
	for _, word := range strings.Fields(text) {
		var b strings.Builder
		for _, part := range strings.Split(word, "-") {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > 26 {
				b.WriteString(part)
				continue
			}
			b.WriteRune('A' + rune(n-1))
		}
		words = append(words, b.String())
	}
	return strings.Join(words, " "), nil
}

// tapGrid is the classic 5x5 tap code square with K folded into C.
var tapGrid = [5]string{"ABCDE", "FGHIJ", "LMNOP", "QRSTU", "VWXYZ"}

func tapPosition(r rune) (row, col int, ok bool) {
	if r == 'K' {
		r = 'C'
	}
	for i, line := range tapGrid {
		if j := strings.IndexRune(line, r); j >= 0 {
			return i, j, true
		}
	}
	return 0, 0, false
}

// TapCode renders each letter as two dot runs (row then column of the 5x5
// square, K folded into C). Dot runs inside a letter are separated by one
// space, letters by two spaces, words by " / ". Runes without a cell are
// dropped; case is not preserved.
type TapCode struct {
	encoder.Base
}

func NewTapCode() *TapCode {
	return &TapCode{Base: encoder.Base{
		IDValue:          "tap",
		DescriptionValue: "Tap code dot runs on the 5x5 knock square",
		ReversibleValue:  true,
	}}
}

func (e *TapCode) Encode(text string, p encoder.Param) (string, error) {
	var words []string
	for _, word := range strings.Fields(strings.ToUpper(text)) {
		var letters []string
		for _, r := range word {
			if row, col, ok := tapPosition(r); ok {
				letters = append(letters, strings.Repeat(".", row+1)+" "+strings.Repeat(".", col+1))
			}
		}
		if len(letters) > 0 {
			words = append(words, strings.Join(letters, "  "))
		}
	}
	return strings.Join(words, " / "), nil
}

func (e *TapCode) Decode(text string, p encoder.Param) (string, error) {
	var words []string
	for _, word := range strings.Split(text, "/") {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		var b strings.Builder
		for _, letter := range strings.Split(word, "  ") {
			runs := strings.Fields(letter)
			if len(runs) != 2 {
				return "", fmt.Errorf("%w: tap letter %q needs exactly two dot runs", encoder.ErrMalformedInput, letter)
			}
			row, col := len(runs[0]), len(runs[1])
			if row < 1 || row > 5 || col < 1 || col > 5 {
				return "", fmt.Errorf("%w: tap runs %d,%d outside the square", encoder.ErrMalformedInput, row, col)
			}
			b.WriteByte(tapGrid[row-1][col-1])
		}
		words = append(words, b.String())
	}
	return strings.Join(words, " "), nil
}

var natoTable = map[rune]string{
	'A': "Alfa", 'B': "Bravo", 'C': "Charlie", 'D': "Delta", 'E': "Echo",
	'F': "Foxtrot", 'G': "Golf", 'H': "Hotel", 'I': "India", 'J': "Juliett",
	'K': "Kilo", 'L': "Lima", 'M': "Mike", 'N': "November", 'O': "Oscar",
	'P': "Papa", 'Q': "Quebec", 'R': "Romeo", 'S': "Sierra", 'T': "Tango",
	'U': "Uniform", 'V': "Victor", 'W': "Whiskey", 'X': "Xray", 'Y': "Yankee",
	'Z': "Zulu",
	'0': "Zero", '1': "One", '2': "Two", '3': "Three", '4': "Four",
	'5': "Five", '6': "Six", '7': "Seven", '8': "Eight", '9': "Niner",
}

var natoReverse = func() map[string]rune {
	m := make(map[string]rune, len(natoTable))
	for r, word := range natoTable {
		m[strings.ToUpper(word)] = r
	}
	return m
}()

// NATO spells letters and digits with the radiotelephony alphabet, "/"
// between input words. Runes without a codeword are dropped; decode is
// case-insensitive and passes unknown words through. Case is not preserved.
type NATO struct {
	encoder.Base
}

func NewNATO() *NATO {
	return &NATO{Base: encoder.Base{
		IDValue:          "nato",
		DescriptionValue: "NATO phonetic alphabet spelling",
		ReversibleValue:  true,
	}}
}

func (e *NATO) Encode(text string, p encoder.Param) (string, error) {
	var tokens []string
	for _, r := range strings.ToUpper(text) {
		if r == ' ' {
			tokens = append(tokens, "/")
			continue
		}
		if word, ok := natoTable[r]; ok {
			tokens = append(tokens, word)
		}
	}
	return strings.Join(tokens, " "), nil
}

func (e *NATO) Decode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	for _, token := range strings.Fields(text) {
		if token == "/" {
			b.WriteRune(' ')
			continue
		}
		if r, ok := natoReverse[strings.ToUpper(token)]; ok {
			b.WriteRune(r)
		} else {
			b.WriteString(token)
		}
	}
	return b.String(), nil
}

// Reverse flips the rune order. Self-inverse.
type Reverse struct {
	encoder.Base
}

func NewReverse() *Reverse {
	return &Reverse{Base: encoder.Base{
		IDValue:          "reverse",
		DescriptionValue: "Reverse the text rune by rune",
		ReversibleValue:  true,
	}}
}

func (e *Reverse) Encode(text string, p encoder.Param) (string, error) {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

func (e *Reverse) Decode(text string, p encoder.Param) (string, error) {
	return e.Encode(text, p)
}

var upsideDownTable = map[rune]rune{
	'a': 'ɐ', 'b': 'q', 'c': 'ɔ', 'd': 'p', 'e': 'ǝ', 'f': 'ɟ', 'g': 'ƃ',
	'h': 'ɥ', 'i': 'ᴉ', 'j': 'ɾ', 'k': 'ʞ', 'l': 'l', 'm': 'ɯ', 'n': 'u',
	'o': 'o', 'p': 'd', 'q': 'b', 'r': 'ɹ', 's': 's', 't': 'ʇ', 'u': 'n',
	'v': 'ʌ', 'w': 'ʍ', 'x': 'x', 'y': 'ʎ', 'z': 'z',
	'A': '∀', 'B': 'B', 'C': 'Ɔ', 'D': 'D', 'E': 'Ǝ', 'F': 'Ⅎ', 'G': 'פ',
	'H': 'H', 'I': 'I', 'J': 'ſ', 'K': 'K', 'L': '˥', 'M': 'W', 'N': 'N',
	'O': 'O', 'P': 'Ԁ', 'Q': 'Q', 'R': 'R', 'S': 'S', 'T': '┴', 'U': '∩',
	'V': 'Λ', 'W': 'M', 'X': 'X', 'Y': '⅄', 'Z': 'Z',
	'1': 'Ɩ', '2': 'ᄅ', '3': 'Ɛ', '4': 'ㄣ', '5': 'ϛ', '6': '9', '7': 'ㄥ',
	'8': '8', '9': '6', '0': '0',
	'.': '˙', ',': '\'', '\'': ',', '"': '„', '!': '¡', '?': '¿',
	'(': ')', ')': '(', '[': ']', ']': '[', '{': '}', '}': '{',
	'<': '>', '>': '<', '&': '⅋', '_': '‾',
}

var upsideDownReverse = func() map[rune]rune {
	m := make(map[rune]rune, len(upsideDownTable))
	for from, to := range upsideDownTable {
		if _, taken := m[to]; !taken {
			m[to] = from
		}
	}
	return m
}()

// UpsideDown maps runes to their flipped lookalikes and reverses the text.
// Runes without a lookalike survive in place. Decode restores the original
// only where the mapping is one to one.
type UpsideDown struct {
	encoder.Base
}

func NewUpsideDown() *UpsideDown {
	return &UpsideDown{Base: encoder.Base{
		IDValue:          "upsidedown",
		DescriptionValue: "Flipped-lookalike text, reversed",
		ReversibleValue:  true,
	}}
}

func (e *UpsideDown) Encode(text string, p encoder.Param) (string, error) {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		if flipped, ok := upsideDownTable[runes[i]]; ok {
			out = append(out, flipped)
		} else {
			out = append(out, runes[i])
		}
	}
	return string(out), nil
}

func (e *UpsideDown) Decode(text string, p encoder.Param) (string, error) {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		if restored, ok := upsideDownReverse[runes[i]]; ok {
			out = append(out, restored)
		} else {
			out = append(out, runes[i])
		}
	}
	return string(out), nil
}
