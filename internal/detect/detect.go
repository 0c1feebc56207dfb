// Package detect guesses which encoder produced a piece of text. Guesses
// are heuristic and confidence-ranked; consumers use them to offer
// auto-decode, never to decode silently.
package detect

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Guess names a candidate encoder with the evidence for it. Encoder is a
// registry id, so a guess can be resolved straight into a decode call.
type Guess struct {
	Encoder    string  `json:"encoder"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// minConfidence filters out guesses too weak to act on.
const minConfidence = 0.3

var (
	base64Pattern    = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
	base64URLPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+=*$`)
	hexPattern       = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	decimalPattern   = regexp.MustCompile(`^[0-9]+$`)
	binaryPattern    = regexp.MustCompile(`^[01]+$`)
	percentPattern   = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
	entityPattern    = regexp.MustCompile(`&[a-zA-Z]+;|&#[0-9]+;|&#x[0-9a-fA-F]+;`)
	jwtPartPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	morsePattern     = regexp.MustCompile(`^[.\-/ ]+$`)
	tapPattern       = regexp.MustCompile(`^[./ ]+$`)
	a1z26Pattern     = regexp.MustCompile(`^[0-9]+(-[0-9]+)*( [0-9]+(-[0-9]+)*)*$`)
	coordPattern     = regexp.MustCompile(`^[1-6][1-6]( [1-6][1-6])*$`)
)

// Detect runs every heuristic over the text and returns the surviving
// guesses, strongest first.
func Detect(text string) []Guess {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var guesses []Guess
	guesses = append(guesses, detectInvisibleInk(text)...)
	guesses = append(guesses, detectTap(trimmed)...)
	guesses = append(guesses, detectMorse(trimmed)...)
	guesses = append(guesses, detectBinary(trimmed)...)
	guesses = append(guesses, detectJWT(trimmed)...)
	guesses = append(guesses, detectBase64(trimmed)...)
	guesses = append(guesses, detectHex(trimmed)...)
	guesses = append(guesses, detectCoordinates(trimmed)...)
	guesses = append(guesses, detectA1Z26(trimmed)...)
	guesses = append(guesses, detectURL(trimmed)...)
	guesses = append(guesses, detectHTML(trimmed)...)

	sort.SliceStable(guesses, func(i, j int) bool {
		return guesses[i].Confidence > guesses[j].Confidence
	})

	filtered := guesses[:0]
	for _, g := range guesses {
		if g.Confidence >= minConfidence {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

func detectBase64(s string) []Guess {
	var guesses []Guess

	if base64Pattern.MatchString(s) && !decimalPattern.MatchString(s) && !hexPattern.MatchString(s) {
		if _, err := base64.StdEncoding.DecodeString(s); err == nil {
			confidence := 0.9
			if len(s)%4 != 0 && !strings.HasSuffix(s, "=") {
				confidence = 0.7
			}
			guesses = append(guesses, Guess{
				Encoder:    "base64",
				Confidence: confidence,
				Reasoning:  "matches the base64 alphabet and decodes cleanly",
			})
		} else if _, err := base64.RawStdEncoding.DecodeString(s); err == nil {
			guesses = append(guesses, Guess{
				Encoder:    "base64",
				Confidence: 0.7,
				Reasoning:  "matches the base64 alphabet without padding",
			})
		}
	}

	if base64URLPattern.MatchString(s) && strings.ContainsAny(s, "-_") {
		if _, err := base64.URLEncoding.DecodeString(s); err == nil {
			guesses = append(guesses, Guess{
				Encoder:    "base64url",
				Confidence: 0.85,
				Reasoning:  "matches the URL-safe base64 alphabet",
			})
		}
	}

	return guesses
}

func detectHex(s string) []Guess {
	cleaned := s
	hasPrefix := strings.HasPrefix(cleaned, "0x")
	cleaned = strings.TrimPrefix(cleaned, "0x")
	for _, sep := range []string{" ", ":", "-"} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}

	if !hexPattern.MatchString(cleaned) || len(cleaned)%2 != 0 {
		return nil
	}
	if _, err := hex.DecodeString(cleaned); err != nil {
		return nil
	}

	confidence := 0.8
	if hasPrefix {
		confidence = 0.95
	}
	// All digits could just as well be a number.
	if decimalPattern.MatchString(cleaned) {
		confidence *= 0.6
	}
	return []Guess{{
		Encoder:    "hex",
		Confidence: confidence,
		Reasoning:  "matches the hexadecimal alphabet with even length",
	}}
}

func detectBinary(s string) []Guess {
	cleaned := strings.ReplaceAll(s, " ", "")
	if !binaryPattern.MatchString(cleaned) || len(cleaned)%8 != 0 || len(cleaned) < 8 {
		return nil
	}

	confidence := 0.85
	if len(cleaned) < 32 {
		confidence = 0.6
	}
	return []Guess{{
		Encoder:    "binary",
		Confidence: confidence,
		Reasoning:  "only 0s and 1s in 8-bit groups",
	}}
}

func detectURL(s string) []Guess {
	matches := percentPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}

	density := float64(len(matches)*3) / float64(len(s))
	confidence := 0.5 + math.Min(float64(len(matches))*0.1, 0.3) + math.Min(density, 0.2)
	return []Guess{{
		Encoder:    "url",
		Confidence: math.Min(confidence, 0.95),
		Reasoning:  fmt.Sprintf("contains %d percent-encoded sequences", len(matches)),
	}}
}

func detectHTML(s string) []Guess {
	matches := entityPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	return []Guess{{
		Encoder:    "html",
		Confidence: math.Min(0.4+float64(len(matches))*0.1, 0.9),
		Reasoning:  fmt.Sprintf("contains %d HTML entities", len(matches)),
	}}
}

func detectJWT(s string) []Guess {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil
	}
	for _, part := range parts {
		if part == "" || !jwtPartPattern.MatchString(part) {
			return nil
		}
	}
	return []Guess{{
		Encoder:    "jwt",
		Confidence: 0.95,
		Reasoning:  "three dot-separated base64url parts",
	}}
}

func detectMorse(s string) []Guess {
	if !morsePattern.MatchString(s) || !strings.ContainsAny(s, ".-") {
		return nil
	}

	confidence := 0.9
	if !strings.Contains(s, "-") {
		// Without dashes every letter would be E, H, I or S; dot runs
		// like that are usually tap code.
		confidence = 0.5
	} else if !strings.Contains(s, " ") {
		// A single sequence is plausible but thin evidence.
		confidence = 0.6
	}
	return []Guess{{
		Encoder:    "morse",
		Confidence: confidence,
		Reasoning:  "only dots, dashes and separators",
	}}
}

func detectTap(s string) []Guess {
	if !tapPattern.MatchString(s) || !strings.Contains(s, ".") {
		return nil
	}
	letters := 0
	for _, word := range strings.Split(s, "/") {
		runs := strings.Fields(word)
		if len(runs) == 0 || len(runs)%2 != 0 {
			return nil
		}
		for _, run := range runs {
			if len(run) > 5 {
				return nil
			}
		}
		letters += len(runs) / 2
	}

	confidence := 0.85
	if letters < 2 {
		confidence = 0.5
	}
	return []Guess{{
		Encoder:    "tap",
		Confidence: confidence,
		Reasoning:  "dot runs paired as knock-square rows and columns",
	}}
}

func detectA1Z26(s string) []Guess {
	if !a1z26Pattern.MatchString(s) || !strings.Contains(s, "-") {
		return nil
	}
	for _, word := range strings.Fields(s) {
		for _, part := range strings.Split(word, "-") {
			if len(part) > 2 || part == "0" {
				return nil
			}
		}
	}
	return []Guess{{
		Encoder:    "a1z26",
		Confidence: 0.75,
		Reasoning:  "dash-joined numbers in the 1-26 range",
	}}
}

func detectCoordinates(s string) []Guess {
	if !coordPattern.MatchString(s) {
		return nil
	}
	return []Guess{{
		Encoder:    "polybius",
		Confidence: 0.65,
		Reasoning:  "space-separated digit pairs in grid range",
	}}
}

func detectInvisibleInk(s string) []Guess {
	zero := strings.Count(s, "​")
	one := strings.Count(s, "‌")
	bits := zero + one
	if bits == 0 {
		return nil
	}

	confidence := 0.6
	if bits%8 == 0 {
		confidence = 0.97
	}
	return []Guess{{
		Encoder:    "invisibleink",
		Confidence: confidence,
		Reasoning:  fmt.Sprintf("carries %d zero-width marker runes", bits),
	}}
}

// Attempt is one auto-decode outcome for a guess.
type Attempt struct {
	Guess   Guess  `json:"guess"`
	Decoded string `json:"decoded"`
}

// AutoDecode resolves each guess against the registry and keeps the ones
// whose decode succeeds.
func AutoDecode(registry *encoder.Registry, text string) []Attempt {
	var attempts []Attempt
	for _, guess := range Detect(text) {
		enc, ok := registry.Get(guess.Encoder)
		if !ok || !enc.Reversible() {
			continue
		}
		decoded, err := enc.Decode(text, nil)
		if err != nil {
			continue
		}
		attempts = append(attempts, Attempt{Guess: guess, Decoded: decoded})
	}
	return attempts
}
