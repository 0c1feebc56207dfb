package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/harlowgray/transmute/internal/encoder"
)

// Base64 is standard base64 with padding.
type Base64 struct {
	encoder.Base
}

func NewBase64() *Base64 {
	return &Base64{Base: encoder.Base{
		IDValue:          "base64",
		DescriptionValue: "Standard base64 with padding",
		ReversibleValue:  true,
	}}
}

func (e *Base64) Encode(text string, p encoder.Param) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

func (e *Base64) Decode(text string, p encoder.Param) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", encoder.ErrMalformedInput, err)
	}
	return string(decoded), nil
}

// Base64URL is URL-safe base64. Decode accepts both padded and raw forms.
type Base64URL struct {
	encoder.Base
}

func NewBase64URL() *Base64URL {
	return &Base64URL{Base: encoder.Base{
		IDValue:          "base64url",
		DescriptionValue: "URL-safe base64",
		ReversibleValue:  true,
	}}
}

func (e *Base64URL) Encode(text string, p encoder.Param) (string, error) {
	return base64.URLEncoding.EncodeToString([]byte(text)), nil
}

func (e *Base64URL) Decode(text string, p encoder.Param) (string, error) {
	trimmed := strings.TrimSpace(text)
	decoded, err := base64.URLEncoding.DecodeString(trimmed)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(trimmed)
		if err != nil {
			return "", fmt.Errorf("%w: base64url decode: %v", encoder.ErrMalformedInput, err)
		}
	}
	return string(decoded), nil
}

// Hex encodes bytes as lowercase hexadecimal. Decode strips the common
// 0x / \x prefixes and space, colon and dash separators first.
type Hex struct {
	encoder.Base
}

func NewHex() *Hex {
	return &Hex{Base: encoder.Base{
		IDValue:          "hex",
		DescriptionValue: "Lowercase hexadecimal bytes",
		ReversibleValue:  true,
	}}
}

func (e *Hex) Encode(text string, p encoder.Param) (string, error) {
	return hex.EncodeToString([]byte(text)), nil
}

func (e *Hex) Decode(text string, p encoder.Param) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "\\x")
	for _, sep := range []string{" ", ":", "-"} {
		s = strings.ReplaceAll(s, sep, "")
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: hex decode: %v", encoder.ErrMalformedInput, err)
	}
	return string(decoded), nil
}

// Binary renders each byte as eight bits, space-separated.
type Binary struct {
	encoder.Base
}

func NewBinary() *Binary {
	return &Binary{Base: encoder.Base{
		IDValue:          "binary",
		DescriptionValue: "Bytes as space-separated 8-bit groups",
		ReversibleValue:  true,
	}}
}

func (e *Binary) Encode(text string, p encoder.Param) (string, error) {
	var b strings.Builder
	for i, c := range []byte(text) {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%08b", c)
	}
	return b.String(), nil
}

func (e *Binary) Decode(text string, p encoder.Param) (string, error) {
	s := strings.Join(strings.Fields(text), "")
	if len(s)%8 != 0 {
		return "", fmt.Errorf("%w: binary length %d is not a multiple of 8", encoder.ErrMalformedInput, len(s))
	}

	out := make([]byte, 0, len(s)/8)
	for i := 0; i < len(s); i += 8 {
		val, err := strconv.ParseUint(s[i:i+8], 2, 8)
		if err != nil {
			return "", fmt.Errorf("%w: bad binary group at offset %d: %v", encoder.ErrMalformedInput, i, err)
		}
		out = append(out, byte(val))
	}
	return string(out), nil
}

// URL percent-encodes the text as a query component.
type URL struct {
	encoder.Base
}

func NewURL() *URL {
	return &URL{Base: encoder.Base{
		IDValue:          "url",
		DescriptionValue: "Percent-encoding for URL query components",
		ReversibleValue:  true,
	}}
}

func (e *URL) Encode(text string, p encoder.Param) (string, error) {
	return url.QueryEscape(text), nil
}

func (e *URL) Decode(text string, p encoder.Param) (string, error) {
	decoded, err := url.QueryUnescape(text)
	if err != nil {
		return "", fmt.Errorf("%w: url decode: %v", encoder.ErrMalformedInput, err)
	}
	return decoded, nil
}

// HTML escapes the five special characters as entities; decode resolves any
// known entity.
type HTML struct {
	encoder.Base
}

func NewHTML() *HTML {
	return &HTML{Base: encoder.Base{
		IDValue:          "html",
		DescriptionValue: "HTML entity escaping",
		ReversibleValue:  true,
	}}
}

func (e *HTML) Encode(text string, p encoder.Param) (string, error) {
	return html.EscapeString(text), nil
}

func (e *HTML) Decode(text string, p encoder.Param) (string, error) {
	return html.UnescapeString(text), nil
}

// Gzip64 compresses with gzip and wraps the result in base64 so the output
// stays printable and chainable.
type Gzip64 struct {
	encoder.Base
}

func NewGzip64() *Gzip64 {
	return &Gzip64{Base: encoder.Base{
		IDValue:          "gzip64",
		DescriptionValue: "Gzip compression wrapped in base64",
		ReversibleValue:  true,
	}}
}

func (e *Gzip64) Encode(text string, p encoder.Param) (string, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("gzip write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gzip close: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (e *Gzip64) Decode(text string, p encoder.Param) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return "", fmt.Errorf("%w: gzip64 base64 layer: %v", encoder.ErrMalformedInput, err)
	}

	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: gzip header: %v", encoder.ErrMalformedInput, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: gzip stream: %v", encoder.ErrMalformedInput, err)
	}
	return string(out), nil
}
