package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harlowgray/transmute/internal/encoder"
)

// jwtTextClaim is the claim the text rides in.
const jwtTextClaim = "txt"

// JWT signs the text into an HS256 token whose payload carries it under
// the "txt" claim; the keyword parameter is the signing secret. Decode
// parses without verification: it returns the "txt" claim when present,
// otherwise the full claim set as JSON.
type JWT struct {
	encoder.Base
}

func NewJWT() *JWT {
	return &JWT{Base: encoder.Base{
		IDValue:          "jwt",
		DescriptionValue: "HS256 JWT carrying the text as a claim",
		ReversibleValue:  true,
		SettingsValue:    true,
	}}
}

func (e *JWT) Encode(text string, p encoder.Param) (string, error) {
	secret, err := jwtSecret(p)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		jwtTextClaim: text,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt signing: %w", err)
	}
	return signed, nil
}

func (e *JWT) Decode(text string, p encoder.Param) (string, error) {
	// The secret is not needed to read an unverified token, but a wrong
	// param variant is still rejected.
	if _, err := jwtSecret(p); err != nil {
		return "", err
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(strings.TrimSpace(text), claims); err != nil {
		return "", fmt.Errorf("%w: jwt parse: %v", encoder.ErrMalformedInput, err)
	}

	if txt, ok := claims[jwtTextClaim].(string); ok {
		return txt, nil
	}
	out, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("claims marshal: %w", err)
	}
	return string(out), nil
}

func jwtSecret(p encoder.Param) (string, error) {
	secret, err := encoder.KeyOf(p, "transmute")
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", fmt.Errorf("%w: jwt secret cannot be empty", encoder.ErrInvalidParam)
	}
	return secret, nil
}
