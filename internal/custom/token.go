package custom

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// tokenVersion is the only export format this build reads or writes.
const tokenVersion = "1.0"

type tokenEnvelope struct {
	Version string `json:"version"`
	Encoder Spec   `json:"encoder"`
}

// Export serializes the spec as a base64-of-JSON token safe to embed in a
// URL query parameter.
func Export(spec Spec) (string, error) {
	payload, err := json.Marshal(tokenEnvelope{Version: tokenVersion, Encoder: spec})
	if err != nil {
		return "", fmt.Errorf("export marshal: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Import parses an exported token back into a spec. Unknown versions are
// rejected, never guessed at.
func Import(token string) (Spec, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Spec{}, fmt.Errorf("token is not base64: %w", err)
	}

	var env tokenEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Spec{}, fmt.Errorf("token is not an encoder export: %w", err)
	}
	if env.Version != tokenVersion {
		return Spec{}, fmt.Errorf("unsupported export version %q", env.Version)
	}
	return env.Encoder, nil
}
