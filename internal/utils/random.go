package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateOneTimeCode returns a 6-digit numeric code drawn uniformly at
// random from [100000, 999999] using a cryptographically secure source.
func GenerateOneTimeCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("error generating one-time code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateResetToken returns a hex-encoded token with 128 bits of
// entropy, suitable for single-use password-reset links.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating reset token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
