package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/earnbaseio/earnbase-common/errors"
)

// GenerateSecureToken returns a base64 URL-safe random string built from the
// given number of random bytes, suitable for opaque verification codes and
// API keys.
func GenerateSecureToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errors.Validation("Token length must be positive")
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateNumericCode returns a random numeric string of the given length,
// e.g. for one-time verification codes.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.Validation("Code length must be positive")
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	digits := make([]byte, length)
	for i, b := range buf {
		digits[i] = '0' + (b % 10)
	}

	return string(digits), nil
}

// FingerprintToken returns the hex SHA-256 digest of a token value, used when
// persisting references to opaque tokens without storing the value itself.
func FingerprintToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
