package valueobject

import (
	"fmt"
	"time"

	"github.com/earnbaseio/earnbase-common/errors"
)

// TokenType discriminates a token's intended use and default lifetime.
type TokenType string

const (
	TokenTypeAccess       TokenType = "access"
	TokenTypeRefresh      TokenType = "refresh"
	TokenTypeVerification TokenType = "verification"
	TokenTypeReset        TokenType = "reset"
)

// ParseTokenType validates a token type received from an external boundary,
// such as wire claims.
func ParseTokenType(value string) (TokenType, error) {
	switch TokenType(value) {
	case TokenTypeAccess, TokenTypeRefresh, TokenTypeVerification, TokenTypeReset:
		return TokenType(value), nil
	}
	return "", errors.Validation("Invalid token type")
}

// Valid reports whether t is one of the recognized token kinds.
func (t TokenType) Valid() bool {
	_, err := ParseTokenType(string(t))
	return err == nil
}

// String implements fmt.Stringer.
func (t TokenType) String() string { return string(t) }

// Token is an immutable record of a signed credential: its opaque string,
// kind, expiry instant, and optional free-form metadata.
//
// Two tokens with the same opaque value are the same token regardless of
// metadata; Equal and Key reflect that.
type Token struct {
	value     string
	tokenType TokenType
	expiresAt time.Time
	metadata  map[string]any
}

// NewToken validates and wraps a signed token string.
func NewToken(value string, tokenType TokenType, expiresAt time.Time, metadata map[string]any) (Token, error) {
	if value == "" {
		return Token{}, errors.Validation("Invalid token")
	}
	if !tokenType.Valid() {
		return Token{}, errors.Validation("Invalid token type")
	}
	if expiresAt.IsZero() {
		return Token{}, errors.Validation("Invalid token expiry")
	}

	var copied map[string]any
	if metadata != nil {
		copied = make(map[string]any, len(metadata))
		for k, v := range metadata {
			copied[k] = v
		}
	}

	return Token{
		value:     value,
		tokenType: tokenType,
		expiresAt: expiresAt.UTC(),
		metadata:  copied,
	}, nil
}

// Value returns the opaque signed string.
func (t Token) Value() string { return t.value }

// Type returns the token kind.
func (t Token) Type() TokenType { return t.tokenType }

// ExpiresAt returns the expiry instant in UTC.
func (t Token) ExpiresAt() time.Time { return t.expiresAt }

// Metadata returns a copy of the free-form metadata, or nil when absent.
func (t Token) Metadata() map[string]any {
	if t.metadata == nil {
		return nil
	}
	copied := make(map[string]any, len(t.metadata))
	for k, v := range t.metadata {
		copied[k] = v
	}
	return copied
}

// IsExpired reports whether the token's expiry is at or before the current
// wall clock. The clock is read on every call, never cached.
func (t Token) IsExpired() bool {
	return t.IsExpiredAt(time.Now())
}

// IsExpiredAt reports whether the token's expiry is at or before the given
// instant.
func (t Token) IsExpiredAt(at time.Time) bool {
	return !t.expiresAt.After(at.UTC())
}

// Equal reports whether two tokens carry the same opaque value. Kind, expiry,
// and metadata do not participate: they are derived copies of what the signed
// payload already encodes.
func (t Token) Equal(other Token) bool {
	return t.value == other.value
}

// Key returns the value used to identify this token in maps and caches,
// consistent with Equal.
func (t Token) Key() string { return t.value }

// String renders the kind and expiry, never the signed payload.
func (t Token) String() string {
	return fmt.Sprintf("%s token, expires at %s", t.tokenType, t.expiresAt.Format(time.RFC3339))
}
