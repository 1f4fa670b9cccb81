package valueobject

import (
	"testing"
	"time"

	"github.com/earnbaseio/earnbase-common/errors"
)

func TestParseTokenType(t *testing.T) {
	for _, value := range []string{"access", "refresh", "verification", "reset"} {
		kind, err := ParseTokenType(value)
		if err != nil {
			t.Fatalf("ParseTokenType(%q) returned error: %v", value, err)
		}
		if kind.String() != value {
			t.Errorf("ParseTokenType(%q) = %q", value, kind)
		}
	}

	for _, value := range []string{"", "session", "ACCESS", "bearer"} {
		_, err := ParseTokenType(value)
		if err == nil {
			t.Fatalf("ParseTokenType(%q) succeeded, want error", value)
		}
		if err.Error() != "Invalid token type" {
			t.Errorf("ParseTokenType(%q) message = %q", value, err.Error())
		}
	}
}

func TestNewTokenValidation(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	if _, err := NewToken("", TokenTypeAccess, expiry, nil); err == nil {
		t.Error("empty value accepted, want error")
	}
	if _, err := NewToken("abc", TokenType("session"), expiry, nil); err == nil {
		t.Error("unknown token type accepted, want error")
	}
	if _, err := NewToken("abc", TokenTypeAccess, time.Time{}, nil); err == nil {
		t.Error("zero expiry accepted, want error")
	}

	_, err := NewToken("", TokenTypeAccess, expiry, nil)
	if !errors.IsValidation(err) {
		t.Errorf("error is not a validation error: %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := NewToken("abc", TokenTypeAccess, expiry, nil)
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}

	if token.IsExpiredAt(expiry.Add(-time.Second)) {
		t.Error("token expired before its expiry instant")
	}
	if !token.IsExpiredAt(expiry) {
		t.Error("token not expired exactly at its expiry instant")
	}
	if !token.IsExpiredAt(expiry.Add(time.Second)) {
		t.Error("token not expired after its expiry instant")
	}
}

func TestTokenEqualityUsesValueOnly(t *testing.T) {
	expiry := time.Now().Add(time.Hour)

	a, err := NewToken("same-value", TokenTypeAccess, expiry, map[string]any{"device": "a"})
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}
	b, err := NewToken("same-value", TokenTypeRefresh, expiry.Add(time.Hour), map[string]any{"device": "b"})
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}
	c, err := NewToken("other-value", TokenTypeAccess, expiry, nil)
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}

	if !a.Equal(b) {
		t.Error("tokens with identical values are not equal")
	}
	if a.Equal(c) {
		t.Error("tokens with different values are equal")
	}
	if a.Key() != b.Key() {
		t.Error("Key() differs for identical values")
	}
}

func TestTokenMetadataIsCopied(t *testing.T) {
	metadata := map[string]any{"device": "laptop"}
	token, err := NewToken("abc", TokenTypeAccess, time.Now().Add(time.Hour), metadata)
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}

	metadata["device"] = "tampered"
	if token.Metadata()["device"] != "laptop" {
		t.Error("mutating the source map changed the token metadata")
	}

	out := token.Metadata()
	out["device"] = "tampered"
	if token.Metadata()["device"] != "laptop" {
		t.Error("mutating the returned map changed the token metadata")
	}
}

func TestTokenStringHidesValue(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := NewToken("super-secret-jwt", TokenTypeAccess, expiry, nil)
	if err != nil {
		t.Fatalf("NewToken returned error: %v", err)
	}

	want := "access token, expires at 2026-01-01T12:00:00Z"
	if got := token.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
