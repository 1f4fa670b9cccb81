package security

import (
	"testing"
	"time"
)

func TestDefaultSecurityPolicy(t *testing.T) {
	policy := DefaultSecurityPolicy()

	if policy.PasswordMinLength() != 8 {
		t.Errorf("PasswordMinLength() = %d, want 8", policy.PasswordMinLength())
	}
	if policy.MaxLoginAttempts() != 5 {
		t.Errorf("MaxLoginAttempts() = %d, want 5", policy.MaxLoginAttempts())
	}
	if policy.AccountLockout() != 15*time.Minute {
		t.Errorf("AccountLockout() = %v, want 15m", policy.AccountLockout())
	}
	if policy.AccessTokenTTL() != 30*time.Minute {
		t.Errorf("AccessTokenTTL() = %v, want 30m", policy.AccessTokenTTL())
	}
	if policy.RefreshTokenTTL() != 7*24*time.Hour {
		t.Errorf("RefreshTokenTTL() = %v, want 168h", policy.RefreshTokenTTL())
	}
	if policy.VerificationTokenTTL() != 24*time.Hour {
		t.Errorf("VerificationTokenTTL() = %v, want 24h", policy.VerificationTokenTTL())
	}
	if policy.ResetTokenTTL() != 24*time.Hour {
		t.Errorf("ResetTokenTTL() = %v, want 24h", policy.ResetTokenTTL())
	}
	if policy.MaxSessionsPerUser() != 5 {
		t.Errorf("MaxSessionsPerUser() = %d, want 5", policy.MaxSessionsPerUser())
	}
	if policy.SessionIdleTimeout() != 60*time.Minute {
		t.Errorf("SessionIdleTimeout() = %v, want 60m", policy.SessionIdleTimeout())
	}

	patterns := policy.PasswordPatterns()
	for _, name := range []string{"uppercase", "lowercase", "digit", "special"} {
		if _, ok := patterns[name]; !ok {
			t.Errorf("default patterns missing %q", name)
		}
	}
	if len(patterns) != 4 {
		t.Errorf("default pattern count = %d, want 4", len(patterns))
	}
}

func TestNewSecurityPolicyOverrides(t *testing.T) {
	policy, err := NewSecurityPolicy(
		WithPasswordMinLength(12),
		WithMaxLoginAttempts(3),
		WithAccessTokenTTL(10*time.Minute),
		WithMaxSessionsPerUser(1),
	)
	if err != nil {
		t.Fatalf("NewSecurityPolicy returned error: %v", err)
	}

	if policy.PasswordMinLength() != 12 {
		t.Errorf("PasswordMinLength() = %d, want 12", policy.PasswordMinLength())
	}
	if policy.MaxLoginAttempts() != 3 {
		t.Errorf("MaxLoginAttempts() = %d, want 3", policy.MaxLoginAttempts())
	}
	if policy.AccessTokenTTL() != 10*time.Minute {
		t.Errorf("AccessTokenTTL() = %v, want 10m", policy.AccessTokenTTL())
	}
	if policy.RefreshTokenTTL() != DefaultRefreshTokenTTL {
		t.Errorf("RefreshTokenTTL() = %v, want default", policy.RefreshTokenTTL())
	}
}

func TestNewSecurityPolicyRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		opt  PolicyOption
		want string
	}{
		{"zero min length", WithPasswordMinLength(0), "Invalid security policy: PASSWORD_MIN_LENGTH must be at least 1"},
		{"zero attempts", WithMaxLoginAttempts(0), "Invalid security policy: MAX_LOGIN_ATTEMPTS must be at least 1"},
		{"zero sessions", WithMaxSessionsPerUser(0), "Invalid security policy: MAX_SESSIONS_PER_USER must be at least 1"},
		{"short lockout", WithAccountLockout(30 * time.Second), "Invalid security policy: ACCOUNT_LOCKOUT must be at least one minute"},
		{"short access ttl", WithAccessTokenTTL(time.Second), "Invalid security policy: ACCESS_TOKEN_TTL must be at least one minute"},
		{"empty patterns", WithPasswordPatterns(nil), "Invalid security policy: password patterns must not be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSecurityPolicy(tc.opt)
			if err == nil {
				t.Fatal("invalid policy accepted, want error")
			}
			if err.Error() != tc.want {
				t.Errorf("message = %q, want %q", err.Error(), tc.want)
			}
		})
	}
}

func TestNewSecurityPolicyRejectsBadPattern(t *testing.T) {
	_, err := NewSecurityPolicy(WithPasswordPatterns(map[string]PasswordPattern{
		"broken": {Pattern: "[unclosed", Message: "never matches"},
	}))
	if err == nil {
		t.Fatal("non-compiling pattern accepted, want error")
	}

	_, err = NewSecurityPolicy(WithPasswordPatterns(map[string]PasswordPattern{
		"no message": {Pattern: "[A-Z]"},
	}))
	if err == nil {
		t.Fatal("pattern without message accepted, want error")
	}
}

func TestSecurityPolicyEqual(t *testing.T) {
	a := DefaultSecurityPolicy()
	b := DefaultSecurityPolicy()
	if !a.Equal(b) {
		t.Error("two default policies are not equal")
	}

	c, err := NewSecurityPolicy(WithPasswordMinLength(12))
	if err != nil {
		t.Fatalf("NewSecurityPolicy returned error: %v", err)
	}
	if a.Equal(c) {
		t.Error("policies with different min lengths are equal")
	}

	if a.Equal(nil) {
		t.Error("policy equals nil")
	}
	var nilPolicy *SecurityPolicy
	if !nilPolicy.Equal(nil) {
		t.Error("nil policies are not equal")
	}
}

func TestPasswordPatternsReturnsCopy(t *testing.T) {
	policy := DefaultSecurityPolicy()

	patterns := policy.PasswordPatterns()
	patterns["uppercase"] = PasswordPattern{Pattern: "tampered", Message: "tampered"}

	if policy.PasswordPatterns()["uppercase"].Pattern == "tampered" {
		t.Error("mutating the returned map changed the policy")
	}
}
