package security

import (
	"fmt"
	"regexp"
	"time"

	"github.com/earnbaseio/earnbase-common/errors"
)

// PasswordPattern pairs a complexity regexp with its user-facing failure
// message.
type PasswordPattern struct {
	Pattern string
	Message string
}

// Documented policy defaults.
const (
	DefaultPasswordMinLength    = 8
	DefaultMaxLoginAttempts     = 5
	DefaultAccountLockout       = 15 * time.Minute
	DefaultAccessTokenTTL       = 30 * time.Minute
	DefaultRefreshTokenTTL      = 7 * 24 * time.Hour
	DefaultVerificationTokenTTL = 24 * time.Hour
	DefaultResetTokenTTL        = 24 * time.Hour
	DefaultMaxSessionsPerUser   = 5
	DefaultSessionIdleTimeout   = 60 * time.Minute
)

func defaultPasswordPatterns() map[string]PasswordPattern {
	return map[string]PasswordPattern{
		"uppercase": {Pattern: `[A-Z]`, Message: "Password must contain an uppercase letter"},
		"lowercase": {Pattern: `[a-z]`, Message: "Password must contain a lowercase letter"},
		"digit":     {Pattern: `[0-9]`, Message: "Password must contain a digit"},
		"special":   {Pattern: `[!@#$%^&*(),.?":{}|<>_\-+=\[\];'~` + "`" + `\\/]`, Message: "Password must contain a special character"},
	}
}

// SecurityPolicy is the immutable bundle of tunable security parameters:
// password complexity, lockout thresholds, token lifetimes, and session
// limits. Construct with NewSecurityPolicy; the zero value is not valid.
type SecurityPolicy struct {
	passwordMinLength    int
	passwordPatterns     map[string]PasswordPattern
	maxLoginAttempts     int
	accountLockout       time.Duration
	accessTokenTTL       time.Duration
	refreshTokenTTL      time.Duration
	verificationTokenTTL time.Duration
	resetTokenTTL        time.Duration
	maxSessionsPerUser   int
	sessionIdleTimeout   time.Duration
}

// PolicyOption overrides one field of a SecurityPolicy under construction.
type PolicyOption func(*SecurityPolicy)

// WithPasswordMinLength overrides the minimum password length.
func WithPasswordMinLength(n int) PolicyOption {
	return func(p *SecurityPolicy) { p.passwordMinLength = n }
}

// WithPasswordPatterns replaces the complexity pattern catalogue.
func WithPasswordPatterns(patterns map[string]PasswordPattern) PolicyOption {
	return func(p *SecurityPolicy) {
		copied := make(map[string]PasswordPattern, len(patterns))
		for name, pattern := range patterns {
			copied[name] = pattern
		}
		p.passwordPatterns = copied
	}
}

// WithMaxLoginAttempts overrides the login attempt ceiling before lockout.
func WithMaxLoginAttempts(n int) PolicyOption {
	return func(p *SecurityPolicy) { p.maxLoginAttempts = n }
}

// WithAccountLockout overrides the lockout duration.
func WithAccountLockout(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.accountLockout = d }
}

// WithAccessTokenTTL overrides the access token lifetime.
func WithAccessTokenTTL(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.accessTokenTTL = d }
}

// WithRefreshTokenTTL overrides the refresh token lifetime.
func WithRefreshTokenTTL(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.refreshTokenTTL = d }
}

// WithVerificationTokenTTL overrides the verification token lifetime.
func WithVerificationTokenTTL(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.verificationTokenTTL = d }
}

// WithResetTokenTTL overrides the password reset token lifetime.
func WithResetTokenTTL(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.resetTokenTTL = d }
}

// WithMaxSessionsPerUser overrides the concurrent session ceiling.
func WithMaxSessionsPerUser(n int) PolicyOption {
	return func(p *SecurityPolicy) { p.maxSessionsPerUser = n }
}

// WithSessionIdleTimeout overrides the session idle timeout.
func WithSessionIdleTimeout(d time.Duration) PolicyOption {
	return func(p *SecurityPolicy) { p.sessionIdleTimeout = d }
}

// NewSecurityPolicy builds a policy from the documented defaults plus any
// overrides. Construction fails with a validation error when a numeric
// parameter is below its positive minimum or a pattern does not compile.
func NewSecurityPolicy(opts ...PolicyOption) (*SecurityPolicy, error) {
	policy := &SecurityPolicy{
		passwordMinLength:    DefaultPasswordMinLength,
		passwordPatterns:     defaultPasswordPatterns(),
		maxLoginAttempts:     DefaultMaxLoginAttempts,
		accountLockout:       DefaultAccountLockout,
		accessTokenTTL:       DefaultAccessTokenTTL,
		refreshTokenTTL:      DefaultRefreshTokenTTL,
		verificationTokenTTL: DefaultVerificationTokenTTL,
		resetTokenTTL:        DefaultResetTokenTTL,
		maxSessionsPerUser:   DefaultMaxSessionsPerUser,
		sessionIdleTimeout:   DefaultSessionIdleTimeout,
	}

	for _, opt := range opts {
		opt(policy)
	}

	if err := policy.validate(); err != nil {
		return nil, err
	}

	return policy, nil
}

// DefaultSecurityPolicy returns a policy with every field at its documented
// default.
func DefaultSecurityPolicy() *SecurityPolicy {
	policy, err := NewSecurityPolicy()
	if err != nil {
		panic(fmt.Sprintf("default security policy invalid: %v", err))
	}
	return policy
}

func (p *SecurityPolicy) validate() error {
	counts := map[string]int{
		"PASSWORD_MIN_LENGTH":   p.passwordMinLength,
		"MAX_LOGIN_ATTEMPTS":    p.maxLoginAttempts,
		"MAX_SESSIONS_PER_USER": p.maxSessionsPerUser,
	}
	for name, value := range counts {
		if value < 1 {
			return errors.Validation(fmt.Sprintf("Invalid security policy: %s must be at least 1", name))
		}
	}

	durations := map[string]time.Duration{
		"ACCOUNT_LOCKOUT":        p.accountLockout,
		"ACCESS_TOKEN_TTL":       p.accessTokenTTL,
		"REFRESH_TOKEN_TTL":      p.refreshTokenTTL,
		"VERIFICATION_TOKEN_TTL": p.verificationTokenTTL,
		"RESET_TOKEN_TTL":        p.resetTokenTTL,
		"SESSION_IDLE_TIMEOUT":   p.sessionIdleTimeout,
	}
	for name, value := range durations {
		if value < time.Minute {
			return errors.Validation(fmt.Sprintf("Invalid security policy: %s must be at least one minute", name))
		}
	}

	if len(p.passwordPatterns) == 0 {
		return errors.Validation("Invalid security policy: password patterns must not be empty")
	}
	for name, pattern := range p.passwordPatterns {
		if pattern.Pattern == "" || pattern.Message == "" {
			return errors.Validation(fmt.Sprintf("Invalid security policy: pattern %q must define pattern and message", name))
		}
		if _, err := regexp.Compile(pattern.Pattern); err != nil {
			return errors.Validation(fmt.Sprintf("Invalid security policy: pattern %q does not compile", name))
		}
	}

	return nil
}

// PasswordMinLength returns the minimum password length.
func (p *SecurityPolicy) PasswordMinLength() int { return p.passwordMinLength }

// PasswordPatterns returns a copy of the complexity pattern catalogue.
func (p *SecurityPolicy) PasswordPatterns() map[string]PasswordPattern {
	copied := make(map[string]PasswordPattern, len(p.passwordPatterns))
	for name, pattern := range p.passwordPatterns {
		copied[name] = pattern
	}
	return copied
}

// MaxLoginAttempts returns the attempt ceiling before lockout.
func (p *SecurityPolicy) MaxLoginAttempts() int { return p.maxLoginAttempts }

// AccountLockout returns the lockout duration.
func (p *SecurityPolicy) AccountLockout() time.Duration { return p.accountLockout }

// AccessTokenTTL returns the access token lifetime.
func (p *SecurityPolicy) AccessTokenTTL() time.Duration { return p.accessTokenTTL }

// RefreshTokenTTL returns the refresh token lifetime.
func (p *SecurityPolicy) RefreshTokenTTL() time.Duration { return p.refreshTokenTTL }

// VerificationTokenTTL returns the verification token lifetime.
func (p *SecurityPolicy) VerificationTokenTTL() time.Duration { return p.verificationTokenTTL }

// ResetTokenTTL returns the password reset token lifetime.
func (p *SecurityPolicy) ResetTokenTTL() time.Duration { return p.resetTokenTTL }

// MaxSessionsPerUser returns the concurrent session ceiling.
func (p *SecurityPolicy) MaxSessionsPerUser() int { return p.maxSessionsPerUser }

// SessionIdleTimeout returns the session idle timeout.
func (p *SecurityPolicy) SessionIdleTimeout() time.Duration { return p.sessionIdleTimeout }

// Equal reports structural equality over all policy fields, so two
// independently constructed default policies compare equal.
func (p *SecurityPolicy) Equal(other *SecurityPolicy) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.passwordMinLength != other.passwordMinLength ||
		p.maxLoginAttempts != other.maxLoginAttempts ||
		p.accountLockout != other.accountLockout ||
		p.accessTokenTTL != other.accessTokenTTL ||
		p.refreshTokenTTL != other.refreshTokenTTL ||
		p.verificationTokenTTL != other.verificationTokenTTL ||
		p.resetTokenTTL != other.resetTokenTTL ||
		p.maxSessionsPerUser != other.maxSessionsPerUser ||
		p.sessionIdleTimeout != other.sessionIdleTimeout {
		return false
	}

	if len(p.passwordPatterns) != len(other.passwordPatterns) {
		return false
	}
	for name, pattern := range p.passwordPatterns {
		if other.passwordPatterns[name] != pattern {
			return false
		}
	}
	return true
}
