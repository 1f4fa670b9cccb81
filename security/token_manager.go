package security

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/earnbaseio/earnbase-common/errors"
	"github.com/earnbaseio/earnbase-common/valueobject"
)

// TypeClaim is the fixed claim key carrying the token kind discriminator.
// The manager owns this key; caller-supplied claims cannot override it.
const TypeClaim = "type"

// JWTConfig is the signing configuration bound to one TokenManager. Two
// managers with different configurations cannot verify each other's tokens.
type JWTConfig struct {
	SecretKey string
	// Algorithm selects the HMAC signing method: HS256 (default), HS384,
	// or HS512.
	Algorithm string
	// AccessTokenTTL and RefreshTokenTTL override the policy defaults for
	// short- and long-lived tokens when set.
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// TokenManager issues and verifies signed, time-boxed tokens carrying
// arbitrary claims plus a kind discriminator. It is stateless after
// construction and safe for concurrent use.
type TokenManager struct {
	cfg    JWTConfig
	policy *SecurityPolicy
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenManager constructs a manager bound to the signing configuration.
// A nil policy selects the documented defaults for token lifetimes.
func NewTokenManager(cfg JWTConfig, policy *SecurityPolicy) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.Validation("Signing secret must not be empty")
	}

	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if policy == nil {
		policy = DefaultSecurityPolicy()
	}

	return &TokenManager{
		cfg:    cfg,
		policy: policy,
		method: method,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the manager clock for deterministic tests.
func (m *TokenManager) WithClock(clock func() time.Time) {
	if clock != nil {
		m.now = clock
	}
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	}
	return nil, errors.Validation("Invalid signing algorithm")
}

// lifetime resolves the effective validity window for a token kind:
// the explicit config override for access/refresh when set, else the
// policy default for the kind.
func (m *TokenManager) lifetime(tokenType valueobject.TokenType) time.Duration {
	switch tokenType {
	case valueobject.TokenTypeAccess:
		if m.cfg.AccessTokenTTL != 0 {
			return m.cfg.AccessTokenTTL
		}
		return m.policy.AccessTokenTTL()
	case valueobject.TokenTypeRefresh:
		if m.cfg.RefreshTokenTTL != 0 {
			return m.cfg.RefreshTokenTTL
		}
		return m.policy.RefreshTokenTTL()
	case valueobject.TokenTypeVerification:
		return m.policy.VerificationTokenTTL()
	case valueobject.TokenTypeReset:
		return m.policy.ResetTokenTTL()
	}
	return 0
}

// Create mints a signed token of the given kind from the claim payload.
// expiresIn, when given, overrides the configured lifetime and may be
// negative to construct an already-expired token. The kind is embedded in
// the signed payload under TypeClaim alongside the caller's claims.
func (m *TokenManager) Create(claims map[string]any, tokenType valueobject.TokenType, expiresIn ...time.Duration) (valueobject.Token, error) {
	if !tokenType.Valid() {
		return valueobject.Token{}, errors.Validation("Invalid token type")
	}

	validity := m.lifetime(tokenType)
	if len(expiresIn) > 0 {
		validity = expiresIn[0]
	}

	now := m.now().UTC()
	expiresAt := now.Add(validity)

	payload := make(jwt.MapClaims, len(claims)+3)
	for k, v := range claims {
		payload[k] = v
	}
	// The discriminator and registered time claims are owned by the
	// manager and written last.
	payload[TypeClaim] = string(tokenType)
	payload["iat"] = jwt.NewNumericDate(now)
	payload["exp"] = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(m.method, payload).SignedString([]byte(m.cfg.SecretKey))
	if err != nil {
		return valueobject.Token{}, errors.Internal("Failed to sign token")
	}

	return valueobject.NewToken(signed, tokenType, expiresAt, nil)
}

// Verify checks the signature and expiry of a presented token string and
// recovers its claims, including the kind under TypeClaim. When an expected
// kind is given, a mismatching discriminator is rejected.
func (m *TokenManager) Verify(token string, expected ...valueobject.TokenType) (map[string]any, error) {
	if token == "" {
		return nil, errors.Validation("Invalid token")
	}

	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) {
			return []byte(m.cfg.SecretKey), nil
		},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Validation("Token has expired")
		}
		return nil, errors.Validation("Invalid token")
	}

	payload, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.Validation("Invalid token")
	}

	kind, _ := payload[TypeClaim].(string)
	tokenType, err := valueobject.ParseTokenType(kind)
	if err != nil {
		return nil, errors.Validation("Invalid token type")
	}

	if len(expected) > 0 && tokenType != expected[0] {
		return nil, errors.Validation("Invalid token type")
	}

	claims := make(map[string]any, len(payload))
	for k, v := range payload {
		claims[k] = v
	}
	return claims, nil
}
