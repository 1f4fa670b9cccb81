// Package security provides the credential and token primitives shared by
// earnbase services: a salted password-hashing facility, the tunable
// SecurityPolicy, a policy-driven password validator, and the signed,
// time-boxed TokenManager.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/earnbaseio/earnbase-common/errors"
	"github.com/earnbaseio/earnbase-common/valueobject"
)

const (
	argon2Variant = "argon2id"
	argon2Version = "v=19"
)

// Argon2Params defines tunable parameters for Argon2id password hashing.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var (
	defaultArgon2Params = Argon2Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}

	activeArgon2Params = defaultArgon2Params
	argon2ParamsMu     sync.RWMutex
)

// DefaultArgon2Params returns the library default Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return defaultArgon2Params
}

// CurrentArgon2Params returns the currently active hashing parameters.
func CurrentArgon2Params() Argon2Params {
	argon2ParamsMu.RLock()
	defer argon2ParamsMu.RUnlock()
	return activeArgon2Params
}

// ConfigureArgon2 sets the active hashing parameters after validation.
func ConfigureArgon2(params Argon2Params) error {
	if err := validateArgon2Params(params); err != nil {
		return err
	}

	argon2ParamsMu.Lock()
	activeArgon2Params = params
	argon2ParamsMu.Unlock()
	return nil
}

func validateArgon2Params(params Argon2Params) error {
	if params.Memory < 8*1024 {
		return errors.Validation("Invalid argon2 parameters: memory must be at least 8192")
	}
	if params.Iterations == 0 {
		return errors.Validation("Invalid argon2 parameters: iterations must be greater than zero")
	}
	if params.Parallelism == 0 {
		return errors.Validation("Invalid argon2 parameters: parallelism must be greater than zero")
	}
	if params.SaltLength < 8 {
		return errors.Validation("Invalid argon2 parameters: salt length must be at least 8 bytes")
	}
	if params.KeyLength < 16 {
		return errors.Validation("Invalid argon2 parameters: key length must be at least 16 bytes")
	}
	return nil
}

// HashPassword derives an Argon2id hash of the plaintext with a freshly
// generated random salt. Repeated calls with the same plaintext produce
// different encoded values.
//
// Format: argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
func HashPassword(password string) (valueobject.PasswordHash, error) {
	if password == "" {
		return valueobject.PasswordHash{}, errors.Validation("Password must not be empty")
	}

	params := CurrentArgon2Params()

	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return valueobject.PasswordHash{}, fmt.Errorf("generate salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	encoded := strings.Join([]string{
		argon2Variant,
		argon2Version,
		fmt.Sprintf("m=%d,t=%d,p=%d", params.Memory, params.Iterations, params.Parallelism),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	}, "$")

	return valueobject.NewPasswordHash(encoded)
}

// VerifyPassword reports whether the plaintext, combined with the salt and
// parameters embedded in the encoded hash, reproduces the hash. Empty or
// malformed encoded values return false, never an error: callers check
// password correctness with a boolean, not an error branch.
//
// The final comparison always goes through a constant-time primitive.
// Structurally malformed hashes are rejected before any key derivation, so
// the malformed path is cheaper than a genuine mismatch; this is best-effort
// rather than constant across all inputs.
func VerifyPassword(password, encoded string) bool {
	if password == "" || encoded == "" {
		return false
	}

	params, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// VerifyPasswordHash is VerifyPassword against a PasswordHash value object.
func VerifyPasswordHash(password string, hash valueobject.PasswordHash) bool {
	return VerifyPassword(password, hash.Value())
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return Argon2Params{}, nil, nil, fmt.Errorf("invalid encoded hash format")
	}

	if parts[0] != argon2Variant {
		return Argon2Params{}, nil, nil, fmt.Errorf("unexpected variant %q", parts[0])
	}
	if parts[1] != argon2Version {
		return Argon2Params{}, nil, nil, fmt.Errorf("unsupported version %q", parts[1])
	}

	memory, iterations, parallelism, err := parseHashParams(parts[2])
	if err != nil {
		return Argon2Params{}, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	sum, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	params := Argon2Params{
		Memory:      memory,
		Iterations:  iterations,
		Parallelism: parallelism,
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(sum)),
	}

	if err := validateArgon2Params(params); err != nil {
		return Argon2Params{}, nil, nil, err
	}

	return params, salt, sum, nil
}

func parseHashParams(segment string) (uint32, uint32, uint8, error) {
	entries := strings.Split(segment, ",")
	if len(entries) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid parameter segment")
	}

	var (
		memory      uint32
		iterations  uint32
		parallelism uint8
	)

	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return 0, 0, 0, fmt.Errorf("invalid parameter %q", entry)
		}

		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("parse m: %w", err)
			}
			memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("parse t: %w", err)
			}
			iterations = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return 0, 0, 0, fmt.Errorf("parse p: %w", err)
			}
			parallelism = uint8(v)
		default:
			return 0, 0, 0, fmt.Errorf("unknown parameter %q", key)
		}
	}

	return memory, iterations, parallelism, nil
}
