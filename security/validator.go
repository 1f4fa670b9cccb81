package security

import (
	"fmt"
	"regexp"
	"sort"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/earnbaseio/earnbase-common/errors"
)

// PasswordRule validates a password according to a single policy rule.
type PasswordRule interface {
	Validate(password string) error
}

// PasswordRuleFunc adapts a function to be used as a PasswordRule.
type PasswordRuleFunc func(password string) error

// Validate executes the underlying rule function.
func (f PasswordRuleFunc) Validate(password string) error {
	return f(password)
}

// PasswordValidator applies a sequence of password rules and reports the
// first violation.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// Validate executes all rules and returns the first encountered violation
// as a validation error.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return errors.Internal("password validator not configured")
	}
	for _, rule := range v.rules {
		if err := rule.Validate(password); err != nil {
			return err
		}
	}
	return nil
}

// MinLengthRule ensures the password has at least min characters.
func MinLengthRule(min int) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if len([]rune(password)) < min {
			return errors.Validation(fmt.Sprintf("Password must be at least %d characters long", min))
		}
		return nil
	})
}

// PatternRule ensures the password matches the named complexity pattern,
// failing with the pattern's configured message.
func PatternRule(pattern PasswordPattern) PasswordRule {
	compiled, err := regexp.Compile(pattern.Pattern)
	return PasswordRuleFunc(func(password string) error {
		if err != nil {
			return errors.Validation(pattern.Message)
		}
		if !compiled.MatchString(password) {
			return errors.Validation(pattern.Message)
		}
		return nil
	})
}

// StrengthRule enforces a minimum zxcvbn score, optionally considering
// user-specific inputs (username, email) as weak material.
func StrengthRule(minScore int, userInputs ...string) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if minScore <= 0 {
			return nil
		}
		if minScore > 4 {
			minScore = 4
		}

		result := zxcvbn.PasswordStrength(password, userInputs)
		if result.Score >= minScore {
			return nil
		}
		return errors.Validation("Password is too weak; choose a more complex value")
	})
}

// ValidatorForPolicy builds a validator enforcing the policy's minimum length
// and every configured complexity pattern, in deterministic order.
func ValidatorForPolicy(policy *SecurityPolicy, extra ...PasswordRule) *PasswordValidator {
	if policy == nil {
		policy = DefaultSecurityPolicy()
	}

	patterns := policy.PasswordPatterns()
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]PasswordRule, 0, len(names)+1+len(extra))
	rules = append(rules, MinLengthRule(policy.PasswordMinLength()))
	for _, name := range names {
		rules = append(rules, PatternRule(patterns[name]))
	}
	rules = append(rules, extra...)

	return NewPasswordValidator(rules...)
}
