package valueobject

import (
	"fmt"

	"github.com/earnbaseio/earnbase-common/errors"
)

// maskedHash is rendered in place of the real hash everywhere a PasswordHash
// is printed or logged.
const maskedHash = "********"

// PasswordHash wraps an encoded password hash. Its textual and debug
// representations never reveal the underlying value; equality operates on
// the real value.
type PasswordHash struct {
	value string
}

// NewPasswordHash wraps an encoded hash string. The value must be non-empty;
// no further shape validation is applied so hashes produced by earlier
// encodings remain accepted.
func NewPasswordHash(value string) (PasswordHash, error) {
	if value == "" {
		return PasswordHash{}, errors.Validation("Password hash must not be empty")
	}
	return PasswordHash{value: value}, nil
}

// Value returns the encoded hash for storage or verification.
func (h PasswordHash) Value() string { return h.value }

// String implements fmt.Stringer and always returns the masking constant.
func (h PasswordHash) String() string { return maskedHash }

// Format implements fmt.Formatter so %v, %s, %q and %#v all mask the value.
func (h PasswordHash) Format(f fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(f, "%q", maskedHash)
	case 'v':
		if f.Flag('#') {
			fmt.Fprintf(f, "valueobject.PasswordHash{value:%q}", maskedHash)
			return
		}
		fmt.Fprint(f, maskedHash)
	default:
		fmt.Fprint(f, maskedHash)
	}
}
