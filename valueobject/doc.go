// Package valueobject provides immutable, construct-time validated domain
// primitives compared by value. Constructors return an
// errors.Validation failure for malformed input and never produce a
// partially valid instance; the zero value of each type is not valid.
package valueobject
