package tag

import "fmt"

// Identifier is a validated module or struct name.
//
// A valid identifier consists of ASCII letters, digits, and underscores;
// the first character must be a letter, or an underscore followed by at
// least one more character. Construction is the validation boundary:
// values of this type are always well-formed.
type Identifier string

// NewIdentifier validates s and returns it as an Identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !IsValidIdentifier(s) {
		return "", fmt.Errorf("invalid identifier %q", s)
	}
	return Identifier(s), nil
}

// MustIdentifier is like NewIdentifier but panics on error.
// Use only in tests or on literals known to be valid.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidIdentifier reports whether s satisfies the identifier grammar.
func IsValidIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	// A bare "_" is not an identifier.
	if s == "_" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// String returns the identifier text.
func (id Identifier) String() string {
	return string(id)
}

// Compare orders identifiers lexicographically by byte.
func (id Identifier) Compare(other Identifier) int {
	switch {
	case id < other:
		return -1
	case id > other:
		return 1
	default:
		return 0
	}
}

// AbstractSizeForGasMetering returns the abstract memory cost of the
// identifier: its byte length. Identical on every architecture.
func (id Identifier) AbstractSizeForGasMetering() AbstractSize {
	return AbstractSize(len(id))
}
