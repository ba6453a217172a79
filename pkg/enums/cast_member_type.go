package enums

import "fmt"

// CastMemberType distinguishes directors from actors.
type CastMemberType string

const (
	CastMemberTypeDirector CastMemberType = "director"
	CastMemberTypeActor    CastMemberType = "actor"
)

var validCastMemberTypes = []CastMemberType{CastMemberTypeDirector, CastMemberTypeActor}

// String returns the literal string for the type.
func (c CastMemberType) String() string {
	return string(c)
}

// IsValid reports whether the type is known.
func (c CastMemberType) IsValid() bool {
	for _, candidate := range validCastMemberTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCastMemberType converts raw input into a CastMemberType.
func ParseCastMemberType(value string) (CastMemberType, error) {
	for _, candidate := range validCastMemberTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cast member type %q", value)
}
