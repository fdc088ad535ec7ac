package blockstate

import (
	"errors"
	"fmt"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// PropertyErrorCode categorizes property assignment failures.
type PropertyErrorCode string

const (
	// ErrCodeUnknownProperty means the target block has no property of that name.
	ErrCodeUnknownProperty PropertyErrorCode = "UNKNOWN_PROPERTY"

	// ErrCodeIllegalValue means the property exists but rejects the value.
	ErrCodeIllegalValue PropertyErrorCode = "ILLEGAL_VALUE"
)

// PropertyError reports a property that could not be set on a block.
type PropertyError struct {
	Block    ident.ID
	Property string
	Value    string
	Code     PropertyErrorCode
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	switch e.Code {
	case ErrCodeUnknownProperty:
		return fmt.Sprintf("%s: %s has no property %q", e.Code, e.Block, e.Property)
	default:
		return fmt.Sprintf("%s: %s does not accept %s=%s", e.Code, e.Block, e.Property, e.Value)
	}
}

// IsUnknownProperty reports whether err is an unknown-property failure.
func IsUnknownProperty(err error) bool {
	var pe *PropertyError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeUnknownProperty
	}
	return false
}

// IsIllegalValue reports whether err is an illegal-value failure.
func IsIllegalValue(err error) bool {
	var pe *PropertyError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeIllegalValue
	}
	return false
}
