package fields

import "errors"

// Codec errors. Callers match them with errors.Is; the returned errors wrap
// these with the offending shape or size.
var (
	ErrEncodingOverflow     = errors.New("fields: value exceeds field width")
	ErrUnsupportedValueType = errors.New("fields: unsupported value type")
	ErrNotInField           = errors.New("fields: value not in scalar field")
	ErrInvalidElement       = errors.New("fields: invalid field element")
	ErrValueOutOfRange      = errors.New("fields: value out of range")
	ErrInvalidWidth         = errors.New("fields: invalid field width")
)
