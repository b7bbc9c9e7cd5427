package value

import "errors"

var (
	ErrUnsupported  = errors.New("unsupported value")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrLossy        = errors.New("lossy conversion")
	ErrJSON         = errors.New("invalid json")
)
