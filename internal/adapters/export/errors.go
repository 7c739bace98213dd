package export

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownKind = errors.New("unknown export kind")
	ErrMalformed   = errors.New("malformed csv")
)
