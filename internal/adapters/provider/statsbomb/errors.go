package statsbomb

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrProvider matches every failure to obtain usable data from the provider.
	ErrProvider = errors.New("provider error")
	// ErrNotFound reports an unknown competition, season or match.
	ErrNotFound = errors.New("not found")
)

// Error describes a failed provider call.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrProvider.
func (e *Error) Is(target error) bool { return target == ErrProvider }
