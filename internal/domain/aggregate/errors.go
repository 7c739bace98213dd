package aggregate

import (
	"errors"

	"github.com/okian/matchscope/internal/domain/model"
)

// Sentinel kinds for aggregation errors.
var (
	ErrEmptyResult    = errors.New("no events of the needed type")
	ErrMissingField   = errors.New("event is missing a required field")
	ErrInvalidWindow  = errors.New("invalid time window")
	ErrDivisionByZero = model.ErrDivisionByZero
)
