package control

import (
	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("control")

// ErrInvalidOperation is returned when an accessor does not apply to the
// current block type.
var ErrInvalidOperation = Error.New("invalid operation")
