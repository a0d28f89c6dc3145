package wildfire

import "errors"

// ErrDetectionNotFound is returned when a status update targets an id that
// does not exist.
var ErrDetectionNotFound = errors.New("detection not found")

// ErrInvalidInput marks validation failures the handler maps to 400.
var ErrInvalidInput = errors.New("invalid input")
