package domain

import "errors"

// ErrValidation is returned when input fails validation: a malformed filter
// parameter, a limit below 1, or a trip with a non-positive duration
// reaching feature derivation.
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")
