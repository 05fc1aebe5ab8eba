package application

import "errors"

// ErrInvalidRequest is returned when a service request fails validation.
var ErrInvalidRequest = errors.New("invalid request")
