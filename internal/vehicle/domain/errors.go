package domain

import "errors"

// ErrInvalidCommand is returned when a movement command cannot be expressed as an order telegram.
var ErrInvalidCommand = errors.New("invalid movement command")
