package service

import "errors"

// Error kinds. Callers classify with errors.Is; messages carry the detail.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidReference = errors.New("invalid reference")
)
