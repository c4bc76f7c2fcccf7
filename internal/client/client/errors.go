package client

import "errors"

var (
	ErrUnavailable  = errors.New("proof service unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)
