package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrClaimLost    = errors.New("claim lost")
	ErrInvalidInput = errors.New("invalid input")
)
