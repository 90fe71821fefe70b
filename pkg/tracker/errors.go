package tracker

import "errors"

var (
	ErrOutOfRange = errors.New("goal index out of range")
	ErrNotFound   = errors.New("goals file not found")
	ErrIO         = errors.New("goals file i/o failed")
)
