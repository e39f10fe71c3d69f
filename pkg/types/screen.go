package types

import "errors"

// Screen controller errors.
var (
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrNilStage          = errors.New("stage must not be nil")
)
