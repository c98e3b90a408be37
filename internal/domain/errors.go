package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotPlaying      = errors.New("nothing playing")
	ErrNotFound        = errors.New("not found")
	ErrEmptyCompletion = errors.New("empty completion")
	ErrEmptyAudio      = errors.New("empty audio payload")
)
