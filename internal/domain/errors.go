package domain

import (
	"errors"
	"fmt"
)

var ErrSessionNotFound = errors.New("session not found")

// DecodeError indicates the uploaded bytes are not a recognized image format.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode image: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// RetrievalError indicates a provider-hosted artifact could not be fetched.
type RetrievalError struct {
	URL string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve artifact %s: %v", e.URL, e.Err)
}
func (e *RetrievalError) Unwrap() error { return e.Err }

// EncodeError indicates the storage-ready encoding could not be produced or
// written.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode artifact: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// GenerationError indicates every provider attempt was rejected. Model names
// the last provider tried and Err carries its diagnostic.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("image generation failed (%s): %v", e.Model, e.Err)
}
func (e *GenerationError) Unwrap() error { return e.Err }
