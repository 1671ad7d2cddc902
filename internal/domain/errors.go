package domain

import "errors"

var (
	// ErrRemoteUnavailable marks any failure of remote image generation.
	ErrRemoteUnavailable = errors.New("remote image generation unavailable")

	// ErrNotImage is returned when the generator answers with a body that is not an image.
	ErrNotImage = errors.New("response body is not an image")
)
