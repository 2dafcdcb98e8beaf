package game

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing request fields. Nothing was read.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound marks an unknown story, location, player or challenge.
	ErrNotFound = errors.New("not found")
	// ErrInternal marks store failures and inconsistent records.
	ErrInternal = errors.New("internal error")
)

var (
	ErrStoryNotFound     = fmt.Errorf("story %w", ErrNotFound)
	ErrLocationNotFound  = fmt.Errorf("location %w", ErrNotFound)
	ErrPlayerNotFound    = fmt.Errorf("player %w", ErrNotFound)
	ErrChallengeNotFound = fmt.Errorf("challenge %w", ErrNotFound)
)

// Internal wraps err so that errors.Is(err, ErrInternal) holds.
func Internal(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrInternal, fmt.Errorf(format, args...))
}
