package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWorkMinutes indicates a work interval that is not positive.
	ErrInvalidWorkMinutes = errors.New("work duration must be positive")
	// ErrInvalidBreakMinutes indicates a negative break interval.
	ErrInvalidBreakMinutes = errors.New("break duration cannot be negative")
	// ErrInvalidIntervals indicates an interval count that is not positive.
	ErrInvalidIntervals = errors.New("intervals per session must be positive")
)

// SessionConfig is the immutable shape of one focus session.
type SessionConfig struct {
	WorkMinutes  int
	BreakMinutes int
	Intervals    int
}

// Validate reports the first invalid field.
func (config SessionConfig) Validate() error {
	if config.WorkMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkMinutes, config.WorkMinutes)
	}
	if config.BreakMinutes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBreakMinutes, config.BreakMinutes)
	}
	if config.Intervals <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIntervals, config.Intervals)
	}
	return nil
}

// WorkSeconds returns the length of one work phase in ticks.
func (config SessionConfig) WorkSeconds() int {
	return config.WorkMinutes * 60
}

// BreakSeconds returns the length of one break phase in ticks.
func (config SessionConfig) BreakSeconds() int {
	return config.BreakMinutes * 60
}

// WorkDuration returns the work phase length.
func (config SessionConfig) WorkDuration() time.Duration {
	return time.Duration(config.WorkMinutes) * time.Minute
}

// BreakDuration returns the break phase length.
func (config SessionConfig) BreakDuration() time.Duration {
	return time.Duration(config.BreakMinutes) * time.Minute
}
