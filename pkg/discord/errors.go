package discord

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotBound is returned by Apply when no message has been resolved or created yet.
var ErrNotBound = errors.New("surface is not bound to a message")

// PermissionError lists the capabilities the bot lacks on the target channel.
type PermissionError struct {
	ChannelID string
	Missing   []string
	Err       error
}

func (e *PermissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to determine bot permissions for channel %s: %v", e.ChannelID, e.Err)
	}
	return fmt.Sprintf("bot is missing the following permissions on channel %s: %s", e.ChannelID, strings.Join(e.Missing, ", "))
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// TargetError means the configured guild or channel cannot host the surface.
type TargetError struct {
	Reason string
	Err    error
}

func (e *TargetError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// SurfaceResolutionError is raised when a stored message id can no longer be fetched.
// The manager recovers from it by creating a new message.
type SurfaceResolutionError struct {
	MessageID string
	Err       error
}

func (e *SurfaceResolutionError) Error() string {
	return fmt.Sprintf("message %s could not be resolved: %v", e.MessageID, e.Err)
}

func (e *SurfaceResolutionError) Unwrap() error {
	return e.Err
}

// SurfaceUpdateError wraps a failed send or edit.
type SurfaceUpdateError struct {
	Op  string
	Err error
}

func (e *SurfaceUpdateError) Error() string {
	return fmt.Sprintf("surface %s failed: %v", e.Op, e.Err)
}

func (e *SurfaceUpdateError) Unwrap() error {
	return e.Err
}
