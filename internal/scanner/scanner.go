// Package scanner abstracts the camera/decoding device used by the capture
// workflow. The TUI only talks to the Decoder interface; the default
// implementation shells out to an external decode tool.
package scanner

import (
	"context"
	"errors"
)

type Device struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var (
	// ErrNoDevice means enumeration found no camera to decode from.
	ErrNoDevice = errors.New("no camera device available")
	// ErrSessionActive means Start was called while a session is running.
	// At most one decode session may hold the camera at a time.
	ErrSessionActive = errors.New("decode session already active")
)

// Decoder is the camera collaborator. Start acquires the device and streams
// recognized codes on the returned channel until Stop is called or ctx is
// canceled; the channel is closed when the session ends. Stop must release
// the device and is safe to call when no session is active.
type Decoder interface {
	ListDevices(ctx context.Context) ([]Device, error)
	Start(ctx context.Context, deviceID string) (<-chan string, error)
	Stop() error
}
