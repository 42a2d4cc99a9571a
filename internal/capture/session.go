package capture

import (
	"context"
	"errors"
	"sync"

	"stocktake-cli/internal/scanner"
)

// ErrDecodeEnded means the decode stream closed before any code was
// recognized (the overlay was dismissed or the decoder exited).
var ErrDecodeEnded = errors.New("decode session ended without a code")

// Session is one scoped acquisition of the camera. StartSession acquires the
// decoder; Close releases it and is safe to call more than once. Every exit
// path (first code, dismissal, error during start) releases the device.
type Session struct {
	dec   scanner.Decoder
	codes <-chan string

	closeOnce sync.Once
	closeErr  error
}

func StartSession(ctx context.Context, dec scanner.Decoder, deviceID string) (*Session, error) {
	codes, err := dec.Start(ctx, deviceID)
	if err != nil {
		// The decoder may have partially acquired the device; release it.
		_ = dec.Stop()
		return nil, err
	}
	return &Session{dec: dec, codes: codes}, nil
}

// First blocks until the first recognized code, the stream ending, or ctx
// cancelation. The session is closed before First returns, on every path.
func (s *Session) First(ctx context.Context) (string, error) {
	defer func() { _ = s.Close() }()
	select {
	case code, ok := <-s.codes:
		if !ok {
			return "", ErrDecodeEnded
		}
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the decoder, releasing the camera. Idempotent.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.dec.Stop()
	})
	return s.closeErr
}
