package scanner

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// CommandDecoder decodes barcodes by running an external tool that prints one
// recognized code per stdout line (zbarcam-style). The device path is appended
// as the last argument.
type CommandDecoder struct {
	// Argv is the decode command. Empty means DefaultCommand().
	Argv []string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// DefaultCommand honors STOCKTAKE_DECODE_CMD, falling back to `zbarcam --raw`.
func DefaultCommand() []string {
	if env := strings.TrimSpace(os.Getenv("STOCKTAKE_DECODE_CMD")); env != "" {
		return strings.Fields(env)
	}
	return []string{"zbarcam", "--raw"}
}

func (d *CommandDecoder) argv() []string {
	if len(d.Argv) > 0 {
		return d.Argv
	}
	return DefaultCommand()
}

// ListDevices enumerates V4L capture nodes (/dev/video*).
func (d *CommandDecoder) ListDevices(ctx context.Context) ([]Device, error) {
	matches, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, ErrNoDevice
	}
	devices := make([]Device, 0, len(matches))
	for _, path := range matches {
		devices = append(devices, Device{ID: path, Label: filepath.Base(path)})
	}
	return devices, nil
}

func (d *CommandDecoder) Start(ctx context.Context, deviceID string) (<-chan string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return nil, ErrSessionActive
	}

	cctx, cancel := context.WithCancel(ctx)
	argv := d.argv()
	args := append(append([]string{}, argv[1:]...), deviceID)
	cmd := exec.CommandContext(cctx, argv[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start decoder %q: %w", argv[0], err)
	}

	out := make(chan string)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done

	go func() {
		defer close(done)
		defer close(out)
		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			code := strings.TrimSpace(sc.Text())
			if code == "" {
				continue
			}
			select {
			case out <- code:
			case <-cctx.Done():
				// Drain and exit; the process is being killed.
				_ = cmd.Wait()
				return
			}
		}
		// EOF: the tool exited on its own. Reap it so we never leak the device.
		cancel()
		_ = cmd.Wait()
	}()

	return out, nil
}

// Stop kills the decode process and waits for the reader to finish. Safe to
// call with no active session.
func (d *CommandDecoder) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel == nil {
		return nil
	}
	d.cancel()
	<-d.done
	d.cancel = nil
	d.done = nil
	return nil
}
