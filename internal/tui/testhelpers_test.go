package tui

import (
	"context"
	"sync"
	"testing"

	"stocktake-cli/internal/model"
	"stocktake-cli/internal/scanner"

	tea "github.com/charmbracelet/bubbletea"
)

type testDecoder struct {
	startErr error

	mu     sync.Mutex
	codes  chan string
	closed bool
}

func newTestDecoder() *testDecoder {
	return &testDecoder{codes: make(chan string, 4)}
}

func (d *testDecoder) ListDevices(ctx context.Context) ([]scanner.Device, error) {
	return []scanner.Device{{ID: "/dev/video0", Label: "video0"}}, nil
}

func (d *testDecoder) Start(ctx context.Context, deviceID string) (<-chan string, error) {
	if d.startErr != nil {
		return nil, d.startErr
	}
	return d.codes, nil
}

func (d *testDecoder) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		close(d.codes)
	}
	return nil
}

func newTestModel(t *testing.T) appModel {
	t.Helper()
	m := newAppModel(t.TempDir(), newTestDecoder())
	m.width = 100
	m.height = 30
	m.resizeLists()
	return m
}

func seedItem(t *testing.T, m *appModel, name string, quantity int, barcode string) model.Item {
	t.Helper()
	it, err := m.store.Create(name, quantity, barcode)
	if err != nil {
		t.Fatalf("seed %q: %v", name, err)
	}
	m.reload()
	return it
}

func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", mm)
	}
	return out
}

func typeRunes(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg   { return tea.KeyMsg{Type: tea.KeyEsc} }
