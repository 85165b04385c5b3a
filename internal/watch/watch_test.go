package watch

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swapper struct {
	roms chan []byte
}

func (s swapper) Swap(rom []byte) error {
	s.roms <- rom
	return nil
}

// syncBuffer lets the test read the log while Watch writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	rom := filepath.Join(dir, "game.ch8")
	require.NoError(t, os.WriteFile(rom, []byte{0x12, 0x00}, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	s := swapper{roms: make(chan []byte, 4)}
	var logs syncBuffer
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, rom, s, log.New(&logs, "", 0)) }()

	// Give the watcher time to start before touching the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.ch8"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(rom, []byte{0x60, 0x01, 0x12, 0x02}, 0o644))

	select {
	case got := <-s.roms:
		assert.Equal(t, []byte{0x60, 0x01, 0x12, 0x02}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return")
	}
	assert.Contains(t, logs.String(), "reloaded game.ch8")
	assert.Empty(t, s.roms, "other files do not trigger a reload")
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "game.ch8"), swapper{}, nil)
	assert.Error(t, err)
}
