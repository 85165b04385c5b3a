// Package watch reloads a ROM when its file changes on disk.
package watch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

// Delay is how long the file must stay quiet before it is reloaded.
// Editors and assemblers often write a file in several steps.
var Delay = 100 * time.Millisecond

// A Swapper replaces the running program. *runner.Runner is one.
type Swapper interface {
	Swap(rom []byte) error
}

// Watch reads romFile again each time it changes and hands the contents to
// s, until ctx is done. Read and load failures are logged and the old
// program carries on.
func Watch(ctx context.Context, romFile string, s Swapper, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: many editors replace the file rather than
	// writing to it, which would drop a watch on the file itself.
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Event:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() && !ev.IsDelete() {
				reload = time.After(Delay)
			}
		case err, ok := <-watcher.Error:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)
		case <-reload:
			reload = nil
			rom, err := os.ReadFile(romFile)
			if err != nil {
				logger.Printf("watch: %v", err)
				break
			}
			if err := s.Swap(rom); err != nil {
				logger.Printf("watch: loading %s: %v", filepath.Base(romFile), err)
				break
			}
			logger.Printf("watch: reloaded %s", filepath.Base(romFile))
		}
	}
}
