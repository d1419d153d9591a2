package interactive

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rail44/charfreq/internal/log"
)

// FileWatcher calls onChange once per burst of writes to a single file
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	debounce time.Duration
	onChange func()
}

// NewFileWatcher watches filePath and its directory, so files replaced by
// editors through rename are still picked up.
func NewFileWatcher(filePath string, debounce time.Duration, onChange func()) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filePath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	dir := filepath.Dir(filePath)
	if err := watcher.Add(dir); err != nil {
		log.Warn("couldn't watch directory", slog.String("dir", dir), log.ErrorAttr(err))
	}

	return &FileWatcher{
		watcher:  watcher,
		filePath: filepath.Clean(filePath),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Start blocks until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) {
	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.Debug("file event", slog.String("op", event.Op.String()))
			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(fw.debounce, fw.onChange)
			mu.Unlock()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", log.ErrorAttr(err))
		}
	}
}

// Close stops watching
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
