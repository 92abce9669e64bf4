package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/digest-flow/internal/content"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

type implWatcher struct {
	inputDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
	queue    chan string
	mu       sync.Mutex
	pending  map[string]bool
	wg       sync.WaitGroup
}

// Start monitors the input directory and processes new files sequentially
// until ctx is cancelled
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(content.SupportedExtensions(), ", "))

	w.wg.Add(1)
	go w.work(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for the current file to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.accepts(event.Name) {
				w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
				continue
			}
			w.enqueue(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) accepts(path string) bool {
	return !strings.HasPrefix(filepath.Base(path), ".") && content.IsSupportedFile(path)
}

func (w *implWatcher) enqueue(ctx context.Context, path string) {
	w.mu.Lock()
	if w.pending[path] {
		w.mu.Unlock()
		return
	}
	w.pending[path] = true
	w.mu.Unlock()

	w.logger.Info(ctx, "New file detected: %s", path)
	select {
	case w.queue <- path:
	case <-ctx.Done():
	}
}

func (w *implWatcher) work(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			if err := w.waitStable(ctx, path); err != nil {
				w.logger.Warn(ctx, "Skipping %s: %v", path, err)
			} else if err := w.handler(ctx, path); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}

			w.mu.Lock()
			delete(w.pending, path)
			w.mu.Unlock()
		}
	}
}

// waitStable blocks until the file stops growing, so copies in progress are
// not picked up half written. A file still empty after maxEmptyChecks
// settle periods is given up on.
func (w *implWatcher) waitStable(ctx context.Context, path string) error {
	var last int64 = -1
	empty := 0
	ticker := time.NewTicker(w.settle)
	defer ticker.Stop()

	for {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		size := info.Size()
		if size == 0 {
			empty++
			if empty > maxEmptyChecks {
				return fmt.Errorf("file is still empty after %s", time.Duration(maxEmptyChecks)*w.settle)
			}
		} else if size == last {
			return nil
		}
		last = size

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
