// Package watch reports edits to a page file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultSettle batches the burst of events an editor save produces
const DefaultSettle = 150 * time.Millisecond

// PageWatcher calls onChange once per burst of writes to a single file.
// The parent directory is watched so editors that replace the file on
// save are still seen.
type PageWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	settle   time.Duration
	onChange func()
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a watcher for path; settle <= 0 uses DefaultSettle
func New(path string, settle time.Duration, onChange func(), logger *zap.Logger) (*PageWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve page path: %w", err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &PageWatcher{
		watcher:  w,
		path:     abs,
		settle:   settle,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching; it does not block
func (pw *PageWatcher) Start(ctx context.Context) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.running {
		return nil
	}
	if err := pw.watcher.Add(filepath.Dir(pw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(pw.path), err)
	}
	pw.running = true
	pw.logger.Debug("watching page", zap.String("path", pw.path))
	go pw.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the watcher. Safe to call twice.
func (pw *PageWatcher) Stop() {
	pw.mu.Lock()
	if !pw.running {
		pw.mu.Unlock()
		_ = pw.watcher.Close()
		return
	}
	pw.running = false
	pw.mu.Unlock()

	close(pw.stopCh)
	<-pw.doneCh
	if err := pw.watcher.Close(); err != nil {
		pw.logger.Warn("error closing watcher", zap.Error(err))
	}
}

func (pw *PageWatcher) run(ctx context.Context) {
	defer close(pw.doneCh)

	timer := time.NewTimer(pw.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pw.stopCh:
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if pw.relevant(event) {
				pw.logger.Debug("page event", zap.String("op", event.Op.String()))
				timer.Reset(pw.settle)
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			pw.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			if pw.onChange != nil {
				pw.onChange()
			}
		}
	}
}

func (pw *PageWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != pw.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
