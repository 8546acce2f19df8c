package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"

	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/bnema/timeline-viewer/internal/ports"
	"github.com/fsnotify/fsnotify"
)

const eventBuffer = 16

// FileWatcher reports changes to a single file. It watches the parent directory so
// editors that save by renaming a temp file over the original are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan ports.FileEvent
	logger  *slog.Logger
}

var _ ports.FileWatcher = (*FileWatcher)(nil)

func NewFileWatcher(path string) (*FileWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watched path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		target:  filepath.Clean(target),
		events:  make(chan ports.FileEvent, eventBuffer),
		logger:  applog.WithComponent("watch"),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			fw.logger.Info("timeline changed", slog.String("path", fw.target), slog.String("op", event.Op.String()))

			select {
			case fw.events <- ports.FileEvent{Path: fw.target, Operation: event.Op.String()}:
			default:
				// A reload is already queued.
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("file watch error", slog.String("path", fw.target), slog.Any("error", err))
		}
	}
}

func (fw *FileWatcher) Events() <-chan ports.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
