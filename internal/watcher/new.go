package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"noteflow/internal/logger"
)

// New creates a Watcher over inputDir. Detected files are handed to
// handler one at a time; the pipeline allows a single active job.
func New(inputDir string, handler Handler, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  fsw,
	}, nil
}
