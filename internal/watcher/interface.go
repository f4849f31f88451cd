package watcher

import "context"

// Watcher monitors the input directory for newly dropped recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one detected audio file.
type Handler func(ctx context.Context, audioPath string) error
