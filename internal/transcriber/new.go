package transcriber

import (
	"fmt"
	"os"

	"noteflow/internal/logger"
	"noteflow/pkg/executor"
)

type implTranscriber struct {
	exePath   string
	modelPath string
	executor  executor.Executor
	logger    logger.Logger

	stat     func(string) (os.FileInfo, error)
	readFile func(string) ([]byte, error)
	remove   func(string) error
}

// New creates a Transcriber. The executable and model paths must exist;
// a missing one fails fast with the matching error kind.
func New(exePath, modelPath string, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	t := &implTranscriber{
		exePath:   exePath,
		modelPath: modelPath,
		executor:  exec,
		logger:    log,
		stat:      os.Stat,
		readFile:  os.ReadFile,
		remove:    os.Remove,
	}

	if _, err := t.stat(exePath); err != nil {
		return nil, &Error{
			Kind:    KindMissingExecutable,
			Message: fmt.Sprintf("transcription executable not found at %s", exePath),
			Err:     err,
		}
	}
	if _, err := t.stat(modelPath); err != nil {
		return nil, &Error{
			Kind:    KindMissingModel,
			Message: fmt.Sprintf("model file not found at %s", modelPath),
			Err:     err,
		}
	}

	return t, nil
}
