package transcriber

import "fmt"

// Kind classifies transcription failures so the pipeline can produce an
// informative log line for each.
type Kind string

const (
	KindMissingExecutable Kind = "missing_executable"
	KindMissingModel      Kind = "missing_model"
	KindMissingAudio      Kind = "missing_audio"
	KindNonZeroExit       Kind = "nonzero_exit"
	KindMissingOutput     Kind = "missing_output"
	KindIO                Kind = "io"
)

// Error is a kind-tagged transcription failure. Stderr carries the
// external process's error output when the process exited non-zero.
type Error struct {
	Kind    Kind
	Message string
	Stderr  string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Stderr)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
