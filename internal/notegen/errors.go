package notegen

// Kind classifies note-generation failures. Each carries a
// user-actionable message since the fix differs per kind (start the
// server, wait out a long inference, inspect the server logs).
type Kind string

const (
	KindConnection Kind = "connection"
	KindTimeout    Kind = "timeout"
	KindHTTP       Kind = "http"
	KindMalformed  Kind = "malformed"
)

// Error is a kind-tagged note-generation failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
