package transcriber

import "context"

// Transcriber converts an audio file into plain text via the external
// whisper.cpp executable.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
