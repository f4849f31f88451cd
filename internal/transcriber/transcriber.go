package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Transcribe runs the external executable against audioPath and returns
// the transcript text. The executable is expected to write a sidecar
// text file next to the audio file (extension replaced by .txt); the
// sidecar is read and then deleted.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := t.stat(audioPath); err != nil {
		return "", &Error{
			Kind:    KindMissingAudio,
			Message: fmt.Sprintf("audio file not found at %s", audioPath),
			Err:     err,
		}
	}

	// -m: model file
	// -f: input audio file
	// -otxt: write transcript to a sidecar text file
	args := []string{
		"-m", t.modelPath,
		"-f", audioPath,
		"-otxt",
	}

	t.logger.Debug(ctx, "Running transcription: %s %s", t.exePath, strings.Join(args, " "))

	res, err := t.executor.Execute(ctx, t.exePath, args...)
	if err != nil {
		return "", &Error{
			Kind:    KindNonZeroExit,
			Message: fmt.Sprintf("transcription process failed (exit %d)", res.ExitCode),
			Stderr:  strings.TrimSpace(res.Stderr),
			Err:     err,
		}
	}

	sidecarPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"
	if _, err := t.stat(sidecarPath); err != nil {
		return "", &Error{
			Kind:    KindMissingOutput,
			Message: fmt.Sprintf("transcription output file not found: %s", sidecarPath),
			Err:     err,
		}
	}

	data, err := t.readFile(sidecarPath)
	if err != nil {
		return "", &Error{
			Kind:    KindIO,
			Message: fmt.Sprintf("failed to read transcription output %s", sidecarPath),
			Err:     err,
		}
	}

	// The sidecar is a temporary artifact; a failed delete must not
	// discard an already successful transcription.
	if err := t.remove(sidecarPath); err != nil {
		t.logger.Warn(ctx, "Failed to clean up transcript file %s: %v", sidecarPath, err)
	}

	return string(data), nil
}
