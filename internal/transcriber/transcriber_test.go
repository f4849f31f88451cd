package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"noteflow/internal/logger"
	"noteflow/pkg/executor"
)

// fakeExecutor simulates the external whisper process.
type fakeExecutor struct {
	result  executor.Result
	err     error
	onRun   func()
	lastCmd []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (executor.Result, error) {
	f.lastCmd = append([]string{name}, args...)
	if f.onRun != nil {
		f.onRun()
	}
	return f.result, f.err
}

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", os.Stderr)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func errKind(t *testing.T, err error) Kind {
	t.Helper()
	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("error %v is not a transcriber.Error", err)
	}
	return terr.Kind
}

func TestNewMissingPaths(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "whisper")
	model := filepath.Join(dir, "model.bin")
	writeFile(t, exe, "binary")

	_, err := New(filepath.Join(dir, "nope"), model, &fakeExecutor{}, testLogger())
	if errKind(t, err) != KindMissingExecutable {
		t.Errorf("kind = %v, want %v", errKind(t, err), KindMissingExecutable)
	}

	_, err = New(exe, model, &fakeExecutor{}, testLogger())
	if errKind(t, err) != KindMissingModel {
		t.Errorf("kind = %v, want %v", errKind(t, err), KindMissingModel)
	}
}

func newForTest(t *testing.T, dir string, exec executor.Executor) Transcriber {
	t.Helper()
	exe := filepath.Join(dir, "whisper")
	model := filepath.Join(dir, "model.bin")
	writeFile(t, exe, "binary")
	writeFile(t, model, "model")

	tr, err := New(exe, model, exec, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestTranscribeMissingAudio(t *testing.T) {
	dir := t.TempDir()
	tr := newForTest(t, dir, &fakeExecutor{})

	_, err := tr.Transcribe(context.Background(), filepath.Join(dir, "missing.wav"))
	if errKind(t, err) != KindMissingAudio {
		t.Errorf("kind = %v, want %v", errKind(t, err), KindMissingAudio)
	}
}

func TestTranscribeSuccess(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "meeting.wav")
	sidecar := filepath.Join(dir, "meeting.txt")
	writeFile(t, audio, "fake audio")

	exec := &fakeExecutor{}
	exec.onRun = func() { writeFile(t, sidecar, "Alice said hello.") }
	tr := newForTest(t, dir, exec)

	got, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "Alice said hello." {
		t.Errorf("transcript = %q", got)
	}

	// Sidecar must be deleted after a successful read.
	if _, err := os.Stat(sidecar); !errors.Is(err, os.ErrNotExist) {
		t.Error("sidecar file should have been deleted")
	}

	// Invocation contract: -m model -f audio -otxt.
	cmd := strings.Join(exec.lastCmd, " ")
	for _, want := range []string{"-m", "-f", "-otxt", audio} {
		if !strings.Contains(cmd, want) {
			t.Errorf("command %q missing %q", cmd, want)
		}
	}
}

func TestTranscribeNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "meeting.wav")
	writeFile(t, audio, "fake audio")

	exec := &fakeExecutor{
		result: executor.Result{Stderr: "model load failed", ExitCode: 3},
		err:    errors.New("exit status 3"),
	}
	tr := newForTest(t, dir, exec)

	_, err := tr.Transcribe(context.Background(), audio)
	if errKind(t, err) != KindNonZeroExit {
		t.Fatalf("kind = %v, want %v", errKind(t, err), KindNonZeroExit)
	}
	if !strings.Contains(err.Error(), "model load failed") {
		t.Errorf("error %q should carry process stderr", err.Error())
	}
}

func TestTranscribeMissingOutputFile(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "meeting.wav")
	writeFile(t, audio, "fake audio")

	// Process exits zero but never writes the sidecar.
	tr := newForTest(t, dir, &fakeExecutor{})

	_, err := tr.Transcribe(context.Background(), audio)
	if errKind(t, err) != KindMissingOutput {
		t.Errorf("kind = %v, want %v", errKind(t, err), KindMissingOutput)
	}
}

func TestTranscribeCleanupFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "meeting.wav")
	sidecar := filepath.Join(dir, "meeting.txt")
	writeFile(t, audio, "fake audio")

	exec := &fakeExecutor{}
	exec.onRun = func() { writeFile(t, sidecar, "text") }
	tr := newForTest(t, dir, exec).(*implTranscriber)
	tr.remove = func(string) error { return errors.New("permission denied") }

	got, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got != "text" {
		t.Errorf("transcript = %q", got)
	}
}
