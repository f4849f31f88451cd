package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"noteflow/internal/exporter"
)

// End-to-end over the real exporter: one job with a fake transcriber
// and an echoing generator must yield the exact result payload and
// three output files with verbatim content.
func TestEndToEnd(t *testing.T) {
	outDir := t.TempDir()
	r := NewRunner(
		&fakeTranscriber{transcript: "Alice said hello."},
		&fakeGenerator{echo: true},
		staticPrompt("Summarize the meeting."),
		testLogger(),
	)
	exp := exporter.New(outDir, false, testLogger())

	events, err := r.Run(context.Background(), Job{AudioPath: "standup.wav", PromptPath: "p.txt", OllamaModel: "llama3"})
	if err != nil {
		t.Fatal(err)
	}

	var result *Result
	for ev := range events {
		if ev.Type == EventResult {
			result = ev.Result
		}
	}
	if result == nil {
		t.Fatal("job failed")
	}
	if result.Transcript != "Alice said hello." || result.Notes != "Alice said hello." {
		t.Fatalf("result = %+v", result)
	}

	report := exp.Save(result.Transcript, result.Notes, "standup.wav")
	if len(report.Errors) != 0 {
		t.Fatalf("Save() errors = %v", report.Errors)
	}
	if len(report.Written) != 3 {
		t.Fatalf("Written = %v, want 3 files", report.Written)
	}

	for _, path := range report.Written {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		switch {
		case strings.HasSuffix(path, "_transcript.txt"), strings.HasSuffix(path, "_notes.md"):
			if string(data) != "Alice said hello." {
				t.Errorf("%s = %q, want verbatim content", filepath.Base(path), data)
			}
		case strings.HasSuffix(path, "_notes.pdf"):
			if len(data) == 0 {
				t.Errorf("%s is empty", filepath.Base(path))
			}
		default:
			t.Errorf("unexpected output file %s", path)
		}
	}
}

// Batch of three against the real exporter, with the middle job
// failing: jobs one and three still write their three files each.
func TestEndToEndBatch(t *testing.T) {
	outDir := t.TempDir()
	st := &selectiveTranscriber{failPath: "two.wav"}
	r := NewRunner(st, &fakeGenerator{echo: true}, staticPrompt("s"), testLogger())
	exp := exporter.New(outDir, false, testLogger())

	jobs := []Job{
		{AudioPath: "one.wav"},
		{AudioPath: "two.wav"},
		{AudioPath: "three.wav"},
	}

	save := func(job Job, res Result) error {
		report := exp.Save(res.Transcript, res.Notes, job.AudioPath)
		if len(report.Errors) != 0 {
			t.Errorf("Save(%s) errors = %v", job.AudioPath, report.Errors)
		}
		return nil
	}

	succeeded, failed := r.Batch(context.Background(), jobs, save, func(Event) {})
	if succeeded != 2 || failed != 1 {
		t.Fatalf("succeeded = %d, failed = %d, want 2/1", succeeded, failed)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 6 {
		t.Errorf("output dir has %d files, want 6 (three per successful job)", len(entries))
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "two_") {
			t.Errorf("failed job produced output file %s", e.Name())
		}
	}
}
