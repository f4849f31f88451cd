package exporter

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"noteflow/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", os.Stderr)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"meeting.mp3", true},
		{"meeting.wav", true},
		{"meeting.m4a", true},
		{"meeting.flac", true},
		{"meeting.aac", true},
		{"meeting.ogg", true},
		{"MEETING.MP3", true},
		{"meeting.WaV", true},
		{"meeting.txt", false},
		{"meeting.mp4", false},
		{"meeting", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsAudioFile(tt.path); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTimestampedName(t *testing.T) {
	t1 := time.Date(2026, 8, 23, 14, 5, 6, 0, time.Local)
	got := timestampedName("meeting", "txt", t1)

	pattern := regexp.MustCompile(`^meeting_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.txt$`)
	if !pattern.MatchString(got) {
		t.Errorf("timestampedName() = %q, want match for %v", got, pattern)
	}
	if got != "meeting_2026-08-23_14-05-06.txt" {
		t.Errorf("timestampedName() = %q", got)
	}

	// One second later yields a different name.
	t2 := t1.Add(time.Second)
	if timestampedName("meeting", "txt", t2) == got {
		t.Error("names one second apart should differ")
	}

	// Leading dot on the extension is tolerated.
	if timestampedName("meeting", ".pdf", t1) != "meeting_2026-08-23_14-05-06.pdf" {
		t.Errorf("leading-dot extension mishandled")
	}
}

const sampleNotes = `# Meeting Summary

Discussion about the **Q3 roadmap** with *several* decisions.

---

## Action Items
- Ship the beta by ~~Friday~~ Monday
- Review the ` + "`deploy.sh`" + ` script
  with the infra team
1. First follow-up
2. Second follow-up

See [the tracker](https://example.com/tracker) for details.

![missing diagram](diagram.png)

Closing remarks.
`

func TestSaveWritesAllFormats(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	e := New(outDir, false, testLogger()).(*implExporter)
	e.now = func() time.Time { return time.Date(2026, 8, 23, 10, 0, 0, 0, time.Local) }

	report := e.Save("Alice said hello.", sampleNotes, "/recordings/standup.wav")
	if len(report.Errors) != 0 {
		t.Fatalf("Save() errors = %v", report.Errors)
	}
	if len(report.Written) != 3 {
		t.Fatalf("Written = %v, want 3 files", report.Written)
	}

	base := "standup_2026-08-23_10-00-00"
	wantNames := []string{base + "_transcript.txt", base + "_notes.md", base + "_notes.pdf"}
	for i, name := range wantNames {
		if filepath.Base(report.Written[i]) != name {
			t.Errorf("Written[%d] = %v, want %v", i, report.Written[i], name)
		}
	}

	// Transcript and markdown are verbatim copies.
	txt, err := os.ReadFile(filepath.Join(outDir, wantNames[0]))
	if err != nil {
		t.Fatal(err)
	}
	if string(txt) != "Alice said hello." {
		t.Errorf("transcript = %q", txt)
	}

	md, err := os.ReadFile(filepath.Join(outDir, wantNames[1]))
	if err != nil {
		t.Fatal(err)
	}
	if string(md) != sampleNotes {
		t.Errorf("markdown not verbatim")
	}

	// The PDF is rendered, not copied; check it is a plausible document.
	pdf, err := os.ReadFile(filepath.Join(outDir, wantNames[2]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Error("PDF output missing header")
	}
}

func TestSaveWithDocx(t *testing.T) {
	outDir := t.TempDir()
	e := New(outDir, true, testLogger())

	report := e.Save("transcript", sampleNotes, "call.mp3")
	if len(report.Errors) != 0 {
		t.Fatalf("Save() errors = %v", report.Errors)
	}
	if len(report.Written) != 4 {
		t.Fatalf("Written = %v, want 4 files", report.Written)
	}
	if !strings.HasSuffix(report.Written[3], "_notes.docx") {
		t.Errorf("Written[3] = %v, want docx", report.Written[3])
	}
}

func TestSaveFailuresAreIndependent(t *testing.T) {
	// An unwritable output directory fails everything up front.
	e := New(filepath.Join(t.TempDir(), "f", "\x00bad"), false, testLogger())
	report := e.Save("t", "n", "a.wav")
	if len(report.Errors) == 0 {
		t.Fatal("expected errors for unwritable output dir")
	}
	if len(report.Written) != 0 {
		t.Errorf("Written = %v, want none", report.Written)
	}
}

func TestRenderNotesPDFImageFallback(t *testing.T) {
	// A reference to a missing image must fall back to alt text and
	// still produce a valid document.
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := renderNotesPDF("![architecture](not-there.png)\n", path); err != nil {
		t.Fatalf("renderNotesPDF() error = %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("pdf missing or empty: %v", err)
	}
}
