package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"noteflow/internal/logger"
)

type implExporter struct {
	outputDir string
	withDocx  bool
	logger    logger.Logger
	now       func() time.Time
}

// New creates an Exporter writing into outputDir, which is created on
// demand. When withDocx is set, a docx rendering of the notes is
// written in addition to the standard txt/md/pdf trio.
func New(outputDir string, withDocx bool, log logger.Logger) Exporter {
	return &implExporter{
		outputDir: outputDir,
		withDocx:  withDocx,
		logger:    log,
		now:       time.Now,
	}
}

// Save derives a timestamped base name from the audio file and writes
// the transcript as plain text, the notes verbatim as markdown, and the
// notes rendered as a paginated PDF. Each write is independent.
func (e *implExporter) Save(transcript, notes, audioPath string) SaveReport {
	var report SaveReport

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	stamped := fmt.Sprintf("%s_%s", base, e.now().Format(timestampLayout))

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("create output directory %s: %w", e.outputDir, err))
		return report
	}

	txtPath := filepath.Join(e.outputDir, stamped+"_transcript.txt")
	if err := os.WriteFile(txtPath, []byte(transcript), 0644); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("write transcript %s: %w", txtPath, err))
	} else {
		report.Written = append(report.Written, txtPath)
	}

	mdPath := filepath.Join(e.outputDir, stamped+"_notes.md")
	if err := os.WriteFile(mdPath, []byte(notes), 0644); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("write markdown notes %s: %w", mdPath, err))
	} else {
		report.Written = append(report.Written, mdPath)
	}

	pdfPath := filepath.Join(e.outputDir, stamped+"_notes.pdf")
	if err := renderNotesPDF(notes, pdfPath); err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("write PDF notes %s: %w", pdfPath, err))
	} else {
		report.Written = append(report.Written, pdfPath)
	}

	if e.withDocx {
		docxPath := filepath.Join(e.outputDir, stamped+"_notes.docx")
		if err := writeNotesDocx("Meeting Notes", notes, docxPath); err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("write docx notes %s: %w", docxPath, err))
		} else {
			report.Written = append(report.Written, docxPath)
		}
	}

	return report
}
