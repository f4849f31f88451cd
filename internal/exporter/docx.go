package exporter

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFontName = "Calibri"
	docxFontSize = 11
)

var (
	reDocxHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reDocxBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reDocxBullet  = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reDocxNumber  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// writeNotesDocx converts markdown-flavored notes to a styled docx file.
func writeNotesDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addDocxRun(doc.AddParagraph(""), title, true, 16)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reDocxHeading.FindStringSubmatch(trimmed); m != nil {
			p := doc.AddParagraph("")
			addDocxRun(p, m[2], true, docxHeadingSize(len(m[1])))
			continue
		}

		if m := reDocxBullet.FindStringSubmatch(trimmed); m != nil {
			addDocxRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reDocxNumber.MatchString(trimmed) {
			addDocxRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addDocxRichText(doc.AddParagraph(""), trimmed)
	}

	return doc.SaveTo(outputPath)
}

func docxHeadingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return docxFontSize
	}
}

func addDocxRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripDocxInline(text)).Font(docxFontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addDocxRichText renders a line keeping **bold** spans bold and
// stripping the remaining inline markers.
func addDocxRichText(p *docx.Paragraph, text string) {
	parts := reDocxBold.Split(text, -1)
	matches := reDocxBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(stripDocxInline(part)).Font(docxFontName).Size(docxFontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(stripDocxInline(matches[i][1])).Font(docxFontName).Size(docxFontSize).Color("000000").Bold(true)
		}
	}
}

func stripDocxInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "~~", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
