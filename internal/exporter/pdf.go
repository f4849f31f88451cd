package exporter

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Markdown-flavored line and span patterns understood by the PDF
// renderer. Anything that matches none of them is a plain paragraph.
var (
	reNumbered = regexp.MustCompile(`^\d+\.\s`)
	reLink     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	reImage    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	// Bold before italic so ** is not consumed as two italic markers.
	reSpan = regexp.MustCompile("\\*\\*(.+?)\\*\\*|~~(.+?)~~|`(.+?)`|\\*(.+?)\\*|_(.+?)_")
)

// Raster formats the PDF engine can embed directly.
var embeddableImages = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

const (
	bodyFontSize = 11
	bodyLineHt   = 14
	listIndent   = 30
)

type spanStyle struct {
	bold   bool
	italic bool
	strike bool
	code   bool
}

type pdfRenderer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	stat func(string) (os.FileInfo, error)
}

// renderNotesPDF renders markdown-flavored notes into a paginated
// Letter document at outPath.
func renderNotesPDF(notes, outPath string) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 36)
	pdf.AddPage()

	r := &pdfRenderer{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		stat: os.Stat,
	}

	r.title("Meeting Notes")
	r.renderMarkdown(notes)

	return pdf.OutputFileAndClose(outPath)
}

func (r *pdfRenderer) title(text string) {
	r.pdf.SetFont("Helvetica", "B", 24)
	r.pdf.SetTextColor(0, 0, 139)
	r.pdf.CellFormat(0, 30, r.tr(text), "", 1, "C", false, 0, "")
	r.pdf.Ln(18)
}

// renderMarkdown classifies each line and maps it to a visual style.
// The index is advanced manually because list items consume their
// indented continuation lines.
func (r *pdfRenderer) renderMarkdown(notes string) {
	lines := strings.Split(notes, "\n")
	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			r.pdf.Ln(11)
			i++
		case strings.HasPrefix(line, "#"):
			r.heading(line)
			i++
		case isRule(line):
			r.rule()
			i++
		case isListItem(line):
			i = r.list(lines, i)
		case reImage.MatchString(line):
			r.image(line)
			i++
		case reLink.MatchString(line):
			r.linkLine(line)
			i++
		default:
			r.paragraph(line)
			i++
		}
	}
}

func isRule(line string) bool {
	return strings.HasPrefix(line, "---") ||
		strings.HasPrefix(line, "***") ||
		strings.HasPrefix(line, "___")
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "+ ") ||
		reNumbered.MatchString(line)
}

func (r *pdfRenderer) heading(line string) {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	text := strings.TrimSpace(strings.TrimLeft(line, "# "))

	// One distinct size and color per nesting level, capped at three.
	switch level {
	case 1:
		r.pdf.SetFont("Helvetica", "B", 18)
		r.pdf.SetTextColor(0, 100, 0)
		r.pdf.Ln(10)
	case 2:
		r.pdf.SetFont("Helvetica", "B", 15)
		r.pdf.SetTextColor(139, 0, 0)
		r.pdf.Ln(8)
	default:
		r.pdf.SetFont("Helvetica", "B", 13)
		r.pdf.SetTextColor(0, 0, 139)
		r.pdf.Ln(6)
	}

	r.pdf.CellFormat(0, 20, r.tr(text), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *pdfRenderer) rule() {
	r.pdf.Ln(10)
	left, _, right, _ := r.pdf.GetMargins()
	pageW, _ := r.pdf.GetPageSize()
	y := r.pdf.GetY()
	r.pdf.SetDrawColor(128, 128, 128)
	r.pdf.SetLineWidth(1)
	r.pdf.Line(left, y, pageW-right, y)
	r.pdf.Ln(10)
}

// list renders consecutive list items starting at lines[i] and returns
// the index of the first line past the list. An indented follow-up
// line continues the previous item.
func (r *pdfRenderer) list(lines []string, i int) int {
	for i < len(lines) {
		raw := lines[i]
		line := strings.TrimSpace(raw)

		switch {
		case isListItem(line):
			text := line
			if !reNumbered.MatchString(line) {
				text = "• " + line[2:]
			}
			r.pdf.SetX(72 + listIndent)
			r.writeInline(text)
			r.pdf.Ln(bodyLineHt)
		case line != "" && strings.HasPrefix(raw, "  ") && !strings.HasPrefix(line, "#"):
			r.pdf.SetX(72 + listIndent + 12)
			r.writeInline(line)
			r.pdf.Ln(bodyLineHt)
		default:
			r.pdf.Ln(7)
			return i
		}
		i++
	}

	r.pdf.Ln(7)
	return i
}

func (r *pdfRenderer) paragraph(line string) {
	r.writeInline(line)
	r.pdf.Ln(bodyLineHt + 7)
}

// writeInline writes a line translating bold, italic, strikethrough
// and inline-code spans to presentation styles.
func (r *pdfRenderer) writeInline(text string) {
	matches := reSpan.FindAllStringSubmatchIndex(text, -1)
	pos := 0

	for _, m := range matches {
		if m[0] > pos {
			r.writeSpan(text[pos:m[0]], spanStyle{})
		}
		switch {
		case m[2] >= 0:
			r.writeSpan(text[m[2]:m[3]], spanStyle{bold: true})
		case m[4] >= 0:
			r.writeSpan(text[m[4]:m[5]], spanStyle{strike: true})
		case m[6] >= 0:
			r.writeSpan(text[m[6]:m[7]], spanStyle{code: true})
		case m[8] >= 0:
			r.writeSpan(text[m[8]:m[9]], spanStyle{italic: true})
		case m[10] >= 0:
			r.writeSpan(text[m[10]:m[11]], spanStyle{italic: true})
		}
		pos = m[1]
	}

	if pos < len(text) {
		r.writeSpan(text[pos:], spanStyle{})
	}
}

func (r *pdfRenderer) writeSpan(text string, s spanStyle) {
	family := "Helvetica"
	if s.code {
		family = "Courier"
	}
	style := ""
	if s.bold {
		style += "B"
	}
	if s.italic {
		style += "I"
	}

	r.pdf.SetFont(family, style, bodyFontSize)
	r.pdf.SetTextColor(0, 0, 0)

	x, y := r.pdf.GetX(), r.pdf.GetY()
	r.pdf.Write(bodyLineHt, r.tr(text))

	if s.strike && r.pdf.GetY() == y {
		r.pdf.SetDrawColor(0, 0, 0)
		r.pdf.SetLineWidth(0.5)
		r.pdf.Line(x, y+bodyLineHt/2, r.pdf.GetX(), y+bodyLineHt/2)
	}
}

// linkLine renders a line containing markdown links, link text in blue
// with the target attached.
func (r *pdfRenderer) linkLine(line string) {
	matches := reLink.FindAllStringSubmatchIndex(line, -1)
	pos := 0

	for _, m := range matches {
		if m[0] > pos {
			r.writeInline(line[pos:m[0]])
		}
		text := line[m[2]:m[3]]
		url := line[m[4]:m[5]]
		r.pdf.SetFont("Helvetica", "U", bodyFontSize)
		r.pdf.SetTextColor(0, 0, 255)
		r.pdf.WriteLinkString(bodyLineHt, r.tr(text), url)
		r.pdf.SetTextColor(0, 0, 0)
		pos = m[1]
	}

	if pos < len(line) {
		r.writeInline(line[pos:])
	}
	r.pdf.Ln(bodyLineHt + 7)
}

// image embeds a local raster image reference, falling back to the alt
// text when the file is missing or not embeddable.
func (r *pdfRenderer) image(line string) {
	m := reImage.FindStringSubmatch(line)
	alt, src := m[1], m[2]

	if embeddableImages[strings.ToLower(filepath.Ext(src))] {
		if _, err := r.stat(src); err == nil {
			r.pdf.ImageOptions(src, r.pdf.GetX(), r.pdf.GetY(), 36, 36, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			if alt != "" {
				r.writeSpan(alt, spanStyle{italic: true})
				r.pdf.Ln(bodyLineHt)
			}
			r.pdf.Ln(7)
			return
		}
	}

	if alt != "" {
		r.writeSpan(alt, spanStyle{italic: true})
		r.pdf.Ln(bodyLineHt + 7)
	}
}
