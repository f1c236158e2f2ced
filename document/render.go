// Package document turns a generated defect report into a Word document.
package document

import (
	"errors"
	"fmt"
	"strings"

	"jira_defect_writer/generator"
)

// LabelFontSize is the point size of labeled lines.
const LabelFontSize = 12

// ErrEmptyReport is returned when there is no text to render.
var ErrEmptyReport = errors.New("report text is empty")

// Kind distinguishes headings from body paragraphs.
type Kind int

const (
	Heading Kind = iota
	Body
)

func (k Kind) String() string {
	if k == Heading {
		return "heading"
	}
	return "body"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "heading":
		*k = Heading
	case "body":
		*k = Body
	default:
		return fmt.Errorf("unknown paragraph kind %q", b)
	}
	return nil
}

// Paragraph is one line of the output document. Size is in points; zero keeps
// the document default.
type Paragraph struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Bold bool   `json:"bold"`
	Size int    `json:"size,omitempty"`
}

// Document is the rendered report, built once per generation.
type Document struct {
	Sprint     int
	Style      generator.ReportStyle
	Paragraphs []Paragraph
}

// Title is the heading text of a report for the given sprint.
func Title(sprint int) string {
	return fmt.Sprintf("Defect Report (Sprint %d)", sprint)
}

// FileName is the download name of a report for the given sprint.
func FileName(sprint int) string {
	return fmt.Sprintf("sprint_%d_jira_defect.docx", sprint)
}

// Render splits text into lines and classifies each non-blank one. Labeled
// lines become bold paragraphs, other lines plain ones, and blank lines are
// dropped. Input order is kept.
func Render(text string, sprint int, style generator.ReportStyle) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyReport
	}

	doc := Document{
		Sprint:     sprint,
		Style:      style,
		Paragraphs: []Paragraph{{Kind: Heading, Text: Title(sprint)}},
	}
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if style.IsLabeled(line) {
			doc.Paragraphs = append(doc.Paragraphs, Paragraph{Kind: Body, Text: line, Bold: true, Size: LabelFontSize})
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{Kind: Body, Text: line})
	}
	return doc, nil
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func splitLines(text string) []string {
	return strings.Split(lineBreaks.Replace(text), "\n")
}

// Body returns the paragraphs after the heading.
func (d Document) Body() []Paragraph {
	var out []Paragraph
	for _, p := range d.Paragraphs {
		if p.Kind == Body {
			out = append(out, p)
		}
	}
	return out
}
