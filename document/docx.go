package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gomutex/godocx"
)

// MIMEType is the content type of the generated file.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WriteDOCX serializes the document as Office Open XML.
func (d Document) WriteDOCX(w io.Writer) error {
	out, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	for _, p := range d.Paragraphs {
		switch {
		case p.Kind == Heading:
			if _, err := out.AddHeading(p.Text, 1); err != nil {
				return fmt.Errorf("add heading: %w", err)
			}
		case p.Bold:
			run := out.AddEmptyParagraph().AddText(p.Text).Bold(true)
			if p.Size > 0 {
				run.Size(uint64(p.Size))
			}
		default:
			out.AddParagraph(p.Text)
		}
	}
	if err := out.Write(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// DOCX returns the serialized document.
func (d Document) DOCX() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteDOCX(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
