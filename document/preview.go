package document

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// The model tends to answer with light Markdown (numbered steps, **bold**).
// Hard wraps keep one line per field; raw HTML is left out of the output.
var previewMarkdown = goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps()))

// PreviewHTML renders report text for on-screen display.
func PreviewHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := previewMarkdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
