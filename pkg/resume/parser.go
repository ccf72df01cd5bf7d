package resume

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	reTags    = regexp.MustCompile(`<[^>]+>`)
	reBlanks  = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewline = regexp.MustCompile(`\n\s*\n+`)
)

// Supported extensions and their MIME types.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MimeType returns the canonical MIME type for a supported filename.
func MimeType(filename string) (string, error) {
	mt, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", ErrUnsupportedFormat
	}
	return mt, nil
}

// ParseText extracts plain text from supported resume formats (.pdf, .docx).
func ParseText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractTextFromPDF(data)
	case ".docx":
		text, err = extractTextFromDocx(data)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}
	text = normalizeWhitespace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	xml := doc.Editable().GetContent()
	// Paragraph boundaries become newlines, everything else is markup.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = strings.ReplaceAll(xml, "<w:br/>", "\n")
	txt := reTags.ReplaceAllString(xml, "")
	// Named and numeric references (&amp;, &#8217;, &#xA0;).
	return html.UnescapeString(txt), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reNewline.ReplaceAllString(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
