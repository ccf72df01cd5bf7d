package resume

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestMimeType(t *testing.T) {
	mt, err := MimeType("CV.PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mt)

	mt, err = MimeType("cv.docx")
	require.NoError(t, err)
	assert.Contains(t, mt, "wordprocessingml")

	_, err = MimeType("cv.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseText_Docx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go &amp; PostgreSQL</w:t></w:r></w:p>`+
			`<w:p></w:p>`+
			`<w:p><w:r><w:t>Built   APIs</w:t></w:r></w:p>`)

	text, err := ParseText("resume.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo & PostgreSQL\nBuilt APIs", text)
}

func TestParseText_DocxCharacterReferences(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>O&#8217;Brien&#160;&amp;&#xA0;Sons</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>&lt;b&gt; &quot;lead&quot; &apos;dev&apos;</w:t></w:r></w:p>`)

	text, err := ParseText("resume.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "O\u2019Brien & Sons\n<b> \"lead\" 'dev'", text)
}

func TestParseText_EmptyDocx(t *testing.T) {
	data := buildDocx(t, `<w:p></w:p>`)
	_, err := ParseText("resume.docx", data)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestParseText_Errors(t *testing.T) {
	_, err := ParseText("resume.odt", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseText("resume.pdf", []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ParseText("resume.docx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", normalizeWhitespace("  a \t b \r\n\n\n  c  "))
}
