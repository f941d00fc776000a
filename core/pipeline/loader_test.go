package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/siherrmann/pdfrag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPDF writes a minimal PDF with one page per entry of pageTexts.
// An empty entry produces a page without content stream.
func writeTestPDF(t *testing.T, title string, pageTexts ...string) string {
	t.Helper()

	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range pageTexts {
		kids += fmt.Sprintf("%d 0 R ", 5+2*i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pageTexts)))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	objects = append(objects, fmt.Sprintf("<< /Title (%s) /Author () /Producer (pdfrag test) >>", title))

	for i, text := range pageTexts {
		contentID := 6 + 2*i
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>"
		if text != "" {
			page += fmt.Sprintf(" /Contents %d 0 R", contentID)
		}
		page += " >>"
		objects = append(objects, page)

		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "document.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestLoadPDF(t *testing.T) {
	t.Run("Load text and metadata of every page", func(t *testing.T) {
		path := writeTestPDF(t, "Manual", "Hello World", "Second page")

		pages, err := LoadPDF(path)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Contains(t, pages[0].Content, "Hello")
		assert.Contains(t, pages[1].Content, "Second")

		assert.Equal(t, path, pages[0].Metadata["source"])
		assert.Equal(t, 0, pages[0].Metadata["page"])
		assert.Equal(t, 1, pages[1].Metadata["page"])
		assert.Equal(t, "2", pages[1].Metadata["page_label"])
		assert.Equal(t, 2, pages[0].Metadata["total_pages"])
		assert.Equal(t, "Manual", pages[0].Metadata["title"])
		assert.Equal(t, "", pages[0].Metadata["author"], "Expected empty info entries to be kept for cleaning")
	})

	t.Run("Page without content", func(t *testing.T) {
		path := writeTestPDF(t, "Blank", "")

		pages, err := LoadPDF(path)

		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Empty(t, pages[0].Content)
	})

	t.Run("Missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.pdf")

		_, err := LoadPDF(path)

		assert.ErrorIs(t, err, model.ErrPDFNotFound)
		assert.Contains(t, err.Error(), path, "Expected error to name the path")
	})

	t.Run("File that is not a PDF", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.pdf")
		require.NoError(t, os.WriteFile(path, []byte("just some text"), 0600))

		_, err := LoadPDF(path)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrPDFNotFound)
	})
}
