package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/siherrmann/pdfrag/model"
)

// infoKeys maps the PDF document information entries to metadata keys
var infoKeys = map[string]string{
	"Producer":     "producer",
	"Creator":      "creator",
	"CreationDate": "creationdate",
	"ModDate":      "moddate",
	"Author":       "author",
	"Title":        "title",
	"Subject":      "subject",
	"Keywords":     "keywords",
}

// LoadPDF extracts the plain text of every page of the PDF at path.
// Pages without content yield an empty Page so that page numbers stay aligned.
func LoadPDF(path string) (pages []*model.Page, err error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrPDFNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat pdf: %w", err)
	}

	// The parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("failed to parse pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	documentMetadata := readInfo(reader)
	totalPages := reader.NumPage()

	pages = make([]*model.Page, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		metadata := model.Metadata{
			"source":      path,
			"page":        i - 1,
			"page_label":  strconv.Itoa(i),
			"total_pages": totalPages,
		}
		for k, v := range documentMetadata {
			metadata[k] = v
		}

		page := reader.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			pages = append(pages, &model.Page{Metadata: metadata})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text of page %d: %w", i, err)
		}

		pages = append(pages, &model.Page{
			Content:  text,
			Metadata: metadata,
		})
	}

	return pages, nil
}

func readInfo(reader *pdf.Reader) model.Metadata {
	metadata := model.Metadata{}

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return metadata
	}

	for pdfKey, key := range infoKeys {
		metadata[key] = strings.TrimSpace(info.Key(pdfKey).Text())
	}

	return metadata
}
