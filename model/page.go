package model

// Page is the extracted text of a single PDF page with its metadata
type Page struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata,omitempty"`
}
