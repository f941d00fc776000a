package model

import "github.com/google/uuid"

// Collection is a named set of embedded chunks in the vector store
type Collection struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}
