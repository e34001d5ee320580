// Package core holds the storage-agnostic document model.
package core

import "maps"

// Metadata represents the flexible key-value pairs associated with a document.
type Metadata map[string]any

// Clone returns a shallow copy. A nil Metadata clones to an empty one.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	maps.Copy(out, m)
	return out
}

// Document is the central entity of the domain.
// It represents a piece of data identified by an ID. Metadata carries the mapped
// properties of the bean stored in it.
type Document struct {
	ID       string
	Content  string
	Metadata Metadata
}
