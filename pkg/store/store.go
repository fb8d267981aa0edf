// Package store persists documents. The tree engine never calls into
// this package; the CLI and the editor API load a document, run pure
// tree operations, and put the result back.
//
// Two backends are provided:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for deployments
//
// Both implement [Store]. Documents are stored whole: a document is the
// unit of consistency, and every edit swaps in a complete new value.
package store

import (
	"context"
	"errors"

	"github.com/pagecraft/pagecraft/pkg/document"
)

// ErrNotFound is returned by [Store.Get] and [Store.Delete] when no
// document with the given ID exists.
var ErrNotFound = errors.New("document not found")

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*document.Document, error)

	// Put stores a document, replacing any existing document with the
	// same ID.
	Put(ctx context.Context, d *document.Document) error

	// Delete removes a document. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns the IDs and names of all stored documents.
	List(ctx context.Context) ([]Info, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Info is a directory entry for a stored document.
type Info struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}
