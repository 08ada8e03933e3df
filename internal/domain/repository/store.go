// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// Collection names of the document store.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionCarts  = "carts"
	CollectionOrders = "orders"
)

// Sentinel errors of the document store contract.
var (
	// ErrNotFound is returned when no document exists at the given key.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned by Create when a document with the given
	// key is already present in the collection.
	ErrAlreadyExists = errors.New("document already exists")
)

// DocumentStore provides durable, collection-scoped CRUD over named JSON
// documents. Create is the only operation with inherent exclusivity; there is
// no cross-operation locking, so concurrent read-modify-write sequences on
// the same key can lose updates.
type DocumentStore interface {
	// Create persists a new document under key. It fails with
	// ErrAlreadyExists if the key is taken; a crash mid-create must not
	// leave a partially written document behind.
	Create(ctx context.Context, collection, key string, doc any) error

	// Read unmarshals the document at key into doc. It fails with
	// ErrNotFound if absent; malformed stored content is treated as an
	// empty document rather than a parse failure.
	Read(ctx context.Context, collection, key string, doc any) error

	// Update fully replaces the document at key. It fails with ErrNotFound
	// if no document exists there; callers read-modify-write.
	Update(ctx context.Context, collection, key string, doc any) error

	// Delete removes the document at key, failing with ErrNotFound if absent.
	Delete(ctx context.Context, collection, key string) error

	// List returns the keys currently present in the collection, in no
	// particular order.
	List(ctx context.Context, collection string) ([]string, error)
}
