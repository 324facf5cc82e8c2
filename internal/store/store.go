package store

import (
	"context"
	"errors"

	"github.com/catalog-lab/catalog-api/pkg/model"
)

// Sentinel errors shared by all Store implementations.
var (
	ErrNotFound      = errors.New("product not found")
	ErrAlreadyExists = errors.New("product already exists")
)

// ScanOptions controls paginated listing. A zero value requests a full
// unbounded scan, which is the historical behavior for small tables.
type ScanOptions struct {
	Limit  int32  // max items per page; 0 means no limit
	Cursor string // opaque continuation token from a previous Scan
}

// Store defines the contract for persisting catalog products.
// The backing table provides atomic single-key put/get/delete plus a
// full-table scan primitive; implementations must not cache records.
type Store interface {
	// Get returns the product for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Product, error)

	// PutIfAbsent writes the product only if no item with the same id
	// exists, returning ErrAlreadyExists otherwise. Uniqueness rides on
	// the backend's conditional write, not a read-then-write sequence.
	PutIfAbsent(ctx context.Context, p model.Product) error

	// Update applies a partial update to the product with id and returns
	// the post-update record. ErrNotFound when the id does not exist.
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)

	// Delete removes the product by id. Deleting a missing id is not an
	// error; delete is idempotent.
	Delete(ctx context.Context, id string) error

	// Scan returns stored products. With a zero ScanOptions it returns
	// every record; with a Limit it returns one page plus a continuation
	// cursor ("" when exhausted).
	Scan(ctx context.Context, opts ScanOptions) ([]model.Product, string, error)

	// HealthCheck verifies the backend is reachable.
	HealthCheck(ctx context.Context) error
}
