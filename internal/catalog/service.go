package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/catalog-lab/catalog-api/internal/store"
	"github.com/catalog-lab/catalog-api/pkg/model"
)

// Service is the persistence adapter: it translates validated request
// payloads into store operations. It holds no per-request state; the
// store client is the only long-lived dependency.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a catalog service over the given store.
func NewService(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// ListOptions controls pagination of List. The zero value lists everything.
type ListOptions struct {
	Limit  int32
	Cursor string
}

// ListResult wraps a page of products. NextCursor is empty once the
// listing is exhausted.
type ListResult struct {
	Products   []model.Product `json:"products"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// Create validates the payload, stamps created_at, and writes the product
// with a conditional put so duplicate ids lose atomically.
func (s *Service) Create(ctx context.Context, body []byte) (*model.Product, error) {
	var req createRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := model.Product{
		ID:        *req.ID,
		Name:      *req.Name,
		Price:     *req.Price,
		Quantity:  req.Quantity.IntPart(),
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.store.PutIfAbsent(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, &ConflictError{ID: p.ID}
		}
		return nil, err
	}

	s.logger.Info("catalog.create",
		zap.String("id", p.ID),
		zap.String("name", p.Name))
	return &p, nil
}

// List scans the table. With zero options every record comes back in one
// response; a limit turns on cursor pagination.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	products, cursor, err := s.store.Scan(ctx, store.ScanOptions{
		Limit:  opts.Limit,
		Cursor: opts.Cursor,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return &ListResult{Products: products, NextCursor: cursor}, nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}
	return p, nil
}

// Update applies a partial update built from the recognized fields only.
// An empty patch is rejected; an unknown id fails instead of fabricating
// a partial record.
func (s *Service) Update(ctx context.Context, id string, body []byte) (*model.Product, error) {
	var req updateRequest
	if err := decodeBody(body, &req); err != nil {
		return nil, err
	}
	patch, err := req.Patch()
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, validationErrorf("no valid field to update")
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, err
	}

	s.logger.Info("catalog.update", zap.String("id", id))
	return updated, nil
}

// Delete removes a product by id. Deleting a missing id still succeeds;
// delete is idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("catalog.delete", zap.String("id", id))
	return nil
}
