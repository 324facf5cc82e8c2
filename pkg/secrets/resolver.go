package secrets

import (
	"context"

	"go.uber.org/zap"
)

// Resolver is a cache-aside layer over a Provider. Resolved secrets are
// held in-memory for the cache TTL so repeated lookups do not hit the
// secrets manager on every call.
type Resolver struct {
	provider Provider
	cache    *Cache[map[string]string]
	logger   *zap.Logger
}

// NewResolver creates a Resolver over the given provider and cache.
func NewResolver(provider Provider, cache *Cache[map[string]string], logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{provider: provider, cache: cache, logger: logger}
}

// Resolve returns the secret map for name, consulting the cache first.
func (r *Resolver) Resolve(ctx context.Context, name string) (map[string]string, error) {
	if values, ok := r.cache.Get(name); ok {
		return values, nil
	}

	values, err := r.provider.GetSecret(ctx, name)
	if err != nil {
		r.logger.Error("secrets.resolve_failed", zap.String("secret", name), zap.Error(err))
		return nil, err
	}

	r.cache.Put(name, values)
	return values, nil
}
