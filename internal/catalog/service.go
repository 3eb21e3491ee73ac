package catalog

import (
	"context"
	"errors"
)

// Service resolves pricing-ready product refs, caching them in front of the
// repo. It is the only place that sees the legacy bundle flags.
type Service struct {
	Repo  Repo
	Cache *Cache
}

func cacheKey(id string) string {
	return "catalog:ref:" + id
}

// GetRef resolves the canonical product ref for a catalog id.
func (s *Service) GetRef(ctx context.Context, id string) (Ref, error) {
	if s == nil {
		return Ref{}, errors.New("catalog: service not configured")
	}
	if ref, ok, err := s.Cache.GetRef(ctx, cacheKey(id)); err == nil && ok {
		return ref, nil
	}
	product, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Ref{}, err
	}
	ref := product.Ref()
	_ = s.Cache.SetRef(ctx, cacheKey(id), ref)
	return ref, nil
}

// ListRefs returns pricing-ready refs for browse pages.
func (s *Service) ListRefs(ctx context.Context, limit, offset int) ([]Ref, error) {
	if s == nil {
		return nil, errors.New("catalog: service not configured")
	}
	products, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	refs := make([]Ref, 0, len(products))
	for _, p := range products {
		refs = append(refs, p.Ref())
	}
	return refs, nil
}
