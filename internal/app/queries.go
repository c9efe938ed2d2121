package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eatery_catalog/internal/domain"
)

type QueryService struct {
	cat      *domain.Catalog
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService serves queries over cat. cache may be nil.
func NewQueryService(cat *domain.Catalog, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{cat: cat, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Catalog() *domain.Catalog { return s.cat }

func (s *QueryService) List(ctx context.Context) []domain.EateryBasic {
	return s.cat.List()
}

func (s *QueryService) GetByID(ctx context.Context, id uint64) (domain.Eatery, error) {
	e, ok := s.cat.Get(id)
	if !ok {
		return domain.Eatery{}, fmt.Errorf("eatery %d: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// SearchByName is cache-aside; cache failures fall through to the catalog.
// The key carries the catalog version so a different data set never reads
// another one's results.
func (s *QueryService) SearchByName(ctx context.Context, q string) []domain.EateryBasic {
	if s.cache == nil {
		return s.cat.SearchByName(q)
	}

	key := fmt.Sprintf("search:%s:%s", s.cat.Version(), strings.ToLower(q))
	var out []domain.EateryBasic
	if ok, err := s.cache.Get(ctx, key, &out); ok && err == nil && out != nil {
		return out
	}

	out = s.cat.SearchByName(q)
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out
}
