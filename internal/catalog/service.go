package catalog

import (
	"context"
	"time"

	"ceylonmart-be/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const filtersMetaKey = "filters-meta"

// filtersMetaTTL bounds staleness of the filter aggregate; the counts move
// slowly enough that five minutes is invisible to shoppers.
const filtersMetaTTL = 5 * time.Minute

type Service interface {
	GetBrands(ctx context.Context) ([]*Brand, error)
	GetCategories(ctx context.Context) ([]*Category, error)
	GetFiltersMeta(ctx context.Context) (*FiltersMeta, error)
}

type service struct {
	repo  Repository
	cache *expirable.LRU[string, *FiltersMeta]
}

func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		cache: expirable.NewLRU[string, *FiltersMeta](1, nil, filtersMetaTTL),
	}
}

func (s *service) GetBrands(ctx context.Context) ([]*Brand, error) {
	return s.repo.GetBrands(ctx)
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *service) GetFiltersMeta(ctx context.Context) (*FiltersMeta, error) {
	if meta, ok := s.cache.Get(filtersMetaKey); ok {
		return meta, nil
	}

	meta, err := s.repo.GetFiltersMeta(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Add(filtersMetaKey, meta)
	logger.FromCtx(ctx).Debug("Filters meta cache refreshed",
		zap.Int("categories", len(meta.Categories)),
		zap.Int("brands", len(meta.Brands)),
	)
	return meta, nil
}
