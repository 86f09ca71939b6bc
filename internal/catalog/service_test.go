package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBrands(ctx context.Context) ([]*Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Brand), args.Error(1)
}

func (m *MockRepository) GetCategories(ctx context.Context) ([]*Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) GetFiltersMeta(ctx context.Context) (*FiltersMeta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FiltersMeta), args.Error(1)
}

func TestService_GetBrands(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	expected := []*Brand{{ID: 1, Name: "Dilmah", Slug: "dilmah"}}
	repo.On("GetBrands", ctx).Return(expected, nil)

	brands, err := svc.GetBrands(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, brands)
}

func TestService_GetFiltersMeta_Caching(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	meta := &FiltersMeta{
		MinPrice:   decimal.RequireFromString("150.00"),
		MaxPrice:   decimal.RequireFromString("12500.00"),
		Categories: []FacetCount{{ID: 10, Name: "Tea", Count: 42}},
		Brands:     []FacetCount{{ID: 1, Name: "Dilmah", Count: 30}},
	}

	// Only the first call should reach the repository.
	repo.On("GetFiltersMeta", ctx).Return(meta, nil).Once()

	first, err := svc.GetFiltersMeta(ctx)
	require.NoError(t, err)

	second, err := svc.GetFiltersMeta(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetFiltersMeta", 1)
}

func TestService_GetFiltersMeta_ErrorNotCached(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetFiltersMeta", ctx).Return(nil, errors.New("db down")).Once()
	repo.On("GetFiltersMeta", ctx).Return(&FiltersMeta{}, nil).Once()

	_, err := svc.GetFiltersMeta(ctx)
	assert.Error(t, err)

	// A failed load must not poison the cache.
	meta, err := svc.GetFiltersMeta(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, meta)
	repo.AssertNumberOfCalls(t, "GetFiltersMeta", 2)
}
