package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"ceylonmart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetBrands(ctx context.Context) ([]*Brand, error)
	GetCategories(ctx context.Context) ([]*Category, error)
	GetFiltersMeta(ctx context.Context) (*FiltersMeta, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBrands(ctx context.Context) ([]*Brand, error) {
	query := `
		SELECT id, name, slug, COALESCE(logo_url, '')
		FROM brands
		WHERE status = 'ACTIVE'
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("GetBrands query failed", zap.Error(err))
		return nil, fmt.Errorf("get brands failed: %w", err)
	}
	defer rows.Close()

	brands := []*Brand{}
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.LogoURL); err != nil {
			return nil, fmt.Errorf("scan brand failed: %w", err)
		}
		brands = append(brands, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands failed: %w", err)
	}
	return brands, nil
}

func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	query := `
		SELECT id, name, slug, COALESCE(image_url, '')
		FROM categories
		WHERE status = 'ACTIVE'
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("GetCategories query failed", zap.Error(err))
		return nil, fmt.Errorf("get categories failed: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan category failed: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories failed: %w", err)
	}
	return categories, nil
}

func (r *repository) GetFiltersMeta(ctx context.Context) (*FiltersMeta, error) {
	meta := &FiltersMeta{
		Categories: []FacetCount{},
		Brands:     []FacetCount{},
	}

	priceQuery := `
		SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0)
		FROM products
		WHERE status = 'ACTIVE'
	`
	if err := r.db.QueryRowContext(ctx, priceQuery).Scan(&meta.MinPrice, &meta.MaxPrice); err != nil {
		logger.FromCtx(ctx).Error("Filters price range query failed", zap.Error(err))
		return nil, fmt.Errorf("filters price range failed: %w", err)
	}

	categoryQuery := `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		JOIN products p ON p.category_id = c.id AND p.status = 'ACTIVE'
		WHERE c.status = 'ACTIVE'
		GROUP BY c.id, c.name
		ORDER BY c.name ASC
	`
	if err := r.scanFacets(ctx, categoryQuery, &meta.Categories); err != nil {
		return nil, err
	}

	brandQuery := `
		SELECT b.id, b.name, COUNT(p.id)
		FROM brands b
		JOIN products p ON p.brand_id = b.id AND p.status = 'ACTIVE'
		WHERE b.status = 'ACTIVE'
		GROUP BY b.id, b.name
		ORDER BY b.name ASC
	`
	if err := r.scanFacets(ctx, brandQuery, &meta.Brands); err != nil {
		return nil, err
	}

	return meta, nil
}

func (r *repository) scanFacets(ctx context.Context, query string, dst *[]FacetCount) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("Facet query failed", zap.Error(err))
		return fmt.Errorf("facet query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f FacetCount
		if err := rows.Scan(&f.ID, &f.Name, &f.Count); err != nil {
			return fmt.Errorf("scan facet failed: %w", err)
		}
		*dst = append(*dst, f)
	}
	return rows.Err()
}
