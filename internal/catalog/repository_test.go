package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetBrands(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "slug", "logo_url"}).
			AddRow(1, "Dilmah", "dilmah", "https://cdn.example/dilmah.png").
			AddRow(2, "Maliban", "maliban", "")

		mock.ExpectQuery(`SELECT id, name, slug`).WillReturnRows(rows)

		brands, err := repo.GetBrands(ctx)
		assert.NoError(t, err)
		require.Len(t, brands, 2)
		assert.Equal(t, "Dilmah", brands[0].Name)
		assert.Equal(t, "maliban", brands[1].Slug)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, slug`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "logo_url"}))

		brands, err := repo.GetBrands(ctx)
		assert.NoError(t, err)
		assert.Empty(t, brands)
		assert.NotNil(t, brands)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, name, slug`).
			WillReturnError(errors.New("db down"))

		_, err := repo.GetBrands(ctx)
		assert.Error(t, err)
	})
}

func TestRepository_GetCategories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "image_url"}).
		AddRow(10, "Tea", "tea", "").
		AddRow(11, "Spices", "spices", "https://cdn.example/spices.jpg")

	mock.ExpectQuery(`SELECT id, name, slug`).WillReturnRows(rows)

	categories, err := repo.GetCategories(ctx)
	assert.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, uint(10), categories[0].ID)
	assert.Equal(t, "Spices", categories[1].Name)
}

func TestRepository_GetFiltersMeta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(MIN\(price\), 0\)`).
			WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow("150.00", "12500.00"))
		mock.ExpectQuery(`SELECT c.id, c.name, COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
				AddRow(10, "Tea", 42).
				AddRow(11, "Spices", 7))
		mock.ExpectQuery(`SELECT b.id, b.name, COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count"}).
				AddRow(1, "Dilmah", 30))

		meta, err := repo.GetFiltersMeta(ctx)
		require.NoError(t, err)

		assert.Equal(t, "150.00", meta.MinPrice.StringFixed(2))
		assert.Equal(t, "12500.00", meta.MaxPrice.StringFixed(2))
		require.Len(t, meta.Categories, 2)
		assert.Equal(t, int64(42), meta.Categories[0].Count)
		require.Len(t, meta.Brands, 1)
		assert.Equal(t, "Dilmah", meta.Brands[0].Name)
	})

	t.Run("PriceQueryError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(MIN\(price\), 0\)`).
			WillReturnError(errors.New("db down"))

		_, err := repo.GetFiltersMeta(ctx)
		assert.Error(t, err)
	})
}
