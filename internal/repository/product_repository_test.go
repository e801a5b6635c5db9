package repository

import (
	"context"
	"testing"
	"time"

	"graphql-crm/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name string, price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestProductRepository_CreateAndFindByID(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := newProduct("Laptop", 1200.00, 10)
	require.NoError(t, repo.Create(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)
	assert.Equal(t, 1200.00, found.Price)
	assert.Equal(t, 10, found.Stock)
}

func TestProductRepository_FindByIDs_MissingIDsAreNotAnError(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	laptop := newProduct("Laptop", 1200.00, 10)
	mouse := newProduct("Mouse", 40.00, 25)
	require.NoError(t, repo.Create(ctx, laptop))
	require.NoError(t, repo.Create(ctx, mouse))

	products, err := repo.FindByIDs(ctx, []uuid.UUID{laptop.ID, mouse.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_FindByIDs_EmptyInput(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)

	products, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_List_RangeFilters(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("Laptop", 1200.00, 10)))
	require.NoError(t, repo.Create(ctx, newProduct("Headphones", 150.00, 8)))
	require.NoError(t, repo.Create(ctx, newProduct("Mouse", 40.00, 25)))

	products, err := repo.List(ctx, ProductFilter{PriceMin: floatPtr(100), PriceMax: floatPtr(500)}, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Headphones", products[0].Name)

	products, err = repo.List(ctx, ProductFilter{StockMin: intPtr(10)}, nil)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	// Range bounds are inclusive
	products, err = repo.List(ctx, ProductFilter{PriceMin: floatPtr(40), PriceMax: floatPtr(40)}, nil)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mouse", products[0].Name)
}

func TestProductRepository_List_NameFilterAndOrdering(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("Laptop", 1200.00, 10)))
	require.NoError(t, repo.Create(ctx, newProduct("Laptop Stand", 35.00, 5)))
	require.NoError(t, repo.Create(ctx, newProduct("Mouse", 40.00, 25)))

	products, err := repo.List(ctx, ProductFilter{NameContains: "laptop"}, []string{"-price"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, "Laptop Stand", products[1].Name)
}

func TestProductRepository_RestockBelow(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	low := newProduct("Laptop", 1200.00, 3)
	border := newProduct("Keyboard", 75.00, 10)
	high := newProduct("Mouse", 40.00, 25)
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.Create(ctx, border))
	require.NoError(t, repo.Create(ctx, high))

	updated, err := repo.RestockBelow(ctx, 10, 10)
	require.NoError(t, err)

	// Only products strictly below the threshold are restocked
	require.Len(t, updated, 1)
	assert.Equal(t, low.ID, updated[0].ID)
	assert.Equal(t, 13, updated[0].Stock)

	found, err := repo.FindByID(ctx, border.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, found.Stock)

	found, err = repo.FindByID(ctx, high.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, found.Stock)
}

func TestProductRepository_RestockBelow_NoLowStock(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("Mouse", 40.00, 25)))

	updated, err := repo.RestockBelow(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, updated)
}
