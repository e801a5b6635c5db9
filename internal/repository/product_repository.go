package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"graphql-crm/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter holds the filter predicates for listing products.
// Zero-value fields are not applied.
type ProductFilter struct {
	NameContains string
	PriceMin     *float64
	PriceMax     *float64
	StockMin     *int
	StockMax     *int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, orderBy []string) ([]*domain.Product, error)
	RestockBelow(ctx context.Context, threshold, amount int) ([]*domain.Product, error)
	DeleteAll(ctx context.Context) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database using parameterized queries
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Price,
		product.Stock,
		product.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindByIDs retrieves all products whose IDs appear in ids. Missing IDs are
// not an error; callers compare the result count against the request count.
func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, name, price, stock, created_at
		FROM products
		WHERE id IN (%s)
	`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by IDs: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// List retrieves products matching the filter, ordered by the given sort
// keys. Without sort keys the insertion order is preserved.
func (r *productRepository) List(ctx context.Context, filter ProductFilter, orderBy []string) ([]*domain.Product, error) {
	validSortFields := map[string]string{
		"name":       "name",
		"price":      "price",
		"stock":      "stock",
		"created_at": "created_at",
	}

	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.NameContains != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.NameContains+"%")
		argIndex++
	}
	if filter.PriceMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.PriceMin)
		argIndex++
	}
	if filter.PriceMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}
	if filter.StockMin != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("stock >= $%d", argIndex))
		args = append(args, *filter.StockMin)
		argIndex++
	}
	if filter.StockMax != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("stock <= $%d", argIndex))
		args = append(args, *filter.StockMax)
		argIndex++
	}

	query := `SELECT id, name, price, stock, created_at FROM products`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	if clause := buildOrderByClause(orderBy, validSortFields); clause != "" {
		query += " " + clause
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// RestockBelow increments the stock of every product below threshold by
// amount, in a single statement, and returns the updated rows.
func (r *productRepository) RestockBelow(ctx context.Context, threshold, amount int) ([]*domain.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2
		WHERE stock < $1
		RETURNING id, name, price, stock, created_at
	`

	rows, err := r.db.QueryContext(ctx, query, threshold, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to restock products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// DeleteAll removes every product. Only the seeding utility calls this.
func (r *productRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
