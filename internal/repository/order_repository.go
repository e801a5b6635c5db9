package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"graphql-crm/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderFilter holds the filter predicates for listing orders.
// Zero-value fields are not applied.
type OrderFilter struct {
	CustomerID    *uuid.UUID
	CustomerEmail string
	ProductID     *uuid.UUID
	OrderDateFrom *time.Time
	OrderDateTo   *time.Time
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create inserts the order and its product associations as a single
	// unit of work.
	Create(ctx context.Context, order *domain.Order, productIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter, orderBy []string) ([]*domain.Order, error)
	DeleteAll(ctx context.Context) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order and its order_products rows in one transaction
func (r *orderRepository) Create(ctx context.Context, order *domain.Order, productIDs []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, customer_id, total_amount, order_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err = tx.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.CustomerID,
		order.TotalAmount,
		order.OrderDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	assocQuery := `
		INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
	`

	for _, productID := range productIDs {
		if _, err := tx.ExecContext(ctx, assocQuery, order.ID, productID); err != nil {
			return fmt.Errorf("failed to associate product %s: %w", productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindByID retrieves an order with its customer and products
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       c.id, c.name, c.email, COALESCE(c.phone, ''), c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`

	order, err := scanOrderRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.loadProducts(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// List retrieves orders matching the filter, each hydrated with its owning
// customer and product set. Without sort keys the insertion order is
// preserved.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter, orderBy []string) ([]*domain.Order, error) {
	validSortFields := map[string]string{
		"order_date":   "o.order_date",
		"total_amount": "o.total_amount",
	}

	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.CustomerID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.customer_id = $%d", argIndex))
		args = append(args, *filter.CustomerID)
		argIndex++
	}
	if filter.CustomerEmail != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("c.email = $%d", argIndex))
		args = append(args, filter.CustomerEmail)
		argIndex++
	}
	if filter.ProductID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = $%d)", argIndex))
		args = append(args, *filter.ProductID)
		argIndex++
	}
	if filter.OrderDateFrom != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.order_date >= $%d", argIndex))
		args = append(args, *filter.OrderDateFrom)
		argIndex++
	}
	if filter.OrderDateTo != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.order_date <= $%d", argIndex))
		args = append(args, *filter.OrderDateTo)
		argIndex++
	}

	query := `
		SELECT o.id, o.customer_id, o.total_amount, o.order_date,
		       c.id, c.name, c.email, COALESCE(c.phone, ''), c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
	`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	if clause := buildOrderByClause(orderBy, validSortFields); clause != "" {
		query += " " + clause
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadProducts(ctx, order); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// DeleteAll removes every order and its associations. Only the seeding
// utility calls this.
func (r *orderRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_products`); err != nil {
		return fmt.Errorf("failed to delete order associations: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("failed to delete orders: %w", err)
	}
	return nil
}

func (r *orderRepository) loadProducts(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return err
	}

	order.Products = products
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderRow(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{Customer: &domain.Customer{}}
	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalAmount,
		&order.OrderDate,
		&order.Customer.ID,
		&order.Customer.Name,
		&order.Customer.Email,
		&order.Customer.Phone,
		&order.Customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}
