package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"graphql-crm/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerEmailConflict = errors.New("customer with this email already exists")
)

// uniqueViolation is the SQLSTATE code Postgres raises when an insert breaks
// a unique constraint. The customers.email constraint is the final arbiter
// for email uniqueness; the service-level existence check is only a
// best-effort pre-check.
const uniqueViolation = "23505"

// CustomerFilter holds the filter predicates for listing customers.
// Zero-value fields are not applied.
type CustomerFilter struct {
	NameContains  string
	EmailContains string
	Email         string // exact match
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	CreateBatch(ctx context.Context, customers []*domain.Customer) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, filter CustomerFilter, orderBy []string) ([]*domain.Customer, error)
	DeleteAll(ctx context.Context) error
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a new customer into the database using parameterized queries
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Name,
		customer.Email,
		nullString(customer.Phone),
		customer.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCustomerEmailConflict
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// CreateBatch inserts a set of customers as a single unit of work. Any
// failure rolls back the whole batch; the caller has already applied
// per-item business validation.
func (r *customerRepository) CreateBatch(ctx context.Context, customers []*domain.Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, customer := range customers {
		_, err := tx.ExecContext(
			ctx,
			query,
			customer.ID,
			customer.Name,
			customer.Email,
			nullString(customer.Phone),
			customer.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrCustomerEmailConflict
			}
			return fmt.Errorf("failed to create customer %s: %w", customer.Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit customer batch: %w", err)
	}

	return nil
}

// ExistsByEmail reports whether a customer with the given email exists
func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}

	return exists, nil
}

// FindByID retrieves a customer by ID using parameterized queries
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM customers
		WHERE id = $1
	`

	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID: %w", err)
	}

	return customer, nil
}

// List retrieves customers matching the filter, ordered by the given sort
// keys. Without sort keys the insertion order is preserved.
func (r *customerRepository) List(ctx context.Context, filter CustomerFilter, orderBy []string) ([]*domain.Customer, error) {
	validSortFields := map[string]string{
		"name":       "name",
		"email":      "email",
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
	if filter.EmailContains != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("email ILIKE $%d", argIndex))
		args = append(args, "%"+filter.EmailContains+"%")
		argIndex++
	}
	if filter.Email != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, filter.Email)
		argIndex++
	}

	query := `SELECT id, name, email, COALESCE(phone, ''), created_at FROM customers`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	if clause := buildOrderByClause(orderBy, validSortFields); clause != "" {
		query += " " + clause
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer := &domain.Customer{}
		err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&customer.Email,
			&customer.Phone,
			&customer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// DeleteAll removes every customer. Only the seeding utility calls this.
func (r *customerRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("failed to delete customers: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
