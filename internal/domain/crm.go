package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a CRM customer. Customers are created through the API
// and never mutated or deleted by it; email is the natural de-duplication key.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product represents a sellable product
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Order represents a customer order. TotalAmount is a snapshot of the
// referenced products' prices at creation time and is never recomputed.
type Order struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CustomerID  uuid.UUID  `json:"customer_id" db:"customer_id"`
	TotalAmount float64    `json:"total_amount" db:"total_amount"`
	OrderDate   time.Time  `json:"order_date" db:"order_date"`
	Customer    *Customer  `json:"customer,omitempty"`
	Products    []*Product `json:"products,omitempty"`
}
