package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"graphql-crm/internal/domain"
	"graphql-crm/internal/repository"

	"github.com/google/uuid"
)

// phoneRegex accepts an international +-prefixed number of 10-15 digits or
// the NNN-NNN-NNNN form.
var phoneRegex = regexp.MustCompile(`^(\+?\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// Stable user-facing messages. These are part of the API contract and must
// not be reworded.
const (
	MsgEmailExists      = "Email already exists."
	MsgInvalidPhone     = "Invalid phone format."
	MsgCustomerCreated  = "Customer created successfully."
	MsgPricePositive    = "Price must be positive."
	MsgStockNegative    = "Stock cannot be negative."
	MsgProductCreated   = "Product created successfully."
	MsgInvalidCustomer  = "Invalid customer ID."
	MsgProductsRequired = "At least one product is required."
	MsgInvalidProducts  = "Some product IDs are invalid."
	MsgOrderCreated     = "Order created successfully."
	MsgLowStockUpdated  = "Low stock products updated successfully."
)

// CustomerInput is one item of a bulk customer create.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// CustomerResult is the outcome of CreateCustomer. Business-rule rejections
// arrive here with Success=false; they are never raised as errors.
type CustomerResult struct {
	Customer *domain.Customer
	Success  bool
	Message  string
}

// BulkCreateCustomersResult holds the per-item outcomes of a bulk create.
// Both slices follow input order.
type BulkCreateCustomersResult struct {
	CreatedCustomers []*domain.Customer
	Errors           []string
}

// ProductResult is the outcome of CreateProduct.
type ProductResult struct {
	Product *domain.Product
	Success bool
	Message string
}

// OrderResult is the outcome of CreateOrder.
type OrderResult struct {
	Order   *domain.Order
	Success bool
	Message string
}

// LowStockResult is the outcome of UpdateLowStockProducts.
type LowStockResult struct {
	Success         bool
	Message         string
	UpdatedProducts []*domain.Product
}

// CRMService defines the mutation/query resolution layer. Business-rule
// rejections travel in the result types; returned errors are infrastructure
// faults only.
type CRMService interface {
	CreateCustomer(ctx context.Context, name, email, phone string) (*CustomerResult, error)
	BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) (*BulkCreateCustomersResult, error)
	CreateProduct(ctx context.Context, name string, price float64, stock int) (*ProductResult, error)
	CreateOrder(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*OrderResult, error)
	UpdateLowStockProducts(ctx context.Context) (*LowStockResult, error)
	ListCustomers(ctx context.Context, filter repository.CustomerFilter, orderBy []string) ([]*domain.Customer, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter, orderBy []string) ([]*domain.Product, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter, orderBy []string) ([]*domain.Order, error)
}

type crmService struct {
	customerRepo      repository.CustomerRepository
	productRepo       repository.ProductRepository
	orderRepo         repository.OrderRepository
	lowStockThreshold int
	restockAmount     int
}

// NewCRMService creates a new instance of CRMService
func NewCRMService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	lowStockThreshold int,
	restockAmount int,
) CRMService {
	return &crmService{
		customerRepo:      customerRepo,
		productRepo:       productRepo,
		orderRepo:         orderRepo,
		lowStockThreshold: lowStockThreshold,
		restockAmount:     restockAmount,
	}
}

// CreateCustomer validates and creates a single customer. Validation order:
// email uniqueness first, then phone format; the first failure wins and
// nothing is persisted.
func (s *crmService) CreateCustomer(ctx context.Context, name, email, phone string) (*CustomerResult, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if exists {
		return &CustomerResult{Success: false, Message: MsgEmailExists}, nil
	}

	if phone != "" && !phoneRegex.MatchString(phone) {
		return &CustomerResult{Success: false, Message: MsgInvalidPhone}, nil
	}

	customer := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		// The unique constraint is the final arbiter for races the
		// pre-check missed.
		if err == repository.ErrCustomerEmailConflict {
			return &CustomerResult{Success: false, Message: MsgEmailExists}, nil
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &CustomerResult{Customer: customer, Success: true, Message: MsgCustomerCreated}, nil
}

// BulkCreateCustomers processes the inputs strictly in order, skipping items
// that fail a business rule and recording one error string per skipped item.
// The validated items persist as a single unit of work: an unexpected
// mid-batch fault aborts them all.
func (s *crmService) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) (*BulkCreateCustomersResult, error) {
	created := []*domain.Customer{}
	errs := []string{}
	seen := make(map[string]bool, len(inputs))

	for _, input := range inputs {
		exists, err := s.customerRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			// A per-item check failure does not abort the batch.
			errs = append(errs, err.Error())
			continue
		}
		if exists || seen[input.Email] {
			errs = append(errs, fmt.Sprintf("Email already exists: %s", input.Email))
			continue
		}

		if input.Phone != "" && !phoneRegex.MatchString(input.Phone) {
			errs = append(errs, fmt.Sprintf("Invalid phone format: %s", input.Phone))
			continue
		}

		seen[input.Email] = true
		created = append(created, &domain.Customer{
			ID:        uuid.New(),
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			CreatedAt: time.Now(),
		})
	}

	if len(created) > 0 {
		if err := s.customerRepo.CreateBatch(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create customer batch: %w", err)
		}
	}

	return &BulkCreateCustomersResult{CreatedCustomers: created, Errors: errs}, nil
}

// CreateProduct validates and creates a product. Price must be strictly
// positive and stock non-negative.
func (s *crmService) CreateProduct(ctx context.Context, name string, price float64, stock int) (*ProductResult, error) {
	if price <= 0 {
		return &ProductResult{Success: false, Message: MsgPricePositive}, nil
	}
	if stock < 0 {
		return &ProductResult{Success: false, Message: MsgStockNegative}, nil
	}

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &ProductResult{Product: product, Success: true, Message: MsgProductCreated}, nil
}

// CreateOrder resolves the customer and products, snapshots the total from
// the resolved product prices, and persists the order with its associations.
func (s *crmService) CreateOrder(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*OrderResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if err == repository.ErrCustomerNotFound {
			return &OrderResult{Success: false, Message: MsgInvalidCustomer}, nil
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	if len(productIDs) == 0 {
		return &OrderResult{Success: false, Message: MsgProductsRequired}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) != len(productIDs) {
		return &OrderResult{Success: false, Message: MsgInvalidProducts}, nil
	}

	var total float64
	for _, product := range products {
		total += product.Price
	}

	date := time.Now()
	if orderDate != nil {
		date = *orderDate
	}

	order := &domain.Order{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		TotalAmount: total,
		OrderDate:   date,
		Customer:    customer,
		Products:    products,
	}

	if err := s.orderRepo.Create(ctx, order, productIDs); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &OrderResult{Order: order, Success: true, Message: MsgOrderCreated}, nil
}

// UpdateLowStockProducts restocks every product below the configured
// threshold by the configured amount.
func (s *crmService) UpdateLowStockProducts(ctx context.Context) (*LowStockResult, error) {
	updated, err := s.productRepo.RestockBelow(ctx, s.lowStockThreshold, s.restockAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to update low stock products: %w", err)
	}

	return &LowStockResult{
		Success:         true,
		Message:         MsgLowStockUpdated,
		UpdatedProducts: updated,
	}, nil
}

// ListCustomers returns all customers matching the filter in the requested
// order.
func (s *crmService) ListCustomers(ctx context.Context, filter repository.CustomerFilter, orderBy []string) ([]*domain.Customer, error) {
	return s.customerRepo.List(ctx, filter, orderBy)
}

// ListProducts returns all products matching the filter in the requested
// order.
func (s *crmService) ListProducts(ctx context.Context, filter repository.ProductFilter, orderBy []string) ([]*domain.Product, error) {
	return s.productRepo.List(ctx, filter, orderBy)
}

// ListOrders returns all orders matching the filter in the requested order,
// each hydrated with its customer and products.
func (s *crmService) ListOrders(ctx context.Context, filter repository.OrderFilter, orderBy []string) ([]*domain.Order, error) {
	return s.orderRepo.List(ctx, filter, orderBy)
}
