package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"graphql-crm/internal/config"
	"graphql-crm/internal/database"
	"graphql-crm/internal/domain"
	"graphql-crm/internal/logger"
	"graphql-crm/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seed wipes the CRM tables and loads a small sample dataset. This is the
// only code path that deletes rows; the API itself never does.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService := database.New()
	defer dbService.Close()
	db := dbService.DB()

	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	ctx := context.Background()

	log.Info("Deleting old data")
	if err := orderRepo.DeleteAll(ctx); err != nil {
		log.Fatal("Failed to delete orders", zap.Error(err))
	}
	if err := productRepo.DeleteAll(ctx); err != nil {
		log.Fatal("Failed to delete products", zap.Error(err))
	}
	if err := customerRepo.DeleteAll(ctx); err != nil {
		log.Fatal("Failed to delete customers", zap.Error(err))
	}

	log.Info("Creating customers")
	customers := []*domain.Customer{
		{ID: uuid.New(), Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1234567890", CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Bob Smith", Email: "bob@example.com", Phone: "123-456-7890", CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Charlie Brown", Email: "charlie@example.com", CreatedAt: time.Now()},
	}
	if err := customerRepo.CreateBatch(ctx, customers); err != nil {
		log.Fatal("Failed to create customers", zap.Error(err))
	}

	log.Info("Creating products")
	products := []*domain.Product{
		{ID: uuid.New(), Name: "Laptop", Price: 1200.00, Stock: 10, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Smartphone", Price: 800.00, Stock: 20, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Headphones", Price: 150.00, Stock: 30, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Keyboard", Price: 75.00, Stock: 15, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Mouse", Price: 40.00, Stock: 25, CreatedAt: time.Now()},
	}
	for _, product := range products {
		if err := productRepo.Create(ctx, product); err != nil {
			log.Fatal("Failed to create product", zap.String("name", product.Name), zap.Error(err))
		}
	}

	log.Info("Creating orders")
	for i := 0; i < 5; i++ {
		customer := customers[rand.Intn(len(customers))]

		count := rand.Intn(3) + 1
		picked := rand.Perm(len(products))[:count]

		var total float64
		productIDs := make([]uuid.UUID, 0, count)
		for _, idx := range picked {
			total += products[idx].Price
			productIDs = append(productIDs, products[idx].ID)
		}

		order := &domain.Order{
			ID:          uuid.New(),
			CustomerID:  customer.ID,
			TotalAmount: total,
			OrderDate:   time.Now(),
		}
		if err := orderRepo.Create(ctx, order, productIDs); err != nil {
			log.Fatal("Failed to create order", zap.Error(err))
		}
	}

	log.Info("Database seeded successfully")
}
