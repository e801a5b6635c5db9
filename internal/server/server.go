package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"graphql-crm/internal/config"
	"graphql-crm/internal/database"
	"graphql-crm/internal/graph"
	custommiddleware "graphql-crm/internal/middleware"
	"graphql-crm/internal/repository"
	"graphql-crm/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/handler"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService database.Service) (*Server, error) {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(dbService.Health())
	})

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize service and schema
	crmService := service.NewCRMService(
		customerRepo,
		productRepo,
		orderRepo,
		cfg.CRM.LowStockThreshold,
		cfg.CRM.RestockAmount,
	)

	resolver := graph.NewResolver(crmService, logger)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	graphqlHandler := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   cfg.Server.Env == "development",
		GraphiQL: cfg.Server.Env == "development",
	})

	router.Group(func(r chi.Router) {
		// Rate limiting only when Redis is configured
		if cfg.Redis.Host != "" {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: 100,
				Window:            time.Minute,
				KeyPrefix:         "ratelimit:graphql",
			}, logger))
		}

		r.Handle("/graphql", graphqlHandler)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
