package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// LowStockTrigger invokes the updateLowStockProducts mutation on every tick
// and records a timestamped line per restocked product. The restocking policy
// itself lives behind the mutation; this client only reports its outcome.
type LowStockTrigger struct {
	client  *graphql.Client
	logPath string
	logger  *zap.Logger
}

// NewLowStockTrigger creates a low-stock correction job client against the
// given GraphQL endpoint.
func NewLowStockTrigger(endpoint, logPath string, logger *zap.Logger) *LowStockTrigger {
	return &LowStockTrigger{
		client:  graphql.NewClient(endpoint),
		logPath: logPath,
		logger:  logger,
	}
}

// Run executes one low-stock correction tick.
func (t *LowStockTrigger) Run(ctx context.Context) {
	var resp struct {
		UpdateLowStockProducts struct {
			Success         bool   `json:"success"`
			Message         string `json:"message"`
			UpdatedProducts []struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Stock int    `json:"stock"`
			} `json:"updatedProducts"`
		} `json:"updateLowStockProducts"`
	}

	req := graphql.NewRequest(`
		mutation {
			updateLowStockProducts {
				success
				message
				updatedProducts {
					id
					name
					stock
				}
			}
		}
	`)

	ts := timestamp(time.Now())

	if err := t.client.Run(ctx, req, &resp); err != nil {
		t.logger.Warn("Low stock mutation failed", zap.Error(err))
		if err := appendLine(t.logPath, fmt.Sprintf("[%s] ERROR: %v", ts, err)); err != nil {
			t.logger.Error("Failed to write low stock log", zap.Error(err))
		}
		return
	}

	if err := appendLine(t.logPath, fmt.Sprintf("[%s] %s", ts, resp.UpdateLowStockProducts.Message)); err != nil {
		t.logger.Error("Failed to write low stock log", zap.Error(err))
		return
	}

	for _, product := range resp.UpdateLowStockProducts.UpdatedProducts {
		line := fmt.Sprintf("[%s] - %s: new stock = %d", ts, product.Name, product.Stock)
		if err := appendLine(t.logPath, line); err != nil {
			t.logger.Error("Failed to write low stock log", zap.Error(err))
			return
		}
	}
}
