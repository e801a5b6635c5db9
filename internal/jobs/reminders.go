package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// ReminderSweep queries all orders placed within the trailing window and
// appends one reminder line per order. The window is computed at each tick,
// never at construction, so a long-lived process always sweeps the current
// trailing days. On query failure the tick logs the error and stops without
// partial output.
type ReminderSweep struct {
	client     *graphql.Client
	logPath    string
	windowDays int
	logger     *zap.Logger
}

// NewReminderSweep creates an order-reminder job client against the given
// GraphQL endpoint. windowDays is the trailing window, inclusive of its
// lower bound.
func NewReminderSweep(endpoint, logPath string, windowDays int, logger *zap.Logger) *ReminderSweep {
	return &ReminderSweep{
		client:     graphql.NewClient(endpoint),
		logPath:    logPath,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Run executes one reminder sweep tick.
func (s *ReminderSweep) Run(ctx context.Context) {
	now := time.Now()
	from := now.AddDate(0, 0, -s.windowDays)

	var resp struct {
		AllOrders []struct {
			ID       string `json:"id"`
			Customer struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"allOrders"`
	}

	req := graphql.NewRequest(`
		query RecentOrders($from: DateTime!, $to: DateTime!) {
			allOrders(filter: { orderDateGte: $from, orderDateLte: $to }) {
				id
				customer {
					email
				}
			}
		}
	`)
	req.Var("from", from)
	req.Var("to", now)

	if err := s.client.Run(ctx, req, &resp); err != nil {
		s.logger.Warn("Order reminder query failed", zap.Error(err))
		if err := appendLine(s.logPath, fmt.Sprintf("[%s] ERROR: %v", timestamp(now), err)); err != nil {
			s.logger.Error("Failed to write reminder log", zap.Error(err))
		}
		return
	}

	for _, order := range resp.AllOrders {
		line := fmt.Sprintf("[%s] Reminder: Order %s for customer %s", timestamp(now), order.ID, order.Customer.Email)
		if err := appendLine(s.logPath, line); err != nil {
			s.logger.Error("Failed to write reminder log", zap.Error(err))
			return
		}
	}
}
