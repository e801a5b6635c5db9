package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// Heartbeat appends an alive line to its log on every tick and probes the
// API's hello query as a liveness check. It never propagates a failure: every
// error ends up in the log file instead.
type Heartbeat struct {
	client  *graphql.Client
	logPath string
	logger  *zap.Logger
}

// NewHeartbeat creates a heartbeat job client against the given GraphQL
// endpoint.
func NewHeartbeat(endpoint, logPath string, logger *zap.Logger) *Heartbeat {
	return &Heartbeat{
		client:  graphql.NewClient(endpoint),
		logPath: logPath,
		logger:  logger,
	}
}

// Run executes one heartbeat tick.
func (h *Heartbeat) Run(ctx context.Context) {
	ts := timestamp(time.Now())

	if err := appendLine(h.logPath, ts+" CRM is alive"); err != nil {
		h.logger.Error("Failed to write heartbeat log", zap.Error(err))
		return
	}

	var resp struct {
		Hello string `json:"hello"`
	}

	req := graphql.NewRequest(`{ hello }`)
	if err := h.client.Run(ctx, req, &resp); err != nil {
		h.logger.Warn("Heartbeat hello query failed", zap.Error(err))
		if err := appendLine(h.logPath, fmt.Sprintf("%s ERROR querying GraphQL: %v", ts, err)); err != nil {
			h.logger.Error("Failed to write heartbeat log", zap.Error(err))
		}
		return
	}

	if err := appendLine(h.logPath, fmt.Sprintf("%s GraphQL hello response: %s", ts, resp.Hello)); err != nil {
		h.logger.Error("Failed to write heartbeat log", zap.Error(err))
	}
}
