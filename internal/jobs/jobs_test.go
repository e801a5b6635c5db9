package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// capturedRequest is the JSON body a GraphQL client posts to the endpoint.
type capturedRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// stubGraphQL serves a fixed GraphQL response and records the last request.
func stubGraphQL(t *testing.T, response string, capture *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func readLogLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

var timestampPrefix = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2} `)
var bracketedTimestampPrefix = regexp.MustCompile(`^\[\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2}\] `)

func TestHeartbeat_LogsAliveAndHelloResponse(t *testing.T) {
	server := stubGraphQL(t, `{"data":{"hello":"Hello, GraphQL!"}}`, nil)
	logPath := filepath.Join(t.TempDir(), "heartbeat.log")

	job := NewHeartbeat(server.URL, logPath, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 2)

	assert.Regexp(t, timestampPrefix, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " CRM is alive"), "got %q", lines[0])

	assert.Regexp(t, timestampPrefix, lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "GraphQL hello response: Hello, GraphQL!"), "got %q", lines[1])
}

func TestHeartbeat_LogsErrorWhenEndpointUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	logPath := filepath.Join(t.TempDir(), "heartbeat.log")
	job := NewHeartbeat(endpoint, logPath, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " CRM is alive"))
	assert.Contains(t, lines[1], "ERROR querying GraphQL:")
}

func TestHeartbeat_AppendsAcrossTicks(t *testing.T) {
	server := stubGraphQL(t, `{"data":{"hello":"Hello, GraphQL!"}}`, nil)
	logPath := filepath.Join(t.TempDir(), "heartbeat.log")

	job := NewHeartbeat(server.URL, logPath, zap.NewNop())
	job.Run(context.Background())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	assert.Len(t, lines, 4)
}

func TestLowStockTrigger_LogsMessageAndRestockedProducts(t *testing.T) {
	response := `{"data":{"updateLowStockProducts":{
		"success": true,
		"message": "Low stock products updated successfully.",
		"updatedProducts": [
			{"id": "0b2e46e4-95c5-4e4b-89cb-84087d94e2f1", "name": "Laptop", "stock": 13},
			{"id": "8a0e7b94-3cf3-4f23-9c6f-3d2f0ec3f9f0", "name": "Keyboard", "stock": 19}
		]
	}}}`
	var captured capturedRequest
	server := stubGraphQL(t, response, &captured)
	logPath := filepath.Join(t.TempDir(), "lowstock.log")

	job := NewLowStockTrigger(server.URL, logPath, zap.NewNop())
	job.Run(context.Background())

	assert.Contains(t, captured.Query, "updateLowStockProducts")
	assert.Contains(t, captured.Query, "updatedProducts")

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 3)

	assert.Regexp(t, bracketedTimestampPrefix, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Low stock products updated successfully."), "got %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "- Laptop: new stock = 13"), "got %q", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "- Keyboard: new stock = 19"), "got %q", lines[2])
}

func TestLowStockTrigger_NoProductsRestocked(t *testing.T) {
	response := `{"data":{"updateLowStockProducts":{
		"success": true,
		"message": "Low stock products updated successfully.",
		"updatedProducts": []
	}}}`
	server := stubGraphQL(t, response, nil)
	logPath := filepath.Join(t.TempDir(), "lowstock.log")

	job := NewLowStockTrigger(server.URL, logPath, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "Low stock products updated successfully."))
}

func TestLowStockTrigger_LogsErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	logPath := filepath.Join(t.TempDir(), "lowstock.log")
	job := NewLowStockTrigger(server.URL, logPath, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Regexp(t, bracketedTimestampPrefix, lines[0])
	assert.Contains(t, lines[0], "ERROR:")
}

func TestReminderSweep_LogsReminderPerOrder(t *testing.T) {
	response := `{"data":{"allOrders":[
		{"id": "6fa4f1a8-59b5-4a27-86d1-6072e17e90b5", "customer": {"email": "alice@example.com"}},
		{"id": "b715a3d8-7e31-42d1-bd2f-5b80ea3b77c9", "customer": {"email": "bob@example.com"}}
	]}}`
	var captured capturedRequest
	server := stubGraphQL(t, response, &captured)
	logPath := filepath.Join(t.TempDir(), "reminders.log")

	job := NewReminderSweep(server.URL, logPath, 7, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 2)
	assert.Regexp(t, bracketedTimestampPrefix, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Reminder: Order 6fa4f1a8-59b5-4a27-86d1-6072e17e90b5 for customer alice@example.com"), "got %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "Reminder: Order b715a3d8-7e31-42d1-bd2f-5b80ea3b77c9 for customer bob@example.com"), "got %q", lines[1])
}

func TestReminderSweep_WindowSpansTrailingDays(t *testing.T) {
	var captured capturedRequest
	server := stubGraphQL(t, `{"data":{"allOrders":[]}}`, &captured)
	logPath := filepath.Join(t.TempDir(), "reminders.log")

	before := time.Now()
	job := NewReminderSweep(server.URL, logPath, 7, zap.NewNop())
	job.Run(context.Background())
	after := time.Now()

	fromRaw, ok := captured.Variables["from"].(string)
	require.True(t, ok)
	toRaw, ok := captured.Variables["to"].(string)
	require.True(t, ok)

	from, err := time.Parse(time.RFC3339, fromRaw)
	require.NoError(t, err)
	to, err := time.Parse(time.RFC3339, toRaw)
	require.NoError(t, err)

	// The window's upper bound is the tick time, the lower bound trails it
	// by the configured number of days.
	assert.False(t, to.Before(before.Truncate(time.Second)))
	assert.False(t, to.After(after.Add(time.Second)))
	assert.True(t, from.Equal(to.AddDate(0, 0, -7)))

	// No orders in the window, nothing to remind
	_, err = os.Stat(logPath)
	assert.True(t, os.IsNotExist(err))
}

func TestReminderSweep_LogsErrorAndStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	logPath := filepath.Join(t.TempDir(), "reminders.log")
	job := NewReminderSweep(server.URL, logPath, 7, zap.NewNop())
	job.Run(context.Background())

	lines := readLogLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ERROR:")
}
