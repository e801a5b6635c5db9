package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Status codes the API actually emits. There is no authentication, so the
// 401/403 family never appears.
var apiStatusCodes = []int{
	http.StatusBadRequest,
	http.StatusNotFound,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusServiceUnavailable,
}

func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every error response carries code, message and RFC3339 timestamp", prop.ForAll(
		func(message string, codeIndex int) bool {
			statusCode := apiStatusCodes[codeIndex%len(apiStatusCodes)]

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			if response.Error.Code == "" || response.Error.Message != message {
				return false
			}

			_, err := time.Parse(time.RFC3339, response.Error.Timestamp)
			return err == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.IntRange(0, len(apiStatusCodes)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ErrorDetailsAreIncluded(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("details attached to an error survive serialization", prop.ForAll(
		func(message string, detailKey string, detailValue string) bool {
			w := httptest.NewRecorder()
			RespondWithErrorDetails(w, http.StatusBadRequest, message, map[string]interface{}{
				detailKey: detailValue,
			})

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}
			if response.Error.Details == nil {
				return false
			}

			val, ok := response.Error.Details[detailKey]
			return ok && val == detailValue
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_JSONResponsesAreValid(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("JSON payloads round-trip through the response writer", prop.ForAll(
		func(data map[string]string) bool {
			w := httptest.NewRecorder()
			RespondWithJSON(w, http.StatusOK, data)

			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var result map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				return false
			}

			for k, v := range data {
				if result[k] != v {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorHandlingMiddleware_RecoversFromPanic(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("resolver blew up")
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/graphql", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if response.Error.Code == "" {
		t.Error("error code missing from panic response")
	}
}

func TestErrorHandlingMiddleware_PassesThroughNormalRequests(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
