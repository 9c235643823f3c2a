package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T) string {
	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetricsMiddleware(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	var requestID string
	r.HandleFunc("/api/v1/rentals/{id}", func(w http.ResponseWriter, r *http.Request) {
		requestID = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rentals/abc", nil))

	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rr.Header().Get("X-Request-ID"))
	assert.Contains(t, scrape(t), `serendibgo_http_requests_total{method="GET",route="/api/v1/rentals/{id}",status="404"}`)
}

func TestMetricsMiddlewareKeepsCallerRequestID(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals/my", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestMetricsHandler(t *testing.T) {
	RentalTransitions.WithLabelValues("confirmed").Inc()

	assert.Contains(t, scrape(t), `serendibgo_rental_status_transitions_total{status="confirmed"}`)
}
