package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lutefd/frankfurter-service/internal/cache"
	"github.com/Lutefd/frankfurter-service/internal/commons"
	"github.com/Lutefd/frankfurter-service/internal/frankfurter"
	"github.com/Lutefd/frankfurter-service/internal/server"
	"github.com/Lutefd/frankfurter-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeFrankfurter(t *testing.T) *httptest.Server {
	responses := map[string]string{
		"/v1/latest?amount=1&base=EUR":              `{"amount":1.0,"base":"EUR","date":"2025-12-17","rates":{"GBP":0.8768,"USD":1.1722}}`,
		"/v1/2025-06-13?amount=1&base=EUR":          `{"amount":1.0,"base":"EUR","date":"2025-06-13","rates":{"GBP":0.8502,"USD":1.1512}}`,
		"/v1/latest?amount=10&base=EUR&symbols=USD": `{"amount":10.0,"base":"EUR","date":"2025-12-17","rates":{"USD":11.722}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, rps int) http.Handler {
	upstream := fakeFrankfurter(t)
	adapter := frankfurter.NewService(
		frankfurter.WithHostname(upstream.URL),
		frankfurter.WithCache(cache.NewMemoryCache()),
		frankfurter.WithHTTPClient(upstream.Client()),
	)
	config := commons.Config{ServerPort: 8080, RateLimitRPS: rps}
	return server.NewServer(config, service.NewCurrencyService(adapter)).Handler()
}

func TestRoutes(t *testing.T) {
	h := newTestServer(t, 100)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Readiness",
			target:         "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "Latest rate",
			target:         "/rates?base=eur&quote=usd",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"base":"EUR","quote":"USD","rate":"1.1722","date":"2025-12-17"}`,
		},
		{
			name:           "Historical rate",
			target:         "/rates?base=EUR&quote=USD&date=2025-06-13",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"base":"EUR","quote":"USD","rate":"1.1512","date":"2025-06-13"}`,
		},
		{
			name:           "Conversion",
			target:         "/convert?from=EUR&to=USD&amount=10",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"from":"EUR","to":"USD","amount":"10","result":"11.722","date":"2025-12-17"}`,
		},
		{
			name:           "Unknown currency",
			target:         "/rates?base=EUR&quote=XBT",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Unable to find exchange rate for EUR/XBT"}`,
		},
		{
			name:           "Conversion to unknown currency",
			target:         "/convert?from=EUR&to=XBT&amount=10",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Unable to convert 10 EUR to XBT"}`,
		},
		{
			name:           "Bad input",
			target:         "/convert?from=EUR&to=USD&amount=ten",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid amount"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}

func TestRoutes_RateLimited(t *testing.T) {
	h := newTestServer(t, 1)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/rates?base=EUR&quote=USD", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/rates?base=EUR&quote=USD", nil))
	health := httptest.NewRecorder()
	h.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestStart_StopsOnCancel(t *testing.T) {
	srv := server.NewServer(commons.Config{ServerPort: 0, RateLimitRPS: 1}, service.NewCurrencyService(frankfurter.NewService()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, srv.Start(ctx))
}
