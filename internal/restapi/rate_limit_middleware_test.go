package restapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func newLimitedHandler(t *testing.T, ratePerSecond int, interval time.Duration, exemptKeys ...string) http.Handler {
	middleware := NewRateLimitMiddleware(ratePerSecond, interval, exemptKeys...)
	t.Cleanup(middleware.Stop)

	return middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func serveLimited(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 5, time.Second)

	for i := 0; i < 5; i++ {
		w := serveLimited(limitedHandler, "/test?key=test-api-key")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 3, time.Second)

	for i := 0; i < 3; i++ {
		w := serveLimited(limitedHandler, "/test?key=test-api-key")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	w := serveLimited(limitedHandler, "/test?key=test-api-key")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Request over limit should be blocked")
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 2, time.Second)

	for i := 0; i < 2; i++ {
		w := serveLimited(limitedHandler, "/test?key=api-key-1")
		assert.Equal(t, http.StatusOK, w.Code, "API key 1 request %d should be allowed", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, serveLimited(limitedHandler, "/test?key=api-key-1").Code,
		"API key 1 should be rate limited")
	assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test?key=api-key-2").Code,
		"API key 2 should not be affected")
}

func TestRateLimitMiddleware_ExemptKeys(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 1, time.Second, "dashboard-internal")

	for i := 0; i < 10; i++ {
		w := serveLimited(limitedHandler, "/test?key=dashboard-internal")
		assert.Equal(t, http.StatusOK, w.Code, "Exempted API key request %d should always be allowed", i+1)
	}
}

func TestRateLimitMiddleware_HandlesNoAPIKey(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 5, time.Second)

	// Rate limiting does not authenticate; a missing key shares one bucket.
	assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test").Code)
	assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test?key=").Code)
}

func TestRateLimitMiddleware_RefillsOverTime(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 1, 100*time.Millisecond)

	assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test?key=test-key").Code, "First request should succeed")
	assert.Equal(t, http.StatusTooManyRequests, serveLimited(limitedHandler, "/test?key=test-key").Code,
		"Second request should be rate limited")

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test?key=test-key").Code,
		"Request after refill should succeed")
}

func TestRateLimitMiddleware_ConcurrentRequests(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 5, time.Second)

	var wg sync.WaitGroup
	results := make([]int, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index] = serveLimited(limitedHandler, "/test?key=concurrent-test").Code
		}(i)
	}
	wg.Wait()

	successCount := 0
	rateLimitedCount := 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			rateLimitedCount++
		}
	}

	assert.Equal(t, 5, successCount, "Should have exactly 5 successful requests")
	assert.Equal(t, 5, rateLimitedCount, "Should have exactly 5 rate limited requests")
}

func TestRateLimitMiddleware_RateLimitedResponseFormat(t *testing.T) {
	limitedHandler := newLimitedHandler(t, 1, time.Second)

	serveLimited(limitedHandler, "/test?key=test-key")
	w := serveLimited(limitedHandler, "/test?key=test-key")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `"code":429`)
	assert.Contains(t, body, "Rate limit exceeded. Please try again later.")
}

func TestRateLimitMiddleware_EdgeCases(t *testing.T) {
	t.Run("Zero rate limit", func(t *testing.T) {
		limitedHandler := newLimitedHandler(t, 0, time.Second)
		assert.Equal(t, http.StatusTooManyRequests, serveLimited(limitedHandler, "/test?key=test-key").Code,
			"Zero rate limit should block all requests")
	})

	t.Run("Negative rate limit disables limiting", func(t *testing.T) {
		limitedHandler := newLimitedHandler(t, -1, time.Second)
		for i := 0; i < 50; i++ {
			assert.Equal(t, http.StatusOK, serveLimited(limitedHandler, "/test?key=unlimited").Code)
		}
	})

	t.Run("Very high rate limit", func(t *testing.T) {
		limitedHandler := newLimitedHandler(t, 1000, time.Second)
		for i := 0; i < 100; i++ {
			w := serveLimited(limitedHandler, fmt.Sprintf("/test?key=high-limit-key&i=%d", i))
			assert.Equal(t, http.StatusOK, w.Code, "High rate limit should allow many requests")
		}
	})
}

func TestRateLimitMiddleware_StopEndsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	middleware := NewRateLimitMiddleware(5, time.Second)
	middleware.Stop()
	middleware.Stop()
}

func TestRateLimitingIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 5
	api := createTestApiWithConfig(t, cfg)
	server := newTestServer(t, api)

	successCount := 0
	rateLimitedCount := 0
	for i := 0; i < 7; i++ {
		resp, _ := doRequest(t, server.URL, http.MethodGet, "/api/v1/suggestions.json?key=TEST")
		switch resp.StatusCode {
		case http.StatusOK:
			successCount++
		case http.StatusTooManyRequests:
			rateLimitedCount++
		}
	}

	assert.Equal(t, 5, successCount)
	assert.Equal(t, 2, rateLimitedCount)
	assert.Equal(t, 2.0, testutil.ToFloat64(api.Metrics.RateLimitedTotal))
}

func TestRateLimitExemptKeysFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ApiKeys = []string{"TEST", "OPS"}
	cfg.RateLimit = 1
	cfg.RateLimitExemptKeys = []string{"OPS"}
	api := createTestApiWithConfig(t, cfg)
	server := newTestServer(t, api)

	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, server.URL, http.MethodGet, "/api/v1/suggestions.json?key=OPS")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "exempt request %d", i+1)
	}

	resp, _ := doRequest(t, server.URL, http.MethodGet, "/api/v1/suggestions.json?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, server.URL, http.MethodGet, "/api/v1/suggestions.json?key=TEST")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
