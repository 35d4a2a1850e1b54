package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AuthTierBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralPerMinute: 100,
		AuthPerMinute:    3,
		CleanupInterval:  time.Minute,
	})
	defer rl.Stop()

	handler := rl.Auth()(okHandler())

	call := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, call(), "request %d within the burst", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, call())
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralPerMinute: 100,
		AuthPerMinute:    1,
		CleanupInterval:  time.Minute,
	})
	defer rl.Stop()

	handler := rl.Auth()(okHandler())

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:2222"), "same IP, new port")
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1111"), "different IP")
}

func TestRateLimiter_TiersAreSeparate(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralPerMinute: 100,
		AuthPerMinute:    1,
		CleanupInterval:  time.Minute,
	})
	defer rl.Stop()

	authHandler := rl.Auth()(okHandler())
	generalHandler := rl.General()(okHandler())

	call := func(h http.Handler) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1111"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call(authHandler))
	assert.Equal(t, http.StatusTooManyRequests, call(authHandler))
	assert.Equal(t, http.StatusOK, call(generalHandler), "general tier unaffected by the auth tier")
}
