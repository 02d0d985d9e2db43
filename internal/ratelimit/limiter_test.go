package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_BurstThenRefill(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(1, 3)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}
	ok, _ := m.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// other clients have their own bucket
	ok, _ = m.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)

	clock = clock.Add(time.Second)
	ok, _ = m.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}

func TestMemory_Sweep(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(1, 1)
	m.now = func() time.Time { return clock }

	_, _ = m.Allow(context.Background(), "old")
	clock = clock.Add(10 * time.Minute)
	_, _ = m.Allow(context.Background(), "new")

	assert.Equal(t, 1, m.Sweep(5*time.Minute))
	assert.Len(t, m.visitors, 1)
	assert.Contains(t, m.visitors, "new")
}

func TestConfig_Window(t *testing.T) {
	assert.Equal(t, 5*time.Second, Config{RPS: 1, Burst: 5}.Window())
	assert.Equal(t, time.Second, Config{RPS: 10, Burst: 5}.Window())
}

type stubLimiter struct {
	ok  bool
	err error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.ok, s.err }

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		limiter Limiter
		want    int
	}{
		{"allowed", stubLimiter{ok: true}, http.StatusOK},
		{"limited", stubLimiter{ok: false}, http.StatusTooManyRequests},
		{"backend down", stubLimiter{err: errors.New("connection refused")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/add_rating/", Middleware(tt.limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/add_rating/", nil))
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusTooManyRequests {
				assert.NotEmpty(t, w.Header().Get("Retry-After"))
			}
		})
	}
}

func TestNew_MemoryWithoutRedis(t *testing.T) {
	l, closeFn, err := New(context.Background(), Config{RPS: 1, Burst: 2})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, l)
	assert.NoError(t, closeFn())

	_, _, err = New(context.Background(), Config{RPS: 1, Burst: 2, RedisURL: "not a url"})
	assert.Error(t, err)
}

func TestRedis_FixedWindow(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	l, closeFn, err := New(context.Background(), Config{RPS: 1, Burst: 2, RedisURL: url})
	require.NoError(t, err)
	defer closeFn()

	r := l.(*Redis)
	r.prefix = "ratelimit-test-" + uuid.New().String()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := r.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := r.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	clock = clock.Add(r.window)
	ok, err = r.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}
