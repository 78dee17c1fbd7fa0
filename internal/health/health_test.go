package health

import (
	"context"
	"errors"
	"testing"

	"pawn-backend/internal/cache"

	"github.com/stretchr/testify/assert"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestCheckBasicHealthy(t *testing.T) {
	cache.SetClient(nil)
	h := NewWithPinger(stubPinger{})

	st := h.CheckBasic(context.Background())
	assert.Equal(t, StatusHealthy, st.Status)
	assert.Equal(t, StatusHealthy, st.Database.Status)
	assert.Equal(t, StatusDisabled, st.Cache.Status)
}

func TestCheckBasicDatabaseDown(t *testing.T) {
	h := NewWithPinger(stubPinger{err: errors.New("connection refused")})

	st := h.CheckBasic(context.Background())
	assert.Equal(t, StatusUnhealthy, st.Status)
	assert.Equal(t, StatusUnhealthy, st.Database.Status)
}

func TestCheckDetailedWithoutPool(t *testing.T) {
	h := NewWithPinger(stubPinger{})

	st := h.CheckDetailed(context.Background())
	assert.Equal(t, StatusHealthy, st.Status)
	assert.Nil(t, st.Pool)
	assert.Positive(t, st.System.Goroutines)
	assert.False(t, st.CheckedAt.IsZero())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "2.0 GB", formatBytes(2*1024*1024*1024))
}
