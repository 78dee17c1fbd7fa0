package health

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"pawn-backend/internal/cache"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is the part of the pool the checker needs
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db        Pinger
	pool      *pgxpool.Pool
	startedAt time.Time
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
	Uptime   string          `json:"uptime"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"responseTimeMs"`
}

// DetailedStatus adds host and pool statistics to the basic check
type DetailedStatus struct {
	HealthStatus
	System    SystemStats `json:"system"`
	Pool      *PoolStats  `json:"pool,omitempty"`
	CheckedAt time.Time   `json:"checkedAt"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsed    string  `json:"memoryUsed"`
	MemoryTotal   string  `json:"memoryTotal"`
	DiskPercent   float64 `json:"diskPercent"`
	DiskUsed      string  `json:"diskUsed"`
	DiskTotal     string  `json:"diskTotal"`
	Goroutines    int     `json:"goroutines"`
}

type PoolStats struct {
	TotalConns    int32 `json:"totalConns"`
	IdleConns     int32 `json:"idleConns"`
	AcquiredConns int32 `json:"acquiredConns"`
	MaxConns      int32 `json:"maxConns"`
}

func NewHealthChecker(pool *pgxpool.Pool) *HealthChecker {
	h := &HealthChecker{pool: pool, startedAt: time.Now()}
	if pool != nil {
		h.db = pool
	}
	return h
}

// NewWithPinger builds a checker around any pinger, without pool statistics
func NewWithPinger(db Pinger) *HealthChecker {
	return &HealthChecker{db: db, startedAt: time.Now()}
}

// CheckBasic is healthy only when the database answers; the cache is reported but optional
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	dbHealth := h.checkDatabase(ctx)

	status := StatusHealthy
	if dbHealth.Status != StatusHealthy {
		status = StatusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Cache:    checkCache(),
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
	}
}

func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	out := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		System:       systemStats(ctx),
		CheckedAt:    time.Now(),
	}
	if h.pool != nil {
		st := h.pool.Stat()
		out.Pool = &PoolStats{
			TotalConns:    st.TotalConns(),
			IdleConns:     st.IdleConns(),
			AcquiredConns: st.AcquiredConns(),
			MaxConns:      st.MaxConns(),
		}
	}
	return out
}

func (h *HealthChecker) checkDatabase(ctx context.Context) ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: StatusUnhealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{Status: StatusUnhealthy, ResponseTime: responseTime}
	}
	return ComponentHealth{Status: StatusHealthy, ResponseTime: responseTime}
}

func checkCache() ComponentHealth {
	if cache.GetClient() == nil {
		return ComponentHealth{Status: StatusDisabled}
	}
	start := time.Now()
	healthy := cache.IsHealthy()
	ms := time.Since(start).Milliseconds()
	if !healthy {
		return ComponentHealth{Status: StatusUnhealthy, ResponseTime: ms}
	}
	return ComponentHealth{Status: StatusHealthy, ResponseTime: ms}
}

func systemStats(ctx context.Context) SystemStats {
	stats := SystemStats{Goroutines: runtime.NumGoroutine()}

	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = formatBytes(vm.Used)
		stats.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsed = formatBytes(du.Used)
		stats.DiskTotal = formatBytes(du.Total)
	}
	return stats
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
