package services

import (
	"context"
	"fmt"
	"metrics_demo_server/lib"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

// Pinger is anything the health probes can reach with a round trip.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`        // in seconds
	CurrentTime  time.Time `json:"current_time"`  // server current time
	ServiceAlive bool      `json:"service_alive"` // always true if service is running
	Goroutines   int       `json:"goroutines"`
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type dependencyHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
}

type HealthService struct {
	logger    *gecho.Logger
	startedAt time.Time
	timeout   time.Duration
	database  Pinger
	cache     Pinger
}

func NewHealthService(logger *gecho.Logger) *HealthService {
	return &HealthService{
		logger:    logger,
		startedAt: time.Now(),
		timeout:   5 * time.Second,
	}
}

// WithDatabase attaches the database probe target.
func (hs *HealthService) WithDatabase(db Pinger) *HealthService {
	hs.database = db
	return hs
}

// WithCache attaches the cache probe target.
func (hs *HealthService) WithCache(cache Pinger) *HealthService {
	hs.cache = cache
	return hs
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(hs.startedAt).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		Goroutines:   runtime.NumGoroutine(),
		RamStats:     getRamStats(),
	}
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (dependencyHealthStatus, error) {
	return hs.probe(ctx, "database", hs.database)
}

func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (dependencyHealthStatus, error) {
	return hs.probe(ctx, "cache", hs.cache)
}

func (hs *HealthService) probe(ctx context.Context, name string, target Pinger) (dependencyHealthStatus, error) {
	status := dependencyHealthStatus{LastChecked: time.Now()}
	if target == nil {
		return status, fmt.Errorf("%s: %w", name, lib.ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, hs.timeout)
	defer cancel()

	start := time.Now()
	err := target.PingContext(ctx)
	status.ResponseTimeMs = time.Since(start).Milliseconds()
	status.Connected = err == nil
	status.LastChecked = time.Now()

	if err != nil {
		hs.logger.Error("Health check failed", gecho.Field("dependency", name), gecho.Field("error", err))
		return status, fmt.Errorf("ping %s: %w", name, err)
	}
	return status, nil
}
