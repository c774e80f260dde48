// Package rediscache caché Redis para las estadísticas del dashboard.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jobberpro/fieldservice-api/internal/application/analytics"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/pkg/config"
)

var _ analytics.StatsCache = (*StatsCache)(nil)

const statsTTL = 60 * time.Second // las métricas del dashboard toleran un minuto de staleness

// NewClient crea y verifica el cliente Redis con la configuración de la app.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// StatsCache guarda el DashboardStatsDTO serializado en JSON, con TTL.
type StatsCache struct {
	rdb *redis.Client
}

// NewStatsCache construye la caché sobre un cliente Redis.
func NewStatsCache(rdb *redis.Client) *StatsCache {
	return &StatsCache{rdb: rdb}
}

// GetStats devuelve las stats cacheadas de la empresa, o (nil, nil) en miss.
func (c *StatsCache) GetStats(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error) {
	raw, err := c.rdb.Get(ctx, statsKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	var stats dto.DashboardStatsDTO
	if err := json.Unmarshal(raw, &stats); err != nil {
		// Entrada corrupta: tratar como miss y dejar que el TTL la limpie.
		return nil, nil
	}
	return &stats, nil
}

// SetStats cachea las stats de la empresa con TTL.
func (c *StatsCache) SetStats(ctx context.Context, companyID string, stats *dto.DashboardStatsDTO) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal dashboard stats: %w", err)
	}
	if err := c.rdb.Set(ctx, statsKey(companyID), raw, statsTTL).Err(); err != nil {
		return fmt.Errorf("set dashboard stats: %w", err)
	}
	return nil
}

func statsKey(companyID string) string {
	return "dashboard:stats:" + companyID
}
