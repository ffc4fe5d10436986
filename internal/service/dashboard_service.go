package service

import (
	"context"
	"errors"
	"time"

	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/pkg/cache"
	"ads-inventory-ws/pkg/logger"
)

const (
	defaultMovementDays = 7
	maxMovementDays     = 365
)

var statsCacheKey = cache.Key("dashboard", "stats")

type DashboardService interface {
	GetSalesMovement(ctx context.Context, days int) ([]repository.SalesMovementData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	InvalidateStats(ctx context.Context)
}

type dashboardService struct {
	dashRepo repository.DashboardRepository
	cache    cache.Store
	ttl      time.Duration
	log      *logger.Logger
}

// NewDashboardService wires the stats cache. A nil store disables caching.
func NewDashboardService(dashRepo repository.DashboardRepository, store cache.Store, ttl time.Duration, log *logger.Logger) DashboardService {
	if log == nil {
		log = logger.Nop()
	}
	return &dashboardService{dashRepo: dashRepo, cache: store, ttl: ttl, log: log}
}

// ClampDays bounds the chart window to [1, 365], defaulting to a week.
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return defaultMovementDays
	case days > maxMovementDays:
		return maxMovementDays
	default:
		return days
	}
}

func (s *dashboardService) GetSalesMovement(ctx context.Context, days int) ([]repository.SalesMovementData, error) {
	days = ClampDays(days)
	endDate := today(clock())
	startDate := endDate.AddDate(0, 0, -(days - 1))

	return s.dashRepo.GetSalesMovement(ctx, startDate, endDate)
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	if s.cache != nil && s.ttl > 0 {
		var cached repository.DashboardStats
		err := s.cache.GetJSON(ctx, statsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Error(ctx, "dashboard cache read failed", err)
		}
	}

	stats, err := s.dashRepo.GetDashboardStats(ctx, today(clock()))
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats, s.ttl); err != nil {
			s.log.Error(ctx, "dashboard cache write failed", err)
		}
	}
	return stats, nil
}

func (s *dashboardService) InvalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.log.Error(ctx, "dashboard cache invalidate failed", err)
	}
}
