package service

import (
	"context"
	"time"

	"gasikara/internal/api/models"
	"gasikara/internal/api/repository"
)

// Dashboard aggregates what the admin landing page shows.
type Dashboard struct {
	Stats         *models.GameStats `json:"stats"`
	VisitorsToday int64             `json:"visitors_today"`
	RecentGames   []models.Game     `json:"recent_activity"`
}

type StatsService interface {
	SnapshotToday(ctx context.Context) (*models.Statistic, error)
	GetDashboard(ctx context.Context) (*Dashboard, error)
}

type statsService struct {
	gameRepo  repository.GameRepository
	statsRepo repository.StatsRepository
	visitors  *repository.VisitorRepository
}

func NewStatsService(
	gameRepo repository.GameRepository,
	statsRepo repository.StatsRepository,
	visitors *repository.VisitorRepository,
) StatsService {
	return &statsService{
		gameRepo:  gameRepo,
		statsRepo: statsRepo,
		visitors:  visitors,
	}
}

// SnapshotToday persists the current aggregate counters into the daily
// statistics row, overwriting an earlier snapshot for the same day.
func (s *statsService) SnapshotToday(ctx context.Context) (*models.Statistic, error) {
	stats, err := s.gameRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	// best-effort: missing Redis just snapshots zero visitors
	visitors, err := s.visitors.VisitorsOn(ctx, now)
	if err != nil {
		visitors = 0
	}

	snap := &models.Statistic{
		StatDate:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalVisitors:  visitors,
		TotalDownloads: stats.TotalDownloads,
		TotalGames:     stats.TotalGames,
	}
	if err := s.statsRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *statsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.gameRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.gameRepo.FindAll(ctx, repository.GameFilters{SortBy: "newest", Limit: 5})
	if err != nil {
		return nil, err
	}

	visitors, err := s.visitors.VisitorsOn(ctx, time.Now())
	if err != nil {
		visitors = 0
	}

	return &Dashboard{
		Stats:         stats,
		VisitorsToday: visitors,
		RecentGames:   recent,
	}, nil
}
