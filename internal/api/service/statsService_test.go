package service

import (
	"context"
	"testing"
	"time"

	"gasikara/internal/api/models"
	"gasikara/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Upsert(ctx context.Context, snap *models.Statistic) error {
	return m.Called(ctx, snap).Error(0)
}

func (m *MockStatsRepository) GetRecent(ctx context.Context, days int) ([]models.Statistic, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Statistic), args.Error(1)
}

func TestStatsService_SnapshotToday(t *testing.T) {
	gameRepo := new(MockGameRepository)
	statsRepo := new(MockStatsRepository)

	gameRepo.On("GetStats", mock.Anything).Return(&models.GameStats{
		TotalGames:     12,
		TotalDownloads: 340,
	}, nil)
	statsRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Statistic")).Return(nil)

	// nil visitor repository degrades to zero visitors
	svc := NewStatsService(gameRepo, statsRepo, nil)
	snap, err := svc.SnapshotToday(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), snap.TotalGames)
	assert.Equal(t, int64(340), snap.TotalDownloads)
	assert.Zero(t, snap.TotalVisitors)

	// the snapshot date is normalized to UTC midnight
	assert.Equal(t, time.UTC, snap.StatDate.Location())
	h, m, s := snap.StatDate.Clock()
	assert.Zero(t, h+m+s)

	statsRepo.AssertExpectations(t)
}

func TestStatsService_GetDashboard(t *testing.T) {
	gameRepo := new(MockGameRepository)
	statsRepo := new(MockStatsRepository)

	gameRepo.On("GetStats", mock.Anything).Return(&models.GameStats{TotalGames: 3}, nil)
	gameRepo.On("FindAll", mock.Anything, repository.GameFilters{SortBy: "newest", Limit: 5}).
		Return([]models.Game{{ID: 1}, {ID: 2}}, nil)

	svc := NewStatsService(gameRepo, statsRepo, nil)
	dash, err := svc.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), dash.Stats.TotalGames)
	assert.Len(t, dash.RecentGames, 2)
	assert.Zero(t, dash.VisitorsToday)
	gameRepo.AssertExpectations(t)
}

func TestStatsService_SnapshotPropagatesStatsError(t *testing.T) {
	gameRepo := new(MockGameRepository)
	statsRepo := new(MockStatsRepository)

	gameRepo.On("GetStats", mock.Anything).Return(nil, assert.AnError)

	svc := NewStatsService(gameRepo, statsRepo, nil)
	_, err := svc.SnapshotToday(context.Background())

	assert.Error(t, err)
	statsRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
