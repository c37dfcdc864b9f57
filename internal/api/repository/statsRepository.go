package repository

import (
	"context"

	"gasikara/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	Upsert(ctx context.Context, snap *models.Statistic) error
	GetRecent(ctx context.Context, days int) ([]models.Statistic, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

// Upsert writes the snapshot for snap.StatDate, overwriting the counters if
// a row for that day already exists.
func (r *statsRepo) Upsert(ctx context.Context, snap *models.Statistic) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stat_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_visitors", "total_downloads", "total_games"}),
	}).Create(snap).Error
}

func (r *statsRepo) GetRecent(ctx context.Context, days int) ([]models.Statistic, error) {
	var list []models.Statistic
	err := r.db.WithContext(ctx).
		Order("stat_date desc").
		Limit(days).
		Find(&list).Error
	return list, err
}
