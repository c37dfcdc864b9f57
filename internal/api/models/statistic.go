package models

import "time"

// Statistic is a daily snapshot of platform-wide counters. One row per
// calendar day, upserted by the stats service.
type Statistic struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StatDate       time.Time `json:"stat_date" gorm:"type:date;uniqueIndex;not null"`
	TotalVisitors  int64     `json:"total_visitors" gorm:"default:0"`
	TotalDownloads int64     `json:"total_downloads" gorm:"default:0"`
	TotalGames     int64     `json:"total_games" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Statistic) TableName() string {
	return "statistics"
}
