package models

import "time"

// ValidPlatforms is the closed set of platforms a game can belong to.
var ValidPlatforms = []string{"pc", "playstation", "xbox", "mobile", "nintendo"}

// IsValidPlatform reports whether p is one of the supported platforms
// (case-insensitive comparison is done by the caller).
func IsValidPlatform(p string) bool {
	for _, v := range ValidPlatforms {
		if p == v {
			return true
		}
	}
	return false
}

type Game struct {
	ID               int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title            string      `json:"title" gorm:"size:255;not null;uniqueIndex:unique_title_platform"`
	Description      *string     `json:"description,omitempty"`
	ShortDescription *string     `json:"short_description,omitempty" gorm:"size:500"`
	ImageURL         *string     `json:"image_url,omitempty" gorm:"size:500"`
	TrailerURL       *string     `json:"trailer_url,omitempty" gorm:"size:500"`
	DownloadLink     *string     `json:"download_link,omitempty" gorm:"size:500"`
	Platform         string      `json:"platform" gorm:"size:50;not null;uniqueIndex:unique_title_platform"`
	Category         string      `json:"category" gorm:"size:100;default:action"`
	Tags             StringArray `json:"tags" gorm:"type:text[]"`
	IsFree           bool        `json:"is_free" gorm:"default:true"`
	Price            float64     `json:"price" gorm:"type:decimal(10,2);default:0"`
	DownloadCount    int64       `json:"download_count" gorm:"default:0"`
	ViewCount        int64       `json:"view_count" gorm:"default:0"`
	Rating           float64     `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReleaseDate      *time.Time  `json:"release_date,omitempty" gorm:"type:date"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	IsActive         bool        `json:"is_active" gorm:"default:true"`
	IsFeatured       bool        `json:"is_featured" gorm:"default:false"`
}

func (Game) TableName() string {
	return "games"
}

// GameStats is the aggregate row computed over active games.
type GameStats struct {
	TotalGames     int64   `json:"total_games"`
	FeaturedGames  int64   `json:"featured_games"`
	FreeGames      int64   `json:"free_games"`
	TotalDownloads int64   `json:"total_downloads"`
	TotalViews     int64   `json:"total_views"`
	AverageRating  float64 `json:"average_rating"`
}
