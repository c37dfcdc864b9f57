package dto

import (
	"time"

	"gasikara/internal/api/models"
)

// CreateGameDTO used for POST /api/games. Required-field presence is checked
// by the handler so missing fields can be reported one at a time, in order.
type CreateGameDTO struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription *string  `json:"short_description,omitempty"`
	ImageURL         *string  `json:"image_url,omitempty"`
	TrailerURL       *string  `json:"trailer_url,omitempty"`
	DownloadLink     string   `json:"download_link"`
	Platform         string   `json:"platform"`
	Category         *string  `json:"category,omitempty"`
	Tags             any      `json:"tags,omitempty"` // single string or array, both accepted
	IsFree           *bool    `json:"is_free,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
}

// GameResponse is the full representation returned by detail and mutation
// endpoints.
type GameResponse struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	Description      *string            `json:"description,omitempty"`
	ShortDescription *string            `json:"short_description,omitempty"`
	ImageURL         *string            `json:"image_url,omitempty"`
	TrailerURL       *string            `json:"trailer_url,omitempty"`
	DownloadLink     *string            `json:"download_link,omitempty"`
	Platform         string             `json:"platform"`
	Category         string             `json:"category"`
	Tags             models.StringArray `json:"tags"`
	IsFree           bool               `json:"is_free"`
	Price            float64            `json:"price"`
	DownloadCount    int64              `json:"download_count"`
	ViewCount        int64              `json:"view_count"`
	Rating           float64            `json:"rating"`
	ReleaseDate      *time.Time         `json:"release_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	IsActive         bool               `json:"is_active"`
	IsFeatured       bool               `json:"is_featured"`
}

// GameBasicResponse mirrors the list projection.
type GameBasicResponse struct {
	ID               int64              `json:"id"`
	Title            string             `json:"title"`
	ShortDescription *string            `json:"short_description,omitempty"`
	ImageURL         *string            `json:"image_url,omitempty"`
	Platform         string             `json:"platform"`
	Category         string             `json:"category"`
	Tags             models.StringArray `json:"tags"`
	IsFree           bool               `json:"is_free"`
	Price            float64            `json:"price"`
	DownloadCount    int64              `json:"download_count"`
	ViewCount        int64              `json:"view_count"`
	Rating           float64            `json:"rating"`
	ReleaseDate      *time.Time         `json:"release_date,omitempty"`
	IsFeatured       bool               `json:"is_featured"`
	CreatedAt        time.Time          `json:"created_at"`
}

// GameCardResponse mirrors the narrow projection used by popular, platform
// and search queries.
type GameCardResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	ShortDescription *string `json:"short_description,omitempty"`
	ImageURL         *string `json:"image_url,omitempty"`
	Platform         string  `json:"platform"`
	Category         string  `json:"category"`
	IsFree           bool    `json:"is_free"`
	DownloadCount    int64   `json:"download_count"`
	Rating           float64 `json:"rating"`
}

func FromModelToResponse(g models.Game) GameResponse {
	return GameResponse{
		ID:               g.ID,
		Title:            g.Title,
		Description:      g.Description,
		ShortDescription: g.ShortDescription,
		ImageURL:         g.ImageURL,
		TrailerURL:       g.TrailerURL,
		DownloadLink:     g.DownloadLink,
		Platform:         g.Platform,
		Category:         g.Category,
		Tags:             g.Tags,
		IsFree:           g.IsFree,
		Price:            g.Price,
		DownloadCount:    g.DownloadCount,
		ViewCount:        g.ViewCount,
		Rating:           g.Rating,
		ReleaseDate:      g.ReleaseDate,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
		IsActive:         g.IsActive,
		IsFeatured:       g.IsFeatured,
	}
}

func FromModelToBasicResponse(g models.Game) GameBasicResponse {
	tags := g.Tags
	if tags == nil {
		tags = models.StringArray{}
	}
	return GameBasicResponse{
		ID:               g.ID,
		Title:            g.Title,
		ShortDescription: g.ShortDescription,
		ImageURL:         g.ImageURL,
		Platform:         g.Platform,
		Category:         g.Category,
		Tags:             tags,
		IsFree:           g.IsFree,
		Price:            g.Price,
		DownloadCount:    g.DownloadCount,
		ViewCount:        g.ViewCount,
		Rating:           g.Rating,
		ReleaseDate:      g.ReleaseDate,
		IsFeatured:       g.IsFeatured,
		CreatedAt:        g.CreatedAt,
	}
}

func FromModelToCardResponse(g models.Game) GameCardResponse {
	return GameCardResponse{
		ID:               g.ID,
		Title:            g.Title,
		ShortDescription: g.ShortDescription,
		ImageURL:         g.ImageURL,
		Platform:         g.Platform,
		Category:         g.Category,
		IsFree:           g.IsFree,
		DownloadCount:    g.DownloadCount,
		Rating:           g.Rating,
	}
}
