package service

import (
	"context"
	"fmt"
	"time"

	"gasikara/internal/api/dto"
	"gasikara/internal/api/models"
	"gasikara/internal/api/repository"
)

const (
	defaultImageURL = "/assets/images/default-game.jpg"
	defaultCategory = "action"
	shortDescRunes  = 200
	shortDescSuffix = "..."
)

type GameService interface {
	Create(ctx context.Context, in dto.CreateGameDTO) (*models.Game, error)
	GetAll(ctx context.Context, f repository.GameFilters) ([]models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Update(ctx context.Context, id int64, patch map[string]any) (*models.Game, error)
	Delete(ctx context.Context, id int64) (*models.Game, error)
	IncrementDownload(ctx context.Context, id int64) (int64, error)
	GetPopular(ctx context.Context, limit int) ([]models.Game, error)
	GetByPlatform(ctx context.Context, platform string, limit int) ([]models.Game, error)
	GetStats(ctx context.Context) (*models.GameStats, error)
	Search(ctx context.Context, q string) ([]models.Game, error)
}

type gameService struct {
	repo repository.GameRepository
}

func NewGameService(r repository.GameRepository) GameService {
	return &gameService{repo: r}
}

// Create fills in the catalog defaults before inserting: a truncated
// short_description, the placeholder image, the "action" category, free at
// price zero, and a normalized tag set.
func (s *gameService) Create(ctx context.Context, in dto.CreateGameDTO) (*models.Game, error) {
	g := models.Game{
		Title:        in.Title,
		Description:  &in.Description,
		TrailerURL:   in.TrailerURL,
		DownloadLink: &in.DownloadLink,
		Platform:     in.Platform,
		Category:     defaultCategory,
		Tags:         models.ToStringArray(in.Tags),
		IsFree:       true,
	}

	if in.ShortDescription != nil && *in.ShortDescription != "" {
		g.ShortDescription = in.ShortDescription
	} else {
		sd := truncate(in.Description, shortDescRunes) + shortDescSuffix
		g.ShortDescription = &sd
	}

	if in.ImageURL != nil && *in.ImageURL != "" {
		g.ImageURL = in.ImageURL
	} else {
		img := defaultImageURL
		g.ImageURL = &img
	}

	if in.Category != nil && *in.Category != "" {
		g.Category = *in.Category
	}
	if in.IsFree != nil {
		g.IsFree = *in.IsFree
	}
	if in.Price != nil {
		g.Price = *in.Price
	}

	if in.ReleaseDate != nil && *in.ReleaseDate != "" {
		rd, err := parseReleaseDate(*in.ReleaseDate)
		if err != nil {
			return nil, err
		}
		g.ReleaseDate = &rd
	}

	return s.repo.Create(ctx, &g)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func parseReleaseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid release_date: %q", s)
}

func (s *gameService) GetAll(ctx context.Context, f repository.GameFilters) ([]models.Game, error) {
	return s.repo.FindAll(ctx, f)
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *gameService) Update(ctx context.Context, id int64, patch map[string]any) (*models.Game, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *gameService) Delete(ctx context.Context, id int64) (*models.Game, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *gameService) IncrementDownload(ctx context.Context, id int64) (int64, error) {
	return s.repo.IncrementDownload(ctx, id)
}

func (s *gameService) GetPopular(ctx context.Context, limit int) ([]models.Game, error) {
	return s.repo.GetPopular(ctx, limit)
}

func (s *gameService) GetByPlatform(ctx context.Context, platform string, limit int) ([]models.Game, error) {
	return s.repo.GetByPlatform(ctx, platform, limit)
}

func (s *gameService) GetStats(ctx context.Context) (*models.GameStats, error) {
	return s.repo.GetStats(ctx)
}

func (s *gameService) Search(ctx context.Context, q string) ([]models.Game, error) {
	return s.repo.Search(ctx, q)
}
