package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gasikara/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrGameNotFound means no active row matched the requested id.
	ErrGameNotFound = errors.New("game not found")
	// ErrDuplicateTitlePlatform maps the UNIQUE(title, platform) violation.
	ErrDuplicateTitlePlatform = errors.New("a game with this title already exists on this platform")
	// ErrEmptyUpdate means the patch contained no recognized field.
	ErrEmptyUpdate = errors.New("no valid field to update")
)

// GameFilters is the recognized set of optional list parameters. Absent
// filters impose no constraint; present ones combine with AND.
type GameFilters struct {
	Platform   string `json:"platform,omitempty"`
	Category   string `json:"category,omitempty"`
	IsFree     *bool  `json:"is_free,omitempty"`
	IsFeatured *bool  `json:"is_featured,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type GameRepository interface {
	Create(ctx context.Context, g *models.Game) (*models.Game, error)
	FindAll(ctx context.Context, f GameFilters) ([]models.Game, error)
	FindByID(ctx context.Context, id int64) (*models.Game, error)
	Update(ctx context.Context, id int64, patch map[string]any) (*models.Game, error)
	SoftDelete(ctx context.Context, id int64) (*models.Game, error)
	IncrementDownload(ctx context.Context, id int64) (int64, error)
	GetPopular(ctx context.Context, limit int) ([]models.Game, error)
	GetByPlatform(ctx context.Context, platform string, limit int) ([]models.Game, error)
	GetStats(ctx context.Context) (*models.GameStats, error)
	Search(ctx context.Context, q string) ([]models.Game, error)
}

// gameRepo executes hand-built parameterized SQL against the shared pool.
// The games table is the hot path, so it bypasses the ORM and keeps full
// control over placeholders and projections.
type gameRepo struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) GameRepository {
	return &gameRepo{db: db}
}

const gameColumns = `id, title, description, short_description, image_url, trailer_url,
		download_link, platform, category, tags, is_free, price,
		download_count, view_count, rating, release_date,
		created_at, updated_at, is_active, is_featured`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.Title, &g.Description, &g.ShortDescription, &g.ImageURL, &g.TrailerURL,
		&g.DownloadLink, &g.Platform, &g.Category, &g.Tags, &g.IsFree, &g.Price,
		&g.DownloadCount, &g.ViewCount, &g.Rating, &g.ReleaseDate,
		&g.CreatedAt, &g.UpdatedAt, &g.IsActive, &g.IsFeatured,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepo) Create(ctx context.Context, g *models.Game) (*models.Game, error) {
	query := `
		INSERT INTO games (
			title, description, short_description, image_url,
			trailer_url, download_link, platform, category,
			tags, is_free, price, release_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + gameColumns

	tags := g.Tags
	if tags == nil {
		tags = models.StringArray{}
	}

	row := r.db.QueryRowContext(ctx, query,
		g.Title, g.Description, g.ShortDescription, g.ImageURL,
		g.TrailerURL, g.DownloadLink, g.Platform, g.Category,
		tags, g.IsFree, g.Price, g.ReleaseDate,
	)

	created, err := scanGame(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateTitlePlatform
		}
		return nil, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

// buildListQuery assembles the filtered list statement. Predicates are
// appended in a fixed order (platform, category, is_free, is_featured) so
// that positional placeholders stay aligned with the args slice; sort and
// limit always come last.
func buildListQuery(f GameFilters) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT
		id, title, short_description, image_url,
		platform, category, tags, is_free, price,
		download_count, view_count, rating,
		release_date, is_featured, created_at
	FROM games
	WHERE is_active = true`)

	args := make([]any, 0, 5)

	if f.Platform != "" {
		args = append(args, f.Platform)
		fmt.Fprintf(&b, " AND platform = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		fmt.Fprintf(&b, " AND category = $%d", len(args))
	}
	if f.IsFree != nil {
		args = append(args, *f.IsFree)
		fmt.Fprintf(&b, " AND is_free = $%d", len(args))
	}
	if f.IsFeatured != nil {
		args = append(args, *f.IsFeatured)
		fmt.Fprintf(&b, " AND is_featured = $%d", len(args))
	}

	switch f.SortBy {
	case "downloads":
		b.WriteString(" ORDER BY download_count DESC")
	case "views":
		b.WriteString(" ORDER BY view_count DESC")
	default: // "newest" and anything unrecognized
		b.WriteString(" ORDER BY created_at DESC")
	}

	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	return b.String(), args
}

func (r *gameRepo) FindAll(ctx context.Context, f GameFilters) ([]models.Game, error) {
	query, args := buildListQuery(f)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	list := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.ID, &g.Title, &g.ShortDescription, &g.ImageURL,
			&g.Platform, &g.Category, &g.Tags, &g.IsFree, &g.Price,
			&g.DownloadCount, &g.ViewCount, &g.Rating,
			&g.ReleaseDate, &g.IsFeatured, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// FindByID bumps view_count first, then reads the active row. The increment
// runs even when the id is missing or soft-deleted; it is a no-op there.
func (r *gameRepo) FindByID(ctx context.Context, id int64) (*models.Game, error) {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE games SET view_count = view_count + 1 WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("increment view count: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1 AND is_active = true`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	return g, nil
}

// updatableField pairs a patch key with its column. The slice order is the
// order SET clauses are emitted in, which fixes placeholder numbering.
type updatableField struct {
	key    string
	column string
}

var updatableFields = []updatableField{
	{"title", "title"},
	{"description", "description"},
	{"short_description", "short_description"},
	{"image_url", "image_url"},
	{"trailer_url", "trailer_url"},
	{"download_link", "download_link"},
	{"platform", "platform"},
	{"category", "category"},
	{"tags", "tags"},
	{"is_free", "is_free"},
	{"price", "price"},
	{"is_featured", "is_featured"},
	{"release_date", "release_date"},
}

// buildUpdateQuery walks the allow-list in declared order and emits one SET
// clause per present patch key. Unknown keys are ignored. Returns
// ErrEmptyUpdate when nothing recognized is present.
func buildUpdateQuery(id int64, patch map[string]any) (string, []any, error) {
	sets := make([]string, 0, len(updatableFields))
	args := make([]any, 0, len(updatableFields)+1)

	for _, f := range updatableFields {
		v, ok := patch[f.key]
		if !ok {
			continue
		}
		if f.key == "tags" {
			v = models.ToStringArray(v)
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}

	if len(sets) == 0 {
		return "", nil, ErrEmptyUpdate
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE games SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), gameColumns,
	)
	return query, args, nil
}

func (r *gameRepo) Update(ctx context.Context, id int64, patch map[string]any) (*models.Game, error) {
	query, args, err := buildUpdateQuery(id, patch)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateTitlePlatform
		}
		return nil, fmt.Errorf("update game: %w", err)
	}
	return g, nil
}

// SoftDelete flips is_active off regardless of its prior value, so deleting
// an already-deleted row succeeds.
func (r *gameRepo) SoftDelete(ctx context.Context, id int64) (*models.Game, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE games
		SET is_active = false, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING `+gameColumns, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("soft delete game: %w", err)
	}
	return g, nil
}

func (r *gameRepo) IncrementDownload(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE games
		SET download_count = download_count + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING download_count`, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrGameNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("increment download count: %w", err)
	}
	return count, nil
}

func (r *gameRepo) GetPopular(ctx context.Context, limit int) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, short_description, image_url,
			platform, category, download_count, rating
		FROM games
		WHERE is_active = true
		ORDER BY download_count DESC, rating DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("popular games: %w", err)
	}
	defer rows.Close()

	list := make([]models.Game, 0, limit)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.ID, &g.Title, &g.ShortDescription, &g.ImageURL,
			&g.Platform, &g.Category, &g.DownloadCount, &g.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan popular row: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *gameRepo) GetByPlatform(ctx context.Context, platform string, limit int) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, short_description, image_url,
			platform, category, is_free, rating
		FROM games
		WHERE platform = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT $2`, platform, limit)
	if err != nil {
		return nil, fmt.Errorf("games by platform: %w", err)
	}
	defer rows.Close()

	list := make([]models.Game, 0, limit)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.ID, &g.Title, &g.ShortDescription, &g.ImageURL,
			&g.Platform, &g.Category, &g.IsFree, &g.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan platform row: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *gameRepo) GetStats(ctx context.Context) (*models.GameStats, error) {
	var s models.GameStats
	// COALESCE keeps the aggregates scannable when the table is empty.
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_games,
			COUNT(CASE WHEN is_featured = true THEN 1 END) AS featured_games,
			COUNT(CASE WHEN is_free = true THEN 1 END) AS free_games,
			COALESCE(SUM(download_count), 0) AS total_downloads,
			COALESCE(SUM(view_count), 0) AS total_views,
			COALESCE(ROUND(AVG(rating), 2), 0) AS average_rating
		FROM games
		WHERE is_active = true`).Scan(
		&s.TotalGames, &s.FeaturedGames, &s.FreeGames,
		&s.TotalDownloads, &s.TotalViews, &s.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("game stats: %w", err)
	}
	return &s, nil
}

// Search does a case-insensitive substring match over title, description and
// category. Title hits rank before description hits, then downloads break
// ties. Capped at 20 rows.
func (r *gameRepo) Search(ctx context.Context, q string) ([]models.Game, error) {
	pattern := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, short_description, image_url,
			platform, category, is_free, rating
		FROM games
		WHERE is_active = true
			AND (title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		ORDER BY
			CASE
				WHEN title ILIKE $1 THEN 1
				WHEN description ILIKE $1 THEN 2
				ELSE 3
			END,
			download_count DESC
		LIMIT 20`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer rows.Close()

	list := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(
			&g.ID, &g.Title, &g.ShortDescription, &g.ImageURL,
			&g.Platform, &g.Category, &g.IsFree, &g.Rating,
		); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}
