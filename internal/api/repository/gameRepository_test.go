package repository

import (
	"testing"

	"gasikara/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(GameFilters{})

	assert.Contains(t, query, "WHERE is_active = true")
	assert.NotContains(t, query, "AND")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	query, args := buildListQuery(GameFilters{
		Platform:   "pc",
		Category:   "action",
		IsFree:     boolPtr(true),
		IsFeatured: boolPtr(true),
		SortBy:     "downloads",
		Limit:      10,
	})

	// placeholders must follow the fixed predicate order
	assert.Contains(t, query, "AND platform = $1")
	assert.Contains(t, query, "AND category = $2")
	assert.Contains(t, query, "AND is_free = $3")
	assert.Contains(t, query, "AND is_featured = $4")
	assert.Contains(t, query, "ORDER BY download_count DESC")
	assert.Contains(t, query, "LIMIT $5")
	assert.Equal(t, []any{"pc", "action", true, true, 10}, args)
}

func TestBuildListQuery_SparseFilters(t *testing.T) {
	// skipping platform and is_free must renumber the remaining placeholders
	query, args := buildListQuery(GameFilters{
		Category:   "racing",
		IsFeatured: boolPtr(true),
		Limit:      5,
	})

	assert.NotContains(t, query, "platform =")
	assert.NotContains(t, query, "is_free =")
	assert.Contains(t, query, "AND category = $1")
	assert.Contains(t, query, "AND is_featured = $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Equal(t, []any{"racing", true, 5}, args)
}

func TestBuildListQuery_SortVariants(t *testing.T) {
	tests := []struct {
		sortBy string
		order  string
	}{
		{"downloads", "ORDER BY download_count DESC"},
		{"views", "ORDER BY view_count DESC"},
		{"newest", "ORDER BY created_at DESC"},
		{"", "ORDER BY created_at DESC"},
		{"bogus", "ORDER BY created_at DESC"},
	}
	for _, tc := range tests {
		query, _ := buildListQuery(GameFilters{SortBy: tc.sortBy})
		assert.Contains(t, query, tc.order, "sortBy=%q", tc.sortBy)
	}
}

func TestBuildListQuery_NoLimitWhenZero(t *testing.T) {
	query, args := buildListQuery(GameFilters{Platform: "xbox"})

	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{"xbox"}, args)
}

func TestBuildUpdateQuery_SingleField(t *testing.T) {
	query, args, err := buildUpdateQuery(7, map[string]any{"title": "Neon Drift"})

	require.NoError(t, err)
	assert.Contains(t, query, "SET title = $1, updated_at = CURRENT_TIMESTAMP")
	assert.Contains(t, query, "WHERE id = $2")
	assert.Contains(t, query, "RETURNING")
	assert.Equal(t, []any{"Neon Drift", int64(7)}, args)
}

func TestBuildUpdateQuery_FixedFieldOrder(t *testing.T) {
	// patch keys deliberately listed out of declaration order; the SET
	// clause order must come from the allow-list, not from the map
	query, args, err := buildUpdateQuery(1, map[string]any{
		"price":       4.99,
		"title":       "Updated",
		"is_featured": true,
		"category":    "sport",
	})

	require.NoError(t, err)
	assert.Contains(t, query, "title = $1")
	assert.Contains(t, query, "category = $2")
	assert.Contains(t, query, "price = $3")
	assert.Contains(t, query, "is_featured = $4")
	assert.Contains(t, query, "WHERE id = $5")
	assert.Equal(t, []any{"Updated", "sport", 4.99, true, int64(1)}, args)
}

func TestBuildUpdateQuery_UnknownKeysIgnored(t *testing.T) {
	query, args, err := buildUpdateQuery(3, map[string]any{
		"description": "new text",
		"id":          99,
		"view_count":  1000000,
		"is_active":   true, // not allow-listed, soft delete has its own path
		"garbage":     "x",
	})

	require.NoError(t, err)
	assert.Contains(t, query, "description = $1")
	assert.NotContains(t, query, "view_count")
	assert.NotContains(t, query, "is_active =")
	assert.Equal(t, []any{"new text", int64(3)}, args)
}

func TestBuildUpdateQuery_EmptyPatch(t *testing.T) {
	_, _, err := buildUpdateQuery(1, map[string]any{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestBuildUpdateQuery_OnlyUnknownKeys(t *testing.T) {
	// behaves exactly like an empty patch
	_, _, err := buildUpdateQuery(1, map[string]any{"view_count": 5, "nope": 1})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestBuildUpdateQuery_TagsNormalized(t *testing.T) {
	_, args, err := buildUpdateQuery(2, map[string]any{
		"tags": []any{"fps", "", "multi"},
	})

	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, models.StringArray{"fps", "multi"}, args[0])
}

func TestBuildUpdateQuery_NullableField(t *testing.T) {
	query, args, err := buildUpdateQuery(4, map[string]any{"trailer_url": nil})

	require.NoError(t, err)
	assert.Contains(t, query, "trailer_url = $1")
	assert.Equal(t, []any{nil, int64(4)}, args)
}
