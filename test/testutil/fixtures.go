package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
)

// NewTestVideo returns a valid, unsaved video
func NewTestVideo(title string) *catalog.Video {
	return catalog.NewVideo(title, "A test video", 2022, 120, false, true, catalog.Rating12)
}

// Relations holds stored related aggregates
type Relations struct {
	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// SeedRelations stores one category, genre, director and actor
func SeedRelations(t *testing.T, db *gorm.DB) Relations {
	t.Helper()
	ctx := context.Background()

	category, err := catalog.NewCategory("Documentary", "Non-fiction", true)
	require.NoError(t, err)
	require.NoError(t, gormrepo.NewCategoryRepository(db).Insert(ctx, category))

	genre, err := catalog.NewGenre("Nature", true)
	require.NoError(t, err)
	require.NoError(t, gormrepo.NewGenreRepository(db).Insert(ctx, genre))

	casts := gormrepo.NewCastMemberRepository(db)
	director, err := catalog.NewCastMember("Jane Director", catalog.CastMemberDirector)
	require.NoError(t, err)
	require.NoError(t, casts.Insert(ctx, director))
	actor, err := catalog.NewCastMember("John Actor", catalog.CastMemberActor)
	require.NoError(t, err)
	require.NoError(t, casts.Insert(ctx, actor))

	return Relations{
		Categories:  []uuid.UUID{category.ID},
		Genres:      []uuid.UUID{genre.ID},
		CastMembers: []uuid.UUID{director.ID, actor.ID},
	}
}
