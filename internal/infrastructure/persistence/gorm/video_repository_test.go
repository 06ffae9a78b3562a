package gorm_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

type fixture struct {
	videos     *gormrepo.VideoRepository
	categories *gormrepo.CategoryRepository
	genres     *gormrepo.GenreRepository
	uow        *gormrepo.UnitOfWork
}

func newFixture(t *testing.T) fixture {
	db := gormrepo.NewTestDB(t)
	return fixture{
		videos:     gormrepo.NewVideoRepository(db),
		categories: gormrepo.NewCategoryRepository(db),
		genres:     gormrepo.NewGenreRepository(db),
		uow:        gormrepo.NewUnitOfWork(db),
	}
}

func (f fixture) insert(t *testing.T, video *catalog.Video) {
	valid, err := video.Finalize()
	require.NoError(t, err)
	require.NoError(t, f.videos.Insert(context.Background(), valid))
}

func newVideo() *catalog.Video {
	return catalog.NewVideo("Title", "Description", 2021, 100, true, false, catalog.Rating16)
}

func TestVideoRepository_InsertAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	video := newVideo()
	categoryID, genreID, castID := uuid.New(), uuid.New(), uuid.New()
	video.AddCategory(categoryID)
	video.AddGenre(genreID)
	video.AddCastMember(castID)
	video.UpdateBanner("v-banner.png")
	video.UpdateMedia("v-media.mp4")
	video.UpdateTrailer("v-trailer.mp4")

	f.insert(t, video)

	loaded, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)

	assert.Equal(t, video.Title, loaded.Title)
	assert.Equal(t, catalog.Rating16, loaded.Rating)
	assert.Equal(t, []uuid.UUID{categoryID}, loaded.Categories())
	assert.Equal(t, []uuid.UUID{genreID}, loaded.Genres())
	assert.Equal(t, []uuid.UUID{castID}, loaded.CastMembers())
	assert.Equal(t, "v-banner.png", loaded.Banner.Path)
	assert.Nil(t, loaded.Thumb)
	require.NotNil(t, loaded.Media)
	assert.Equal(t, video.Media.ID, loaded.Media.ID)
	assert.Equal(t, catalog.MediaStatusPending, loaded.Media.Status)
	assert.Equal(t, "v-trailer.mp4", loaded.Trailer.FilePath)
	assert.Empty(t, loaded.PullEvents())
}

func TestVideoRepository_GetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.videos.Get(context.Background(), uuid.New())

	assert.True(t, apperrors.IsNotFound(err))
}

func TestVideoRepository_UpdateReplacesChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	video := newVideo()
	video.AddGenre(uuid.New())
	video.UpdateMedia("first.mp4")
	f.insert(t, video)

	loaded, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)

	loaded.RemoveAllGenres()
	loaded.UpdateMedia("second.mp4")
	require.NoError(t, loaded.MarkMediaEncoded("encoded/second.mp4"))
	require.NoError(t, f.videos.Update(ctx, loaded))
	assert.Equal(t, 2, loaded.Version)

	reloaded, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Genres())
	assert.Equal(t, "second.mp4", reloaded.Media.FilePath)
	assert.Equal(t, catalog.MediaStatusCompleted, reloaded.Media.Status)
	assert.Equal(t, "encoded/second.mp4", reloaded.Media.EncodedPath)
	assert.Equal(t, 2, reloaded.Version)
}

func TestVideoRepository_UpdateDetectsStaleVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	video := newVideo()
	f.insert(t, video)

	first, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)
	second, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)

	first.Title = "first writer"
	require.NoError(t, f.videos.Update(ctx, first))

	second.Title = "second writer"
	err = f.videos.Update(ctx, second)
	assert.True(t, apperrors.IsConflict(err))

	stored, err := f.videos.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, "first writer", stored.Title)
}

func TestVideoRepository_UpdateMissingVideo(t *testing.T) {
	f := newFixture(t)

	err := f.videos.Update(context.Background(), newVideo())

	assert.True(t, apperrors.IsNotFound(err))
}

func TestVideoRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	video := newVideo()
	video.AddCategory(uuid.New())
	video.UpdateMedia("m.mp4")
	f.insert(t, video)

	require.NoError(t, f.videos.Delete(ctx, video.ID))

	_, err := f.videos.Get(ctx, video.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(f.videos.Delete(ctx, video.ID)))
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.uow.Begin(ctx)
	require.NoError(t, err)

	valid, err := newVideo().Finalize()
	require.NoError(t, err)
	require.NoError(t, f.videos.Insert(tx.Context(), valid))
	require.NoError(t, tx.Rollback())

	_, err = f.videos.Get(ctx, valid.Video().ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUnitOfWork_CommitPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.uow.Begin(ctx)
	require.NoError(t, err)

	valid, err := newVideo().Finalize()
	require.NoError(t, err)
	require.NoError(t, f.videos.Insert(tx.Context(), valid))
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback())

	_, err = f.videos.Get(ctx, valid.Video().ID)
	assert.NoError(t, err)
}

func TestRelationRepositories_ListExistingIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := catalog.NewCategory("Drama", "", true)
	require.NoError(t, err)
	b, err := catalog.NewCategory("Comedy", "", true)
	require.NoError(t, err)
	require.NoError(t, f.categories.Insert(ctx, a))
	require.NoError(t, f.categories.Insert(ctx, b))

	found, err := f.categories.ListExistingIDs(ctx, []uuid.UUID{a.ID, uuid.New(), b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, found)

	found, err = f.genres.ListExistingIDs(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	assert.Empty(t, found)

	loaded, err := f.categories.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", loaded.Name)
}

func TestRelationRepositories_DuplicateInsertIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category, err := catalog.NewCategory("Drama", "", true)
	require.NoError(t, err)
	require.NoError(t, f.categories.Insert(ctx, category))

	err = f.categories.Insert(ctx, category)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), category.ID.String())
}

func TestVideoRepository_DuplicateInsertIsConflict(t *testing.T) {
	f := newFixture(t)
	video := newVideo()
	f.insert(t, video)

	valid, err := video.Finalize()
	require.NoError(t, err)

	assert.True(t, apperrors.IsConflict(f.videos.Insert(context.Background(), valid)))
}
