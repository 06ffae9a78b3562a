package catalog_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

func newVideo() *catalog.Video {
	return catalog.NewVideo("Title", "Description", 2020, 90, false, true, catalog.Rating12)
}

func TestRelationSetsIgnoreDuplicates(t *testing.T) {
	video := newVideo()
	id := uuid.New()

	video.AddCategory(id)
	video.AddCategory(id)
	video.AddGenre(id)

	assert.Equal(t, []uuid.UUID{id}, video.Categories())
	assert.Equal(t, []uuid.UUID{id}, video.Genres())
	assert.Empty(t, video.CastMembers())

	video.RemoveAllCategories()
	assert.Empty(t, video.Categories())
	assert.Len(t, video.Genres(), 1)
}

func TestValidateCollectsEveryError(t *testing.T) {
	video := catalog.NewVideo("", strings.Repeat("x", 4001), 2020, 90, false, false, catalog.RatingL)

	var n catalog.Notification
	video.Validate(&n)

	require.True(t, n.HasErrors())
	assert.Equal(t, []apperrors.FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "description", Message: "description must have at most 4000 characters"},
	}, n.Errors())
}

func TestValidateTitleLength(t *testing.T) {
	video := newVideo()
	video.Title = strings.Repeat("a", 255)

	var n catalog.Notification
	video.Validate(&n)
	assert.False(t, n.HasErrors())

	video.Title = strings.Repeat("a", 256)
	n = catalog.Notification{}
	video.Validate(&n)
	assert.Equal(t, "title must have at most 255 characters", n.Errors()[0].Message)
}

func TestMutatorsDoNotValidate(t *testing.T) {
	video := newVideo()

	video.Update("", "", 0, 0, false, false, catalog.RatingER)

	assert.Equal(t, "", video.Title)
}

func TestFinalize(t *testing.T) {
	valid, err := newVideo().Finalize()
	require.NoError(t, err)
	assert.NotNil(t, valid.Video())

	_, err = catalog.NewVideo("", "", 0, 0, false, false, catalog.RatingER).Finalize()
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title is required", validationErr.First())
	assert.Len(t, validationErr.Errors, 2)
}

func TestUpdateMediaRecordsEvent(t *testing.T) {
	video := newVideo()

	video.UpdateMedia("path/media.mp4")
	video.UpdateTrailer("path/trailer.mp4")

	require.NotNil(t, video.Media)
	assert.Equal(t, catalog.MediaStatusPending, video.Media.Status)
	assert.Equal(t, catalog.MediaStatusPending, video.Trailer.Status)

	pending := video.PullEvents()
	require.Len(t, pending, 1)
	uploaded, ok := pending[0].(*catalog.VideoUploaded)
	require.True(t, ok)
	assert.Equal(t, video.ID, uploaded.AggregateID())
	assert.Equal(t, "path/media.mp4", uploaded.FilePath)
	assert.Equal(t, catalog.KindVideoUploaded, uploaded.Kind())

	assert.Empty(t, video.PullEvents())
}

func TestUpdateMediaDiscardsPrevious(t *testing.T) {
	video := newVideo()
	video.UpdateMedia("first.mp4")
	require.NoError(t, video.MarkMediaEncoded("encoded/first.mp4"))

	video.UpdateMedia("second.mp4")

	assert.Equal(t, "second.mp4", video.Media.FilePath)
	assert.Equal(t, catalog.MediaStatusPending, video.Media.Status)
	assert.Empty(t, video.Media.EncodedPath)
}

func TestReplaceAssetReturnsPrevious(t *testing.T) {
	video := newVideo()

	obsolete, err := video.ReplaceAsset(catalog.SlotBanner, "a.png")
	require.NoError(t, err)
	assert.Empty(t, obsolete)

	obsolete, err = video.ReplaceAsset(catalog.SlotBanner, "b.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, obsolete)
	assert.Equal(t, "b.png", video.Banner.Path)

	obsolete, err = video.ReplaceAsset(catalog.SlotBanner, "b.png")
	require.NoError(t, err)
	assert.Empty(t, obsolete)

	_, err = video.ReplaceAsset("poster", "c.png")
	assert.Error(t, err)
}

func TestReplaceAssetIncludesEncodedOutput(t *testing.T) {
	video := newVideo()
	video.UpdateMedia("v-media.mp4")
	require.NoError(t, video.MarkMediaEncoded("encoded/v-media.mp4"))
	video.UpdateTrailer("v-trailer.mp4")

	obsolete, err := video.ReplaceAsset(catalog.SlotMedia, "v-media.mkv")
	require.NoError(t, err)
	assert.Equal(t, []string{"v-media.mp4", "encoded/v-media.mp4"}, obsolete)
	assert.Empty(t, video.Media.EncodedPath)

	obsolete, err = video.ReplaceAsset(catalog.SlotTrailer, "v-trailer.mp4")
	require.NoError(t, err)
	assert.Empty(t, obsolete)
}

func TestAssetName(t *testing.T) {
	video := newVideo()

	assert.Equal(t, video.ID.String()+"-banner.png", video.AssetName(catalog.SlotBanner, ".png"))
	assert.Equal(t, video.ID.String()+"-thumbhalf.jpg", video.AssetName(catalog.SlotThumbHalf, "jpg"))
	assert.Equal(t, video.ID.String()+"-media", video.AssetName(catalog.SlotMedia, ""))
}

func TestAssetPaths(t *testing.T) {
	video := newVideo()
	video.UpdateBanner("banner.png")
	video.UpdateMedia("media.mp4")
	require.NoError(t, video.MarkMediaEncoded("encoded/media.mp4"))

	assert.ElementsMatch(t, []string{"banner.png", "media.mp4", "encoded/media.mp4"}, video.AssetPaths())
}

func TestMarkMediaWithoutMedia(t *testing.T) {
	video := newVideo()

	err := video.MarkMediaEncoded("x")

	assert.True(t, apperrors.IsValidation(err))
	assert.True(t, apperrors.IsBusiness(err))
}

func TestParseRating(t *testing.T) {
	r, err := catalog.ParseRating("18")
	require.NoError(t, err)
	assert.Equal(t, catalog.Rating18, r)

	_, err = catalog.ParseRating("21")
	assert.True(t, apperrors.IsValidation(err))
}
