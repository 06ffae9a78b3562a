package catalog

import (
	"io"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// FileInput is an uploaded file
type FileInput struct {
	Extension   string
	ContentType string
	Content     io.Reader
}

// VideoFields holds the descriptive fields shared by create and update
type VideoFields struct {
	Title        string
	Description  string
	YearLaunched int
	Duration     int
	Opened       bool
	Published    bool
	Rating       catalog.Rating
}

// CreateVideoCommand represents a command to create a video
type CreateVideoCommand struct {
	VideoFields
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
	Banner        *FileInput
	Thumb         *FileInput
	ThumbHalf     *FileInput
}

// UpdateVideoCommand represents a command to update a video. A nil id list
// leaves that relation untouched; a non-nil empty list clears it. A nil
// file keeps the current image.
type UpdateVideoCommand struct {
	ID uuid.UUID
	VideoFields
	CategoryIDs   *[]uuid.UUID
	GenreIDs      *[]uuid.UUID
	CastMemberIDs *[]uuid.UUID
	Banner        *FileInput
	Thumb         *FileInput
	ThumbHalf     *FileInput
}

// UploadMediasCommand attaches any provided files to an existing video
type UploadMediasCommand struct {
	VideoID   uuid.UUID
	Banner    *FileInput
	Thumb     *FileInput
	ThumbHalf *FileInput
	Media     *FileInput
	Trailer   *FileInput
}

// UpdateMediaStatusCommand applies an encoder result to a video's primary media
type UpdateMediaStatusCommand struct {
	VideoID       uuid.UUID
	Status        catalog.MediaStatus
	EncodedFolder string
}

// CreateCategoryCommand represents a command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
	IsActive    bool
}

// CreateGenreCommand represents a command to create a genre
type CreateGenreCommand struct {
	Name     string
	IsActive bool
}

// CreateCastMemberCommand represents a command to create a cast member
type CreateCastMemberCommand struct {
	Name string
	Type catalog.CastMemberType
}
