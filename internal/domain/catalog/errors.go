package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

var (
	// ErrInvalidMediaTransition is returned when a media status change is not allowed
	ErrInvalidMediaTransition = errors.New("invalid media status transition")

	// ErrVideoHasNoMedia is returned when a status update targets a video without primary media
	ErrVideoHasNoMedia = apperrors.NewValidationError(apperrors.FieldError{
		Field:   "media",
		Message: "video has no media to update",
	})
)

// VideoNotFound returns the error for a missing video
func VideoNotFound(id uuid.UUID) error {
	return apperrors.NotFound(fmt.Sprintf("video %s not found", id))
}

// CategoryNotFound returns the error for a missing category
func CategoryNotFound(id uuid.UUID) error {
	return apperrors.NotFound(fmt.Sprintf("category %s not found", id))
}

// GenreNotFound returns the error for a missing genre
func GenreNotFound(id uuid.UUID) error {
	return apperrors.NotFound(fmt.Sprintf("genre %s not found", id))
}

// CastMemberNotFound returns the error for a missing cast member
func CastMemberNotFound(id uuid.UUID) error {
	return apperrors.NotFound(fmt.Sprintf("cast member %s not found", id))
}

// VersionConflict is returned when the stored aggregate changed since it was loaded
func VersionConflict(id uuid.UUID, version int) error {
	return apperrors.Conflict(fmt.Sprintf("video %s was modified concurrently (version %d)", id, version))
}
