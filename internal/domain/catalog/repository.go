package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VideoRepository persists Video aggregates
type VideoRepository interface {
	// Insert stores a new video; only validated videos are accepted
	Insert(ctx context.Context, video ValidVideo) error
	// Update stores the video if its version is unchanged since it was loaded
	Update(ctx context.Context, video *Video) error
	// Delete removes the video, its media and its relation rows
	Delete(ctx context.Context, id uuid.UUID) error
	// Get loads a video; a missing id yields a not found error
	Get(ctx context.Context, id uuid.UUID) (*Video, error)
}

// RelatedIDLister reports which of the given ids exist
type RelatedIDLister interface {
	ListExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// CategoryRepository persists categories
type CategoryRepository interface {
	RelatedIDLister
	Insert(ctx context.Context, category *Category) error
	Get(ctx context.Context, id uuid.UUID) (*Category, error)
}

// GenreRepository persists genres
type GenreRepository interface {
	RelatedIDLister
	Insert(ctx context.Context, genre *Genre) error
	Get(ctx context.Context, id uuid.UUID) (*Genre, error)
}

// CastMemberRepository persists cast members
type CastMemberRepository interface {
	RelatedIDLister
	Insert(ctx context.Context, member *CastMember) error
	Get(ctx context.Context, id uuid.UUID) (*CastMember, error)
}
