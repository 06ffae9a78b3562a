package rest

import (
	"time"

	"github.com/google/uuid"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// videoRequest is the metadata accepted on create and update. A missing
// relation list is nil; an explicit empty list clears the relation.
type videoRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	YearLaunched  int          `json:"year_launched"`
	Duration      int          `json:"duration"`
	Opened        bool         `json:"opened"`
	Published     bool         `json:"published"`
	Rating        string       `json:"rating"`
	CategoriesID  *[]uuid.UUID `json:"categories_id"`
	GenresID      *[]uuid.UUID `json:"genres_id"`
	CastMembersID *[]uuid.UUID `json:"cast_members_id"`
}

func (r videoRequest) fields() app.VideoFields {
	return app.VideoFields{
		Title:        r.Title,
		Description:  r.Description,
		YearLaunched: r.YearLaunched,
		Duration:     r.Duration,
		Opened:       r.Opened,
		Published:    r.Published,
		Rating:       catalog.Rating(r.Rating),
	}
}

func deref(ids *[]uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	return *ids
}

type mediaResponse struct {
	ID          uuid.UUID `json:"id"`
	FilePath    string    `json:"file_path"`
	EncodedPath string    `json:"encoded_path,omitempty"`
	Status      string    `json:"status"`
}

type videoResponse struct {
	ID            uuid.UUID      `json:"id"`
	Version       int            `json:"version"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	YearLaunched  int            `json:"year_launched"`
	Duration      int            `json:"duration"`
	Opened        bool           `json:"opened"`
	Published     bool           `json:"published"`
	Rating        string         `json:"rating"`
	CategoriesID  []uuid.UUID    `json:"categories_id"`
	GenresID      []uuid.UUID    `json:"genres_id"`
	CastMembersID []uuid.UUID    `json:"cast_members_id"`
	Banner        string         `json:"banner,omitempty"`
	Thumb         string         `json:"thumb,omitempty"`
	ThumbHalf     string         `json:"thumb_half,omitempty"`
	Media         *mediaResponse `json:"media,omitempty"`
	Trailer       *mediaResponse `json:"trailer,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func newVideoResponse(v *catalog.Video) videoResponse {
	return videoResponse{
		ID:            v.ID,
		Version:       v.Version,
		Title:         v.Title,
		Description:   v.Description,
		YearLaunched:  v.YearLaunched,
		Duration:      v.Duration,
		Opened:        v.Opened,
		Published:     v.Published,
		Rating:        string(v.Rating),
		CategoriesID:  nonNil(v.Categories()),
		GenresID:      nonNil(v.Genres()),
		CastMembersID: nonNil(v.CastMembers()),
		Banner:        v.AssetPath(catalog.SlotBanner),
		Thumb:         v.AssetPath(catalog.SlotThumb),
		ThumbHalf:     v.AssetPath(catalog.SlotThumbHalf),
		Media:         newMediaResponse(v.Media),
		Trailer:       newMediaResponse(v.Trailer),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func newMediaResponse(m *catalog.Media) *mediaResponse {
	if m == nil {
		return nil
	}
	return &mediaResponse{
		ID:          m.ID,
		FilePath:    m.FilePath,
		EncodedPath: m.EncodedPath,
		Status:      string(m.Status),
	}
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type genreRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

type castMemberRequest struct {
	Name string `json:"name"`
	Type int    `json:"type"`
}

func activeOrDefault(v *bool) bool {
	return v == nil || *v
}
