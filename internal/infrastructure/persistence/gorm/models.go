package gorm

import (
	"time"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// BaseModel provides common fields for all models
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// VideoModel represents a video in the database
type VideoModel struct {
	BaseModel
	Version       int    `gorm:"not null;default:1"`
	Title         string `gorm:"size:255;not null"`
	Description   string `gorm:"type:text;not null"`
	YearLaunched  int    `gorm:"not null"`
	Duration      int    `gorm:"not null;default:0"`
	Opened        bool   `gorm:"not null;default:false"`
	Published     bool   `gorm:"not null;default:false"`
	Rating        string `gorm:"size:3;not null"`
	BannerPath    string
	ThumbPath     string
	ThumbHalfPath string
}

func (VideoModel) TableName() string { return "videos" }

// MediaModel represents a video's primary media or trailer
type MediaModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_media_video_slot"`
	Slot        string    `gorm:"size:16;not null;uniqueIndex:idx_media_video_slot"`
	FilePath    string    `gorm:"not null"`
	EncodedPath string
	Status      string `gorm:"size:16;not null"`
}

func (MediaModel) TableName() string { return "video_medias" }

// VideoCategoryModel links a video to a category
type VideoCategoryModel struct {
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (VideoCategoryModel) TableName() string { return "video_categories" }

// VideoGenreModel links a video to a genre
type VideoGenreModel struct {
	VideoID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GenreID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (VideoGenreModel) TableName() string { return "video_genres" }

// VideoCastMemberModel links a video to a cast member
type VideoCastMemberModel struct {
	VideoID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CastMemberID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (VideoCastMemberModel) TableName() string { return "video_cast_members" }

// CategoryModel represents a category
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"size:255;not null"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
}

func (CategoryModel) TableName() string { return "categories" }

// GenreModel represents a genre
type GenreModel struct {
	BaseModel
	Name     string `gorm:"size:255;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (GenreModel) TableName() string { return "genres" }

// CastMemberModel represents a cast member
type CastMemberModel struct {
	BaseModel
	Name string `gorm:"size:255;not null"`
	Type int    `gorm:"not null"`
}

func (CastMemberModel) TableName() string { return "cast_members" }

// AllModels lists every model for migrations
func AllModels() []interface{} {
	return []interface{}{
		&VideoModel{},
		&MediaModel{},
		&VideoCategoryModel{},
		&VideoGenreModel{},
		&VideoCastMemberModel{},
		&CategoryModel{},
		&GenreModel{},
		&CastMemberModel{},
	}
}

// FromDomain copies the video's scalar fields into the model
func (m *VideoModel) FromDomain(v *catalog.Video) {
	m.ID = v.ID
	m.Version = v.Version
	m.CreatedAt = v.CreatedAt
	m.UpdatedAt = v.UpdatedAt
	m.Title = v.Title
	m.Description = v.Description
	m.YearLaunched = v.YearLaunched
	m.Duration = v.Duration
	m.Opened = v.Opened
	m.Published = v.Published
	m.Rating = string(v.Rating)
	m.BannerPath = v.AssetPath(catalog.SlotBanner)
	m.ThumbPath = v.AssetPath(catalog.SlotThumb)
	m.ThumbHalfPath = v.AssetPath(catalog.SlotThumbHalf)
}

// ToDomain rebuilds the aggregate from its rows
func (m *VideoModel) ToDomain(medias []MediaModel, categories, genres, castMembers []uuid.UUID) *catalog.Video {
	v := &catalog.Video{
		BaseAggregate: catalog.BaseAggregate{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Title:        m.Title,
		Description:  m.Description,
		YearLaunched: m.YearLaunched,
		Duration:     m.Duration,
		Opened:       m.Opened,
		Published:    m.Published,
		Rating:       catalog.Rating(m.Rating),
		Banner:       imageOrNil(m.BannerPath),
		Thumb:        imageOrNil(m.ThumbPath),
		ThumbHalf:    imageOrNil(m.ThumbHalfPath),
	}

	for i := range medias {
		media := medias[i].ToDomain()
		switch catalog.AssetSlot(medias[i].Slot) {
		case catalog.SlotMedia:
			v.Media = media
		case catalog.SlotTrailer:
			v.Trailer = media
		}
	}

	for _, id := range categories {
		v.AddCategory(id)
	}
	for _, id := range genres {
		v.AddGenre(id)
	}
	for _, id := range castMembers {
		v.AddCastMember(id)
	}

	return v
}

// ToDomain converts a MediaModel to a domain Media
func (m *MediaModel) ToDomain() *catalog.Media {
	return &catalog.Media{
		ID:          m.ID,
		FilePath:    m.FilePath,
		EncodedPath: m.EncodedPath,
		Status:      catalog.MediaStatus(m.Status),
	}
}

func mediaModel(videoID uuid.UUID, slot catalog.AssetSlot, media *catalog.Media) MediaModel {
	return MediaModel{
		ID:          media.ID,
		VideoID:     videoID,
		Slot:        string(slot),
		FilePath:    media.FilePath,
		EncodedPath: media.EncodedPath,
		Status:      string(media.Status),
	}
}

func imageOrNil(path string) *catalog.Image {
	if path == "" {
		return nil
	}
	return &catalog.Image{Path: path}
}
