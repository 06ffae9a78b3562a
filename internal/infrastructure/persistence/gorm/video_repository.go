package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// VideoRepository implements catalog.VideoRepository
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new GORM video repository
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Insert stores a new video with its media and relation rows
func (r *VideoRepository) Insert(ctx context.Context, valid catalog.ValidVideo) error {
	video := valid.Video()
	model := &VideoModel{}
	model.FromDomain(video)

	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return insertError(err, "video", video.ID)
		}
		return r.writeChildren(tx, video)
	})
}

// Update stores the video when the persisted version still matches and
// bumps the version. Media and relation rows are fully replaced.
func (r *VideoRepository) Update(ctx context.Context, video *catalog.Video) error {
	model := &VideoModel{}
	model.FromDomain(video)
	now := time.Now().UTC()

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&VideoModel{}).
			Where("id = ? AND version = ?", video.ID, video.Version).
			Updates(map[string]interface{}{
				"version":         video.Version + 1,
				"updated_at":      now,
				"title":           model.Title,
				"description":     model.Description,
				"year_launched":   model.YearLaunched,
				"duration":        model.Duration,
				"opened":          model.Opened,
				"published":       model.Published,
				"rating":          model.Rating,
				"banner_path":     model.BannerPath,
				"thumb_path":      model.ThumbPath,
				"thumb_half_path": model.ThumbHalfPath,
			})
		if result.Error != nil {
			return fmt.Errorf("update video: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, video)
		}

		if err := r.deleteChildren(tx, video.ID); err != nil {
			return err
		}
		return r.writeChildren(tx, video)
	})
	if err != nil {
		return err
	}

	video.Version++
	video.UpdatedAt = now
	return nil
}

// Delete removes a video together with its media and relation rows
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := r.deleteChildren(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&VideoModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete video: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return catalog.VideoNotFound(id)
		}
		return nil
	})
}

// Get loads a video with its media and relation ids
func (r *VideoRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	db := conn(ctx, r.db)

	var model VideoModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.VideoNotFound(id)
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	var medias []MediaModel
	if err := db.Where("video_id = ?", id).Find(&medias).Error; err != nil {
		return nil, fmt.Errorf("get video medias: %w", err)
	}

	var categories, genres, castMembers []uuid.UUID
	if err := db.Model(&VideoCategoryModel{}).Where("video_id = ?", id).Pluck("category_id", &categories).Error; err != nil {
		return nil, fmt.Errorf("get video categories: %w", err)
	}
	if err := db.Model(&VideoGenreModel{}).Where("video_id = ?", id).Pluck("genre_id", &genres).Error; err != nil {
		return nil, fmt.Errorf("get video genres: %w", err)
	}
	if err := db.Model(&VideoCastMemberModel{}).Where("video_id = ?", id).Pluck("cast_member_id", &castMembers).Error; err != nil {
		return nil, fmt.Errorf("get video cast members: %w", err)
	}

	return model.ToDomain(medias, categories, genres, castMembers), nil
}

func (r *VideoRepository) missingOrStale(tx *gorm.DB, video *catalog.Video) error {
	var count int64
	if err := tx.Model(&VideoModel{}).Where("id = ?", video.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check video: %w", err)
	}
	if count == 0 {
		return catalog.VideoNotFound(video.ID)
	}
	return catalog.VersionConflict(video.ID, video.Version)
}

func (r *VideoRepository) deleteChildren(tx *gorm.DB, videoID uuid.UUID) error {
	for _, model := range []interface{}{
		&MediaModel{},
		&VideoCategoryModel{},
		&VideoGenreModel{},
		&VideoCastMemberModel{},
	} {
		if err := tx.Where("video_id = ?", videoID).Delete(model).Error; err != nil {
			return fmt.Errorf("delete video children: %w", err)
		}
	}
	return nil
}

func (r *VideoRepository) writeChildren(tx *gorm.DB, video *catalog.Video) error {
	var medias []MediaModel
	if video.Media != nil {
		medias = append(medias, mediaModel(video.ID, catalog.SlotMedia, video.Media))
	}
	if video.Trailer != nil {
		medias = append(medias, mediaModel(video.ID, catalog.SlotTrailer, video.Trailer))
	}
	if len(medias) > 0 {
		if err := tx.Create(&medias).Error; err != nil {
			return fmt.Errorf("insert video medias: %w", err)
		}
	}

	if ids := video.Categories(); len(ids) > 0 {
		rows := make([]VideoCategoryModel, len(ids))
		for i, id := range ids {
			rows[i] = VideoCategoryModel{VideoID: video.ID, CategoryID: id}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert video categories: %w", err)
		}
	}

	if ids := video.Genres(); len(ids) > 0 {
		rows := make([]VideoGenreModel, len(ids))
		for i, id := range ids {
			rows[i] = VideoGenreModel{VideoID: video.ID, GenreID: id}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert video genres: %w", err)
		}
	}

	if ids := video.CastMembers(); len(ids) > 0 {
		rows := make([]VideoCastMemberModel, len(ids))
		for i, id := range ids {
			rows[i] = VideoCastMemberModel{VideoID: video.ID, CastMemberID: id}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert video cast members: %w", err)
		}
	}

	return nil
}
