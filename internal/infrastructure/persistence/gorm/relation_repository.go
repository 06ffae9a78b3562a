package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// insertError reports a unique-key violation on insert as a Conflict.
func insertError(err error, what string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if apperrors.IsDuplicateError(err) {
		return apperrors.Wrap(apperrors.ErrorTypeConflict, fmt.Sprintf("%s %s already exists", what, id), err)
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

// listExistingIDs returns the subset of ids present in model's table.
func listExistingIDs(ctx context.Context, db *gorm.DB, model interface{}, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uuid.UUID
	if err := conn(ctx, db).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("list existing ids: %w", err)
	}
	return found, nil
}

// CategoryRepository implements catalog.CategoryRepository
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new GORM category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Insert stores a category
func (r *CategoryRepository) Insert(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{
		BaseModel:   BaseModel{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
	return insertError(conn(ctx, r.db).Create(model).Error, "category", c.ID)
}

// Get loads a category
func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model CategoryModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.CategoryNotFound(id)
		}
		return nil, err
	}
	return &catalog.Category{
		BaseAggregate: catalog.BaseAggregate{ID: model.ID, Version: 1, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt},
		Name:          model.Name,
		Description:   model.Description,
		IsActive:      model.IsActive,
	}, nil
}

// ListExistingIDs returns which of ids are stored categories
func (r *CategoryRepository) ListExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return listExistingIDs(ctx, r.db, &CategoryModel{}, ids)
}

// GenreRepository implements catalog.GenreRepository
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new GORM genre repository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Insert stores a genre
func (r *GenreRepository) Insert(ctx context.Context, g *catalog.Genre) error {
	model := &GenreModel{
		BaseModel: BaseModel{ID: g.ID, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt},
		Name:      g.Name,
		IsActive:  g.IsActive,
	}
	return insertError(conn(ctx, r.db).Create(model).Error, "genre", g.ID)
}

// Get loads a genre
func (r *GenreRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	var model GenreModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.GenreNotFound(id)
		}
		return nil, err
	}
	return &catalog.Genre{
		BaseAggregate: catalog.BaseAggregate{ID: model.ID, Version: 1, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt},
		Name:          model.Name,
		IsActive:      model.IsActive,
	}, nil
}

// ListExistingIDs returns which of ids are stored genres
func (r *GenreRepository) ListExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return listExistingIDs(ctx, r.db, &GenreModel{}, ids)
}

// CastMemberRepository implements catalog.CastMemberRepository
type CastMemberRepository struct {
	db *gorm.DB
}

// NewCastMemberRepository creates a new GORM cast member repository
func NewCastMemberRepository(db *gorm.DB) *CastMemberRepository {
	return &CastMemberRepository{db: db}
}

// Insert stores a cast member
func (r *CastMemberRepository) Insert(ctx context.Context, m *catalog.CastMember) error {
	model := &CastMemberModel{
		BaseModel: BaseModel{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Name:      m.Name,
		Type:      int(m.Type),
	}
	return insertError(conn(ctx, r.db).Create(model).Error, "cast member", m.ID)
}

// Get loads a cast member
func (r *CastMemberRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.CastMember, error) {
	var model CastMemberModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.CastMemberNotFound(id)
		}
		return nil, err
	}
	return &catalog.CastMember{
		BaseAggregate: catalog.BaseAggregate{ID: model.ID, Version: 1, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt},
		Name:          model.Name,
		Type:          catalog.CastMemberType(model.Type),
	}, nil
}

// ListExistingIDs returns which of ids are stored cast members
func (r *CastMemberRepository) ListExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return listExistingIDs(ctx, r.db, &CastMemberModel{}, ids)
}
