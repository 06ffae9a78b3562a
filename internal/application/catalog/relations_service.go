package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

// RelationsService creates and reads the entities videos refer to
type RelationsService struct {
	categories  catalog.CategoryRepository
	genres      catalog.GenreRepository
	castMembers catalog.CastMemberRepository
}

// NewRelationsService creates a new relations service
func NewRelationsService(
	categories catalog.CategoryRepository,
	genres catalog.GenreRepository,
	castMembers catalog.CastMemberRepository,
) *RelationsService {
	return &RelationsService{
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
	}
}

// CreateCategory creates a category
func (s *RelationsService) CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (*catalog.Category, error) {
	category, err := catalog.NewCategory(cmd.Name, cmd.Description, cmd.IsActive)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}
	return category, nil
}

// GetCategory loads a category
func (s *RelationsService) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.categories.Get(ctx, id)
}

// CreateGenre creates a genre
func (s *RelationsService) CreateGenre(ctx context.Context, cmd CreateGenreCommand) (*catalog.Genre, error) {
	genre, err := catalog.NewGenre(cmd.Name, cmd.IsActive)
	if err != nil {
		return nil, err
	}
	if err := s.genres.Insert(ctx, genre); err != nil {
		return nil, fmt.Errorf("saving genre: %w", err)
	}
	return genre, nil
}

// GetGenre loads a genre
func (s *RelationsService) GetGenre(ctx context.Context, id uuid.UUID) (*catalog.Genre, error) {
	return s.genres.Get(ctx, id)
}

// CreateCastMember creates a cast member
func (s *RelationsService) CreateCastMember(ctx context.Context, cmd CreateCastMemberCommand) (*catalog.CastMember, error) {
	member, err := catalog.NewCastMember(cmd.Name, cmd.Type)
	if err != nil {
		return nil, err
	}
	if err := s.castMembers.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("saving cast member: %w", err)
	}
	return member, nil
}

// GetCastMember loads a cast member
func (s *RelationsService) GetCastMember(ctx context.Context, id uuid.UUID) (*catalog.CastMember, error) {
	return s.castMembers.Get(ctx, id)
}
