package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// RelationKind names a relation a video can hold
type RelationKind string

const (
	RelationCategories  RelationKind = "categories"
	RelationGenres      RelationKind = "genres"
	RelationCastMembers RelationKind = "cast members"
)

// RelationValidator confirms that related ids exist before they are attached
type RelationValidator struct {
	listers map[RelationKind]catalog.RelatedIDLister
}

// NewRelationValidator creates a validator backed by the three repositories
func NewRelationValidator(
	categories catalog.CategoryRepository,
	genres catalog.GenreRepository,
	castMembers catalog.CastMemberRepository,
) *RelationValidator {
	return &RelationValidator{
		listers: map[RelationKind]catalog.RelatedIDLister{
			RelationCategories:  categories,
			RelationGenres:      genres,
			RelationCastMembers: castMembers,
		},
	}
}

// Validate returns a RelatedAggregateError listing, in request order, every
// id of kind that does not exist.
func (v *RelationValidator) Validate(ctx context.Context, kind RelationKind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	lister, ok := v.listers[kind]
	if !ok {
		return fmt.Errorf("unknown relation kind %q", kind)
	}

	requested := dedupe(ids)
	existing, err := lister.ListExistingIDs(ctx, requested)
	if err != nil {
		return fmt.Errorf("listing %s: %w", kind, err)
	}

	found := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &apperrors.RelatedAggregateError{Kind: string(kind), MissingIDs: missing}
	}
	return nil
}

// Attach validates ids and, only if all exist, passes each to add.
func (v *RelationValidator) Attach(ctx context.Context, kind RelationKind, ids []uuid.UUID, add func(uuid.UUID)) error {
	if err := v.Validate(ctx, kind, ids); err != nil {
		return err
	}
	for _, id := range ids {
		add(id)
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
