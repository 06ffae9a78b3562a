package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/narwhalmedia/catalog/pkg/errors"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorType
	}{
		{"not found", errors.NotFound("video"), errors.ErrorTypeNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", errors.NotFound("video")), errors.ErrorTypeNotFound},
		{"validation", errors.NewValidationError(errors.FieldError{Field: "title", Message: "title is required"}), errors.ErrorTypeValidation},
		{"related", &errors.RelatedAggregateError{Kind: "categories"}, errors.ErrorTypeRelatedAggregate},
		{"conflict", errors.Conflict("stale"), errors.ErrorTypeConflict},
		{"plain", stderrors.New("boom"), errors.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.TypeOf(tt.err))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, errors.IsBusiness(errors.NotFound("video")))
	assert.True(t, errors.IsBusiness(errors.NewValidationError()))
	assert.True(t, errors.IsBusiness(&errors.RelatedAggregateError{Kind: "genres"}))
	assert.False(t, errors.IsBusiness(errors.Conflict("stale")))
	assert.False(t, errors.IsBusiness(stderrors.New("connection reset")))
}

func TestCompensationErrorChainsBoth(t *testing.T) {
	cause := errors.NotFound("video")
	cleanup := stderrors.New("delete failed")

	err := errors.WithCleanup(cause, cleanup)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, cleanup)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "delete failed")

	assert.Same(t, cause, errors.WithCleanup(cause, nil))
}

func TestRelatedAggregateErrorMessage(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	err := &errors.RelatedAggregateError{Kind: "categories", MissingIDs: []uuid.UUID{a, b}}

	assert.Equal(t, "categories not found: "+a.String()+", "+b.String(), err.Error())
}

func TestValidationErrorFirst(t *testing.T) {
	err := errors.NewValidationError(
		errors.FieldError{Field: "title", Message: "title is required"},
		errors.FieldError{Field: "description", Message: "description is required"},
	)

	assert.Equal(t, "title is required", err.First())
	assert.Equal(t, "", errors.NewValidationError().First())
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, errors.IsDuplicateError(stderrors.New(`ERROR: duplicate key value violates unique constraint "categories_pkey"`)))
	assert.True(t, errors.IsDuplicateError(stderrors.New("UNIQUE constraint failed: genres.id")))
	assert.False(t, errors.IsDuplicateError(stderrors.New("connection refused")))
	assert.False(t, errors.IsDuplicateError(nil))
}
