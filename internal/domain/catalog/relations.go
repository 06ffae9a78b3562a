package catalog

import (
	"fmt"
	"strings"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// CastMemberType distinguishes directors from actors
type CastMemberType int

const (
	CastMemberDirector CastMemberType = 1
	CastMemberActor    CastMemberType = 2
)

// Category groups videos
type Category struct {
	BaseAggregate
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// NewCategory creates a category
func NewCategory(name, description string, isActive bool) (*Category, error) {
	c := &Category{BaseAggregate: NewBaseAggregate(), Name: name, Description: description, IsActive: isActive}
	if err := requireName(c.Name); err != nil {
		return nil, err
	}
	return c, nil
}

// Genre classifies videos
type Genre struct {
	BaseAggregate
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// NewGenre creates a genre
func NewGenre(name string, isActive bool) (*Genre, error) {
	g := &Genre{BaseAggregate: NewBaseAggregate(), Name: name, IsActive: isActive}
	if err := requireName(g.Name); err != nil {
		return nil, err
	}
	return g, nil
}

// CastMember is a person credited on a video
type CastMember struct {
	BaseAggregate
	Name string         `json:"name"`
	Type CastMemberType `json:"type"`
}

// NewCastMember creates a cast member
func NewCastMember(name string, memberType CastMemberType) (*CastMember, error) {
	m := &CastMember{BaseAggregate: NewBaseAggregate(), Name: name, Type: memberType}
	if err := requireName(m.Name); err != nil {
		return nil, err
	}
	if memberType != CastMemberDirector && memberType != CastMemberActor {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "type",
			Message: fmt.Sprintf("%d is not a valid cast member type", memberType),
		})
	}
	return m, nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	if len(name) > maxTitleLength {
		return apperrors.NewValidationError(apperrors.FieldError{Field: "name", Message: "name must have at most 255 characters"})
	}
	return nil
}
