package catalog

import (
	"fmt"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// Rating is the age classification of a video
type Rating string

const (
	RatingER Rating = "ER"
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

var ratings = []Rating{RatingER, RatingL, Rating10, Rating12, Rating14, Rating16, Rating18}

// ParseRating converts s into a Rating
func ParseRating(s string) (Rating, error) {
	for _, r := range ratings {
		if string(r) == s {
			return r, nil
		}
	}
	return "", apperrors.NewValidationError(apperrors.FieldError{
		Field:   "rating",
		Message: fmt.Sprintf("%q is not a valid rating", s),
	})
}

// IsValid reports whether r is one of the known ratings
func (r Rating) IsValid() bool {
	_, err := ParseRating(string(r))
	return err == nil
}
