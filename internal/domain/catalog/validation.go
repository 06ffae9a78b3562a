package catalog

import (
	"unicode/utf8"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 4000
)

// ValidationHandler collects validation failures
type ValidationHandler interface {
	Append(err apperrors.FieldError)
	HasErrors() bool
}

// Notification is a ValidationHandler that keeps every failure in order
type Notification struct {
	errs []apperrors.FieldError
}

// Append records a failure
func (n *Notification) Append(err apperrors.FieldError) {
	n.errs = append(n.errs, err)
}

// HasErrors reports whether anything was recorded
func (n *Notification) HasErrors() bool {
	return len(n.errs) > 0
}

// Errors returns the recorded failures
func (n *Notification) Errors() []apperrors.FieldError {
	return n.errs
}

// Err returns a ValidationError, or nil when nothing was recorded
func (n *Notification) Err() error {
	if !n.HasErrors() {
		return nil
	}
	return apperrors.NewValidationError(n.errs...)
}

// Validate reports every invariant the video violates to handler. It never
// stops at the first failure.
func (v *Video) Validate(handler ValidationHandler) {
	titleLen := utf8.RuneCountInString(v.Title)
	switch {
	case titleLen == 0:
		handler.Append(apperrors.FieldError{Field: "title", Message: "title is required"})
	case titleLen > maxTitleLength:
		handler.Append(apperrors.FieldError{Field: "title", Message: "title must have at most 255 characters"})
	}

	descLen := utf8.RuneCountInString(v.Description)
	switch {
	case descLen == 0:
		handler.Append(apperrors.FieldError{Field: "description", Message: "description is required"})
	case descLen > maxDescriptionLength:
		handler.Append(apperrors.FieldError{Field: "description", Message: "description must have at most 4000 characters"})
	}

	if !v.Rating.IsValid() {
		handler.Append(apperrors.FieldError{Field: "rating", Message: "rating is invalid"})
	}
}

// ValidVideo is a video that passed Validate. Only Finalize creates one.
type ValidVideo struct {
	video *Video
}

// Video returns the validated aggregate
func (v ValidVideo) Video() *Video {
	return v.video
}

// Finalize validates the video and returns it wrapped as a ValidVideo.
func (v *Video) Finalize() (ValidVideo, error) {
	var n Notification
	v.Validate(&n)
	if err := n.Err(); err != nil {
		return ValidVideo{}, err
	}
	return ValidVideo{video: v}, nil
}
