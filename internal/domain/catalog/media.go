package catalog

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// MediaStatus is the encoding state of a media file
type MediaStatus string

const (
	MediaStatusPending    MediaStatus = "PENDING"
	MediaStatusProcessing MediaStatus = "PROCESSING"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
	MediaStatusError      MediaStatus = "ERROR"
)

// allowedFrom lists the states each target status may be entered from.
// Re-entering the current state is allowed so redelivered results are
// idempotent; a finished encode never moves to Error and vice versa.
var allowedFrom = map[MediaStatus][]MediaStatus{
	MediaStatusProcessing: {MediaStatusPending, MediaStatusProcessing},
	MediaStatusCompleted:  {MediaStatusPending, MediaStatusProcessing, MediaStatusCompleted},
	MediaStatusError:      {MediaStatusPending, MediaStatusProcessing, MediaStatusError},
}

// Media is a video or trailer file and its encoding progress
type Media struct {
	ID          uuid.UUID   `json:"id"`
	FilePath    string      `json:"file_path"`
	EncodedPath string      `json:"encoded_path"`
	Status      MediaStatus `json:"status"`
}

// NewMedia creates a pending media entry for an uploaded file
func NewMedia(filePath string) *Media {
	return &Media{
		ID:       uuid.New(),
		FilePath: filePath,
		Status:   MediaStatusPending,
	}
}

// UpdateSentToEncode marks the media as being processed by the encoder
func (m *Media) UpdateSentToEncode() error {
	return m.transition(MediaStatusProcessing)
}

// UpdateAsEncoded marks the media as successfully encoded
func (m *Media) UpdateAsEncoded(encodedPath string) error {
	if err := m.transition(MediaStatusCompleted); err != nil {
		return err
	}
	m.EncodedPath = encodedPath
	return nil
}

// UpdateAsEncodingError marks the media as failed
func (m *Media) UpdateAsEncodingError() error {
	return m.transition(MediaStatusError)
}

func (m *Media) transition(to MediaStatus) error {
	for _, from := range allowedFrom[to] {
		if m.Status == from {
			m.Status = to
			return nil
		}
	}
	return apperrors.Wrap(
		apperrors.ErrorTypeBadRequest,
		fmt.Sprintf("media %s cannot move from %s to %s", m.ID, m.Status, to),
		ErrInvalidMediaTransition,
	)
}
