package catalog

import (
	"github.com/google/uuid"

	"github.com/narwhalmedia/catalog/internal/domain/events"
)

// KindVideoUploaded tags VideoUploaded events
const KindVideoUploaded events.Kind = "video.uploaded"

// VideoUploaded is raised when a new primary media file is attached to a video
type VideoUploaded struct {
	events.BaseEvent
	FilePath string
}

// NewVideoUploaded creates the event for videoID and the stored file path
func NewVideoUploaded(videoID uuid.UUID, filePath string) *VideoUploaded {
	return &VideoUploaded{
		BaseEvent: events.NewBaseEvent(videoID, KindVideoUploaded),
		FilePath:  filePath,
	}
}
