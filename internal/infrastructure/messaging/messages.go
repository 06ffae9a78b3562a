// Package messaging holds the wire messages exchanged with the external
// encoder and the transport-neutral publisher and result handler.
package messaging

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// json is the codec for every message exchanged with the encoder
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedMessage marks an inbound payload that can never be processed
var ErrMalformedMessage = apperrors.BadRequest("malformed encoding result")

// VideoUploadedMessage is sent to the encoder for every new primary media file
type VideoUploadedMessage struct {
	ResourceID string `json:"resource_id"`
	FilePath   string `json:"file_path"`
	OccurredOn string `json:"occurred_on"`
}

// NewVideoUploadedMessage converts the domain event into its wire form
func NewVideoUploadedMessage(event *catalog.VideoUploaded) VideoUploadedMessage {
	return VideoUploadedMessage{
		ResourceID: event.AggregateID().String(),
		FilePath:   event.FilePath,
		OccurredOn: event.OccurredOn().UTC().Format(time.RFC3339),
	}
}

type encodedVideo struct {
	ResourceID         string `json:"resource_id"`
	EncodedVideoFolder string `json:"encoded_video_folder"`
}

type failedMessage struct {
	ResourceID string `json:"resource_id"`
}

type encodingResultPayload struct {
	Video   *encodedVideo  `json:"video"`
	Message *failedMessage `json:"message"`
	Error   string         `json:"error"`
}

// EncodingResult is a decoded encoder response
type EncodingResult struct {
	VideoID       uuid.UUID
	Status        catalog.MediaStatus
	EncodedFolder string
	// EncoderError is the encoder's message for failed results
	EncoderError string
}

// ParseEncodingResult decodes body. A "video" object is a completed encode,
// a "message" object with "error" is a failed one. Anything else is
// ErrMalformedMessage.
func ParseEncodingResult(body []byte) (EncodingResult, error) {
	var payload encodingResultPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return EncodingResult{}, malformed("invalid json: %v", err)
	}

	switch {
	case payload.Video != nil && payload.Message != nil:
		return EncodingResult{}, malformed("both video and message are set")
	case payload.Video != nil:
		id, err := parseResourceID(payload.Video.ResourceID)
		if err != nil {
			return EncodingResult{}, err
		}
		return EncodingResult{
			VideoID:       id,
			Status:        catalog.MediaStatusCompleted,
			EncodedFolder: payload.Video.EncodedVideoFolder,
		}, nil
	case payload.Message != nil:
		id, err := parseResourceID(payload.Message.ResourceID)
		if err != nil {
			return EncodingResult{}, err
		}
		return EncodingResult{
			VideoID:      id,
			Status:       catalog.MediaStatusError,
			EncoderError: payload.Error,
		}, nil
	default:
		return EncodingResult{}, malformed("neither video nor message is set")
	}
}

func parseResourceID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, malformed("resource_id %q is not a uuid", raw)
	}
	return id, nil
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedMessage, fmt.Sprintf(format, args...))
}

// IsMalformed reports whether err came from ParseEncodingResult
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedMessage)
}
