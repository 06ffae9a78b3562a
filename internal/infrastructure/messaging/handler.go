package messaging

import (
	"context"

	"go.uber.org/zap"

	app "github.com/narwhalmedia/catalog/internal/application/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// Outcome tells a transport how to settle a delivery
type Outcome int

const (
	// Ack removes the message
	Ack Outcome = iota
	// NackDiscard rejects the message without redelivery
	NackDiscard
	// NackRequeue rejects the message and asks for redelivery
	NackRequeue
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case NackDiscard:
		return "nack_discard"
	case NackRequeue:
		return "nack_requeue"
	default:
		return "unknown"
	}
}

// MediaStatusUpdater applies encoder results
type MediaStatusUpdater interface {
	UpdateMediaStatus(ctx context.Context, cmd app.UpdateMediaStatusCommand) error
}

// OutcomeRecorder counts settled deliveries
type OutcomeRecorder interface {
	EncodingResult(outcome string)
}

// ResultHandler turns an encoder response into a media status update
type ResultHandler struct {
	service  MediaStatusUpdater
	recorder OutcomeRecorder
	logger   *zap.Logger
}

// NewResultHandler creates a ResultHandler
func NewResultHandler(service MediaStatusUpdater, recorder OutcomeRecorder, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{
		service:  service,
		recorder: recorder,
		logger:   logger.Named("encoding_results"),
	}
}

// Handle processes one delivery body. Business failures are discarded since
// redelivery cannot fix them; anything else is requeued.
func (h *ResultHandler) Handle(ctx context.Context, body []byte) (Outcome, error) {
	outcome, err := h.handle(ctx, body)
	h.recorder.EncodingResult(outcome.String())
	return outcome, err
}

func (h *ResultHandler) handle(ctx context.Context, body []byte) (Outcome, error) {
	result, err := ParseEncodingResult(body)
	if err != nil {
		return NackDiscard, err
	}

	if result.EncoderError != "" {
		h.logger.Warn("encoder reported a failure",
			zap.String("video_id", result.VideoID.String()),
			zap.String("error", result.EncoderError),
		)
	}

	err = h.service.UpdateMediaStatus(ctx, app.UpdateMediaStatusCommand{
		VideoID:       result.VideoID,
		Status:        result.Status,
		EncodedFolder: result.EncodedFolder,
	})
	switch {
	case err == nil:
		return Ack, nil
	case apperrors.IsBusiness(err):
		return NackDiscard, err
	default:
		return NackRequeue, err
	}
}

// NopOutcomeRecorder discards outcomes
type NopOutcomeRecorder struct{}

func (NopOutcomeRecorder) EncodingResult(string) {}
