package catalog

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// UpdateMediaStatus applies an encoder result to the video's primary media
// inside one transaction.
func (s *ApplicationService) UpdateMediaStatus(ctx context.Context, cmd UpdateMediaStatusCommand) error {
	err := s.inTransaction(ctx, func(ctx context.Context) error {
		video, err := s.videos.Get(ctx, cmd.VideoID)
		if err != nil {
			return err
		}

		switch cmd.Status {
		case catalog.MediaStatusCompleted:
			if video.Media == nil {
				return catalog.ErrVideoHasNoMedia
			}
			err = video.MarkMediaEncoded(s.encodedPath(cmd.EncodedFolder, video.Media.FilePath))
		case catalog.MediaStatusError:
			err = video.MarkMediaEncodingError()
		case catalog.MediaStatusProcessing:
			err = video.MarkMediaSentToEncode()
		default:
			err = apperrors.BadRequest(fmt.Sprintf("unsupported media status %q", cmd.Status))
		}
		if err != nil {
			return err
		}

		return s.videos.Update(ctx, video)
	})
	if err != nil {
		return err
	}

	s.logger.Info("media status updated",
		zap.String("video_id", cmd.VideoID.String()),
		zap.String("status", string(cmd.Status)),
	)
	return nil
}

// encodedPath joins the encoder's output folder with the uploaded file's base name.
func (s *ApplicationService) encodedPath(folder, filePath string) string {
	if folder == "" {
		folder = s.settings.EncodedVideoFolder
	}
	return path.Join(folder, path.Base(filePath))
}
