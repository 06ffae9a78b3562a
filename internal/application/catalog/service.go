package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/internal/domain/events"
	apperrors "github.com/narwhalmedia/catalog/pkg/errors"
)

// Settings holds service-level options
type Settings struct {
	// EncodedVideoFolder is used when an encoder result omits its folder
	EncodedVideoFolder string
}

// ApplicationService orchestrates the video use cases
type ApplicationService struct {
	videos    catalog.VideoRepository
	relations *RelationValidator
	store     AssetStore
	uow       UnitOfWork
	registry  *events.Registry
	recorder  Recorder
	settings  Settings
	logger    *zap.Logger
}

// NewApplicationService creates a new catalog application service
func NewApplicationService(
	videos catalog.VideoRepository,
	relations *RelationValidator,
	store AssetStore,
	uow UnitOfWork,
	registry *events.Registry,
	recorder Recorder,
	settings Settings,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		videos:    videos,
		relations: relations,
		store:     store,
		uow:       uow,
		registry:  registry,
		recorder:  recorder,
		settings:  settings,
		logger:    logger.Named("catalog"),
	}
}

// CreateVideo validates, attaches relations, uploads images and inserts a
// new video. Uploaded images are deleted again if anything after the
// first upload fails.
func (s *ApplicationService) CreateVideo(ctx context.Context, cmd CreateVideoCommand) (*catalog.Video, error) {
	f := cmd.VideoFields
	video := catalog.NewVideo(f.Title, f.Description, f.YearLaunched, f.Duration, f.Opened, f.Published, f.Rating)

	valid, err := video.Finalize()
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, video, &cmd.CategoryIDs, &cmd.GenreIDs, &cmd.CastMemberIDs); err != nil {
		return nil, err
	}

	session := newUploadSession(s.store, video)
	err = session.apply(ctx, video,
		assetUpload{catalog.SlotBanner, cmd.Banner},
		assetUpload{catalog.SlotThumb, cmd.Thumb},
		assetUpload{catalog.SlotThumbHalf, cmd.ThumbHalf},
	)
	if err == nil {
		err = s.inTransaction(ctx, func(ctx context.Context) error {
			return s.videos.Insert(ctx, valid)
		})
	}
	if err != nil {
		return nil, s.compensate(ctx, "create_video", session, err)
	}

	s.logger.Info("video created", zap.String("video_id", video.ID.String()))
	return video, nil
}

// UpdateVideo replaces a video's fields, relations and any provided images.
func (s *ApplicationService) UpdateVideo(ctx context.Context, cmd UpdateVideoCommand) (*catalog.Video, error) {
	video, err := s.videos.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	f := cmd.VideoFields
	video.Update(f.Title, f.Description, f.YearLaunched, f.Duration, f.Opened, f.Published, f.Rating)

	if cmd.CategoryIDs != nil {
		video.RemoveAllCategories()
	}
	if cmd.GenreIDs != nil {
		video.RemoveAllGenres()
	}
	if cmd.CastMemberIDs != nil {
		video.RemoveAllCastMembers()
	}
	if err := s.attachRelations(ctx, video, cmd.CategoryIDs, cmd.GenreIDs, cmd.CastMemberIDs); err != nil {
		return nil, err
	}

	session := newUploadSession(s.store, video)
	err = session.apply(ctx, video,
		assetUpload{catalog.SlotBanner, cmd.Banner},
		assetUpload{catalog.SlotThumb, cmd.Thumb},
		assetUpload{catalog.SlotThumbHalf, cmd.ThumbHalf},
	)
	if err == nil {
		_, err = video.Finalize()
	}
	if err == nil {
		err = s.inTransaction(ctx, func(ctx context.Context) error {
			return s.videos.Update(ctx, video)
		})
	}
	if err != nil {
		return nil, s.compensate(ctx, "update_video", session, err)
	}

	s.deleteBestEffort(ctx, "replaced asset", session.replaced)
	s.logger.Info("video updated", zap.String("video_id", video.ID.String()))
	return video, nil
}

// UploadMedias stores any provided files on an existing video and, when the
// primary media changed, announces it to the encoder after commit.
func (s *ApplicationService) UploadMedias(ctx context.Context, cmd UploadMediasCommand) error {
	video, err := s.videos.Get(ctx, cmd.VideoID)
	if err != nil {
		return err
	}

	session := newUploadSession(s.store, video)
	err = session.apply(ctx, video,
		assetUpload{catalog.SlotBanner, cmd.Banner},
		assetUpload{catalog.SlotThumb, cmd.Thumb},
		assetUpload{catalog.SlotThumbHalf, cmd.ThumbHalf},
		assetUpload{catalog.SlotMedia, cmd.Media},
		assetUpload{catalog.SlotTrailer, cmd.Trailer},
	)
	if err == nil {
		err = s.inTransaction(ctx, func(ctx context.Context) error {
			return s.videos.Update(ctx, video)
		})
	}
	if err != nil {
		return s.compensate(ctx, "upload_medias", session, err)
	}

	s.deleteBestEffort(ctx, "replaced asset", session.replaced)
	s.dispatch(ctx, video.PullEvents())
	return nil
}

// DeleteVideo removes the video and then its stored assets.
func (s *ApplicationService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	video, err := s.videos.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.inTransaction(ctx, func(ctx context.Context) error {
		return s.videos.Delete(ctx, id)
	}); err != nil {
		return err
	}

	s.deleteBestEffort(ctx, "video asset", video.AssetPaths())
	s.logger.Info("video deleted", zap.String("video_id", id.String()))
	return nil
}

// GetVideo loads a video
func (s *ApplicationService) GetVideo(ctx context.Context, id uuid.UUID) (*catalog.Video, error) {
	return s.videos.Get(ctx, id)
}

func (s *ApplicationService) attachRelations(ctx context.Context, video *catalog.Video, categories, genres, castMembers *[]uuid.UUID) error {
	steps := []struct {
		kind RelationKind
		ids  *[]uuid.UUID
		add  func(uuid.UUID)
	}{
		{RelationCategories, categories, video.AddCategory},
		{RelationGenres, genres, video.AddGenre},
		{RelationCastMembers, castMembers, video.AddCastMember},
	}
	for _, step := range steps {
		if step.ids == nil || len(*step.ids) == 0 {
			continue
		}
		if err := s.relations.Attach(ctx, step.kind, *step.ids, step.add); err != nil {
			return err
		}
	}
	return nil
}

func (s *ApplicationService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx.Context()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// compensate deletes the session's uploads and returns cause, chained with
// the cleanup failure if there was one.
func (s *ApplicationService) compensate(ctx context.Context, operation string, session *uploadSession, cause error) error {
	if len(session.created) == 0 {
		return cause
	}

	cleanupErr := session.rollback(context.WithoutCancel(ctx))
	s.recorder.Compensated(operation, cleanupErr != nil)

	if cleanupErr != nil {
		s.logger.Error("compensation failed",
			zap.String("operation", operation),
			zap.Strings("paths", session.created),
			zap.NamedError("cause", cause),
			zap.Error(cleanupErr),
		)
	} else {
		s.logger.Warn("uploaded assets removed after failure",
			zap.String("operation", operation),
			zap.Strings("paths", session.created),
			zap.Error(cause),
		)
	}

	return apperrors.WithCleanup(cause, cleanupErr)
}

func (s *ApplicationService) deleteBestEffort(ctx context.Context, what string, paths []string) {
	ctx = context.WithoutCancel(ctx)
	for _, path := range paths {
		if err := s.store.Delete(ctx, path); err != nil {
			s.logger.Warn("failed to delete "+what, zap.String("path", path), zap.Error(err))
		}
	}
}

// dispatch hands committed events to their handlers. Failures are logged
// and counted; the operation has already succeeded.
func (s *ApplicationService) dispatch(ctx context.Context, pending []events.Event) {
	for _, event := range pending {
		if err := s.registry.Dispatch(ctx, event); err != nil {
			s.recorder.PublishFailed(string(event.Kind()))
			s.logger.Error("event dispatch failed",
				zap.String("event_id", event.ID().String()),
				zap.String("kind", string(event.Kind())),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err),
			)
		}
	}
}
