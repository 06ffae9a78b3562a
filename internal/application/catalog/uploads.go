package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/narwhalmedia/catalog/internal/domain/catalog"
)

type assetUpload struct {
	slot catalog.AssetSlot
	file *FileInput
}

// uploadSession tracks the files one invocation stored, so compensation
// deletes exactly those and nothing that was persisted before.
type uploadSession struct {
	store     AssetStore
	persisted []string
	created   []string
	replaced  []string
}

func newUploadSession(store AssetStore, video *catalog.Video) *uploadSession {
	return &uploadSession{store: store, persisted: video.AssetPaths()}
}

// apply uploads every provided file into its slot on video, in order.
func (u *uploadSession) apply(ctx context.Context, video *catalog.Video, uploads ...assetUpload) error {
	for _, up := range uploads {
		if up.file == nil {
			continue
		}
		name := video.AssetName(up.slot, up.file.Extension)
		path, err := u.store.Upload(ctx, name, up.file.Content, up.file.ContentType)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", up.slot, err)
		}
		if !slices.Contains(u.persisted, path) {
			u.created = append(u.created, path)
		}

		obsolete, err := video.ReplaceAsset(up.slot, path)
		if err != nil {
			return err
		}
		u.replaced = append(u.replaced, obsolete...)
	}
	return nil
}

// rollback deletes every file this session created.
func (u *uploadSession) rollback(ctx context.Context) error {
	var errs []error
	for _, path := range u.created {
		if err := u.store.Delete(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("deleting %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
