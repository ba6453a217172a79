package video

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

// sanitizeFileName strips path separators and whitespace so uploads cannot
// escape their slot prefix.
func sanitizeFileName(name string) string {
	name = path.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return name
}

func buildObjectKey(videoID uuid.UUID, kind enums.VideoMediaKind, fileName string) string {
	return fmt.Sprintf("videos/%s/%s/%s", videoID, kind, sanitizeFileName(fileName))
}

func newMediaRow(videoID uuid.UUID, kind enums.VideoMediaKind, filePath string) models.VideoMedia {
	status := enums.MediaStatusComplete
	if kind.HasLifecycle() {
		status = enums.MediaStatusPending
	}
	return models.VideoMedia{
		ID:       uuid.New(),
		VideoID:  videoID,
		Kind:     kind,
		FilePath: filePath,
		Type:     kind.MediaType(),
		Status:   status,
	}
}

// storeSlot uploads the payload for one slot and returns the stored path.
func (s *service) storeSlot(ctx context.Context, videoID uuid.UUID, kind enums.VideoMediaKind, payload FilePayload) (string, error) {
	key := buildObjectKey(videoID, kind, payload.Name)
	storedPath, err := s.storage.Store(ctx, key, payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("storing %s file", kind))
	}
	s.metrics.IncMediaStored(string(kind))
	return storedPath, nil
}

// deleteSlotObject removes a previously stored object. A missing object is
// not an error; a storage failure is.
func (s *service) deleteSlotObject(ctx context.Context, kind enums.VideoMediaKind, storedPath string) error {
	if _, err := s.storage.Delete(ctx, storedPath); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("deleting %s file", kind))
	}
	s.metrics.IncMediaDeleted(string(kind))
	return nil
}

func (s *service) dispatchStoredEvent(ctx context.Context, videoID uuid.UUID, kind enums.VideoMediaKind, storedPath string) error {
	if !kind.HasLifecycle() {
		return nil
	}
	event := MediaStoredEvent{
		VideoID:  videoID,
		Kind:     string(kind),
		FilePath: storedPath,
		StoredAt: s.now(),
	}
	if err := s.notifier.Dispatch(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("dispatching stored-media event for %s", kind))
	}
	s.metrics.IncEventEmitted(string(kind))
	return nil
}

// cleanupStoredFiles best-effort deletes objects stored during a failed
// invocation. Failures are aggregated and logged; they never reach the caller.
func (s *service) cleanupStoredFiles(ctx context.Context, storedPaths []string) {
	if len(storedPaths) == 0 {
		return
	}
	cleanupCtx := context.WithoutCancel(ctx)
	var errs error
	for _, storedPath := range storedPaths {
		if _, err := s.storage.Delete(cleanupCtx, storedPath); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", storedPath, err))
		}
	}
	if errs != nil && s.logg != nil {
		s.logg.Error(ctx, "cleanup after rollback left orphaned files", errs)
	}
}
