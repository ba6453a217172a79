package video

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

func (s *service) loadVideo(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Video %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading video")
	}
	return video, nil
}

// GetVideo returns the full aggregate state.
func (s *service) GetVideo(ctx context.Context, id uuid.UUID) (*VideoDTO, error) {
	video, err := s.loadVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewVideoDTO(video), nil
}

// ListVideos returns a cursor-paginated page of videos, newest first.
func (s *service) ListVideos(ctx context.Context, params pagination.Params) (*VideoListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	videos, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing videos")
	}

	result := &VideoListResult{Items: make([]VideoDTO, 0, len(videos))}
	hasMore := len(videos) > limit
	if hasMore {
		videos = videos[:limit]
	}
	for i := range videos {
		result.Items = append(result.Items, *NewVideoDTO(&videos[i]))
	}
	if hasMore {
		last := videos[len(videos)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

// DeleteVideo soft-deletes the aggregate. Stored objects are not reclaimed.
func (s *service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadVideo(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting video")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithVideoID(ctx, id.String()), "video deleted")
	}
	return nil
}
