package video

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

// CreateVideo validates the payload, persists the aggregate with its join
// rows, stores supplied media files in slot order, and dispatches stored-media
// events for trailer and video files. Any failure rolls the transaction back
// and best-effort deletes every object stored during this call.
func (s *service) CreateVideo(ctx context.Context, input CreateVideoInput) (*VideoDTO, error) {
	start := s.now()
	defer func() { s.metrics.ObserveOperation("create_video", time.Since(start)) }()

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, input.GenreIDs)
	if err != nil {
		return nil, err
	}
	castMembers, err := s.resolveCastMembers(ctx, input.CastMemberIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	video := &models.Video{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		YearLaunched: input.YearLaunched,
		Opened:       input.Opened,
		Rating:       input.Rating,
		Duration:     input.Duration,
		CreatedAt:    now,
		UpdatedAt:    now,
		Categories:   categories,
		Genres:       genres,
		CastMembers:  castMembers,
	}

	ctx = s.logg.WithVideoID(ctx, video.ID.String())

	var storedPaths []string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, video); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting video")
		}
		for _, kind := range enums.VideoMediaKindsOrdered {
			payload := input.Media.payloadFor(kind)
			if payload == nil {
				continue
			}
			storedPath, err := s.storeSlot(ctx, video.ID, kind, *payload)
			if err != nil {
				return err
			}
			storedPaths = append(storedPaths, storedPath)
			video.SetMedia(newMediaRow(video.ID, kind, storedPath))
			if err := s.repo.UpdateMedia(ctx, tx, video, []enums.VideoMediaKind{kind}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting video media")
			}
			if err := s.dispatchStoredEvent(ctx, video.ID, kind, storedPath); err != nil {
				return err
			}
		}
		return s.runBeforeCommit(ctx)
	})
	if err != nil {
		s.metrics.IncRollback("create_video")
		s.cleanupStoredFiles(ctx, storedPaths)
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, "video created")
	}
	return NewVideoDTO(video), nil
}

func validateCreateInput(input CreateVideoInput) error {
	if err := validateTitle(input.Title); err != nil {
		return err
	}
	if err := validateDescription(input.Description); err != nil {
		return err
	}
	if err := validateYearLaunched(input.YearLaunched); err != nil {
		return err
	}
	if err := validateDuration(input.Duration); err != nil {
		return err
	}
	if !input.Rating.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid rating %q", input.Rating)
	}
	return nil
}
