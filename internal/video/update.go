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

// UpdateVideo applies a partial mutation to the aggregate. Absent fields stay
// untouched, supplied relationship sets fully replace the current ones, and
// media slots follow the tri-state protocol. UpdatedAt only advances when
// something effectively changed; a no-op call leaves the row as it was.
func (s *service) UpdateVideo(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*VideoDTO, error) {
	start := s.now()
	defer func() { s.metrics.ObserveOperation("update_video", time.Since(start)) }()

	ctx = s.logg.WithVideoID(ctx, id.String())

	video, err := s.loadVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	changed, replace, err := s.applyUpdate(ctx, video, input)
	if err != nil {
		return nil, err
	}

	touched := touchedSlots(video, input.Media)
	if !changed && len(touched) == 0 {
		return NewVideoDTO(video), nil
	}
	video.UpdatedAt = s.now()

	var storedPaths []string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, video, replace); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating video")
		}
		for _, kind := range touched {
			update := input.Media.updateFor(kind)
			if prior := video.MediaFor(kind); prior != nil {
				if err := s.deleteSlotObject(ctx, kind, prior.FilePath); err != nil {
					return err
				}
				video.RemoveMedia(kind)
				if err := s.repo.UpdateMedia(ctx, tx, video, []enums.VideoMediaKind{kind}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing video media")
				}
			}
			if update.File == nil {
				continue
			}
			storedPath, err := s.storeSlot(ctx, video.ID, kind, *update.File)
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
		s.metrics.IncRollback("update_video")
		s.cleanupStoredFiles(ctx, storedPaths)
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, "video updated")
	}
	return NewVideoDTO(video), nil
}

// applyUpdate mutates the loaded aggregate in memory and reports whether any
// scalar or relationship effectively changed.
func (s *service) applyUpdate(ctx context.Context, video *models.Video, input UpdateVideoInput) (bool, replaceSets, error) {
	var replace replaceSets
	changed := false

	if input.Title != nil && *input.Title != video.Title {
		video.Title = *input.Title
		changed = true
	}
	if input.Description != nil && *input.Description != video.Description {
		video.Description = *input.Description
		changed = true
	}
	if input.YearLaunched != nil && *input.YearLaunched != video.YearLaunched {
		video.YearLaunched = *input.YearLaunched
		changed = true
	}
	if input.Duration != nil && *input.Duration != video.Duration {
		video.Duration = *input.Duration
		changed = true
	}
	if input.Opened != nil && *input.Opened != video.Opened {
		video.Opened = *input.Opened
		changed = true
	}
	if input.Rating != nil && *input.Rating != video.Rating {
		video.Rating = *input.Rating
		changed = true
	}

	if input.CategoryIDs != nil {
		categories, err := s.resolveCategories(ctx, *input.CategoryIDs)
		if err != nil {
			return false, replace, err
		}
		if !sameIDSet(video.CategoryIDs(), *input.CategoryIDs) {
			video.Categories = categories
			replace.Categories = true
			changed = true
		}
	}
	if input.GenreIDs != nil {
		genres, err := s.resolveGenres(ctx, *input.GenreIDs)
		if err != nil {
			return false, replace, err
		}
		if !sameIDSet(video.GenreIDs(), *input.GenreIDs) {
			video.Genres = genres
			replace.Genres = true
			changed = true
		}
	}
	if input.CastMemberIDs != nil {
		castMembers, err := s.resolveCastMembers(ctx, *input.CastMemberIDs)
		if err != nil {
			return false, replace, err
		}
		if !sameIDSet(video.CastMemberIDs(), *input.CastMemberIDs) {
			video.CastMembers = castMembers
			replace.CastMembers = true
			changed = true
		}
	}

	return changed, replace, nil
}

// touchedSlots returns the slots the mutation actually affects, in slot order.
// An explicit-empty on an already unset slot is a no-op and is skipped.
func touchedSlots(video *models.Video, updates MediaUpdates) []enums.VideoMediaKind {
	var touched []enums.VideoMediaKind
	for _, kind := range enums.VideoMediaKindsOrdered {
		update := updates.updateFor(kind)
		if update == nil {
			continue
		}
		if update.File == nil && video.MediaFor(kind) == nil {
			continue
		}
		touched = append(touched, kind)
	}
	return touched
}

func sameIDSet(current, requested []uuid.UUID) bool {
	requested = dedupeIDs(requested)
	if len(current) != len(requested) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		set[id] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func validateUpdateInput(input UpdateVideoInput) error {
	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return err
		}
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return err
		}
	}
	if input.YearLaunched != nil {
		if err := validateYearLaunched(*input.YearLaunched); err != nil {
			return err
		}
	}
	if input.Duration != nil {
		if err := validateDuration(*input.Duration); err != nil {
			return err
		}
	}
	if input.Rating != nil && !input.Rating.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid rating %q", *input.Rating)
	}
	return nil
}
