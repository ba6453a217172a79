package video

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mvcarvalho/flixcatalog-backend/internal/repo"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// Repository persists the video aggregate. Write methods take the transaction
// handle explicitly so the service controls the commit boundary.
type Repository struct {
	repo.Base
}

// NewRepository constructs the gorm-backed video repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.DB(ctx)
}

// Insert creates the video row and its join rows. Related categories, genres
// and cast members must already exist; media rows are persisted separately.
func (r *Repository) Insert(ctx context.Context, tx *gorm.DB, video *models.Video) error {
	return r.conn(ctx, tx).
		Omit("Categories.*", "Genres.*", "CastMembers.*", "Medias").
		Create(video).Error
}

// Update persists the scalar columns and fully replaces the flagged
// relationship sets.
func (r *Repository) Update(ctx context.Context, tx *gorm.DB, video *models.Video, replace replaceSets) error {
	db := r.conn(ctx, tx)

	err := db.Model(&models.Video{ID: video.ID}).
		Select("title", "description", "year_launched", "opened", "rating", "duration", "updated_at").
		Updates(map[string]any{
			"title":         video.Title,
			"description":   video.Description,
			"year_launched": video.YearLaunched,
			"opened":        video.Opened,
			"rating":        video.Rating,
			"duration":      video.Duration,
			"updated_at":    video.UpdatedAt,
		}).Error
	if err != nil {
		return err
	}

	if replace.Categories {
		if err := db.Model(video).Omit("Categories.*").Association("Categories").Replace(&video.Categories); err != nil {
			return err
		}
	}
	if replace.Genres {
		if err := db.Model(video).Omit("Genres.*").Association("Genres").Replace(&video.Genres); err != nil {
			return err
		}
	}
	if replace.CastMembers {
		if err := db.Model(video).Omit("CastMembers.*").Association("CastMembers").Replace(&video.CastMembers); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMedia syncs the rows for the touched slots with the in-memory
// aggregate: present slots are upserted, absent ones deleted.
func (r *Repository) UpdateMedia(ctx context.Context, tx *gorm.DB, video *models.Video, touched []enums.VideoMediaKind) error {
	db := r.conn(ctx, tx)
	for _, kind := range touched {
		if media := video.MediaFor(kind); media != nil {
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "video_id"}, {Name: "kind"}},
				UpdateAll: true,
			}).Create(media).Error
			if err != nil {
				return err
			}
			continue
		}
		err := db.Where("video_id = ? AND kind = ?", video.ID, kind).
			Delete(&models.VideoMedia{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads the aggregate with relationships and media preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	err := r.DB(ctx).
		Preload("Categories").
		Preload("Genres").
		Preload("CastMembers").
		Preload("Medias").
		First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List returns up to limit videos newest first, resuming after cursor.
func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Video, error) {
	query := r.DB(ctx).
		Preload("Categories").
		Preload("Genres").
		Preload("CastMembers").
		Preload("Medias").
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// Delete soft-deletes the video row. Join rows stay in place for restore.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Video{}, "id = ?", id).Error
}
