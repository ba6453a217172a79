package genre

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/internal/repo"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// Repository persists genres.
type Repository struct {
	repo.Base
}

// NewRepository constructs the gorm-backed genre repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, genre *models.Genre) error {
	return r.DB(ctx).Create(genre).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	var genre models.Genre
	if err := r.DB(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindByIDArray returns only the genres whose IDs exist.
func (r *Repository) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []models.Genre
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Genre, error) {
	query := r.DB(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var genres []models.Genre
	if err := query.Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *Repository) Update(ctx context.Context, genre *models.Genre) error {
	return r.DB(ctx).Model(genre).
		Select("name", "is_active").
		Updates(*genre).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Genre{}, "id = ?", id).Error
}
