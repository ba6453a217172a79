package castmember

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/internal/repo"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// Repository persists cast members.
type Repository struct {
	repo.Base
}

// NewRepository constructs the gorm-backed cast member repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, member *models.CastMember) error {
	return r.DB(ctx).Create(member).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CastMember, error) {
	var member models.CastMember
	if err := r.DB(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDArray returns only the cast members whose IDs exist.
func (r *Repository) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.CastMember, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var members []models.CastMember
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.CastMember, error) {
	query := r.DB(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var members []models.CastMember
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) Update(ctx context.Context, member *models.CastMember) error {
	return r.DB(ctx).Model(member).
		Select("name", "type").
		Updates(*member).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.CastMember{}, "id = ?", id).Error
}
