package category

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/internal/repo"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// Repository persists categories.
type Repository struct {
	repo.Base
}

// NewRepository constructs the gorm-backed category repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Create(category).Error
}

// FindByID loads one category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDArray returns only the categories whose IDs exist.
func (r *Repository) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// List returns up to limit categories newest first, resuming after cursor.
func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Category, error) {
	query := r.DB(ctx).Order("created_at DESC, id DESC").Limit(limit)
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update persists the mutable columns.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Model(category).
		Select("name", "description", "is_active").
		Updates(*category).Error
}

// Delete soft-deletes the category.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Category{}, "id = ?", id).Error
}
