package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

type stubRepo struct {
	categories map[uuid.UUID]*models.Category
	createErr  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (r *stubRepo) Create(ctx context.Context, category *models.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.categories[category.ID] = category
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *stubRepo) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Category, error) {
	var out []models.Category
	for _, category := range r.categories {
		out = append(out, *category)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubRepo) Update(ctx context.Context, category *models.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func newTestService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestCreateCategory(t *testing.T) {
	svc, repo := newTestService(t)
	dto, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Movies", Description: "All movies"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.ID == uuid.Nil || !dto.IsActive {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if _, ok := repo.categories[dto.ID]; !ok {
		t.Fatal("expected persisted category")
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "  "})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateCategoryPartial(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Movies", Description: "desc"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inactive := false
	dto, err := svc.Update(context.Background(), created.ID, UpdateCategoryInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.IsActive {
		t.Fatal("expected deactivation")
	}
	if dto.Name != "Movies" || dto.Description != "desc" {
		t.Fatal("absent fields must stay untouched")
	}
}

func TestDeleteCategory(t *testing.T) {
	svc, repo := newTestService(t)
	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Movies"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.categories[created.ID]; ok {
		t.Fatal("expected category removed")
	}
	if err := svc.Delete(context.Background(), created.ID); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
