package genre

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// GenreDTO exposes one genre.
type GenreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGenreInput is the payload to create a genre.
type CreateGenreInput struct {
	Name     string
	IsActive *bool
}

// UpdateGenreInput carries optional mutations; nil fields stay untouched.
type UpdateGenreInput struct {
	Name     *string
	IsActive *bool
}

// ListResult is one page of genres.
type ListResult struct {
	Items      []GenreDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type genreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Genre, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Genre, error)
	Update(ctx context.Context, genre *models.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages genre CRUD.
type Service interface {
	Create(ctx context.Context, input CreateGenreInput) (*GenreDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*GenreDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGenreInput) (*GenreDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo genreRepository
	logg *logger.Logger
}

// NewService wires the genre service.
func NewService(repo genreRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("genre repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func newDTO(genre *models.Genre) *GenreDTO {
	return &GenreDTO{
		ID:        genre.ID,
		Name:      genre.Name,
		IsActive:  genre.IsActive,
		CreatedAt: genre.CreatedAt,
		UpdatedAt: genre.UpdatedAt,
	}
}

func (s *service) Create(ctx context.Context, input CreateGenreInput) (*GenreDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	genre := &models.Genre{
		ID:       uuid.New(),
		Name:     input.Name,
		IsActive: true,
	}
	if input.IsActive != nil {
		genre.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating genre")
	}
	return newDTO(genre), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*GenreDTO, error) {
	genre, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDTO(genre), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)
	genres, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing genres")
	}
	result := &ListResult{Items: make([]GenreDTO, 0, len(genres))}
	hasMore := len(genres) > limit
	if hasMore {
		genres = genres[:limit]
	}
	for i := range genres {
		result.Items = append(result.Items, *newDTO(&genres[i]))
	}
	if hasMore {
		last := genres[len(genres)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGenreInput) (*GenreDTO, error) {
	genre, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		genre.Name = *input.Name
	}
	if input.IsActive != nil {
		genre.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating genre")
	}
	return newDTO(genre), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting genre")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Genre, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Genre %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading genre")
	}
	return genre, nil
}
