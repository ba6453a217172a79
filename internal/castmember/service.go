package castmember

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// CastMemberDTO exposes one cast member.
type CastMemberDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCastMemberInput is the payload to create a cast member.
type CreateCastMemberInput struct {
	Name string
	Type enums.CastMemberType
}

// UpdateCastMemberInput carries optional mutations; nil fields stay untouched.
type UpdateCastMemberInput struct {
	Name *string
	Type *enums.CastMemberType
}

// ListResult is one page of cast members.
type ListResult struct {
	Items      []CastMemberDTO `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type castMemberRepository interface {
	Create(ctx context.Context, member *models.CastMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CastMember, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.CastMember, error)
	Update(ctx context.Context, member *models.CastMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages cast member CRUD.
type Service interface {
	Create(ctx context.Context, input CreateCastMemberInput) (*CastMemberDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CastMemberDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCastMemberInput) (*CastMemberDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo castMemberRepository
	logg *logger.Logger
}

// NewService wires the cast member service.
func NewService(repo castMemberRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("cast member repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func newDTO(member *models.CastMember) *CastMemberDTO {
	return &CastMemberDTO{
		ID:        member.ID,
		Name:      member.Name,
		Type:      string(member.Type),
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

func (s *service) Create(ctx context.Context, input CreateCastMemberInput) (*CastMemberDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid cast member type %q", input.Type)
	}
	member := &models.CastMember{
		ID:   uuid.New(),
		Name: input.Name,
		Type: input.Type,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating cast member")
	}
	return newDTO(member), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CastMemberDTO, error) {
	member, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDTO(member), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)
	members, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing cast members")
	}
	result := &ListResult{Items: make([]CastMemberDTO, 0, len(members))}
	hasMore := len(members) > limit
	if hasMore {
		members = members[:limit]
	}
	for i := range members {
		result.Items = append(result.Items, *newDTO(&members[i]))
	}
	if hasMore {
		last := members[len(members)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCastMemberInput) (*CastMemberDTO, error) {
	member, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		member.Name = *input.Name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid cast member type %q", *input.Type)
		}
		member.Type = *input.Type
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating cast member")
	}
	return newDTO(member), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cast member")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.CastMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Cast member %s not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cast member")
	}
	return member, nil
}
