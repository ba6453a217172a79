package video

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/metrics"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

// Service orchestrates the video aggregate write path: the database writes,
// the object-store writes, and the stored-media events, as one logical unit.
type Service interface {
	CreateVideo(ctx context.Context, input CreateVideoInput) (*VideoDTO, error)
	UpdateVideo(ctx context.Context, id uuid.UUID, input UpdateVideoInput) (*VideoDTO, error)
	GetVideo(ctx context.Context, id uuid.UUID) (*VideoDTO, error)
	ListVideos(ctx context.Context, params pagination.Params) (*VideoListResult, error)
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	UpdateEncodedPath(ctx context.Context, id uuid.UUID, encodedPath string) (*VideoDTO, error)
}

// replaceSets flags which relationship sets an update should fully replace.
type replaceSets struct {
	Categories  bool
	Genres      bool
	CastMembers bool
}

type videoRepository interface {
	Insert(ctx context.Context, tx *gorm.DB, video *models.Video) error
	Update(ctx context.Context, tx *gorm.DB, video *models.Video, replace replaceSets) error
	UpdateMedia(ctx context.Context, tx *gorm.DB, video *models.Video, touched []enums.VideoMediaKind) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryLookup interface {
	FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
}

type genreLookup interface {
	FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Genre, error)
}

type castMemberLookup interface {
	FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.CastMember, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type fileStorage interface {
	Store(ctx context.Context, key string, payload FilePayload) (string, error)
	Delete(ctx context.Context, key string) (bool, error)
}

type eventNotifier interface {
	Dispatch(ctx context.Context, event MediaStoredEvent) error
}

// ServiceParams lists the collaborators the video service needs.
type ServiceParams struct {
	Repo        videoRepository
	Categories  categoryLookup
	Genres      genreLookup
	CastMembers castMemberLookup
	Tx          txRunner
	Storage     fileStorage
	Notifier    eventNotifier
	Logger      *logger.Logger
	Metrics     *metrics.CatalogMetrics
}

type service struct {
	repo        videoRepository
	categories  categoryLookup
	genres      genreLookup
	castMembers castMemberLookup
	tx          txRunner
	storage     fileStorage
	notifier    eventNotifier
	logg        *logger.Logger
	metrics     *metrics.CatalogMetrics
	now         func() time.Time

	// beforeCommit runs after every file store and before the transaction
	// commits. Package tests set it to exercise the rollback path.
	beforeCommit func(ctx context.Context) error
}

// NewService wires the video service from its collaborators.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("video repository is required")
	}
	if params.Categories == nil || params.Genres == nil || params.CastMembers == nil {
		return nil, errors.New("relationship lookups are required")
	}
	if params.Tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	if params.Storage == nil {
		return nil, errors.New("file storage is required")
	}
	if params.Notifier == nil {
		return nil, errors.New("event notifier is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		repo:        params.Repo,
		categories:  params.Categories,
		genres:      params.Genres,
		castMembers: params.CastMembers,
		tx:          params.Tx,
		storage:     params.Storage,
		notifier:    params.Notifier,
		logg:        params.Logger,
		metrics:     params.Metrics,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) runBeforeCommit(ctx context.Context) error {
	if s.beforeCommit == nil {
		return nil
	}
	return s.beforeCommit(ctx)
}
