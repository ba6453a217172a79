package video

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pagination"
)

type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

type stubRepo struct {
	log    *opLog
	videos map[uuid.UUID]*models.Video

	insertErr error
	updateErr error
	mediaErr  error

	inserted    *models.Video
	updateCalls int
	lastReplace replaceSets
}

func newStubRepo(log *opLog) *stubRepo {
	return &stubRepo{log: log, videos: make(map[uuid.UUID]*models.Video)}
}

func (r *stubRepo) Insert(ctx context.Context, tx *gorm.DB, video *models.Video) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = video
	r.videos[video.ID] = video
	r.log.add("insert")
	return nil
}

func (r *stubRepo) Update(ctx context.Context, tx *gorm.DB, video *models.Video, replace replaceSets) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updateCalls++
	r.lastReplace = replace
	r.videos[video.ID] = video
	r.log.add("update")
	return nil
}

func (r *stubRepo) UpdateMedia(ctx context.Context, tx *gorm.DB, video *models.Video, touched []enums.VideoMediaKind) error {
	if r.mediaErr != nil {
		return r.mediaErr
	}
	for _, kind := range touched {
		r.log.add("media:" + string(kind))
	}
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneVideo(video), nil
}

func (r *stubRepo) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Video, error) {
	return nil, nil
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.videos, id)
	return nil
}

func cloneVideo(video *models.Video) *models.Video {
	clone := *video
	clone.Categories = append([]models.Category(nil), video.Categories...)
	clone.Genres = append([]models.Genre(nil), video.Genres...)
	clone.CastMembers = append([]models.CastMember(nil), video.CastMembers...)
	clone.Medias = append([]models.VideoMedia(nil), video.Medias...)
	return &clone
}

type stubCategories struct {
	entities []models.Category
	err      error
}

func (s *stubCategories) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []models.Category
	for _, id := range ids {
		for _, entity := range s.entities {
			if entity.ID == id {
				matched = append(matched, entity)
			}
		}
	}
	return matched, nil
}

type stubGenres struct {
	entities []models.Genre
	err      error
}

func (s *stubGenres) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.Genre, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []models.Genre
	for _, id := range ids {
		for _, entity := range s.entities {
			if entity.ID == id {
				matched = append(matched, entity)
			}
		}
	}
	return matched, nil
}

type stubCastMembers struct {
	entities []models.CastMember
	err      error
}

func (s *stubCastMembers) FindByIDArray(ctx context.Context, ids []uuid.UUID) ([]models.CastMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []models.CastMember
	for _, id := range ids {
		for _, entity := range s.entities {
			if entity.ID == id {
				matched = append(matched, entity)
			}
		}
	}
	return matched, nil
}

type stubTx struct {
	runs      int
	rollbacks int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.runs++
	if err := fn(nil); err != nil {
		s.rollbacks++
		return err
	}
	return nil
}

type stubStorage struct {
	log *opLog

	stored  []string
	deleted []string

	failStoreOn string
	storeErr    error
	deleteErr   error
}

func (s *stubStorage) Store(ctx context.Context, key string, payload FilePayload) (string, error) {
	if s.failStoreOn != "" && strings.Contains(key, s.failStoreOn) {
		return "", s.storeErr
	}
	s.stored = append(s.stored, key)
	s.log.add("store:" + key)
	return key, nil
}

func (s *stubStorage) Delete(ctx context.Context, key string) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	s.deleted = append(s.deleted, key)
	s.log.add("delete:" + key)
	return true, nil
}

type stubNotifier struct {
	log    *opLog
	events []MediaStoredEvent
	err    error
}

func (s *stubNotifier) Dispatch(ctx context.Context, event MediaStoredEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	s.log.add("event:" + event.Kind)
	return nil
}

type fixture struct {
	service     *service
	repo        *stubRepo
	categories  *stubCategories
	genres      *stubGenres
	castMembers *stubCastMembers
	tx          *stubTx
	storage     *stubStorage
	notifier    *stubNotifier
	log         *opLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := &opLog{}
	f := &fixture{
		repo:        newStubRepo(log),
		categories:  &stubCategories{},
		genres:      &stubGenres{},
		castMembers: &stubCastMembers{},
		tx:          &stubTx{},
		storage:     &stubStorage{log: log},
		notifier:    &stubNotifier{log: log},
		log:         log,
	}
	svc, err := NewService(ServiceParams{
		Repo:        f.repo,
		Categories:  f.categories,
		Genres:      f.genres,
		CastMembers: f.castMembers,
		Tx:          f.tx,
		Storage:     f.storage,
		Notifier:    f.notifier,
		Logger:      logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.service = svc.(*service)
	return f
}

func filePayload(name string) *FilePayload {
	return &FilePayload{
		Name:        name,
		ContentType: "application/octet-stream",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}
}

func validCreateInput() CreateVideoInput {
	return CreateVideoInput{
		Title:        "A New Hope",
		Description:  "Space opera",
		YearLaunched: 1977,
		Duration:     7260,
		Opened:       true,
		Rating:       enums.RatingL,
	}
}

func seedVideo(f *fixture) *models.Video {
	now := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	video := &models.Video{
		ID:           uuid.New(),
		Title:        "Seeded",
		Description:  "seed",
		YearLaunched: 2001,
		Opened:       false,
		Rating:       enums.Rating12,
		Duration:     5400,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.repo.videos[video.ID] = video
	return video
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}

func countPrefix(ops []string, prefix string) int {
	n := 0
	for _, op := range ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func indexOf(ops []string, op string) int {
	for i, candidate := range ops {
		if candidate == op {
			return i
		}
	}
	return -1
}

func requireOrder(t *testing.T, ops []string, first, second string) {
	t.Helper()
	a, b := indexOf(ops, first), indexOf(ops, second)
	if a < 0 || b < 0 {
		t.Fatalf("missing ops %q/%q in %v", first, second, ops)
	}
	if a > b {
		t.Fatalf("expected %q before %q, got %v", first, second, ops)
	}
}
