package video

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

func TestCreateVideoPersistsAggregate(t *testing.T) {
	f := newFixture(t)
	category := models.Category{ID: uuid.New(), Name: "Movies"}
	genre := models.Genre{ID: uuid.New(), Name: "Sci-fi"}
	member := models.CastMember{ID: uuid.New(), Name: "Director", Type: enums.CastMemberTypeDirector}
	f.categories.entities = []models.Category{category}
	f.genres.entities = []models.Genre{genre}
	f.castMembers.entities = []models.CastMember{member}

	input := validCreateInput()
	input.CategoryIDs = []uuid.UUID{category.ID}
	input.GenreIDs = []uuid.UUID{genre.ID}
	input.CastMemberIDs = []uuid.UUID{member.ID}

	dto, err := f.service.CreateVideo(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if f.repo.inserted == nil {
		t.Fatal("expected insert")
	}
	if dto.ID == uuid.Nil {
		t.Fatal("expected minted ID")
	}
	if len(dto.CategoryIDs) != 1 || dto.CategoryIDs[0] != category.ID {
		t.Fatalf("unexpected category ids %v", dto.CategoryIDs)
	}
	if len(dto.GenreIDs) != 1 || len(dto.CastMemberIDs) != 1 {
		t.Fatalf("unexpected relationship sets %v %v", dto.GenreIDs, dto.CastMemberIDs)
	}
	if !dto.CreatedAt.Equal(dto.UpdatedAt) {
		t.Fatal("created and updated timestamps should match on insert")
	}
	if f.tx.rollbacks != 0 {
		t.Fatal("unexpected rollback")
	}
}

func TestCreateVideoRejectsInvalidScalars(t *testing.T) {
	f := newFixture(t)
	cases := map[string]func(*CreateVideoInput){
		"empty title":      func(in *CreateVideoInput) { in.Title = "  " },
		"long title":       func(in *CreateVideoInput) { in.Title = strings.Repeat("x", 256) },
		"long description": func(in *CreateVideoInput) { in.Description = strings.Repeat("x", 4001) },
		"zero year":        func(in *CreateVideoInput) { in.YearLaunched = 0 },
		"zero duration":    func(in *CreateVideoInput) { in.Duration = 0 },
		"bad rating":       func(in *CreateVideoInput) { in.Rating = "PG-13" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validCreateInput()
			mutate(&input)
			_, err := f.service.CreateVideo(context.Background(), input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if f.tx.runs != 0 {
		t.Fatal("validation failures must not open a transaction")
	}
}

func TestCreateVideoStoresSlotsInOrder(t *testing.T) {
	f := newFixture(t)
	input := validCreateInput()
	input.Media = MediaFiles{
		VideoFile:     filePayload("movie.mp4"),
		Thumbnail:     filePayload("thumb.png"),
		Trailer:       filePayload("trailer.mp4"),
		ThumbnailHalf: filePayload("half.png"),
		Banner:        filePayload("banner.png"),
	}

	dto, err := f.service.CreateVideo(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if len(f.storage.stored) != 5 {
		t.Fatalf("expected 5 stored objects, got %d", len(f.storage.stored))
	}
	wantOrder := []string{"thumbnail/", "thumbnail_half/", "banner/", "trailer/", "video/"}
	for i, fragment := range wantOrder {
		if !strings.Contains(f.storage.stored[i], fragment) {
			t.Fatalf("slot %d: expected %q in %q", i, fragment, f.storage.stored[i])
		}
	}
	if len(dto.Medias) != 5 {
		t.Fatalf("expected 5 media rows, got %d", len(dto.Medias))
	}
	for _, media := range dto.Medias {
		kind := enums.VideoMediaKind(media.Kind)
		wantStatus := enums.MediaStatusComplete
		if kind.HasLifecycle() {
			wantStatus = enums.MediaStatusPending
		}
		if media.Status != string(wantStatus) {
			t.Fatalf("slot %s: expected status %s, got %s", media.Kind, wantStatus, media.Status)
		}
	}
}

func TestCreateVideoDispatchesEventsAfterStore(t *testing.T) {
	f := newFixture(t)
	input := validCreateInput()
	input.Media = MediaFiles{
		Trailer:   filePayload("trailer.mp4"),
		VideoFile: filePayload("movie.mp4"),
		Banner:    filePayload("banner.png"),
	}

	_, err := f.service.CreateVideo(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if len(f.notifier.events) != 2 {
		t.Fatalf("expected events for trailer and video only, got %d", len(f.notifier.events))
	}
	requireOrder(t, f.log.ops, "store:"+f.storage.stored[1], "event:trailer")
	requireOrder(t, f.log.ops, "store:"+f.storage.stored[2], "event:video")
	for _, event := range f.notifier.events {
		if event.FilePath == "" || event.VideoID == uuid.Nil {
			t.Fatalf("incomplete event %+v", event)
		}
	}
}

func TestCreateVideoRollbackCleansStoredFiles(t *testing.T) {
	f := newFixture(t)
	f.storage.failStoreOn = "banner"
	f.storage.storeErr = errors.New("bucket unavailable")

	input := validCreateInput()
	input.Media = MediaFiles{
		Thumbnail: filePayload("thumb.png"),
		Banner:    filePayload("banner.png"),
		VideoFile: filePayload("movie.mp4"),
	}

	_, err := f.service.CreateVideo(context.Background(), input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if f.tx.rollbacks != 1 {
		t.Fatalf("expected one rollback, got %d", f.tx.rollbacks)
	}
	if len(f.storage.stored) != 1 {
		t.Fatalf("expected only thumbnail stored, got %v", f.storage.stored)
	}
	if len(f.storage.deleted) != 1 || f.storage.deleted[0] != f.storage.stored[0] {
		t.Fatalf("expected cleanup of %v, got %v", f.storage.stored, f.storage.deleted)
	}
	if len(f.notifier.events) != 0 {
		t.Fatal("no events expected on rollback")
	}
}

func TestCreateVideoPreCommitFailureCleansEverything(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("commit fence")
	f.service.beforeCommit = func(ctx context.Context) error { return boom }

	input := validCreateInput()
	input.Media = MediaFiles{
		Thumbnail: filePayload("thumb.png"),
		VideoFile: filePayload("movie.mp4"),
	}

	_, err := f.service.CreateVideo(context.Background(), input)
	if !errors.Is(err, boom) {
		t.Fatalf("expected pre-commit error, got %v", err)
	}
	if len(f.storage.deleted) != 2 {
		t.Fatalf("expected both objects cleaned, got %v", f.storage.deleted)
	}
	if f.tx.rollbacks != 1 {
		t.Fatalf("expected rollback, got %d", f.tx.rollbacks)
	}
}

func TestCreateVideoCleanupFailureDoesNotMaskError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("commit fence")
	f.service.beforeCommit = func(ctx context.Context) error { return boom }
	f.storage.deleteErr = errors.New("delete also failed")

	input := validCreateInput()
	input.Media = MediaFiles{Thumbnail: filePayload("thumb.png")}

	_, err := f.service.CreateVideo(context.Background(), input)
	if !errors.Is(err, boom) {
		t.Fatalf("cleanup failure must not mask the original error, got %v", err)
	}
}

func TestCreateVideoUnknownRelationsFailBeforeTx(t *testing.T) {
	f := newFixture(t)
	input := validCreateInput()
	input.GenreIDs = []uuid.UUID{uuid.New()}

	_, err := f.service.CreateVideo(context.Background(), input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.tx.runs != 0 {
		t.Fatal("relationship validation must run before the transaction")
	}
}
