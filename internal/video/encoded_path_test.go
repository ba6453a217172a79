package video

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

func TestUpdateEncodedPathCompletesVideoSlot(t *testing.T) {
	f := newFixture(t)
	video := seedVideo(f)
	video.Medias = []models.VideoMedia{{
		ID:       uuid.New(),
		VideoID:  video.ID,
		Kind:     enums.VideoMediaKindVideo,
		FilePath: "videos/x/video/raw.mp4",
		Type:     enums.MediaTypeVideo,
		Status:   enums.MediaStatusPending,
	}}

	dto, err := f.service.UpdateEncodedPath(context.Background(), video.ID, "encoded/x/stream.m3u8")
	if err != nil {
		t.Fatalf("UpdateEncodedPath: %v", err)
	}
	if len(dto.Medias) != 1 {
		t.Fatalf("expected one media, got %+v", dto.Medias)
	}
	media := dto.Medias[0]
	if media.EncodedPath == nil || *media.EncodedPath != "encoded/x/stream.m3u8" {
		t.Fatalf("unexpected encoded path %+v", media)
	}
	if media.Status != string(enums.MediaStatusComplete) {
		t.Fatalf("expected complete, got %s", media.Status)
	}
	if media.FilePath != "videos/x/video/raw.mp4" {
		t.Fatal("raw file path must be preserved")
	}
	if f.tx.runs != 0 {
		t.Fatal("encoded path update runs outside the write transaction")
	}
}

func TestUpdateEncodedPathVideoNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()
	_, err := f.service.UpdateEncodedPath(context.Background(), id, "encoded/x")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateEncodedPathMissingSlotNamesVideoAndSlot(t *testing.T) {
	f := newFixture(t)
	video := seedVideo(f)

	_, err := f.service.UpdateEncodedPath(context.Background(), video.ID, "encoded/x")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	msg := pkgerrors.As(err).Message()
	if !strings.Contains(msg, video.ID.String()) || !strings.Contains(msg, "video") {
		t.Fatalf("error must name the video ID and slot, got %q", msg)
	}
}

func TestUpdateEncodedPathRequiresPath(t *testing.T) {
	f := newFixture(t)
	video := seedVideo(f)
	_, err := f.service.UpdateEncodedPath(context.Background(), video.ID, "  ")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
