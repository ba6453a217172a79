package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
)

type stubUpdater struct {
	calls []string
	err   error
}

func (s *stubUpdater) UpdateEncodedPath(ctx context.Context, id uuid.UUID, encodedPath string) (*video.VideoDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.calls = append(s.calls, id.String()+"|"+encodedPath)
	return &video.VideoDTO{ID: id}, nil
}

type stubMarker struct {
	seen map[string]bool
	err  error
}

func (s *stubMarker) MarkProcessed(ctx context.Context, scope, id string, ttl time.Duration) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[scope+":"+id] {
		return false, nil
	}
	s.seen[scope+":"+id] = true
	return true, nil
}

func newTestConsumer(t *testing.T, updater *stubUpdater, marker *stubMarker) *Consumer {
	t.Helper()
	c := &Consumer{
		videos: updater,
		dedupe: marker,
		logg:   logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard}),
	}
	return c
}

func encodedPayload(t *testing.T, id uuid.UUID, path string) []byte {
	t.Helper()
	data, err := json.Marshal(EncodedMessage{VideoID: id, EncodedPath: path})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestProcessRecordsEncodedPath(t *testing.T) {
	updater := &stubUpdater{}
	c := newTestConsumer(t, updater, &stubMarker{})
	id := uuid.New()

	if got := c.process(context.Background(), "msg-1", encodedPayload(t, id, "encoded/x")); got != outcomeAck {
		t.Fatalf("expected ack, got %v", got)
	}
	if len(updater.calls) != 1 || updater.calls[0] != id.String()+"|encoded/x" {
		t.Fatalf("unexpected calls %v", updater.calls)
	}
}

func TestProcessDeduplicatesRedeliveries(t *testing.T) {
	updater := &stubUpdater{}
	c := newTestConsumer(t, updater, &stubMarker{})
	id := uuid.New()
	payload := encodedPayload(t, id, "encoded/x")

	c.process(context.Background(), "msg-1", payload)
	if got := c.process(context.Background(), "msg-1", payload); got != outcomeAck {
		t.Fatalf("duplicate must still ack, got %v", got)
	}
	if len(updater.calls) != 1 {
		t.Fatalf("expected single update, got %d", len(updater.calls))
	}
}

func TestProcessMalformedMessageAcks(t *testing.T) {
	updater := &stubUpdater{}
	c := newTestConsumer(t, updater, &stubMarker{})
	if got := c.process(context.Background(), "msg-1", []byte("not json")); got != outcomeAck {
		t.Fatalf("poison message must ack, got %v", got)
	}
	if len(updater.calls) != 0 {
		t.Fatal("poison message must not reach the service")
	}
}

func TestProcessUnknownVideoAcks(t *testing.T) {
	updater := &stubUpdater{err: pkgerrors.New(pkgerrors.CodeNotFound, "Video x not found")}
	c := newTestConsumer(t, updater, &stubMarker{})
	if got := c.process(context.Background(), "msg-1", encodedPayload(t, uuid.New(), "encoded/x")); got != outcomeAck {
		t.Fatalf("unknown video must ack, got %v", got)
	}
}

func TestProcessTransientFailureNacks(t *testing.T) {
	updater := &stubUpdater{err: pkgerrors.New(pkgerrors.CodeDependency, "db down")}
	c := newTestConsumer(t, updater, &stubMarker{})
	if got := c.process(context.Background(), "msg-1", encodedPayload(t, uuid.New(), "encoded/x")); got != outcomeNack {
		t.Fatalf("transient failure must nack for redelivery, got %v", got)
	}
}

func TestProcessDedupeFailureStillProcesses(t *testing.T) {
	updater := &stubUpdater{}
	c := newTestConsumer(t, updater, &stubMarker{err: errors.New("redis down")})
	if got := c.process(context.Background(), "msg-1", encodedPayload(t, uuid.New(), "encoded/x")); got != outcomeAck {
		t.Fatalf("expected ack, got %v", got)
	}
	if len(updater.calls) != 1 {
		t.Fatal("dedupe failure must not block processing")
	}
}
