package gcs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		httpClient:    server.Client(),
		defaultBucket: "catalog-media",
		baseURL:       server.URL,
		tokenSource: &tokenSource{
			fetch: func(ctx context.Context) (string, time.Time, error) {
				return "test-token", time.Now().Add(time.Hour), nil
			},
		},
	}
}

func TestUploadSendsObjectWithAuth(t *testing.T) {
	var gotPath, gotAuth, gotContentType, gotName, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotName = r.URL.Query().Get("name")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.Upload(context.Background(), "videos/x/trailer/clip.mp4", "video/mp4", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(gotPath, "/upload/storage/v1/b/catalog-media/o") {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth %s", gotAuth)
	}
	if gotContentType != "video/mp4" {
		t.Fatalf("unexpected content type %s", gotContentType)
	}
	if gotName != "videos/x/trailer/clip.mp4" {
		t.Fatalf("unexpected object name %s", gotName)
	}
	if gotBody != "payload" {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestUploadSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server)
	err := client.Upload(context.Background(), "videos/x/banner/banner.png", "image/png", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected server error surfaced, got %v", err)
	}
}

func TestDeleteObjectExisting(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server)
	removed, err := client.DeleteObject(context.Background(), "videos/x/banner/banner.png")
	if err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
	if !removed {
		t.Fatal("expected removed=true")
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("unexpected method %s", gotMethod)
	}
}

func TestDeleteObjectMissingIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server)
	removed, err := client.DeleteObject(context.Background(), "videos/x/banner/banner.png")
	if err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing object")
	}
}

func TestTokenSourceCachesUntilExpiry(t *testing.T) {
	calls := 0
	ts := &tokenSource{
		fetch: func(ctx context.Context) (string, time.Time, error) {
			calls++
			return "tok", time.Now().Add(time.Hour), nil
		},
	}
	for i := 0; i < 3; i++ {
		if _, err := ts.Token(context.Background()); err != nil {
			t.Fatalf("Token: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one fetch, got %d", calls)
	}
}
