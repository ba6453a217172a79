package video

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

func TestEnsureAllFoundSingular(t *testing.T) {
	missing := uuid.New()
	err := ensureAllFound("Category", "Categories", []uuid.UUID{missing}, nil)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	want := "Category " + missing.String() + " not found"
	if pkgerrors.As(err).Message() != want {
		t.Fatalf("expected %q, got %q", want, pkgerrors.As(err).Message())
	}
}

func TestEnsureAllFoundPluralKeepsRequestedOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	matched := uuid.New()
	err := ensureAllFound("Genre", "Genres",
		[]uuid.UUID{first, matched, second}, []uuid.UUID{matched})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Genres " + first.String() + ", " + second.String() + " not found"
	if got := pkgerrors.As(err).Message(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnsureAllFoundAllMatched(t *testing.T) {
	id := uuid.New()
	if err := ensureAllFound("Category", "Categories", []uuid.UUID{id}, []uuid.UUID{id}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := ensureAllFound("Category", "Categories", nil, nil); err != nil {
		t.Fatalf("empty request must pass, got %v", err)
	}
}

func TestDedupeIDsKeepsFirstOccurrenceOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	got := dedupeIDs([]uuid.UUID{a, b, a, b, a})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected dedupe result %v", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"movie.mp4":        "movie.mp4",
		"../../etc/passwd": "passwd",
		"  my file.png ":   "my_file.png",
		"":                 "file",
		"/":                "file",
	}
	for input, want := range cases {
		if got := sanitizeFileName(input); got != want {
			t.Fatalf("sanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBuildObjectKey(t *testing.T) {
	id := uuid.New()
	key := buildObjectKey(id, "trailer", "clip.mp4")
	if !strings.HasPrefix(key, "videos/"+id.String()+"/trailer/") {
		t.Fatalf("unexpected key %q", key)
	}
}
