package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

// dedupeIDs collapses duplicates while preserving first-occurrence order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ensureAllFound verifies every requested ID was matched by the lookup. The
// error enumerates exactly the missing IDs, in requested order:
// "Category <id> not found" or "Categories <id1>, <id2> not found".
func ensureAllFound(singular, plural string, requested, matched []uuid.UUID) error {
	if len(requested) == 0 {
		return nil
	}
	found := make(map[uuid.UUID]struct{}, len(matched))
	for _, id := range matched {
		found[id] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	label := singular
	if len(missing) > 1 {
		label = plural
	}
	return pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("%s %s not found", label, strings.Join(missing, ", ")))
}

func (s *service) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	matched, err := s.categories.FindByIDArray(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up categories")
	}
	matchedIDs := make([]uuid.UUID, len(matched))
	for i, c := range matched {
		matchedIDs[i] = c.ID
	}
	if err := ensureAllFound("Category", "Categories", ids, matchedIDs); err != nil {
		return nil, err
	}
	return matched, nil
}

func (s *service) resolveGenres(ctx context.Context, ids []uuid.UUID) ([]models.Genre, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	matched, err := s.genres.FindByIDArray(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up genres")
	}
	matchedIDs := make([]uuid.UUID, len(matched))
	for i, g := range matched {
		matchedIDs[i] = g.ID
	}
	if err := ensureAllFound("Genre", "Genres", ids, matchedIDs); err != nil {
		return nil, err
	}
	return matched, nil
}

func (s *service) resolveCastMembers(ctx context.Context, ids []uuid.UUID) ([]models.CastMember, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	matched, err := s.castMembers.FindByIDArray(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up cast members")
	}
	matchedIDs := make([]uuid.UUID, len(matched))
	for i, m := range matched {
		matchedIDs[i] = m.ID
	}
	if err := ensureAllFound("Cast member", "Cast members", ids, matchedIDs); err != nil {
		return nil, err
	}
	return matched, nil
}
