package video

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

// UpdateEncodedPath records where the encoder wrote the processed video file
// and marks the slot complete. It runs outside the write-path transaction:
// no file coordination is involved.
func (s *service) UpdateEncodedPath(ctx context.Context, id uuid.UUID, encodedPath string) (*VideoDTO, error) {
	if strings.TrimSpace(encodedPath) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "encoded_path is required")
	}

	ctx = s.logg.WithVideoID(ctx, id.String())

	video, err := s.loadVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	media := video.MediaFor(enums.VideoMediaKindVideo)
	if media == nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound,
			"Video %s has no media in slot %s", id, enums.VideoMediaKindVideo)
	}

	media.EncodedPath = &encodedPath
	media.Status = enums.MediaStatusComplete
	video.SetMedia(*media)

	if err := s.repo.UpdateMedia(ctx, nil, video, []enums.VideoMediaKind{enums.VideoMediaKindVideo}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting encoded path")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "encoded path recorded")
	}
	return NewVideoDTO(video), nil
}
