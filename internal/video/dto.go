package video

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/db/models"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
)

// FilePayload is the opaque descriptor for an uploaded file. Storage adapters
// consume it directly; controllers build it from multipart parts.
type FilePayload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MediaFiles carries the optional upload per slot on create. A nil entry means
// the slot is not supplied.
type MediaFiles struct {
	Thumbnail     *FilePayload
	ThumbnailHalf *FilePayload
	Banner        *FilePayload
	Trailer       *FilePayload
	VideoFile     *FilePayload
}

func (m MediaFiles) payloadFor(kind enums.VideoMediaKind) *FilePayload {
	switch kind {
	case enums.VideoMediaKindThumbnail:
		return m.Thumbnail
	case enums.VideoMediaKindThumbnailHalf:
		return m.ThumbnailHalf
	case enums.VideoMediaKindBanner:
		return m.Banner
	case enums.VideoMediaKindTrailer:
		return m.Trailer
	case enums.VideoMediaKindVideo:
		return m.VideoFile
	}
	return nil
}

// MediaUpdate is the tri-state mutation for one media slot on update: a nil
// *MediaUpdate leaves the slot untouched, a non-nil value with File set
// replaces it, and a non-nil value with File nil clears it.
type MediaUpdate struct {
	File *FilePayload
}

// MediaUpdates groups the per-slot mutations supplied to UpdateVideo.
type MediaUpdates struct {
	Thumbnail     *MediaUpdate
	ThumbnailHalf *MediaUpdate
	Banner        *MediaUpdate
	Trailer       *MediaUpdate
	VideoFile     *MediaUpdate
}

func (m MediaUpdates) updateFor(kind enums.VideoMediaKind) *MediaUpdate {
	switch kind {
	case enums.VideoMediaKindThumbnail:
		return m.Thumbnail
	case enums.VideoMediaKindThumbnailHalf:
		return m.ThumbnailHalf
	case enums.VideoMediaKindBanner:
		return m.Banner
	case enums.VideoMediaKindTrailer:
		return m.Trailer
	case enums.VideoMediaKindVideo:
		return m.VideoFile
	}
	return nil
}

// CreateVideoInput holds the validated payload to create a video.
type CreateVideoInput struct {
	Title         string
	Description   string
	YearLaunched  int
	Duration      int
	Opened        bool
	Rating        enums.Rating
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
	Media         MediaFiles
}

// UpdateVideoInput holds optional mutation values for a video. Nil scalar
// pointers leave the current value unchanged; a nil ID-set pointer leaves the
// relationship untouched while an empty set removes every link.
type UpdateVideoInput struct {
	Title         *string
	Description   *string
	YearLaunched  *int
	Duration      *int
	Opened        *bool
	Rating        *enums.Rating
	CategoryIDs   *[]uuid.UUID
	GenreIDs      *[]uuid.UUID
	CastMemberIDs *[]uuid.UUID
	Media         MediaUpdates
}

// VideoMediaDTO exposes one stored media slot.
type VideoMediaDTO struct {
	Kind        string  `json:"kind"`
	FilePath    string  `json:"file_path"`
	EncodedPath *string `json:"encoded_path,omitempty"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
}

// VideoDTO is the full aggregate state returned by the write and read paths.
type VideoDTO struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	YearLaunched  int             `json:"year_launched"`
	Duration      int             `json:"duration"`
	Opened        bool            `json:"opened"`
	Rating        string          `json:"rating"`
	CategoryIDs   []uuid.UUID     `json:"category_ids"`
	GenreIDs      []uuid.UUID     `json:"genre_ids"`
	CastMemberIDs []uuid.UUID     `json:"cast_member_ids"`
	Medias        []VideoMediaDTO `json:"medias,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewVideoDTO builds the response DTO from the persisted aggregate.
func NewVideoDTO(video *models.Video) *VideoDTO {
	dto := &VideoDTO{
		ID:            video.ID,
		Title:         video.Title,
		Description:   video.Description,
		YearLaunched:  video.YearLaunched,
		Duration:      video.Duration,
		Opened:        video.Opened,
		Rating:        string(video.Rating),
		CategoryIDs:   video.CategoryIDs(),
		GenreIDs:      video.GenreIDs(),
		CastMemberIDs: video.CastMemberIDs(),
		CreatedAt:     video.CreatedAt,
		UpdatedAt:     video.UpdatedAt,
	}
	for _, kind := range enums.VideoMediaKindsOrdered {
		if media := video.MediaFor(kind); media != nil {
			dto.Medias = append(dto.Medias, VideoMediaDTO{
				Kind:        string(media.Kind),
				FilePath:    media.FilePath,
				EncodedPath: media.EncodedPath,
				Type:        string(media.Type),
				Status:      string(media.Status),
			})
		}
	}
	return dto
}

// VideoListResult is one page of videos plus the cursor for the next page.
type VideoListResult struct {
	Items      []VideoDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
