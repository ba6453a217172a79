package video

import (
	"time"

	"github.com/google/uuid"
)

// MediaStoredEvent announces that a trailer or video file was durably stored
// and is ready for the encoding pipeline.
type MediaStoredEvent struct {
	VideoID  uuid.UUID `json:"video_id"`
	Kind     string    `json:"kind"`
	FilePath string    `json:"file_path"`
	StoredAt time.Time `json:"stored_at"`
}

// EventTypeMediaStored tags MediaStoredEvent on the wire.
const EventTypeMediaStored = "catalog.video.media_stored"
