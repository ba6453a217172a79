package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
)

// VideoMedia is the persisted record for one media slot of a video.
// At most one row exists per (video, kind) pair.
type VideoMedia struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	VideoID     uuid.UUID            `gorm:"column:video_id;type:uuid;not null;uniqueIndex:ux_video_medias_video_kind"`
	Kind        enums.VideoMediaKind `gorm:"column:kind;type:video_media_kind;not null;uniqueIndex:ux_video_medias_video_kind"`
	FilePath    string               `gorm:"column:file_path;not null"`
	EncodedPath *string              `gorm:"column:encoded_path"`
	Type        enums.MediaType      `gorm:"column:type;type:media_type;not null"`
	Status      enums.MediaStatus    `gorm:"column:status;type:media_status;not null"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
