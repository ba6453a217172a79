package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
)

// Video is the catalog aggregate root: scalar attributes, relationship sets,
// and up to five media slots. CreatedAt/UpdatedAt are managed by the service
// layer so that a no-op update never bumps UpdatedAt.
type Video struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Title        string         `gorm:"column:title;not null"`
	Description  string         `gorm:"column:description"`
	YearLaunched int            `gorm:"column:year_launched;not null"`
	Opened       bool           `gorm:"column:opened;not null;default:false"`
	Rating       enums.Rating   `gorm:"column:rating;type:video_rating;not null"`
	Duration     int            `gorm:"column:duration;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime:false"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Categories  []Category   `gorm:"many2many:category_video"`
	Genres      []Genre      `gorm:"many2many:genre_video"`
	CastMembers []CastMember `gorm:"many2many:cast_member_video"`
	Medias      []VideoMedia `gorm:"foreignKey:VideoID"`
}

// CategoryIDs returns the related category IDs in association order.
func (v *Video) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(v.Categories))
	for i, c := range v.Categories {
		ids[i] = c.ID
	}
	return ids
}

// GenreIDs returns the related genre IDs in association order.
func (v *Video) GenreIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(v.Genres))
	for i, g := range v.Genres {
		ids[i] = g.ID
	}
	return ids
}

// CastMemberIDs returns the related cast member IDs in association order.
func (v *Video) CastMemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(v.CastMembers))
	for i, m := range v.CastMembers {
		ids[i] = m.ID
	}
	return ids
}

// MediaFor returns the media row occupying the given slot, or nil when unset.
func (v *Video) MediaFor(kind enums.VideoMediaKind) *VideoMedia {
	for i := range v.Medias {
		if v.Medias[i].Kind == kind {
			return &v.Medias[i]
		}
	}
	return nil
}

// SetMedia replaces (or adds) the media row for the given slot in memory.
func (v *Video) SetMedia(media VideoMedia) {
	for i := range v.Medias {
		if v.Medias[i].Kind == media.Kind {
			v.Medias[i] = media
			return
		}
	}
	v.Medias = append(v.Medias, media)
}

// RemoveMedia drops the media row for the given slot in memory.
func (v *Video) RemoveMedia(kind enums.VideoMediaKind) {
	for i := range v.Medias {
		if v.Medias[i].Kind == kind {
			v.Medias = append(v.Medias[:i], v.Medias[i+1:]...)
			return
		}
	}
}
