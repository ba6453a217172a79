package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvcarvalho/flixcatalog-backend/pkg/enums"
)

// CastMember is a director or actor credited on videos.
type CastMember struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name      string               `gorm:"column:name;not null"`
	Type      enums.CastMemberType `gorm:"column:type;type:cast_member_type;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt       `gorm:"column:deleted_at;index"`
}
