package models

import (
	"time"

	"github.com/google/uuid"
)

// PostReport is an abuse report filed against a post. IDs are drawn from the
// forum's report counter, which post and reply reports share. Resolution is
// terminal: IsResolved never transitions back to false.
type PostReport struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RecordKey   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"record_key"`
	PostID      uint64     `gorm:"not null;index" json:"post_id"`
	ReporterID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason      string     `gorm:"size:200;not null" json:"reason"`
	IsResolved  bool       `gorm:"not null;default:false" json:"is_resolved"`
	AdminAction string     `gorm:"size:200" json:"admin_action,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}

// ReplyReport mirrors PostReport for replies.
type ReplyReport struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RecordKey   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"record_key"`
	ReplyID     uint64     `gorm:"not null;index" json:"reply_id"`
	ReporterID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason      string     `gorm:"size:200;not null" json:"reason"`
	IsResolved  bool       `gorm:"not null;default:false" json:"is_resolved"`
	AdminAction string     `gorm:"size:200" json:"admin_action,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
