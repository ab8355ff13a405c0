package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a top-level content item. The ID is the forum's post_count at
// creation time: dense, unique, never reused even after deletion.
type Post struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RecordKey   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"record_key"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Content     string    `gorm:"size:280;not null" json:"content"`
	Rating      int64     `gorm:"not null;default:0" json:"rating"`
	IsReported  bool      `gorm:"not null;default:false" json:"is_reported"`
	ReportCount uint64    `gorm:"not null;default:0" json:"report_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// Reply has the same shape as Post plus a back-reference to its parent.
// Its ID is drawn from the reply counter, a namespace of its own.
type Reply struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	RecordKey   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"record_key"`
	PostID      uint64    `gorm:"not null;index" json:"post_id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Content     string    `gorm:"size:280;not null" json:"content"`
	Rating      int64     `gorm:"not null;default:0" json:"rating"`
	IsReported  bool      `gorm:"not null;default:false" json:"is_reported"`
	ReportCount uint64    `gorm:"not null;default:0" json:"report_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
