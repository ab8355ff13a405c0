package models

import (
	"time"

	"github.com/google/uuid"
)

// ForumID is the primary key of the single forum row. One forum per
// deployment; every content and report creation bumps one of its counters.
const ForumID uint64 = 1

// ForumVersion is stamped onto the forum row at initialization.
const ForumVersion uint64 = 15

// Forum owns the global monotonic counters. Counter values double as the
// next sequential id for their namespace, so allocation is an atomic
// read-and-increment under a row lock.
type Forum struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement:false" json:"-"`
	AdminID     uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`
	PostCount   uint64    `gorm:"not null;default:0" json:"post_count"`
	ReplyCount  uint64    `gorm:"not null;default:0" json:"reply_count"`
	ReportCount uint64    `gorm:"not null;default:0" json:"report_count"`
	Version     uint64    `gorm:"not null" json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}
