package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event kinds, one per mutating operation.
const (
	EventForumInitialized    = "forum.initialized"
	EventForumClosed         = "forum.closed"
	EventPostCreated         = "post.created"
	EventReplyCreated        = "reply.created"
	EventPostRated           = "post.rated"
	EventReplyRated          = "reply.rated"
	EventPostReported        = "post.reported"
	EventReplyReported       = "reply.reported"
	EventPostReportResolved  = "post_report.resolved"
	EventReplyReportResolved = "reply_report.resolved"
	EventPostReportClosed    = "post_report.closed"
	EventReplyReportClosed   = "reply_report.closed"
	EventPostDeleted         = "post.deleted"
	EventReplyDeleted        = "reply.deleted"
)

// Event is an append-only record of a committed state change, written in the
// same transaction as the change itself. Rows are never updated or deleted;
// external indexers consume them by ascending ID.
type Event struct {
	ID        uint64         `gorm:"primaryKey" json:"id"`
	Kind      string         `gorm:"size:40;not null;index" json:"kind"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
