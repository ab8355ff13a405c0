package models

import (
	"time"

	"github.com/google/uuid"
)

// Subject kinds for votes and derived record keys.
const (
	SubjectPost  = "post"
	SubjectReply = "reply"
)

// UserRating holds one vote per (content item, voter) pair. The primary key
// is derived deterministically from (subject kind, subject id, voter), so a
// voter can never hold two live rows for the same item. Rows are created on
// first vote and never deleted; only IsUpvote and RatedAt change afterwards.
type UserRating struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectKind string    `gorm:"size:10;not null;uniqueIndex:idx_ratings_subject_voter" json:"subject_kind"`
	SubjectID   uint64    `gorm:"not null;uniqueIndex:idx_ratings_subject_voter" json:"subject_id"`
	VoterID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_subject_voter" json:"voter_id"`
	HasRated    bool      `gorm:"not null;default:false" json:"has_rated"`
	IsUpvote    bool      `gorm:"not null;default:false" json:"is_upvote"`
	RatedAt     time.Time `json:"rated_at"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
