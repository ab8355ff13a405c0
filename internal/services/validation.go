package services

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxContentLength caps post and reply bodies, in Unicode scalar values.
	MaxContentLength = 280
	// MaxReasonLength caps report reasons and resolution actions.
	MaxReasonLength = 200
	// MaxReportsPerItem is the report ceiling per content item.
	MaxReportsPerItem = 100
)

// SystemIdentity is reserved for the service itself and may never author
// content, vote, or report.
var SystemIdentity = uuid.MustParse("00000000-0000-0000-0000-000000000001")

var (
	ErrContentEmpty   = errors.New("content cannot be empty")
	ErrContentTooLong = errors.New("content exceeds maximum length")
	ErrInvalidContent = errors.New("invalid content characters")
	ErrReasonEmpty    = errors.New("report reason cannot be empty")
	ErrReasonTooLong  = errors.New("report reason exceeds maximum length")
	ErrInvalidAuthor  = errors.New("invalid author identity")

	ErrNotAdmin = errors.New("only admin can perform this action")

	ErrForumExists   = errors.New("forum already initialized")
	ErrForumNotFound = errors.New("forum not initialized")

	ErrInvalidPostID         = errors.New("invalid post id")
	ErrInvalidReplyID        = errors.New("invalid reply id")
	ErrInvalidReportID       = errors.New("invalid report id")
	ErrRatingKeyMismatch     = errors.New("rating record key mismatch")
	ErrMaxReportsReached     = errors.New("maximum number of reports reached")
	ErrReportAlreadyResolved = errors.New("report already resolved")
)

// validateContent checks a post or reply body. Order matters: empty, then
// length, then charset; the first failure wins.
func validateContent(s string) error {
	if s == "" {
		return ErrContentEmpty
	}
	if utf8.RuneCountInString(s) > MaxContentLength {
		return ErrContentTooLong
	}
	if !isValidText(s) {
		return ErrInvalidContent
	}
	return nil
}

// validateReason checks a report reason.
func validateReason(s string) error {
	if s == "" {
		return ErrReasonEmpty
	}
	if utf8.RuneCountInString(s) > MaxReasonLength {
		return ErrReasonTooLong
	}
	if !isValidText(s) {
		return ErrInvalidContent
	}
	return nil
}

// validateAction checks a resolution's action-taken text. Shares the reason
// length cap.
func validateAction(s string) error {
	if s == "" {
		return ErrContentEmpty
	}
	if utf8.RuneCountInString(s) > MaxReasonLength {
		return ErrContentTooLong
	}
	if !isValidText(s) {
		return ErrInvalidContent
	}
	return nil
}

// isValidText accepts ASCII printable and ASCII whitespace characters only.
func isValidText(s string) bool {
	for _, r := range s {
		if r > 0x7E {
			return false
		}
		if r >= 0x21 {
			continue
		}
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			return false
		}
	}
	return true
}

// validateIdentity rejects the nil and reserved system identities.
func validateIdentity(id uuid.UUID) error {
	if id == uuid.Nil || id == SystemIdentity {
		return ErrInvalidAuthor
	}
	return nil
}

// satAdd is saturating int64 addition; ratings clamp instead of wrapping.
func satAdd(a, b int64) int64 {
	sum := a + b
	if b > 0 && sum < a {
		return math.MaxInt64
	}
	if b < 0 && sum > a {
		return math.MinInt64
	}
	return sum
}
