package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDerivedKeysDeterministic(t *testing.T) {
	voter := uuid.New()

	assert.Equal(t, ContentKey(SubjectPost, ForumID, 0), ContentKey(SubjectPost, ForumID, 0))
	assert.Equal(t, ReportKey(SubjectReply, ForumID, 3), ReportKey(SubjectReply, ForumID, 3))
	assert.Equal(t, RatingKey(SubjectPost, 5, voter), RatingKey(SubjectPost, 5, voter))
	assert.Equal(t, TokenAccountKey(voter, "mint"), TokenAccountKey(voter, "mint"))
}

func TestDerivedKeysDistinct(t *testing.T) {
	voter := uuid.New()
	other := uuid.New()

	// Kind, sequence and namespace each separate keys.
	assert.NotEqual(t, ContentKey(SubjectPost, ForumID, 0), ContentKey(SubjectReply, ForumID, 0))
	assert.NotEqual(t, ContentKey(SubjectPost, ForumID, 0), ContentKey(SubjectPost, ForumID, 1))
	assert.NotEqual(t, ContentKey(SubjectPost, ForumID, 0), ReportKey(SubjectPost, ForumID, 0))

	assert.NotEqual(t, RatingKey(SubjectPost, 0, voter), RatingKey(SubjectReply, 0, voter))
	assert.NotEqual(t, RatingKey(SubjectPost, 0, voter), RatingKey(SubjectPost, 0, other))

	assert.NotEqual(t, TokenAccountKey(voter, "mintA"), TokenAccountKey(voter, "mintB"))
	assert.NotEqual(t, TokenAccountKey(voter, "mint"), TokenAccountKey(other, "mint"))
}

// Concatenation inside the name must not let adjacent fields bleed into each
// other: ("ab", 1) and ("a", b...) style collisions.
func TestRatingKeyFieldBoundaries(t *testing.T) {
	voter := uuid.New()
	a := RatingKey("post", 0x6100000000000000, voter)
	b := RatingKey("posta", 0, voter)
	assert.NotEqual(t, a, b)
}
