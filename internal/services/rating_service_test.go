package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/models"
)

// TestRatePostToggleLifecycle walks the full vote lifecycle on one post:
// fresh votes move the rating by one, switching direction moves it by two,
// and resubmitting the same direction changes nothing while still costing
// the fee.
func TestRatePostToggleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	alice := env.newUser(t, 10_000_000, 0)
	bob := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "hello")
	require.NoError(t, err)
	require.Equal(t, int64(0), post.Rating)

	post, err = env.ratings.RatePost(alice, post.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.Rating)

	post, err = env.ratings.RatePost(bob, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), post.Rating)

	// Alice switches from up to down: a two-point swing.
	post, err = env.ratings.RatePost(alice, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), post.Rating)

	// Resubmitting the same direction is a paid no-op.
	aliceBefore := env.nativeBalance(t, alice)
	events := env.eventCount(t, models.EventPostRated)

	post, err = env.ratings.RatePost(alice, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), post.Rating)
	assert.Equal(t, aliceBefore-1_000_000, env.nativeBalance(t, alice))
	assert.Equal(t, events, env.eventCount(t, models.EventPostRated))
}

func TestRatePostFeePaysAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	voter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "rate me")
	require.NoError(t, err)
	authorBefore := env.nativeBalance(t, author)

	_, err = env.ratings.RatePost(voter, post.ID, true)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000_000-1_000_000), env.nativeBalance(t, voter))
	assert.Equal(t, authorBefore+1_000_000, env.nativeBalance(t, author))
}

// Token vote fees route by direction: upvotes pay the author, downvotes pay
// the platform.
func TestRatePostTokenFeeRouting(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	voter := env.newUser(t, 0, 10_000_000_000)

	post, err := env.content.CreatePost(author, "token votes")
	require.NoError(t, err)
	authorBefore := env.tokenBalance(t, author)
	platformBefore := env.tokenBalance(t, env.platformID)

	_, err = env.ratings.RatePostWithToken(voter, post.ID, true)
	require.NoError(t, err)
	assert.Equal(t, authorBefore+1_000_000_000, env.tokenBalance(t, author))
	assert.Equal(t, platformBefore, env.tokenBalance(t, env.platformID))

	_, err = env.ratings.RatePostWithToken(voter, post.ID, false)
	require.NoError(t, err)
	assert.Equal(t, platformBefore+1_000_000_000, env.tokenBalance(t, env.platformID))
	assert.Equal(t, int64(8_000_000_000), env.tokenBalance(t, voter))
}

func TestRatePostUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	voter := env.newUser(t, 10_000_000, 0)

	_, err := env.ratings.RatePost(voter, 7, true)
	assert.ErrorIs(t, err, ErrInvalidPostID)
	assert.Equal(t, int64(10_000_000), env.nativeBalance(t, voter))
}

func TestRateReplyParentCrossCheck(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	voter := env.newUser(t, 10_000_000, 0)

	first, err := env.content.CreatePost(author, "first")
	require.NoError(t, err)
	second, err := env.content.CreatePost(author, "second")
	require.NoError(t, err)
	reply, err := env.content.CreateReply(author, first.ID, "under first")
	require.NoError(t, err)

	// The reply belongs to the first post; naming the second must fail.
	_, err = env.ratings.RateReply(voter, second.ID, reply.ID, true)
	assert.ErrorIs(t, err, ErrInvalidPostID)

	rated, err := env.ratings.RateReply(voter, first.ID, reply.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rated.Rating)
}

func TestRateReplyFeePaysParentAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	postAuthor := env.newUser(t, 10_000_000, 0)
	replyAuthor := env.newUser(t, 10_000_000, 0)
	voter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(postAuthor, "parent")
	require.NoError(t, err)
	reply, err := env.content.CreateReply(replyAuthor, post.ID, "child")
	require.NoError(t, err)

	postAuthorBefore := env.nativeBalance(t, postAuthor)
	replyAuthorBefore := env.nativeBalance(t, replyAuthor)

	_, err = env.ratings.RateReply(voter, post.ID, reply.ID, true)
	require.NoError(t, err)

	// The parent post's author collects reply vote fees, not the reply's.
	assert.Equal(t, postAuthorBefore+1_000_000, env.nativeBalance(t, postAuthor))
	assert.Equal(t, replyAuthorBefore, env.nativeBalance(t, replyAuthor))
}

func TestRatePostVotersIndependent(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "crowd opinion")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		voter := env.newUser(t, 10_000_000, 0)
		post, err = env.ratings.RatePost(voter, post.ID, true)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(4), post.Rating)

	var records int64
	require.NoError(t, env.db.Model(&models.UserRating{}).
		Where("subject_kind = ? AND subject_id = ?", models.SubjectPost, post.ID).
		Count(&records).Error)
	assert.Equal(t, int64(4), records)
}

func TestRatePostKeyMismatchDetected(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	voter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "tampered")
	require.NoError(t, err)

	// A row planted under the voter's derived key but describing a different
	// voter must be rejected, not silently toggled.
	key := models.RatingKey(models.SubjectPost, post.ID, voter)
	require.NoError(t, env.db.Create(&models.UserRating{
		ID:          key,
		SubjectKind: models.SubjectPost,
		SubjectID:   post.ID,
		VoterID:     uuid.New(),
		HasRated:    true,
		IsUpvote:    true,
	}).Error)

	_, err = env.ratings.RatePost(voter, post.ID, false)
	assert.ErrorIs(t, err, ErrRatingKeyMismatch)
}

func TestRatePostInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	voter := env.newUser(t, 0, 0)

	post, err := env.content.CreatePost(author, "unaffordable vote")
	require.NoError(t, err)

	_, err = env.ratings.RatePost(voter, post.ID, true)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	_, err = env.ratings.RatePostWithToken(voter, post.ID, true)
	assert.ErrorIs(t, err, ledger.ErrInsufficientTokens)

	fresh, err := env.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fresh.Rating)
}
