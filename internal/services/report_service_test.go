package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/solcialhq/forum-backend/internal/models"
)

func TestReportPostMarksAndCounts(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	reporter := env.newUser(t, 10_000_000, 0)
	platformBefore := env.nativeBalance(t, env.platformID)

	post, err := env.content.CreatePost(author, "questionable")
	require.NoError(t, err)

	report, err := env.reports.ReportPost(reporter, post.ID, "spam")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), report.ID)
	assert.False(t, report.IsResolved)
	assert.Equal(t, models.ReportKey(models.SubjectPost, models.ForumID, report.ID), report.RecordKey)

	fresh, err := env.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsReported)
	assert.Equal(t, uint64(1), fresh.ReportCount)

	// Report fees settle at the platform, including the post fee before.
	assert.Equal(t, platformBefore+1_000_000+2_000_000, env.nativeBalance(t, env.platformID))
	assert.Equal(t, int64(10_000_000-2_000_000), env.nativeBalance(t, reporter))
}

func TestReportCounterSharedAcrossKinds(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	reporter := env.newUser(t, 100_000_000, 0)

	post, err := env.content.CreatePost(author, "parent")
	require.NoError(t, err)
	reply, err := env.content.CreateReply(author, post.ID, "child")
	require.NoError(t, err)

	pr, err := env.reports.ReportPost(reporter, post.ID, "first")
	require.NoError(t, err)
	rr, err := env.reports.ReportReply(reporter, reply.ID, "second")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), pr.ID)
	assert.Equal(t, uint64(1), rr.ID)

	forum := env.forum(t)
	assert.Equal(t, uint64(2), forum.ReportCount)
}

func TestReportPostCeiling(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	reporter := env.newUser(t, 100_000_000, 0)

	post, err := env.content.CreatePost(author, "heavily reported")
	require.NoError(t, err)

	// Fast-forward the per-item counter to one below the ceiling.
	require.NoError(t, env.db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Update("report_count", MaxReportsPerItem-1).Error)

	_, err = env.reports.ReportPost(reporter, post.ID, "reaches the ceiling")
	require.NoError(t, err)

	balanceBefore := env.nativeBalance(t, reporter)
	_, err = env.reports.ReportPost(reporter, post.ID, "one too many")
	assert.ErrorIs(t, err, ErrMaxReportsReached)
	// Rejected before the fee is charged.
	assert.Equal(t, balanceBefore, env.nativeBalance(t, reporter))

	fresh, err := env.content.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(MaxReportsPerItem), fresh.ReportCount)
}

func TestReportReasonValidation(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	reporter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "target")
	require.NoError(t, err)

	_, err = env.reports.ReportPost(reporter, post.ID, "")
	assert.ErrorIs(t, err, ErrReasonEmpty)

	_, err = env.reports.ReportPost(reporter, post.ID, strings.Repeat("r", MaxReasonLength+1))
	assert.ErrorIs(t, err, ErrReasonTooLong)
}

func TestResolvePostReportIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	reporter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "resolve me")
	require.NoError(t, err)
	report, err := env.reports.ReportPost(reporter, post.ID, "abuse")
	require.NoError(t, err)

	resolved, err := env.reports.ResolvePostReport(env.adminID, report.ID, "content removed")
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	assert.Equal(t, "content removed", resolved.AdminAction)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = env.reports.ResolvePostReport(env.adminID, report.ID, "second attempt")
	assert.ErrorIs(t, err, ErrReportAlreadyResolved)
}

func TestResolveReplyReportIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	reporter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "parent")
	require.NoError(t, err)
	reply, err := env.content.CreateReply(author, post.ID, "child")
	require.NoError(t, err)

	report, err := env.reports.ReportReply(reporter, reply.ID, "abuse")
	require.NoError(t, err)
	require.Equal(t, uint64(0), report.ID)

	resolved, err := env.reports.ResolveReplyReport(env.adminID, report.ID, "reply removed")
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	assert.Equal(t, "reply removed", resolved.AdminAction)

	_, err = env.reports.ResolveReplyReport(env.adminID, report.ID, "again")
	assert.ErrorIs(t, err, ErrReportAlreadyResolved)

	require.NoError(t, env.reports.CloseReplyReport(env.adminID, report.ID))
}

func TestResolveRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 10_000_000, 0)
	reporter := env.newUser(t, 10_000_000, 0)

	post, err := env.content.CreatePost(author, "target")
	require.NoError(t, err)
	report, err := env.reports.ReportPost(reporter, post.ID, "abuse")
	require.NoError(t, err)

	_, err = env.reports.ResolvePostReport(reporter, report.ID, "not my call")
	assert.ErrorIs(t, err, ErrNotAdmin)

	var fresh models.PostReport
	require.NoError(t, env.db.First(&fresh, "id = ?", report.ID).Error)
	assert.False(t, fresh.IsResolved)
	assert.Empty(t, fresh.AdminAction)
}

func TestResolveUnknownReport(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)

	_, err := env.reports.ResolvePostReport(env.adminID, 42, "nothing there")
	assert.ErrorIs(t, err, ErrInvalidReportID)
}

func TestCloseReportAnyState(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	reporter := env.newUser(t, 100_000_000, 0)

	post, err := env.content.CreatePost(author, "target")
	require.NoError(t, err)

	open, err := env.reports.ReportPost(reporter, post.ID, "first")
	require.NoError(t, err)
	settled, err := env.reports.ReportPost(reporter, post.ID, "second")
	require.NoError(t, err)
	_, err = env.reports.ResolvePostReport(env.adminID, settled.ID, "handled")
	require.NoError(t, err)

	// Close works on unresolved and resolved reports alike.
	require.NoError(t, env.reports.ClosePostReport(env.adminID, open.ID))
	require.NoError(t, env.reports.ClosePostReport(env.adminID, settled.ID))

	err = env.reports.ClosePostReport(env.adminID, open.ID)
	assert.ErrorIs(t, err, ErrInvalidReportID)

	var count int64
	require.NoError(t, env.db.Model(&models.PostReport{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCloseReportRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)

	err := env.reports.ClosePostReport(uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestReportReplyWithToken(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	reporter := env.newUser(t, 0, 1_000_000_000)

	post, err := env.content.CreatePost(author, "parent")
	require.NoError(t, err)
	reply, err := env.content.CreateReply(author, post.ID, "child")
	require.NoError(t, err)

	platformBefore := env.tokenBalance(t, env.platformID)
	report, err := env.reports.ReportReplyWithToken(reporter, reply.ID, "token reported")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), report.ID)

	assert.Equal(t, int64(1_000_000_000-200_000_000), env.tokenBalance(t, reporter))
	assert.Equal(t, platformBefore+200_000_000, env.tokenBalance(t, env.platformID))
}

func TestListReportsFilter(t *testing.T) {
	env := newTestEnv(t)
	env.initForum(t)
	author := env.newUser(t, 100_000_000, 0)
	reporter := env.newUser(t, 100_000_000, 0)

	post, err := env.content.CreatePost(author, "target")
	require.NoError(t, err)
	first, err := env.reports.ReportPost(reporter, post.ID, "first")
	require.NoError(t, err)
	_, err = env.reports.ReportPost(reporter, post.ID, "second")
	require.NoError(t, err)
	_, err = env.reports.ResolvePostReport(env.adminID, first.ID, "handled")
	require.NoError(t, err)

	unresolved := false
	postReports, replyReports, err := env.reports.ListReports(&unresolved, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, replyReports)
	require.Len(t, postReports, 1)
	assert.Equal(t, uint64(1), postReports[0].ID)
}
