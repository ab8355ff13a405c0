package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/database"
	"github.com/solcialhq/forum-backend/internal/ledger"
	"github.com/solcialhq/forum-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testMint = "5Rbao9ekiUJbYteTjhYKif5VF95oZxfUy1ZGb5Mc9CYj"

type testEnv struct {
	db       *gorm.DB
	ledger   *ledger.Ledger
	admins   *authority.Set
	registry *RegistryService
	content  *ContentService
	ratings  *RatingService
	reports  *ReportService

	adminID    uuid.UUID
	platformID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	env := &testEnv{
		db:         db,
		adminID:    uuid.New(),
		platformID: uuid.New(),
	}
	env.ledger = ledger.New(env.platformID, testMint)
	env.admins = authority.NewSet(env.adminID.String())
	env.registry = NewRegistryService(db, env.admins)
	env.content = NewContentService(db, env.ledger)
	env.ratings = NewRatingService(db, env.ledger)
	env.reports = NewReportService(db, env.ledger, env.admins)

	// Platform collection accounts must exist and be funded before any fee
	// can settle there.
	require.NoError(t, env.ledger.Provision(db, env.platformID))
	require.NoError(t, env.ledger.Credit(db, env.platformID, 1_000_000_000, 1))

	return env
}

func (env *testEnv) initForum(t *testing.T) *models.Forum {
	t.Helper()
	forum, err := env.registry.InitializeForum(env.adminID)
	require.NoError(t, err)
	return forum
}

// newUser provisions a participant with the given balances.
func (env *testEnv) newUser(t *testing.T, native, token int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, env.ledger.Provision(env.db, id))
	if native != 0 || token != 0 {
		require.NoError(t, env.ledger.Credit(env.db, id, native, token))
	}
	return id
}

func (env *testEnv) nativeBalance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var account models.Account
	require.NoError(t, env.db.First(&account, "user_id = ?", userID).Error)
	return account.Balance
}

func (env *testEnv) tokenBalance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var account models.TokenAccount
	require.NoError(t, env.db.First(&account, "owner_id = ? AND mint = ?", userID, testMint).Error)
	return account.Balance
}

func (env *testEnv) forum(t *testing.T) *models.Forum {
	t.Helper()
	forum, err := env.registry.Forum()
	require.NoError(t, err)
	return forum
}

func (env *testEnv) eventCount(t *testing.T, kind string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Event{}).Where("kind = ?", kind).Count(&count).Error)
	return count
}
