package services

import (
	"testing"

	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useTestSource points database.C at a fresh in-memory sqlite source.
// A single connection keeps the whole database on one handle.
func useTestSource(t *testing.T) {
	t.Helper()

	source, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	raw, err := source.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(source))
	database.C = source
}

func makeAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := LoadOrCreateAccount(name, name)
	require.NoError(t, err)
	return account
}

// joinAsMember redeems the workspace's invite code for the account.
func joinAsMember(t *testing.T, account models.Account, workspace models.Workspace) {
	t.Helper()

	_, err := JoinWorkspaceByCode(account, workspace.InviteCode)
	require.NoError(t, err)
}
