package users

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func TestRepository(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for _, name := range []string{"admin", "caixa"} {
		require.NoError(t, conn.Create(&models.User{TenantID: 1, Username: name, PasswordHash: "digest", IsActive: true}).Error)
	}

	user, err := repo.FindByUsername(ctx, "caixa")
	require.NoError(t, err)
	assert.Equal(t, "caixa", user.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))
	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.True(t, at.Equal(*reloaded.LastLoginAt))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "admin", list[0].Username)
}

func TestUserDTOOmitsDigest(t *testing.T) {
	dto := FromModel(&models.User{ID: 7, Username: "admin", PasswordHash: "$argon2id$secret", Role: models.RoleAdmin})
	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "argon2id")
	assert.NotContains(t, string(raw), "password")
	assert.Nil(t, FromModel(nil))
}
