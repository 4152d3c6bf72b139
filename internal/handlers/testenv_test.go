package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/worksys/workforce-api/internal/constants"
	"github.com/worksys/workforce-api/internal/database"
	"github.com/worksys/workforce-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.WorkAccount{},
		&models.TaskClaim{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// createUser inserts a user with a bcrypt-hashed password.
func createUser(t *testing.T, db *gorm.DB, username, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

// newTestContext builds a gin test context carrying an authenticated identity.
func newTestContext(t *testing.T, w *httptest.ResponseRecorder, userID uint64, role models.Role) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyRole, string(role))

	return c
}
