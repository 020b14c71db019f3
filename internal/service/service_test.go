package service_test

import (
	"fmt"
	"strings"
	"testing"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db            *gorm.DB
	boards        *service.BoardService
	auth          *service.AuthService
	notifications *service.NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	return &testEnv{
		db: db,
		boards: service.NewBoardService(
			repository.NewBoardRepository(db),
			repository.NewColumnRepository(db),
			repository.NewTaskRepository(db),
			users,
			notificationRepo,
			nil,
		),
		auth:          service.NewAuthService(users),
		notifications: service.NewNotificationService(notificationRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()

	user := &model.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         "member",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) userNotifications(t *testing.T, userID any) []model.Notification {
	t.Helper()

	var notifications []model.Notification
	require.NoError(t, e.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&notifications).Error)
	return notifications
}
