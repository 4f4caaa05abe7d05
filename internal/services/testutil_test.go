package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/requestdata"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

// newTestDB opens a per-test in-memory sqlite database and migrates the full
// schema. The shared cache keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Locker{},
		&types.Compartment{},
		&types.Package{},
		&types.AuditRecord{},
		&types.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func requestDataFromContext(t *testing.T, ctx context.Context) *requestdata.RequestData {
	t.Helper()
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("no request data in context")
	}
	return rd
}
