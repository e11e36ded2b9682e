package testutil

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/fictiverse/fictiverse-backend/internal/db"
	"github.com/fictiverse/fictiverse-backend/internal/pkg/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a throwaway SQLite database for the test and migrates the schema.
// The busy timeout matters: concurrency tests write from several goroutines.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)

	svc, err := db.NewSQLiteService(Logger(tb), dsn)
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return svc.DB()
}
