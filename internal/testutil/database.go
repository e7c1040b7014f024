// Package testutil sets up isolated SQLite databases, seeds users, debts and
// fundings, and asserts on service errors.
package testutil

import (
	"fmt"
	"testing"

	"debtplanner/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the API owns, in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Debt{},
	&models.DebtPayment{},
	&models.OneTimeFunding{},
	&models.PlanSnapshot{},
	&models.AuditLog{},
}

// SetupTestDB opens a private in-memory SQLite database with every model
// migrated. Each call gets its own database, so parallel tests never see
// each other's rows. The database is closed when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:debtplanner_test_%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { closeDB(db) })
	return db
}

// TeardownTestDB closes the database early. It is safe to call more than
// once.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := closeDB(db); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
