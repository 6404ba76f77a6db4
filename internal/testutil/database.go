// Package testutil provides shared fixtures for stmtgen tests: a migrated
// holiday database, provider templates and statement requests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database seeded with holidays.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.Holidays("np", "2024-10-03", "2024-10-11")...,
//	)
func SetupTestDB(t *testing.T, holidays ...model.Holiday) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(holidays) > 0 {
		if err := store.SaveHolidays(ctx, holidays); err != nil {
			t.Fatalf("failed to seed holidays: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustCalendar returns every holiday in calendar or fails the test.
func (db *TestDB) MustCalendar(calendar string) []model.Holiday {
	db.t.Helper()
	holidays, err := db.Storage.GetCalendar(context.Background(), calendar)
	if err != nil {
		db.t.Fatalf("failed to load calendar %q: %v", calendar, err)
	}
	return holidays
}

// Holidays builds holidays for calendar from ISO dates. It panics on a
// malformed date, which is always a bug in the test.
func Holidays(calendar string, dates ...string) []model.Holiday {
	holidays := make([]model.Holiday, 0, len(dates))
	for _, d := range dates {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		holidays = append(holidays, model.Holiday{Calendar: calendar, Date: date, Name: d})
	}
	return holidays
}
