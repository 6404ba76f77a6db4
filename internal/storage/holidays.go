package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
)

// Dates are stored as ISO text so range queries compare lexically.
const dateLayout = "2006-01-02"

// SaveHolidays inserts or renames holidays. A holiday already present in its
// calendar keeps its creation time.
func (s *SQLiteStorage) SaveHolidays(ctx context.Context, holidays []model.Holiday) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHolidays(holidays); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO holidays (calendar, date, name, source, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(calendar, date) DO UPDATE SET
			name = excluded.name,
			source = excluded.source
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare holiday insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, h := range holidays {
		created := h.CreatedAt
		if created.IsZero() {
			created = now
		}
		if _, err := stmt.ExecContext(ctx, h.Calendar, h.Date.Format(dateLayout), h.Name, h.Source, created); err != nil {
			return fmt.Errorf("failed to save holiday %s: %w", h.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// GetHolidays returns a calendar's holidays within [start, end], ordered by date.
func (s *SQLiteStorage) GetHolidays(ctx context.Context, calendar string, start, end time.Time) ([]model.Holiday, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(calendar, "calendar"); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.queryHolidays(ctx, s.db, `
		SELECT calendar, date, name, source, created_at
		FROM holidays
		WHERE calendar = ? AND date >= ? AND date <= ?
		ORDER BY date
	`, calendar, start.Format(dateLayout), end.Format(dateLayout))
}

// GetCalendar returns every holiday of a calendar, ordered by date.
func (s *SQLiteStorage) GetCalendar(ctx context.Context, calendar string) ([]model.Holiday, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(calendar, "calendar"); err != nil {
		return nil, err
	}
	return s.queryHolidays(ctx, s.db, `
		SELECT calendar, date, name, source, created_at
		FROM holidays
		WHERE calendar = ?
		ORDER BY date
	`, calendar)
}

func (s *SQLiteStorage) queryHolidays(ctx context.Context, q queryable, query string, args ...any) ([]model.Holiday, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var holidays []model.Holiday
	for rows.Next() {
		var h model.Holiday
		var date string
		if err := rows.Scan(&h.Calendar, &date, &h.Name, &h.Source, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		if h.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("failed to parse holiday date %q: %w", date, err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}

// ListCalendars summarises every stored calendar, ordered by name.
func (s *SQLiteStorage) ListCalendars(ctx context.Context) ([]model.CalendarSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT calendar, COUNT(*), MIN(date), MAX(date)
		FROM holidays
		GROUP BY calendar
		ORDER BY calendar
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendars: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calendars []model.CalendarSummary
	for rows.Next() {
		var c model.CalendarSummary
		var first, last string
		if err := rows.Scan(&c.Name, &c.Holidays, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan calendar: %w", err)
		}
		if c.First, err = time.Parse(dateLayout, first); err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", first, err)
		}
		if c.Last, err = time.Parse(dateLayout, last); err != nil {
			return nil, fmt.Errorf("failed to parse date %q: %w", last, err)
		}
		calendars = append(calendars, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendars: %w", err)
	}

	return calendars, nil
}

// DeleteHoliday removes one date from a calendar.
func (s *SQLiteStorage) DeleteHoliday(ctx context.Context, calendar string, date time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(calendar, "calendar"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM holidays WHERE calendar = ? AND date = ?
	`, calendar, date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteCalendar removes a calendar and returns how many holidays it held.
func (s *SQLiteStorage) DeleteCalendar(ctx context.Context, calendar string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(calendar, "calendar"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE calendar = ?`, calendar)
	if err != nil {
		return 0, fmt.Errorf("failed to delete calendar: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return 0, common.ErrNotFound
	}
	return int(affected), nil
}

// HolidayExists reports whether a calendar lists a date.
func (s *SQLiteStorage) HolidayExists(ctx context.Context, calendar string, date time.Time) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM holidays WHERE calendar = ? AND date = ?
	`, calendar, date.Format(dateLayout)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return true, nil
}
