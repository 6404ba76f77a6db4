// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/stmtgen/internal/model"
)

// HolidayStore defines the contract for the holiday calendar persistence layer.
type HolidayStore interface {
	SaveHolidays(ctx context.Context, holidays []model.Holiday) error
	GetHolidays(ctx context.Context, calendar string, start, end time.Time) ([]model.Holiday, error)
	GetCalendar(ctx context.Context, calendar string) ([]model.Holiday, error)
	ListCalendars(ctx context.Context) ([]model.CalendarSummary, error)
	DeleteHoliday(ctx context.Context, calendar string, date time.Time) error
	DeleteCalendar(ctx context.Context, calendar string) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// HolidayReader is the read side of HolidayStore, all a statement run needs.
type HolidayReader interface {
	GetHolidays(ctx context.Context, calendar string, start, end time.Time) ([]model.Holiday, error)
}
