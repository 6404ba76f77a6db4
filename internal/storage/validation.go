// Package storage provides the holiday calendar persistence layer.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/stmtgen/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrEmptySlice       = errors.New("slice cannot be empty")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidHoliday   = errors.New("invalid holiday")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidDateRange, end.Format(dateLayout), start.Format(dateLayout))
	}
	return nil
}

func validateHolidays(holidays []model.Holiday) error {
	if len(holidays) == 0 {
		return fmt.Errorf("%w: holidays", ErrEmptySlice)
	}
	for i := range holidays {
		if err := validateHoliday(&holidays[i]); err != nil {
			return fmt.Errorf("holiday at index %d: %w", i, err)
		}
	}
	return nil
}

func validateHoliday(h *model.Holiday) error {
	if strings.TrimSpace(h.Calendar) == "" {
		return fmt.Errorf("%w: missing calendar", ErrInvalidHoliday)
	}
	if h.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidHoliday)
	}
	return nil
}
