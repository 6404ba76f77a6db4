package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/stmtgen/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "np", wantErr: false},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "calendar")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	if err := validateDateRange(start, start); err != nil {
		t.Errorf("equal dates should be valid, got %v", err)
	}
	if err := validateDateRange(start, start.AddDate(0, 1, 0)); err != nil {
		t.Errorf("forward range should be valid, got %v", err)
	}
	if err := validateDateRange(start, start.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("backward range error = %v, want ErrInvalidDateRange", err)
	}
}

func TestValidateHolidays(t *testing.T) {
	valid := model.Holiday{Calendar: "np", Date: time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		wantErr  error
		name     string
		holidays []model.Holiday
	}{
		{name: "valid", holidays: []model.Holiday{valid}},
		{name: "nil slice", holidays: nil, wantErr: ErrEmptySlice},
		{name: "blank calendar", holidays: []model.Holiday{valid, {Calendar: " ", Date: valid.Date}}, wantErr: ErrInvalidHoliday},
		{name: "zero date", holidays: []model.Holiday{{Calendar: "np"}}, wantErr: ErrInvalidHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHolidays(tt.holidays)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateHolidays() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateHolidays() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
