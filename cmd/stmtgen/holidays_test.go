package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/testutil"
)

func TestParseHolidayFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []model.Holiday
		wantErr string
	}{
		{
			name: "dates with and without names",
			input: `# Nepal 2024
2024-10-12,Dashain

2024-11-01, Tihar
2024-12-25
`,
			want: []model.Holiday{
				{Date: calendar.Date(2024, time.October, 12), Calendar: "np", Name: "Dashain", Source: "np.txt"},
				{Date: calendar.Date(2024, time.November, 1), Calendar: "np", Name: "Tihar", Source: "np.txt"},
				{Date: calendar.Date(2024, time.December, 25), Calendar: "np", Source: "np.txt"},
			},
		},
		{
			name:  "name containing a comma",
			input: "2024-01-11,Prithvi Jayanti, National Unity Day\n",
			want: []model.Holiday{
				{Date: calendar.Date(2024, time.January, 11), Calendar: "np", Name: "Prithvi Jayanti,National Unity Day", Source: "np.txt"},
			},
		},
		{
			name:  "display dates",
			input: "15-Jan-2024,Maghe Sankranti\n",
			want: []model.Holiday{
				{Date: calendar.Date(2024, time.January, 15), Calendar: "np", Name: "Maghe Sankranti", Source: "np.txt"},
			},
		},
		{
			name:    "bad date",
			input:   "2024-10-12\nsoon\n",
			wantErr: "line 2",
		},
		{
			name:    "only comments",
			input:   "# nothing here\n",
			wantErr: "no holidays found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHolidayFile(strings.NewReader(tt.input), "np", "np.txt")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoredHolidays(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.Holidays("np", "2024-09-10", "2024-10-03", "2024-12-25")...)
	ctx := context.Background()
	require.Len(t, db.MustCalendar("np"), 3)

	set, err := storedHolidays(ctx, db.Storage, "np", calendar.Date(2024, time.October, 1), calendar.Date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-10-03", "2024-12-25"}, set.Dates())

	empty, err := storedHolidays(ctx, db.Storage, "missing", calendar.Date(2024, time.October, 1), calendar.Date(2024, time.December, 31))
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	reversed, err := storedHolidays(ctx, db.Storage, "np", calendar.Date(2024, time.December, 31), calendar.Date(2024, time.October, 1))
	require.NoError(t, err)
	assert.Zero(t, reversed.Len())
}

func TestWriteCalendarTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCalendarTable(&buf, nil))
	assert.Contains(t, buf.String(), "No calendars found")

	buf.Reset()
	require.NoError(t, writeCalendarTable(&buf, []model.CalendarSummary{
		{Name: "np", Holidays: 2, First: calendar.Date(2024, time.October, 3), Last: calendar.Date(2024, time.December, 25)},
	}))
	assert.Contains(t, buf.String(), "np")
	assert.Contains(t, buf.String(), "03-Oct-2024")
	assert.Contains(t, buf.String(), "25-Dec-2024")
}

func TestHolidaysCommands(t *testing.T) {
	useDatabase(t)
	file := filepath.Join(t.TempDir(), "nepal.txt")
	require.NoError(t, os.WriteFile(file, []byte("2024-10-12,Dashain\n2024-11-01,Tihar\n"), 0600))

	out, err := execute(t, holidaysCmd(), "import", file, "--calendar", "np", "--backup")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 2 holidays into calendar "np"`)

	out, err = execute(t, holidaysCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "12-Oct-2024")

	out, err = execute(t, holidaysCmd(), "list", "--calendar", "np")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashain")
	assert.Contains(t, out, "nepal.txt")
	assert.Contains(t, out, "Sat")

	out, err = execute(t, holidaysCmd(), "delete", "--calendar", "np", "--date", "2024-11-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 01-Nov-2024")

	_, err = execute(t, holidaysCmd(), "delete", "--calendar", "np", "--date", "2024-11-01")
	assert.ErrorContains(t, err, "is not a holiday")
	assert.ErrorIs(t, err, common.ErrNotFound)

	out, err = execute(t, holidaysCmd(), "delete", "--calendar", "np")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 holidays)")

	backups, err := filepath.Glob(filepath.Join(filepath.Dir(databasePath()), "backups", "*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}
