package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/storage"
	"github.com/Veraticus/stmtgen/internal/testutil"
)

var statementArgs = []string{
	"--start", "2024-09-01",
	"--end", "2024-12-31",
	"--opening", "2,50,000",
	"--count", "60",
	"--min", "550",
	"--max", "45,000",
	"--interest", "5",
	"--tax", "5",
}

// useDatabase points database.path at a fresh file for the test.
func useDatabase(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "stmtgen.db")
	viper.Set("database.path", path)
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeResult(t *testing.T, out string) model.StatementResult {
	t.Helper()
	var result model.StatementResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestGenerateCmd_SeededJSON(t *testing.T) {
	useDatabase(t)
	args := append([]string{"--no-db", "--seed", "7", "--format", "json"}, statementArgs...)

	first, err := execute(t, generateCmd(), args...)
	require.NoError(t, err)
	second, err := execute(t, generateCmd(), args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	result := decodeResult(t, first)
	require.NotEmpty(t, result.Transactions)
	assert.Equal(t, model.OpeningDescription, result.Transactions[0].Desc)
	assert.Equal(t, 250000.0, result.Transactions[0].Balance)

	last := result.Transactions[len(result.Transactions)-1]
	assert.Equal(t, last.Balance, result.Totals.Balance)
}

func TestGenerateCmd_ZeroSeedIsRepeatable(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
		args  []string
	}{
		{
			name: "flag",
			args: []string{"--seed", "0"},
		},
		{
			name:  "config",
			setup: func() { viper.Set("generator.seed", 0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useDatabase(t)
			if tt.setup != nil {
				tt.setup()
			}
			args := append(append([]string{"--no-db", "--format", "json"}, tt.args...), statementArgs...)

			first, err := execute(t, generateCmd(), args...)
			require.NoError(t, err)
			second, err := execute(t, generateCmd(), args...)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestGenerateCmd_SkipsStoredHolidays(t *testing.T) {
	dbPath := useDatabase(t)

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	var dates []string
	for d := calendar.Date(2024, time.September, 2); d.Before(calendar.Date(2024, time.October, 1)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, calendar.ToSimpleDateString(d))
	}
	require.NoError(t, store.SaveHolidays(context.Background(), testutil.Holidays("np", dates...)))
	require.NoError(t, store.Close())

	args := append([]string{"--calendar", "np", "--holiday", "2024-10-02", "--seed", "3", "--format", "json"}, statementArgs...)
	out, err := execute(t, generateCmd(), args...)
	require.NoError(t, err)

	blocked := calendar.Date(2024, time.October, 2)
	for _, row := range decodeResult(t, out).Transactions[1:] {
		assert.False(t, row.PostedOn.Month() == time.September, "row posted in holiday month: %s", row.Date)
		assert.False(t, row.PostedOn.Equal(blocked), "row posted on --holiday date")
	}
}

func TestGenerateCmd_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "table", format: "table", want: "Balance B/F"},
		{name: "csv", format: "csv", want: "Date,Description,Ref,Debit,Credit,Balance"},
		{name: "ofx", format: "ofx", want: "<BANKTRANLIST>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useDatabase(t)
			args := append([]string{"--no-db", "--seed", "1", "--format", tt.format}, statementArgs...)
			out, err := execute(t, generateCmd(), args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGenerateCmd_OutputFile(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "csv", want: "Date,Description,Ref,Debit,Credit,Balance"},
		{format: "ofx", want: "<OFX>"},
		{format: "json", want: `"transactions"`},
		{format: "table", want: "Balance B/F"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			useDatabase(t)
			path := filepath.Join(t.TempDir(), "statement."+tt.format)
			args := append([]string{"--no-db", "--format", tt.format, "--output", path}, statementArgs...)

			out, err := execute(t, generateCmd(), args...)
			require.NoError(t, err)
			assert.Empty(t, out)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestGenerateCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing minimum",
			args:    []string{"--no-db", "--start", "2024-01-01", "--end", "2024-02-01", "--opening", "1000", "--count", "5", "--max", "100"},
			wantErr: "minTxn",
		},
		{
			name:    "unknown format",
			args:    append([]string{"--no-db", "--format", "xml"}, statementArgs...),
			wantErr: "unsupported format",
		},
		{
			name:    "bad anchor",
			args:    append([]string{"--no-db", "--anchors", "13-40"}, statementArgs...),
			wantErr: "interest_anchors",
		},
		{
			name:    "bad holiday",
			args:    append([]string{"--no-db", "--holiday", "someday"}, statementArgs...),
			wantErr: "Invalid --holiday date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useDatabase(t)
			_, err := execute(t, generateCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBatchCmd(t *testing.T) {
	useDatabase(t)
	dir := filepath.Join(t.TempDir(), "out")
	args := append([]string{"--no-db", "--seed", "11", "-n", "3", "--dir", dir, "--format", "csv"}, statementArgs...)

	_, err := execute(t, batchCmd(), args...)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "statement-001.csv", entries[0].Name())

	first, err := os.ReadFile(filepath.Join(dir, "statement-001.csv"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "statement-002.csv"))
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(second), "statements use different seeds")

	// statement N of a seeded batch is reproducible with generate --seed seed+N
	single := filepath.Join(t.TempDir(), "single.csv")
	args = append([]string{"--no-db", "--seed", "12", "--format", "csv", "--output", single}, statementArgs...)
	_, err = execute(t, generateCmd(), args...)
	require.NoError(t, err)
	again, err := os.ReadFile(single)
	require.NoError(t, err)
	assert.Equal(t, string(second), string(again))
}

func TestBatchCmd_RejectsTable(t *testing.T) {
	useDatabase(t)
	args := append([]string{"--no-db", "--format", "table"}, statementArgs...)
	_, err := execute(t, batchCmd(), args...)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestWordsCmd(t *testing.T) {
	out, err := execute(t, wordsCmd(), "12345678.9", "Rs. 2,50,000")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "12,345,678.90\tOne Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight And Ninety Paisa Only", lines[0])
	assert.Contains(t, lines[1], "Two Lakh Fifty Thousand Only")

	_, err = execute(t, wordsCmd(), "abc")
	assert.ErrorContains(t, err, `"abc" is not an amount`)

	_, err = execute(t, wordsCmd(), "-5")
	assert.ErrorContains(t, err, "cannot be spelled out")
}

func TestMigrateCmd_Status(t *testing.T) {
	useDatabase(t)

	out, err := execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 0")

	_, err = execute(t, migrateCmd())
	require.NoError(t, err)

	out, err = execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")
}
