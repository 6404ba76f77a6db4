package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
)

func loadYAML(t *testing.T, content string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(content)))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("STMTGEN_TEST_DIR", "/srv/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/db/stmtgen.db", want: filepath.Join(home, "db", "stmtgen.db")},
		{input: "$STMTGEN_TEST_DIR/stmtgen.db", want: "/srv/data/stmtgen.db"},
		{input: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "stmtgen"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".local", "share", "stmtgen", "stmtgen.db"), ExpandPath(DefaultDatabasePath()))
}

func TestLoadTemplate_Default(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	tmpl, err := LoadTemplate()
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate(), tmpl)
	assert.NoError(t, ValidateTemplate(tmpl))
}

func TestLoadTemplate_FromConfig(t *testing.T) {
	loadYAML(t, `
template:
  name: everest
  transaction_descriptions:
    deposits:
      - Counter Deposit
    interest: Interest Paid
  statement:
    account_info:
      boxed: false
`)

	tmpl, err := LoadTemplate()
	require.NoError(t, err)

	assert.Equal(t, "everest", tmpl.Name)
	assert.Equal(t, []string{"Counter Deposit"}, tmpl.TransactionDescriptions.Deposits)
	assert.Equal(t, DefaultTemplate().TransactionDescriptions.Withdrawals, tmpl.TransactionDescriptions.Withdrawals)
	assert.Equal(t, "Interest Paid", tmpl.TransactionDescriptions.Interest)
	assert.Equal(t, DefaultTemplate().TransactionDescriptions.Tax, tmpl.TransactionDescriptions.Tax)
	assert.False(t, tmpl.Statement.AccountInfo.Boxed)
}

func TestLoadTemplate_BoxedDefaultsWhenUnset(t *testing.T) {
	loadYAML(t, `
template:
  name: nabil
`)

	tmpl, err := LoadTemplate()
	require.NoError(t, err)
	assert.True(t, tmpl.Statement.AccountInfo.Boxed)
}

func TestLoadTemplate_BlankDescription(t *testing.T) {
	loadYAML(t, `
template:
  transaction_descriptions:
    withdrawals: ["ATM", "  "]
`)

	_, err := LoadTemplate()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadTemplateFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bank.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
name: himalayan
transaction_descriptions:
  deposits: [Deposit A, Deposit B]
  withdrawals: [Withdrawal A]
  interest: Interest
  tax: Tax
`), 0600))

		tmpl, err := LoadTemplateFile(path)
		require.NoError(t, err)
		assert.Equal(t, model.TransactionTemplate{
			Name: "himalayan",
			TransactionDescriptions: model.TransactionDescriptions{
				Deposits:    []string{"Deposit A", "Deposit B"},
				Withdrawals: []string{"Withdrawal A"},
				Interest:    "Interest",
				Tax:         "Tax",
			},
			Statement: model.StatementLayout{AccountInfo: model.AccountInfo{Boxed: true}},
		}, tmpl)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "bank.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "name": "sanima",
  "transaction_descriptions": {"deposits": ["In"], "withdrawals": ["Out"]},
  "statement": {"account_info": {"boxed": false}}
}`), 0600))

		tmpl, err := LoadTemplateFile(path)
		require.NoError(t, err)
		assert.Equal(t, "sanima", tmpl.Name)
		assert.Equal(t, []string{"In"}, tmpl.TransactionDescriptions.Deposits)
		assert.False(t, tmpl.Statement.AccountInfo.Boxed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTemplateFile(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidateTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	tmpl.TransactionDescriptions.Deposits = nil
	assert.ErrorIs(t, ValidateTemplate(tmpl), common.ErrInvalidConfig)

	tmpl = DefaultTemplate()
	tmpl.TransactionDescriptions.Tax = ""
	assert.ErrorIs(t, ValidateTemplate(tmpl), common.ErrInvalidConfig)
}

func TestLoadGeneratorConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		cfg, err := LoadGeneratorConfig()
		require.NoError(t, err)
		assert.Equal(t, calendar.DefaultInterestAnchors, cfg.InterestAnchors)
		assert.Zero(t, cfg.Seed)
		assert.False(t, cfg.Seeded)
		assert.Empty(t, cfg.Calendar)
	})

	t.Run("configured", func(t *testing.T) {
		loadYAML(t, `
generator:
  calendar: np
  seed: 99
  interest_anchors: ["03-31", "09-30"]
`)

		cfg, err := LoadGeneratorConfig()
		require.NoError(t, err)
		assert.Equal(t, "np", cfg.Calendar)
		assert.Equal(t, uint64(99), cfg.Seed)
		assert.True(t, cfg.Seeded)

		anchors, err := cfg.Anchors()
		require.NoError(t, err)
		assert.Equal(t, []string{"03-31", "09-30"}, anchors.MonthDays())
	})

	t.Run("zero seed is still a seed", func(t *testing.T) {
		loadYAML(t, `
generator:
  seed: 0
`)

		cfg, err := LoadGeneratorConfig()
		require.NoError(t, err)
		assert.Zero(t, cfg.Seed)
		assert.True(t, cfg.Seeded)
	})

	t.Run("bad anchor", func(t *testing.T) {
		loadYAML(t, `
generator:
  interest_anchors: ["31-03"]
`)

		_, err := LoadGeneratorConfig()
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}
