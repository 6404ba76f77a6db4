package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/config"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/service"
	"github.com/Veraticus/stmtgen/internal/statement"
	"github.com/Veraticus/stmtgen/internal/storage"
)

// databasePath returns the configured holiday database with ~ and $VARS expanded.
func databasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	return config.ExpandPath(dbPath)
}

// initStorage opens the holiday database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// requestFlags are the statement parameters shared by generate and batch.
// Values stay strings so they go through the same parsing as a submitted form.
type requestFlags struct {
	form      model.RequestForm
	template  string
	calendar  string
	holidays  []string
	anchors   []string
	seed      uint64
	noStorage bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.form.StartDate, "start", "", "first day of the statement (YYYY-MM-DD)")
	flags.StringVar(&f.form.EndDate, "end", "", "last day of the statement (YYYY-MM-DD)")
	flags.StringVar(&f.form.OpeningBalance, "opening", "", "opening balance, e.g. 2,50,000")
	flags.StringVar(&f.form.TargetBalance, "target", "", "target closing balance (accepted, not used)")
	flags.StringVar(&f.form.InterestRate, "interest", "", "annual interest rate in percent")
	flags.StringVar(&f.form.TaxRate, "tax", "", "tax withheld from interest in percent")
	flags.StringVar(&f.form.TargetTxnCount, "count", "", "number of candidate transactions to draw")
	flags.StringVar(&f.form.MinTxn, "min", "", "smallest transaction amount")
	flags.StringVar(&f.form.MaxTxn, "max", "", "largest transaction amount")

	flags.StringVar(&f.template, "template", "", "template file (default: template section of the config)")
	flags.StringVar(&f.calendar, "calendar", "", "stored holiday calendar to skip (default: generator.calendar)")
	flags.StringSliceVar(&f.holidays, "holiday", nil, "extra holiday dates (YYYY-MM-DD), repeatable")
	flags.StringSliceVar(&f.anchors, "anchors", nil, "interest posting days as MM-DD (default: generator.interest_anchors)")
	flags.Uint64Var(&f.seed, "seed", 0, "random seed for repeatable output (default: generator.seed, unseeded when neither is set)")
	flags.BoolVar(&f.noStorage, "no-db", false, "do not read holidays from the database")
}

// statementRun is everything needed to build generators for one request.
type statementRun struct {
	request  model.StatementRequest
	template model.TransactionTemplate
	holidays calendar.HolidaySet
	anchors  calendar.AnchorSet
	seed     uint64
	seeded   bool
}

// generator builds a generator for the n-th statement of a run. Seeded runs
// use seed+n so every statement is repeatable on its own.
func (r *statementRun) generator(n uint64) *statement.Generator {
	opts := []statement.Option{
		statement.WithInterestAnchors(r.anchors),
		statement.WithLogger(slog.Default()),
	}
	if r.seeded {
		opts = append(opts, statement.WithSeed(r.seed+n))
	}
	return statement.NewGenerator(r.template, r.holidays, opts...)
}

// setup parses the request and resolves template, calendar and anchors.
// The seed comes from --seed when given, else from generator.seed.
func (f *requestFlags) setup(cmd *cobra.Command) (*statementRun, error) {
	ctx := cmd.Context()
	req, err := statement.ParseRequest(f.form)
	if err != nil {
		return nil, common.NewUserError("Invalid statement parameters", err)
	}

	tmpl, err := f.loadTemplate()
	if err != nil {
		return nil, err
	}

	genCfg, err := config.LoadGeneratorConfig()
	if err != nil {
		return nil, err
	}
	if len(f.anchors) > 0 {
		genCfg.InterestAnchors = f.anchors
	}
	if f.calendar != "" {
		genCfg.Calendar = f.calendar
	}
	if cmd.Flags().Changed("seed") {
		genCfg.Seed = f.seed
		genCfg.Seeded = true
	}

	anchors, err := genCfg.Anchors()
	if err != nil {
		return nil, err
	}

	holidays, err := f.loadHolidays(ctx, genCfg.Calendar, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := statement.ValidateRequest(req, tmpl); err != nil {
		return nil, common.NewUserError("Invalid statement parameters", err)
	}

	slog.Debug("Statement run ready",
		"template", tmpl.Name,
		"calendar", genCfg.Calendar,
		"holidays", holidays.Len(),
		"anchors", anchors.MonthDays(),
		"seeded", genCfg.Seeded,
		"seed", genCfg.Seed)

	return &statementRun{
		request:  req,
		template: tmpl,
		holidays: holidays,
		anchors:  anchors,
		seed:     genCfg.Seed,
		seeded:   genCfg.Seeded,
	}, nil
}

func (f *requestFlags) loadTemplate() (model.TransactionTemplate, error) {
	if f.template != "" {
		return config.LoadTemplateFile(f.template)
	}
	return config.LoadTemplate()
}

// loadHolidays merges the stored calendar's holidays in [start, end] with
// the --holiday dates.
func (f *requestFlags) loadHolidays(ctx context.Context, calendarName string, start, end time.Time) (calendar.HolidaySet, error) {
	extra, err := calendar.NewHolidaySet(f.holidays)
	if err != nil {
		return calendar.HolidaySet{}, common.NewUserError("Invalid --holiday date", err)
	}
	if calendarName == "" || f.noStorage {
		return extra, nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return calendar.HolidaySet{}, fmt.Errorf("failed to open holiday database: %w", err)
	}
	defer func() { _ = store.Close() }()

	stored, err := storedHolidays(ctx, store, calendarName, start, end)
	if err != nil {
		return calendar.HolidaySet{}, err
	}
	return stored.Union(extra), nil
}

// storedHolidays reads one calendar's holidays within [start, end]. An
// unknown calendar yields an empty set and a warning.
func storedHolidays(ctx context.Context, store service.HolidayReader, calendarName string, start, end time.Time) (calendar.HolidaySet, error) {
	if end.Before(start) {
		return calendar.HolidaySet{}, nil
	}
	holidays, err := store.GetHolidays(ctx, calendarName, start, end)
	if err != nil {
		return calendar.HolidaySet{}, fmt.Errorf("failed to load calendar %q: %w", calendarName, err)
	}
	if len(holidays) == 0 {
		slog.Warn("No stored holidays in range", "calendar", calendarName,
			"start", calendar.ToSimpleDateString(start), "end", calendar.ToSimpleDateString(end))
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return calendar.HolidaysFromTimes(dates), nil
}
