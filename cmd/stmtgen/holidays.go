package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/cli"
	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage stored holiday calendars",
		Long: `Import, list and delete the holiday calendars that generate and batch
skip when drawing transaction dates. Saturdays are always skipped and need
not be listed.`,
	}

	cmd.AddCommand(holidaysImportCmd())
	cmd.AddCommand(holidaysListCmd())
	cmd.AddCommand(holidaysDeleteCmd())

	return cmd
}

func holidaysImportCmd() *cobra.Command {
	var (
		calendarName string
		source       string
		backup       bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import holidays from a file",
		Long: `Import holidays into a calendar. Each line holds a date and an optional
name separated by a comma; blank lines and lines starting with # are ignored.

  2024-10-12,Dashain
  2024-11-01,Tihar
  2024-12-25

Dates already in the calendar are renamed rather than duplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			if source == "" {
				source = filepath.Base(path)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			holidays, err := parseHolidayFile(f, calendarName, source)
			_ = f.Close()
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Could not read holidays from %s", path), err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			if backup {
				dest := store.BackupPath(time.Now())
				if err := store.Backup(ctx, dest); err != nil {
					return fmt.Errorf("failed to back up database: %w", err)
				}
				slog.Info("Database backed up", "path", dest)
			}

			if err := store.SaveHolidays(ctx, holidays); err != nil {
				return fmt.Errorf("failed to save holidays: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Imported %d holidays into calendar %q", len(holidays), calendarName)))
			return err
		},
	}

	cmd.Flags().StringVarP(&calendarName, "calendar", "c", "", "calendar to import into")
	cmd.Flags().StringVar(&source, "source", "", "source recorded with each holiday (default: file name)")
	cmd.Flags().BoolVar(&backup, "backup", false, "back up the database before importing")
	_ = cmd.MarkFlagRequired("calendar")

	return cmd
}

// parseHolidayFile reads "date[,name]" records. Any date format
// calendar.ParseDate accepts is allowed.
func parseHolidayFile(r io.Reader, calendarName, source string) ([]model.Holiday, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var holidays []model.Holiday
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		raw := strings.TrimSpace(record[0])
		if raw == "" {
			continue
		}
		date, err := calendar.ParseDate(raw)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		h := model.Holiday{
			Date:     date,
			Calendar: calendarName,
			Source:   source,
		}
		if len(record) > 1 {
			h.Name = strings.TrimSpace(strings.Join(record[1:], ","))
		}
		holidays = append(holidays, h)
	}

	if len(holidays) == 0 {
		return nil, errors.New("no holidays found")
	}
	return holidays, nil
}

func holidaysListCmd() *cobra.Command {
	var calendarName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calendars, or the holidays of one calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			out := cmd.OutOrStdout()
			if calendarName == "" {
				summaries, err := store.ListCalendars(ctx)
				if err != nil {
					return fmt.Errorf("failed to list calendars: %w", err)
				}
				return writeCalendarTable(out, summaries)
			}

			holidays, err := store.GetCalendar(ctx, calendarName)
			if err != nil {
				return fmt.Errorf("failed to load calendar: %w", err)
			}
			return writeHolidayTable(out, calendarName, holidays)
		},
	}

	cmd.Flags().StringVarP(&calendarName, "calendar", "c", "", "show the holidays of this calendar")

	return cmd
}

func writeCalendarTable(out io.Writer, summaries []model.CalendarSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render("No calendars found. Use 'stmtgen holidays import' to add one."))
		return err
	}

	if _, err := fmt.Fprintf(out, "%s\n\n", cli.FormatTitle("Holiday Calendars")); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Calendar"),
		cli.TableHeaderStyle.Render("Holidays"),
		cli.TableHeaderStyle.Render("First"),
		cli.TableHeaderStyle.Render("Last")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			s.Name,
			s.Holidays,
			calendar.FormatDisplayDate(s.First),
			calendar.FormatDisplayDate(s.Last)); err != nil {
			return fmt.Errorf("failed to write calendar row: %w", err)
		}
	}
	return w.Flush()
}

func writeHolidayTable(out io.Writer, calendarName string, holidays []model.Holiday) error {
	if len(holidays) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render(fmt.Sprintf("Calendar %q has no holidays.", calendarName)))
		return err
	}

	if _, err := fmt.Fprintf(out, "%s\n\n", cli.FormatTitle(cli.CalendarIcon+" "+calendarName)); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Day"),
		cli.TableHeaderStyle.Render("Name"),
		cli.TableHeaderStyle.Render("Source")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, h := range holidays {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			calendar.FormatDisplayDate(h.Date),
			h.Date.Weekday().String()[:3],
			h.Name,
			h.Source); err != nil {
			return fmt.Errorf("failed to write holiday row: %w", err)
		}
	}
	return w.Flush()
}

func holidaysDeleteCmd() *cobra.Command {
	var (
		calendarName string
		date         string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one holiday or a whole calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					slog.Error("failed to close storage", "error", closeErr)
				}
			}()

			out := cmd.OutOrStdout()
			if date == "" {
				n, err := store.DeleteCalendar(ctx, calendarName)
				if err != nil {
					return fmt.Errorf("failed to delete calendar: %w", err)
				}
				_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted calendar %q (%d holidays)", calendarName, n)))
				return err
			}

			day, err := calendar.ParseDate(date)
			if err != nil {
				return common.NewUserError("Invalid --date", err)
			}
			exists, err := store.HolidayExists(ctx, calendarName, day)
			if err != nil {
				return fmt.Errorf("failed to look up holiday: %w", err)
			}
			if !exists {
				return common.NewUserError(fmt.Sprintf("%s is not a holiday in %q", date, calendarName), common.ErrNotFound)
			}
			if err := store.DeleteHoliday(ctx, calendarName, day); err != nil {
				return fmt.Errorf("failed to delete holiday: %w", err)
			}
			_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %s from %q", calendar.FormatDisplayDate(day), calendarName)))
			return err
		},
	}

	cmd.Flags().StringVarP(&calendarName, "calendar", "c", "", "calendar to delete from")
	cmd.Flags().StringVar(&date, "date", "", "delete only this date (default: the whole calendar)")
	_ = cmd.MarkFlagRequired("calendar")

	return cmd
}
