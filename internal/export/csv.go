// Package export writes generated statements in machine-readable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/money"
)

// CSVColumns is the column order of exported ledgers.
var CSVColumns = []string{"Date", "Description", "Ref", "Debit", "Credit", "Balance"}

// CSVWriter writes statements to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, req model.StatementRequest, result *model.StatementResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, req, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write writes the ledger in CSV format. Amounts carry two decimals and no
// thousands separators; empty debit or credit cells stay empty.
func (w *CSVWriter) Write(out io.Writer, req model.StatementRequest, result *model.StatementResult) error {
	if result == nil {
		return ErrNoStatement
	}

	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		meta := [][]string{
			{"# Period", calendar.FormatDisplayDate(req.StartDate) + " to " + calendar.FormatDisplayDate(req.EndDate)},
			{"# Opening Balance", money.FormatMoneyNoSeparator(req.OpeningBalance)},
			{"# Interest Rate", money.FormatMoneyNoSeparator(req.InterestRate)},
			{"# Tax Rate", money.FormatMoneyNoSeparator(req.TaxRate)},
		}
		if err := writer.WriteAll(meta); err != nil {
			return fmt.Errorf("failed to write CSV metadata: %w", err)
		}
	}

	if err := writer.Write(CSVColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range result.Transactions {
		record := []string{
			row.Date,
			row.Desc,
			row.Ref,
			optional(row.Debit),
			optional(row.Credit),
			money.FormatMoneyNoSeparator(row.Balance),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return money.FormatMoneyNoSeparator(*v)
}
