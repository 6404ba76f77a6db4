package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stmtgen/internal/cli"
	"github.com/Veraticus/stmtgen/internal/export"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/ofx"
)

// Output formats.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatOFX   = "ofx"
	formatJSON  = "json"
)

// outputFlags choose how a generated statement is written.
type outputFlags struct {
	format    string
	output    string
	bankID    string
	accountID string
	currency  string
	csvMeta   bool
}

func (o *outputFlags) register(cmd *cobra.Command, defaultFormat string) {
	flags := cmd.Flags()
	flags.StringVarP(&o.format, "format", "f", defaultFormat, "output format (table, csv, ofx, json)")
	flags.StringVar(&o.bankID, "bank-id", "", "OFX bank identifier")
	flags.StringVar(&o.accountID, "account-id", "", "OFX account number")
	flags.StringVar(&o.currency, "currency", ofx.DefaultCurrency, "OFX ISO 4217 currency code")
	flags.BoolVar(&o.csvMeta, "csv-metadata", false, "prefix CSV output with statement parameters")
}

func (o *outputFlags) validate(allowTable bool) error {
	switch o.format {
	case formatCSV, formatOFX, formatJSON:
		return nil
	case formatTable:
		if allowTable {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q", o.format)
}

// extension is the file suffix for the chosen format.
func (o *outputFlags) extension() string {
	if o.format == formatTable {
		return "txt"
	}
	return o.format
}

func (o *outputFlags) csvWriter() *export.CSVWriter {
	return &export.CSVWriter{IncludeHeader: o.csvMeta}
}

func (o *outputFlags) ofxWriter() *ofx.Writer {
	return ofx.NewWriter(ofx.Account{BankID: o.bankID, AccountID: o.accountID, Currency: o.currency})
}

func (o *outputFlags) write(w io.Writer, tmpl model.TransactionTemplate, req model.StatementRequest, result *model.StatementResult) error {
	switch o.format {
	case formatCSV:
		return o.csvWriter().Write(w, req, result)
	case formatOFX:
		return o.ofxWriter().Write(w, req, result)
	case formatJSON:
		return export.WriteJSON(w, result)
	default:
		_, err := fmt.Fprintln(w, cli.NewStatementFormatter(tmpl).Format(req, result))
		return err
	}
}

// writeFile writes the statement to path in the chosen format.
func (o *outputFlags) writeFile(path string, tmpl model.TransactionTemplate, req model.StatementRequest, result *model.StatementResult) error {
	switch o.format {
	case formatCSV:
		return o.csvWriter().WriteToFile(path, req, result)
	case formatOFX:
		return o.ofxWriter().WriteToFile(path, req, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := o.write(f, tmpl, req, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func generateCmd() *cobra.Command {
	var (
		req requestFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one statement",
		Long: `Generate a synthetic statement for the given period and print it.

Amounts accept thousands separators and currency marks, so "2,50,000" and
"Rs. 45,000" are both valid.`,
		Example: `  stmtgen generate --start 2024-07-16 --end 2025-01-14 --opening 2,50,000 \
    --count 120 --min 550 --max 45,000 --interest 5 --tax 5 --calendar nepal
  stmtgen generate ... --format ofx --output statement.ofx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := out.validate(true); err != nil {
				return err
			}

			run, err := req.setup(cmd)
			if err != nil {
				return err
			}

			gen := run.generator(0)
			result, err := gen.Generate(run.request)
			if err != nil {
				return err
			}

			if out.output == "" {
				return out.write(cmd.OutOrStdout(), gen.Template(), run.request, result)
			}
			if err := out.writeFile(out.output, gen.Template(), run.request, result); err != nil {
				return err
			}

			slog.Info("Statement written", "path", out.output, "rows", len(result.Transactions))
			return nil
		},
	}

	req.register(cmd)
	out.register(cmd, formatTable)
	cmd.Flags().StringVarP(&out.output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
