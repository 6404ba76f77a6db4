package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/money"
)

var ledgerColumns = []struct {
	title string
	align lipgloss.Position
}{
	{"Date", lipgloss.Left},
	{"Description", lipgloss.Left},
	{"Ref", lipgloss.Left},
	{"Debit", lipgloss.Right},
	{"Credit", lipgloss.Right},
	{"Balance", lipgloss.Right},
}

// StatementFormatter renders generated statements for the terminal.
type StatementFormatter struct {
	template model.TransactionTemplate
}

// NewStatementFormatter creates a formatter for statements narrated by template.
func NewStatementFormatter(template model.TransactionTemplate) *StatementFormatter {
	return &StatementFormatter{template: template}
}

// Format renders the account header, the ledger, the totals and the closing
// balance in words.
func (f *StatementFormatter) Format(req model.StatementRequest, result *model.StatementResult) string {
	if result == nil {
		return FormatError("No statement generated")
	}

	sections := []string{
		f.formatHeader(req),
		f.formatLedger(result.Transactions),
		f.formatTotals(result.Totals),
	}
	if words := money.NumberToWords(result.Totals.Balance); words != "" {
		sections = append(sections, SubtleStyle.Render("Closing balance in words: "+words+" Only"))
	}
	return strings.Join(sections, "\n\n")
}

func (f *StatementFormatter) formatHeader(req model.StatementRequest) string {
	name := f.template.Name
	if name == "" {
		name = "Account"
	}
	title := name + " Statement"

	lines := []string{
		fmt.Sprintf("Period:          %s to %s",
			calendar.FormatDisplayDate(req.StartDate), calendar.FormatDisplayDate(req.EndDate)),
		fmt.Sprintf("Opening balance: %s", money.FormatMoney(req.OpeningBalance)),
		fmt.Sprintf("Interest rate:   %s%% p.a. (tax %s%%)",
			money.FormatMoneyNoSeparator(req.InterestRate), money.FormatMoneyNoSeparator(req.TaxRate)),
	}
	body := strings.Join(lines, "\n")

	if f.template.Statement.AccountInfo.Boxed {
		return RenderBox(BankIcon+" "+title, body)
	}
	return FormatTitle(title) + "\n" + body
}

func (f *StatementFormatter) formatLedger(rows []model.LedgerRow) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Date,
			row.Desc,
			row.Ref,
			money.FormatOptional(row.Debit),
			money.FormatOptional(row.Credit),
			money.FormatMoney(row.Balance),
		})
	}

	widths := make([]int, len(ledgerColumns))
	for i, col := range ledgerColumns {
		widths[i] = lipgloss.Width(col.title)
	}
	for _, r := range cells {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var b strings.Builder
	header := make([]string, len(ledgerColumns))
	rule := make([]string, len(ledgerColumns))
	for i, col := range ledgerColumns {
		header[i] = TableHeaderStyle.Width(widths[i]).Align(col.align).Render(col.title)
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(strings.Join(header, "  "))
	b.WriteString("\n")
	b.WriteString(strings.Join(rule, "  "))

	for n, r := range cells {
		out := make([]string, len(r))
		for i, c := range r {
			style := lipgloss.NewStyle().Width(widths[i]).Align(ledgerColumns[i].align)
			switch {
			case i == 3 && c != "":
				style = style.Inherit(DebitStyle)
			case i == 4 && c != "":
				style = style.Inherit(CreditStyle)
			case i == 1 && rows[n].Kind.IsSystem():
				style = style.Inherit(SystemRowStyle)
			}
			out[i] = style.Render(c)
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(out, "  "))
	}
	return b.String()
}

func (f *StatementFormatter) formatTotals(totals model.Totals) string {
	lines := []string{
		fmt.Sprintf("%-16s %s", "Total debit:", DebitStyle.Render(money.FormatMoney(totals.Debit))),
		fmt.Sprintf("%-16s %s", "Total credit:", CreditStyle.Render(money.FormatMoney(totals.Credit))),
		fmt.Sprintf("%-16s %s", "Closing balance:", BoldStyle.Render(money.FormatMoney(totals.Balance))),
	}
	return strings.Join(lines, "\n")
}
