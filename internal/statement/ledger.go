package statement

import (
	"time"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
)

// ledger accumulates posted rows with a running balance.
type ledger struct {
	rows        []model.LedgerRow
	balance     float64
	totalDebit  float64
	totalCredit float64
}

func newLedger(openingBalance float64, openedOn time.Time, capacity int) *ledger {
	l := &ledger{
		rows:    make([]model.LedgerRow, 0, capacity+1),
		balance: openingBalance,
	}
	l.rows = append(l.rows, model.LedgerRow{
		PostedOn: openedOn,
		Date:     calendar.FormatDisplayDate(openedOn),
		Desc:     model.OpeningDescription,
		Ref:      model.RefTransfer,
		Kind:     model.RowOpening,
		Balance:  openingBalance,
	})
	return l
}

func (l *ledger) credit(day time.Time, desc, ref string, kind model.RowKind, amount float64) {
	l.balance += amount
	l.totalCredit += amount
	l.rows = append(l.rows, model.LedgerRow{
		PostedOn: day,
		Date:     calendar.FormatDisplayDate(day),
		Desc:     desc,
		Ref:      ref,
		Kind:     kind,
		Credit:   model.Amount(amount),
		Balance:  l.balance,
	})
}

func (l *ledger) debit(day time.Time, desc, ref string, kind model.RowKind, amount float64) {
	l.balance -= amount
	l.totalDebit += amount
	l.rows = append(l.rows, model.LedgerRow{
		PostedOn: day,
		Date:     calendar.FormatDisplayDate(day),
		Desc:     desc,
		Ref:      ref,
		Kind:     kind,
		Debit:    model.Amount(amount),
		Balance:  l.balance,
	})
}

func (l *ledger) post(txn model.Transaction) {
	if txn.IsDeposit() {
		l.credit(txn.Date, txn.Description, txn.Ref, model.RowDeposit, txn.Amount)
		return
	}
	l.debit(txn.Date, txn.Description, txn.Ref, model.RowWithdrawal, txn.Amount)
}

func (l *ledger) result() *model.StatementResult {
	return &model.StatementResult{
		Transactions: l.rows,
		Totals: model.Totals{
			Debit:   l.totalDebit,
			Credit:  l.totalCredit,
			Balance: l.balance,
		},
	}
}

// interestRun is the outcome of a ledger walk.
type interestRun struct {
	postings int
	accrued  float64
	withheld float64
}

// walker posts transactions day by day and credits interest on anchor days.
type walker struct {
	anchors      calendar.AnchorSet
	interestDesc string
	taxDesc      string
	interestRate float64
	taxRate      float64
}

// walk visits every day in (start, end]. Each day's transactions post in
// pool order, then the end-of-day balance joins the day-product sum. On an
// anchor day the sum is turned into interest and withholding tax and reset.
func (w *walker) walk(l *ledger, start, end time.Time, pool []model.Transaction) interestRun {
	byDay := make(map[string][]model.Transaction)
	for _, txn := range pool {
		key := calendar.ToSimpleDateString(txn.Date)
		byDay[key] = append(byDay[key], txn)
	}

	var run interestRun
	var dailyProductSum float64
	for day := start.AddDate(0, 0, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, txn := range byDay[calendar.ToSimpleDateString(day)] {
			l.post(txn)
		}

		dailyProductSum += l.balance

		if !w.anchors.IsAnchor(day) {
			continue
		}
		interest := dailyProductSum * w.interestRate / 36500
		if interest > 0 {
			tax := interest * w.taxRate / 100
			l.credit(day, w.interestDesc, model.RefInterest, model.RowInterest, interest)
			l.debit(day, w.taxDesc, model.RefTax, model.RowTax, tax)
			run.postings++
			run.accrued += interest
			run.withheld += tax
		}
		dailyProductSum = 0
	}
	return run
}
