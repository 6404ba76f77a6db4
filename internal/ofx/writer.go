// Package ofx exports generated statements as OFX bank statement responses.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/stmtgen/internal/model"
)

// Defaults used when an Account leaves a field empty.
const (
	DefaultBankID    = "000000000"
	DefaultAccountID = "0000000000"
	DefaultCurrency  = "NPR"
)

// ErrNoStatement is returned when there is nothing to export.
var ErrNoStatement = errors.New("no statement to export")

// Account identifies the account an exported statement belongs to.
type Account struct {
	BankID    string
	AccountID string
	Currency  string
}

// Writer renders statements as OFX 2.x documents.
type Writer struct {
	now     func() time.Time
	account Account
}

// NewWriter creates a writer for account, filling empty fields with defaults.
func NewWriter(account Account) *Writer {
	if account.BankID == "" {
		account.BankID = DefaultBankID
	}
	if account.AccountID == "" {
		account.AccountID = DefaultAccountID
	}
	if account.Currency == "" {
		account.Currency = DefaultCurrency
	}
	return &Writer{account: account, now: time.Now}
}

// WriteToFile writes the statement to path.
func (w *Writer) WriteToFile(path string, req model.StatementRequest, result *model.StatementResult) error {
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

// Write encodes the statement as an OFX response on out. The opening row
// carries no amount and is represented only through the statement period.
func (w *Writer) Write(out io.Writer, req model.StatementRequest, result *model.StatementResult) error {
	resp, err := w.response(req, result)
	if err != nil {
		return err
	}

	buf, err := resp.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal OFX: %w", err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write OFX: %w", err)
	}
	return nil
}

func (w *Writer) response(req model.StatementRequest, result *model.StatementResult) (*ofxgo.Response, error) {
	if result == nil {
		return nil, ErrNoStatement
	}

	curr, err := ofxgo.NewCurrSymbol(w.account.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", w.account.Currency, err)
	}

	txns := make([]ofxgo.Transaction, 0, len(result.Transactions))
	for i := range result.Transactions {
		row := &result.Transactions[i]
		if row.Debit == nil && row.Credit == nil {
			continue
		}
		txn, err := convertRow(row, i)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	balance, err := amount(result.Totals.Balance)
	if err != nil {
		return nil, fmt.Errorf("closing balance: %w", err)
	}

	stmt := ofxgo.StatementResponse{
		TrnUID: ofxgo.UID("0"),
		Status: ofxgo.Status{Code: 0, Severity: "INFO"},
		CurDef: *curr,
		BankAcctFrom: ofxgo.BankAcct{
			BankID:   ofxgo.String(w.account.BankID),
			AcctID:   ofxgo.String(w.account.AccountID),
			AcctType: ofxgo.AcctTypeSavings,
		},
		BankTranList: &ofxgo.TransactionList{
			DtStart:      ofxgo.Date{Time: req.StartDate},
			DtEnd:        ofxgo.Date{Time: req.EndDate},
			Transactions: txns,
		},
		BalAmt: balance,
		DtAsOf: ofxgo.Date{Time: req.EndDate},
	}

	slog.Debug("Built OFX statement",
		"account", w.account.AccountID,
		"transactions", len(txns),
		"skipped", len(result.Transactions)-len(txns))

	return &ofxgo.Response{
		Version: ofxgo.OfxVersion203,
		Signon: ofxgo.SignonResponse{
			Status:   ofxgo.Status{Code: 0, Severity: "INFO"},
			DtServer: ofxgo.Date{Time: w.now().UTC()},
			Language: "ENG",
		},
		Bank: []ofxgo.Message{&stmt},
	}, nil
}

// convertRow maps a ledger row to an OFX transaction. Debits are negative.
func convertRow(row *model.LedgerRow, seq int) (ofxgo.Transaction, error) {
	value := row.CreditAmount()
	if row.Debit != nil {
		value = -row.DebitAmount()
	}
	trnAmt, err := amount(value)
	if err != nil {
		return ofxgo.Transaction{}, fmt.Errorf("row %d: %w", seq, err)
	}

	txn := ofxgo.Transaction{
		DtPosted: ofxgo.Date{Time: row.PostedOn},
		TrnAmt:   trnAmt,
		FiTID:    ofxgo.String(row.FITID(seq)),
		RefNum:   ofxgo.String(row.Ref),
		Name:     ofxgo.String(truncate(row.Desc, 32)),
		Memo:     ofxgo.String(row.Desc),
	}
	setTransactionType(&txn, row)
	return txn, nil
}

// setTransactionType assigns TrnType in place because ofxgo does not export
// the field's type.
func setTransactionType(txn *ofxgo.Transaction, row *model.LedgerRow) {
	switch row.Kind {
	case model.RowInterest:
		txn.TrnType = ofxgo.TrnTypeInt
		return
	case model.RowTax:
		txn.TrnType = ofxgo.TrnTypeFee
		return
	case model.RowDeposit:
		txn.TrnType = ofxgo.TrnTypeCredit
		return
	case model.RowWithdrawal:
		txn.TrnType = ofxgo.TrnTypeDebit
		return
	}
	if row.Debit != nil {
		txn.TrnType = ofxgo.TrnTypeDebit
		return
	}
	txn.TrnType = ofxgo.TrnTypeCredit
}

// amount rounds v to cents before handing it to OFX.
func amount(v float64) (ofxgo.Amount, error) {
	var a ofxgo.Amount
	if _, ok := a.SetString(strconv.FormatFloat(v, 'f', 2, 64)); !ok {
		return a, fmt.Errorf("amount %v is not representable", v)
	}
	return a, nil
}

// OFX limits NAME to 32 characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
