package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Fixed references used on system-posted rows.
const (
	RefTransfer = "TRANSFER"
	RefInterest = "INTEREST"
	RefTax      = "TAX"

	// OpeningDescription narrates the first row of every statement.
	OpeningDescription = "Balance B/F"
)

// StatementRequest holds the account parameters for one generation call.
type StatementRequest struct {
	StartDate      time.Time
	EndDate        time.Time
	OpeningBalance float64
	// TargetBalance is accepted for compatibility with existing callers and is
	// not used by generation.
	TargetBalance  float64
	InterestRate   float64 // annual percent, 5 means 5%
	TaxRate        float64 // percent withheld from each interest posting
	MinTxn         float64
	MaxTxn         float64
	TargetTxnCount int
}

// RequestForm is a StatementRequest as a form submits it: every field is a
// string and amounts may carry thousands separators.
type RequestForm struct {
	OpeningBalance string `json:"openingBalance"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	TargetBalance  string `json:"targetBalance"`
	InterestRate   string `json:"interestRate"`
	TaxRate        string `json:"taxRate"`
	TargetTxnCount string `json:"targetTxnCount"`
	MinTxn         string `json:"minTxn"`
	MaxTxn         string `json:"maxTxn"`
}

// RowKind classifies a ledger row.
type RowKind string

const (
	RowOpening    RowKind = "opening"
	RowDeposit    RowKind = "deposit"
	RowWithdrawal RowKind = "withdrawal"
	RowInterest   RowKind = "interest"
	RowTax        RowKind = "tax"
)

// IsSystem reports whether the row is posted by the bank rather than synthesized.
func (k RowKind) IsSystem() bool {
	return k == RowOpening || k == RowInterest || k == RowTax
}

// LedgerRow is one posted entry of a statement. At most one of Debit and
// Credit is set; the opening row has neither.
type LedgerRow struct {
	PostedOn time.Time `json:"postedOn"`
	Debit    *float64  `json:"debit"`
	Credit   *float64  `json:"credit"`
	Date     string    `json:"date"`
	Desc     string    `json:"desc"`
	Ref      string    `json:"ref"`
	Kind     RowKind   `json:"kind"`
	Balance  float64   `json:"balance"`
}

// DebitAmount returns the debit or zero.
func (r *LedgerRow) DebitAmount() float64 {
	if r.Debit == nil {
		return 0
	}
	return *r.Debit
}

// CreditAmount returns the credit or zero.
func (r *LedgerRow) CreditAmount() float64 {
	if r.Credit == nil {
		return 0
	}
	return *r.Credit
}

// FITID derives a financial-institution transaction ID for the row.
// Rows that differ in any printed field get different IDs.
func (r *LedgerRow) FITID(seq int) string {
	data := fmt.Sprintf("%d:%s:%s:%s:%.6f:%.6f",
		seq,
		r.PostedOn.Format("2006-01-02"),
		r.Ref,
		r.Desc,
		r.DebitAmount(),
		r.CreditAmount())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:12])
}

// Totals summarises a statement.
type Totals struct {
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
	Balance float64 `json:"balance"`
}

// StatementResult is the generated ledger and its totals.
type StatementResult struct {
	Transactions []LedgerRow `json:"transactions"`
	Totals       Totals      `json:"totals"`
}

// Amount returns a pointer to v, for populating Debit and Credit.
func Amount(v float64) *float64 {
	return &v
}
