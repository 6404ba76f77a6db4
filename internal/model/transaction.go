package model

import "time"

// Direction says which way a synthesized transaction moves money.
type Direction string

const (
	// DirectionDeposit credits the account.
	DirectionDeposit Direction = "deposit"
	// DirectionWithdrawal debits the account.
	DirectionWithdrawal Direction = "withdrawal"
)

// Transaction is a candidate transaction drawn by the synthesizer before it
// is posted to the ledger.
type Transaction struct {
	Date        time.Time
	Direction   Direction
	Description string
	Ref         string
	Amount      float64
}

// IsDeposit reports whether the transaction credits the account.
func (t *Transaction) IsDeposit() bool {
	return t.Direction == DirectionDeposit
}
