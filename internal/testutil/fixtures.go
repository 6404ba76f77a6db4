package testutil

import (
	"time"

	"github.com/Veraticus/stmtgen/internal/model"
)

// Template returns a provider template with small description pools.
func Template() model.TransactionTemplate {
	return model.TransactionTemplate{
		Name: "test bank",
		TransactionDescriptions: model.TransactionDescriptions{
			Deposits:    []string{"Cash Deposit", "Salary Credit", "Fund Transfer In"},
			Withdrawals: []string{"ATM Withdrawal", "Cheque Payment"},
			Interest:    "Interest Credited",
			Tax:         "TDS on Interest",
		},
		Statement: model.StatementLayout{
			AccountInfo: model.AccountInfo{Boxed: true},
		},
	}
}

// Date returns y-m-d at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Request returns a valid request over one calendar year with interest.
func Request() model.StatementRequest {
	return model.StatementRequest{
		StartDate:      Date(2024, time.January, 1),
		EndDate:        Date(2024, time.December, 31),
		OpeningBalance: 250000,
		TargetBalance:  400000,
		InterestRate:   5,
		TaxRate:        10,
		MinTxn:         550,
		MaxTxn:         45000,
		TargetTxnCount: 120,
	}
}

// RequestForm returns Request as a web form would submit it.
func RequestForm() model.RequestForm {
	return model.RequestForm{
		OpeningBalance: "2,50,000",
		StartDate:      "2024-01-01",
		EndDate:        "2024-12-31",
		TargetBalance:  "4,00,000",
		InterestRate:   "5",
		TaxRate:        "10",
		TargetTxnCount: "120",
		MinTxn:         "550",
		MaxTxn:         "45,000",
	}
}
