package model

import "time"

// TransactionDescriptions are the narration pools of a statement provider.
type TransactionDescriptions struct {
	Deposits    []string `mapstructure:"deposits" json:"deposits"`
	Withdrawals []string `mapstructure:"withdrawals" json:"withdrawals"`
	Interest    string   `mapstructure:"interest" json:"interest"`
	Tax         string   `mapstructure:"tax" json:"tax"`
}

// AccountInfo carries presentation flags for the statement header.
type AccountInfo struct {
	Boxed bool `mapstructure:"boxed" json:"boxed"`
}

// StatementLayout groups presentation settings.
type StatementLayout struct {
	AccountInfo AccountInfo `mapstructure:"account_info" json:"accountInfo"`
}

// TransactionTemplate describes how a provider narrates its statements.
type TransactionTemplate struct {
	Name                    string                  `mapstructure:"name" json:"name"`
	TransactionDescriptions TransactionDescriptions `mapstructure:"transaction_descriptions" json:"transactionDescriptions"`
	Statement               StatementLayout         `mapstructure:"statement" json:"statement"`
}

// Holiday is a non-business day in a named calendar.
type Holiday struct {
	Date      time.Time
	CreatedAt time.Time
	Calendar  string
	Name      string
	Source    string
}

// CalendarSummary describes one stored holiday calendar.
type CalendarSummary struct {
	First    time.Time
	Last     time.Time
	Name     string
	Holidays int
}
