package statement

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/money"
)

// MaxTargetTxnCount bounds the attempts a single request may ask for.
const MaxTargetTxnCount = 100_000

// ValidateRequest rejects requests whose numbers would corrupt the ledger.
func ValidateRequest(req model.StatementRequest, template model.TransactionTemplate) error {
	if req.StartDate.IsZero() {
		return common.NewInvalidParameter("startDate", "", "is required")
	}
	if req.EndDate.IsZero() {
		return common.NewInvalidParameter("endDate", "", "is required")
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"openingBalance", req.OpeningBalance},
		{"targetBalance", req.TargetBalance},
		{"interestRate", req.InterestRate},
		{"taxRate", req.TaxRate},
		{"minTxn", req.MinTxn},
		{"maxTxn", req.MaxTxn},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return common.NewInvalidParameter(a.name, formatFloat(a.value), "must be a finite number")
		}
	}

	if req.InterestRate < 0 {
		return common.NewInvalidParameter("interestRate", formatFloat(req.InterestRate), "must not be negative")
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		return common.NewInvalidParameter("taxRate", formatFloat(req.TaxRate), "must be between 0 and 100")
	}
	if req.TargetTxnCount < 0 || req.TargetTxnCount > MaxTargetTxnCount {
		return common.NewInvalidParameter("targetTxnCount", strconv.Itoa(req.TargetTxnCount),
			fmt.Sprintf("must be between 0 and %d", MaxTargetTxnCount))
	}

	if req.TargetTxnCount == 0 {
		return nil
	}

	if req.MinTxn < 0 {
		return common.NewInvalidParameter("minTxn", formatFloat(req.MinTxn), "must not be negative")
	}
	if req.MaxTxn < req.MinTxn {
		return common.NewInvalidParameter("maxTxn", formatFloat(req.MaxTxn), "must not be less than minTxn")
	}

	pools := template.TransactionDescriptions
	if len(pools.Deposits) == 0 {
		return common.NewInvalidParameter("transactionDescriptions.deposits", "", "must not be empty")
	}
	if len(pools.Withdrawals) == 0 {
		return common.NewInvalidParameter("transactionDescriptions.withdrawals", "", "must not be empty")
	}
	return nil
}

// ParseRequest converts a submitted form into a request. Amounts may carry
// currency marks and thousands separators. Target balance, interest rate and
// tax rate default to zero when blank; every other field is required.
func ParseRequest(form model.RequestForm) (model.StatementRequest, error) {
	var req model.StatementRequest
	var err error

	if req.StartDate, err = parseDateField("startDate", form.StartDate); err != nil {
		return model.StatementRequest{}, err
	}
	if req.EndDate, err = parseDateField("endDate", form.EndDate); err != nil {
		return model.StatementRequest{}, err
	}

	fields := []struct {
		dst      *float64
		name     string
		value    string
		optional bool
	}{
		{&req.OpeningBalance, "openingBalance", form.OpeningBalance, false},
		{&req.TargetBalance, "targetBalance", form.TargetBalance, true},
		{&req.InterestRate, "interestRate", form.InterestRate, true},
		{&req.TaxRate, "taxRate", form.TaxRate, true},
		{&req.MinTxn, "minTxn", form.MinTxn, false},
		{&req.MaxTxn, "maxTxn", form.MaxTxn, false},
	}
	for _, f := range fields {
		v, err := money.ParseAmount(f.value)
		switch {
		case errors.Is(err, money.ErrEmptyAmount) && f.optional:
			continue
		case errors.Is(err, money.ErrEmptyAmount):
			return model.StatementRequest{}, common.NewInvalidParameter(f.name, f.value, "is required")
		case err != nil:
			return model.StatementRequest{}, common.NewInvalidParameter(f.name, f.value, "is not a number")
		}
		*f.dst = v
	}

	count := strings.ReplaceAll(strings.TrimSpace(form.TargetTxnCount), ",", "")
	if count == "" {
		return model.StatementRequest{}, common.NewInvalidParameter("targetTxnCount", form.TargetTxnCount, "is required")
	}
	if req.TargetTxnCount, err = strconv.Atoi(count); err != nil {
		return model.StatementRequest{}, common.NewInvalidParameter("targetTxnCount", form.TargetTxnCount, "is not a whole number")
	}

	return req, nil
}

func parseDateField(name, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, common.NewInvalidParameter(name, value, "is required")
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, common.NewInvalidParameter(name, value, "is not a date")
	}
	return d, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
