package statement

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stmtgen/internal/common"
	"github.com/Veraticus/stmtgen/internal/model"
	"github.com/Veraticus/stmtgen/internal/testutil"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		modify    func(*model.StatementRequest)
		name      string
		wantField string
	}{
		{name: "valid", modify: func(*model.StatementRequest) {}},
		{name: "missing start", modify: func(r *model.StatementRequest) { r.StartDate = time.Time{} }, wantField: "startDate"},
		{name: "missing end", modify: func(r *model.StatementRequest) { r.EndDate = time.Time{} }, wantField: "endDate"},
		{name: "nan opening", modify: func(r *model.StatementRequest) { r.OpeningBalance = math.NaN() }, wantField: "openingBalance"},
		{name: "infinite max", modify: func(r *model.StatementRequest) { r.MaxTxn = math.Inf(1) }, wantField: "maxTxn"},
		{name: "negative interest", modify: func(r *model.StatementRequest) { r.InterestRate = -1 }, wantField: "interestRate"},
		{name: "tax above 100", modify: func(r *model.StatementRequest) { r.TaxRate = 101 }, wantField: "taxRate"},
		{name: "negative count", modify: func(r *model.StatementRequest) { r.TargetTxnCount = -3 }, wantField: "targetTxnCount"},
		{name: "huge count", modify: func(r *model.StatementRequest) { r.TargetTxnCount = MaxTargetTxnCount + 1 }, wantField: "targetTxnCount"},
		{name: "negative min", modify: func(r *model.StatementRequest) { r.MinTxn = -100 }, wantField: "minTxn"},
		{name: "max below min", modify: func(r *model.StatementRequest) { r.MaxTxn = 100 }, wantField: "maxTxn"},
		{name: "negative opening is allowed", modify: func(r *model.StatementRequest) { r.OpeningBalance = -500 }},
		{name: "reversed dates are allowed", modify: func(r *model.StatementRequest) { r.StartDate, r.EndDate = r.EndDate, r.StartDate }},
		{
			name: "bounds ignored without transactions",
			modify: func(r *model.StatementRequest) {
				r.TargetTxnCount = 0
				r.MaxTxn = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.Request()
			tt.modify(&req)

			err := ValidateRequest(req, testutil.Template())
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, common.ErrInvalidParameter)
			var paramErr *common.InvalidParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.wantField, paramErr.Field)
		})
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(testutil.RequestForm())
	require.NoError(t, err)
	assert.Equal(t, testutil.Request(), req)
}

func TestParseRequest_Optional(t *testing.T) {
	form := testutil.RequestForm()
	form.TargetBalance = ""
	form.InterestRate = " "
	form.TaxRate = ""

	req, err := ParseRequest(form)
	require.NoError(t, err)
	assert.Zero(t, req.TargetBalance)
	assert.Zero(t, req.InterestRate)
	assert.Zero(t, req.TaxRate)
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		modify    func(*model.RequestForm)
		name      string
		wantField string
	}{
		{name: "missing opening", modify: func(f *model.RequestForm) { f.OpeningBalance = "" }, wantField: "openingBalance"},
		{name: "words for min", modify: func(f *model.RequestForm) { f.MinTxn = "five hundred" }, wantField: "minTxn"},
		{name: "nan max", modify: func(f *model.RequestForm) { f.MaxTxn = "NaN" }, wantField: "maxTxn"},
		{name: "bad interest", modify: func(f *model.RequestForm) { f.InterestRate = "5%" }, wantField: "interestRate"},
		{name: "bad start", modify: func(f *model.RequestForm) { f.StartDate = "yesterday" }, wantField: "startDate"},
		{name: "missing end", modify: func(f *model.RequestForm) { f.EndDate = "" }, wantField: "endDate"},
		{name: "fractional count", modify: func(f *model.RequestForm) { f.TargetTxnCount = "12.5" }, wantField: "targetTxnCount"},
		{name: "missing count", modify: func(f *model.RequestForm) { f.TargetTxnCount = "" }, wantField: "targetTxnCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := testutil.RequestForm()
			tt.modify(&form)

			_, err := ParseRequest(form)
			require.ErrorIs(t, err, common.ErrInvalidParameter)
			var paramErr *common.InvalidParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.wantField, paramErr.Field)
		})
	}
}

func TestParseRequest_CountWithSeparators(t *testing.T) {
	form := testutil.RequestForm()
	form.TargetTxnCount = "1,200"

	req, err := ParseRequest(form)
	require.NoError(t, err)
	assert.Equal(t, 1200, req.TargetTxnCount)
}
