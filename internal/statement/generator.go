// Package statement synthesizes bank statements: a random pool of deposits
// and withdrawals posted day by day onto a running balance, with quarterly
// interest and withholding tax.
package statement

import (
	"log/slog"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
)

// Generator produces statements for one provider template and holiday set.
// It is immutable after construction and safe for concurrent use as long as
// its random source factory is.
type Generator struct {
	logger   *slog.Logger
	newRand  func() Rand
	anchors  calendar.AnchorSet
	holidays calendar.HolidaySet
	template model.TransactionTemplate
}

// NewGenerator creates a generator. The template's description pools and the
// holiday set are copied, so later changes by the caller do not leak in.
func NewGenerator(template model.TransactionTemplate, holidays calendar.HolidaySet, opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	template.TransactionDescriptions.Deposits = append([]string(nil), template.TransactionDescriptions.Deposits...)
	template.TransactionDescriptions.Withdrawals = append([]string(nil), template.TransactionDescriptions.Withdrawals...)

	return &Generator{
		logger:   cfg.Logger,
		newRand:  cfg.NewRand,
		anchors:  cfg.Anchors,
		holidays: holidays.Union(calendar.HolidaySet{}),
		template: template,
	}
}

// Template returns the provider template the generator narrates with.
func (g *Generator) Template() model.TransactionTemplate {
	return g.template
}

// Generate builds one statement. Invalid requests fail with an
// *common.InvalidParameterError before anything is drawn. A start date on or
// after the end date is valid and yields only the opening row.
func (g *Generator) Generate(req model.StatementRequest) (*model.StatementResult, error) {
	if err := ValidateRequest(req, g.template); err != nil {
		return nil, err
	}

	start := calendar.Civil(req.StartDate)
	end := calendar.Civil(req.EndDate)

	synth := synthesizer{
		rng:      g.newRand(),
		holidays: g.holidays,
		anchors:  g.anchors,
		pools:    g.template.TransactionDescriptions,
	}
	drawn := synth.synthesize(start, end, req.TargetTxnCount, req.MinTxn, req.MaxTxn)

	w := walker{
		anchors:      g.anchors,
		interestDesc: g.template.TransactionDescriptions.Interest,
		taxDesc:      g.template.TransactionDescriptions.Tax,
		interestRate: req.InterestRate,
		taxRate:      req.TaxRate,
	}
	l := newLedger(req.OpeningBalance, start, len(drawn.transactions))
	run := w.walk(l, start, end, drawn.transactions)
	result := l.result()

	g.logger.Debug("generated statement",
		"start", calendar.ToSimpleDateString(start),
		"end", calendar.ToSimpleDateString(end),
		"requested", req.TargetTxnCount,
		"synthesized", len(drawn.transactions),
		"discarded", drawn.discarded,
		"interest_postings", run.postings,
		"interest", run.accrued,
		"tax", run.withheld,
		"rows", len(result.Transactions),
		"closing_balance", result.Totals.Balance)

	return result, nil
}
