package statement

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/Veraticus/stmtgen/internal/calendar"
	"github.com/Veraticus/stmtgen/internal/model"
)

const (
	depositProbability = 0.6
	amountStep         = 100

	refMin  = 1_000_000
	refSpan = 9_000_000
)

// synthesis is the outcome of one candidate draw.
type synthesis struct {
	transactions []model.Transaction
	discarded    int
}

// synthesizer draws candidate transactions across a period.
type synthesizer struct {
	rng      Rand
	holidays calendar.HolidaySet
	anchors  calendar.AnchorSet
	pools    model.TransactionDescriptions
}

// synthesize makes count attempts over [start, start+totalDays). Attempts
// landing on a holiday or an interest posting day are dropped without retry,
// so fewer than count transactions may come back. The result is sorted by
// date, keeping generation order within a day.
func (s *synthesizer) synthesize(start, end time.Time, count int, minTxn, maxTxn float64) synthesis {
	totalDays := calendar.DaysBetween(start, end)
	if totalDays <= 0 || count <= 0 {
		return synthesis{}
	}

	out := synthesis{transactions: make([]model.Transaction, 0, count)}
	for range count {
		date := start.AddDate(0, 0, s.rng.IntN(totalDays))
		if s.holidays.IsHoliday(date) || s.anchors.IsAnchor(date) {
			out.discarded++
			continue
		}
		out.transactions = append(out.transactions, s.draw(date, minTxn, maxTxn))
	}

	sort.SliceStable(out.transactions, func(i, j int) bool {
		return out.transactions[i].Date.Before(out.transactions[j].Date)
	})
	return out
}

func (s *synthesizer) draw(date time.Time, minTxn, maxTxn float64) model.Transaction {
	direction := model.DirectionWithdrawal
	pool := s.pools.Withdrawals
	if s.rng.Float64() < depositProbability {
		direction = model.DirectionDeposit
		pool = s.pools.Deposits
	}

	amount := drawAmount(s.rng, minTxn, maxTxn)
	description := pool[s.rng.IntN(len(pool))]
	ref := strconv.Itoa(refMin + s.rng.IntN(refSpan))

	return model.Transaction{
		Date:        date,
		Direction:   direction,
		Description: description,
		Ref:         ref,
		Amount:      amount,
	}
}

// drawAmount picks uniformly from [minTxn, maxTxn) and rounds up to a
// multiple of 100 that is never below minTxn.
func drawAmount(rng Rand, minTxn, maxTxn float64) float64 {
	raw := minTxn + rng.Float64()*(maxTxn-minTxn)
	amount := roundUpToStep(raw)
	if amount < minTxn {
		amount = roundUpToStep(minTxn)
	}
	return amount
}

func roundUpToStep(v float64) float64 {
	return math.Ceil(v/amountStep) * amountStep
}
