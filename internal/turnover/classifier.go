// Package turnover computes days-of-stock turnover values and grades them on
// fixed severity scales. Division is reached only when both stock and flow are
// strictly positive; every zero combination is handled by an explicit policy
// branch first.
package turnover

import (
	"fmt"
	"math"

	"SellerPulse/internal/tabular"
)

// Mode selects the flow series the ratio is computed against. Order counts
// and confirmed sales have structurally different magnitudes, so each mode
// carries its own grade boundaries.
type Mode int

const (
	ByOrders Mode = iota
	BySales
)

// ResultKind is the closed set of classification outcomes.
type ResultKind int

const (
	// Zero: no stock and no flow.
	Zero ResultKind = iota
	// ReplenishNeeded: no stock but the item is moving.
	ReplenishNeeded
	// Critical: stock on hand with zero flow; turnover is undefined.
	Critical
	// Numeric: a finite days-of-stock value.
	Numeric
)

// Result is the tagged classification outcome. Days is meaningful only when
// Kind == Numeric and is already rounded to one decimal; grading consumes the
// rounded figure, never the raw ratio.
type Result struct {
	Kind ResultKind
	Days float64
}

// Display renders the value the way the report sheet shows it.
func (r Result) Display() string {
	switch r.Kind {
	case Zero:
		return "0"
	case ReplenishNeeded:
		return "replenish"
	case Critical:
		return "out of turnover"
	}
	return fmt.Sprintf("%.1f", r.Days)
}

// Classify applies the zero-handling policy table in priority order. stock is
// the on-hand quantity, flow the movement over the report window, and period
// the multiplier that restates the window to a 7-day basis.
func Classify(stock, flow, period float64) (Result, error) {
	switch {
	case stock == 0 && flow == 0:
		return Result{Kind: Zero}, nil
	case stock == 0 && flow > 0:
		return Result{Kind: ReplenishNeeded}, nil
	case stock > 0 && flow == 0:
		return Result{Kind: Critical}, nil
	}
	if flow == 0 {
		// unreachable if the branches above are right; fail loudly rather
		// than produce infinity
		return Result{}, &tabular.DivisionPolicyError{Context: fmt.Sprintf("turnover with stock=%v flow=%v", stock, flow)}
	}
	days := math.Round(stock/flow*period*10) / 10
	return Result{Kind: Numeric, Days: days}, nil
}

// Grade labels, ordered from fastest-moving to dead stock.
const (
	GradeStrongDeficit = "strong deficit"
	GradeDeficit       = "deficit"
	GradeNorm          = "norm"
	GradeAttention     = "attention"
	GradeSurplus       = "surplus"
	GradeHighSurplus   = "high surplus"
	GradeDeadStock     = "dead stock"
	GradeDeadStock100  = "dead stock 100%"
	GradeSOS           = "SOS"
	GradeReplenish     = "replenish"
	GradeNoActivity    = "no activity"
)

// gradeLabels in bin order; bins are half-open [lo, hi), last bin unbounded.
var gradeLabels = []string{
	GradeStrongDeficit,
	GradeDeficit,
	GradeNorm,
	GradeAttention,
	GradeSurplus,
	GradeHighSurplus,
	GradeDeadStock,
	GradeDeadStock100,
}

// Lower bounds per mode. Order-based flow is far larger than confirmed
// sales, so its day counts run on a wider scale.
var gradeBounds = map[Mode][]float64{
	ByOrders: {0, 117, 177, 237, 297, 357, 417, 477},
	BySales:  {0, 30, 60, 90, 120, 150, 180, 210},
}

// Grade maps a classification result to its severity label. Sentinels map
// directly: Critical is always SOS regardless of stock magnitude.
func Grade(res Result, mode Mode) string {
	switch res.Kind {
	case Zero:
		return GradeNoActivity
	case ReplenishNeeded:
		return GradeReplenish
	case Critical:
		return GradeSOS
	}
	bounds := gradeBounds[mode]
	label := gradeLabels[0]
	for i, lo := range bounds {
		if res.Days >= lo {
			label = gradeLabels[i]
		}
	}
	return label
}
