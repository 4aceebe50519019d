// Package finance derives the profitability columns of the financial report.
// The derivation is an explicit ordered chain of named steps; each step
// declares the columns it reads and the one column it produces, so the chain
// is validated before any row is touched instead of relying on code position.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"SellerPulse/internal/tabular"
)

// Column names produced and consumed by the chain.
const (
	ColArticle       = "article"
	ColOrders        = "orders"
	ColSoldUnits     = "sold_units"
	ColGrossSales    = "gross_sales"
	ColReturnsValue  = "returns_value"
	ColRemittance    = "remittance"
	ColReturnsRemit  = "returns_remittance"
	ColLogistics     = "logistics"
	ColNetSales      = "net_sales"
	ColNetRemittance = "net_remittance"
	ColRemitNet      = "remittance_less_logistics"
	ColCOGS          = "cost_of_goods"
	ColMargin        = "margin"
	ColTax           = "tax"
	ColAllocation    = "shared_cost_allocation"
	ColProfit        = "profit"
	ColUnitProfit    = "unit_profit"
)

// Params are the global scalars the steps may consult. Per-row state never
// crosses rows except the shared-cost allocation, which uses the column-wide
// order total computed once per run.
type Params struct {
	// UnitCostByArticle overrides the default cost per article id.
	UnitCostByArticle map[string]float64
	DefaultUnitCost   float64
	// TaxRate applies to gross marketplace proceeds, e.g. 0.07.
	TaxRate float64
	// SharedCostPool is distributed pro-rata to each row's order-count share.
	SharedCostPool float64
}

type env struct {
	params      Params
	totalOrders decimal.Decimal
}

// Step is one named derivation. Inputs lists every column the step reads;
// Output is the single column it appends.
type Step struct {
	Name   string
	Inputs []string
	Output string
	apply  func(r tabular.Row, e *env) (tabular.Value, error)
}

func dec(r tabular.Row, col string) decimal.Decimal {
	return decimal.NewFromFloat(r[col].FloatOr(0))
}

func money(d decimal.Decimal) tabular.Value {
	return tabular.Number(d.Round(2).InexactFloat64())
}

// Chain returns the fixed derivation sequence. Order is significant: later
// steps consume earlier outputs, which Validate checks statically.
func Chain() []Step {
	return []Step{
		{
			Name:   "net sales",
			Inputs: []string{ColGrossSales, ColReturnsValue},
			Output: ColNetSales,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				return money(dec(r, ColGrossSales).Sub(dec(r, ColReturnsValue))), nil
			},
		},
		{
			Name:   "net remittance",
			Inputs: []string{ColRemittance, ColReturnsRemit},
			Output: ColNetRemittance,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				return money(dec(r, ColRemittance).Sub(dec(r, ColReturnsRemit))), nil
			},
		},
		{
			Name:   "remittance less logistics",
			Inputs: []string{ColNetRemittance, ColLogistics},
			Output: ColRemitNet,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				return money(dec(r, ColNetRemittance).Sub(dec(r, ColLogistics))), nil
			},
		},
		{
			Name:   "cost of goods",
			Inputs: []string{ColArticle, ColSoldUnits},
			Output: ColCOGS,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				cost := e.params.DefaultUnitCost
				if c, ok := e.params.UnitCostByArticle[r[ColArticle].String()]; ok {
					cost = c
				}
				units := dec(r, ColSoldUnits)
				return money(decimal.NewFromFloat(cost).Mul(units)), nil
			},
		},
		{
			Name:   "margin",
			Inputs: []string{ColRemitNet, ColCOGS},
			Output: ColMargin,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				return money(dec(r, ColRemitNet).Sub(dec(r, ColCOGS))), nil
			},
		},
		{
			Name:   "tax",
			Inputs: []string{ColGrossSales},
			Output: ColTax,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				rate := decimal.NewFromFloat(e.params.TaxRate)
				return money(dec(r, ColGrossSales).Mul(rate)), nil
			},
		},
		{
			Name:   "shared cost allocation",
			Inputs: []string{ColOrders},
			Output: ColAllocation,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				pool := decimal.NewFromFloat(e.params.SharedCostPool)
				if pool.IsZero() {
					return money(decimal.Zero), nil
				}
				if e.totalOrders.IsZero() {
					return tabular.Missing(), &tabular.DivisionPolicyError{
						Context: "shared-cost allocation with zero total order count",
					}
				}
				share := dec(r, ColOrders).Div(e.totalOrders)
				return money(pool.Mul(share)), nil
			},
		},
		{
			Name:   "profit",
			Inputs: []string{ColMargin, ColTax, ColAllocation},
			Output: ColProfit,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				return money(dec(r, ColMargin).Sub(dec(r, ColTax)).Sub(dec(r, ColAllocation))), nil
			},
		},
		{
			Name:   "unit profit",
			Inputs: []string{ColProfit, ColSoldUnits, ColOrders},
			Output: ColUnitProfit,
			apply: func(r tabular.Row, e *env) (tabular.Value, error) {
				profit := dec(r, ColProfit)
				units := dec(r, ColSoldUnits)
				orders := dec(r, ColOrders)
				var per decimal.Decimal
				switch {
				case units.IsPositive():
					per = profit.Div(units)
				case orders.IsPositive():
					per = profit.Div(orders)
				default:
					per = decimal.Zero
				}
				return tabular.Number(per.Round(1).InexactFloat64()), nil
			},
		},
	}
}

// Validate checks that every step's inputs are available when the step runs,
// given the columns the input dataset starts with.
func Validate(chain []Step, startColumns []string) error {
	available := make(map[string]bool, len(startColumns))
	for _, c := range startColumns {
		available[c] = true
	}
	for _, step := range chain {
		for _, in := range step.Inputs {
			if !available[in] {
				return fmt.Errorf("finance step %q reads column %q before it is produced", step.Name, in)
			}
		}
		available[step.Output] = true
	}
	return nil
}

// Derive runs the chain over every row and drops rows whose final profit is
// exactly zero (documented product decision: zero-profit rows are noise on
// the profitability sheet). Reduced input columns are never overwritten; each
// step appends its own column.
func Derive(ds *tabular.Dataset, params Params) (*tabular.Dataset, error) {
	chain := Chain()
	if err := Validate(chain, ds.Columns); err != nil {
		return nil, err
	}
	e := &env{
		params:      params,
		totalOrders: decimal.NewFromFloat(ds.SumFloat(ColOrders)),
	}

	out := &tabular.Dataset{Columns: append([]string(nil), ds.Columns...)}
	for _, step := range chain {
		out.AddColumn(step.Output)
	}
	for _, row := range ds.Rows {
		derived := row.Clone()
		for _, step := range chain {
			v, err := step.apply(derived, e)
			if err != nil {
				return nil, err
			}
			derived[step.Output] = v
		}
		if derived[ColProfit].FloatOr(0) == 0 {
			continue
		}
		out.Rows = append(out.Rows, derived)
	}
	return out, nil
}
