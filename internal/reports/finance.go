package reports

import (
	"SellerPulse/internal/finance"
	"SellerPulse/internal/sections"
	"SellerPulse/internal/tabular"
)

// ColProfitBracket buckets rows for the sectioned profitability sheet.
const ColProfitBracket = "profit_bracket"

// Profit bracket labels, emitted in this order.
const (
	BracketLoss = "loss"
	BracketLow  = "up to 1000"
	BracketMid  = "1000 - 10000"
	BracketHigh = "over 10000"
)

// FinanceParams configures one profitability report run.
type FinanceParams struct {
	Pipeline finance.Params
}

// FinanceReport aggregates the normalized realization extract per article and
// runs the derivation chain. Orders per article are counted from rows; money
// columns are summed.
func FinanceReport(sales *tabular.Dataset, params FinanceParams) (*tabular.Dataset, error) {
	agg, err := tabular.Aggregate(sales, tabular.AggregateSpec{
		GroupBy: []string{ColArticle},
		Reductions: []tabular.Reduction{
			{Op: tabular.ReduceCount, As: finance.ColOrders},
			{Column: ColSoldUnits, Op: tabular.ReduceSum, As: finance.ColSoldUnits},
			{Column: ColGrossSales, Op: tabular.ReduceSum, As: finance.ColGrossSales},
			{Column: ColReturnsValue, Op: tabular.ReduceSum, As: finance.ColReturnsValue},
			{Column: ColRemittance, Op: tabular.ReduceSum, As: finance.ColRemittance},
			{Column: ColReturnsRemit, Op: tabular.ReduceSum, As: finance.ColReturnsRemit},
			{Column: ColLogistics, Op: tabular.ReduceSum, As: finance.ColLogistics},
		},
	})
	if err != nil {
		return nil, err
	}

	// the pipeline keys cost overrides on the article column name it owns
	renameColumn(agg, ColArticle, finance.ColArticle)

	derived, err := finance.Derive(agg, params.Pipeline)
	if err != nil {
		return nil, err
	}

	derived.AddColumn(ColProfitBracket)
	for _, row := range derived.Rows {
		row[ColProfitBracket] = tabular.Text(bracket(row[finance.ColProfit].FloatOr(0)))
	}
	tabular.SortByNumberDesc(derived, finance.ColProfit)
	return derived, nil
}

func bracket(profit float64) string {
	switch {
	case profit < 0:
		return BracketLoss
	case profit < 1000:
		return BracketLow
	case profit < 10000:
		return BracketMid
	}
	return BracketHigh
}

// FinanceSections splits the profitability sheet by bracket, best first.
func FinanceSections(ds *tabular.Dataset) []sections.Section {
	order := []string{BracketHigh, BracketMid, BracketLow, BracketLoss}
	return sections.ByColumnValue(ds, ColProfitBracket, order)
}

func renameColumn(ds *tabular.Dataset, from, to string) {
	if from == to {
		return
	}
	for i, c := range ds.Columns {
		if c == from {
			ds.Columns[i] = to
		}
	}
	for _, row := range ds.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
}
