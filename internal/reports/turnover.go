package reports

import (
	"SellerPulse/internal/sections"
	"SellerPulse/internal/tabular"
	"SellerPulse/internal/turnover"
)

// Derived columns of the turnover sheets.
const (
	ColStock    = "stock"
	ColFlow     = "flow"
	ColTurnover = "turnover_days"
	ColGrade    = "grade"
)

// TurnoverParams configures one turnover report run.
type TurnoverParams struct {
	Mode turnover.Mode
	// Period restates the report window to a 7-day basis.
	Period float64
	// ByWarehouse adds the warehouse to the group key and emits the
	// grouped layout with per-article total rows.
	ByWarehouse bool
}

// TurnoverReport aggregates normalized order and stock extracts, classifies
// each (article, size) position and grades it. Orders flow is the order-line
// count for ByOrders mode, the summed sold units for BySales mode.
func TurnoverReport(orders, stock *tabular.Dataset, params TurnoverParams) (*tabular.Dataset, error) {
	groupBy := []string{ColArticle, ColSize}
	if params.ByWarehouse {
		groupBy = []string{ColArticle, ColSize, ColWarehouse}
	}

	flowRed := tabular.Reduction{Op: tabular.ReduceCount, As: ColFlow}
	if params.Mode == turnover.BySales {
		flowRed = tabular.Reduction{Column: ColSoldUnits, Op: tabular.ReduceSum, As: ColFlow}
	}
	flowAgg, err := tabular.Aggregate(orders, tabular.AggregateSpec{
		GroupBy:    groupBy,
		Reductions: []tabular.Reduction{flowRed},
	})
	if err != nil {
		return nil, err
	}

	stockAgg, err := tabular.Aggregate(stock, tabular.AggregateSpec{
		GroupBy: groupBy,
		Reductions: []tabular.Reduction{
			{Column: ColQuantity, Op: tabular.ReduceSum, As: ColStock},
		},
	})
	if err != nil {
		return nil, err
	}

	joined := outerJoin(stockAgg, flowAgg, groupBy)
	joined.AddColumn(ColTurnover)
	joined.AddColumn(ColGrade)
	for _, row := range joined.Rows {
		res, err := turnover.Classify(row[ColStock].FloatOr(0), row[ColFlow].FloatOr(0), params.Period)
		if err != nil {
			return nil, err
		}
		row[ColTurnover] = tabular.Text(res.Display())
		row[ColGrade] = tabular.Text(turnover.Grade(res, params.Mode))
	}

	// explicit sort step; the aggregator guarantees no order
	tabular.SortByNumberDesc(joined, ColFlow)
	return joined, nil
}

// TurnoverSections splits a turnover dataset into one section per grade, in
// severity order.
func TurnoverSections(ds *tabular.Dataset) []sections.Section {
	order := []string{
		turnover.GradeSOS,
		turnover.GradeReplenish,
		turnover.GradeStrongDeficit,
		turnover.GradeDeficit,
		turnover.GradeNorm,
		turnover.GradeAttention,
		turnover.GradeSurplus,
		turnover.GradeHighSurplus,
		turnover.GradeDeadStock,
		turnover.GradeDeadStock100,
		turnover.GradeNoActivity,
	}
	return sections.ByColumnValue(ds, ColGrade, order)
}

// WarehouseTurnoverLayout renders the by-warehouse dataset as one flat sheet
// grouped by article with per-article total rows, per the warehouse report
// format.
func WarehouseTurnoverLayout(ds *tabular.Dataset, params TurnoverParams) (*tabular.Dataset, error) {
	return sections.WithGroupTotals(ds, sections.GroupTotalsConfig{
		GroupBy:        ColArticle,
		StockColumn:    ColStock,
		FlowColumn:     ColFlow,
		SubSortColumn:  ColFlow,
		SumColumns:     []string{ColStock, ColFlow},
		TurnoverColumn: ColTurnover,
		GradeColumn:    ColGrade,
		Period:         params.Period,
		Mode:           params.Mode,
	})
}
