package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/internal/tabular"
	"SellerPulse/internal/turnover"
)

func orderRow(article, size, warehouse string) tabular.Row {
	return tabular.Row{
		ColArticle:   tabular.Text(article),
		ColSize:      tabular.Text(size),
		ColWarehouse: tabular.Text(warehouse),
	}
}

func stockRow(article, size, warehouse string, qty float64) tabular.Row {
	return tabular.Row{
		ColArticle:   tabular.Text(article),
		ColSize:      tabular.Text(size),
		ColWarehouse: tabular.Text(warehouse),
		ColQuantity:  tabular.Number(qty),
	}
}

func TestTurnoverReportByOrders(t *testing.T) {
	orders := tabular.NewDataset(ColArticle, ColSize, ColWarehouse)
	for i := 0; i < 20; i++ {
		orders.Rows = append(orders.Rows, orderRow("A-1", "38", "Kazan"))
	}
	orders.Rows = append(orders.Rows, orderRow("B-2", "40", "Kazan"))

	stock := tabular.NewDataset(ColArticle, ColSize, ColWarehouse, ColQuantity)
	stock.Rows = append(stock.Rows,
		stockRow("A-1", "38", "Kazan", 100),
		stockRow("A-1", "38", "Tver", 40),
		stockRow("C-3", "S", "Kazan", 12), // stock with no orders at all
	)

	out, err := TurnoverReport(orders, stock, TurnoverParams{
		Mode:   turnover.ByOrders,
		Period: 7,
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 3)

	// sorted by flow descending: A-1 (20 orders) first
	first := out.Rows[0]
	assert.Equal(t, "A-1", first[ColArticle].String())
	assert.Equal(t, float64(140), first[ColStock].FloatOr(0), "warehouses collapse into one position")
	assert.Equal(t, float64(20), first[ColFlow].FloatOr(0))
	assert.Equal(t, "49.0", first[ColTurnover].String())
	assert.Equal(t, turnover.GradeStrongDeficit, first[ColGrade].String())

	second := out.Rows[1]
	assert.Equal(t, "B-2", second[ColArticle].String())
	assert.Equal(t, "replenish", second[ColTurnover].String(), "ordered but no stock")

	third := out.Rows[2]
	assert.Equal(t, "C-3", third[ColArticle].String())
	assert.Equal(t, "out of turnover", third[ColTurnover].String())
	assert.Equal(t, turnover.GradeSOS, third[ColGrade].String())
}

func TestTurnoverReportBySalesSumsUnits(t *testing.T) {
	sales := tabular.NewDataset(ColArticle, ColSize, ColSoldUnits)
	add := func(units float64) {
		sales.Rows = append(sales.Rows, tabular.Row{
			ColArticle:   tabular.Text("A-1"),
			ColSize:      tabular.Text("38"),
			ColSoldUnits: tabular.Number(units),
		})
	}
	add(3)
	add(7)

	stock := tabular.NewDataset(ColArticle, ColSize, ColQuantity)
	stock.Rows = append(stock.Rows, tabular.Row{
		ColArticle:  tabular.Text("A-1"),
		ColSize:     tabular.Text("38"),
		ColQuantity: tabular.Number(30),
	})

	out, err := TurnoverReport(sales, stock, TurnoverParams{
		Mode:   turnover.BySales,
		Period: 7,
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, float64(10), out.Rows[0][ColFlow].FloatOr(0), "sales mode sums units, not rows")
	assert.Equal(t, "21.0", out.Rows[0][ColTurnover].String())
}

func TestTurnoverReportByWarehouseKeepsPositions(t *testing.T) {
	orders := tabular.NewDataset(ColArticle, ColSize, ColWarehouse)
	orders.Rows = append(orders.Rows, orderRow("A-1", "38", "Kazan"))

	stock := tabular.NewDataset(ColArticle, ColSize, ColWarehouse, ColQuantity)
	stock.Rows = append(stock.Rows,
		stockRow("A-1", "38", "Kazan", 100),
		stockRow("A-1", "38", "Tver", 40),
	)

	out, err := TurnoverReport(orders, stock, TurnoverParams{
		Mode:        turnover.ByOrders,
		Period:      7,
		ByWarehouse: true,
	})
	require.NoError(t, err)
	assert.Len(t, out.Rows, 2, "warehouse stays in the key")
}

func TestTurnoverSectionsSeverityOrder(t *testing.T) {
	ds := tabular.NewDataset(ColArticle, ColGrade)
	add := func(article, grade string) {
		ds.Rows = append(ds.Rows, tabular.Row{
			ColArticle: tabular.Text(article),
			ColGrade:   tabular.Text(grade),
		})
	}
	add("N-1", turnover.GradeNorm)
	add("S-1", turnover.GradeSOS)
	add("R-1", turnover.GradeReplenish)

	secs := TurnoverSections(ds)
	require.Len(t, secs, 3)
	assert.Equal(t, turnover.GradeSOS, secs[0].Name)
	assert.Equal(t, turnover.GradeReplenish, secs[1].Name)
	assert.Equal(t, turnover.GradeNorm, secs[2].Name)
}

func TestOuterJoin(t *testing.T) {
	left := tabular.NewDataset(ColArticle, ColStock)
	left.Rows = append(left.Rows,
		tabular.Row{ColArticle: tabular.Text("A-1"), ColStock: tabular.Number(5)},
		tabular.Row{ColArticle: tabular.Text("B-2"), ColStock: tabular.Number(3)},
	)
	right := tabular.NewDataset(ColArticle, ColFlow)
	right.Rows = append(right.Rows,
		tabular.Row{ColArticle: tabular.Text("B-2"), ColFlow: tabular.Number(9)},
		tabular.Row{ColArticle: tabular.Text("C-3"), ColFlow: tabular.Number(1)},
	)

	out := outerJoin(left, right, []string{ColArticle})
	require.Len(t, out.Rows, 3)
	assert.Equal(t, []string{ColArticle, ColStock, ColFlow}, out.Columns)

	assert.Equal(t, "A-1", out.Rows[0][ColArticle].String())
	_, hasFlow := out.Rows[0][ColFlow]
	assert.False(t, hasFlow, "left-only row has no flow cell")

	assert.Equal(t, float64(9), out.Rows[1][ColFlow].FloatOr(0))
	assert.Equal(t, float64(3), out.Rows[1][ColStock].FloatOr(0))

	assert.Equal(t, "C-3", out.Rows[2][ColArticle].String())
	assert.Equal(t, float64(0), out.Rows[2][ColStock].FloatOr(0), "missing reads as zero")
}
