package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/internal/finance"
	"SellerPulse/internal/tabular"
)

func realizationRow(article string, units, gross, remit, logistics float64) tabular.Row {
	return tabular.Row{
		ColArticle:      tabular.Text(article),
		ColSoldUnits:    tabular.Number(units),
		ColGrossSales:   tabular.Number(gross),
		ColReturnsValue: tabular.Number(0),
		ColRemittance:   tabular.Number(remit),
		ColReturnsRemit: tabular.Number(0),
		ColLogistics:    tabular.Number(logistics),
	}
}

func realizationColumns() []string {
	return []string{
		ColArticle, ColSoldUnits, ColGrossSales, ColReturnsValue,
		ColRemittance, ColReturnsRemit, ColLogistics,
	}
}

func TestFinanceReportAggregatesPerArticle(t *testing.T) {
	ds := tabular.NewDataset(realizationColumns()...)
	// two realization lines for the same article collapse into one report row
	ds.Rows = append(ds.Rows,
		realizationRow("A-1", 1, 600, 550, 50),
		realizationRow("A-1", 1, 600, 550, 50),
		realizationRow("B-2", 1, 100, 90, 10),
	)

	out, err := FinanceReport(ds, FinanceParams{
		Pipeline: finance.Params{DefaultUnitCost: 100, TaxRate: 0.07},
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)

	top := out.Rows[0]
	assert.Equal(t, "A-1", top[finance.ColArticle].String())
	assert.Equal(t, float64(2), top[finance.ColOrders].FloatOr(0), "orders counted from lines")
	assert.InDelta(t, 1200, top[finance.ColGrossSales].FloatOr(0), 1e-9)
	// remittance 1100 - logistics 100 - cogs 200 = margin 800; tax 84; profit 716
	assert.InDelta(t, 716, top[finance.ColProfit].FloatOr(0), 1e-9)
	assert.Equal(t, BracketLow, top[ColProfitBracket].String())
}

func TestFinanceReportSortsByProfitDesc(t *testing.T) {
	ds := tabular.NewDataset(realizationColumns()...)
	ds.Rows = append(ds.Rows,
		realizationRow("SMALL", 1, 0, 10, 0),
		realizationRow("BIG", 1, 0, 500, 0),
	)
	out, err := FinanceReport(ds, FinanceParams{})
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "BIG", out.Rows[0][finance.ColArticle].String())
}

func TestFinanceBrackets(t *testing.T) {
	tests := []struct {
		profit float64
		want   string
	}{
		{-0.01, BracketLoss},
		{0.01, BracketLow},
		{999.99, BracketLow},
		{1000, BracketMid},
		{9999.99, BracketMid},
		{10000, BracketHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bracket(tt.profit), "profit %v", tt.profit)
	}
}

func TestFinanceSectionsOrder(t *testing.T) {
	ds := tabular.NewDataset(finance.ColArticle, ColProfitBracket)
	add := func(article, b string) {
		ds.Rows = append(ds.Rows, tabular.Row{
			finance.ColArticle: tabular.Text(article),
			ColProfitBracket:   tabular.Text(b),
		})
	}
	add("L-1", BracketLoss)
	add("H-1", BracketHigh)
	add("M-1", BracketMid)

	secs := FinanceSections(ds)
	require.Len(t, secs, 3)
	assert.Equal(t, BracketHigh, secs[0].Name)
	assert.Equal(t, BracketMid, secs[1].Name)
	assert.Equal(t, BracketLoss, secs[2].Name)
}

func TestRenameColumn(t *testing.T) {
	ds := tabular.NewDataset("supplier_article", "qty")
	ds.Rows = append(ds.Rows, tabular.Row{
		"supplier_article": tabular.Text("A-1"),
		"qty":              tabular.Number(1),
	})
	renameColumn(ds, "supplier_article", "article")
	assert.Equal(t, []string{"article", "qty"}, ds.Columns)
	assert.Equal(t, "A-1", ds.Rows[0]["article"].String())
	_, old := ds.Rows[0]["supplier_article"]
	assert.False(t, old)
}
