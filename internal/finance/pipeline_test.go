package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/internal/tabular"
)

func inputColumns() []string {
	return []string{
		ColArticle, ColOrders, ColSoldUnits, ColGrossSales, ColReturnsValue,
		ColRemittance, ColReturnsRemit, ColLogistics,
	}
}

func salesRow(article string, orders, units, gross, retVal, remit, retRemit, logistics float64) tabular.Row {
	return tabular.Row{
		ColArticle:      tabular.Text(article),
		ColOrders:       tabular.Number(orders),
		ColSoldUnits:    tabular.Number(units),
		ColGrossSales:   tabular.Number(gross),
		ColReturnsValue: tabular.Number(retVal),
		ColRemittance:   tabular.Number(remit),
		ColReturnsRemit: tabular.Number(retRemit),
		ColLogistics:    tabular.Number(logistics),
	}
}

func TestDeriveWorkedExample(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	// gross 1200, remittance 1100 less 100 logistics -> 1000 net of logistics
	// cogs 1 unit x 600 = 600, margin 400, tax 7% of 1200 = 84, profit 316
	ds.Rows = append(ds.Rows, salesRow("A-1", 1, 1, 1200, 0, 1100, 0, 100))

	out, err := Derive(ds, Params{
		DefaultUnitCost: 600,
		TaxRate:         0.07,
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	row := out.Rows[0]

	assert.InDelta(t, 1200, row[ColNetSales].FloatOr(0), 1e-9)
	assert.InDelta(t, 1100, row[ColNetRemittance].FloatOr(0), 1e-9)
	assert.InDelta(t, 1000, row[ColRemitNet].FloatOr(0), 1e-9)
	assert.InDelta(t, 600, row[ColCOGS].FloatOr(0), 1e-9)
	assert.InDelta(t, 400, row[ColMargin].FloatOr(0), 1e-9)
	assert.InDelta(t, 84, row[ColTax].FloatOr(0), 1e-9)
	assert.InDelta(t, 0, row[ColAllocation].FloatOr(-1), 1e-9)
	assert.InDelta(t, 316, row[ColProfit].FloatOr(0), 1e-9)
	assert.InDelta(t, 316.0, row[ColUnitProfit].FloatOr(0), 1e-9)
}

func TestDeriveCostOverrideBeatsDefault(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	ds.Rows = append(ds.Rows, salesRow("A-1", 1, 2, 1000, 0, 900, 0, 0))

	out, err := Derive(ds, Params{
		UnitCostByArticle: map[string]float64{"A-1": 100},
		DefaultUnitCost:   600,
	})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.InDelta(t, 200, out.Rows[0][ColCOGS].FloatOr(0), 1e-9)
}

func TestDeriveDropsExactZeroProfitOnly(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	// remittance exactly covers cogs: profit 0, dropped
	ds.Rows = append(ds.Rows, salesRow("ZERO", 1, 1, 0, 0, 600, 0, 0))
	// one kopeck of profit survives
	ds.Rows = append(ds.Rows, salesRow("PENNY", 1, 1, 0, 0, 600.01, 0, 0))
	// losses survive too
	ds.Rows = append(ds.Rows, salesRow("LOSS", 1, 1, 0, 0, 500, 0, 0))

	out, err := Derive(ds, Params{DefaultUnitCost: 600})
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, "PENNY", out.Rows[0][ColArticle].String())
	assert.Equal(t, "LOSS", out.Rows[1][ColArticle].String())
	assert.InDelta(t, -100, out.Rows[1][ColProfit].FloatOr(0), 1e-9)
}

func TestDeriveSharedCostAllocation(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	ds.Rows = append(ds.Rows, salesRow("A-1", 3, 3, 0, 0, 1000, 0, 0))
	ds.Rows = append(ds.Rows, salesRow("B-2", 1, 1, 0, 0, 1000, 0, 0))

	out, err := Derive(ds, Params{SharedCostPool: 400})
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.InDelta(t, 300, out.Rows[0][ColAllocation].FloatOr(0), 1e-9, "3 of 4 orders")
	assert.InDelta(t, 100, out.Rows[1][ColAllocation].FloatOr(0), 1e-9)
}

func TestDeriveZeroOrdersWithPoolFailsLoudly(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	ds.Rows = append(ds.Rows, salesRow("A-1", 0, 1, 0, 0, 1000, 0, 0))

	_, err := Derive(ds, Params{SharedCostPool: 400})
	var divErr *tabular.DivisionPolicyError
	require.ErrorAs(t, err, &divErr)
}

func TestDeriveUnitProfitFallsBackToOrders(t *testing.T) {
	ds := tabular.NewDataset(inputColumns()...)
	// nothing sold yet, but two orders placed
	ds.Rows = append(ds.Rows, salesRow("A-1", 2, 0, 0, 0, 500, 0, 0))

	out, err := Derive(ds, Params{})
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.InDelta(t, 250, out.Rows[0][ColUnitProfit].FloatOr(0), 1e-9)
}

func TestValidateRejectsReordering(t *testing.T) {
	chain := Chain()
	require.NoError(t, Validate(chain, inputColumns()))

	// swapping margin before cost of goods breaks the dependency
	reordered := append([]Step(nil), chain...)
	reordered[3], reordered[4] = reordered[4], reordered[3]
	err := Validate(reordered, inputColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColCOGS)
}

func TestValidateMissingStartColumn(t *testing.T) {
	cols := inputColumns()
	err := Validate(Chain(), cols[:len(cols)-1]) // drop logistics
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColLogistics)
}
