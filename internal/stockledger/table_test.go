package stockledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/internal/tabular"
)

func TestDeltasFromDataset(t *testing.T) {
	ds := tabular.NewDataset("supplier_article", "size", "quantity", "item_name")
	ds.Rows = append(ds.Rows,
		tabular.Row{
			"supplier_article": tabular.Text("A-1"),
			"size":             tabular.Text("38"),
			"quantity":         tabular.Number(5),
			"item_name":        tabular.Text("shirt"),
		},
		tabular.Row{
			"supplier_article": tabular.Text("B-2"),
			"size":             tabular.Text("40"),
			"quantity":         tabular.Missing(),
		},
	)
	cols := DeltaColumns{
		ArticleGroup: "supplier_article",
		Size:         "size",
		Quantity:     "quantity",
		Name:         "item_name",
	}

	deltas := DeltasFromDataset(ds, cols, -1)
	require.Len(t, deltas, 2)
	assert.Equal(t, Key{ArticleGroup: "A-1", Size: "38"}, deltas[0].Key)
	assert.Equal(t, float64(-5), deltas[0].Quantity, "sign applied to unsigned sheet quantities")
	assert.Equal(t, "shirt", deltas[0].Name)
	assert.Equal(t, float64(0), deltas[1].Quantity, "missing quantity reads as zero")
}

func TestDeltasFromDatasetOptionalColumns(t *testing.T) {
	ds := tabular.NewDataset("supplier_article", "size", "quantity")
	ds.Rows = append(ds.Rows, tabular.Row{
		"supplier_article": tabular.Text("A-1"),
		"size":             tabular.Text("38"),
		"quantity":         tabular.Number(2),
	})
	deltas := DeltasFromDataset(ds, DeltaColumns{
		ArticleGroup: "supplier_article",
		Size:         "size",
		Quantity:     "quantity",
	}, 1)
	require.Len(t, deltas, 1)
	assert.Empty(t, deltas[0].Name)
	assert.Empty(t, deltas[0].Location)
	assert.Empty(t, deltas[0].Note)
}
