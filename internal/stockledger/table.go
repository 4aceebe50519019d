package stockledger

import "SellerPulse/internal/tabular"

// DeltaColumns maps dataset column names onto delta-row fields. Name,
// Location and Note are optional; leave them empty when a movement source
// does not carry them.
type DeltaColumns struct {
	ArticleGroup string
	Size         string
	Quantity     string
	Name         string
	Location     string
	Note         string
}

// DeltasFromDataset converts one aggregated movement dataset into signed
// delta rows. Sign multiplies every quantity: +1 for incoming sources, -1
// for outgoing ones whose sheets carry unsigned quantities.
func DeltasFromDataset(ds *tabular.Dataset, cols DeltaColumns, sign float64) []DeltaRow {
	out := make([]DeltaRow, 0, ds.Len())
	for _, r := range ds.Rows {
		d := DeltaRow{
			Key: Key{
				ArticleGroup: r[cols.ArticleGroup].String(),
				Size:         r[cols.Size].String(),
			},
			Quantity: r[cols.Quantity].FloatOr(0) * sign,
		}
		if cols.Name != "" {
			d.Name = r[cols.Name].String()
		}
		if cols.Location != "" {
			d.Location = r[cols.Location].String()
		}
		if cols.Note != "" {
			d.Note = r[cols.Note].String()
		}
		out = append(out, d)
	}
	return out
}
