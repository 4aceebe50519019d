// Package stockledger merges signed stock movements into a running balance
// table. The merge itself is pure; persistence lives with the HTTP layer.
package stockledger

import "math"

// Key identifies one balance row within a tenant.
type Key struct {
	ArticleGroup string
	Size         string
}

// BalanceRow is one on-hand position. Quantity is integral after
// reconciliation; Location and Note are free-text descriptive fields.
type BalanceRow struct {
	Key      Key
	Quantity float64
	Name     string
	Location string
	Note     string
}

// DeltaRow is one signed quantity change from a movement source. Incoming
// movements arrive positive, outgoing negative; the reconciler never flips
// signs itself.
type DeltaRow struct {
	Key      Key
	Quantity float64
	Name     string
	Location string
	Note     string
}

// Report summarizes one reconciliation pass for caller-level warnings.
type Report struct {
	Created  []Key
	Updated  []Key
	Negative []Key
}

// Options tunes edge-case policy. Negative resulting quantities are written
// and surfaced by default; ClampNegative zero-floors them instead.
type Options struct {
	ClampNegative bool
}

// Reconcile outer-joins the base balance with the summed deltas per key.
// New keys start from zero; keys without movement keep their base quantity.
// Fractional quantities are truncated toward zero after summation, never
// before. Descriptive fields follow a last-writer-wins rule: the latest delta
// source that stated a non-empty value wins, else the base value is kept.
// Output order: base rows in their original order, then newly created keys in
// first-seen delta order.
func Reconcile(base []BalanceRow, deltas [][]DeltaRow, opts Options) ([]BalanceRow, Report) {
	type acc struct {
		delta    float64
		name     string
		location string
		note     string
		touched  bool
	}
	accs := make(map[Key]*acc)
	var newOrder []Key

	known := make(map[Key]bool, len(base))
	for _, b := range base {
		known[b.Key] = true
	}

	for _, source := range deltas {
		for _, d := range source {
			a, ok := accs[d.Key]
			if !ok {
				a = &acc{}
				accs[d.Key] = a
				if !known[d.Key] {
					known[d.Key] = true
					newOrder = append(newOrder, d.Key)
				}
			}
			a.delta += d.Quantity
			a.touched = true
			if d.Name != "" {
				a.name = d.Name
			}
			if d.Location != "" {
				a.location = d.Location
			}
			if d.Note != "" {
				a.note = d.Note
			}
		}
	}

	var out []BalanceRow
	var report Report

	finish := func(row BalanceRow, existed bool) {
		row.Quantity = math.Trunc(row.Quantity)
		if row.Quantity < 0 {
			report.Negative = append(report.Negative, row.Key)
			if opts.ClampNegative {
				row.Quantity = 0
			}
		}
		if existed {
			report.Updated = append(report.Updated, row.Key)
		} else {
			report.Created = append(report.Created, row.Key)
		}
		out = append(out, row)
	}

	for _, b := range base {
		row := b
		a := accs[b.Key]
		if a == nil {
			// untouched key: quantity and descriptive fields pass through
			out = append(out, row)
			continue
		}
		row.Quantity += a.delta
		if a.name != "" {
			row.Name = a.name
		}
		if a.location != "" {
			row.Location = a.location
		}
		if a.note != "" {
			row.Note = a.note
		}
		finish(row, true)
	}

	for _, k := range newOrder {
		a := accs[k]
		finish(BalanceRow{
			Key:      k,
			Quantity: a.delta,
			Name:     a.name,
			Location: a.location,
			Note:     a.note,
		}, false)
	}

	return out, report
}
