// Package sections splits a fully derived dataset into named report sections
// and builds the grouped layout with per-group total rows used by the
// warehouse turnover sheets.
package sections

import (
	"sort"

	"SellerPulse/internal/tabular"
	"SellerPulse/internal/turnover"
)

// Section is one named sub-dataset emitted as an independent report block.
type Section struct {
	Name string
	Data *tabular.Dataset
}

// Category maps a section name to the key prefixes that select its rows.
type Category struct {
	Name     string
	Prefixes []string
}

// OtherSection collects rows matching no declared category.
const OtherSection = "other"

// ByKeyPrefix partitions by prefix membership of the key column, preserving
// input row order inside every section. Categories are matched in declared
// order; the first match wins. Unmatched rows land in a trailing "other"
// section, emitted only when non-empty.
func ByKeyPrefix(ds *tabular.Dataset, keyColumn string, categories []Category) []Section {
	out := make([]Section, len(categories))
	for i, c := range categories {
		out[i] = Section{Name: c.Name, Data: &tabular.Dataset{Columns: ds.Columns}}
	}
	other := &tabular.Dataset{Columns: ds.Columns}

rows:
	for _, row := range ds.Rows {
		key := row[keyColumn].String()
		for i, c := range categories {
			for _, p := range c.Prefixes {
				if len(key) >= len(p) && key[:len(p)] == p {
					out[i].Data.Rows = append(out[i].Data.Rows, row)
					continue rows
				}
			}
		}
		other.Rows = append(other.Rows, row)
	}
	if other.Len() > 0 {
		out = append(out, Section{Name: OtherSection, Data: other})
	}
	return out
}

// ByColumnValue partitions by the value of a previously computed grade or
// bracket column. order fixes the section sequence; values outside it are
// appended in first-seen order. Row order inside a section is input order.
func ByColumnValue(ds *tabular.Dataset, column string, order []string) []Section {
	byValue := make(map[string]*tabular.Dataset)
	var seen []string
	for _, row := range ds.Rows {
		v := row[column].String()
		d, ok := byValue[v]
		if !ok {
			d = &tabular.Dataset{Columns: ds.Columns}
			byValue[v] = d
			seen = append(seen, v)
		}
		d.Rows = append(d.Rows, row)
	}

	var out []Section
	emitted := make(map[string]bool)
	for _, name := range order {
		if d, ok := byValue[name]; ok {
			out = append(out, Section{Name: name, Data: d})
			emitted[name] = true
		}
	}
	for _, name := range seen {
		if !emitted[name] {
			out = append(out, Section{Name: name, Data: byValue[name]})
		}
	}
	return out
}

// TotalMarker is set to 1 on synthetic group-total rows so the report writer
// can style them without re-deriving group boundaries.
const TotalMarker = "is_total"

// GroupTotalsConfig drives the insert-totals layout.
type GroupTotalsConfig struct {
	// GroupBy is the primary key column; one total row is appended per
	// distinct value.
	GroupBy string
	// StockColumn and FlowColumn feed the group-level turnover recompute.
	StockColumn string
	FlowColumn  string
	// SubSortColumn orders rows inside a group, descending, stable.
	SubSortColumn string
	// SumColumns are the metrics carried onto the total row.
	SumColumns []string
	// TurnoverColumn and GradeColumn receive the recomputed group figures.
	TurnoverColumn string
	GradeColumn    string
	Period         float64
	Mode           turnover.Mode
}

// WithGroupTotals groups rows by the primary key, orders groups by their
// total flow descending, sorts rows inside each group by the sub-metric, and
// appends one synthetic total row per group right after its data rows. The
// total row's turnover and grade are recomputed from the group's summed stock
// and flow with the same classifier policy, never averaged from row grades.
func WithGroupTotals(ds *tabular.Dataset, cfg GroupTotalsConfig) (*tabular.Dataset, error) {
	type group struct {
		key   tabular.Value
		rows  []tabular.Row
		flow  float64
		stock float64
	}
	byKey := make(map[string]*group)
	var order []*group
	for _, row := range ds.Rows {
		k := row[cfg.GroupBy].String()
		g, ok := byKey[k]
		if !ok {
			g = &group{key: row[cfg.GroupBy]}
			byKey[k] = g
			order = append(order, g)
		}
		g.rows = append(g.rows, row)
		g.flow += row[cfg.FlowColumn].FloatOr(0)
		g.stock += row[cfg.StockColumn].FloatOr(0)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].flow > order[j].flow
	})

	out := &tabular.Dataset{Columns: ds.Columns}
	for _, g := range order {
		sort.SliceStable(g.rows, func(i, j int) bool {
			return g.rows[i][cfg.SubSortColumn].FloatOr(0) > g.rows[j][cfg.SubSortColumn].FloatOr(0)
		})
		out.Rows = append(out.Rows, g.rows...)

		total := tabular.Row{
			cfg.GroupBy: g.key,
			TotalMarker: tabular.Number(1),
		}
		for _, col := range cfg.SumColumns {
			var sum float64
			for _, row := range g.rows {
				sum += row[col].FloatOr(0)
			}
			total[col] = tabular.Number(sum)
		}
		res, err := turnover.Classify(g.stock, g.flow, cfg.Period)
		if err != nil {
			return nil, err
		}
		total[cfg.TurnoverColumn] = tabular.Text(res.Display())
		total[cfg.GradeColumn] = tabular.Text(turnover.Grade(res, cfg.Mode))
		out.Rows = append(out.Rows, total)
	}
	return out, nil
}
