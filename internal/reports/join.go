package reports

import (
	"strings"

	"SellerPulse/internal/tabular"
)

const joinSep = "\x1f"

// outerJoin merges two aggregated datasets on the key columns. Rows present
// on only one side keep the other side's value columns missing. Left row
// order first, then right-only keys in their own order.
func outerJoin(left, right *tabular.Dataset, keys []string) *tabular.Dataset {
	out := &tabular.Dataset{Columns: append([]string(nil), left.Columns...)}
	for _, c := range right.Columns {
		out.AddColumn(c)
	}

	rightByKey := make(map[string]tabular.Row, right.Len())
	var rightOrder []string
	for _, r := range right.Rows {
		k := rowKey(r, keys)
		rightByKey[k] = r
		rightOrder = append(rightOrder, k)
	}

	seen := make(map[string]bool, left.Len())
	for _, l := range left.Rows {
		k := rowKey(l, keys)
		seen[k] = true
		merged := l.Clone()
		if r, ok := rightByKey[k]; ok {
			for col, v := range r {
				if _, exists := merged[col]; !exists {
					merged[col] = v
				}
			}
		}
		out.Rows = append(out.Rows, merged)
	}
	for _, k := range rightOrder {
		if seen[k] {
			continue
		}
		seen[k] = true
		out.Rows = append(out.Rows, rightByKey[k].Clone())
	}
	return out
}

func rowKey(r tabular.Row, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = r[k].String()
	}
	return strings.Join(parts, joinSep)
}
