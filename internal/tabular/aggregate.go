package tabular

import (
	"math"
	"sort"
	"strings"
)

// Reducer is one of the supported column reductions.
type Reducer int

const (
	// ReduceSum totals numeric cells; missing counts as zero.
	ReduceSum Reducer = iota
	// ReduceCount counts rows in the bucket.
	ReduceCount
	// ReduceFirst takes the first non-missing value in original input order.
	ReduceFirst
	// ReduceMeanNonzero averages excluding zeros and missing from both the
	// numerator and the denominator; an all-zero bucket reduces to zero.
	ReduceMeanNonzero
	// ReduceHistogram counts occurrences of each distinct value in the bucket.
	ReduceHistogram
)

// Reduction binds a value column to a reducer. As renames the output column;
// empty As keeps the source name.
type Reduction struct {
	Column string
	Op     Reducer
	As     string
}

func (r Reduction) outName() string {
	if r.As != "" {
		return r.As
	}
	return r.Column
}

// AggregateSpec describes one grouping pass: key columns in order plus the
// reductions applied to every bucket.
type AggregateSpec struct {
	GroupBy    []string
	Reductions []Reduction
}

const keySep = "\x1f"

type bucket struct {
	keyVals []Value
	rows    []Row
}

// Aggregate produces exactly one output row per distinct group key present in
// the input. Output row order is first-seen input order; callers sort
// explicitly afterwards when a report needs a particular order.
func Aggregate(ds *Dataset, spec AggregateSpec) (*Dataset, error) {
	var missing []string
	for _, col := range spec.GroupBy {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	for _, red := range spec.Reductions {
		if red.Op != ReduceCount && !ds.HasColumn(red.Column) {
			missing = append(missing, red.Column)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing}
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, row := range ds.Rows {
		keyVals := make([]Value, len(spec.GroupBy))
		keyParts := make([]string, len(spec.GroupBy))
		for i, col := range spec.GroupBy {
			keyVals[i] = row[col]
			keyParts[i] = row[col].String()
		}
		key := strings.Join(keyParts, keySep)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{keyVals: keyVals}
			buckets[key] = b
			order = append(order, key)
		}
		b.rows = append(b.rows, row)
	}

	out := &Dataset{Columns: append([]string(nil), spec.GroupBy...)}
	for _, red := range spec.Reductions {
		out.AddColumn(red.outName())
	}
	for _, key := range order {
		b := buckets[key]
		agg := make(Row, len(spec.GroupBy)+len(spec.Reductions))
		for i, col := range spec.GroupBy {
			agg[col] = b.keyVals[i]
		}
		for _, red := range spec.Reductions {
			agg[red.outName()] = reduce(b.rows, red)
		}
		out.Rows = append(out.Rows, agg)
	}
	return out, nil
}

func reduce(rows []Row, red Reduction) Value {
	switch red.Op {
	case ReduceSum:
		var total float64
		for _, r := range rows {
			total += r[red.Column].FloatOr(0)
		}
		return Number(total)
	case ReduceCount:
		return Number(float64(len(rows)))
	case ReduceFirst:
		for _, r := range rows {
			if v, ok := r[red.Column]; ok && v.Kind != KindMissing {
				return v
			}
		}
		return Missing()
	case ReduceMeanNonzero:
		var sum float64
		var n int
		for _, r := range rows {
			if f, ok := r[red.Column].Float(); ok && f != 0 {
				sum += f
				n++
			}
		}
		if n == 0 {
			return Number(0)
		}
		return Number(sum / float64(n))
	case ReduceHistogram:
		hist := make(map[string]int)
		for _, r := range rows {
			if v := r[red.Column]; v.Kind != KindMissing {
				hist[v.String()]++
			}
		}
		return Histogram(hist)
	}
	return Missing()
}

// SortByNumberDesc stably sorts rows by a numeric column, largest first.
// Missing cells sort last; ties keep original order.
func SortByNumberDesc(ds *Dataset, col string) {
	neg := math.Inf(-1)
	sort.SliceStable(ds.Rows, func(i, j int) bool {
		return ds.Rows[i][col].FloatOr(neg) > ds.Rows[j][col].FloatOr(neg)
	})
}

// SortByTextAsc stably sorts rows by a text column.
func SortByTextAsc(ds *Dataset, col string) {
	sort.SliceStable(ds.Rows, func(i, j int) bool {
		return ds.Rows[i][col].String() < ds.Rows[j][col].String()
	})
}
