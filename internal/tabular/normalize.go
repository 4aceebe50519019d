package tabular

import (
	"strconv"
	"strings"
)

// Schema declares, per report, which columns an input must carry and how each
// one is coerced. It is checked once up front so a malformed upload fails with
// a structured SchemaMismatchError instead of a type error mid-pipeline.
type Schema struct {
	// Required columns must exist in the input header. Absence is fatal for
	// the file.
	Required []string
	// Numeric columns are coerced to numbers; uncoercible cells become an
	// explicit missing marker, never a raw string and never silently zero.
	Numeric []string
	// Categorical columns are trimmed and stripped of trailing ".0" float
	// artifacts (sizes and article codes frequently arrive as floats).
	Categorical []string
	// KeyColumn, when set, drops rows whose key cell is empty or a
	// placeholder ("0"); dropped rows are counted as skipped, not errored.
	KeyColumn string
}

// NormalizeStats reports valid vs skipped rows for caller-level summaries.
type NormalizeStats struct {
	Valid   int
	Skipped int
}

// Normalize coerces a raw dataset according to the schema. The input rows may
// hold text values straight from the spreadsheet reader; output rows hold
// typed values. Applying Normalize to already-normalized data is a no-op.
func Normalize(ds *Dataset, schema Schema) (*Dataset, NormalizeStats, error) {
	var missing []string
	for _, col := range schema.Required {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, NormalizeStats{}, &SchemaMismatchError{Missing: missing}
	}

	numeric := toSet(schema.Numeric)
	categorical := toSet(schema.Categorical)

	out := &Dataset{Columns: append([]string(nil), ds.Columns...)}
	stats := NormalizeStats{}

	for _, row := range ds.Rows {
		clean := make(Row, len(row))
		for col, v := range row {
			switch {
			case numeric[col]:
				clean[col] = coerceNumber(v)
			case categorical[col]:
				clean[col] = coerceCategory(v)
			default:
				clean[col] = v
			}
		}
		if schema.KeyColumn != "" {
			key := clean[schema.KeyColumn].String()
			if key == "" || key == "0" {
				stats.Skipped++
				continue
			}
		}
		out.Rows = append(out.Rows, clean)
		stats.Valid++
	}
	return out, stats, nil
}

func toSet(cols []string) map[string]bool {
	s := make(map[string]bool, len(cols))
	for _, c := range cols {
		s[c] = true
	}
	return s
}

func coerceNumber(v Value) Value {
	switch v.Kind {
	case KindNumber:
		return v
	case KindText:
		if f, ok := ParseNumber(v.Text); ok {
			return Number(f)
		}
		return Missing()
	}
	return Missing()
}

func coerceCategory(v Value) Value {
	s := v.String()
	s = strings.TrimSpace(s)
	s = stripFloatArtifact(s)
	return Text(s)
}

// ParseNumber handles locale-formatted numerics: thousands spaces (including
// non-breaking), comma decimal separators, and stray currency/percent marks.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "%")
	// comma as decimal separator only when there is no dot already
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// stripFloatArtifact turns "38.0" into "38" but leaves "38.5" alone. Sizes
// and barcodes come back as floats when the source sheet typed them numeric.
func stripFloatArtifact(s string) string {
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return s
	}
	frac := s[i+1:]
	if frac == "" {
		return s[:i]
	}
	for _, r := range frac {
		if r != '0' {
			return s
		}
	}
	return s[:i]
}
