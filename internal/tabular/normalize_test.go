package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"42.5", 42.5, true},
		{"1 234,56", 1234.56, true},
		{"1 234", 1234, true},
		{"12,5", 12.5, true},
		{"1,234.5", 1234.5, true},
		{"7%", 7, true},
		{"  99  ", 99, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"12,3,4", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
		}
	}
}

func TestStripFloatArtifact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"38.0", "38"},
		{"38.00", "38"},
		{"38.5", "38.5"},
		{"38", "38"},
		{"XS", "XS"},
		{"38.", "38"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFloatArtifact(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeMissingColumn(t *testing.T) {
	ds := NewDataset("article")
	ds.Rows = append(ds.Rows, Row{"article": Text("A-1")})

	_, _, err := Normalize(ds, Schema{Required: []string{"article", "quantity"}})
	require.Error(t, err)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"quantity"}, mismatch.Missing)
}

func TestNormalizeCoercionAndKeyFilter(t *testing.T) {
	ds := NewDataset("article", "size", "quantity")
	add := func(article, size, qty string) {
		ds.Rows = append(ds.Rows, Row{
			"article":  Text(article),
			"size":     Text(size),
			"quantity": Text(qty),
		})
	}
	add("A-1", "38.0", "5")
	add("A-1", "40", "bad")
	add("", "38", "1")  // empty key
	add("0", "38", "1") // placeholder key

	schema := Schema{
		Required:    []string{"article", "size", "quantity"},
		Numeric:     []string{"quantity"},
		Categorical: []string{"article", "size"},
		KeyColumn:   "article",
	}
	clean, stats, err := Normalize(ds, schema)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Valid)
	assert.Equal(t, 2, stats.Skipped)
	require.Len(t, clean.Rows, 2)

	assert.Equal(t, Text("38"), clean.Rows[0]["size"], "float artifact stripped")
	assert.Equal(t, Number(5), clean.Rows[0]["quantity"])
	assert.Equal(t, KindMissing, clean.Rows[1]["quantity"].Kind,
		"uncoercible cell becomes missing, not zero")
}

func TestNormalizeIdempotent(t *testing.T) {
	ds := NewDataset("article", "quantity")
	ds.Rows = append(ds.Rows, Row{"article": Text("A-1"), "quantity": Text("3")})

	schema := Schema{
		Required:  []string{"article", "quantity"},
		Numeric:   []string{"quantity"},
		KeyColumn: "article",
	}
	once, _, err := Normalize(ds, schema)
	require.NoError(t, err)
	twice, stats, err := Normalize(once, schema)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Valid)
	assert.Equal(t, once.Rows, twice.Rows)
}
