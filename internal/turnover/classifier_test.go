package turnover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPolicyTable(t *testing.T) {
	tests := []struct {
		name        string
		stock, flow float64
		wantKind    ResultKind
		wantDays    float64
		wantDisplay string
	}{
		{"no stock no flow", 0, 0, Zero, 0, "0"},
		{"no stock with flow", 0, 20, ReplenishNeeded, 0, "replenish"},
		{"stock without flow", 140, 0, Critical, 0, "out of turnover"},
		{"finite days", 140, 20, Numeric, 49.0, "49.0"},
		{"rounded to one decimal", 100, 30, Numeric, 23.3, "23.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.stock, tt.flow, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, res.Kind)
			if tt.wantKind == Numeric {
				assert.InDelta(t, tt.wantDays, res.Days, 1e-9)
			}
			assert.Equal(t, tt.wantDisplay, res.Display())
		})
	}
}

func TestGradeSentinels(t *testing.T) {
	assert.Equal(t, GradeNoActivity, Grade(Result{Kind: Zero}, ByOrders))
	assert.Equal(t, GradeReplenish, Grade(Result{Kind: ReplenishNeeded}, ByOrders))
	assert.Equal(t, GradeSOS, Grade(Result{Kind: Critical}, ByOrders))
	assert.Equal(t, GradeSOS, Grade(Result{Kind: Critical}, BySales),
		"sentinels ignore the mode scale")
}

func TestGradeBinsByOrders(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{0, GradeStrongDeficit},
		{49, GradeStrongDeficit},
		{116.9, GradeStrongDeficit},
		{117, GradeDeficit},
		{177, GradeNorm},
		{237, GradeAttention},
		{297, GradeSurplus},
		{357, GradeHighSurplus},
		{417, GradeDeadStock},
		{477, GradeDeadStock100},
		{5000, GradeDeadStock100},
	}
	for _, tt := range tests {
		got := Grade(Result{Kind: Numeric, Days: tt.days}, ByOrders)
		assert.Equal(t, tt.want, got, "days %v", tt.days)
	}
}

func TestGradeBinsBySales(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{29.9, GradeStrongDeficit},
		{30, GradeDeficit},
		{60, GradeNorm},
		{119, GradeAttention},
		{209.9, GradeDeadStock},
		{210, GradeDeadStock100},
	}
	for _, tt := range tests {
		got := Grade(Result{Kind: Numeric, Days: tt.days}, BySales)
		assert.Equal(t, tt.want, got, "days %v", tt.days)
	}
}
