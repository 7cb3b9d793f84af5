package scoring_test

import (
	"math"
	"testing"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
	"github.com/maxviazov/fantasy-cricket-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		rec  model.PerformanceRecord
		want model.DerivedMetrics
	}{
		{
			name: "pure batsman",
			rec:  model.PerformanceRecord{TotalRuns: 450, BallsFaced: 300, InningsPlayed: 12},
			want: model.DerivedMetrics{
				BattingStrikeRate: 150,
				BattingAverage:    37.5,
				PlayerPoints:      60,
				PlayerValue:       650000,
			},
		},
		{
			name: "all zero",
			rec:  model.PerformanceRecord{},
			want: model.DerivedMetrics{PlayerValue: 100000},
		},
		{
			name: "pure bowler",
			rec: model.PerformanceRecord{
				BallsFaced: 1, InningsPlayed: 1,
				Wickets: 10, OversBowled: 40, RunsConceded: 200,
			},
			want: model.DerivedMetrics{
				BowlingStrikeRate: 24,
				EconomyRate:       30,
				PlayerPoints:      500.0/24 + 30,
				PlayerValue:       550000,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scoring.Compute(tc.rec)
			assert.InDelta(t, tc.want.BattingStrikeRate, got.BattingStrikeRate, 1e-9)
			assert.InDelta(t, tc.want.BattingAverage, got.BattingAverage, 1e-9)
			assert.InDelta(t, tc.want.BowlingStrikeRate, got.BowlingStrikeRate, 1e-9)
			assert.InDelta(t, tc.want.EconomyRate, got.EconomyRate, 1e-9)
			assert.InDelta(t, tc.want.PlayerPoints, got.PlayerPoints, 1e-9)
			assert.Equal(t, tc.want.PlayerValue, got.PlayerValue)
		})
	}
}

// edgeRecords covers zeros, negatives, huge and non-finite inputs.
var edgeRecords = []model.PerformanceRecord{
	{},
	{TotalRuns: 1},
	{BallsFaced: 1, InningsPlayed: 1},
	{Wickets: 3},
	{OversBowled: 12.4},
	{RunsConceded: 90},
	{OversBowled: 10, RunsConceded: 0, Wickets: 0},
	{TotalRuns: 37, BallsFaced: 29, InningsPlayed: 2, Wickets: 1, OversBowled: 4, RunsConceded: 31},
	{TotalRuns: -100, BallsFaced: -5, InningsPlayed: -1, Wickets: -2, OversBowled: -3, RunsConceded: -40},
	{TotalRuns: math.MaxInt, BallsFaced: 1, InningsPlayed: 1},
	{Wickets: 1, OversBowled: math.MaxFloat64, RunsConceded: 10},
	{Wickets: 1, OversBowled: math.NaN(), RunsConceded: 10},
	{Wickets: 2, OversBowled: math.Inf(1)},
	{Wickets: 2, OversBowled: math.SmallestNonzeroFloat64, RunsConceded: math.MaxInt},
}

func TestCompute_Finite(t *testing.T) {
	for _, rec := range edgeRecords {
		got := scoring.Compute(rec)
		for _, v := range []float64{got.BattingStrikeRate, got.BattingAverage, got.BowlingStrikeRate, got.EconomyRate, got.PlayerPoints} {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite output for %+v: %+v", rec, got)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	for _, rec := range edgeRecords {
		assert.Equal(t, scoring.Compute(rec), scoring.Compute(rec))
	}
}

func TestCompute_ValueIsMultipleOf50000(t *testing.T) {
	for _, rec := range edgeRecords {
		got := scoring.Compute(rec)
		assert.Zero(t, got.PlayerValue%50000, "value %d for %+v", got.PlayerValue, rec)
	}
	for runs := 0; runs < 500; runs += 7 {
		got := scoring.Compute(model.PerformanceRecord{TotalRuns: runs, BallsFaced: 33, InningsPlayed: 5, Wickets: 2, OversBowled: 7.3, RunsConceded: 41})
		assert.Zero(t, got.PlayerValue%50000)
	}
}

func TestCompute_ZeroWicketsGate(t *testing.T) {
	for _, overs := range []float64{0, 1, 17.5, 400} {
		rec := model.PerformanceRecord{TotalRuns: 120, BallsFaced: 100, InningsPlayed: 4, OversBowled: overs, RunsConceded: 60}
		got := scoring.Compute(rec)
		assert.Zero(t, got.BowlingStrikeRate)

		battingPoints := got.BattingStrikeRate/5 + got.BattingAverage*0.8
		assert.InDelta(t, battingPoints+got.EconomyRate, got.PlayerPoints, 1e-9, "bowling points must not contribute")
	}
}

func TestCompute_ZeroOversGate(t *testing.T) {
	for _, conceded := range []int{0, 1, 500} {
		got := scoring.Compute(model.PerformanceRecord{Wickets: 4, RunsConceded: conceded})
		assert.Zero(t, got.EconomyRate)
		assert.Zero(t, got.BowlingStrikeRate, "zero overs bowled gives zero balls per wicket")
	}
}

func TestCompute_DefaultDenominators(t *testing.T) {
	zero := scoring.Compute(model.PerformanceRecord{TotalRuns: 42})
	one := scoring.Compute(model.PerformanceRecord{TotalRuns: 42, BallsFaced: 1, InningsPlayed: 1})
	assert.Equal(t, one, zero)
	assert.InDelta(t, 4200, zero.BattingStrikeRate, 1e-9)
	assert.InDelta(t, 42, zero.BattingAverage, 1e-9)
}

func TestValue_RoundHalfUp(t *testing.T) {
	// (9*25+100)*1000/50000 = 6.5
	assert.Equal(t, int64(350000), scoring.Value(25))
	// (9*-25+100)*1000/50000 = -2.5 rounds towards +Inf
	assert.Equal(t, int64(-100000), scoring.Value(-25))
	assert.Equal(t, int64(0), scoring.Value(math.NaN()))
	assert.Equal(t, int64(0), scoring.Value(math.Inf(1)))
	assert.Equal(t, int64(0), scoring.Value(1e30))
}
