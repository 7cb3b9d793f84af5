// Package scoring turns raw cricket counters into the derived metrics, points and market value
// that every other part of the service reads. It is the only place the formula lives.
//
// Everything here is pure and total: no I/O, no shared state, no errors. Divisions that would
// produce NaN or Inf degrade to zero instead of failing, so callers never branch on arithmetic.
package scoring

import (
	"math"

	"github.com/maxviazov/fantasy-cricket-service/internal/model"
)

const (
	ballsPerOver = 6

	strikeRateDivisor    = 5
	averageWeight        = 0.8
	bowlingPointsNumer   = 500
	valuePerPoint        = 9
	valueBase            = 100
	valueScale           = 1000
	valueRoundingStep    = 50000
	int64RangeUpperBound = float64(1 << 63)
)

// Compute derives batting/bowling rates, points and value from a raw record.
//
// Zero balls faced and zero innings are read as one so the batting rates stay defined.
// Wickets and overs gate their formulas instead: no wickets means a bowling strike rate of 0,
// no overs means an economy rate of 0. A bowling strike rate of 0 contributes no bowling points.
func Compute(rec model.PerformanceRecord) model.DerivedMetrics {
	runs := float64(rec.TotalRuns)
	balls := float64(defaultOne(rec.BallsFaced))
	innings := float64(defaultOne(rec.InningsPlayed))

	battingStrikeRate := runs / balls * 100
	battingAverage := runs / innings

	var bowlingStrikeRate float64
	if rec.Wickets > 0 {
		bowlingStrikeRate = rec.OversBowled * ballsPerOver / float64(rec.Wickets)
	}
	var economyRate float64
	if rec.OversBowled > 0 {
		economyRate = float64(rec.RunsConceded) / rec.OversBowled * ballsPerOver
	}

	battingPoints := battingStrikeRate/strikeRateDivisor + battingAverage*averageWeight
	var bowlingPoints float64
	if bowlingStrikeRate > 0 {
		bowlingPoints = bowlingPointsNumer / bowlingStrikeRate
	}
	points := battingPoints + bowlingPoints + economyRate

	return model.DerivedMetrics{
		BattingStrikeRate: finite(battingStrikeRate),
		BattingAverage:    finite(battingAverage),
		BowlingStrikeRate: finite(bowlingStrikeRate),
		EconomyRate:       finite(economyRate),
		PlayerPoints:      finite(points),
		PlayerValue:       Value(points),
	}
}

// Value prices a player from their points, rounded half-up to the nearest 50,000.
// Non-finite points, or a price that does not fit in int64, yield 0.
func Value(points float64) int64 {
	v := (valuePerPoint*points + valueBase) * valueScale
	v = roundHalfUp(v/valueRoundingStep) * valueRoundingStep
	if !isFinite(v) || v >= int64RangeUpperBound || v < -int64RangeUpperBound {
		return 0
	}
	return int64(v)
}

// roundHalfUp rounds .5 towards +Inf for both signs, unlike math.Round.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func defaultOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func finite(x float64) float64 {
	if !isFinite(x) {
		return 0
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
