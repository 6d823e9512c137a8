package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearSeries(days int, startDate time.Time) []DataPoint {
	out := make([]DataPoint, days)
	for i := 0; i < days; i++ {
		out[i] = DataPoint{
			Timestamp: startDate.AddDate(0, 0, i),
			TotalCost: 100 + 2*float64(i),
		}
	}
	return out
}

func TestForecast_LinearSeriesSelectsLinearRegression_S6(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := linearSeries(30, start)

	result := Forecast(points, Options{ForecastDays: 90})
	require.Len(t, result.Points, 90)
	assert.Equal(t, MethodLinearRegression, result.MethodSelected)

	// The fitted trend is y = 100 + 2t over the 30 training days (t=0..29);
	// the 90th forecast day continues that trend 90 days past the last
	// observed point (t=119).
	day90 := result.Points[89]
	assert.InDelta(t, 100+2*119, day90.Predicted, 5)
}

func TestForecast_SeasonalSeriesDetected_S7(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // Monday
	points := make([]DataPoint, 0, 56)
	for w := 0; w < 8; w++ {
		for d := 0; d < 7; d++ {
			ts := start.AddDate(0, 0, w*7+d)
			cost := 100.0 + 2*float64(w)
			if d < 5 {
				cost += 20
			} else {
				cost -= 40
			}
			points = append(points, DataPoint{Timestamp: ts, TotalCost: cost})
		}
	}

	result := Forecast(points, Options{ForecastDays: 14})
	require.NotNil(t, result.Seasonality)
	assert.True(t, result.Seasonality.Detected)
	assert.Greater(t, result.Seasonality.VariationFactor, 1.1)
}

func TestForecast_ConfidenceBandsWiden(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := linearSeries(20, start)
	points[10].TotalCost += 15 // inject noise so sigma > 0

	result := Forecast(points, Options{ForecastDays: 30, ConfidenceLevel: 0.95})
	require.Len(t, result.Points, 30)

	for _, p := range result.Points {
		assert.LessOrEqual(t, p.LowerBound, p.Predicted)
		assert.GreaterOrEqual(t, p.UpperBound, p.Predicted)
	}
	first := result.Points[0]
	last := result.Points[len(result.Points)-1]
	assert.GreaterOrEqual(t, last.UpperBound-last.LowerBound, first.UpperBound-first.LowerBound)
}

func TestForecast_HoltWintersRefusedBelowTwoPeriods(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := linearSeries(10, start) // fewer than 2*seasonalPeriod=14

	result := Forecast(points, Options{ForecastDays: 7})
	_, hasHW := result.HoldoutMAPE[MethodHoltWinters]
	assert.False(t, hasHW)
}

func TestForecast_BelowMinDataPointsReturnsFlatForecast(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []DataPoint{
		{Timestamp: start, TotalCost: 50},
		{Timestamp: start.AddDate(0, 0, 1), TotalCost: 55},
	}

	result := Forecast(points, Options{ForecastDays: 5, MinDataPoints: 3})
	require.Len(t, result.Points, 5)
	for _, p := range result.Points {
		assert.Equal(t, 55.0, p.Predicted)
	}
}

func TestMAPE_SkipsZeroActuals(t *testing.T) {
	actual := []float64{0, 10, 20}
	predicted := []float64{5, 11, 18}
	m := mape(actual, predicted)
	assert.InDelta(t, 10, m, 0.01)
}

func TestRMSE_MatchesManualComputation(t *testing.T) {
	actual := []float64{1, 2, 3}
	predicted := []float64{1, 2, 5}
	assert.InDelta(t, 1.1547, rmse(actual, predicted), 0.001)
}

func TestFitLinear_RecoversKnownSlope(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := linearSeries(10, start)
	m := fitLinear(points)
	assert.InDelta(t, 2.0, m.Slope, 0.001)
	assert.InDelta(t, 100.0, m.Intercept, 0.001)
	assert.InDelta(t, 1.0, m.R2, 0.001)
}

func TestZScore_KnownLevels(t *testing.T) {
	assert.Equal(t, 1.645, ZScore(0.90))
	assert.Equal(t, 1.96, ZScore(0.95))
	assert.Equal(t, 2.576, ZScore(0.99))
	assert.Equal(t, 1.0, ZScore(0.5))
}
