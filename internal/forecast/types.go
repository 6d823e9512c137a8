// Package forecast implements the cost-forecasting engine of spec.md
// §4.5: holdout-validated model selection among linear regression,
// EWMA, Holt linear, Holt-Winters, and an inverse-MAPE-weighted
// ensemble. The base linear fit is grounded on the teacher's
// applyLinearRegression in internal/cost/forecaster.go; the remaining
// methods are new closed-form numeric routines (see DESIGN.md).
package forecast

import (
	"math"
	"time"

	"github.com/cloudgraph/ikg/pkg/model"
)

// DataPoint is one observation in the historical cost series.
type DataPoint struct {
	Timestamp time.Time
	TotalCost float64
	NodeCount int
	Provider  *model.Provider
}

// Options controls a forecast run. Zero values take spec.md §4.5's
// documented defaults via ResolveDefaults.
type Options struct {
	ForecastDays    int
	ConfidenceLevel float64 // 0.90, 0.95, 0.99 (else treated as z=1.0)
	Provider        *model.Provider
	ResourceType    *model.ResourceType
	MinDataPoints   int
}

// ResolveDefaults fills zero-valued fields with spec.md's defaults.
func (o Options) ResolveDefaults() Options {
	if o.ForecastDays == 0 {
		o.ForecastDays = 90
	}
	if o.MinDataPoints == 0 {
		o.MinDataPoints = 3
	}
	return o
}

// ZScore maps a confidence level to its z-score, defaulting to 1.0 for
// unrecognized levels.
func ZScore(confidenceLevel float64) float64 {
	switch confidenceLevel {
	case 0.90:
		return 1.645
	case 0.95:
		return 1.96
	case 0.99:
		return 2.576
	default:
		return 1.0
	}
}

// Method names the selected forecasting model.
type Method string

const (
	MethodLinearRegression Method = "linear-regression"
	MethodEWMA             Method = "ewma"
	MethodHoltLinear       Method = "holt-linear"
	MethodHoltWinters      Method = "holt-winters"
	MethodEnsemble         Method = "ensemble"
)

// Point is one forecast output for a future day.
type Point struct {
	Day        int
	Timestamp  time.Time
	Predicted  float64
	LowerBound float64
	UpperBound float64
	Confidence float64
}

// Result is the full forecast output.
type Result struct {
	Points         []Point
	MethodSelected Method
	HoldoutMAPE    map[Method]float64
	Seasonality    *SeasonalityReport
	Summary        Summary
}

// SeasonalityReport describes weekly seasonality in the series.
type SeasonalityReport struct {
	Detected        bool
	PeakDayOfWeek   time.Weekday
	VariationFactor float64
	DayOfWeekAvg    map[time.Weekday]float64
}

// TrendCategory classifies the cost trend for Summary.
type TrendCategory string

const (
	TrendIncreasing TrendCategory = "increasing"
	TrendDecreasing TrendCategory = "decreasing"
	TrendStable     TrendCategory = "stable"
)

// Summary enriches a forecast with the current cost snapshot, trend
// classification, and per-provider/per-resource-type breakdowns plus
// top cost drivers (requires reading current graph state).
type Summary struct {
	CurrentCost       float64
	Trend             TrendCategory
	MonthlyRate       float64
	ByProvider        map[model.Provider]float64
	ByResourceType    map[model.ResourceType]float64
	TopCostDrivers    []TopCostDriver
}

// TopCostDriver is one of the top-5 cost-driving nodes in Summary.
type TopCostDriver struct {
	NodeID      string
	Name        string
	CostMonthly float64
}

// sanitize replaces any non-finite cost value with zero on ingestion,
// per spec.md §4.5.
func sanitize(points []DataPoint) []DataPoint {
	out := make([]DataPoint, len(points))
	for i, p := range points {
		if isNonFinite(p.TotalCost) {
			p.TotalCost = 0
		}
		out[i] = p
	}
	return out
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
