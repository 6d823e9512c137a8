package forecast

import (
	"math"
	"sort"
	"time"
)

const seasonalPeriod = 7

// Forecast runs the full holdout-validated method-selection procedure
// of spec.md §4.5 and produces a confidence-banded forecast.
func Forecast(points []DataPoint, opts Options) Result {
	opts = opts.ResolveDefaults()
	points = sanitize(sortPointsByTime(points))
	z := ZScore(opts.ConfidenceLevel)

	if len(points) < opts.MinDataPoints {
		return flatForecast(points, opts)
	}

	series := costSeries(points)
	trainLen := int(float64(len(series)) * 0.8)
	if trainLen < 1 {
		trainLen = 1
	}
	testLen := len(series) - trainLen

	if testLen == 0 {
		return finalizeForecast(points, opts, z, MethodLinearRegression, nil)
	}

	train := series[:trainLen]
	test := series[trainLen:]
	trainPoints := points[:trainLen]

	holdoutMAPE := make(map[Method]float64)
	holdoutPreds := make(map[Method][]float64)

	lin := fitLinear(trainPoints)
	linPred := lin.forecast(float64(trainLen-1), testLen)
	holdoutPreds[MethodLinearRegression] = linPred
	holdoutMAPE[MethodLinearRegression] = mape(test, linPred)

	ewma := fitEWMA(train)
	ewmaPred, _ := ewma.forecast(testLen)
	holdoutPreds[MethodEWMA] = ewmaPred
	holdoutMAPE[MethodEWMA] = mape(test, ewmaPred)

	if trainLen >= 3 {
		holt := fitHoltLinear(train)
		holtPred := holt.forecast(testLen)
		holdoutPreds[MethodHoltLinear] = holtPred
		holdoutMAPE[MethodHoltLinear] = mape(test, holtPred)
	}

	if trainLen >= 2*seasonalPeriod {
		if hw, ok := fitHoltWinters(train, seasonalPeriod); ok {
			hwPred := hw.forecast(testLen)
			holdoutPreds[MethodHoltWinters] = hwPred
			holdoutMAPE[MethodHoltWinters] = mape(test, hwPred)
		}
	}

	weights := ensembleWeights(holdoutMAPE)
	ensemblePred := weightedSum(holdoutPreds, weights, testLen)
	holdoutMAPE[MethodEnsemble] = mape(test, ensemblePred)

	selected := selectBestMethod(holdoutMAPE)

	return finalizeForecast(points, opts, z, selected, holdoutMAPE)
}

func costSeries(points []DataPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.TotalCost
	}
	return out
}

func ensembleWeights(holdoutMAPE map[Method]float64) map[Method]float64 {
	weights := make(map[Method]float64)
	var sumInv float64
	for method, m := range holdoutMAPE {
		if method == MethodEnsemble {
			continue
		}
		inv := 1.0
		if m > 0 {
			inv = 1.0 / m
		} else {
			inv = 1e6 // near-zero MAPE dominates the ensemble
		}
		weights[method] = inv
		sumInv += inv
	}
	if sumInv == 0 {
		return weights
	}
	for method := range weights {
		weights[method] /= sumInv
	}
	return weights
}

func weightedSum(preds map[Method][]float64, weights map[Method]float64, h int) []float64 {
	out := make([]float64, h)
	for method, w := range weights {
		p, ok := preds[method]
		if !ok {
			continue
		}
		for i := 0; i < h && i < len(p); i++ {
			out[i] += w * p[i]
		}
	}
	return out
}

func selectBestMethod(holdoutMAPE map[Method]float64) Method {
	best := MethodLinearRegression
	bestMAPE := math.Inf(1)
	// Deterministic iteration order over a fixed priority list so ties
	// resolve the same way every run.
	order := []Method{MethodLinearRegression, MethodEWMA, MethodHoltLinear, MethodHoltWinters, MethodEnsemble}
	for _, m := range order {
		v, ok := holdoutMAPE[m]
		if !ok {
			continue
		}
		if v < bestMAPE {
			bestMAPE = v
			best = m
		}
	}
	return best
}

func flatForecast(points []DataPoint, opts Options) Result {
	last := 0.0
	var lastTS time.Time
	if len(points) > 0 {
		last = points[len(points)-1].TotalCost
		lastTS = points[len(points)-1].Timestamp
	} else {
		lastTS = time.Time{}
	}
	var out []Point
	for i := 1; i <= opts.ForecastDays; i++ {
		out = append(out, Point{
			Day: i, Timestamp: lastTS.AddDate(0, 0, i),
			Predicted: last, LowerBound: last, UpperBound: last, Confidence: 0,
		})
	}
	return Result{Points: out, MethodSelected: MethodLinearRegression, Summary: summarize(points, out)}
}

// finalizeForecast re-fits the selected method (or every component
// method, for ensemble) on the full series and produces the final
// confidence-banded forecast.
func finalizeForecast(points []DataPoint, opts Options, z float64, selected Method, holdoutMAPE map[Method]float64) Result {
	series := costSeries(points)
	n := len(series)
	h := opts.ForecastDays

	var preds []float64
	var sigma float64
	var stepSigmas []float64

	switch selected {
	case MethodEnsemble:
		weights := ensembleWeights(holdoutMAPE)
		full := make(map[Method][]float64)

		lin := fitLinear(points)
		full[MethodLinearRegression] = lin.forecast(float64(n-1), h)

		ewma := fitEWMA(series)
		ewmaPred, ewmaSig := ewma.forecast(h)
		full[MethodEWMA] = ewmaPred

		var holtSigma float64
		if n >= 3 {
			holt := fitHoltLinear(series)
			full[MethodHoltLinear] = holt.forecast(h)
			holtSigma = holt.RMSE
		}
		var hwSigma float64
		if n >= 2*seasonalPeriod {
			if hw, ok := fitHoltWinters(series, seasonalPeriod); ok {
				full[MethodHoltWinters] = hw.forecast(h)
				hwSigma = hw.RMSE
			}
		}
		preds = weightedSum(full, weights, h)
		sigma = weights[MethodLinearRegression]*lin.StdErr + weights[MethodEWMA]*meanOf(ewmaSig) +
			weights[MethodHoltLinear]*holtSigma + weights[MethodHoltWinters]*hwSigma

	case MethodEWMA:
		m := fitEWMA(series)
		p, sigmas := m.forecast(h)
		preds = p
		stepSigmas = sigmas

	case MethodHoltLinear:
		m := fitHoltLinear(series)
		preds = m.forecast(h)
		sigma = m.RMSE

	case MethodHoltWinters:
		if m, ok := fitHoltWinters(series, seasonalPeriod); ok {
			preds = m.forecast(h)
			sigma = m.RMSE
		} else {
			m := fitLinear(points)
			preds = m.forecast(float64(n-1), h)
			sigma = m.StdErr
		}

	default: // linear regression
		m := fitLinear(points)
		preds = m.forecast(float64(n-1), h)
		sigma = m.StdErr
	}

	lastTS := points[len(points)-1].Timestamp
	var out []Point
	for i := 1; i <= h; i++ {
		predicted := preds[i-1]
		// Confidence decays linearly with horizon for non-linear methods.
		confidence := 1.0
		if selected != MethodLinearRegression {
			confidence = math.Max(0, 1.0-float64(i)/float64(h))
		}
		var width float64
		if selected == MethodEWMA {
			// EWMA's prediction interval widens per-step via
			// Sigma*sqrt(1+(h-1)*Alpha^2), already computed in
			// stepSigmas; it does not follow the generic
			// sqrt(1+i/n) widening the other methods share.
			width = z * stepSigmas[i-1]
		} else {
			width = z * sigma * math.Sqrt(1+float64(i)/float64(n))
		}
		lower := predicted - width
		if lower < 0 {
			lower = 0
		}
		out = append(out, Point{
			Day: i, Timestamp: lastTS.AddDate(0, 0, i),
			Predicted: predicted, LowerBound: lower, UpperBound: predicted + width, Confidence: confidence,
		})
	}

	return Result{
		Points: out, MethodSelected: selected, HoldoutMAPE: holdoutMAPE,
		Seasonality: detectSeasonality(points), Summary: summarize(points, out),
	}
}

func meanOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// detectSeasonality computes day-of-week averages and reports
// seasonality detected when max/min > 1.10.
func detectSeasonality(points []DataPoint) *SeasonalityReport {
	sums := map[time.Weekday]float64{}
	counts := map[time.Weekday]int{}
	for _, p := range points {
		d := p.Timestamp.Weekday()
		sums[d] += p.TotalCost
		counts[d]++
	}
	avgs := map[time.Weekday]float64{}
	for d, sum := range sums {
		avgs[d] = sum / float64(counts[d])
	}
	if len(avgs) == 0 {
		return &SeasonalityReport{DayOfWeekAvg: avgs}
	}
	var maxV, minV float64
	var peak time.Weekday
	first := true
	for d, v := range avgs {
		if first || v > maxV {
			maxV = v
			peak = d
		}
		if first || v < minV {
			minV = v
		}
		first = false
	}
	factor := 1.0
	if minV != 0 {
		factor = maxV / minV
	}
	return &SeasonalityReport{
		Detected:        factor > 1.10,
		PeakDayOfWeek:   peak,
		VariationFactor: factor,
		DayOfWeekAvg:    avgs,
	}
}

// summarize enriches the forecast with the current cost and trend
// classification. The provider/resource-type breakdowns and the
// top-cost-driver field are populated separately by callers who have
// access to live graph state (see EnrichWithGraph).
func summarize(points []DataPoint, forecastPoints []Point) Summary {
	var current float64
	if len(points) > 0 {
		current = points[len(points)-1].TotalCost
	}
	monthlyRate := estimateMonthlyRate(points)
	threshold := math.Max(0.02*current, 1.0)

	trend := TrendStable
	if monthlyRate > threshold {
		trend = TrendIncreasing
	} else if monthlyRate < -threshold {
		trend = TrendDecreasing
	}

	return Summary{
		CurrentCost: current,
		Trend:       trend,
		MonthlyRate: monthlyRate,
	}
}

// estimateMonthlyRate derives a monthly cost-change rate from a simple
// linear fit over the observed series.
func estimateMonthlyRate(points []DataPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	m := fitLinear(points)
	return m.Slope * 30
}

func sortPointsByTime(points []DataPoint) []DataPoint {
	out := append([]DataPoint{}, points...)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
