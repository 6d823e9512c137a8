package forecast

import "math"

// ewmaModel is an exponentially weighted moving average fit, alpha
// chosen by grid search to minimize in-sample MSE.
type ewmaModel struct {
	Alpha       float64
	Level       float64 // final smoothed value
	Sigma       float64 // residual std dev, for prediction-interval widening
}

func fitEWMA(series []float64) ewmaModel {
	bestAlpha := 0.05
	bestMSE := math.Inf(1)
	for a := 0.05; a <= 0.95+1e-9; a += 0.05 {
		level := series[0]
		var sqErr float64
		var n int
		for i := 1; i < len(series); i++ {
			pred := level
			err := series[i] - pred
			sqErr += err * err
			n++
			level = a*series[i] + (1-a)*level
		}
		m := 0.0
		if n > 0 {
			m = sqErr / float64(n)
		}
		if m < bestMSE {
			bestMSE = m
			bestAlpha = a
		}
	}

	level := series[0]
	var residuals []float64
	for i := 1; i < len(series); i++ {
		pred := level
		residuals = append(residuals, series[i]-pred)
		level = bestAlpha*series[i] + (1-bestAlpha)*level
	}
	sigma := stdDev(residuals)
	return ewmaModel{Alpha: bestAlpha, Level: level, Sigma: sigma}
}

// forecast returns h flat predictions at the final smoothed level,
// plus the widening per-horizon sigma per spec.md §4.5:
// sigma * sqrt(1 + (h-1)*alpha^2).
func (m ewmaModel) forecast(h int) ([]float64, []float64) {
	preds := make([]float64, h)
	sigmas := make([]float64, h)
	for i := 1; i <= h; i++ {
		preds[i-1] = m.Level
		sigmas[i-1] = m.Sigma * math.Sqrt(1+float64(i-1)*m.Alpha*m.Alpha)
	}
	return preds, sigmas
}

func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var sumSq float64
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}
