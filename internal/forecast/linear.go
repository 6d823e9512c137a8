package forecast

import "math"

// linearModel is an ordinary-least-squares fit over (day-from-first,
// cost), grounded on the teacher's applyLinearRegression.
type linearModel struct {
	Slope     float64
	Intercept float64
	R2        float64
	StdErr    float64 // residual standard error, df = n-2
}

func fitLinear(points []DataPoint) linearModel {
	n := len(points)
	if n == 0 {
		return linearModel{}
	}
	first := points[0].Timestamp
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = p.Timestamp.Sub(first).Hours() / 24
		ys[i] = p.TotalCost
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}
	nf := float64(n)
	denom := nf*sumX2 - sumX*sumX
	var slope, intercept float64
	if denom != 0 {
		slope = (nf*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / nf
	} else {
		intercept = sumY / nf
	}

	meanY := sumY / nf
	var ssTot, ssRes float64
	for i := range xs {
		pred := slope*xs[i] + intercept
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	stdErr := 0.0
	if n > 2 {
		stdErr = math.Sqrt(ssRes / float64(n-2))
	}
	return linearModel{Slope: slope, Intercept: intercept, R2: r2, StdErr: stdErr}
}

// forecast produces h daily predictions starting the day after the
// last training point, in days-from-first-training-point coordinates.
func (m linearModel) forecast(lastDayIndex float64, h int) []float64 {
	out := make([]float64, h)
	for i := 1; i <= h; i++ {
		out[i-1] = m.Slope*(lastDayIndex+float64(i)) + m.Intercept
	}
	return out
}
