package analytics

import (
	"math"

	"cbmcli/internal/dataset"
)

// Correlation restricts the candidate columns to the numeric ones and
// computes the pairwise Pearson coefficient, rounded to 2 decimals. The
// result is symmetric with 1.0 on the diagonal for any column with
// nonzero variance; zero-variance pairs report 0. No numeric candidates
// yields an empty map.
func Correlation(rs *dataset.RecordSet, columns []string) map[string]map[string]float64 {
	var numeric []string
	for _, name := range columns {
		col, ok := rs.Column(name)
		if ok && col.Kind == dataset.KindNumeric {
			numeric = append(numeric, name)
		}
	}
	if len(numeric) == 0 {
		return map[string]map[string]float64{}
	}

	series := make(map[string][]float64, len(numeric))
	for _, name := range numeric {
		series[name] = rs.NumericValues(name)
	}

	matrix := make(map[string]map[string]float64, len(numeric))
	for _, a := range numeric {
		matrix[a] = make(map[string]float64, len(numeric))
		for _, b := range numeric {
			matrix[a][b] = round2(pearson(series[a], series[b]))
		}
	}
	return matrix
}

// pearson computes the sample Pearson correlation coefficient over the
// aligned prefix of two series. Zero variance in either series yields 0.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return 0
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
