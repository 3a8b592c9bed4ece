package kmeans

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Func scores the dissimilarity between a pixel and a centroid color.
// Smaller is closer; results are never negative.
type Func func(a, b Pixel) float64

// Metric selects the distance used for assignment.
type Metric int

const (
	// MetricSquaredEuclidean is the sum of squared channel differences.
	MetricSquaredEuclidean Metric = iota
	// MetricMinkowski is the generalized L-p distance.
	MetricMinkowski
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredEuclidean:
		return "euclidean"
	case MetricMinkowski:
		return "minkowski"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMetric parses a metric name as accepted on the command line.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "squared-euclidean", "l2":
		return MetricSquaredEuclidean, nil
	case "minkowski", "lp":
		return MetricMinkowski, nil
	default:
		return 0, &ParamError{Name: "metric", Value: s, Reason: "want euclidean or minkowski"}
	}
}

// SquaredEuclidean returns the sum over channels of (a_i - b_i)^2.
func SquaredEuclidean(a, b Pixel) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

// Minkowski returns (sum |a_i - b_i|^p)^(1/p).
// p = 1 is Manhattan, p = 2 Euclidean and p = +Inf Chebyshev.
func Minkowski(a, b Pixel, p float64) (float64, error) {
	if err := validateExponent(p); err != nil {
		return 0, err
	}
	return minkowski(a, b, p), nil
}

// minkowski factors out the largest channel difference m before raising to
// p, so large finite p stays close to Chebyshev instead of underflowing.
func minkowski(a, b Pixel, p float64) float64 {
	var d [3]float64
	floats.SubTo(d[:], a[:], b[:])
	m := floats.Norm(d[:], math.Inf(1))
	if m == 0 || math.IsInf(p, 1) {
		return m
	}
	floats.Scale(1/m, d[:])
	return m * floats.Norm(d[:], p)
}

// Provider returns the distance function for the given metric. p is only
// consulted for MetricMinkowski.
func Provider(m Metric, p float64) (Func, error) {
	switch m {
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricMinkowski:
		if err := validateExponent(p); err != nil {
			return nil, err
		}
		return func(a, b Pixel) float64 {
			return minkowski(a, b, p)
		}, nil
	default:
		return nil, &ParamError{Name: "metric", Value: m}
	}
}

func validateExponent(p float64) error {
	if math.IsNaN(p) || p <= 0 {
		return &ParamError{Name: "p", Value: p, Reason: "must be > 0"}
	}
	return nil
}
