package kmeans

import (
	"math/rand/v2"

	"kquant/internal/logging"
)

type options struct {
	iterations int
	metric     Metric
	p          float64
	workers    int
	tileSize   int
	rng        *rand.Rand
	logger     *logging.Logger
}

func defaultOptions() options {
	return options{
		iterations: 10,
		metric:     MetricSquaredEuclidean,
		p:          2,
		tileSize:   DefaultTileSize,
	}
}

// Option configures a Quantizer.
type Option func(*options)

// WithIterations sets the fixed number of refinement passes. Zero keeps the
// randomly seeded centroids as they are.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithMetric selects the assignment distance. p is the Minkowski exponent
// and is ignored for MetricSquaredEuclidean.
func WithMetric(m Metric, p float64) Option {
	return func(o *options) {
		o.metric = m
		o.p = p
	}
}

// WithWorkers bounds the number of goroutines used per iteration and for
// rendering. Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTileSize sets the palette swatch edge length.
func WithTileSize(n int) Option {
	return func(o *options) {
		o.tileSize = n
	}
}

// WithRand sets the random source used to seed centroids.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed makes centroid seeding deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = NewSeededRand(seed)
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.NoopLogger()
		}
		o.logger = l
	}
}
