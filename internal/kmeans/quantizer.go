package kmeans

import (
	"context"
	"image"
	"time"

	"kquant/internal/logging"
)

// Quantizer runs the full seed, refine and render cycle for a fixed k.
//
// A Quantizer is not safe for concurrent use because Init draws from its
// random source.
type Quantizer struct {
	k    int
	opts options
	dist Func
	log  *logging.Logger
}

// New validates the configuration and returns a Quantizer for k clusters.
func New(k int, optFns ...Option) (*Quantizer, error) {
	if k <= 0 {
		return nil, &ParamError{Name: "k", Value: k, Reason: "must be positive"}
	}
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.iterations < 0 {
		return nil, &ParamError{Name: "iterations", Value: o.iterations, Reason: "must not be negative"}
	}
	if o.tileSize < 0 {
		return nil, &ParamError{Name: "tile", Value: o.tileSize, Reason: "must not be negative"}
	}
	dist, err := Provider(o.metric, o.p)
	if err != nil {
		return nil, err
	}
	if o.rng == nil {
		o.rng = newRand()
	}
	if o.logger == nil {
		o.logger = logging.NoopLogger()
	}

	return &Quantizer{
		k:    k,
		opts: o,
		dist: dist,
		log:  o.logger.WithK(k).WithMetric(o.metric.String(), o.p),
	}, nil
}

// K returns the configured cluster count.
func (q *Quantizer) K() int { return q.k }

// Iterations returns the configured refinement count.
func (q *Quantizer) Iterations() int { return q.opts.iterations }

// Dist returns the configured distance function.
func (q *Quantizer) Dist() Func { return q.dist }

// Workers returns the configured worker bound.
func (q *Quantizer) Workers() int { return q.opts.workers }

// Init seeds k centroids from pixels.
func (q *Quantizer) Init(ctx context.Context, pixels []Pixel) (Centroids, error) {
	start := time.Now()
	cs, err := Init(pixels, q.k, q.opts.rng)
	q.log.LogInit(ctx, len(pixels), time.Since(start), err)
	return cs, err
}

// Iterate performs one refinement pass. The centroid set must have exactly
// k entries.
func (q *Quantizer) Iterate(ctx context.Context, pixels []Pixel, centroids Centroids) (Centroids, error) {
	next, _, err := q.iterate(ctx, pixels, centroids)
	return next, err
}

func (q *Quantizer) iterate(ctx context.Context, pixels []Pixel, centroids Centroids) (Centroids, int, error) {
	if len(centroids) != q.k {
		return nil, 0, &DimensionMismatchError{What: "centroid count", Expected: q.k, Actual: len(centroids)}
	}
	merged, err := Fold(ctx, pixels, centroids, q.dist, q.opts.workers)
	if err != nil {
		return nil, 0, err
	}
	next, empty := settle(merged, centroids)
	return next, empty, nil
}

// Refine applies exactly Iterations() passes to centroids, in order. Each
// pass starts only after the previous one has been merged and averaged.
func (q *Quantizer) Refine(ctx context.Context, pixels []Pixel, centroids Centroids) (Centroids, error) {
	for i := 1; i <= q.opts.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		next, empty, err := q.iterate(ctx, pixels, centroids)
		q.log.LogIteration(ctx, i, empty, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		centroids = next
	}
	return centroids, nil
}

// Run seeds and refines centroids for pixels.
func (q *Quantizer) Run(ctx context.Context, pixels []Pixel) (Centroids, error) {
	start := time.Now()
	cs, err := q.Init(ctx, pixels)
	if err == nil {
		cs, err = q.Refine(ctx, pixels, cs)
	}
	q.log.LogRun(ctx, len(pixels), q.opts.iterations, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// Render draws centroids with the configured metric, workers and tile size.
func (q *Quantizer) Render(ctx context.Context, size image.Point, pixels []Pixel, centroids Centroids, mode Mode) (*image.RGBA, error) {
	if len(centroids) != q.k {
		return nil, &DimensionMismatchError{What: "centroid count", Expected: q.k, Actual: len(centroids)}
	}
	start := time.Now()
	img, err := Render(ctx, size, pixels, centroids, mode, RenderOptions{
		Dist:     q.dist,
		Workers:  q.opts.workers,
		TileSize: q.opts.tileSize,
	})
	var w, h int
	if img != nil {
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	}
	q.log.LogRender(ctx, mode.String(), w, h, time.Since(start), err)
	return img, err
}
