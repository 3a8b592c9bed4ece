package kmeans

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kquant/internal/logging"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(3, WithIterations(-1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(3, WithMetric(MetricMinkowski, 0))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(3, WithTileSize(-4))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	q, err := New(3, WithIterations(0), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, q.K())
	assert.Equal(t, 0, q.Iterations())
}

func TestQuantizer_ZeroIterationsKeepsSeeds(t *testing.T) {
	ctx := context.Background()
	pixels := randomPixels(300, 2)

	q, err := New(4, WithIterations(0), WithSeed(8))
	require.NoError(t, err)
	got, err := q.Run(ctx, pixels)
	require.NoError(t, err)

	want, err := Init(pixels, 4, NewSeededRand(8))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuantizer_RunMatchesManualLoop(t *testing.T) {
	ctx := context.Background()
	pixels := randomPixels(800, 4)

	q, err := New(5, WithIterations(6), WithSeed(21), WithWorkers(3))
	require.NoError(t, err)
	got, err := q.Run(ctx, pixels)
	require.NoError(t, err)

	cs, err := Init(pixels, 5, NewSeededRand(21))
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		cs, err = Iterate(ctx, pixels, cs, SquaredEuclidean, 3)
		require.NoError(t, err)
	}
	assert.Equal(t, cs, got)
}

func TestQuantizer_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	pixels := randomPixels(10, 1)

	q, err := New(3)
	require.NoError(t, err)

	_, err = q.Iterate(ctx, pixels, Centroids{Seed(pixels[0])})
	var dm *DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 3, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = q.Render(ctx, image.Pt(10, 1), pixels, Centroids{Seed(pixels[0])}, ModeImage)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestQuantizer_Minkowski(t *testing.T) {
	ctx := context.Background()
	pixels := []Pixel{{0, 0, 0}, {0.05, 0, 0}, {1, 1, 1}, {0.95, 1, 1}}

	q, err := New(2, WithMetric(MetricMinkowski, 1), WithIterations(3), WithWorkers(2))
	require.NoError(t, err)

	cs := Centroids{Seed(pixels[0]), Seed(pixels[2])}
	cs, err = q.Refine(ctx, pixels, cs)
	require.NoError(t, err)
	assert.InDelta(t, 0.025, cs[0].Average()[0], 1e-12)
	assert.InDelta(t, 0.975, cs[1].Average()[0], 1e-12)

	img, err := q.Render(ctx, image.Pt(2, 2), pixels, cs, ModePalette)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2*DefaultTileSize, DefaultTileSize), img.Bounds())
}

func TestQuantizer_Logging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, slog.LevelDebug)

	q, err := New(2, WithIterations(2), WithSeed(1), WithLogger(logger))
	require.NoError(t, err)
	_, err = q.Run(ctx, []Pixel{{0, 0, 0}, {1, 1, 1}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"clustering completed"`)
	assert.Contains(t, out, `"k":2`)
	assert.Contains(t, out, `"iteration":2`)
}

func TestQuantizer_RunEmptyImage(t *testing.T) {
	q, err := New(2)
	require.NoError(t, err)
	_, err = q.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestQuantizer_WithRand(t *testing.T) {
	ctx := context.Background()
	pixels := randomPixels(500, 4)

	a, err := New(5, WithRand(NewSeededRand(21)))
	require.NoError(t, err)
	b, err := New(5, WithRand(NewSeededRand(21)))
	require.NoError(t, err)
	c, err := New(5, WithSeed(21))
	require.NoError(t, err)

	ca, err := a.Init(ctx, pixels)
	require.NoError(t, err)
	cb, err := b.Init(ctx, pixels)
	require.NoError(t, err)
	cc, err := c.Init(ctx, pixels)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
	assert.Equal(t, ca, cc)

	// A shared source advances between quantizers.
	shared := NewSeededRand(21)
	d, err := New(5, WithRand(shared))
	require.NoError(t, err)
	e, err := New(5, WithRand(shared))
	require.NoError(t, err)
	cd, err := d.Init(ctx, pixels)
	require.NoError(t, err)
	ce, err := e.Init(ctx, pixels)
	require.NoError(t, err)
	assert.Equal(t, ca, cd)
	assert.NotEqual(t, cd, ce)
}
