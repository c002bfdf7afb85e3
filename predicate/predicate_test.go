package predicate

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestOrient2DBasic(t *testing.T) {
	require.Equal(t, Positive, Orient2D(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}))
	require.Equal(t, Negative, Orient2D(r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 0}))
	require.Equal(t, Zero, Orient2D(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}))
}

func TestOrient2DNearCollinear(t *testing.T) {
	// A configuration close enough to collinear to exercise the exact
	// fallback, but not actually collinear.
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1e8, Y: 1}
	c := r2.Point{X: 2e8, Y: 2 + 1e-10}
	got := Orient2D(a, b, c)
	require.NotEqual(t, Zero, got)
}

func TestInCircleBasic(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 1, Y: 0}
	c := r2.Point{X: 0, Y: 1}
	inside := r2.Point{X: 0.25, Y: 0.25}
	outside := r2.Point{X: 5, Y: 5}
	onCircle := r2.Point{X: 1, Y: 1}

	require.Equal(t, Positive, InCircle(a, b, c, inside))
	require.Equal(t, Negative, InCircle(a, b, c, outside))
	require.Equal(t, Zero, InCircle(a, b, c, onCircle))
}
