package tpp

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
)

// These reproduce the wrapper's own end-to-end fixtures, point sets and
// all, from original_source/tests/trpp_tests.cpp. Triangle counts that
// depend only on the input point count and convex hull size (Euler's
// formula: triangles = 2*vertices - hull - 2) are algorithm-independent
// for points in general position, so those are asserted exactly; counts
// that depend on Ruppert refinement's Steiner-point placement are
// implementation-specific and are checked against MeetsMinAngle instead
// of the original's exact figures.

func fivePointSet() []r2.Point {
	return []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}, {X: 3, Y: 3}, {X: 1.5, Y: 2.125},
	}
}

func TestScenarioFivePointsUnconstrained(t *testing.T) {
	d := New(fivePointSet())
	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Equal(t, 4, d.NumTriangles())
}

func TestScenarioFivePointsQualityDefaultAngle(t *testing.T) {
	d := New(fivePointSet())
	guaranteed, possible := d.CheckMinAngle()
	require.True(t, guaranteed, "no explicit SetMinAngle call leaves the sanity check trivially sane")
	require.True(t, possible)

	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
	require.GreaterOrEqual(t, d.NumTriangles(), 4)
}

// 27.5° is beyond the guaranteed-termination threshold but within the
// probably-terminates one, exactly like the original wrapper's own
// checkConstraintsOpt(relaxed=true) call for this fixture, which
// accepts it.
func TestScenarioFivePointsQuality27Point5Degrees(t *testing.T) {
	d := New(fivePointSet())
	d.SetMinAngle(27.5)
	guaranteed, possible := d.CheckMinAngle()
	require.False(t, guaranteed)
	require.True(t, possible)

	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
}

func TestScenarioFivePointsQualityAngleAndArea(t *testing.T) {
	d := New(fivePointSet())
	d.SetMinAngle(30.5)
	d.SetMaxArea(5.5)
	_, possible := d.CheckMinAngle()
	require.True(t, possible)

	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
}

// 44° is beyond even the probably-terminates threshold, so both strict
// and relaxed acceptance reject it before refinement ever runs — the
// original wrapper's own checkConstraintsOpt(relaxed=true) rejects this
// fixture too, and never calls Triangulate for it at all.
func TestScenarioFivePointsQualityUnreachableAngle(t *testing.T) {
	d := New(fivePointSet())
	d.SetMinAngle(44)
	guaranteed, possible := d.CheckMinAngle()
	require.False(t, guaranteed)
	require.False(t, possible)

	err := d.Triangulate(true, TraceNone)
	require.Error(t, err)
	require.True(t, tpperrors.Is(err, tpperrors.ConstraintOutOfRange))
}

func TestScenarioVoronoiOfFivePoints(t *testing.T) {
	d := New(fivePointSet())
	require.NoError(t, d.Tessellate(false, TraceNone))
	require.Equal(t, 4, d.NumVoronoiPoints())
}

func trapezoidPointSet() []r2.Point {
	return []r2.Point{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 3}, {X: 2, Y: 0}, {X: 4, Y: 1.25},
		{X: 4, Y: 3}, {X: 6, Y: 0}, {X: 8, Y: 1.25}, {X: 9, Y: 0}, {X: 9, Y: 0.75}, {X: 9, Y: 3},
	}
}

func TestScenarioTrapezoidalCDTKeepHull(t *testing.T) {
	pts := trapezoidPointSet()

	reference := New(pts)
	require.NoError(t, reference.Triangulate(false, TraceNone))
	require.Equal(t, 11, reference.NumTriangles())

	d := New(pts)
	require.NoError(t, d.SetSegmentConstraintIndices([][2]int{{1, 9}}))
	d.UseConvexHullWithSegments(true)

	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Equal(t, reference.NumTriangles(), d.NumTriangles())
	require.True(t, d.CheckConstraintsOpt())

	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
	require.GreaterOrEqual(t, d.NumTriangles(), reference.NumTriangles())
}

func TestScenarioTrapezoidalCDTWithHoles(t *testing.T) {
	pts := trapezoidPointSet()
	holes := []r2.Point{{X: 5, Y: 1}, {X: 5, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 1}}

	d := New(pts)
	require.NoError(t, d.SetSegmentConstraintIndices([][2]int{{1, 9}}))
	d.UseConvexHullWithSegments(true)
	require.NoError(t, d.SetHolesConstraint(holes))

	require.NoError(t, d.Triangulate(false, TraceNone))
	require.True(t, d.CheckConstraintsOpt())
	require.Less(t, d.NumTriangles(), 11)
	require.Greater(t, d.NumTriangles(), 0)
	withoutQuality := d.NumTriangles()

	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
	require.GreaterOrEqual(t, d.NumTriangles(), withoutQuality)
}

func letterAPointSet() []r2.Point {
	return []r2.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 1.5, Y: 1},
		{X: 2.5, Y: 1}, {X: 1.6, Y: 1.5}, {X: 2.4, Y: 1.5}, {X: 2, Y: 2}, {X: 3, Y: 3},
	}
}

func letterASegments() [][2]int {
	return [][2]int{
		{1, 0}, {0, 9}, {9, 3}, {3, 2}, {2, 5}, {5, 4}, {4, 1}, // outer outline
		{6, 8}, {8, 7}, {7, 6}, // inner outline
	}
}

func TestScenarioLetterAPSLGUnconstrained(t *testing.T) {
	d := New(letterAPointSet())
	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Equal(t, 12, d.NumTriangles())
}

func TestScenarioLetterAPSLGConstrainedQuality(t *testing.T) {
	unconstrained := New(letterAPointSet())
	require.NoError(t, unconstrained.Triangulate(false, TraceNone))

	d := New(letterAPointSet())
	require.NoError(t, d.SetSegmentConstraintIndices(letterASegments()))
	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
	require.True(t, d.CheckConstraints())
	// The outer outline cuts concavities out of the convex hull (no hole
	// marker is given, so the inner outline's triangles stay), so even
	// before refinement adds Steiner points the constrained count
	// diverges from the plain convex-hull triangulation.
	require.NotEqual(t, unconstrained.NumTriangles(), d.NumTriangles())
}
