package tpp

import (
	"bytes"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestTriangulateUnconstrainedSquare(t *testing.T) {
	d := New([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Equal(t, 2, d.NumTriangles())
	require.Equal(t, 4, d.HullSize())
}

func TestTriangulateWithSegmentConstraint(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 1, Y: 3}, {X: 3, Y: 1},
	}
	d := New(pts)
	require.NoError(t, d.SetSegmentConstraintIndices([][2]int{{4, 5}}))
	require.NoError(t, d.Triangulate(false, TraceNone))
	require.True(t, d.CheckConstraints())
}

func TestTriangulateWithHoleRemovesInteriorTriangles(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
	}
	d := New(pts)
	require.NoError(t, d.SetSegmentConstraintIndices([][2]int{{4, 5}, {5, 6}, {6, 7}, {7, 4}}))
	require.NoError(t, d.SetHolesConstraint([]r2.Point{{X: 5, Y: 5}}))
	withoutHole := New(pts)
	require.NoError(t, withoutHole.SetSegmentConstraintIndices([][2]int{{4, 5}, {5, 6}, {6, 7}, {7, 4}}))
	require.NoError(t, withoutHole.Triangulate(false, TraceNone))

	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Less(t, d.NumTriangles(), withoutHole.NumTriangles())
}

func TestTriangulateQualityMeetsMinAngle(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 1, Y: 1}, {X: 9, Y: 1},
	}
	d := New(pts)
	d.SetMinAngle(28)
	require.NoError(t, d.Triangulate(true, TraceNone))
	require.True(t, d.MeetsMinAngle())
}

func TestTessellateProducesVoronoiDual(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	}
	d := New(pts)
	require.NoError(t, d.Tessellate(false, TraceNone))
	require.Equal(t, d.NumTriangles(), d.NumVoronoiPoints())
	require.Greater(t, d.NumVoronoiEdges(), 0)
}

func TestConstructionStrategiesAgreeOnTriangleCount(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 5, Y: 1}, {X: 9, Y: 0}, {X: 10, Y: 5}, {X: 9, Y: 9},
		{X: 5, Y: 10}, {X: 0, Y: 9}, {X: 1, Y: 5}, {X: 5, Y: 5},
	}
	dc := New(pts)
	dc.SetConstructionStrategy(StrategyDivideAndConquer)
	require.NoError(t, dc.Triangulate(false, TraceNone))

	inc := New(pts)
	inc.SetConstructionStrategy(StrategyIncremental)
	require.NoError(t, inc.Triangulate(false, TraceNone))

	require.Equal(t, dc.NumTriangles(), inc.NumTriangles())
}

func TestLocateVertexAndTrianglesAroundVertex(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	}
	d := New(pts)
	require.NoError(t, d.Triangulate(false, TraceNone))

	h, err := d.LocateVertex(4)
	require.NoError(t, err)
	require.Equal(t, 4, h.Org())

	around := d.TrianglesAroundVertex(4)
	require.NotEmpty(t, around)
	for _, f := range around {
		require.Equal(t, 4, f.Org())
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []r2.Point{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}
	d := New(pts)
	min, max := d.BoundingBox()
	require.Equal(t, r2.Point{X: -1, Y: -4}, min)
	require.Equal(t, r2.Point{X: 3, Y: 2}, max)
}

func TestWriteOFFProducesGeomviewHeader(t *testing.T) {
	d := New([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, d.Triangulate(false, TraceNone))

	var buf bytes.Buffer
	require.NoError(t, d.WriteOFF(&buf))
	require.Contains(t, buf.String(), "OFF\n4 2 0\n")
}

func TestDuplicatePointsProduceAdvisories(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	d := New(pts)
	require.NoError(t, d.Triangulate(false, TraceNone))
	require.Len(t, d.Advisories(), 1)
}
