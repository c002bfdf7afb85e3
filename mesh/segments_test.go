package mesh

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestInsertSegmentCDTAddsConstrainedEdge(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 1, Y: 3}, {X: 3, Y: 1},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	require.NoError(t, m.InsertSegmentCDT(4, 5))

	h, ok := m.findEdge(4, 5)
	require.True(t, ok)
	require.True(t, m.IsSegment(h))
}

func TestInsertSegmentCDTRejectsCrossingSegments(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	require.NoError(t, m.InsertSegmentCDT(0, 2))
	require.Error(t, m.InsertSegmentCDT(1, 3))
}

func TestInsertSegmentConformingSplitsOnEncroachment(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 9}, {X: 5, Y: 0.1},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	before := m.NumVertices()
	require.NoError(t, m.InsertSegmentConforming(0, 1))
	require.Greater(t, m.NumVertices(), before)
}

func TestValidateSegmentsRejectsOutOfRange(t *testing.T) {
	m := NewMesh([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, nil)
	require.Error(t, m.ValidateSegments([][2]int{{0, 5}}, 3))
	require.Error(t, m.ValidateSegments([][2]int{{2, 2}}, 3))
	require.NoError(t, m.ValidateSegments([][2]int{{0, 1}}, 3))
}
