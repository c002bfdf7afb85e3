package mesh

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestRemoveHolesAndConcavitiesWithEnclosingSegments(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, // outer square 0-3
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}, // inner hole square 4-7
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))
	require.NoError(t, m.InsertSegmentCDT(4, 5))
	require.NoError(t, m.InsertSegmentCDT(5, 6))
	require.NoError(t, m.InsertSegmentCDT(6, 7))
	require.NoError(t, m.InsertSegmentCDT(7, 4))

	m.Holes = []Point{{Point: r2.Point{X: 5, Y: 5}, Index: -1}}
	before := m.NumTriangles()
	m.RemoveHolesAndConcavities()
	require.Less(t, m.NumTriangles(), before)
}

func TestRemoveHolesWithoutEnclosingSegmentsStripsEverything(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))
	m.Holes = []Point{{Point: r2.Point{X: 5, Y: 5.001}, Index: -1}}
	m.RemoveHolesAndConcavities()
	require.Equal(t, 0, m.NumTriangles())
}
