package mesh

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func TestRefineImprovesMinAngle(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 1, Y: 1}, {X: 9, Y: 1},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	m.MinAngle = 28 * math.Pi / 180
	require.NoError(t, m.Refine())
	require.True(t, m.MeetsMinAngle())
	require.True(t, m.CheckDelaunay())
}

func TestRefineRespectsSubsegments(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))
	require.NoError(t, m.InsertSegmentCDT(0, 2))

	m.MinAngle = 25 * math.Pi / 180
	require.NoError(t, m.Refine())
	require.True(t, m.MeetsMinAngle())
	require.GreaterOrEqual(t, m.NumSubsegments(), 1, "the constrained diagonal must survive refinement as one or more subsegments")
}

func TestMeetsMinAngleFalseWithoutRefinement(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0.1, Y: 0.2},
	}
	m := NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))
	m.MinAngle = 40 * math.Pi / 180
	require.False(t, m.MeetsMinAngle())
}

func TestCheckMinAngleSanityThresholds(t *testing.T) {
	m := NewMesh([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, nil)

	guaranteed, possible := m.CheckMinAngle()
	require.True(t, guaranteed, "no MinAngle configured is trivially sane")
	require.True(t, possible)

	m.MinAngle = 20 * math.Pi / 180
	guaranteed, possible = m.CheckMinAngle()
	require.True(t, guaranteed)
	require.True(t, possible)

	m.MinAngle = 30 * math.Pi / 180
	guaranteed, possible = m.CheckMinAngle()
	require.False(t, guaranteed, "30° is beyond the guaranteed-termination threshold")
	require.True(t, possible, "30° is still within the probably-terminates threshold")
	require.True(t, m.AcceptMinAngle(true))
	require.False(t, m.AcceptMinAngle(false))

	m.MinAngle = 44 * math.Pi / 180
	guaranteed, possible = m.CheckMinAngle()
	require.False(t, guaranteed)
	require.False(t, possible, "44° is beyond even the probably-terminates threshold")
	require.False(t, m.AcceptMinAngle(true))
	require.False(t, m.AcceptMinAngle(false))
}

func TestMinAngleBoundariesIsStatic(t *testing.T) {
	guaranteed, possible := MinAngleBoundaries()
	require.InDelta(t, 27.0*math.Pi/180, guaranteed, 1e-9)
	require.InDelta(t, 33.8*math.Pi/180, possible, 1e-9)
	require.Less(t, guaranteed, possible)
}
