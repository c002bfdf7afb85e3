package voronoi

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"

	"github.com/2B-pencil/TrianglePP/mesh"
)

func TestExtractProducesOneVertexPerTriangle(t *testing.T) {
	pts := []r2.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 2, Y: 2},
	}
	m := mesh.NewMesh(pts, nil)
	require.NoError(t, m.BuildInitial(mesh.StrategyIncremental))

	d, err := Extract(m)
	require.NoError(t, err)
	require.Equal(t, m.NumTriangles(), len(d.Vertices))
	require.NotEmpty(t, d.Edges)

	var infinite int
	for _, e := range d.Edges {
		if e.Infinite {
			infinite++
		}
	}
	require.Equal(t, m.HullEdgeCount(), infinite)
}

func TestExtractRejectsUntriangulatedMesh(t *testing.T) {
	m := mesh.NewMesh([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, nil)
	_, err := Extract(m)
	require.Error(t, err)
}
