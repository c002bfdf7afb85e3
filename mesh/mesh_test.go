package mesh

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

func square() []r2.Point {
	return []r2.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
}

func TestHandleAlgebraRoundTrips(t *testing.T) {
	m := NewMesh(square(), nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		h := Handle{Tri: i, Orient: 0}
		require.Equal(t, h, m.Lnext(m.Lnext(m.Lnext(h))), "Lnext^3 must be identity")
		// Hull edges have the shared dummy sentinel as their Sym, which
		// links back to nothing, so the round trips apply to interior edges.
		if !m.IsDummy(m.Sym(h)) {
			require.Equal(t, h, m.Sym(m.Sym(h)), "Sym must be an involution")
			require.Equal(t, m.Org(h), m.Dest(m.Sym(h)))
			require.Equal(t, m.Dest(h), m.Org(m.Sym(h)))
			require.Equal(t, h, m.Onext(m.Oprev(h)))
		}
	}
}

func TestFlipPreservesQuadrilateral(t *testing.T) {
	m := NewMesh(square(), nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))
	require.Equal(t, 2, m.NumTriangles())

	var interior Handle
	found := false
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for o := 0; o < 3; o++ {
			h := Handle{Tri: i, Orient: uint8(o)}
			if !m.IsDummy(m.Sym(h)) {
				interior = h
				found = true
			}
		}
	}
	require.True(t, found)

	before := map[int]bool{m.Org(interior): true, m.Dest(interior): true, m.Apex(interior): true, m.Apex(m.Sym(interior)): true}
	m.Flip(interior)
	require.Equal(t, 2, m.NumTriangles())
	after := map[int]bool{}
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for _, v := range m.tris[i].p {
			after[v] = true
		}
	}
	require.Equal(t, before, after, "flip must preserve the quadrilateral's vertex set")
}

func TestLocateFindsContainingTriangle(t *testing.T) {
	m := NewMesh(square(), nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	// The square's centre lies on its diagonal, whichever one was built.
	h, res := m.Locate(Point{Point: r2.Point{X: 0.5, Y: 0.5}})
	require.Equal(t, LocateOnEdge, res)
	require.False(t, m.IsDummy(h))

	_, res = m.Locate(Point{Point: r2.Point{X: 5, Y: 5}})
	require.Equal(t, LocateOutside, res)
}

func TestOutgoingHandleIsMaintainedIncrementally(t *testing.T) {
	m := NewMesh(square(), nil)
	require.NoError(t, m.BuildInitial(StrategyIncremental))

	for i := 0; i < 4; i++ {
		h, ok := m.OutgoingHandle(i)
		require.True(t, ok)
		require.Equal(t, i, m.Org(h))
	}
}
