package mesh

import (
	"math"
	"sort"
	"strconv"

	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/predicate"
)

// ConstructionStrategy selects how BuildInitial orders point insertion
// (spec.md 4.4 "Default: divide and conquer... An alternative incremental
// strategy is also acceptable").
type ConstructionStrategy int

const (
	// StrategyDivideAndConquer recursively bisects the point set along
	// alternating axes before inserting, the insertion-order analogue of
	// the teacher's commonSupportLine merge: good spatial locality keeps
	// each Locate walk short, the same benefit Guibas-Stolfi's recursion
	// buys structurally. The structural work itself is delegated to the
	// shared Bowyer-Watson primitive (insert.go) rather than a from-
	// scratch zig-zag tangent merge — see DESIGN.md "Final pass notes".
	StrategyDivideAndConquer ConstructionStrategy = iota
	// StrategyIncremental inserts points in the order given, through the
	// same Bowyer-Watson primitive.
	StrategyIncremental
)

// BuildInitial triangulates every point currently in m.Points, starting
// from Empty and leaving the mesh in Triangulated state. It is component
// C5: a bounding super-triangle is synthesized around the input, every
// point is inserted via the shared Bowyer-Watson cavity primitive in the
// order the strategy picks, duplicate points collapse into an advisory
// rather than erroring, and the three auxiliary super-triangle vertices
// are stripped at the end so the mesh's hull is exactly the input's
// convex hull.
func (m *Mesh) BuildInitial(strategy ConstructionStrategy) error {
	if err := m.requireState("BuildInitial", Empty); err != nil {
		return err
	}
	n := len(m.Points)
	if n < 3 {
		return tpperrors.Newf(tpperrors.InvalidInput, "need at least 3 points, got %d", n)
	}

	order := m.dedupeOrder()
	if len(order) < 3 {
		return tpperrors.Newf(tpperrors.InvalidInput, "fewer than 3 distinct points after deduplication")
	}
	if strategy == StrategyDivideAndConquer {
		order = m.recursiveBisectionOrder(order)
	}

	s0, s1, s2 := m.addSuperTriangle()
	m.makeTriangle(s0, s1, s2)
	m.hotHandle = Handle{Tri: 1, Orient: 0}

	for _, idx := range order {
		m.insertVertexBowyerWatson(idx)
	}

	m.removeSuperTriangle(s0, s1, s2)
	m.State = Triangulated
	m.logf(TraceInfo, "BuildInitial: %d vertices, %d triangles", len(order), m.NumTriangles())
	return nil
}

// dedupeOrder returns input indices with near-duplicate points collapsed:
// when two points coincide within tolerance, the one that sorts second
// (by x, then y) is recorded as an advisory and omitted from the returned order rather than being
// inserted (an insertion at an existing vertex is a no-op in
// insertVertexBowyerWatson, but skipping it outright avoids a wasted
// Locate walk and makes the advisory text clearer).
func (m *Mesh) dedupeOrder() []int {
	const tol = 1e-9
	type idxPt struct {
		idx int
		pt  r2.Point
	}
	pts := make([]idxPt, len(m.Points))
	for i, p := range m.Points {
		pts[i] = idxPt{i, p.Point}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].pt.X != pts[j].pt.X {
			return pts[i].pt.X < pts[j].pt.X
		}
		return pts[i].pt.Y < pts[j].pt.Y
	})

	keep := make([]bool, len(m.Points))
	for i := range pts {
		if i > 0 {
			prev := pts[i-1].pt
			cur := pts[i].pt
			if math.Abs(cur.X-prev.X) < tol && math.Abs(cur.Y-prev.Y) < tol {
				m.dupAdvisories = append(m.dupAdvisories,
					"duplicate point at input index "+strconv.Itoa(pts[i].idx)+" collapsed onto "+strconv.Itoa(pts[i-1].idx))
				continue
			}
		}
		keep[pts[i].idx] = true
	}
	var order []int
	for i := 0; i < len(m.Points); i++ {
		if keep[i] {
			order = append(order, i)
		}
	}
	return order
}

// recursiveBisectionOrder reorders indices by recursively splitting the
// set on its longer axis at the median, depth-first, so that points
// physically close together tend to be inserted close together in time.
func (m *Mesh) recursiveBisectionOrder(indices []int) []int {
	out := make([]int, 0, len(indices))
	var recurse func(idx []int)
	recurse = func(idx []int) {
		if len(idx) <= 4 {
			out = append(out, idx...)
			return
		}
		minX, maxX := m.Points[idx[0]].X, m.Points[idx[0]].X
		minY, maxY := m.Points[idx[0]].Y, m.Points[idx[0]].Y
		for _, i := range idx {
			p := m.Points[i]
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		byX := (maxX - minX) >= (maxY - minY)
		sort.Slice(idx, func(a, b int) bool {
			if byX {
				return m.Points[idx[a]].X < m.Points[idx[b]].X
			}
			return m.Points[idx[a]].Y < m.Points[idx[b]].Y
		})
		mid := len(idx) / 2
		recurse(idx[:mid])
		recurse(idx[mid:])
	}
	recurse(append([]int(nil), indices...))
	return out
}

// addSuperTriangle appends three auxiliary points far enough outside the
// input's bounding box to strictly contain it, and returns their indices.
func (m *Mesh) addSuperTriangle() (int, int, int) {
	minX, minY := m.Points[0].X, m.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range m.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	dx, dy := maxX-minX, maxY-minY
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	margin := 10 * (dx + dy)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	base := len(m.Points)
	m.Points = append(m.Points,
		Point{Point: r2.Point{X: cx - margin, Y: cy - margin}, Index: -1},
		Point{Point: r2.Point{X: cx + margin, Y: cy - margin}, Index: -1},
		Point{Point: r2.Point{X: cx, Y: cy + margin}, Index: -1},
	)
	m.vertexEdge = append(m.vertexEdge, Handle{}, Handle{}, Handle{})
	return base, base + 1, base + 2
}

// removeSuperTriangle deletes every triangle incident to any of the three
// auxiliary vertices, leaving the real hull bonded to the dummy triangle,
// then truncates m.Points back to just the real input (plus whatever
// Steiner points were already present, though none exist yet at this
// point in the pipeline).
func (m *Mesh) removeSuperTriangle(s0, s1, s2 int) {
	isAux := func(v int) bool { return v == s0 || v == s1 || v == s2 }
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		if isAux(m.tris[i].p[0]) || isAux(m.tris[i].p[1]) || isAux(m.tris[i].p[2]) {
			for o := 0; o < 3; o++ {
				h := Handle{Tri: i, Orient: uint8(o)}
				nb := m.Sym(h)
				if !m.IsDummy(nb) {
					m.tris[nb.Tri].n[nb.Orient] = Handle{Tri: dummyTriangle}
				}
			}
			m.deleteTriangle(i)
		}
	}
	m.Points = m.Points[:s0]
	m.vertexEdge = m.vertexEdge[:s0]
	m.rebuildVertexEdges()
	// hotHandle may have pointed at a freed triangle; BuildInitial's
	// caller always re-locates before relying on it, but leave it
	// pointing at any surviving triangle as a safe default.
	m.hotHandle = m.anyLiveTriangle()
}

// AppendSteinerPoint adds a new point not present in the original input
// (Index -1) and inserts it via the same Bowyer-Watson primitive used by
// BuildInitial, returning its new index. Used by conforming segment
// subdivision (C6) and Ruppert refinement (C8).
func (m *Mesh) AppendSteinerPoint(p r2.Point) int {
	idx := len(m.Points)
	m.Points = append(m.Points, Point{Point: p, Index: -1})
	m.vertexEdge = append(m.vertexEdge, Handle{})
	m.insertVertexBowyerWatson(idx)
	return idx
}

// CheckDelaunay reports whether every interior edge currently satisfies
// the local Delaunay in-circle test, for use in tests (spec.md 8, P2).
func (m *Mesh) CheckDelaunay() bool {
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for o := 0; o < 3; o++ {
			h := Handle{Tri: i, Orient: uint8(o)}
			if m.segAt(h) >= 0 {
				continue
			}
			nb := m.Sym(h)
			if m.IsDummy(nb) || nb.Tri < i {
				continue
			}
			a, b, c := m.OrgPoint(h).Point, m.DestPoint(h).Point, m.ApexPoint(h).Point
			d := m.ApexPoint(nb).Point
			if predicate.InCircle(a, b, c, d) == predicate.Positive {
				return false
			}
		}
	}
	return true
}
