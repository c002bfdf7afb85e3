package mesh

import (
	"container/heap"
	"math"

	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
)

// skinnyItem is one candidate triangle for Ruppert refinement, ordered
// worst-min-angle-first.
type skinnyItem struct {
	tri      int
	minAngle float64
}

type skinnyHeap []skinnyItem

func (h skinnyHeap) Len() int            { return len(h) }
func (h skinnyHeap) Less(i, j int) bool  { return h[i].minAngle < h[j].minAngle }
func (h skinnyHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *skinnyHeap) Push(x interface{}) { *h = append(*h, x.(skinnyItem)) }
func (h *skinnyHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// encroachedItem is a subsegment currently encroached upon, ordered
// longest-first: splitting the longest encroached segment first is the
// standard Ruppert heuristic for keeping the Steiner point count down.
type encroachedItem struct {
	sub    int
	length float64
}

type encroachedHeap []encroachedItem

func (h encroachedHeap) Len() int            { return len(h) }
func (h encroachedHeap) Less(i, j int) bool  { return h[i].length > h[j].length }
func (h encroachedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *encroachedHeap) Push(x interface{}) { *h = append(*h, x.(encroachedItem)) }
func (h *encroachedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Refine runs Ruppert's algorithm to quality: while any subsegment is
// encroached, split the longest one at its midpoint; otherwise take the
// skinniest triangle violating MinAngle/MaxArea, compute its
// circumcenter and either insert it (via the Bowyer-Watson primitive
// shared with construction) or, if the circumcenter would itself
// encroach a subsegment, split that subsegment instead of inserting
// (spec.md 4.7's concentric-shrinking avoidance). The two work queues
// are rebuilt from a full scan each round rather than incrementally
// maintained — simpler to keep correct than threading queue updates
// through every mesh edit refinement triggers, and refinement work is
// already superlinear in the final triangle count.
func (m *Mesh) Refine() error {
	if err := m.requireState("Refine", Triangulated); err != nil {
		return err
	}
	if m.MinAngle <= 0 && m.MaxArea <= 0 {
		return nil
	}
	cap := 50 * m.NumTriangles()
	if cap < 50 {
		cap = 50
	}
	for rounds := 0; ; rounds++ {
		if rounds > cap {
			return tpperrors.Newf(tpperrors.NumericFailure, "refinement did not converge within %d rounds", cap)
		}
		if sub, ok := m.worstEncroachedSegment(); ok {
			m.splitSubsegment(sub)
			continue
		}
		tri, minAngle, ok := m.worstSkinnyTriangle()
		if !ok {
			return nil
		}
		_ = minAngle
		c, ok := m.circumcenter(tri)
		if !ok {
			// Degenerate (near-collinear) triangle; nothing a Steiner
			// point can fix without moving an input vertex. Leave it.
			m.tris[tri].mark = acceptedMark
			continue
		}
		if sub, ok := m.segmentEncroachedByPoint(c); ok {
			m.splitSubsegment(sub)
			continue
		}
		m.AppendSteinerPoint(c)
	}
}

const acceptedMark = 1 << 30

func (m *Mesh) worstEncroachedSegment() (int, bool) {
	var h encroachedHeap
	for i := range m.subs {
		if !m.subs[i].live {
			continue
		}
		s := &m.subs[i]
		op, dp := m.Points[s.org].Point, m.Points[s.dest].Point
		if vertex, ok := m.diametralEncroacher(op, dp, s.org, s.dest); ok {
			_ = vertex
			dx, dy := dp.X-op.X, dp.Y-op.Y
			h = append(h, encroachedItem{sub: i, length: math.Hypot(dx, dy)})
		}
	}
	if len(h) == 0 {
		return 0, false
	}
	heap.Init(&h)
	return h[0].sub, true
}

// diametralEncroacher reports whether some vertex other than excludeA,
// excludeB lies strictly inside the diametral circle of op-dp.
func (m *Mesh) diametralEncroacher(op, dp r2.Point, excludeA, excludeB int) (int, bool) {
	center := r2.Point{X: (op.X + dp.X) / 2, Y: (op.Y + dp.Y) / 2}
	radius2 := (dp.X-op.X)*(dp.X-op.X)/4 + (dp.Y-op.Y)*(dp.Y-op.Y)/4
	for i, p := range m.Points {
		if i == excludeA || i == excludeB {
			continue
		}
		dx, dy := p.X-center.X, p.Y-center.Y
		if dx*dx+dy*dy < radius2-1e-12 {
			return i, true
		}
	}
	return -1, false
}

func (m *Mesh) segmentEncroachedByPoint(p r2.Point) (int, bool) {
	for i := range m.subs {
		if !m.subs[i].live {
			continue
		}
		s := &m.subs[i]
		op, dp := m.Points[s.org].Point, m.Points[s.dest].Point
		center := r2.Point{X: (op.X + dp.X) / 2, Y: (op.Y + dp.Y) / 2}
		radius2 := (dp.X-op.X)*(dp.X-op.X)/4 + (dp.Y-op.Y)*(dp.Y-op.Y)/4
		dx, dy := p.X-center.X, p.Y-center.Y
		if dx*dx+dy*dy < radius2-1e-12 {
			return i, true
		}
	}
	return -1, false
}

// splitSubsegment replaces subsegment idx with two shorter subsegments
// meeting at its midpoint, inserted via InsertSegmentCDT so the mesh
// stays a valid constrained triangulation throughout.
func (m *Mesh) splitSubsegment(idx int) {
	s := m.subs[idx]
	op, dp := m.Points[s.org].Point, m.Points[s.dest].Point
	mid := r2.Point{X: (op.X + dp.X) / 2, Y: (op.Y + dp.Y) / 2}
	m.subs[idx].live = false
	// Unmark the old edge on both sides so the midpoint's cavity may
	// span it instead of stopping at a retired constraint.
	if h, ok := m.findEdge(s.org, s.dest); ok {
		if m.segAt(h) == idx {
			m.setSegAt(h, -1)
		}
		if sym := m.Sym(h); !m.IsDummy(sym) && m.segAt(sym) == idx {
			m.setSegAt(sym, -1)
		}
	}
	midIdx := m.AppendSteinerPoint(mid)
	_ = m.InsertSegmentCDT(s.org, midIdx)
	_ = m.InsertSegmentCDT(midIdx, s.dest)
}

// worstSkinnyTriangle scans every live, unmarked triangle for MinAngle
// or MaxArea violations and returns the one with the smallest minimum
// angle.
func (m *Mesh) worstSkinnyTriangle() (int, float64, bool) {
	var h skinnyHeap
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live || m.tris[i].mark == acceptedMark {
			continue
		}
		angle := m.triangleMinAngle(i)
		violates := m.MinAngle > 0 && angle < m.MinAngle
		if !violates && m.MaxArea > 0 {
			violates = m.Area(Handle{Tri: i}) > m.MaxArea
		}
		if violates {
			h = append(h, skinnyItem{tri: i, minAngle: angle})
		}
	}
	if len(h) == 0 {
		return 0, 0, false
	}
	heap.Init(&h)
	return h[0].tri, h[0].minAngle, true
}

// triangleMinAngle returns the smallest interior angle of triangle i, in
// radians, via the law of cosines on its three edge lengths.
func (m *Mesh) triangleMinAngle(i int) float64 {
	p := [3]r2.Point{m.Points[m.tris[i].p[0]].Point, m.Points[m.tris[i].p[1]].Point, m.Points[m.tris[i].p[2]].Point}
	var edge [3]float64
	for k := 0; k < 3; k++ {
		a, b := p[k], p[(k+1)%3]
		edge[k] = math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	minAngle := math.Pi
	for k := 0; k < 3; k++ {
		opp := edge[k]
		adj1, adj2 := edge[(k+1)%3], edge[(k+2)%3]
		if adj1 == 0 || adj2 == 0 {
			return 0
		}
		cosA := (adj1*adj1 + adj2*adj2 - opp*opp) / (2 * adj1 * adj2)
		if cosA > 1 {
			cosA = 1
		}
		if cosA < -1 {
			cosA = -1
		}
		angle := math.Acos(cosA)
		if angle < minAngle {
			minAngle = angle
		}
	}
	return minAngle
}

// LiveTriangleIDs returns the arena indices of every currently live
// triangle, for callers (voronoi.Extract) that need to walk the whole
// mesh rather than a single local neighborhood.
func (m *Mesh) LiveTriangleIDs() []int {
	var ids []int
	for i := 1; i < len(m.tris); i++ {
		if m.tris[i].live {
			ids = append(ids, i)
		}
	}
	return ids
}

// TriangleCircumcenter exposes circumcenter computation for a given
// triangle arena index to other packages (voronoi.Extract).
func (m *Mesh) TriangleCircumcenter(i int) (r2.Point, bool) {
	return m.circumcenter(i)
}

// circumcenter computes the circumcenter of triangle i, reporting false
// if the triangle is degenerate (collinear vertices, zero area).
func (m *Mesh) circumcenter(i int) (r2.Point, bool) {
	a := m.Points[m.tris[i].p[1]].Point
	b := m.Points[m.tris[i].p[2]].Point
	c := m.Points[m.tris[i].p[0]].Point

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-15 {
		return r2.Point{}, false
	}
	ux := (a.X*a.X+a.Y*a.Y)*(b.Y-c.Y) + (b.X*b.X+b.Y*b.Y)*(c.Y-a.Y) + (c.X*c.X+c.Y*c.Y)*(a.Y-b.Y)
	uy := (a.X*a.X+a.Y*a.Y)*(c.X-b.X) + (b.X*b.X+b.Y*b.Y)*(a.X-c.X) + (c.X*c.X+c.Y*c.Y)*(b.X-a.X)
	return r2.Point{X: ux / d, Y: uy / d}, true
}

// guaranteedMinAngle and possibleMinAngle are the static Ruppert
// termination thresholds mirrored from the wrapper's
// getMinAngleBoundaries (tpp_interface.hpp): up to guaranteedMinAngle,
// refinement is mathematically guaranteed to terminate; up to
// possibleMinAngle it is highly likely to in practice, per spec.md
// 4.7.1's ~27°/~33.8° table.
const (
	guaranteedMinAngle = 27.0 * math.Pi / 180
	possibleMinAngle   = 33.8 * math.Pi / 180
)

// MinAngleBoundaries returns the two static Ruppert termination
// thresholds, in radians. It takes no mesh and needs none, mirroring
// the wrapper's own static getMinAngleBoundaries.
func MinAngleBoundaries() (guaranteed, possible float64) {
	return guaranteedMinAngle, possibleMinAngle
}

// CheckMinAngle is the a-priori sanity check on the configured
// MinAngle, per spec.md 4.7.1: guaranteed reports whether refinement
// is mathematically guaranteed to terminate at this angle, possible
// whether it is merely highly likely to. A MinAngle of zero or below
// (no quality constraint requested) is trivially sane on both counts.
func (m *Mesh) CheckMinAngle() (guaranteed, possible bool) {
	if m.MinAngle <= 0 {
		return true, true
	}
	return m.MinAngle <= guaranteedMinAngle, m.MinAngle <= possibleMinAngle
}

// AcceptMinAngle applies CheckMinAngle's sanity verdict under strict or
// relaxed acceptance: strict requires the guaranteed-termination
// threshold, relaxed also takes the probably-terminates threshold.
// Mirrors the wrapper's checkConstraintsOpt(relaxed).
func (m *Mesh) AcceptMinAngle(relaxed bool) bool {
	guaranteed, possible := m.CheckMinAngle()
	if relaxed {
		return guaranteed || possible
	}
	return guaranteed
}

// MeetsMinAngle reports whether every live triangle's minimum angle
// currently meets the configured MinAngle — a post-hoc check of the
// actual mesh, as opposed to CheckMinAngle's a-priori sanity check of
// the configured target.
func (m *Mesh) MeetsMinAngle() bool {
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		if m.triangleMinAngle(i) < m.MinAngle {
			return false
		}
	}
	return true
}

// CheckConstraints reports whether every input segment is present in the
// mesh as one or more collinear subsegments; hole markers are not
// checked. CheckConstraintsOpt additionally tolerates a missing segment
// when either endpoint has no incident triangle in the final mesh
// (spec.md 4.5/9).
func (m *Mesh) CheckConstraints(segments [][2]int) bool {
	return m.checkConstraints(segments, false)
}

func (m *Mesh) CheckConstraintsOpt(segments [][2]int) bool {
	return m.checkConstraints(segments, true)
}

func (m *Mesh) checkConstraints(segments [][2]int, tolerateHullClip bool) bool {
	for _, pr := range segments {
		if m.segmentPresent(pr[0], pr[1]) {
			continue
		}
		if tolerateHullClip && (m.outsideHull(pr[0]) || m.outsideHull(pr[1])) {
			continue
		}
		return false
	}
	return true
}

func (m *Mesh) segmentPresent(a, b int) bool {
	h, ok := m.OutgoingHandle(a)
	if !ok {
		return false
	}
	start := h
	for {
		if m.Dest(h) == b && m.segAt(h) >= 0 {
			return true
		}
		h = m.Onext(h)
		if h == start || m.IsDummy(h) {
			break
		}
	}
	return false
}

func (m *Mesh) outsideHull(vertex int) bool {
	_, ok := m.OutgoingHandle(vertex)
	return !ok
}
