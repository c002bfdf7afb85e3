package mesh

import (
	"github.com/2B-pencil/TrianglePP/predicate"
)

// makeTriangle allocates a triangle with the given CCW vertices and
// records outgoing handles for each of them.
func (m *Mesh) makeTriangle(a, b, c int) Handle {
	idx := m.allocTriangle()
	m.tris[idx].p = [3]int{c, a, b}
	h := Handle{Tri: idx, Orient: 0}
	for o := 0; o < 3; o++ {
		m.tris[idx].n[o] = Handle{Tri: dummyTriangle}
	}
	m.recordOutgoing(h)
	m.recordOutgoing(m.Lnext(h))
	m.recordOutgoing(m.Lprev(h))
	return h
}

func (m *Mesh) deleteTriangle(t int) {
	for o := 0; o < 3; o++ {
		if seg := m.tris[t].seg[o]; seg >= 0 {
			// Detach without leaving the subsegment pointed at a freed
			// triangle; the caller is responsible for re-attaching it
			// to whatever replaces this edge, if anything does.
			h := Handle{Tri: t, Orient: uint8(o)}
			s := &m.subs[seg]
			if s.bond[0] == h {
				s.bond[0] = Handle{}
			} else if s.bond[1] == h {
				s.bond[1] = Handle{}
			}
		}
	}
	m.freeTriangle(t)
}

// insertVertexBowyerWatson inserts point p (already appended to m.Points
// at index newIdx) into the current triangulation by digging the cavity
// of triangles whose circumcircle contains p and retriangulating it as a
// fan from p. The cavity search stops at subsegment edges: a subsegment
// is a constraint the cavity may never cross, even if the far triangle's
// circumcircle also contains p (spec.md 4.5/4.7 — segments carve the
// domain that the Delaunay property is only required to hold within).
//
// This is the one general-purpose insertion primitive shared by initial
// construction (C5), conforming Steiner-point insertion (C6) and
// Ruppert circumcenter insertion (C8), matching Design Notes' guidance
// that refinement queues must tolerate structural edits happening
// through a single, carefully-specified primitive.
func (m *Mesh) insertVertexBowyerWatson(newIdx int) Handle {
	p := m.Points[newIdx]
	start, res := m.Locate(p)
	if res == LocateOutside {
		return m.insertVertexOutsideHull(newIdx, start)
	}
	if res == LocateOnVertex {
		return start
	}

	badSet := map[int]bool{start.Tri: true}
	queue := []int{start.Tri}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for o := 0; o < 3; o++ {
			h := Handle{Tri: t, Orient: uint8(o)}
			if m.segAt(h) >= 0 {
				continue // never cross a constraint
			}
			nb := m.Sym(h)
			if m.IsDummy(nb) || badSet[nb.Tri] {
				continue
			}
			a := m.OrgPoint(nb).Point
			b := m.DestPoint(nb).Point
			c := m.ApexPoint(nb).Point
			if predicate.Orient2D(a, b, c) != predicate.Positive {
				continue
			}
			if predicate.InCircle(a, b, c, p.Point) == predicate.Positive {
				badSet[nb.Tri] = true
				queue = append(queue, nb.Tri)
			}
		}
	}

	return m.retriangulateCavity(badSet, newIdx)
}

// retriangulateCavity deletes the triangles in badSet and fans new
// triangles from newIdx to each boundary edge of the resulting cavity.
func (m *Mesh) retriangulateCavity(badSet map[int]bool, newIdx int) Handle {
	type boundaryEdge struct {
		org, dest int
		outer     Handle
		seg       int
	}
	var unordered []boundaryEdge
	for t := range badSet {
		for o := 0; o < 3; o++ {
			h := Handle{Tri: t, Orient: uint8(o)}
			nb := m.Sym(h)
			if m.IsDummy(nb) || !badSet[nb.Tri] {
				unordered = append(unordered, boundaryEdge{
					org: m.Org(h), dest: m.Dest(h), outer: nb, seg: m.segAt(h),
				})
			}
		}
	}

	// unordered is collected via a map walk, so its order is arbitrary;
	// the fan-building loop below bonds each new triangle's flanks to its
	// immediate neighbors in the walk, so the edges must first be chained
	// back into a single CCW cycle around the cavity boundary.
	byOrg := make(map[int]boundaryEdge, len(unordered))
	for _, e := range unordered {
		byOrg[e.org] = e
	}
	boundary := make([]boundaryEdge, 0, len(unordered))
	if len(unordered) > 0 {
		cur := unordered[0]
		for i := 0; i < len(unordered); i++ {
			boundary = append(boundary, cur)
			next, ok := byOrg[cur.dest]
			if !ok {
				break
			}
			cur = next
		}
	}

	for t := range badSet {
		m.deleteTriangle(t)
	}

	newHandles := make([]Handle, len(boundary))
	for i, e := range boundary {
		nh := m.makeTriangle(e.org, e.dest, newIdx)
		newHandles[i] = nh
		if m.IsDummy(e.outer) {
			m.Bond(nh, Handle{Tri: dummyTriangle})
		} else {
			m.Bond(nh, e.outer)
		}
		if e.seg >= 0 {
			m.setSegAt(nh, e.seg)
			s := &m.subs[e.seg]
			if s.org == e.org {
				s.bond[0] = nh
			} else {
				s.bond[1] = nh
			}
		}
	}
	// Bond the fan's internal edges (newIdx->org(i) with dest(i-1)->newIdx).
	n := len(newHandles)
	for i := 0; i < n; i++ {
		cur := newHandles[i]
		next := newHandles[(i+1)%n]
		// cur's Lnext is dest->newIdx; next's Lprev is newIdx->org(next).
		m.Bond(m.Lnext(cur), m.Lprev(next))
	}

	m.hotHandle = newHandles[0]
	return newHandles[0]
}

// insertVertexOutsideHull extends the hull to include a point located
// outside it, fanning new triangles between p and every hull edge it can
// see, then flipping locally to restore the Delaunay property.
func (m *Mesh) insertVertexOutsideHull(newIdx int, hullEdge Handle) Handle {
	p := m.Points[newIdx]

	// Walk CCW from hullEdge first, then CW, and splice the two runs back
	// into a single CCW-ordered sequence [cw...,hullEdge,ccw...] so that
	// consecutive entries are always geometrically adjacent hull edges.
	var ccwRun, cwRun []Handle
	h := m.hullNextCCW(hullEdge)
	for {
		a, b := m.OrgPoint(h).Point, m.DestPoint(h).Point
		if predicate.Orient2D(a, b, p.Point) != predicate.Positive || h == hullEdge {
			break
		}
		ccwRun = append(ccwRun, h)
		h = m.hullNextCCW(h)
	}
	h = m.hullNextCW(hullEdge)
	for {
		a, b := m.OrgPoint(h).Point, m.DestPoint(h).Point
		if predicate.Orient2D(a, b, p.Point) != predicate.Positive || h == hullEdge {
			break
		}
		cwRun = append(cwRun, h)
		h = m.hullNextCW(h)
	}
	visible := make([]Handle, 0, len(ccwRun)+len(cwRun)+1)
	for i := len(cwRun) - 1; i >= 0; i-- {
		visible = append(visible, cwRun[i])
	}
	visible = append(visible, hullEdge)
	visible = append(visible, ccwRun...)

	// Each new triangle's edge coinciding with a hull edge h must run in
	// the opposite direction from h (dest(h)->org(h)) to land on the
	// correct, opposite side for Bond, matching Sym(h)'s orientation.
	newHandles := make([]Handle, len(visible))
	for i, he := range visible {
		nh := m.makeTriangle(m.Dest(he), m.Org(he), newIdx)
		m.Bond(nh, he)
		newHandles[i] = nh
	}
	n := len(newHandles)
	for i := 0; i < n-1; i++ {
		m.Bond(m.Lprev(newHandles[i]), m.Lnext(newHandles[i+1]))
	}
	// Outer fan edges (to newIdx from the first and last visible hull
	// vertices) remain bonded to the dummy triangle by default from
	// makeTriangle's initialization; nothing further to do there.

	m.legalizeFan(newHandles)
	m.hotHandle = newHandles[0]
	return newHandles[0]
}

// hullNextCCW/hullNextCW walk the convex hull boundary from a hull edge
// handle (one whose Sym is dummy) to the next hull edge.
func (m *Mesh) hullNextCCW(h Handle) Handle {
	cur := m.Lnext(h)
	for !m.IsDummy(m.Sym(cur)) {
		cur = m.Lnext(m.Sym(cur))
	}
	return cur
}

func (m *Mesh) hullNextCW(h Handle) Handle {
	cur := m.Lprev(h)
	for !m.IsDummy(m.Sym(cur)) {
		cur = m.Lprev(m.Sym(cur))
	}
	return cur
}

// legalizeFan restores the Delaunay property around a freshly inserted
// fan of triangles by recursively flipping any edge whose far vertex
// lies inside the near triangle's circumcircle, mirroring the
// InsertSite legalization loop in
// other_examples/tjim-manifold__delaunay.go.
func (m *Mesh) legalizeFan(fan []Handle) {
	stack := append([]Handle(nil), fan...)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !m.tris[h.Tri].live {
			continue
		}
		if m.segAt(h) >= 0 {
			continue
		}
		nb := m.Sym(h)
		if m.IsDummy(nb) {
			continue
		}
		a := m.OrgPoint(h).Point
		b := m.DestPoint(h).Point
		c := m.ApexPoint(h).Point
		d := m.ApexPoint(nb).Point
		if predicate.Orient2D(a, b, c) != predicate.Positive || predicate.Orient2D(b, a, d) != predicate.Positive {
			continue
		}
		if predicate.InCircle(a, b, c, d) == predicate.Positive {
			newEdge := m.Flip(h)
			stack = append(stack, m.Lnext(newEdge), m.Lprev(newEdge))
		}
	}
}
