package mesh

// RemoveHolesAndConcavities discards every triangle reachable from the
// dummy (exterior) triangle, or from any configured hole marker, by
// crossing only unconstrained edges — subsegments act as firebreaks the
// flood fill never crosses. This is component C7: concavities cut out
// by the segment boundary and explicitly marked holes are removed in
// the same pass, since both are "whatever isn't separated from the
// exterior/a hole marker by a wall of subsegments" (spec.md 4.6).
//
// Per spec.md 9's preserved note, an unconstrained triangulation with
// hole markers has no subsegment wall at all, so the flood from a hole
// marker alone reaches every triangle and every triangle is discarded
// (the flood from the hull does not run without an enclosing segment
// loop; see the gate below).
func (m *Mesh) RemoveHolesAndConcavities() {
	doomed := map[int]bool{}
	// Flooding in from the exterior only makes sense relative to a
	// closed segment boundary: a lone chord has no "outside" of its own
	// to carve away, and UseConvexHullWithSegments asks explicitly to
	// leave the hull alone. Without this gate a single non-enclosing
	// segment left the whole mesh connected to the dummy triangle, so
	// the flood reached and discarded every triangle.
	if !m.KeepConvexHull && m.hasEnclosingSegmentLoop() {
		m.floodFrom(dummyTriangleNeighborsOf(m), doomed)
	}
	for _, hp := range m.Holes {
		h, res := m.Locate(hp)
		if res == LocateOutside || m.IsDummy(h) {
			continue
		}
		m.floodFrom([]int{h.Tri}, doomed)
	}
	for t := range doomed {
		for o := 0; o < 3; o++ {
			hh := Handle{Tri: t, Orient: uint8(o)}
			nb := m.Sym(hh)
			if !m.IsDummy(nb) && !doomed[nb.Tri] {
				m.tris[nb.Tri].n[nb.Orient] = Handle{Tri: dummyTriangle}
			}
		}
		m.deleteTriangle(t)
	}
	m.rebuildVertexEdges()
}

// hasEnclosingSegmentLoop reports whether the configured segment set
// contains at least one cycle, via union-find over SegmentEndpoints: an
// edge that joins two endpoints already in the same component closes a
// loop. A set of open chords alone never encloses anything.
func (m *Mesh) hasEnclosingSegmentLoop() bool {
	parent := map[int]int{}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			x = parent[x]
		}
		return x
	}
	for _, pr := range m.SegmentEndpoints {
		for _, v := range pr {
			if _, ok := parent[v]; !ok {
				parent[v] = v
			}
		}
		ra, rb := find(pr[0]), find(pr[1])
		if ra == rb {
			return true
		}
		parent[ra] = rb
	}
	return false
}

// dummyTriangleNeighborsOf returns every live triangle with at least one
// unconstrained hull edge, the seed set for flooding in from the
// exterior. A hull edge that is itself a subsegment (the outer boundary
// of a PSLG coincides with the convex hull, as in a letter-shaped
// outline) is not a way in: the interior triangle behind it stays.
func dummyTriangleNeighborsOf(m *Mesh) []int {
	var seeds []int
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for o := 0; o < 3; o++ {
			h := Handle{Tri: i, Orient: uint8(o)}
			if m.tris[i].n[o].Tri == dummyTriangle && m.segAt(h) < 0 {
				seeds = append(seeds, i)
				break
			}
		}
	}
	return seeds
}

// rebuildVertexEdges recomputes every vertex's recorded outgoing handle
// from a full scan of the live triangles. deleteTriangle does not repair
// vertexEdge entries pointing into the slot it frees, so after bulk
// deletion (hole/concavity removal) some vertices could otherwise keep
// pointing at a freed, possibly since-reallocated triangle.
func (m *Mesh) rebuildVertexEdges() {
	for i := range m.vertexEdge {
		m.vertexEdge[i] = Handle{}
	}
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for o := 0; o < 3; o++ {
			m.recordOutgoing(Handle{Tri: i, Orient: uint8(o)})
		}
	}
}

// HasConstraints reports whether the mesh currently carries any
// constrained subsegment or configured hole marker, i.e. whether it may
// fall short of covering its full convex hull. Voronoi dual extraction
// requires the negation of this.
func (m *Mesh) HasConstraints() bool {
	return m.NumSubsegments() > 0 || len(m.Holes) > 0
}

// floodFrom grows doomed to include every triangle reachable from seeds
// without crossing a subsegment.
func (m *Mesh) floodFrom(seeds []int, doomed map[int]bool) {
	queue := append([]int(nil), seeds...)
	for _, s := range seeds {
		doomed[s] = true
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for o := 0; o < 3; o++ {
			hh := Handle{Tri: t, Orient: uint8(o)}
			if m.segAt(hh) >= 0 {
				continue
			}
			nb := m.Sym(hh)
			if m.IsDummy(nb) || doomed[nb.Tri] {
				continue
			}
			doomed[nb.Tri] = true
			queue = append(queue, nb.Tri)
		}
	}
}
