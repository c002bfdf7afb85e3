package mesh

// This file is the primitive operator layer (spec.md C3): edge rotations
// and vertex accessors, all expressed as pure functions of a Handle
// value. The algebraic derivation of Onext/Oprev from Sym/Lnext/Lprev
// mirrors the quad-edge identities in
// other_examples/tjim-manifold__quadedge.go (Onext primitive, everything
// else derived), specialized here to a triangle-corner representation
// instead of Guibas-Stolfi's four-handle quad edge, since triangle has
// exactly three directed edges per face rather than four.
//
// Vertex convention for triangle t, corner index o (0,1,2):
//
//	apex(t,o) = t.p[o]
//	org(t,o)  = t.p[(o+1)%3]
//	dest(t,o) = t.p[(o+2)%3]
//
// so that org,dest,apex always read out in counterclockwise order.
// t.n[o] and t.seg[o] describe the edge opposite corner o, i.e. the edge
// (org(t,o), dest(t,o)).

// Org returns the index into m.Points of h's origin vertex (equal to the
// input index for an input point; a Steiner point's own Index is -1).
func (m *Mesh) Org(h Handle) int { return m.tris[h.Tri].p[plus1mod3[h.Orient]] }

// Dest returns the input index of h's destination vertex.
func (m *Mesh) Dest(h Handle) int { return m.tris[h.Tri].p[plus2mod3[h.Orient]] }

// Apex returns the input index of h's apex vertex (the corner opposite
// the directed edge h).
func (m *Mesh) Apex(h Handle) int { return m.tris[h.Tri].p[h.Orient] }

// OrgPoint, DestPoint and ApexPoint resolve a handle's vertex indices to
// coordinates.
func (m *Mesh) OrgPoint(h Handle) Point  { return m.Points[m.Org(h)] }
func (m *Mesh) DestPoint(h Handle) Point { return m.Points[m.Dest(h)] }
func (m *Mesh) ApexPoint(h Handle) Point { return m.Points[m.Apex(h)] }

// Sym returns the directed edge on the opposite side of h: a handle on
// the neighboring triangle (or the dummy triangle, on the convex hull)
// whose origin is h's destination and vice versa.
func (m *Mesh) Sym(h Handle) Handle { return m.tris[h.Tri].n[h.Orient] }

// Lnext returns the next edge counterclockwise around the same triangle:
// Lnext(abc) -> bca.
func (m *Mesh) Lnext(h Handle) Handle { return Handle{Tri: h.Tri, Orient: plus1mod3[h.Orient]} }

// Lprev returns the previous edge (clockwise) around the same triangle:
// Lprev(abc) -> cab.
func (m *Mesh) Lprev(h Handle) Handle { return Handle{Tri: h.Tri, Orient: plus2mod3[h.Orient]} }

// Onext returns the next edge counterclockwise with the same origin as h.
func (m *Mesh) Onext(h Handle) Handle { return m.Sym(m.Lprev(h)) }

// Oprev returns the next edge clockwise with the same origin as h.
func (m *Mesh) Oprev(h Handle) Handle { return m.Lnext(m.Sym(h)) }

// Dnext returns the next edge counterclockwise with the same destination
// as h.
func (m *Mesh) Dnext(h Handle) Handle { return m.Sym(m.Lnext(h)) }

// Dprev returns the next edge clockwise with the same destination as h.
func (m *Mesh) Dprev(h Handle) Handle { return m.Lprev(m.Sym(h)) }

// segAt returns the subsegment index bonded to h's edge, or -1.
func (m *Mesh) segAt(h Handle) int { return m.tris[h.Tri].seg[h.Orient] }

func (m *Mesh) setSegAt(h Handle, seg int) { m.tris[h.Tri].seg[h.Orient] = seg }

// IsSegment reports whether h's edge is a constrained subsegment.
func (m *Mesh) IsSegment(h Handle) bool { return m.segAt(h) >= 0 }

// setOrg/setDest/setApex mutate a single vertex slot of h's triangle;
// used by segment insertion and refinement's cavity retriangulation.
func (m *Mesh) setOrg(h Handle, v int)  { m.tris[h.Tri].p[plus1mod3[h.Orient]] = v }
func (m *Mesh) setDest(h Handle, v int) { m.tris[h.Tri].p[plus2mod3[h.Orient]] = v }
func (m *Mesh) setApex(h Handle, v int) { m.tris[h.Tri].p[h.Orient] = v }

// Bond establishes mutual neighbor linkage between the two sides of one
// edge. Both handles must describe the same undirected edge from
// opposite sides (org(a)==dest(b) and dest(a)==org(b)); it is the
// caller's responsibility to maintain that invariant, exactly as
// spec.md's "must be used pairwise" requires.
func (m *Mesh) Bond(a, b Handle) {
	m.tris[a.Tri].n[a.Orient] = b
	m.tris[b.Tri].n[b.Orient] = a
}

// dissolve unlinks h's edge from whatever it was bonded to, replacing
// the link with the dummy triangle on both sides. Used when a triangle
// is being deleted and its neighbor must not retain a dangling handle.
func (m *Mesh) dissolve(h Handle) {
	m.tris[h.Tri].n[h.Orient] = Handle{Tri: dummyTriangle}
}

// TrianglesAroundVertex returns, in counterclockwise order, a handle per
// triangle incident to vertex id, each handle's origin being id.
func (m *Mesh) TrianglesAroundVertex(id int) []Handle {
	start, ok := m.OutgoingHandle(id)
	if !ok {
		return nil
	}
	var out []Handle
	h := start
	for {
		out = append(out, h)
		h = m.Onext(h)
		if h == start || m.IsDummy(h) {
			break
		}
	}
	if m.IsDummy(h) {
		// Hull vertex: the CCW fan stopped at the hull boundary; walk
		// the other way from start to pick up the remaining triangles,
		// prepending each so the result stays in CCW order.
		h = m.Oprev(start)
		for !m.IsDummy(h) {
			out = append([]Handle{h}, out...)
			h = m.Oprev(h)
		}
	}
	return out
}

// OutgoingHandle returns a live handle whose origin is vertex id,
// resolving spec.md 9's open question about locate(vertexId): rather
// than searching, the mesh maintains one outgoing handle per vertex
// incrementally as edges are created, so this is O(1) and always
// correct for a triangulated mesh.
func (m *Mesh) OutgoingHandle(id int) (Handle, bool) {
	if id < 0 || id >= len(m.vertexEdge) {
		return Handle{}, false
	}
	h := m.vertexEdge[id]
	if m.IsDummy(h) {
		// Zero value: no outgoing edge has been recorded for id yet.
		return Handle{}, false
	}
	return h, true
}

func (m *Mesh) recordOutgoing(h Handle) {
	org := m.Org(h)
	if org >= 0 && org < len(m.vertexEdge) {
		m.vertexEdge[org] = h
	}
}

// Area returns the signed-then-absolute area of the triangle h belongs
// to (zero for a dummy handle).
func (m *Mesh) Area(h Handle) float64 {
	if m.IsDummy(h) {
		return 0
	}
	a := m.OrgPoint(h)
	b := m.DestPoint(h)
	c := m.ApexPoint(h)
	signed := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if signed < 0 {
		signed = -signed
	}
	return signed / 2
}
