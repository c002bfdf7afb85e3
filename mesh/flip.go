package mesh

// Flip replaces the diagonal of the quadrilateral formed by h's triangle
// and its Sym neighbor with the other diagonal, per spec.md 4.2.
// Precondition: both h.Tri and Sym(h).Tri are real (not dummy) and the
// quadrilateral org(h), apex(h), dest(h), apex(Sym(h)) is strictly
// convex; callers (Lawson flipping, Bowyer-Watson is exempt since it
// rebuilds a cavity directly) must have checked this via InCircle before
// calling.
//
// Notation: h has org=a, dest=b, apex=c (triangle abc); Sym(h) has
// org=b, dest=a, apex=d (triangle bad, the same physical triangle as
// abd). The quadrilateral's counterclockwise boundary is c,a,d,b, so
// flipping the diagonal a-b to c-d yields triangle (a,d,c) in h's old
// slot and triangle (c,d,b) i.e. (d,b,c) in Sym(h)'s old slot.
//
// Returns a handle on the outer edge a->d in h's old slot, whose Lnext
// is the new diagonal d->c; callers use it to keep walking after the
// flip.
func (m *Mesh) Flip(h Handle) Handle {
	o1 := h.Orient
	t1 := h.Tri
	hsym := m.Sym(h)
	o2 := hsym.Orient
	t2 := hsym.Tri

	a := m.tris[t1].p[plus1mod3[o1]] // org(h)
	b := m.tris[t1].p[plus2mod3[o1]] // dest(h)
	c := m.tris[t1].p[o1]            // apex(h)
	d := m.tris[t2].p[o2]            // apex(Sym(h))

	// Outer edges to preserve, captured before any mutation.
	bc := Handle{Tri: t1, Orient: plus1mod3[o1]} // dest(h)->apex(h)
	ca := Handle{Tri: t1, Orient: plus2mod3[o1]} // apex(h)->org(h)
	ad := Handle{Tri: t2, Orient: plus1mod3[o2]} // dest(hsym)->apex(hsym) == a->d
	db := Handle{Tri: t2, Orient: plus2mod3[o2]} // apex(hsym)->org(hsym) == d->b

	nbBC, segBC := m.Sym(bc), m.segAt(bc)
	nbCA, segCA := m.Sym(ca), m.segAt(ca)
	nbAD, segAD := m.Sym(ad), m.segAt(ad)
	nbDB, segDB := m.Sym(db), m.segAt(db)

	gen1, gen2 := m.tris[t1].gen+1, m.tris[t2].gen+1
	mark1, mark2 := m.tris[t1].mark, m.tris[t2].mark

	// t1 becomes triangle (a,d,c): p[0]=apex=c? No -- p indices are
	// fixed to corner 0,1,2 with apex(t,o)=p[o]; choose orient 0 as the
	// canonical corner so p = [apex0, apex1, apex2] with apex0=c means
	// org(t,0)=p[1], dest(t,0)=p[2]. We want corner0 apex=c,org=a,dest=d.
	m.tris[t1] = triangle{p: [3]int{c, a, d}, seg: [3]int{-1, -1, -1}, gen: gen1, live: true, mark: mark1}
	// t2 becomes triangle (c,d,b): corner0 apex=c,org=d,dest=b.
	m.tris[t2] = triangle{p: [3]int{c, d, b}, seg: [3]int{-1, -1, -1}, gen: gen2, live: true, mark: mark2}

	// t1 corner0: apex=c,org=a,dest=d -> edge a->d, was t2's ad edge.
	t1c0 := Handle{Tri: t1, Orient: 0}
	// t1 corner1: apex=a,org=d,dest=c -> new diagonal d->c.
	t1c1 := Handle{Tri: t1, Orient: 1}
	// t1 corner2: apex=d,org=c,dest=a -> edge c->a, was t1's ca edge.
	t1c2 := Handle{Tri: t1, Orient: 2}

	// t2 corner0: apex=c,org=d,dest=b -> edge d->b, was t2's db edge.
	t2c0 := Handle{Tri: t2, Orient: 0}
	// t2 corner1: apex=d,org=b,dest=c -> edge b->c, was t1's bc edge.
	t2c1 := Handle{Tri: t2, Orient: 1}
	// t2 corner2: apex=b,org=c,dest=d -> new diagonal c->d.
	t2c2 := Handle{Tri: t2, Orient: 2}

	m.Bond(t1c0, nbAD)
	m.rebondSeg(t1c0, segAD)
	m.Bond(t1c2, nbCA)
	m.rebondSeg(t1c2, segCA)
	m.Bond(t1c1, t2c2) // new internal diagonal, never a subsegment

	m.Bond(t2c0, nbDB)
	m.rebondSeg(t2c0, segDB)
	m.Bond(t2c1, nbBC)
	m.rebondSeg(t2c1, segBC)

	for _, h2 := range [...]Handle{t1c0, t1c1, t1c2, t2c0, t2c1, t2c2} {
		m.recordOutgoing(h2)
	}

	return t1c0
}

// rebondSeg re-attaches an existing subsegment to a new triangle edge
// slot after a flip moved that edge to a different (triangle, orient).
// A flip is only ever performed on an unconstrained edge, but the four
// *outer* edges of the quadrilateral may themselves be subsegments and
// must keep their bond.
func (m *Mesh) rebondSeg(h Handle, seg int) {
	if seg < 0 {
		return
	}
	m.setSegAt(h, seg)
	s := &m.subs[seg]
	if s.org == m.Org(h) {
		s.bond[0] = h
	} else {
		s.bond[1] = h
	}
}
