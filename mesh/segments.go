package mesh

import (
	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/predicate"
)

// ValidateSegments checks a batch of input-index endpoint pairs before
// any mutation: both endpoints must be distinct, in-range input indices.
// Shared by the point-pair and index-based public setters (spec.md 4.5:
// "both setters funnel into the same validation").
func (m *Mesh) ValidateSegments(pairs [][2]int, numInputPoints int) error {
	for _, pr := range pairs {
		if pr[0] == pr[1] {
			return tpperrors.Newf(tpperrors.InvalidInput, "segment endpoints must be distinct, got (%d,%d)", pr[0], pr[1])
		}
		for _, idx := range pr {
			if idx < 0 || idx >= numInputPoints {
				return tpperrors.Newf(tpperrors.InvalidInput, "segment endpoint %d out of range [0,%d)", idx, numInputPoints)
			}
		}
	}
	return nil
}

// findEdge returns a handle whose directed edge runs org->dest, if the
// triangulation currently contains that edge in either direction.
func (m *Mesh) findEdge(org, dest int) (Handle, bool) {
	h, ok := m.OutgoingHandle(org)
	if !ok {
		return Handle{}, false
	}
	cur := h
	for {
		if m.Dest(cur) == dest {
			return cur, true
		}
		cur = m.Onext(cur)
		if cur == h || m.IsDummy(cur) {
			break
		}
	}
	// org may be a hull vertex whose CCW fan is truncated; sweep the
	// other way too.
	cur = m.Oprev(h)
	for !m.IsDummy(cur) {
		if m.Dest(cur) == dest {
			return cur, true
		}
		cur = m.Oprev(cur)
	}
	return Handle{}, false
}

// markSegment attaches a subsegment record to both sides of the edge
// handle h (whose Org must equal org) and chains it to any subsegment
// already incident at either endpoint, per spec.md's "segment-to-segment
// chaining".
func (m *Mesh) markSegment(h Handle, org, dest int) {
	idx := m.allocSubsegment()
	m.subs[idx].org, m.subs[idx].dest = org, dest
	m.setSegAt(h, idx)
	m.subs[idx].bond[0] = h
	sym := m.Sym(h)
	if !m.IsDummy(sym) {
		m.setSegAt(sym, idx)
		m.subs[idx].bond[1] = sym
	}
	m.chainSegmentEndpoint(idx, org, 0)
	m.chainSegmentEndpoint(idx, dest, 1)
}

func (m *Mesh) chainSegmentEndpoint(idx, vertex, end int) {
	for other := range m.subs {
		if other == idx || !m.subs[other].live {
			continue
		}
		s := &m.subs[other]
		if s.org == vertex {
			s.endSeg[0] = idx
			m.subs[idx].endSeg[end] = other
			return
		}
		if s.dest == vertex {
			s.endSeg[1] = idx
			m.subs[idx].endSeg[end] = other
			return
		}
	}
}

// InsertSegmentCDT enforces the edge (orgIdx, destIdx) as a constrained
// subsegment exactly, inserting it via Sloan's flip algorithm: repeatedly
// flip whichever diagonal currently crosses the segment, until the
// segment itself appears as a mesh edge, then mark it and re-legalize
// the triangles the flips disturbed. Grounded on
// other_examples/robert-nix-loopblinn__cdt.go's crossing-edge removal
// loop, adapted from its polygon-retriangulation form to a pure
// flip-based form (see DESIGN.md "Final pass notes").
func (m *Mesh) InsertSegmentCDT(orgIdx, destIdx int) error {
	if h, ok := m.findEdge(orgIdx, destIdx); ok {
		if m.segAt(h) >= 0 {
			return nil // already constrained
		}
		m.markSegment(h, orgIdx, destIdx)
		return nil
	}

	crossing, splitAt, err := m.findCrossingEdges(orgIdx, destIdx)
	if err != nil {
		return err
	}
	if splitAt >= 0 {
		if err := m.InsertSegmentCDT(orgIdx, splitAt); err != nil {
			return err
		}
		return m.InsertSegmentCDT(splitAt, destIdx)
	}

	pa, pb := m.Points[orgIdx].Point, m.Points[destIdx].Point
	var touched []Handle
	const maxRounds = 1 << 16
	rounds := 0
	for len(crossing) > 0 {
		rounds++
		if rounds > maxRounds {
			return tpperrors.Newf(tpperrors.NumericFailure, "segment (%d,%d) insertion did not converge", orgIdx, destIdx)
		}
		h := crossing[0]
		crossing = crossing[1:]
		if m.segAt(h) >= 0 {
			return tpperrors.Newf(tpperrors.InvalidInput, "segment (%d,%d) crosses an existing segment", orgIdx, destIdx)
		}
		a4 := m.OrgPoint(h).Point
		b4 := m.DestPoint(h).Point
		c4 := m.ApexPoint(h).Point
		d4 := m.ApexPoint(m.Sym(h)).Point
		if predicate.Orient2D(a4, b4, c4) != predicate.Positive || predicate.Orient2D(b4, a4, d4) != predicate.Positive {
			crossing = append(crossing, h)
			continue
		}
		newH := m.Flip(h)
		touched = append(touched, newH)
		diag := m.Lnext(newH)
		touched = append(touched, diag)
		dOrg, dDest := m.OrgPoint(diag).Point, m.DestPoint(diag).Point
		if segmentsCross(pa, pb, dOrg, dDest) {
			crossing = append(crossing, diag)
		}
	}

	h, ok := m.findEdge(orgIdx, destIdx)
	if !ok {
		return tpperrors.Newf(tpperrors.NumericFailure, "segment (%d,%d) failed to materialize after flip insertion", orgIdx, destIdx)
	}
	m.markSegment(h, orgIdx, destIdx)
	m.legalizeFan(touched)
	return nil
}

// segmentsCross reports whether open segments p1-p2 and p3-p4 properly
// cross (strictly, interior-to-interior; shared endpoints don't count).
func segmentsCross(p1, p2, p3, p4 r2.Point) bool {
	d1 := predicate.Orient2D(p1, p2, p3)
	d2 := predicate.Orient2D(p1, p2, p4)
	d3 := predicate.Orient2D(p3, p4, p1)
	d4 := predicate.Orient2D(p3, p4, p2)
	return d1 != d2 && d1 != predicate.Zero && d2 != predicate.Zero &&
		d3 != d4 && d3 != predicate.Zero && d4 != predicate.Zero
}

// findCrossingEdges walks from a toward b, collecting the sequence of
// mesh edges the open segment a-b passes through, maintaining the
// invariant that each returned handle's Org lies left of a->b and Dest
// lies right of it. If some existing vertex lies exactly on the segment,
// it returns that vertex's input index as splitAt instead, so the caller
// splits the segment there rather than attempting to walk through it.
func (m *Mesh) findCrossingEdges(a, b int) (crossing []Handle, splitAt int, err error) {
	pa, pb := m.Points[a].Point, m.Points[b].Point

	start, ok := m.OutgoingHandle(a)
	if !ok {
		return nil, -1, tpperrors.Newf(tpperrors.InvalidInput, "vertex %d has no incident triangle", a)
	}
	h := start
	var far Handle
	found := false
	for {
		d := m.DestPoint(h).Point
		c := m.ApexPoint(h).Point
		sd := predicate.Orient2D(pa, d, pb)
		sc := predicate.Orient2D(pa, c, pb)
		if sd != predicate.Negative && sc != predicate.Positive {
			far = m.Lnext(h)
			found = true
			break
		}
		next := m.Onext(h)
		if next == start || m.IsDummy(next) {
			break
		}
		h = next
	}
	if !found {
		return nil, -1, tpperrors.Newf(tpperrors.NumericFailure, "vertex %d's fan does not face vertex %d", a, b)
	}
	if m.Apex(h) == b {
		return nil, -1, nil
	}

	const maxSteps = 1 << 16
	cur := far
	for step := 0; ; step++ {
		if step > maxSteps {
			return nil, -1, tpperrors.Newf(tpperrors.NumericFailure, "segment (%d,%d) walk did not terminate", a, b)
		}
		apex := m.Apex(cur)
		if predicate.Orient2D(pa, pb, m.Points[apex].Point) == predicate.Zero && apex != b {
			return nil, apex, nil
		}
		if apex == b {
			return crossing, -1, nil
		}
		crossing = append(crossing, cur)
		nb := m.Sym(cur)
		if m.IsDummy(nb) {
			return nil, -1, tpperrors.Newf(tpperrors.InvalidInput, "segment (%d,%d) exits the convex hull", a, b)
		}
		e := m.ApexPoint(nb).Point
		if predicate.Orient2D(pa, pb, e) == predicate.Negative {
			cur = m.Lnext(nb) // edge left-point -> e
		} else {
			cur = m.Lprev(nb) // edge e -> right-point
		}
	}
}

// InsertSegmentConforming enforces (orgIdx, destIdx) by recursively
// splitting at the midpoint wherever the straight segment would either
// cross an existing subsegment or be encroached upon (a mesh vertex
// falls inside its diametral circle), or is not yet a mesh edge, so the final triangulation
// contains the segment as a strict union of shorter collinear
// subsegments rather than forcing a single CDT edge (spec.md 4.5
// "conforming" mode). Grounded on the Ruppert encroachment test reused
// by mesh/refine.go.
func (m *Mesh) InsertSegmentConforming(orgIdx, destIdx int) error {
	pa, pb := m.Points[orgIdx].Point, m.Points[destIdx].Point
	if !m.segmentEncroachedOrCrossing(pa, pb) {
		if h, ok := m.findEdge(orgIdx, destIdx); ok {
			m.markSegment(h, orgIdx, destIdx)
			return nil
		}
	}
	mid := r2.Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
	midIdx := m.AppendSteinerPoint(mid)
	if err := m.InsertSegmentConforming(orgIdx, midIdx); err != nil {
		return err
	}
	return m.InsertSegmentConforming(midIdx, destIdx)
}

// segmentEncroachedOrCrossing reports whether any live mesh vertex other
// than the segment's own endpoints lies strictly inside the diametral
// circle of pa-pb, or whether any existing subsegment properly crosses
// it — either condition means pa-pb cannot be inserted directly.
func (m *Mesh) segmentEncroachedOrCrossing(pa, pb r2.Point) bool {
	center := r2.Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
	radius2 := (pb.X-pa.X)*(pb.X-pa.X)/4 + (pb.Y-pa.Y)*(pb.Y-pa.Y)/4
	for _, p := range m.Points {
		if p.Point == pa || p.Point == pb {
			continue
		}
		dx, dy := p.X-center.X, p.Y-center.Y
		if dx*dx+dy*dy < radius2-1e-12 {
			return true
		}
	}
	for i := range m.subs {
		if !m.subs[i].live {
			continue
		}
		s := &m.subs[i]
		op, dp := m.Points[s.org].Point, m.Points[s.dest].Point
		if op == pa || op == pb || dp == pa || dp == pb {
			continue
		}
		if segmentsCross(pa, pb, op, dp) {
			return true
		}
	}
	return false
}
