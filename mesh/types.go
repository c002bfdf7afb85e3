// Package mesh implements the arena-allocated triangle mesh, its
// primitive edge operators, point location, initial Delaunay
// construction, segment/hole enforcement and Ruppert quality refinement.
// Navigation goes through the org/dest/apex/sym/lnext/lprev/onext/oprev
// operators in handle.go; the low-level edits (Flip, construction,
// refinement scans) also read and write triangle slots by raw index.
//
// The arena discipline (indices into slices instead of pointers, with a
// single dummy sentinel standing for "outside the mesh") is grounded on
// the teacher's HEVertex/HEEdge/HEFace arenas in
// MauriceGit-Voronoi_DivideAndConquer, generalized from a half-edge
// Voronoi cell structure to a triangle-corner structure.
package mesh

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
)

// Point is a single 2D site, carrying the input index it came from so
// callers can map mesh vertices back to their original input sequence.
// Index is -1 for Steiner points introduced by conforming subdivision or
// quality refinement.
type Point struct {
	r2.Point
	Index int
}

// State is the mesh's lifecycle stage, per spec.md's state machine.
type State int

const (
	Empty State = iota
	Triangulated
	Tessellated
)

// TraceLevel controls diagnostic verbosity; it never changes results.
type TraceLevel int

const (
	TraceNone TraceLevel = iota
	TraceInfo
	TraceVertex
	TraceDebug
)

// dummyTriangle is the sentinel index representing "outside the mesh".
// It is allocated once in NewMesh and never freed or exposed through
// public iteration; IsDummy must be checked before dereferencing a
// handle's triangle.
const dummyTriangle = 0

// plus1mod3/plus2mod3 give the algebraic derivation of lnext/lprev
// without a modulo operation on every call, mirroring the smallest
// possible lookup tables Triangle-style implementations use.
var plus1mod3 = [3]uint8{1, 2, 0}
var plus2mod3 = [3]uint8{2, 0, 1}

// Handle is a directed edge: one of a triangle's three oriented edges.
// It is a value type, never an owning reference, matching spec.md's
// "handles are values" requirement. The zero Handle refers to orient 0
// of the dummy triangle; vertexEdge and subsegment bonds store it to
// mean "no handle recorded", and OutgoingHandle pairs it with a bool.
type Handle struct {
	Tri    int
	Orient uint8
}

// triangle is one arena element: three vertices in CCW order, three
// neighbor handles (one per opposite edge), three subsegment bonds (or
// -1 for an unconstrained edge), a mark Refine sets on degenerate
// triangles it leaves alone, and a generation stamp bumped when the slot
// is freed, reused or flipped. No code compares gen against a stored
// value; refinement rebuilds its queues from a full scan each round.
type triangle struct {
	p    [3]int
	n    [3]Handle
	seg  [3]int
	mark int32
	live bool
	gen  uint32
}

// subsegment is a constrained edge, overlaid on the two triangle edges it
// coincides with. endSeg holds, per endpoint, the neighboring subsegment
// continuing the same input segment chain (or -1 at a genuine segment
// endpoint), per spec.md's "segment-to-segment chaining".
type subsegment struct {
	org, dest int
	endSeg    [2]int
	bond      [2]Handle
	live      bool
}

// Mesh owns the triangle arena, subsegment arena, input point array and
// all counters and configured constraints spec.md's data model
// describes. It is not safe for concurrent use by multiple goroutines;
// distinct Mesh instances are fully independent.
type Mesh struct {
	Points []Point

	// inputCount is len(Points) as of NewMesh, before any Steiner points
	// were appended by construction, conforming subdivision or
	// refinement. Reset truncates back to this so re-triangulating the
	// same Mesh with different constraints starts from the original
	// input set, not whatever Steiner points the previous run added.
	inputCount int

	tris    []triangle
	triFree []int

	subs    []subsegment
	subFree []int

	// vertexEdge[i] is an outgoing handle from vertex i, maintained
	// incrementally so LocateVertex is O(1) instead of the broken
	// linear search the wrapper's original locate(vertexId) used.
	vertexEdge []Handle

	State State

	MinAngle       float64
	MaxArea        float64
	KeepConvexHull bool

	SegmentEndpoints [][2]int
	Holes            []Point

	hotHandle Handle

	dupAdvisories []string

	generation uint32

	Log   golog.Logger
	Trace TraceLevel
}

// NewMesh builds an empty mesh over the given input points. Points are
// copied and assigned sequential input indices 0..len(pts)-1.
func NewMesh(pts []r2.Point, logger golog.Logger) *Mesh {
	if logger == nil {
		logger = golog.Global()
	}
	m := &Mesh{
		Log: logger,
	}
	m.Points = make([]Point, len(pts))
	for i, p := range pts {
		m.Points[i] = Point{Point: p, Index: i}
	}
	m.inputCount = len(pts)
	m.vertexEdge = make([]Handle, len(pts))
	// Slot 0 of the triangle arena is the eternal dummy triangle: all
	// three of its vertex slots are the invalid index -1 and it is
	// never marked live, so IsDummy(h) is simply h.Tri == dummyTriangle.
	m.tris = append(m.tris, triangle{p: [3]int{-1, -1, -1}, seg: [3]int{-1, -1, -1}})
	return m
}

// Reset discards the current triangulation, releasing all triangle and
// subsegment allocations, and returns the mesh to the Empty state. It is
// called implicitly at the start of every triangulate/tessellate call,
// per spec.md 4.9.
func (m *Mesh) Reset() {
	m.tris = m.tris[:1]
	m.triFree = m.triFree[:0]
	m.subs = m.subs[:0]
	m.subFree = m.subFree[:0]
	m.Points = m.Points[:m.inputCount]
	m.vertexEdge = make([]Handle, len(m.Points))
	m.hotHandle = Handle{}
	m.dupAdvisories = nil
	m.State = Empty
	m.generation++
}

// Advisories reports which input indices were collapsed as duplicates
// during construction.
func (m *Mesh) Advisories() []string { return m.dupAdvisories }

func (m *Mesh) logf(level TraceLevel, format string, args ...interface{}) {
	if m.Trace < level || m.Log == nil {
		return
	}
	switch {
	case level >= TraceDebug:
		m.Log.Debugf(format, args...)
	default:
		m.Log.Infof(format, args...)
	}
}

func (m *Mesh) tri(i int) *triangle { return &m.tris[i] }

func (m *Mesh) allocTriangle() int {
	if n := len(m.triFree); n > 0 {
		idx := m.triFree[n-1]
		m.triFree = m.triFree[:n-1]
		g := m.tris[idx].gen
		m.tris[idx] = triangle{seg: [3]int{-1, -1, -1}, live: true, gen: g + 1}
		return idx
	}
	m.tris = append(m.tris, triangle{seg: [3]int{-1, -1, -1}, live: true})
	return len(m.tris) - 1
}

func (m *Mesh) freeTriangle(i int) {
	m.tris[i].live = false
	m.tris[i].gen++
	m.triFree = append(m.triFree, i)
}

func (m *Mesh) allocSubsegment() int {
	if n := len(m.subFree); n > 0 {
		idx := m.subFree[n-1]
		m.subFree = m.subFree[:n-1]
		m.subs[idx] = subsegment{endSeg: [2]int{-1, -1}, live: true}
		return idx
	}
	m.subs = append(m.subs, subsegment{endSeg: [2]int{-1, -1}, live: true})
	return len(m.subs) - 1
}

// IsDummy reports whether h refers to the sentinel exterior triangle.
func (m *Mesh) IsDummy(h Handle) bool { return h.Tri == dummyTriangle }

// NumTriangles counts the live, non-dummy triangles.
func (m *Mesh) NumTriangles() int {
	n := 0
	for i := 1; i < len(m.tris); i++ {
		if m.tris[i].live {
			n++
		}
	}
	return n
}

// NumSubsegments counts the live subsegments.
func (m *Mesh) NumSubsegments() int {
	n := 0
	for i := range m.subs {
		if m.subs[i].live {
			n++
		}
	}
	return n
}

// NumVertices counts the input points plus any Steiner points appended
// by conforming subdivision or refinement.
func (m *Mesh) NumVertices() int { return len(m.Points) }

// NumHoles reports the number of configured hole markers.
func (m *Mesh) NumHoles() int { return len(m.Holes) }

// NumEdges returns the number of distinct undirected edges in the
// current triangulation, using Euler's formula for a planar subdivision
// with T triangles and H hull edges: E = (3T + H) / 2.
func (m *Mesh) NumEdges() int {
	t := m.NumTriangles()
	h := m.HullEdgeCount()
	return (3*t + h) / 2
}

// HullEdgeCount counts triangle edges bonded to the dummy triangle.
func (m *Mesh) HullEdgeCount() int {
	n := 0
	for i := 1; i < len(m.tris); i++ {
		if !m.tris[i].live {
			continue
		}
		for o := 0; o < 3; o++ {
			if m.tris[i].n[o].Tri == dummyTriangle {
				n++
			}
		}
	}
	return n
}

// requireState returns a StateViolation error unless the mesh is in one
// of the given acceptable states.
func (m *Mesh) requireState(op string, want ...State) error {
	for _, s := range want {
		if m.State == s {
			return nil
		}
	}
	return tpperrors.Newf(tpperrors.StateViolation, "%s: mesh in state %v", op, m.State)
}

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Triangulated:
		return "Triangulated"
	case Tessellated:
		return "Tessellated"
	default:
		return "Unknown"
	}
}
