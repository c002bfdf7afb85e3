package tpp

import (
	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/mesh"
	"github.com/2B-pencil/TrianglePP/voronoi"
)

// FaceHandle is a cursor onto one directed triangle edge, the façade's
// equivalent of tpp::faceIterator. It is a value type; copying it is
// cheap and safe.
type FaceHandle struct {
	d *Delaunay
	h mesh.Handle
}

// Empty reports whether the handle is the zero value (no face).
func (f FaceHandle) Empty() bool { return f.d == nil }

// IsDummy reports whether the handle refers to the sentinel exterior
// triangle (only possible transiently; callers normally never see one).
func (f FaceHandle) IsDummy() bool { return f.d == nil || f.d.m.IsDummy(f.h) }

// Org, Dest, Apex return each corner's position in the mesh's point
// array: input points keep their input index there, and Steiner points
// sit at positions past the input. They do not return -1 for a Steiner
// point; the corner's Point.Index (via OrgPoint etc.) is -1 for one.
func (f FaceHandle) Org() int  { return f.d.m.Org(f.h) }
func (f FaceHandle) Dest() int { return f.d.m.Dest(f.h) }
func (f FaceHandle) Apex() int { return f.d.m.Apex(f.h) }

// OrgPoint, DestPoint, ApexPoint resolve each corner to coordinates.
func (f FaceHandle) OrgPoint() Point  { return f.d.m.OrgPoint(f.h) }
func (f FaceHandle) DestPoint() Point { return f.d.m.DestPoint(f.h) }
func (f FaceHandle) ApexPoint() Point { return f.d.m.ApexPoint(f.h) }

// Sym, Lnext, Lprev, Onext, Oprev mirror mesh.Mesh's primitive operators.
func (f FaceHandle) Sym() FaceHandle   { return FaceHandle{f.d, f.d.m.Sym(f.h)} }
func (f FaceHandle) Lnext() FaceHandle { return FaceHandle{f.d, f.d.m.Lnext(f.h)} }
func (f FaceHandle) Lprev() FaceHandle { return FaceHandle{f.d, f.d.m.Lprev(f.h)} }
func (f FaceHandle) Onext() FaceHandle { return FaceHandle{f.d, f.d.m.Onext(f.h)} }
func (f FaceHandle) Oprev() FaceHandle { return FaceHandle{f.d, f.d.m.Oprev(f.h)} }

// Area returns the face's triangle area.
func (f FaceHandle) Area() float64 { return f.d.m.Area(f.h) }

// IsSegment reports whether this directed edge is a constrained
// subsegment.
func (f FaceHandle) IsSegment() bool { return f.d.m.IsSegment(f.h) }

// Vertices iterates every input and Steiner point as (index, Point).
// Go 1.21 (the module's floor) predates range-over-func, so this is the
// a plain yield-callback function rather than an iter.Seq2.
func (d *Delaunay) Vertices(yield func(int, Point) bool) {
	for i, p := range d.m.Points {
		if !yield(i, p) {
			return
		}
	}
}

// Faces iterates one FaceHandle per live triangle (an arbitrary
// orientation of each).
func (d *Delaunay) Faces(yield func(FaceHandle) bool) {
	for _, t := range d.m.LiveTriangleIDs() {
		if !yield(FaceHandle{d, mesh.Handle{Tri: t}}) {
			return
		}
	}
}

// LocateVertex returns a FaceHandle on any outgoing edge from vertex id.
func (d *Delaunay) LocateVertex(id int) (FaceHandle, error) {
	h, ok := d.m.LocateVertex(id)
	if !ok {
		return FaceHandle{}, tpperrors.Newf(tpperrors.InvalidInput, "vertex %d has no incident triangle", id)
	}
	return FaceHandle{d, h}, nil
}

// TrianglesAroundVertex returns, in CCW order, one FaceHandle per
// triangle incident to vertex id.
func (d *Delaunay) TrianglesAroundVertex(id int) []FaceHandle {
	hs := d.m.TrianglesAroundVertex(id)
	out := make([]FaceHandle, len(hs))
	for i, h := range hs {
		out[i] = FaceHandle{d, h}
	}
	return out
}

// voronoiEdgeInternal is the façade's flattened copy of voronoi.Edge,
// cached by extractVoronoi so VoronoiVertices/VoronoiEdges don't
// re-extract on every call.
type voronoiEdgeInternal = voronoi.Edge

func (d *Delaunay) extractVoronoi() error {
	diagram, err := voronoi.Extract(d.m)
	if err != nil {
		return err
	}
	d.voronoi = &voronoiCache{vertices: diagram.Vertices, edges: diagram.Edges}
	d.m.State = mesh.Tessellated
	return nil
}

// VoronoiVertex is one Voronoi diagram vertex (a Delaunay triangle's
// circumcenter).
type VoronoiVertex struct {
	Point r2.Point
}

// VoronoiVertices iterates the extracted Voronoi vertices; it yields
// nothing if Tessellate has not been called.
func (d *Delaunay) VoronoiVertices(yield func(int, VoronoiVertex) bool) {
	if d.voronoi == nil {
		return
	}
	for i, p := range d.voronoi.vertices {
		if !yield(i, VoronoiVertex{Point: p}) {
			return
		}
	}
}

// VoronoiEdge is one Voronoi diagram edge: Start is always set; End is
// valid only when Finite is true, otherwise Normal gives the outward ray
// direction from Start.
type VoronoiEdge struct {
	Start    r2.Point
	End      r2.Point
	Finite   bool
	Normal   r2.Point
}

// VoronoiEdges iterates the extracted Voronoi edges.
func (d *Delaunay) VoronoiEdges(yield func(int, VoronoiEdge) bool) {
	if d.voronoi == nil {
		return
	}
	for i, e := range d.voronoi.edges {
		ve := VoronoiEdge{Start: e.A, Finite: !e.Infinite}
		if e.Infinite {
			ve.Normal = e.Ray
		} else {
			ve.End = e.B
		}
		if !yield(i, ve) {
			return
		}
	}
}
