// Package voronoi extracts the planar-dual Voronoi tessellation from a
// finished Delaunay mesh: one vertex per triangle (its circumcenter) and
// one edge per Delaunay edge, finite between two triangles or
// semi-infinite along the convex hull. Grounded on the teacher's
// ConvexHull/PerpendicularBisector/Cross treatment of cell boundaries in
// MauriceGit-Voronoi_DivideAndConquer's voronoi.go and Vector/vector.go,
// adapted from a direct cell-construction algorithm to dual extraction
// from an already-built triangle mesh (spec.md C9).
package voronoi

import (
	"github.com/golang/geo/r2"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/mesh"
)

// Edge is one Voronoi edge. For a finite edge, both A and B are set. For
// a semi-infinite edge (dual to a convex-hull triangulation edge), B is
// the zero value and Ray gives the outward direction from A.
type Edge struct {
	A, B     r2.Point
	Infinite bool
	Ray      r2.Point
}

// Diagram is the extracted Voronoi tessellation: one vertex per mesh
// triangle plus the set of edges dual to every mesh edge.
type Diagram struct {
	Vertices []r2.Point
	Edges    []Edge
}

// Extract builds the Voronoi dual of m's current triangulation. m must
// be in the Triangulated or Tessellated state and hole-free: Voronoi
// duality is only defined over a triangulation that covers its full
// convex hull, per spec.md 4.8.
func Extract(m *mesh.Mesh) (*Diagram, error) {
	if m.State != mesh.Triangulated && m.State != mesh.Tessellated {
		return nil, tpperrors.Newf(tpperrors.StateViolation, "voronoi.Extract: mesh not triangulated")
	}
	if m.HasConstraints() {
		return nil, tpperrors.Newf(tpperrors.StateViolation, "voronoi.Extract: mesh has constrained segments or hole markers; the Voronoi dual is only defined over a full convex hole-free triangulation")
	}

	n := m.NumTriangles()
	centers := make(map[int]r2.Point, n)
	centerIdx := make(map[int]int, n)
	d := &Diagram{}

	liveTris := m.LiveTriangleIDs()
	for _, t := range liveTris {
		c, ok := m.TriangleCircumcenter(t)
		if !ok {
			continue
		}
		centerIdx[t] = len(d.Vertices)
		centers[t] = c
		d.Vertices = append(d.Vertices, c)
	}

	seen := map[mesh.Handle]bool{}
	for _, t := range liveTris {
		for o := 0; o < 3; o++ {
			h := mesh.Handle{Tri: t, Orient: uint8(o)}
			sym := m.Sym(h)
			key := h
			if !m.IsDummy(sym) && sym.Tri < h.Tri {
				key = sym
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			if _, ok := centerIdx[t]; !ok {
				continue
			}
			a := centers[t]
			if m.IsDummy(sym) {
				// Hull edge: semi-infinite edge along the outward normal
				// of (org,dest). The mesh lies to the left of org->dest,
				// so the right-hand normal points out of the hull, even
				// when the circumcenter itself lies outside it.
				org := m.OrgPoint(h).Point
				dest := m.DestPoint(h).Point
				dir := r2.Point{X: dest.Y - org.Y, Y: org.X - dest.X}
				d.Edges = append(d.Edges, Edge{A: a, Infinite: true, Ray: dir})
				continue
			}
			if _, ok := centerIdx[sym.Tri]; !ok {
				continue
			}
			d.Edges = append(d.Edges, Edge{A: a, B: centers[sym.Tri]})
		}
	}
	return d, nil
}
