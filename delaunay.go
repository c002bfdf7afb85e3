// Package tpp implements a 2D Delaunay/constrained-Delaunay/conforming-
// Delaunay triangulation engine with Ruppert quality refinement and
// Voronoi dual extraction, fronted by the Delaunay façade type mirroring
// Triangle++'s tpp::Delaunay wrapper (see original_source/).
package tpp

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/mesh"
)

// defaultMinAngle is the minimum-angle target Triangulate(quality=true)
// enforces whenever the configured angle is zero or below (SetMinAngle
// never called, or called with degrees <= 0), matching the
// wrapper's own "enforce minimal angle (default: 20°)" contract
// (original_source/source/tpp_interface.hpp); unlike angle, area has no
// default and stays unconstrained until SetMaxArea is called.
const defaultMinAngle = 20 * math.Pi / 180

// TraceLevel re-exports mesh.TraceLevel at the façade surface.
type TraceLevel = mesh.TraceLevel

const (
	TraceNone   = mesh.TraceNone
	TraceInfo   = mesh.TraceInfo
	TraceVertex = mesh.TraceVertex
	TraceDebug  = mesh.TraceDebug
)

// Point is a 2D input site carrying its original input index.
type Point = mesh.Point

// ConstructionStrategy selects the initial-triangulation algorithm.
type ConstructionStrategy = mesh.ConstructionStrategy

const (
	StrategyDivideAndConquer = mesh.StrategyDivideAndConquer
	StrategyIncremental      = mesh.StrategyIncremental
)

// Delaunay is the top-level façade: build it from a point set, configure
// constraints with the Set* methods, then call Triangulate,
// TriangulateConforming or Tessellate.
type Delaunay struct {
	m *mesh.Mesh

	strategy     ConstructionStrategy
	segmentPairs [][2]int
	holePoints   []r2.Point
	voronoi      *voronoiCache

	// strictAngle selects CheckMinAngle's acceptance mode ahead of
	// refinement: strict requires the guaranteed-termination threshold,
	// relaxed (the default) also takes the probably-terminates
	// threshold. Mirrors the wrapper's checkConstraintsOpt(relaxed),
	// which every one of its own call sites invokes with relaxed=true.
	strictAngle bool
}

type voronoiCache struct {
	vertices []r2.Point
	edges    []voronoiEdgeInternal
}

// New creates a Delaunay engine over pts, in the Empty state.
func New(pts []r2.Point, opts ...Option) *Delaunay {
	var logger golog.Logger
	for _, o := range opts {
		if o.logger != nil {
			logger = o.logger
		}
	}
	d := &Delaunay{m: mesh.NewMesh(pts, logger)}
	d.m.Reset()
	return d
}

// Option configures a Delaunay at construction time.
type Option struct {
	logger golog.Logger
}

// WithLogger supplies a golog.Logger for trace output; the default is
// golog.Global.
func WithLogger(l golog.Logger) Option { return Option{logger: l} }

// SetMinAngle configures the Ruppert minimum-angle target, in degrees;
// degrees <= 0 clears the configured target, after which
// Triangulate(quality=true) falls back to defaultMinAngle (20°).
func (d *Delaunay) SetMinAngle(degrees float64) { d.m.MinAngle = degrees * math.Pi / 180 }

// SetMaxArea configures the Ruppert maximum-triangle-area target; area
// <= 0 removes the constraint.
func (d *Delaunay) SetMaxArea(area float64) { d.m.MaxArea = area }

// SetStrictAngleAcceptance selects how Triangulate(quality=true) judges
// the configured MinAngle before refining: strict accepts only the
// guaranteed-termination threshold, relaxed (the default) also accepts
// the probably-terminates threshold. Either way, an angle beyond both
// is rejected with ConstraintOutOfRange before refinement begins.
func (d *Delaunay) SetStrictAngleAcceptance(strict bool) { d.strictAngle = strict }

// SetConstructionStrategy selects the initial-triangulation algorithm;
// the default is StrategyDivideAndConquer.
func (d *Delaunay) SetConstructionStrategy(s ConstructionStrategy) { d.strategy = s }

// UseConvexHullWithSegments controls concavity removal: when use is
// true, RemoveHolesAndConcavities never floods in from the convex hull,
// so only explicit hole markers remove triangles and the full hull
// survives regardless of the configured segments. CheckConstraintsOpt
// does not read this flag.
func (d *Delaunay) UseConvexHullWithSegments(use bool) { d.m.KeepConvexHull = use }

// SetSegmentConstraintIndices configures constrained edges by input
// point index pairs.
func (d *Delaunay) SetSegmentConstraintIndices(idx [][2]int) error {
	if err := d.m.ValidateSegments(idx, len(d.m.Points)); err != nil {
		return err
	}
	d.segmentPairs = idx
	return nil
}

// SetSegmentConstraint configures constrained edges by point value
// pairs, resolving each point to its input index by exact coordinate
// match.
func (d *Delaunay) SetSegmentConstraint(pairs [][2]r2.Point) error {
	byCoord := make(map[r2.Point]int, len(d.m.Points))
	for _, p := range d.m.Points {
		byCoord[p.Point] = p.Index
	}
	idx := make([][2]int, len(pairs))
	for i, pr := range pairs {
		a, ok1 := byCoord[pr[0]]
		b, ok2 := byCoord[pr[1]]
		if !ok1 || !ok2 {
			return tpperrors.Newf(tpperrors.InvalidInput, "segment endpoint %v/%v not found in input point set", pr[0], pr[1])
		}
		idx[i] = [2]int{a, b}
	}
	return d.SetSegmentConstraintIndices(idx)
}

// SetHolesConstraint configures hole markers: any point whose containing
// triangle should be removed, along with the concavity it sits in.
func (d *Delaunay) SetHolesConstraint(markers []r2.Point) error {
	d.holePoints = markers
	return nil
}

// Triangulate builds the constrained (if segments are configured) or
// unconstrained Delaunay triangulation, optionally refining to quality.
func (d *Delaunay) Triangulate(quality bool, trace TraceLevel) error {
	return d.triangulate(quality, trace, false)
}

// TriangulateConforming is Triangulate using conforming (midpoint-split)
// segment insertion instead of exact CDT insertion.
func (d *Delaunay) TriangulateConforming(quality bool, trace TraceLevel) error {
	return d.triangulate(quality, trace, true)
}

func (d *Delaunay) triangulate(quality bool, trace TraceLevel, conforming bool) error {
	d.m.Reset()
	d.m.Trace = trace
	d.m.Holes = nil
	for _, h := range d.holePoints {
		d.m.Holes = append(d.m.Holes, mesh.Point{Point: h, Index: -1})
	}
	d.m.SegmentEndpoints = d.segmentPairs

	if err := d.m.BuildInitial(d.strategy); err != nil {
		return err
	}
	for _, pr := range d.segmentPairs {
		var err error
		if conforming {
			err = d.m.InsertSegmentConforming(pr[0], pr[1])
		} else {
			err = d.m.InsertSegmentCDT(pr[0], pr[1])
		}
		if err != nil {
			return err
		}
	}
	if len(d.m.Holes) > 0 || len(d.segmentPairs) > 0 {
		d.m.RemoveHolesAndConcavities()
	}
	if quality {
		if d.m.MinAngle <= 0 {
			d.m.MinAngle = defaultMinAngle
		}
		if !d.m.AcceptMinAngle(!d.strictAngle) {
			guaranteedRad, possibleRad := mesh.MinAngleBoundaries()
			return tpperrors.Newf(tpperrors.ConstraintOutOfRange,
				"min angle %.2f° exceeds the termination-sanity threshold (guaranteed <= %.1f°, possible <= %.1f°)",
				d.m.MinAngle*180/math.Pi, guaranteedRad*180/math.Pi, possibleRad*180/math.Pi)
		}
		if err := d.m.Refine(); err != nil {
			return err
		}
	}
	d.voronoi = nil
	return nil
}

// Tessellate triangulates (per useConforming) and then extracts the
// Voronoi dual, leaving the mesh in the Tessellated state.
func (d *Delaunay) Tessellate(useConforming bool, trace TraceLevel) error {
	var err error
	if useConforming {
		err = d.TriangulateConforming(false, trace)
	} else {
		err = d.Triangulate(false, trace)
	}
	if err != nil {
		return err
	}
	return d.extractVoronoi()
}

// NumTriangles, NumEdges, NumVertices, HullSize, NumHoles,
// NumVoronoiPoints and NumVoronoiEdges report the current mesh's counts.
func (d *Delaunay) NumTriangles() int { return d.m.NumTriangles() }
func (d *Delaunay) NumEdges() int     { return d.m.NumEdges() }
func (d *Delaunay) NumVertices() int  { return d.m.NumVertices() }
func (d *Delaunay) HullSize() int     { return d.m.HullEdgeCount() }
func (d *Delaunay) NumHoles() int     { return d.m.NumHoles() }
func (d *Delaunay) NumVoronoiPoints() int {
	if d.voronoi == nil {
		return 0
	}
	return len(d.voronoi.vertices)
}
func (d *Delaunay) NumVoronoiEdges() int {
	if d.voronoi == nil {
		return 0
	}
	return len(d.voronoi.edges)
}

// Advisories reports which input indices were collapsed as duplicates.
func (d *Delaunay) Advisories() []string { return d.m.Advisories() }

// CheckMinAngle is the a-priori sanity check on the configured
// MinAngle: guaranteed reports whether refinement is mathematically
// guaranteed to terminate at that angle, possible whether it is merely
// highly likely to. It says nothing about the actual mesh; see
// MeetsMinAngle for that.
func (d *Delaunay) CheckMinAngle() (guaranteed, possible bool) { return d.m.CheckMinAngle() }

// MeetsMinAngle reports whether every live triangle currently meets
// the configured MinAngle — a post-hoc check of the actual mesh.
func (d *Delaunay) MeetsMinAngle() bool { return d.m.MeetsMinAngle() }

// CheckConstraints reports whether every configured segment is present
// in the mesh.
func (d *Delaunay) CheckConstraints() bool { return d.m.CheckConstraints(d.segmentPairs) }

// CheckConstraintsOpt is CheckConstraints, tolerating a missing segment
// when either of its endpoints has no incident triangle in the mesh.
func (d *Delaunay) CheckConstraintsOpt() bool {
	return d.m.CheckConstraintsOpt(d.segmentPairs)
}

// MinAngleBoundaries returns the two static Ruppert termination
// thresholds, in radians. It is a package-level function rather than a
// method: the thresholds are fixed constants independent of any mesh,
// mirroring the wrapper's own static getMinAngleBoundaries.
func MinAngleBoundaries() (guaranteed, possible float64) { return mesh.MinAngleBoundaries() }

// BoundingBox returns the input point set's axis-aligned bounding box,
// computed by orb's own MultiPoint bound-merging rather than a
// hand-rolled min/max scan.
func (d *Delaunay) BoundingBox() (min, max r2.Point) {
	if len(d.m.Points) == 0 {
		return r2.Point{}, r2.Point{}
	}
	mp := make(orb.MultiPoint, len(d.m.Points))
	for i, p := range d.m.Points {
		mp[i] = orb.Point{p.X, p.Y}
	}
	b := mp.Bound()
	return r2.Point{X: b.Min.X(), Y: b.Min.Y()}, r2.Point{X: b.Max.X(), Y: b.Max.Y()}
}
