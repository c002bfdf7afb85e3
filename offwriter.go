package tpp

import (
	"fmt"
	"io"

	tpperrors "github.com/2B-pencil/TrianglePP/errors"
	"github.com/2B-pencil/TrianglePP/mesh"
)

func wrapIOError(err error) error { return tpperrors.Wrap(tpperrors.IOError, err, "writing OFF export") }

// WriteOFF writes the current triangulation to w in Geomview's ASCII OFF
// format, a fixed, simple grammar needing nothing beyond flat
// vertex/face lists.
func (d *Delaunay) WriteOFF(w io.Writer) error {
	tris := d.m.LiveTriangleIDs()
	if _, err := fmt.Fprintf(w, "OFF\n%d %d 0\n", d.m.NumVertices(), len(tris)); err != nil {
		return wrapIOError(err)
	}
	for _, p := range d.m.Points {
		if _, err := fmt.Fprintf(w, "%g %g 0\n", p.X, p.Y); err != nil {
			return wrapIOError(err)
		}
	}
	for _, t := range tris {
		h := FaceHandle{d, mesh.Handle{Tri: t}}
		if _, err := fmt.Fprintf(w, "3 %d %d %d\n", h.Org(), h.Dest(), h.Apex()); err != nil {
			return wrapIOError(err)
		}
	}
	return nil
}
