package morph

import (
	"image"
	"math"

	"github.com/whoisashish/Image-Transition/triangulator"
	"github.com/whoisashish/Image-Transition/utils"
)

// Point is one landmark of a mesh. Deleted is a transient flag: a
// flagged point is excluded from the effective point list (and so from
// triangulation) while still occupying its slot in the point list, so
// indexes stay stable until the deletion commits.
type Point struct {
	X, Y    int
	Deleted bool
}

// Triangulator turns the effective point list of a mesh into triangles
// expressed as index triples into that same list. The first four
// entries of the list are always the domain corners. Implementations
// must be deterministic: the same point list yields the same triples in
// the same order on every call, since the triples double as the
// correspondence key between paired meshes.
type Triangulator interface {
	Triangulate(width, height int, points []image.Point) [][3]int
}

// delaunayTriangulator adapts the triangulator package to the
// Triangulator interface.
type delaunayTriangulator struct{}

func (delaunayTriangulator) Triangulate(width, height int, points []image.Point) [][3]int {
	// The Delaunay seed already contains the four corners, so only the
	// landmarks are inserted; their ids pick up after the corner ids.
	landmarks := make([]triangulator.Point, 0, len(points)-numCorners)
	for i, p := range points[numCorners:] {
		landmarks = append(landmarks, triangulator.Point{X: p.X, Y: p.Y, ID: numCorners + i})
	}

	d := new(triangulator.Delaunay).Init(width, height)
	tris := d.Insert(landmarks).Triangles()

	out := make([][3]int, len(tris))
	for i, t := range tris {
		out[i] = [3]int{t.Nodes[0].ID, t.Nodes[1].ID, t.Nodes[2].ID}
	}
	return out
}

// numCorners is the number of implicit domain-corner points prepended
// to every effective point list.
const numCorners = 4

// Mesh owns one image's landmark points over a fixed rectangular
// domain. The four domain corners are implicit: they are always part
// of the triangulated point set, always first in index order, so every
// triangulation covers the full rectangle with no exposed background.
type Mesh struct {
	width, height   int
	deleteThreshold int
	points          []Point
	tri             Triangulator
}

// NewMesh creates an empty mesh over a width x height domain, using
// the built-in Delaunay triangulator.
func NewMesh(width, height int) *Mesh {
	return &Mesh{
		width:           width,
		height:          height,
		deleteThreshold: DefaultDeleteThreshold,
		tri:             delaunayTriangulator{},
	}
}

// SetTriangulator swaps in a different triangulation algorithm.
func (m *Mesh) SetTriangulator(t Triangulator) {
	m.tri = t
}

// Width returns the domain width.
func (m *Mesh) Width() int { return m.width }

// Height returns the domain height.
func (m *Mesh) Height() int { return m.height }

// NumPoints returns the number of landmark points, flagged ones
// included.
func (m *Mesh) NumPoints() int { return len(m.points) }

// Points returns the landmark point list. The slice is shared; callers
// must treat it as read only.
func (m *Mesh) Points() []Point { return m.points }

// Point returns the landmark at index i.
func (m *Mesh) Point(i int) (Point, error) {
	if i < 0 || i >= len(m.points) {
		return Point{}, ErrIndexOutOfRange
	}
	return m.points[i], nil
}

// EffectivePoints returns the four domain corners in the order (0,0),
// (w,0), (0,h), (w,h), followed by every landmark not flagged for
// deletion, in insertion order.
func (m *Mesh) EffectivePoints() []image.Point {
	pts := make([]image.Point, 0, numCorners+len(m.points))
	pts = append(pts,
		image.Pt(0, 0),
		image.Pt(m.width, 0),
		image.Pt(0, m.height),
		image.Pt(m.width, m.height),
	)
	for _, p := range m.points {
		if !p.Deleted {
			pts = append(pts, image.Pt(p.X, p.Y))
		}
	}
	return pts
}

// Triangles triangulates the effective point list and returns the
// result as index triples into it.
func (m *Mesh) Triangles() [][3]int {
	pts := m.EffectivePoints()
	return m.tri.Triangulate(m.width, m.height, pts)
}

// TriangleCoords returns the triangulation with every vertex resolved
// to its coordinates.
func (m *Mesh) TriangleCoords() [][3]image.Point {
	pts := m.EffectivePoints()
	tris := m.tri.Triangulate(m.width, m.height, pts)

	out := make([][3]image.Point, len(tris))
	for i, t := range tris {
		out[i] = [3]image.Point{pts[t[0]], pts[t[1]], pts[t[2]]}
	}
	return out
}

// Edges returns every distinct undirected triangle side as an index
// pair into the effective point list, canonicalized as (min,max). A
// side shared by two triangles appears once. The order follows the
// first visit over the triangle list, so it is as deterministic as the
// triangulation itself.
func (m *Mesh) Edges() [][2]int {
	var (
		edges [][2]int
		seen  = map[[2]int]struct{}{}
	)
	for _, t := range m.Triangles() {
		sides := [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}}
		for _, s := range sides {
			key := [2]int{utils.Min(s[0], s[1]), utils.Max(s[0], s[1])}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}

// AddPoint rounds the coordinate to the nearest integer and appends a
// new landmark. Appending (rather than inserting) is what keeps the
// index alignment across paired meshes cheap to maintain.
func (m *Mesh) AddPoint(x, y float64) int {
	m.points = append(m.points, Point{
		X: int(math.Round(x)),
		Y: int(math.Round(y)),
	})
	return len(m.points) - 1
}

// RemovePointAt physically deletes the landmark at index i. Every
// subsequent landmark shifts down by one; the paired mesh must mirror
// the removal by index.
func (m *Mesh) RemovePointAt(i int) error {
	if i < 0 || i >= len(m.points) {
		return ErrIndexOutOfRange
	}
	m.points = append(m.points[:i], m.points[i+1:]...)
	return nil
}

// MarkForDeletion flags the landmark at index i so it drops out of the
// effective point list while still holding its slot. Used to visually
// detach a point being dragged off the canvas before the deletion
// commits.
func (m *Mesh) MarkForDeletion(i int) error {
	if i < 0 || i >= len(m.points) {
		return ErrIndexOutOfRange
	}
	m.points[i].Deleted = true
	return nil
}

// MovePoint replaces the landmark's coordinate, clamped to the domain
// rectangle. Dragging the point more than the deletion threshold above
// the domain's top edge flags it for deletion instead of clamping;
// marked reports whether that happened, so the caller can commit the
// deletion when the gesture ends.
func (m *Mesh) MovePoint(i int, x, y float64) (marked bool, err error) {
	if i < 0 || i >= len(m.points) {
		return false, ErrIndexOutOfRange
	}
	if y < -float64(m.deleteThreshold) {
		m.points[i].Deleted = true
		return true, nil
	}
	m.points[i].X = utils.Clamp(int(math.Round(x)), 0, m.width)
	m.points[i].Y = utils.Clamp(int(math.Round(y)), 0, m.height)
	m.points[i].Deleted = false
	return false, nil
}
