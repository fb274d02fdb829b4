// Package triangulator implements an incremental Delaunay triangulation
// over an integer point set. The triangulation is seeded with the four
// corners of a rectangular domain, so the resulting mesh always covers
// the full rectangle. Every node carries the caller's stable id, which
// makes it possible to express the output triangles as index triples
// into the caller's point list.
package triangulator

// Point defines a landmark submitted for triangulation. ID is the
// caller's stable index for the vertex and is carried through into the
// output triangles untouched.
type Point struct {
	X, Y int
	ID   int
}

// Node defines a triangulation vertex.
type Node struct {
	X, Y int
	ID   int
}

// circle describes a triangle's circumcircle. The radius is kept
// squared so the in-circle test needs no square root.
type circle struct {
	x, y, radius float64
}

func newNode(x, y, id int) Node {
	return Node{X: x, Y: y, ID: id}
}

// isEq checks if two nodes occupy the same position.
func (n Node) isEq(p Node) bool {
	return n.X == p.X && n.Y == p.Y
}

// edge is one undirected triangle side.
type edge struct {
	nodes [2]Node
}

func newEdge(p0, p1 Node) edge {
	return edge{nodes: [2]Node{p0, p1}}
}

// isEq checks if two edges connect the same pair of nodes, in either
// direction.
func (e edge) isEq(other edge) bool {
	na0, na1 := e.nodes[0], e.nodes[1]
	nb0, nb1 := other.nodes[0], other.nodes[1]

	return (na0.isEq(nb0) && na1.isEq(nb1)) ||
		(na0.isEq(nb1) && na1.isEq(nb0))
}

// Triangle holds the three vertices of one output triangle together
// with its circumcircle.
type Triangle struct {
	Nodes  [3]Node
	edges  [3]edge
	circle circle
}

// newTriangle creates a triangle and computes its circumcircle. ok is
// false when the three nodes are collinear and no circumcircle exists.
func newTriangle(p0, p1, p2 Node) (Triangle, bool) {
	t := Triangle{
		Nodes: [3]Node{p0, p1, p2},
		edges: [3]edge{newEdge(p0, p1), newEdge(p1, p2), newEdge(p2, p0)},
	}

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	det := 2.0 * float64(ax*by-ay*bx)
	if det == 0 {
		return t, false
	}

	m := p1.X*p1.X - p0.X*p0.X + p1.Y*p1.Y - p0.Y*p0.Y
	u := p2.X*p2.X - p0.X*p0.X + p2.Y*p2.Y - p0.Y*p0.Y
	s := 1.0 / det

	t.circle.x = float64((p2.Y-p0.Y)*m+(p0.Y-p1.Y)*u) * s
	t.circle.y = float64((p0.X-p2.X)*m+(p1.X-p0.X)*u) * s

	dx := float64(p0.X) - t.circle.x
	dy := float64(p0.Y) - t.circle.y
	t.circle.radius = dx*dx + dy*dy

	return t, true
}

// Delaunay defines the main components for the triangulation.
type Delaunay struct {
	width     int
	height    int
	triangles []Triangle
}

// Init resets the triangulation to the two triangles spanning the
// rectangular domain. The corner nodes get the ids 0 to 3 in the order
// (0,0), (w,0), (0,h), (w,h).
func (d *Delaunay) Init(width, height int) *Delaunay {
	d.width = width
	d.height = height

	p0 := newNode(0, 0, 0)
	p1 := newNode(width, 0, 1)
	p2 := newNode(0, height, 2)
	p3 := newNode(width, height, 3)

	t0, _ := newTriangle(p0, p3, p2)
	t1, _ := newTriangle(p0, p1, p3)
	d.triangles = []Triangle{t0, t1}

	return d
}

// Insert adds each point in order to the triangulation. Insertion is
// the classic flip-free incremental scheme: collect every triangle
// whose circumcircle contains the new point, keep the boundary polygon
// of that cavity and fan it out from the new point. Points must lie
// inside the domain rectangle.
func (d *Delaunay) Insert(points []Point) *Delaunay {
	for _, pt := range points {
		var (
			edges   []edge
			temps   []Triangle
			polygon []edge
		)

		px, py := float64(pt.X), float64(pt.Y)
		for _, t := range d.triangles {
			dx := t.circle.x - px
			dy := t.circle.y - py

			if dx*dx+dy*dy < t.circle.radius {
				edges = append(edges, t.edges[0], t.edges[1], t.edges[2])
			} else {
				temps = append(temps, t)
			}
		}

		// An edge shared by two removed triangles is interior to the
		// cavity; only the singly-visited edges form its boundary.
	edgesLoop:
		for _, e := range edges {
			for j, p := range polygon {
				if e.isEq(p) {
					polygon = append(polygon[:j], polygon[j+1:]...)
					continue edgesLoop
				}
			}
			polygon = append(polygon, e)
		}

		node := newNode(pt.X, pt.Y, pt.ID)
		for _, e := range polygon {
			// A point exactly on the cavity boundary produces a
			// collinear triple; fanning it out would divide by zero.
			if t, ok := newTriangle(e.nodes[0], e.nodes[1], node); ok {
				temps = append(temps, t)
			}
		}
		d.triangles = temps
	}

	return d
}

// Triangles returns the current triangle list.
func (d *Delaunay) Triangles() []Triangle {
	return d.triangles
}
