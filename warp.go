package morph

import (
	"image"
	"math"

	"github.com/whoisashish/Image-Transition/utils"
)

// Vertex is a triangle corner in continuous coordinates. Landmarks are
// integer valued, but in-between animation frames land on fractional
// positions.
type Vertex struct {
	X, Y float64
}

// Lerp returns v + t*(w - v), the per-coordinate linear interpolation
// toward w.
func (v Vertex) Lerp(w Vertex, t float64) Vertex {
	return Vertex{
		X: v.X + t*(w.X-v.X),
		Y: v.Y + t*(w.Y-v.Y),
	}
}

// Affine is a 2D affine transform in row-major form:
//
//	[ A B C ]
//	[ D E F ]
//
// where (x', y') = (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Apply transforms the point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// degenerateEps is the doubled-area threshold below which a triangle
// is treated as collinear.
const degenerateEps = 1e-9

// seamOverlap is how far, in pixels, each destination triangle is
// inflated from its centroid before rasterization. Shared edges are
// drawn by both adjacent triangles, so without overlap a hairline gap
// can show where neither triangle claims the boundary pixel. Disabled
// for now: the thin seams are an accepted limitation and inflating
// changes which triangle wins contested pixels.
const seamOverlap = 0.0

// area2 returns the doubled signed area of the triangle.
func area2(tri [3]Vertex) float64 {
	return (tri[1].X-tri[0].X)*(tri[2].Y-tri[0].Y) -
		(tri[2].X-tri[0].X)*(tri[1].Y-tri[0].Y)
}

// AffineFromTriangles solves for the unique affine transform mapping
// each vertex of src onto the same-index vertex of dst. Three point
// correspondences pin down all six coefficients. ok is false when src
// is degenerate (collinear vertices) and no such transform exists.
func AffineFromTriangles(src, dst [3]Vertex) (Affine, bool) {
	det := area2(src)
	if math.Abs(det) < degenerateEps {
		return Affine{}, false
	}

	x0, y0 := src[0].X, src[0].Y
	x1, y1 := src[1].X, src[1].Y
	x2, y2 := src[2].X, src[2].Y

	var t Affine
	t.A = (dst[0].X*(y1-y2) + dst[1].X*(y2-y0) + dst[2].X*(y0-y1)) / det
	t.B = (dst[0].X*(x2-x1) + dst[1].X*(x0-x2) + dst[2].X*(x1-x0)) / det
	t.C = dst[0].X - t.A*x0 - t.B*y0
	t.D = (dst[0].Y*(y1-y2) + dst[1].Y*(y2-y0) + dst[2].Y*(y0-y1)) / det
	t.E = (dst[0].Y*(x2-x1) + dst[1].Y*(x0-x2) + dst[2].Y*(x1-x0)) / det
	t.F = dst[0].Y - t.D*x0 - t.E*y0

	return t, true
}

// inflate pushes each vertex of tri away from the centroid by d
// pixels.
func inflate(tri [3]Vertex, d float64) [3]Vertex {
	cx := (tri[0].X + tri[1].X + tri[2].X) / 3
	cy := (tri[0].Y + tri[1].Y + tri[2].Y) / 3

	for i := range tri {
		vx, vy := tri[i].X-cx, tri[i].Y-cy
		n := math.Hypot(vx, vy)
		if n == 0 {
			continue
		}
		tri[i].X += vx / n * d
		tri[i].Y += vy / n * d
	}
	return tri
}

// WarpTriangle resamples the pixels of srcTri out of src into the
// shape of dstTri inside dst, through the affine transform determined
// by the three vertex correspondences. Pixels are traversed over
// dstTri's bounding box, inside-tested, mapped back into source space
// with the inverse transform and sampled bilinearly. A degenerate
// source or destination triangle draws nothing; drawn reports whether
// any rasterization was attempted.
func WarpTriangle(src *image.NRGBA, srcTri, dstTri [3]Vertex, dst *image.NRGBA) (drawn bool) {
	if math.Abs(area2(srcTri)) < degenerateEps {
		return false
	}
	if seamOverlap > 0 {
		dstTri = inflate(dstTri, seamOverlap)
	}
	// Inverse map: destination pixel -> source position.
	inv, ok := AffineFromTriangles(dstTri, srcTri)
	if !ok {
		return false
	}

	b := dst.Bounds()
	minX := utils.Max(b.Min.X, int(math.Floor(utils.Min(dstTri[0].X, dstTri[1].X, dstTri[2].X))))
	maxX := utils.Min(b.Max.X-1, int(math.Ceil(utils.Max(dstTri[0].X, dstTri[1].X, dstTri[2].X))))
	minY := utils.Max(b.Min.Y, int(math.Floor(utils.Min(dstTri[0].Y, dstTri[1].Y, dstTri[2].Y))))
	maxY := utils.Min(b.Max.Y-1, int(math.Ceil(utils.Max(dstTri[0].Y, dstTri[1].Y, dstTri[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if !insideTriangle(px, py, dstTri) {
				continue
			}
			sx, sy := inv.Apply(px, py)
			r, g, bl, a := sampleBilinear(src, sx-0.5, sy-0.5)

			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = bl
			dst.Pix[i+3] = a
		}
	}
	return true
}

// insideTriangle tests the point against the triangle's three edge
// functions. Points on an edge count as inside, which is what lets two
// triangles sharing an edge both claim its pixels instead of neither.
func insideTriangle(x, y float64, tri [3]Vertex) bool {
	d0 := (tri[1].X-tri[0].X)*(y-tri[0].Y) - (tri[1].Y-tri[0].Y)*(x-tri[0].X)
	d1 := (tri[2].X-tri[1].X)*(y-tri[1].Y) - (tri[2].Y-tri[1].Y)*(x-tri[1].X)
	d2 := (tri[0].X-tri[2].X)*(y-tri[2].Y) - (tri[0].Y-tri[2].Y)*(x-tri[2].X)

	hasNeg := d0 < 0 || d1 < 0 || d2 < 0
	hasPos := d0 > 0 || d1 > 0 || d2 > 0
	return !(hasNeg && hasPos)
}

// sampleBilinear reads the source at a fractional position, blending
// the four surrounding pixels. Coordinates are clamped to the image,
// so sampling at a triangle's border never reads out of bounds.
func sampleBilinear(src *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	bounds := src.Bounds()
	maxX := bounds.Max.X - 1
	maxY := bounds.Max.Y - 1

	x = utils.Clamp(x, float64(bounds.Min.X), float64(maxX))
	y = utils.Clamp(y, float64(bounds.Min.Y), float64(maxY))

	x0, y0 := int(x), int(y)
	x1 := utils.Min(x0+1, maxX)
	y1 := utils.Min(y0+1, maxY)
	fx := x - float64(x0)
	fy := y - float64(y0)

	i00 := src.PixOffset(x0, y0)
	i10 := src.PixOffset(x1, y0)
	i01 := src.PixOffset(x0, y1)
	i11 := src.PixOffset(x1, y1)

	var out [4]uint8
	for c := 0; c < 4; c++ {
		top := float64(src.Pix[i00+c])*(1-fx) + float64(src.Pix[i10+c])*fx
		bot := float64(src.Pix[i01+c])*(1-fx) + float64(src.Pix[i11+c])*fx
		out[c] = uint8(top*(1-fy) + bot*fy + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}

// WarpImage renders src, shaped by srcMesh, toward dstMesh into dst.
// The topology is srcMesh's triangle index triples; both vertex sets
// are resolved against that one triangulation, so the two meshes are
// never triangulated independently within a draw. t picks the frame:
// 0 reproduces srcMesh's own shape, 1 lands exactly on dstMesh's
// coordinates, values in between interpolate linearly. The destination
// is cleared first. skipped counts the triangles dropped for being
// degenerate; they draw nothing and the warp carries on.
func WarpImage(src *image.NRGBA, srcMesh, dstMesh *Mesh, dst *image.NRGBA, t float64) (skipped int, err error) {
	if srcMesh.NumPoints() != dstMesh.NumPoints() {
		return 0, ErrPointCountMismatch
	}

	co1 := toVertices(srcMesh.EffectivePoints())
	co2 := toVertices(dstMesh.EffectivePoints())
	if len(co1) != len(co2) {
		return 0, ErrPointCountMismatch
	}

	for i := range co2 {
		co2[i] = co1[i].Lerp(co2[i], t)
	}

	for i := range dst.Pix {
		dst.Pix[i] = 0
	}

	for _, tri := range srcMesh.Triangles() {
		srcTri := [3]Vertex{co1[tri[0]], co1[tri[1]], co1[tri[2]]}
		dstTri := [3]Vertex{co2[tri[0]], co2[tri[1]], co2[tri[2]]}
		if !WarpTriangle(src, srcTri, dstTri, dst) {
			skipped++
		}
	}
	return skipped, nil
}

func toVertices(pts []image.Point) []Vertex {
	out := make([]Vertex, len(pts))
	for i, p := range pts {
		out[i] = Vertex{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
