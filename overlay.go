package morph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// OverlayStyle controls how a mesh overlay is drawn.
type OverlayStyle struct {
	LineWidth     float64
	EdgeColor     color.Color
	PointColor    color.Color
	SelectedColor color.Color
	PointRadius   float64
}

// DefaultOverlayStyle returns the stock overlay look.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		LineWidth:     1,
		EdgeColor:     color.RGBA{R: 0, G: 0, B: 0, A: 120},
		PointColor:    color.RGBA{R: 220, G: 40, B: 40, A: 255},
		SelectedColor: color.RGBA{R: 40, G: 120, B: 220, A: 255},
		PointRadius:   4,
	}
}

// DrawOverlay renders a mesh's edge list and landmark handles into a
// transparent image the size of the mesh domain, for the presentation
// layer to stack on top of the photograph. selected highlights one
// landmark index (NoSelection for none); flagged points draw no
// handle, matching their exclusion from the triangulation.
func DrawOverlay(mesh *Mesh, selected int, style OverlayStyle) image.Image {
	ctx := gg.NewContext(mesh.Width(), mesh.Height())

	pts := mesh.EffectivePoints()
	ctx.SetColor(style.EdgeColor)
	ctx.SetLineWidth(style.LineWidth)
	for _, e := range mesh.Edges() {
		p0, p1 := pts[e[0]], pts[e[1]]
		ctx.DrawLine(float64(p0.X), float64(p0.Y), float64(p1.X), float64(p1.Y))
	}
	ctx.Stroke()

	for i, p := range mesh.Points() {
		if p.Deleted {
			continue
		}
		if i == selected {
			ctx.SetColor(style.SelectedColor)
		} else {
			ctx.SetColor(style.PointColor)
		}
		ctx.DrawCircle(float64(p.X), float64(p.Y), style.PointRadius)
		ctx.Fill()
	}

	return ctx.Image()
}
