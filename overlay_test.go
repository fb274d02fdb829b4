package morph

import (
	"testing"
)

func TestDrawOverlayDimensionsAndHandles(t *testing.T) {
	m := NewMesh(200, 200)
	m.AddPoint(100, 100)

	out := DrawOverlay(m, NoSelection, DefaultOverlayStyle())

	if b := out.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("overlay bounds = %v, want the 200x200 domain", b)
	}

	// The landmark handle must leave visible pixels around (100,100).
	_, _, _, a := out.At(100, 100).RGBA()
	if a == 0 {
		t.Error("no handle drawn at the landmark position")
	}
}

func TestDrawOverlaySkipsFlaggedPoints(t *testing.T) {
	m := NewMesh(200, 200)
	m.AddPoint(50, 120)

	style := DefaultOverlayStyle()
	out := DrawOverlay(m, NoSelection, style)
	if _, _, _, a := out.At(50, 120).RGBA(); a == 0 {
		t.Fatal("no handle drawn for a live landmark")
	}

	m.MarkForDeletion(0)
	out = DrawOverlay(m, NoSelection, style)

	// With the only landmark flagged, the mesh collapses to the two
	// corner triangles and (50,120) sits far from any of their edges,
	// so the spot must be empty again.
	if _, _, _, a := out.At(50, 120).RGBA(); a != 0 {
		t.Error("flagged landmark still drew a handle")
	}
}
