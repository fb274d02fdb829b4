/*
Package morph is a mesh-based two-image morphing engine. The caller
places corresponding landmark points on two images, both point sets are
triangulated with the same topology, and a continuous image sequence is
produced by interpolating point positions and resampling each
triangle's pixels under an affine map, cross-dissolved over time.

The engine is built from four parts: Mesh owns one image's landmarks
plus the four implicit domain corners and derives a Delaunay
triangulation and its edge list; Pair keeps the two meshes index
aligned so triangle i of one is always the morph counterpart of
triangle i of the other; WarpImage resamples an image triangle by
triangle through per-triangle affine transforms; and Animator drives a
cancellable, time-parameterized frame loop on a host supplied
scheduler.

A minimal morph:

	session := morph.NewSession(morph.Options{}, morph.TickerScheduler{})
	session.SetImage(morph.SideA, first)
	session.SetImage(morph.SideB, second)

	pair := session.Pair()
	pair.AddPoint(morph.SideA, 120, 160)
	pair.MovePoint(morph.SideB, 0, 180, 140)

	err := session.StartMorph(func(f morph.Frame) {
		// show f.Buffer1, f.Buffer2 at opacity f.Opacity2
	})

The engine is single threaded and cooperatively scheduled: mesh
mutation and render ticks must flow through one logical owner. It does
not detect features, decode images or persist meshes; those belong to
the surrounding application.
*/
package morph
