package morph

import "errors"

var (
	// ErrIndexOutOfRange is returned by point operations addressing an
	// index outside the mesh's point list. Bad indexes are never
	// silently ignored so editing-layer bugs surface early.
	ErrIndexOutOfRange = errors.New("morph: point index out of range")

	// ErrPointCountMismatch is returned when the two meshes of a pair
	// are observed with diverging landmark counts going into a warp or
	// a morph. Rendering with mismatched meshes would produce a
	// silently wrong result, so the operation refuses to run instead.
	ErrPointCountMismatch = errors.New("morph: mesh point counts diverge")

	// ErrSizeNotReady is returned when an image is sized or rendered
	// before its pixels and natural dimensions are known.
	ErrSizeNotReady = errors.New("morph: image size not known yet")
)
