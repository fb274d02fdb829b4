package morph

import "image"

// Frame is one rendered tick of a morph: the two warped buffers plus
// the blend opacity for the second. Compositing Buffer2 over Buffer1
// at Opacity2 yields the cross-dissolved in-between image; t == 0
// shows the first image in its own shape, t == 1 the second in its.
type Frame struct {
	T        float64
	Buffer1  *image.NRGBA
	Buffer2  *image.NRGBA
	Opacity2 float64
}

// Session is the editing context: the two image sources, the mesh
// pair, the animator and the two output buffers. It is owned by the
// application shell and passed by reference to whichever layer needs
// it; the package keeps no process-wide state.
type Session struct {
	opts     Options
	images   [2]*ImageSource
	scaled   [2]*image.NRGBA
	buffers  [2]*image.NRGBA
	pair     *Pair
	animator *Animator
	skipped  int
}

// NewSession builds a session over the given scheduler. Zero-valued
// option fields take their defaults.
func NewSession(opts Options, scheduler Scheduler) *Session {
	opts = opts.withDefaults()

	a := NewMesh(opts.Width, opts.Height)
	b := NewMesh(opts.Width, opts.Height)
	a.deleteThreshold = opts.DeleteThreshold
	b.deleteThreshold = opts.DeleteThreshold

	return &Session{
		opts: opts,
		buffers: [2]*image.NRGBA{
			image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
			image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		},
		pair:     NewPair(a, b),
		animator: NewAnimator(scheduler, opts.FrameThrottle),
	}
}

// Options returns the session's effective configuration.
func (s *Session) Options() Options { return s.opts }

// Pair returns the mesh pair for editing.
func (s *Session) Pair() *Pair { return s.pair }

// Animator returns the morph animator.
func (s *Session) Animator() *Animator { return s.animator }

// Buffer returns the output buffer for one side's render.
func (s *Session) Buffer(side Side) *image.NRGBA { return s.buffers[side] }

// SkippedTriangles returns how many degenerate triangles were dropped
// by the most recent render.
func (s *Session) SkippedTriangles() int { return s.skipped }

// SetImage attaches a decoded image to one side. The image is
// resampled to the mesh domain once, up front, so per-frame warps
// sample a stable buffer.
func (s *Session) SetImage(side Side, img image.Image) error {
	src := NewImageSource(img)
	scaled, err := src.Scaled(s.opts.Width, s.opts.Height)
	if err != nil {
		return err
	}
	s.images[side] = src
	s.scaled[side] = scaled
	return nil
}

// Image returns the source attached to one side, or nil.
func (s *Session) Image(side Side) *ImageSource { return s.images[side] }

// FitSize answers the display sizing query for one side's image
// against the configured maximum bounding box.
func (s *Session) FitSize(side Side) (w, h int, err error) {
	if !s.images[side].Loaded() {
		return 0, 0, ErrSizeNotReady
	}
	return s.images[side].FitSize(s.opts.MaxDisplayW, s.opts.MaxDisplayH)
}

// RenderStaticWarp warps one side's image toward the other side's mesh
// at parameter t, into that side's buffer. t == 0 is the identity
// warp, t == 1 the full deformation.
func (s *Session) RenderStaticWarp(from Side, t float64) error {
	if !s.images[from].Loaded() {
		return ErrSizeNotReady
	}
	if err := s.pair.Validate(); err != nil {
		return err
	}
	skipped, err := WarpImage(
		s.scaled[from],
		s.pair.Mesh(from), s.pair.Mesh(from.Other()),
		s.buffers[from], t,
	)
	if err != nil {
		return err
	}
	s.skipped = skipped
	return nil
}

// renderFrame renders both directions for one tick: buffer 1 carries
// the first image warped toward the second mesh at t, buffer 2 the
// second image warped toward the first mesh at 1-t. Both buffers are
// fully rewritten before the frame is reported, so a frame is never
// observed half rendered.
func (s *Session) renderFrame(t float64) Frame {
	sk1, _ := WarpImage(s.scaled[SideA], s.pair.Mesh(SideA), s.pair.Mesh(SideB), s.buffers[0], t)
	sk2, _ := WarpImage(s.scaled[SideB], s.pair.Mesh(SideB), s.pair.Mesh(SideA), s.buffers[1], 1-t)
	s.skipped = sk1 + sk2

	return Frame{
		T:        t,
		Buffer1:  s.buffers[0],
		Buffer2:  s.buffers[1],
		Opacity2: t,
	}
}

// StartMorph begins the animation, invoking onFrame with each rendered
// frame. The correspondence invariant is validated here, before the
// first tick, rather than discovered mid-render; a mismatched pair
// refuses to animate. Starting while a morph is running cancels the
// prior run first.
func (s *Session) StartMorph(onFrame func(Frame)) error {
	if !s.images[SideA].Loaded() || !s.images[SideB].Loaded() {
		return ErrSizeNotReady
	}
	if err := s.pair.Validate(); err != nil {
		return err
	}

	s.animator.Start(s.opts.Duration, func(t float64) {
		onFrame(s.renderFrame(t))
	})
	return nil
}

// CancelMorph stops a running morph. Idempotent.
func (s *Session) CancelMorph() {
	s.animator.Cancel()
}
