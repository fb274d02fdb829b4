package morph

import (
	"errors"
	"testing"
	"time"
)

func newTestSession(sched Scheduler) *Session {
	s := NewSession(Options{
		Width:    40,
		Height:   40,
		Duration: time.Second,
	}, sched)
	s.SetImage(SideA, gradientImage(40, 40))
	s.SetImage(SideB, solidBlock(40, 10, 10, 3))
	return s
}

func TestSessionDefaults(t *testing.T) {
	s := NewSession(Options{}, &manualScheduler{})

	opts := s.Options()
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("domain = %dx%d, want %dx%d", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.Duration != DefaultDuration {
		t.Errorf("duration = %v, want %v", opts.Duration, DefaultDuration)
	}
	if opts.FrameThrottle != DefaultFrameThrottle {
		t.Errorf("throttle = %d, want %d", opts.FrameThrottle, DefaultFrameThrottle)
	}
	if opts.DeleteThreshold != DefaultDeleteThreshold {
		t.Errorf("delete threshold = %d, want %d", opts.DeleteThreshold, DefaultDeleteThreshold)
	}
}

func TestStartMorphRequiresLoadedImages(t *testing.T) {
	s := NewSession(Options{Width: 40, Height: 40}, &manualScheduler{})

	err := s.StartMorph(func(Frame) {})
	if !errors.Is(err, ErrSizeNotReady) {
		t.Errorf("StartMorph without images = %v, want ErrSizeNotReady", err)
	}
}

func TestStartMorphRefusesDivergedPair(t *testing.T) {
	s := newTestSession(&manualScheduler{})
	// Break the invariant behind the synchronizer's back.
	s.Pair().Mesh(SideA).AddPoint(10, 10)

	err := s.StartMorph(func(Frame) {})
	if !errors.Is(err, ErrPointCountMismatch) {
		t.Errorf("StartMorph with diverged meshes = %v, want ErrPointCountMismatch", err)
	}

	// The balancing pass repairs the pair and the morph may proceed.
	s.Pair().Balance()
	if err := s.StartMorph(func(Frame) {}); err != nil {
		t.Fatalf("StartMorph after Balance: %v", err)
	}
}

func TestMorphFramesCrossDissolve(t *testing.T) {
	sched := &manualScheduler{}
	s := newTestSession(sched)
	s.Pair().AddPoint(SideA, 20, 20)
	s.Pair().MovePoint(SideB, 0, 30, 25)

	var frames []Frame
	if err := s.StartMorph(func(f Frame) { frames = append(frames, f) }); err != nil {
		t.Fatal(err)
	}

	base := time.Unix(10, 0)
	sched.tick(base) // throttled
	sched.tick(base.Add(500 * time.Millisecond))
	sched.tick(base.Add(800 * time.Millisecond)) // throttled
	sched.tick(base.Add(1200 * time.Millisecond))

	if len(frames) != 2 {
		t.Fatalf("rendered %d frames, want 2", len(frames))
	}
	if frames[0].T != 0.5 || frames[0].Opacity2 != 0.5 {
		t.Errorf("frame 0: t=%g opacity=%g, want both 0.5", frames[0].T, frames[0].Opacity2)
	}
	if frames[1].T != 1 || frames[1].Opacity2 != 1 {
		t.Errorf("frame 1: t=%g opacity=%g, want both 1", frames[1].T, frames[1].Opacity2)
	}

	// At t=1 the second buffer shows the second image in its own
	// shape: an identity warp of the solid block.
	i := frames[1].Buffer2.PixOffset(10, 10)
	if frames[1].Buffer2.Pix[i] < 200 {
		t.Errorf("buffer 2 at the block center = %d, want the source red", frames[1].Buffer2.Pix[i])
	}
}

func TestRenderStaticWarp(t *testing.T) {
	s := newTestSession(&manualScheduler{})
	s.Pair().AddPoint(SideA, 20, 20)

	if err := s.RenderStaticWarp(SideA, 0); err != nil {
		t.Fatal(err)
	}
	// Identity warp reproduces the attached image.
	scaled := s.scaled[SideA]
	buf := s.Buffer(SideA)
	for i := range scaled.Pix {
		if buf.Pix[i] != scaled.Pix[i] {
			t.Fatalf("pixel byte %d differs on an identity static warp", i)
		}
	}
}

func TestFitSizeBeforeLoadIsNotReady(t *testing.T) {
	s := NewSession(Options{}, &manualScheduler{})

	if _, _, err := s.FitSize(SideA); !errors.Is(err, ErrSizeNotReady) {
		t.Errorf("FitSize before load = %v, want ErrSizeNotReady", err)
	}
}
