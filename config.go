package morph

import "time"

// Default option values.
const (
	DefaultWidth           = 400
	DefaultHeight          = 400
	DefaultMaxDisplayW     = 500
	DefaultMaxDisplayH     = 500
	DefaultDuration        = 3000 * time.Millisecond
	DefaultFrameThrottle   = 2
	DefaultDeleteThreshold = 20
)

// Options : type with the engine's tunable settings.
type Options struct {
	// Width and Height fix the mesh domain, in device independent
	// units. Every landmark coordinate is clamped to this rectangle.
	Width  int
	Height int

	// MaxDisplayW and MaxDisplayH bound the display size an attached
	// image is fitted into, preserving its aspect ratio (shrink only).
	MaxDisplayW int
	MaxDisplayH int

	// Duration is the length of one morph animation.
	Duration time.Duration

	// FrameThrottle renders one frame out of every n scheduler ticks.
	// The default of 2 halves the display refresh rate, which is
	// plenty for this workload.
	FrameThrottle int

	// DeleteThreshold is how far above the domain's top edge a point
	// must be dragged before the move gesture turns into a deletion.
	DeleteThreshold int
}

// withDefaults fills in the zero-valued fields.
func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.MaxDisplayW <= 0 {
		o.MaxDisplayW = DefaultMaxDisplayW
	}
	if o.MaxDisplayH <= 0 {
		o.MaxDisplayH = DefaultMaxDisplayH
	}
	if o.Duration <= 0 {
		o.Duration = DefaultDuration
	}
	if o.FrameThrottle <= 0 {
		o.FrameThrottle = DefaultFrameThrottle
	}
	if o.DeleteThreshold <= 0 {
		o.DeleteThreshold = DefaultDeleteThreshold
	}
	return o
}
