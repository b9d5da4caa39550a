// Package renderer holds the renderer and cursor setting groups. Drawing
// itself lives outside this module.
package renderer

// RendererSettings is the renderer setting group.
type RendererSettings struct {
	Position            float64
	ScrollAnimationTime float64
	ScrollAnimationFar  int
	FloatingOpacity     float64
	FloatingBlur        bool
	FloatingShadow      bool
	LightAngleDegrees   float64
	UnderlineStroke     float64
	TextGamma           float64
	TextContrast        float64
	Profiler            bool
}

// DefaultRendererSettings returns the values registered at startup.
func DefaultRendererSettings() RendererSettings {
	return RendererSettings{
		ScrollAnimationTime: 0.3,
		ScrollAnimationFar:  1,
		FloatingOpacity:     0.7,
		FloatingBlur:        true,
		FloatingShadow:      true,
		LightAngleDegrees:   45,
		UnderlineStroke:     1,
		TextGamma:           0,
		TextContrast:        0.5,
	}
}

// CursorSettings is the cursor setting group.
type CursorSettings struct {
	Antialiasing    bool
	AnimationLength float64
	AnimateInInsert bool
	TrailSize       float64
	UnfocusedWidth  float64
	VFXMode         string
	SmoothBlink     bool
}

// DefaultCursorSettings returns the values registered at startup.
func DefaultCursorSettings() CursorSettings {
	return CursorSettings{
		Antialiasing:    true,
		AnimationLength: 0.15,
		AnimateInInsert: true,
		TrailSize:       1.0,
		UnfocusedWidth:  0.5,
	}
}
