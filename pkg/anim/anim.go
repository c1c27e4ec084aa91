// Package anim turns NLA strips of scene objects into engine animation
// records: curve extraction, clip ordering, axis remapping, lock-step
// validation, static offset resolution and conversion to the ANI layout.
package anim

import (
	"errors"

	"github.com/Faultbox/x3ships/pkg/scene"
)

// Animation errors.
var (
	ErrMalformedAnimation = errors.New("malformed animation")
	ErrInvalidFrameRate   = errors.New("frame rate must be positive")
)

// ActionSource resolves actions referenced by strips.
type ActionSource interface {
	GetActionByName(name string) *scene.Action
}

// CurveSet holds the three axis curves of one channel. A nil *CurveSet
// means the channel is not animated.
type CurveSet struct {
	X, Y, Z []scene.Keyframe
}

// Len returns the number of keyframes per axis.
func (c *CurveSet) Len() int {
	if c == nil {
		return 0
	}
	return len(c.X)
}

// Record is one exported clip of one object.
type Record struct {
	Name     string    // Owning object name
	Subname  string    // Clip name: <track>_<strip>
	Start    int       // First frame
	End      int       // Last frame
	Location *CurveSet // Engine axis order; nil when not animated
	Rotation *CurveSet // Euler angles, engine axis order; nil when not animated
}

// Duration returns the clip length in frames.
func (r *Record) Duration() int {
	return r.End - r.Start
}

// KeyframeCount returns the number of location and rotation keyframes.
func (r *Record) KeyframeCount() int {
	return r.Location.Len() + r.Rotation.Len()
}
