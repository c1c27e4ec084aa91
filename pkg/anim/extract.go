package anim

import (
	"fmt"

	"github.com/Faultbox/x3ships/pkg/scene"
)

// ExtractChannel returns the curves of action animating dataPath, limited to
// keyframes with start <= frame <= end. It returns nil if the action does not
// animate the property at all. A property animated on anything other than
// exactly the three axes is malformed.
func ExtractChannel(action *scene.Action, dataPath string, start, end int) (*CurveSet, error) {
	var axes [3]*scene.FCurve
	found := 0
	for i := range action.FCurves {
		fc := &action.FCurves[i]
		if fc.DataPath != dataPath {
			continue
		}
		found++
		if fc.Index < 0 || fc.Index > 2 || axes[fc.Index] != nil {
			return nil, fmt.Errorf("%w: action %q has invalid or duplicate %s curve index %d",
				ErrMalformedAnimation, action.Name, dataPath, fc.Index)
		}
		axes[fc.Index] = fc
	}

	if found == 0 {
		return nil, nil
	}
	if found != 3 {
		return nil, fmt.Errorf("%w: action %q has %d %s curves, want 3",
			ErrMalformedAnimation, action.Name, found, dataPath)
	}

	return &CurveSet{
		X: filterKeyframes(axes[0].Keyframes, start, end),
		Y: filterKeyframes(axes[1].Keyframes, start, end),
		Z: filterKeyframes(axes[2].Keyframes, start, end),
	}, nil
}

// filterKeyframes keeps the keyframes inside [start, end]. No resampling.
func filterKeyframes(keys []scene.Keyframe, start, end int) []scene.Keyframe {
	var out []scene.Keyframe
	for _, kf := range keys {
		f := float64(kf.Frame())
		if f >= float64(start) && f <= float64(end) {
			out = append(out, kf)
		}
	}
	return out
}

// validate checks that the three axes were keyed together: same count, and
// per index the same frame and interpolation.
func (c *CurveSet) validate() error {
	if len(c.X) != len(c.Y) || len(c.X) != len(c.Z) {
		return fmt.Errorf("%w: axis keyframe counts differ (%d/%d/%d)",
			ErrMalformedAnimation, len(c.X), len(c.Y), len(c.Z))
	}
	for i := range c.X {
		x, y, z := c.X[i], c.Y[i], c.Z[i]
		if x.Frame() != y.Frame() || x.Frame() != z.Frame() {
			return fmt.Errorf("%w: keyframe %d at frames %g/%g/%g",
				ErrMalformedAnimation, i, x.Frame(), y.Frame(), z.Frame())
		}
		if x.Interpolation != y.Interpolation || x.Interpolation != z.Interpolation {
			return fmt.Errorf("%w: keyframe %d interpolations %s/%s/%s",
				ErrMalformedAnimation, i, x.Interpolation, y.Interpolation, z.Interpolation)
		}
	}
	return nil
}
