package anim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/x3ships/pkg/encoding"
	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// BuildANI converts records into the packed animation file, keeping their
// order. Frames are converted to seconds with fps; keyframe times become
// relative to the clip start.
func BuildANI(records []Record, fps float64, log *zap.Logger) (*formats.ANI, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidFrameRate, fps)
	}
	if log == nil {
		log = zap.NewNop()
	}

	anims := make([]formats.ANIAnimation, len(records))
	for i := range records {
		rec := &records[i]
		for _, s := range []string{rec.Name, rec.Subname} {
			if _, truncated := encoding.UTF8ToFixedString(s, formats.ANINameSize); truncated {
				log.Warn("animation name truncated", zap.String("name", s), zap.Int("max_bytes", formats.ANINameSize))
			}
		}

		duration := float64(rec.Duration()) / fps
		loc, err := convertKeys(rec, rec.Location, fps, duration)
		if err != nil {
			return nil, fmt.Errorf("%s/%s location: %w", rec.Name, rec.Subname, err)
		}
		rot, err := convertKeys(rec, rec.Rotation, fps, duration)
		if err != nil {
			return nil, fmt.Errorf("%s/%s rotation: %w", rec.Name, rec.Subname, err)
		}

		anims[i] = formats.ANIAnimation{
			Name:         rec.Name,
			Subname:      rec.Subname,
			Duration:     float32(duration),
			LocationKeys: loc,
			RotationKeys: rot,
		}
	}
	return formats.NewANI(anims), nil
}

func convertKeys(rec *Record, c *CurveSet, fps, duration float64) ([]formats.ANIKeyframe, error) {
	if c == nil {
		return nil, nil
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	keys := make([]formats.ANIKeyframe, c.Len())
	for i := range keys {
		x, y, z := c.X[i], c.Y[i], c.Z[i]

		t := (float64(x.Frame()) - float64(rec.Start)) / fps
		if t < 0 || t > duration {
			return nil, fmt.Errorf("keyframe %d at frame %g: %w", i, x.Frame(), formats.ErrKeyframeOutOfRange)
		}

		key := &keys[i]
		key.Time = float32(t)
		for axis, kf := range [3]scene.Keyframe{x, y, z} {
			key.Value[axis] = kf.Value()
			key.Interpolation[axis] = kf.Interpolation
			key.Handles[axis] = formats.ANIHandles{Out: kf.HandleRight, In: kf.HandleLeft}
		}
	}
	return keys, nil
}
