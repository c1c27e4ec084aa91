package anim

import (
	"fmt"
	gomath "math"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/x3ships/pkg/scene"
)

// Clip is an unmuted NLA strip of an object.
type Clip struct {
	Name   string // <track>_<strip>
	Action string
	Start  int
	End    int
}

// SortedClips returns the clips of obj ordered by end frame, then start frame.
// Strips on muted tracks are skipped. Strip bounds must be whole frames and
// every clip must span at least one frame.
func SortedClips(obj *scene.Object, log *zap.Logger) ([]Clip, error) {
	if !obj.HasAnimation() {
		return nil, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	var clips []Clip
	for _, track := range obj.Animation.Tracks {
		if track.Mute {
			log.Info("animation track is muted",
				zap.String("object", obj.Name),
				zap.String("track", track.Name))
			continue
		}
		for _, strip := range track.Strips {
			name := track.Name + "_" + strip.Name
			if strip.FrameStart != gomath.Trunc(strip.FrameStart) || strip.FrameEnd != gomath.Trunc(strip.FrameEnd) {
				return nil, fmt.Errorf("%w: %s: strip frames %g..%g are not whole frames",
					ErrMalformedAnimation, name, strip.FrameStart, strip.FrameEnd)
			}
			if strip.FrameEnd <= strip.FrameStart {
				return nil, fmt.Errorf("%w: %s: each animation should be at least 1 frame",
					ErrMalformedAnimation, name)
			}
			clips = append(clips, Clip{
				Name:   name,
				Action: strip.Action,
				Start:  int(strip.FrameStart),
				End:    int(strip.FrameEnd),
			})
		}
	}

	sort.SliceStable(clips, func(i, j int) bool {
		if clips[i].End != clips[j].End {
			return clips[i].End < clips[j].End
		}
		return clips[i].Start < clips[j].Start
	})
	return clips, nil
}

// Assemble builds one record per clip of obj, in SortedClips order, with
// location and rotation curves extracted, validated and remapped to engine
// axes. Records of different objects are concatenated by the caller.
func Assemble(obj *scene.Object, actions ActionSource, log *zap.Logger) ([]Record, error) {
	clips, err := SortedClips(obj, log)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", obj.Name, err)
	}

	records := make([]Record, 0, len(clips))
	for _, clip := range clips {
		rec, err := assembleClip(obj, clip, actions)
		if err != nil {
			return nil, fmt.Errorf("object %q clip %q: %w", obj.Name, clip.Name, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func assembleClip(obj *scene.Object, clip Clip, actions ActionSource) (Record, error) {
	action := actions.GetActionByName(clip.Action)
	if action == nil {
		return Record{}, fmt.Errorf("%w: unknown action %q", ErrMalformedAnimation, clip.Action)
	}

	loc, err := ExtractChannel(action, scene.DataPathLocation, clip.Start, clip.End)
	if err != nil {
		return Record{}, err
	}
	rot, err := ExtractChannel(action, scene.DataPathRotationEuler, clip.Start, clip.End)
	if err != nil {
		return Record{}, err
	}

	for _, c := range []*CurveSet{loc, rot} {
		if c == nil {
			continue
		}
		if err := c.validate(); err != nil {
			return Record{}, err
		}
	}

	return Record{
		Name:     obj.Name,
		Subname:  clip.Name,
		Start:    clip.Start,
		End:      clip.End,
		Location: loc.SwapYZ(),
		Rotation: rot.SwapYZ(),
	}, nil
}
