package anim

import (
	"github.com/Faultbox/x3ships/pkg/formats"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// Helper functions for creating test data

type actionList []scene.Action

func (l actionList) GetActionByName(name string) *scene.Action {
	for i := range l {
		if l[i].Name == name {
			return &l[i]
		}
	}
	return nil
}

// makeCurves returns three axis curves for dataPath keyed at frames. The
// value of a key is axis*100 + frame so tests can tell axes apart.
func makeCurves(dataPath string, frames ...float32) []scene.FCurve {
	curves := make([]scene.FCurve, 3)
	for axis := range curves {
		curves[axis] = scene.FCurve{DataPath: dataPath, Index: axis}
		for _, f := range frames {
			value := float32(axis*100) + f
			curves[axis].Keyframes = append(curves[axis].Keyframes, scene.Keyframe{
				Co:            [2]float32{f, value},
				Interpolation: formats.InterpolationBezier,
				HandleLeft:    [2]float32{f - 1, value},
				HandleRight:   [2]float32{f + 1, value},
			})
		}
	}
	return curves
}

func makeAction(name string, curves ...[]scene.FCurve) scene.Action {
	a := scene.Action{Name: name}
	for _, c := range curves {
		a.FCurves = append(a.FCurves, c...)
	}
	return a
}

func makeObject(name string, tracks ...scene.Track) *scene.Object {
	obj := &scene.Object{Name: name, Type: scene.ObjectMesh}
	if len(tracks) > 0 {
		obj.Animation = &scene.AnimationData{Tracks: tracks}
	}
	return obj
}

func makeTrack(name string, strips ...scene.Strip) scene.Track {
	return scene.Track{Name: name, Strips: strips}
}

func makeStrip(name, action string, start, end float64) scene.Strip {
	return scene.Strip{Name: name, Action: action, FrameStart: start, FrameEnd: end}
}
