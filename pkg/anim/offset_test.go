package anim

import (
	"testing"

	"github.com/Faultbox/x3ships/pkg/math"
	"github.com/Faultbox/x3ships/pkg/scene"
)

func TestResolveOffset(t *testing.T) {
	obj := makeObject("part")
	obj.Location = [3]float32{1, 2, 3}
	obj.RotationQuaternion = &[4]float32{0.9, 0.1, 0.2, 0.3}

	loc := &CurveSet{}
	rot := &CurveSet{}

	tests := []struct {
		name    string
		records []Record
		wantPos bool
		wantRot bool
	}{
		{"no clips", nil, true, true},
		{"location animated", []Record{{Location: loc}}, false, true},
		{"rotation animated", []Record{{Rotation: rot}}, true, false},
		{"both animated", []Record{{Location: loc, Rotation: rot}}, false, false},
		{"only first clip counts", []Record{{}, {Location: loc, Rotation: rot}}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := ResolveOffset(obj, tt.records)
			if (off.Position != nil) != tt.wantPos {
				t.Errorf("position present = %v, want %v", off.Position != nil, tt.wantPos)
			}
			if (off.Rotation != nil) != tt.wantRot {
				t.Errorf("rotation present = %v, want %v", off.Rotation != nil, tt.wantRot)
			}
		})
	}
}

func TestResolveOffset_Remapped(t *testing.T) {
	obj := &scene.Object{
		Location:           [3]float32{1, 2, 3},
		RotationQuaternion: &[4]float32{0.9, 0.1, 0.2, 0.3},
	}

	off := ResolveOffset(obj, nil)
	if *off.Position != (math.Vec3{X: 1, Y: 3, Z: 2}) {
		t.Errorf("Position = %v, want (1,3,2)", *off.Position)
	}
	if *off.Rotation != (math.Quat{X: -0.1, Y: -0.3, Z: -0.2, W: 0.9}) {
		t.Errorf("Rotation = %v, want (-0.1,-0.3,-0.2,0.9)", *off.Rotation)
	}
}
