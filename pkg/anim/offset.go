package anim

import (
	"github.com/Faultbox/x3ships/pkg/math"
	"github.com/Faultbox/x3ships/pkg/scene"
)

// Offset is the static transform of an object in engine convention.
// A nil field means the channel is driven by animation instead.
type Offset struct {
	Position *math.Vec3
	Rotation *math.Quat
}

// ResolveOffset decides per channel whether the static transform or the
// animation governs obj. Only the first record is consulted.
func ResolveOffset(obj *scene.Object, records []Record) Offset {
	var animLoc, animRot bool
	if len(records) > 0 {
		animLoc = records[0].Location != nil
		animRot = records[0].Rotation != nil
	}

	var off Offset
	if !animLoc {
		pos := obj.Position().SwapYZ()
		off.Position = &pos
	}
	if !animRot {
		rot := obj.Orientation().ToLeftHanded()
		off.Rotation = &rot
	}
	return off
}
