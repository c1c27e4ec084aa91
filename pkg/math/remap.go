package math

// The authoring tool is right-handed with Z up, the engine is left-handed
// with Y up. Converting between the two swaps the Y and Z axes; rotations
// additionally flip handedness.

// SwapYZ returns (x, z, y). Applying it twice yields the original vector.
func (v Vec3) SwapYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Z, Z: v.Y}
}

// ToLeftHanded converts a source rotation to engine convention:
// the vector part is negated, then its Y and Z components are swapped.
// The conversion is its own inverse.
func (q Quat) ToLeftHanded() Quat {
	c := q.Conjugate()
	return Quat{X: c.X, Y: c.Z, Z: c.Y, W: c.W}
}
