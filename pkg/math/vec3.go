// Package math provides the vector and quaternion types used by the exporter
// and the conversions between the authoring and engine coordinate systems.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// One is the identity scale.
var One = Vec3{1, 1, 1}

// Vec3FromArray builds a vector from an X, Y, Z array.
func Vec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
