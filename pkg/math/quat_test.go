package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatToLeftHanded(t *testing.T) {
	q := Quat{X: 0.1, Y: 0.2, Z: 0.3, W: 0.9}
	got := q.ToLeftHanded()
	want := Quat{X: -0.1, Y: -0.3, Z: -0.2, W: 0.9}
	if got != want {
		t.Errorf("ToLeftHanded() = %v, want %v", got, want)
	}
}

func TestQuatToLeftHandedProperties(t *testing.T) {
	axes := []Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		unit(Vec3{1, 1, 1}),
	}
	angles := []float32{0, 0.3, float32(math.Pi / 2), float32(math.Pi), -2.1}

	for _, axis := range axes {
		for _, angle := range angles {
			q := axisAngle(axis, angle)
			r := q.ToLeftHanded()

			if r.W != q.W {
				t.Errorf("W changed: %v -> %v", q.W, r.W)
			}
			if r.X != -q.X || r.Y != -q.Z || r.Z != -q.Y {
				t.Errorf("vector part of %v converted to %v", q, r)
			}
			if math.Abs(float64(quatLength(r)-quatLength(q))) > 1e-6 {
				t.Errorf("magnitude changed: %v -> %v", quatLength(q), quatLength(r))
			}

			back := r.ToLeftHanded()
			if back != q {
				t.Errorf("double conversion = %v, want %v", back, q)
			}
		}
	}
}

// Helper functions for building test rotations

func axisAngle(axis Vec3, angle float32) Quat {
	s := float32(math.Sin(float64(angle / 2)))
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: float32(math.Cos(float64(angle / 2)))}
}

func quatLength(q Quat) float32 {
	return float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

func unit(v Vec3) Vec3 {
	l := float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}
