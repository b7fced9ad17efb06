// Package geometry converts authoring-tool transforms into the conventions
// expected by the GVRf runtime.
//
// The authoring tool is Z-up and its lights and cameras look down -Z in
// local space after a -90 degree turn about X; GVRf is Y-up with the same
// handedness. Every position and orientation sent to the device passes
// through this package exactly once. The Remote* types are only produced
// here so a value cannot be converted twice by accident.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var ErrZeroQuaternion = errors.New("zero-magnitude quaternion has no rotation")

// Vec3 is a position in authoring-tool space.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a rotation in authoring-tool space, stored w first.
type Quat struct {
	W, X, Y, Z float64
}

// RemoteVec3 is a position already remapped into device space.
type RemoteVec3 struct {
	X, Y, Z float64
}

// RemoteQuat is an orientation already normalized and axis-corrected.
type RemoteQuat struct {
	W, X, Y, Z float64
}

func NewVec3(v [3]float64) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func NewQuat(q [4]float64) Quat {
	return Quat{W: q[0], X: q[1], Y: q[2], Z: q[3]}
}

// Array returns the components as x, y, z.
func (v RemoteVec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Array returns the components as w, x, y, z.
func (q RemoteQuat) Array() [4]float64 {
	return [4]float64{q.W, q.X, q.Y, q.Z}
}

// Quat drops the device marker, for callers that need to feed a converted
// orientation back through the math in this package.
func (q RemoteQuat) Quat() Quat {
	return Quat{W: q.W, X: q.X, Y: q.Y, Z: q.Z}
}

// RemapPosition maps (x, y, z) to (x, z, -y).
func RemapPosition(v Vec3) RemoteVec3 {
	return RemoteVec3{X: v.X, Y: v.Z, Z: -v.Y}
}

// UnmapPosition is the inverse of RemapPosition: (x, y, z) to (x, -z, y).
func UnmapPosition(v RemoteVec3) Vec3 {
	return Vec3{X: v.X, Y: -v.Z, Z: v.Y}
}

func (q Quat) Length() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize divides each component by the Euclidean magnitude.
func (q Quat) Normalize() (Quat, error) {
	l := q.Length()
	if l == 0 || math.IsNaN(l) {
		return Quat{}, fmt.Errorf("%w: %v", ErrZeroQuaternion, q)
	}
	return Quat{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}, nil
}

// Mul returns the Hamilton product q * o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// XCorrection is a -90 degree turn about X.
var XCorrection = Quat{W: math.Sqrt(0.5), X: -math.Sqrt(0.5)}

// ComposeXCorrection applies XCorrection to an already normalized q.
func ComposeXCorrection(q Quat) Quat {
	return XCorrection.Mul(q)
}

// RemapOrientation normalizes q and applies the axis correction once.
func RemapOrientation(q Quat) (RemoteQuat, error) {
	n, err := q.Normalize()
	if err != nil {
		return RemoteQuat{}, err
	}
	c := ComposeXCorrection(n)
	return RemoteQuat{W: c.W, X: c.X, Y: c.Y, Z: c.Z}, nil
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// InnerConeAngle returns the full inner cone angle in degrees for a spot
// light with full outer cone angle outer (degrees), throw distance and
// falloff blend in [0, 1]. The inner disk keeps (1 - blend) of the outer
// disk's area at the throw distance.
func InnerConeAngle(distance, outer, blend float64) float64 {
	if distance <= 0 {
		// The ratio of radii does not depend on distance.
		distance = 1
	}
	blend = math.Min(math.Max(blend, 0), 1)

	outerRadius := math.Tan(Radians(outer/2)) * distance
	outerArea := math.Pi * outerRadius * outerRadius
	innerArea := outerArea * (1 - blend)
	innerRadius := math.Sqrt(innerArea / math.Pi)

	return 2 * Degrees(math.Atan(innerRadius/distance))
}

// SpotCone converts a full cone size in radians and a blend fraction into
// the half-angle outer and inner cone angles in degrees that GVRf expects.
func SpotCone(size, blend, distance float64) (outerHalf, innerHalf float64) {
	outer := Degrees(size)
	inner := InnerConeAngle(distance, outer, blend)
	return outer / 2, inner / 2
}
