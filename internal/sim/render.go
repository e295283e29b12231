package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderer draws a model with a world transform. The simulation never draws
// itself; the front end supplies an implementation.
type Renderer interface {
	DrawMesh(m *Model, world mgl64.Mat4)
}

// WorldTransform composes scale, then rotation about X, Y and Z, then
// translation. Rotation components are in units of 180 degrees and turn
// clockwise, matching how Heading is stored.
func WorldTransform(scale, rotation, translation mgl64.Vec3) mgl64.Mat4 {
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	rx := mgl64.HomogRotate3DX(-math.Pi * rotation.X())
	ry := mgl64.HomogRotate3DY(-math.Pi * rotation.Y())
	rz := mgl64.HomogRotate3DZ(-math.Pi * rotation.Z())
	t := mgl64.Translate3D(translation.X(), translation.Y(), translation.Z())
	// column vectors: the rightmost factor applies first
	return t.Mul4(rz).Mul4(ry).Mul4(rx).Mul4(s)
}
