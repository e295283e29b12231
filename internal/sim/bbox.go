package sim

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyMesh is returned when a bounding box is requested for a mesh
// without vertices.
var ErrEmptyMesh = errors.New("mesh has no vertices")

// BoundingBox is an axis-aligned box in world space.
type BoundingBox struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BuildBoundingBox scans vertices once for the per-axis extents.
func BuildBoundingBox(vertices []mgl64.Vec3) (BoundingBox, error) {
	if len(vertices) == 0 {
		return BoundingBox{}, ErrEmptyMesh
	}
	b := BoundingBox{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < b.Min[i] {
				b.Min[i] = v[i]
			}
			if v[i] > b.Max[i] {
				b.Max[i] = v[i]
			}
		}
	}
	return b, nil
}

// Contains reports whether p lies inside the box. Faces count as inside.
func (b BoundingBox) Contains(p mgl64.Vec3) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y() &&
		p.Z() >= b.Min.Z() && p.Z() <= b.Max.Z()
}

// Refresh maps local extents into world space with scale and translation only.
// Rotation is deliberately not applied: the collision volume stays axis aligned
// even when the mesh is drawn rotated.
func Refresh(localMin, localMax, scale, translation mgl64.Vec3) BoundingBox {
	var b BoundingBox
	for i := 0; i < 3; i++ {
		lo := localMin[i]*scale[i] + translation[i]
		hi := localMax[i]*scale[i] + translation[i]
		// a mirrored axis flips the extents
		if lo > hi {
			lo, hi = hi, lo
		}
		b.Min[i] = lo
		b.Max[i] = hi
	}
	return b
}
