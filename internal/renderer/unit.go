package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type UnitRole int

const (
	StandardUnit UnitRole = iota
	SampleUnit
)

func (r UnitRole) String() string {
	if r == SampleUnit {
		return "sample"
	}
	return "standard"
}

// Unit is one renderable box (or the sample sphere). Geometry and Material are
// shared references; the unit owns only its transform.
type Unit struct {
	// HOT DATA - read every frame by the scene sink
	ModelMatrix mgl32.Mat4
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	Material    *MaterialHandle
	Geometry    *Geometry

	// COLD DATA
	ID    uuid.UUID
	Index int
	Role  UnitRole
}

// NewUnit creates a unit at the origin with identity rotation
func NewUnit(geometry *Geometry, material *MaterialHandle, role UnitRole) *Unit {
	u := &Unit{
		ID:       uuid.New(),
		Geometry: geometry,
		Material: material,
		Role:     role,
		Rotation: mgl32.QuatIdent(),
	}
	u.updateModelMatrix()
	return u
}

// SetPosition sets the position of the unit
func (u *Unit) SetPosition(x, y, z float32) {
	u.Position = mgl32.Vec3{x, y, z}
	u.updateModelMatrix()
}

// SetRotationY replaces the rotation with a turn of angle radians about +Y
func (u *Unit) SetRotationY(angle float32) {
	u.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
	u.updateModelMatrix()
}

func (u *Unit) SetMaterial(h *MaterialHandle) {
	u.Material = h
}

func (u *Unit) updateModelMatrix() {
	// Translation * Rotation, units are never scaled
	u.ModelMatrix = mgl32.Translate3D(u.Position[0], u.Position[1], u.Position[2]).Mul4(u.Rotation.Mat4())
}

// WorldTriangle returns triangle t of the unit's geometry transformed to world space
func (u *Unit) WorldTriangle(t int) [3]SurfacePoint {
	tri := u.Geometry.Triangle(t)
	for i := range tri {
		tri[i].Position = u.ModelMatrix.Mul4x1(tri[i].Position.Vec4(1)).Vec3()
		tri[i].Normal = u.Rotation.Rotate(tri[i].Normal)
	}
	return tri
}
