package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SentinelY is the height dead and idle actors are parked at. Nothing in the
// playable volume can reach it.
const SentinelY = -999999999.0

// Group is the team tag used to decide who may damage whom.
type Group int

const (
	GroupNeutral Group = 0 // buildings
	GroupPlayer  Group = 1
	GroupEnemy   Group = 2
)

func (g Group) String() string {
	switch g {
	case GroupNeutral:
		return "neutral"
	case GroupPlayer:
		return "player"
	case GroupEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Kind tags the concrete variant behind an Actor.
type Kind int

const (
	KindTank Kind = iota
	KindEnemy
	KindProjectile
	KindBuilding
)

func (k Kind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// Unit is implemented by every variant through the embedded Actor.
type Unit interface {
	Base() *Actor
}

// Actor is the state every simulated entity shares.
type Actor struct {
	Label string

	kind  Kind
	group Group
	model *Model

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in units of 180 degrees
	Scale    mgl64.Vec3
	Heading  float64 // degrees

	Health     int
	IsAttacker bool
	CanMove    bool

	localMin mgl64.Vec3
	localMax mgl64.Vec3
	Box      BoundingBox
}

func newActor(label string, kind Kind, group Group, m *Model, pos, scale mgl64.Vec3) Actor {
	a := Actor{
		Label:    label,
		kind:     kind,
		group:    group,
		model:    m,
		Position: pos,
		Scale:    scale,
	}
	if m != nil {
		a.localMin = m.Bounds.Min
		a.localMax = m.Bounds.Max
	}
	a.UpdateBoundingBox()
	return a
}

// Base returns the actor itself; variants satisfy Unit through embedding.
func (a *Actor) Base() *Actor { return a }

func (a *Actor) Kind() Kind          { return a.kind }
func (a *Actor) Group() Group        { return a.group }
func (a *Actor) Alive() bool         { return a.Health > 0 }
func (a *Actor) Parked() bool        { return a.Position.Y() == SentinelY }
func (a *Actor) Forward() mgl64.Vec3 { return headingVector(a.Heading) }

// UpdateBoundingBox recomputes the world box from the local extents, scale and
// position. Call it after any change to Position or Scale.
func (a *Actor) UpdateBoundingBox() {
	a.Box = Refresh(a.localMin, a.localMax, a.Scale, a.Position)
}

// CollidesWithPoint reports whether p is inside the actor's current box.
func (a *Actor) CollidesWithPoint(p mgl64.Vec3) bool {
	return a.Box.Contains(p)
}

// ScanAhead samples rng integer-spaced points along the heading, starting at
// the actor's own position, and reports whether any falls inside the target's
// box. Thin targets at long range can slip between samples.
func (a *Actor) ScanAhead(target *Actor, rng int) bool {
	dir := a.Forward()
	for i := 0; i < rng; i++ {
		p := a.Position.Add(dir.Mul(float64(i)))
		if target.Box.Contains(p) {
			return true
		}
	}
	return false
}

// Kill stops the actor and parks it at SentinelY. Calling it again changes nothing.
func (a *Actor) Kill() {
	a.CanMove = false
	a.Position[1] = SentinelY
	a.UpdateBoundingBox()
}

// AdjustHealth adds delta without clamping. Death is decided by the owner's
// next update, not here.
func (a *Actor) AdjustHealth(delta int) {
	a.Health += delta
}

// Transform is the world matrix for the actor's main mesh.
func (a *Actor) Transform() mgl64.Mat4 {
	return WorldTransform(a.Scale, a.Rotation, a.Position)
}

func (a *Actor) draw(r Renderer) {
	if !a.Alive() || a.model == nil {
		return
	}
	r.DrawMesh(a.model, a.Transform())
}

// headingVector is the unit step on the ground plane for a heading in degrees.
func headingVector(deg float64) mgl64.Vec3 {
	rad := deg * math.Pi / 180
	return mgl64.Vec3{math.Cos(rad), 0, math.Sin(rad)}
}

// wrapDegrees folds an out-of-range angle back into [0,360] the way the
// controls expect: below zero jumps to 360, above 360 jumps to 0.
func wrapDegrees(deg float64) float64 {
	if deg > 360 {
		return 0
	}
	if deg < 0 {
		return 360
	}
	return deg
}
