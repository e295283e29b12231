package sim

import "github.com/go-gl/mathgl/mgl64"

const buildingScale = 0.2

// Building is an immovable obstacle. It blocks tanks through their movement
// probe and swallows any projectile that enters it.
type Building struct {
	Actor
	rec recorder
}

// NewBuilding places a building on the ground at (x, z).
func NewBuilding(label string, m *Model, x, z float64) *Building {
	b := &Building{
		Actor: newActor(label, KindBuilding, GroupNeutral, m, mgl64.Vec3{x, 0, z}, mgl64.Vec3{buildingScale, buildingScale, buildingScale}),
	}
	b.Health = 1
	return b
}

// Absorb spends a if it is an attacker inside the building. It reports
// whether a was absorbed.
func (b *Building) Absorb(a *Actor) bool {
	if !a.IsAttacker || !a.CanMove || !b.CollidesWithPoint(a.Position) {
		return false
	}
	a.Kill()
	b.rec.add(&b.Actor, CatCombat, KeyAbsorb, a.Label, 0)
	return true
}

// Render draws the building.
func (b *Building) Render(r Renderer) {
	b.Actor.draw(r)
}
