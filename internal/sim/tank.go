package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	tankScale = 0.07

	// turretLift is the turret's height above the hull in model units.
	turretLift = 30.0

	// probeDistance is how far ahead of the hull the movement probe sits.
	probeDistance = 12.0
)

// PlayerSpawn is where the player tank starts.
var PlayerSpawn = mgl64.Vec3{0, 2, 0}

// Tank is the player-controlled unit: a hull, an independently aimed turret
// and a pool of three projectiles.
type Tank struct {
	Actor

	// PrevPosition is the position before the last Move, used for rollback.
	PrevPosition mgl64.Vec3

	TurretHeading  float64 // degrees
	turretRotation mgl64.Vec3
	turret         *Model

	pool pool

	moveSpeed    float64
	turnSpeed    float64
	mouseDivisor float64
	hitDamage    int
	muzzleHeight float64

	dead bool
	rec  recorder
}

// NewTank builds the player tank at PlayerSpawn.
func NewTank(label string, cfg Config, hull, turret, bullet *Model) *Tank {
	t := &Tank{
		Actor:        newActor(label, KindTank, GroupPlayer, hull, PlayerSpawn, mgl64.Vec3{tankScale, tankScale, tankScale}),
		turret:       turret,
		pool:         newPool(label, GroupPlayer, bullet, cfg, cfg.PlayerFireCooldown),
		moveSpeed:    cfg.PlayerMoveSpeed,
		turnSpeed:    cfg.PlayerTurnSpeed,
		mouseDivisor: cfg.MouseDivisor,
		hitDamage:    cfg.HitDamage,
		muzzleHeight: cfg.MuzzleHeight,
	}
	t.Health = cfg.PlayerHealth
	t.CanMove = true
	t.PrevPosition = t.Position
	return t
}

// Dead reports whether the tank has gone through its death transition.
func (t *Tank) Dead() bool { return t.dead }

// Projectile returns pool slot i.
func (t *Tank) Projectile(i int) *Projectile { return &t.pool.shots[i] }

// Turn rotates the hull by delta degrees.
func (t *Tank) Turn(delta float64) {
	if !t.CanMove {
		return
	}
	t.Heading += delta
}

// TurnTurret rotates the turret by delta degrees.
func (t *Tank) TurnTurret(delta float64) {
	if !t.CanMove {
		return
	}
	t.TurretHeading += delta
}

// Move drives the hull delta units along its heading, remembering where it was.
func (t *Tank) Move(delta float64) {
	if !t.CanMove {
		return
	}
	t.PrevPosition = t.Position
	t.Position = t.Position.Add(t.Forward().Mul(delta))
}

// Fire launches the next pool slot along the turret heading. It returns false
// while cooling down or when that slot is still in the air.
func (t *Tank) Fire() bool {
	if !t.CanMove {
		return false
	}
	origin := t.Position.Add(mgl64.Vec3{0, t.muzzleHeight, 0})
	slot := t.pool.fire(t.TurretHeading, origin)
	if slot < 0 {
		return false
	}
	t.rec.add(&t.Actor, CatCombat, KeyFire, t.pool.shots[slot].Label, t.TurretHeading)
	return true
}

// Update applies one frame of input and advances the pool.
func (t *Tank) Update(dt float64, in Input) {
	t.checkDeath()

	if t.mouseDivisor != 0 {
		t.TurnTurret(-in.MouseDX / t.mouseDivisor)
	}
	if in.Left {
		t.Turn(t.turnSpeed * dt)
	}
	if in.Right {
		t.Turn(-t.turnSpeed * dt)
	}
	if in.Forward || in.Back {
		drive := 0.0
		if in.Forward {
			drive += t.moveSpeed * dt
		}
		if in.Back {
			drive -= t.moveSpeed * dt
		}
		t.Move(drive)
	}
	if in.Fire {
		t.Fire()
	}

	t.Heading = wrapDegrees(t.Heading)
	t.TurretHeading = wrapDegrees(t.TurretHeading)
	t.Rotation[1] = t.Heading / 180
	t.turretRotation[1] = t.TurretHeading / 180

	t.UpdateBoundingBox()
	t.pool.tick(dt)
	t.rec.addVerbose(&t.Actor, CatMove, KeyPosition,
		fmt.Sprintf("(%.2f,%.2f)", t.Position.X(), t.Position.Z()), t.Heading)
}

func (t *Tank) checkDeath() {
	if t.dead || t.Health > 0 {
		return
	}
	t.dead = true
	t.Kill()
	t.rec.add(&t.Actor, CatState, KeyDeath, "destroyed", float64(t.Health))
}

// CollideBuilding blocks movement into b and lets b absorb this tank's shots.
// It reports whether the hull was rolled back.
func (t *Tank) CollideBuilding(b *Building) bool {
	rolledBack := false
	probe := t.Position.Add(t.Forward().Mul(probeDistance))
	if b.CollidesWithPoint(probe) {
		t.Position = t.PrevPosition
		t.UpdateBoundingBox()
		rolledBack = true
		t.rec.add(&t.Actor, CatMove, KeyRollback, b.Label, 0)
	}
	for i := range t.pool.shots {
		b.Absorb(&t.pool.shots[i].Actor)
	}
	return rolledBack
}

// CollideEnemy applies e's projectiles to this tank. Each projectile inside
// the hull box is spent and costs hitDamage health. It returns the hit count.
func (t *Tank) CollideEnemy(e *EnemyTank) int {
	if e.Group() != GroupEnemy {
		return 0
	}
	hits := 0
	for i := range e.pool.shots {
		shot := &e.pool.shots[i]
		if !shot.Flying() || !t.CollidesWithPoint(shot.Position) {
			continue
		}
		shot.Kill()
		t.AdjustHealth(-t.hitDamage)
		hits++
		t.rec.add(&t.Actor, CatCombat, KeyHit, shot.Label+" -> "+t.Label, float64(t.Health))
	}
	return hits
}

// TurretTransform is the world matrix of the turret mesh, lifted above the hull.
func (t *Tank) TurretTransform() mgl64.Mat4 {
	pos := t.Position.Add(mgl64.Vec3{0, turretLift * t.Scale.Y(), 0})
	return WorldTransform(t.Scale, t.turretRotation, pos)
}

// ChaseCamera returns an eye 20 units behind the turret and 10 up, looking at
// a point 8 units above the hull.
func (t *Tank) ChaseCamera() (eye, target mgl64.Vec3) {
	back := headingVector(t.TurretHeading).Mul(-20)
	eye = t.Position.Add(back).Add(mgl64.Vec3{0, 10, 0})
	target = t.Position.Add(mgl64.Vec3{0, 8, 0})
	return eye, target
}

// Render draws hull, turret and any projectiles in flight.
func (t *Tank) Render(r Renderer) {
	if t.Alive() {
		t.Actor.draw(r)
		if t.turret != nil {
			r.DrawMesh(t.turret, t.TurretTransform())
		}
	}
	t.pool.draw(r)
}
