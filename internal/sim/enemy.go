package sim

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// EnemySpawns are the tiles enemy tanks start on, in roster order.
var EnemySpawns = []Tile{{I: 1, J: 8}, {I: 8, J: 1}, {I: 8, J: 8}, {I: 1, J: 1}, {I: 4, J: 8}}

// EnemyTank is a scripted unit. It random-walks the open tiles, and when its
// forward sensor finds the player it stops and shoots instead.
type EnemyTank struct {
	Actor

	turret *Model
	arena  *Arena
	rng    *rand.Rand

	MoveState MoveState
	// waypoint is the tile centre the unit is driving toward.
	waypoint Tile

	speed        float64
	scanRange    int
	muzzleHeight float64

	pool pool

	sighted bool
	dead    bool
	rec     recorder
}

// NewEnemyTank places an enemy on the centre of spawn. rng drives the patrol
// choices and must not be shared across goroutines.
func NewEnemyTank(label string, cfg Config, arena *Arena, spawn Tile, rng *rand.Rand, hull, turret, bullet *Model) *EnemyTank {
	x, z := arena.Center(spawn)
	e := &EnemyTank{
		Actor:        newActor(label, KindEnemy, GroupEnemy, hull, mgl64.Vec3{x, PlayerSpawn.Y(), z}, mgl64.Vec3{tankScale, tankScale, tankScale}),
		turret:       turret,
		arena:        arena,
		rng:          rng,
		waypoint:     spawn,
		speed:        cfg.EnemySpeed,
		scanRange:    cfg.ScanRange,
		muzzleHeight: cfg.MuzzleHeight,
		pool:         newPool(label, GroupEnemy, bullet, cfg, cfg.EnemyFireCooldown),
	}
	e.Health = cfg.EnemyHealth
	e.CanMove = true
	return e
}

// Dead reports whether the unit has gone through its death transition.
func (e *EnemyTank) Dead() bool { return e.dead }

// Projectile returns pool slot i.
func (e *EnemyTank) Projectile(i int) *Projectile { return &e.pool.shots[i] }

// Waypoint is the tile the unit is currently heading for.
func (e *EnemyTank) Waypoint() Tile { return e.waypoint }

// Update runs one frame: death check, sensor, then either fire or patrol.
func (e *EnemyTank) Update(dt float64, target *Tank) {
	e.checkDeath()

	if e.CanMove {
		sighted := target != nil && e.ScanAhead(&target.Actor, e.scanRange)
		if sighted != e.sighted {
			e.sighted = sighted
			if sighted {
				e.rec.add(&e.Actor, CatPatrol, KeySighted, target.Label, e.Heading)
			}
		}
		if sighted {
			e.fire()
		} else {
			e.advance(e.speed * dt)
		}
		e.Rotation[1] = e.Heading / 180
	}

	e.UpdateBoundingBox()
	e.pool.tick(dt)
}

func (e *EnemyTank) fire() bool {
	origin := e.Position.Add(mgl64.Vec3{0, e.muzzleHeight, 0})
	slot := e.pool.fire(e.Heading, origin)
	if slot < 0 {
		return false
	}
	e.rec.add(&e.Actor, CatCombat, KeyFire, e.pool.shots[slot].Label, e.Heading)
	return true
}

// advance drives toward the current waypoint. Arriving at a tile centre picks
// the next direction from the patrol table; a large budget may cross several
// tiles in one call.
func (e *EnemyTank) advance(budget float64) {
	for budget > 0 {
		tx, tz := e.arena.Center(e.waypoint)
		dx := tx - e.Position.X()
		dz := tz - e.Position.Z()
		d := math.Hypot(dx, dz)
		if d > budget && e.MoveState != MoveNone {
			e.Position = e.Position.Add(e.Forward().Mul(budget))
			return
		}
		if d > budget {
			// no direction yet and not on a centre: head straight for it
			e.Position[0] += dx / d * budget
			e.Position[2] += dz / d * budget
			return
		}
		e.Position[0] = tx
		e.Position[2] = tz
		budget -= d
		if !e.choose(e.waypoint) {
			return
		}
	}
}

// choose picks uniformly among the legal directions out of at, so a junction
// with n branches takes each with probability 1/n. It reports false when the
// tile has no exits.
func (e *EnemyTank) choose(at Tile) bool {
	dirs := e.arena.Directions(at)
	if len(dirs) == 0 {
		e.MoveState = MoveNone
		return false
	}
	m := dirs[e.rng.Intn(len(dirs))]
	s := m.step()
	e.MoveState = m
	e.Heading = m.Heading()
	e.waypoint = Tile{I: at.I + s.I, J: at.J + s.J}
	e.rec.add(&e.Actor, CatPatrol, KeyTurn, m.String(), float64(len(dirs)))
	return true
}

func (e *EnemyTank) checkDeath() {
	if e.dead || e.Health > 0 {
		return
	}
	e.dead = true
	e.Kill()
	e.rec.add(&e.Actor, CatState, KeyDeath, "destroyed", float64(e.Health))
}

// CollidePlayer checks the player's projectiles against this unit. A single
// hit sets health to zero; the player takes fixed damage per hit instead, and
// that difference is intentional. It reports whether this unit was hit.
func (e *EnemyTank) CollidePlayer(t *Tank) bool {
	if t.Group() != GroupPlayer {
		return false
	}
	hit := false
	for i := range t.pool.shots {
		shot := &t.pool.shots[i]
		if !shot.Flying() || !e.CollidesWithPoint(shot.Position) {
			continue
		}
		shot.Kill()
		e.Health = 0
		hit = true
		e.rec.add(&e.Actor, CatCombat, KeyHit, shot.Label+" -> "+e.Label, 0)
	}
	return hit
}

// Render draws the hull with its turret and any projectiles in flight.
func (e *EnemyTank) Render(r Renderer) {
	if e.Alive() {
		e.Actor.draw(r)
		if e.turret != nil {
			pos := e.Position.Add(mgl64.Vec3{0, turretLift * e.Scale.Y(), 0})
			r.DrawMesh(e.turret, WorldTransform(e.Scale, e.Rotation, pos))
		}
	}
	e.pool.draw(r)
}
