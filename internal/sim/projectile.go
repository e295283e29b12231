package sim

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// PoolSize is the number of projectiles every armed unit owns.
const PoolSize = 3

const projectileScale = 0.5

// Projectile is a pooled shot. It only carries spatial state; whoever detects
// the hit applies damage and calls Kill.
//
// idle:   CanMove=false, parked at SentinelY
// flying: CanMove=true, advancing along Heading and sinking
// spent:  fell below y=0, back to idle through Kill
type Projectile struct {
	Actor

	speed  float64
	drop   float64
	muzzle float64
}

func newProjectile(label string, group Group, m *Model, cfg Config) Projectile {
	p := Projectile{
		Actor:  newActor(label, KindProjectile, group, m, mgl64.Vec3{0, SentinelY, 0}, mgl64.Vec3{projectileScale, projectileScale, projectileScale}),
		speed:  cfg.ProjectileSpeed,
		drop:   cfg.ProjectileDrop,
		muzzle: cfg.MuzzleOffset,
	}
	p.Health = 1
	p.IsAttacker = true
	return p
}

// Flying reports whether the projectile is in the air.
func (p *Projectile) Flying() bool { return p.CanMove }

// Fire launches an idle projectile from origin along heading. A projectile
// already in flight is left alone and Fire returns false.
func (p *Projectile) Fire(heading float64, origin mgl64.Vec3) bool {
	if p.CanMove {
		return false
	}
	p.Heading = heading
	p.Rotation[1] = heading / 180
	p.Position = origin.Add(headingVector(heading).Mul(p.muzzle))
	p.CanMove = true
	p.UpdateBoundingBox()
	return true
}

// Tick advances a flying projectile and parks it once it drops below ground.
func (p *Projectile) Tick(dt float64) {
	if !p.CanMove {
		return
	}
	step := headingVector(p.Heading).Mul(p.speed * dt)
	step[1] = -p.drop * dt
	p.Position = p.Position.Add(step)
	if p.Position.Y() < 0 {
		p.Kill()
		return
	}
	p.UpdateBoundingBox()
}

func (p *Projectile) draw(r Renderer) {
	if !p.CanMove {
		return
	}
	p.Actor.draw(r)
}

// pool is the fixed round-robin magazine shared by both tank kinds.
type pool struct {
	shots    [PoolSize]Projectile
	next     int
	cooldown float64
	interval float64
}

func newPool(owner string, group Group, m *Model, cfg Config, interval float64) pool {
	var pl pool
	for i := range pl.shots {
		pl.shots[i] = newProjectile(owner+"/shot"+strconv.Itoa(i), group, m, cfg)
	}
	pl.interval = interval
	// ready to fire on the first frame
	pl.cooldown = interval
	return pl
}

// fire launches the next slot in order. It returns the slot index, or -1 when
// the cooldown has not elapsed or that slot is still airborne. A blocked slot
// does not advance the cursor.
func (pl *pool) fire(heading float64, origin mgl64.Vec3) int {
	if pl.cooldown < pl.interval {
		return -1
	}
	slot := pl.next
	if !pl.shots[slot].Fire(heading, origin) {
		return -1
	}
	pl.next = (pl.next + 1) % PoolSize
	pl.cooldown = 0
	return slot
}

func (pl *pool) tick(dt float64) {
	pl.cooldown += dt
	for i := range pl.shots {
		pl.shots[i].Tick(dt)
	}
}

func (pl *pool) draw(r Renderer) {
	for i := range pl.shots {
		pl.shots[i].draw(r)
	}
}
