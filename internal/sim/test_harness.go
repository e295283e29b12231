package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pilot produces the player's input for the next tick.
type Pilot func(w *World) Input

// IdlePilot never touches the controls.
func IdlePilot(*World) Input { return Input{} }

// TurretSweepPilot parks the hull and keeps traversing the turret while
// holding the trigger.
func TurretSweepPilot(w *World) Input {
	return Input{Fire: true, MouseDX: -20}
}

// HunterPilot swings the hull toward the nearest living enemy, drives while
// the enemy is far, and fires once the turret is roughly on target.
func HunterPilot(w *World) Input {
	p := w.Player()
	var best *EnemyTank
	bestDist := math.MaxFloat64
	for _, e := range w.Enemies() {
		if e.Dead() {
			continue
		}
		d := e.Position.Sub(p.Position).Len()
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	if best == nil {
		return Input{}
	}
	want := math.Atan2(best.Position.Z()-p.Position.Z(), best.Position.X()-p.Position.X()) * 180 / math.Pi
	if want < 0 {
		want += 360
	}
	in := Input{}
	switch diff := angleDiff(want, p.Heading); {
	case diff > 2:
		in.Left = true
	case diff < -2:
		in.Right = true
	default:
		in.Forward = bestDist > 40
	}
	// turret follows the hull's wanted bearing; mouse travel is in pixels
	in.MouseDX = -angleDiff(want, p.TurretHeading) * w.Config().MouseDivisor * 0.2
	in.Fire = math.Abs(angleDiff(want, p.TurretHeading)) < 5
	return in
}

// angleDiff returns a-b folded into (-180,180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// TestSim is a headless harness around World used by tests and the batch
// report. It has no ebiten dependency.
type TestSim struct {
	World  *World
	SimLog *SimLog
	Config Config
	Pilot  Pilot
	DT     float64

	layout  [ArenaSize][ArenaSize]int
	verbose bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // applied before the world is built
	simOptRoster                      // applied after the world is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Config.Seed = seed }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithConfig edits the config before the world is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { edit(&ts.Config) }}
}

// WithArena replaces the wall map.
func WithArena(layout [ArenaSize][ArenaSize]int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.layout = layout }}
}

// WithPilot sets the player's input source.
func WithPilot(p Pilot) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Pilot = p }}
}

// WithTimestep sets the seconds simulated per tick.
func WithTimestep(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.DT = dt }}
}

// WithPlayerAt moves the player to (x, z) facing heading degrees.
func WithPlayerAt(x, z, heading float64) SimOption {
	return SimOption{simOptRoster, func(ts *TestSim) {
		p := ts.World.Player()
		p.Position = mgl64.Vec3{x, p.Position.Y(), z}
		p.PrevPosition = p.Position
		p.Heading = heading
		p.TurretHeading = heading
		p.UpdateBoundingBox()
	}}
}

// WithEnemyAt moves enemy idx onto tile t.
func WithEnemyAt(idx int, t Tile) SimOption {
	return SimOption{simOptRoster, func(ts *TestSim) {
		e := ts.World.Enemies()[idx]
		x, z := ts.World.Arena().Center(t)
		e.Position = mgl64.Vec3{x, e.Position.Y(), z}
		e.waypoint = t
		e.MoveState = MoveNone
		e.UpdateBoundingBox()
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Infrastructure (config, layout, seed, verbose), then the world is built
//  2. Roster placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Config: DefaultConfig(),
		Pilot:  IdlePilot,
		DT:     1.0 / 60,
		layout: DefaultLayout,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	w, err := NewWorld(ts.Config, DefaultCatalog(), WithSimLog(ts.SimLog), WithLayout(ts.layout))
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.World = w
	for _, o := range opts {
		if o.kind == simOptRoster {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.World.Step(ts.DT, ts.Pilot(ts.World))
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Step(ts.DT, ts.Pilot(ts.World))
		if predicate(ts) {
			return ts.World.Tick()
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick()
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Tick   int
	Actors []ActorSnapshot
}

// ActorSnapshot is a lightweight copy of a tank's state at a tick.
type ActorSnapshot struct {
	Label   string
	Group   Group
	X, Z    float64
	Heading float64
	Health  int
	Dead    bool
}

// Snapshot returns the current state of every tank.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Tick: ts.World.Tick()}
	p := ts.World.Player()
	snap.Actors = append(snap.Actors, ActorSnapshot{
		Label: p.Label, Group: p.Group(), X: p.Position.X(), Z: p.Position.Z(),
		Heading: p.Heading, Health: p.Health, Dead: p.Dead(),
	})
	for _, e := range ts.World.Enemies() {
		snap.Actors = append(snap.Actors, ActorSnapshot{
			Label: e.Label, Group: e.Group(), X: e.Position.X(), Z: e.Position.Z(),
			Heading: e.Heading, Health: e.Health, Dead: e.Dead(),
		})
	}
	return snap
}
