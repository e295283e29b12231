package sim

import (
	"reflect"
	"testing"
)

// forwardPilot holds the throttle open.
func forwardPilot(*World) Input { return Input{Forward: true} }

// gunnerPilot sits still and keeps the trigger down.
func gunnerPilot(*World) Input { return Input{Fire: true} }

func TestScenario_DrivingIntoWallStops(t *testing.T) {
	x, z := NewArena(DefaultLayout).Center(Tile{I: 4, J: 1})
	ts := NewTestSim(
		WithConfig(func(c *Config) { c.EnemyCount = 0 }),
		WithPilot(forwardPilot),
		WithPlayerAt(x, z, 180), // west, toward the border wall at (4,0)
	)
	ts.RunTicks(120)

	p := ts.World.Player()
	// wall box edge is x=-105; the probe sits 12 ahead of the hull
	if px := p.Position.X(); px <= -93 || px >= -92 {
		t.Fatalf("player x = %.3f, want stopped just short of -93\n%s", px, ts.SimLog.FormatRange(ts.CurrentTick()-10, ts.CurrentTick()))
	}
	if ts.SimLog.CountCategory(CatMove, KeyRollback) == 0 {
		t.Fatal("expected rollback events")
	}
	if !ts.SimLog.HasEntry(CatMove, KeyRollback, "B40") {
		t.Fatalf("rollback should name the wall tile:\n%s", ts.SimLog.FormatRange(ts.CurrentTick()-10, ts.CurrentTick()))
	}
}

func TestScenario_OpenFieldDrivesFreely(t *testing.T) {
	var open [ArenaSize][ArenaSize]int
	ts := NewTestSim(
		WithConfig(func(c *Config) { c.EnemyCount = 0 }),
		WithArena(open),
		WithPilot(forwardPilot),
		WithPlayerAt(0, 0, 0),
	)
	if n := len(ts.World.Buildings()); n != 0 {
		t.Fatalf("open arena has %d buildings", n)
	}
	ts.RunTicks(120)
	if ts.SimLog.CountCategory(CatMove, KeyRollback) != 0 {
		t.Fatalf("unexpected rollback:\n%s", ts.SimLog.Format())
	}
	// 2s at 40 units/s
	if x := ts.World.Player().Position.X(); x < 79.99 || x > 80.01 {
		t.Fatalf("player reached x=%.2f, want 80", x)
	}
}

func TestScenario_CoarseTimestepCoversSameGround(t *testing.T) {
	var open [ArenaSize][ArenaSize]int
	ts := NewTestSim(
		WithConfig(func(c *Config) { c.EnemyCount = 0 }),
		WithArena(open),
		WithTimestep(0.5),
		WithPilot(forwardPilot),
		WithPlayerAt(0, 0, 0),
	)
	ts.RunTicks(4)
	if x := ts.World.Player().Position.X(); x < 79.99 || x > 80.01 {
		t.Fatalf("player reached x=%.2f in four half-second ticks, want 80", x)
	}
}

func TestScenario_VerboseRecordsPositions(t *testing.T) {
	quiet := NewTestSim(WithConfig(func(c *Config) { c.EnemyCount = 0 }))
	quiet.RunTicks(3)
	if n := quiet.SimLog.CountCategory(CatMove, KeyPosition); n != 0 {
		t.Fatalf("quiet run logged %d positions", n)
	}

	loud := NewTestSim(WithConfig(func(c *Config) { c.EnemyCount = 0 }), WithVerbose(true))
	loud.RunTicks(3)
	if n := loud.SimLog.CountCategory(CatMove, KeyPosition); n != 3 {
		t.Fatalf("verbose run logged %d positions, want one per tick", n)
	}
	last, ok := loud.SimLog.LastOf(CatMove, KeyPosition)
	if !ok || last.Tick != 3 || last.Actor != "P0" {
		t.Fatalf("last position entry = %+v", last)
	}
}

func TestScenario_EnemyWinsAgainstIdlePlayer(t *testing.T) {
	px, pz := NewArena(DefaultLayout).Center(Tile{I: 4, J: 3})
	ts := NewTestSim(
		WithConfig(func(c *Config) {
			c.EnemyCount = 1
			c.EnemySpeed = 0
		}),
		WithPlayerAt(px, pz, 0),
		WithEnemyAt(0, Tile{I: 4, J: 1}), // faces east, straight at the player
	)
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.World.Outcome() != OutcomeOngoing }, 600)
	if tick < 0 {
		t.Fatalf("no outcome after 10s\n%s", ts.SimLog.Summary(ts.World))
	}
	if ts.World.Outcome() != OutcomeLost {
		t.Fatalf("outcome = %v, want lost", ts.World.Outcome())
	}
	// 100 health at 50 per hit
	if hits := len(ts.SimLog.FilterActor("P0")); hits == 0 {
		t.Fatal("player log is empty")
	}
	hits := 0
	for _, e := range ts.SimLog.Filter(CatCombat, KeyHit) {
		if e.Actor == "P0" {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("player took %d hits, want 2\n%s", hits, ts.SimLog.Format())
	}
	if !ts.SimLog.HasEntry(CatPatrol, KeySighted, "P0") {
		t.Fatal("enemy should have logged sighting the player")
	}
}

func TestScenario_PlayerWinsWithOneShot(t *testing.T) {
	px, pz := NewArena(DefaultLayout).Center(Tile{I: 4, J: 1})
	ts := NewTestSim(
		WithConfig(func(c *Config) {
			c.EnemyCount = 1
			c.EnemySpeed = 0
		}),
		WithPilot(gunnerPilot),
		WithPlayerAt(px, pz, 90), // north up column 1
		WithEnemyAt(0, Tile{I: 1, J: 1}),
	)
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.World.Outcome() == OutcomeWon }, 300)
	if tick < 0 {
		t.Fatalf("enemy survived\n%s", ts.SimLog.Format())
	}
	if n := ts.SimLog.CountCategory(CatState, KeyDeath); n != 1 {
		t.Fatalf("deaths = %d, want 1", n)
	}
	if !ts.World.Enemies()[0].Parked() {
		t.Fatal("dead enemy should be parked")
	}
}

func TestScenario_HunterRunKeepsInvariants(t *testing.T) {
	ts := NewTestSim(WithSeed(42), WithPilot(HunterPilot))
	for i := 0; i < 3600 && ts.World.Outcome() == OutcomeOngoing; i++ {
		ts.RunTicks(1)
		checkInvariants(t, ts)
	}
	t.Log(ts.SimLog.Summary(ts.World))
	if ts.SimLog.CountCategory(CatCombat, KeyFire) == 0 {
		t.Fatal("nobody fired in a minute of play")
	}
}

func TestScenario_SameSeedSameRun(t *testing.T) {
	run := func() []SimSnapshot {
		ts := NewTestSim(WithSeed(9), WithPilot(HunterPilot))
		var snaps []SimSnapshot
		for i := 0; i < 10; i++ {
			ts.RunTicks(60)
			snaps = append(snaps, ts.Snapshot())
		}
		return snaps
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Fatal("identical seeds diverged")
	}
}

func TestScenario_TurretSweepHitsBuildings(t *testing.T) {
	ts := NewTestSim(
		WithConfig(func(c *Config) { c.EnemyCount = 0 }),
		WithPilot(TurretSweepPilot),
	)
	ts.RunTicks(600)
	if ts.SimLog.CountCategory(CatCombat, KeyAbsorb) == 0 {
		t.Fatalf("a full sweep should put shots into buildings\n%s", ts.SimLog.Summary(ts.World))
	}
}

// checkInvariants asserts state that must hold after every Step.
func checkInvariants(t *testing.T, ts *TestSim) {
	t.Helper()
	tick := ts.CurrentTick()
	check := func(a *Actor, dead bool, shots []*Projectile) {
		if dead && (a.CanMove || !a.Parked()) {
			t.Fatalf("T=%d %s: dead but not parked", tick, a.Label)
		}
		if !dead && a.Parked() {
			t.Fatalf("T=%d %s: parked while alive", tick, a.Label)
		}
		for _, s := range shots {
			if s.Flying() == s.Parked() {
				t.Fatalf("T=%d %s: flying=%t parked=%t", tick, s.Label, s.Flying(), s.Parked())
			}
			if s.Flying() && s.Position.Y() < 0 {
				t.Fatalf("T=%d %s: flying below ground", tick, s.Label)
			}
		}
		arena := ts.World.Arena()
		if !dead && a.Kind() == KindEnemy {
			if tile := arena.TileAt(a.Position.X(), a.Position.Z()); !arena.Open(tile) {
				t.Fatalf("T=%d %s: on wall tile %v", tick, a.Label, tile)
			}
		}
	}
	p := ts.World.Player()
	check(&p.Actor, p.Dead(), []*Projectile{p.Projectile(0), p.Projectile(1), p.Projectile(2)})
	for _, e := range ts.World.Enemies() {
		check(&e.Actor, e.Dead(), []*Projectile{e.Projectile(0), e.Projectile(1), e.Projectile(2)})
	}
}
