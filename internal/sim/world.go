package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Outcome is the state of the session as a whole.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWon             // every enemy destroyed
	OutcomeLost            // player destroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// World owns the whole actor roster for one session. The roster is fixed at
// construction; nothing is added or freed while the session runs.
type World struct {
	ID uuid.UUID

	cfg       Config
	arena     *Arena
	player    *Tank
	enemies   []*EnemyTank
	buildings []*Building

	simLog  *SimLog
	logger  zerolog.Logger
	rng     *rand.Rand
	tick    int
	outcome Outcome

	layout [ArenaSize][ArenaSize]int
}

// Option customises a World before its roster is built.
type Option func(*World)

// WithLogger routes setup messages and sim events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithSimLog records events into sl instead of a fresh log.
func WithSimLog(sl *SimLog) Option {
	return func(w *World) { w.simLog = sl }
}

// WithLayout replaces the arena wall map.
func WithLayout(layout [ArenaSize][ArenaSize]int) Option {
	return func(w *World) { w.layout = layout }
}

// NewWorld loads every model through loader and builds the roster. Any load
// failure aborts setup.
func NewWorld(cfg Config, loader ModelLoader, opts ...Option) (*World, error) {
	w := &World{
		ID:     uuid.New(),
		cfg:    cfg,
		logger: zerolog.Nop(),
		layout: DefaultLayout,
	}
	for _, o := range opts {
		o(w)
	}
	if w.simLog == nil {
		w.simLog = NewSimLog(false)
	}
	w.logger = w.logger.With().Str("session", w.ID.String()).Logger()
	w.simLog.SetLogger(w.logger)
	w.rng = rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- game only

	models := map[string]*Model{}
	for _, name := range []string{ModelTank, ModelTurret, ModelBuilding, ModelBullet} {
		m, err := loader.Load(name)
		if err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
		models[name] = m
	}

	if cfg.EnemyCount < 0 || cfg.EnemyCount > len(EnemySpawns) {
		return nil, fmt.Errorf("setup: enemy count %d outside [0,%d]", cfg.EnemyCount, len(EnemySpawns))
	}

	w.arena = NewArena(w.layout)
	rec := recorder{log: w.simLog, tick: &w.tick}

	for _, t := range w.arena.Walls() {
		x, z := w.arena.Center(t)
		b := NewBuilding(fmt.Sprintf("B%d", t.I*ArenaSize+t.J), models[ModelBuilding], x, z)
		b.rec = rec
		w.buildings = append(w.buildings, b)
	}

	w.player = NewTank("P0", cfg, models[ModelTank], models[ModelTurret], models[ModelBullet])
	w.player.rec = rec

	for i := 0; i < cfg.EnemyCount; i++ {
		spawn := EnemySpawns[i]
		if !w.arena.Open(spawn) {
			return nil, fmt.Errorf("setup: enemy spawn %v is not open ground", spawn)
		}
		e := NewEnemyTank(fmt.Sprintf("E%d", i), cfg, w.arena, spawn, w.rng,
			models[ModelTank], models[ModelTurret], models[ModelBullet])
		e.rec = rec
		w.enemies = append(w.enemies, e)
	}

	w.logger.Info().
		Int("buildings", len(w.buildings)).
		Int("enemies", len(w.enemies)).
		Int64("seed", cfg.Seed).
		Msg("world ready")
	return w, nil
}

func (w *World) Tick() int              { return w.tick }
func (w *World) Player() *Tank          { return w.player }
func (w *World) Enemies() []*EnemyTank  { return w.enemies }
func (w *World) Buildings() []*Building { return w.buildings }
func (w *World) Arena() *Arena          { return w.arena }
func (w *World) SimLog() *SimLog        { return w.simLog }
func (w *World) Outcome() Outcome       { return w.outcome }
func (w *World) Config() Config         { return w.cfg }

// Step advances one frame. Every actor is updated before any collision is
// resolved, so collisions always see this frame's positions.
func (w *World) Step(dt float64, in Input) {
	w.tick++

	// 1. UPDATE
	w.player.Update(dt, in)
	for _, e := range w.enemies {
		e.Update(dt, w.player)
	}

	// 2. COLLIDE
	for _, b := range w.buildings {
		ResolveCollision(w.player, b)
		for _, e := range w.enemies {
			ResolveCollision(b, e)
		}
	}
	for _, e := range w.enemies {
		ResolveCollision(w.player, e)
		ResolveCollision(e, w.player)
	}

	w.updateOutcome()
}

func (w *World) updateOutcome() {
	if w.outcome != OutcomeOngoing {
		return
	}
	switch {
	case w.player.Dead():
		w.outcome = OutcomeLost
	case len(w.enemies) > 0 && w.allEnemiesDead():
		w.outcome = OutcomeWon
	default:
		return
	}
	w.simLog.Add(w.tick, "--", "--", CatState, KeyOutcome, w.outcome.String(), 0)
	w.logger.Info().Int("tick", w.tick).Str("outcome", w.outcome.String()).Msg("session decided")
}

func (w *World) allEnemiesDead() bool {
	for _, e := range w.enemies {
		if !e.Dead() {
			return false
		}
	}
	return true
}

// Render draws buildings, then enemies, then the player.
func (w *World) Render(r Renderer) {
	for _, b := range w.buildings {
		b.Render(r)
	}
	for _, e := range w.enemies {
		e.Render(r)
	}
	w.player.Render(r)
}

// ResolveCollision runs the collision rule for the ordered pair (a, b).
// Pairs without a rule are ignored.
func ResolveCollision(a, b Unit) {
	switch a := a.(type) {
	case *Tank:
		switch b := b.(type) {
		case *Building:
			a.CollideBuilding(b)
		case *EnemyTank:
			a.CollideEnemy(b)
		}
	case *EnemyTank:
		if t, ok := b.(*Tank); ok {
			a.CollidePlayer(t)
		}
	case *Building:
		// the player's shots are offered through Tank.CollideBuilding
		if e, ok := b.(*EnemyTank); ok {
			for i := range e.pool.shots {
				a.Absorb(&e.pool.shots[i].Actor)
			}
		}
	}
}
