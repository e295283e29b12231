package sim

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"
)

func drawVec(t *rapid.T, label string, lo, hi float64) mgl64.Vec3 {
	return mgl64.Vec3{
		rapid.Float64Range(lo, hi).Draw(t, label+".x"),
		rapid.Float64Range(lo, hi).Draw(t, label+".y"),
		rapid.Float64Range(lo, hi).Draw(t, label+".z"),
	}
}

func TestProperty_RefreshKeepsMinBelowMax(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := drawVec(t, "min", -100, 100)
		size := drawVec(t, "size", 0, 50)
		scale := drawVec(t, "scale", -3, 3)
		pos := drawVec(t, "pos", -500, 500)

		b := Refresh(lo, lo.Add(size), scale, pos)
		for i := 0; i < 3; i++ {
			if b.Min[i] > b.Max[i] {
				t.Fatalf("axis %d: min %v > max %v", i, b.Min[i], b.Max[i])
			}
		}
	})
}

func TestProperty_BuiltBoxContainsEveryVertex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		verts := make([]mgl64.Vec3, n)
		for i := range verts {
			verts[i] = drawVec(t, "v", -1000, 1000)
		}
		b, err := BuildBoundingBox(verts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, v := range verts {
			if !b.Contains(v) {
				t.Fatalf("box %+v misses vertex %v", b, v)
			}
		}
	})
}

func TestProperty_KillIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pos := drawVec(t, "pos", -200, 200)
		a := newActor("a", KindEnemy, GroupEnemy, nil, pos, mgl64.Vec3{1, 1, 1})
		a.CanMove = rapid.Bool().Draw(t, "canMove")
		a.Kill()
		first := a
		for i := rapid.IntRange(1, 4).Draw(t, "repeats"); i > 0; i-- {
			a.Kill()
		}
		if a != first {
			t.Fatalf("repeat kill changed state")
		}
		if a.Position.X() != pos.X() || a.Position.Z() != pos.Z() {
			t.Fatal("kill must only touch the height")
		}
	})
}

func TestProperty_PoolSlotsCycleInOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		interval := rapid.Float64Range(0.05, 2).Draw(t, "interval")
		pl := newPool("P0", GroupPlayer, nil, DefaultConfig(), interval)
		shots := rapid.IntRange(1, 12).Draw(t, "shots")
		for i := 0; i < shots; i++ {
			want := i % PoolSize
			// ground the previous shots so every slot is free
			for s := range pl.shots {
				pl.shots[s].Kill()
			}
			if got := pl.fire(0, mgl64.Vec3{0, 3.5, 0}); got != want {
				t.Fatalf("shot %d: slot %d, want %d", i, got, want)
			}
			pl.cooldown = interval
		}
	})
}

func TestProperty_CooldownGatesFire(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		interval := rapid.Float64Range(0.1, 1).Draw(t, "interval")
		pl := newPool("P0", GroupPlayer, nil, DefaultConfig(), interval)
		if pl.fire(0, mgl64.Vec3{0, 100, 0}) != 0 {
			t.Fatal("pool should start ready")
		}
		elapsed := 0.0
		for {
			dt := rapid.Float64Range(0.001, 0.05).Draw(t, "dt")
			pl.tick(dt)
			elapsed += dt
			fired := pl.fire(0, mgl64.Vec3{0, 100, 0}) >= 0
			if elapsed < interval {
				if fired {
					t.Fatalf("fired after %v of %v", elapsed, interval)
				}
				continue
			}
			if !fired {
				t.Fatalf("refused after %v of %v", elapsed, interval)
			}
			return
		}
	})
}

func TestProperty_PatrolNeverEntersWalls(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		arena := NewArena(DefaultLayout)
		seed := rapid.Int64().Draw(t, "seed")
		spawn := rapid.SampledFrom(EnemySpawns).Draw(t, "spawn")
		dt := rapid.Float64Range(0.005, 2).Draw(t, "dt")

		c := DefaultCatalog()
		hull, _ := c.Load(ModelTank)
		e := NewEnemyTank("E0", DefaultConfig(), arena, spawn, rand.New(rand.NewSource(seed)), hull, nil, nil)
		for i := 0; i < 200; i++ {
			e.Update(dt, nil)
			if tile := arena.TileAt(e.Position.X(), e.Position.Z()); !arena.Open(tile) {
				t.Fatalf("step %d: on wall tile %v", i, tile)
			}
		}
	})
}
