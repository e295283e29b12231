package sim

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// testModel builds a box model spanning [min,max].
// vecNear compares component-wise with an absolute tolerance, so trig noise
// around zero does not fail the comparison.
func vecNear(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func testModel(t *testing.T, min, max mgl64.Vec3) *Model {
	t.Helper()
	m, err := NewModel("box", boxVertices(min, max), color.RGBA{})
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return m
}

// boxTarget is a unit-scale actor whose world box is exactly [min,max].
func boxTarget(t *testing.T, min, max mgl64.Vec3) *Actor {
	t.Helper()
	a := newActor("target", KindBuilding, GroupNeutral, testModel(t, min, max),
		mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	return &a
}

func TestUpdateBoundingBox_FollowsPosition(t *testing.T) {
	a := newActor("a", KindTank, GroupPlayer, testModel(t, mgl64.Vec3{-1, 0, -1}, mgl64.Vec3{1, 2, 1}),
		mgl64.Vec3{}, mgl64.Vec3{2, 2, 2})
	a.Position = mgl64.Vec3{10, 0, -5}
	a.UpdateBoundingBox()
	if a.Box.Min != (mgl64.Vec3{8, 0, -7}) || a.Box.Max != (mgl64.Vec3{12, 4, -3}) {
		t.Fatalf("box = %+v", a.Box)
	}
	if !a.CollidesWithPoint(mgl64.Vec3{10, 1, -5}) {
		t.Fatal("own position should collide after refresh")
	}
}

func TestUpdateBoundingBox_IgnoresRotation(t *testing.T) {
	a := newActor("a", KindTank, GroupPlayer, testModel(t, mgl64.Vec3{-4, 0, -1}, mgl64.Vec3{4, 1, 1}),
		mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	before := a.Box
	a.Heading = 90
	a.Rotation[1] = 0.5
	a.UpdateBoundingBox()
	if a.Box != before {
		t.Fatalf("rotation changed the box: %+v -> %+v", before, a.Box)
	}
}

func TestKill_Idempotent(t *testing.T) {
	a := newActor("a", KindEnemy, GroupEnemy, nil, mgl64.Vec3{3, 2, 4}, mgl64.Vec3{1, 1, 1})
	a.CanMove = true
	a.Kill()
	once := a
	a.Kill()
	if a.Position != once.Position || a.CanMove != once.CanMove || a.Box != once.Box {
		t.Fatalf("second kill changed state: %+v vs %+v", a, once)
	}
	if a.Position != (mgl64.Vec3{3, SentinelY, 4}) {
		t.Fatalf("position = %v, want parked at sentinel", a.Position)
	}
	if a.CanMove {
		t.Fatal("killed actor must not move")
	}
}

func TestAdjustHealth_NoClamp(t *testing.T) {
	a := Actor{Health: 30}
	a.AdjustHealth(-50)
	if a.Health != -20 {
		t.Fatalf("health = %d, want -20", a.Health)
	}
	if a.Alive() {
		t.Fatal("negative health should not be alive")
	}
}

func TestScanAhead_TargetInFront(t *testing.T) {
	scanner := newActor("s", KindEnemy, GroupEnemy, nil, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	target := boxTarget(t, mgl64.Vec3{60, -1, -2}, mgl64.Vec3{64, 1, 2})
	if !scanner.ScanAhead(target, 100) {
		t.Fatal("target straight ahead within range should be sensed")
	}
}

func TestScanAhead_PerpendicularAndBehind(t *testing.T) {
	scanner := newActor("s", KindEnemy, GroupEnemy, nil, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	side := boxTarget(t, mgl64.Vec3{-2, -1, 40}, mgl64.Vec3{2, 1, 44})
	if scanner.ScanAhead(side, 100) {
		t.Fatal("perpendicular target should not be sensed")
	}
	behind := boxTarget(t, mgl64.Vec3{-44, -1, -2}, mgl64.Vec3{-40, 1, 2})
	if scanner.ScanAhead(behind, 100) {
		t.Fatal("target behind should not be sensed")
	}
}

func TestScanAhead_RespectsHeading(t *testing.T) {
	scanner := newActor("s", KindEnemy, GroupEnemy, nil, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	scanner.Heading = 90
	north := boxTarget(t, mgl64.Vec3{-2, -1, 40}, mgl64.Vec3{2, 1, 44})
	if !scanner.ScanAhead(north, 100) {
		t.Fatal("heading 90 should sweep +z")
	}
}

func TestScanAhead_BeyondRange(t *testing.T) {
	scanner := newActor("s", KindEnemy, GroupEnemy, nil, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	far := boxTarget(t, mgl64.Vec3{100.5, -1, -2}, mgl64.Vec3{110, 1, 2})
	if scanner.ScanAhead(far, 100) {
		t.Fatal("samples stop at range-1; target past that should be missed")
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 360},
		{0, 0},
		{180, 180},
		{360, 360},
		{360.5, 0},
	}
	for _, c := range cases {
		if got := wrapDegrees(c.in); got != c.want {
			t.Errorf("wrapDegrees(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGroupAndKindStrings(t *testing.T) {
	if GroupEnemy.String() != "enemy" || GroupPlayer.String() != "player" || GroupNeutral.String() != "neutral" {
		t.Fatal("unexpected group labels")
	}
	if KindProjectile.String() != "projectile" {
		t.Fatalf("kind label = %q", KindProjectile.String())
	}
}
