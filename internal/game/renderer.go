package game

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tank-Skirmish/internal/sim"
)

// viewSpan is the world distance visible across the short side of the
// playfield at zoom 1.
const viewSpan = 300.0

// point is a screen-space position.
type point struct{ x, y float64 }

// screenRenderer draws a top-down projection of the world into an offscreen
// buffer: world +x runs right, world +z runs up the screen.
type screenRenderer struct {
	target *ebiten.Image
	w, h   int

	camX, camZ float64
	scale      float64 // pixels per world unit
}

func newScreenRenderer(w, h int) *screenRenderer {
	return &screenRenderer{
		target: ebiten.NewImage(w, h),
		w:      w,
		h:      h,
		scale:  1,
	}
}

// begin clears the buffer and centres the view on (x, z).
func (r *screenRenderer) begin(x, z, zoom float64) {
	r.target.Clear()
	r.target.Fill(color.RGBA{R: 34, G: 44, B: 30, A: 255})
	r.camX, r.camZ = x, z
	r.scale = viewScale(r.w, r.h, zoom)
}

func viewScale(w, h int, zoom float64) float64 {
	short := w
	if h < short {
		short = h
	}
	return float64(short) / viewSpan * zoom
}

// toScreen maps a world ground position to buffer pixels.
func (r *screenRenderer) toScreen(x, z float64) point {
	return point{
		x: float64(r.w)/2 + (x-r.camX)*r.scale,
		y: float64(r.h)/2 - (z-r.camZ)*r.scale,
	}
}

// DrawMesh implements sim.Renderer. The mesh is transformed to world space
// and its ground-plane outline filled in the model colour.
func (r *screenRenderer) DrawMesh(m *sim.Model, world mgl64.Mat4) {
	if len(m.Vertices) == 0 {
		return
	}
	pts := make([]point, 0, len(m.Vertices))
	for _, v := range m.Vertices {
		wv := world.Mul4x1(v.Vec4(1))
		pts = append(pts, r.toScreen(wv.X(), wv.Z()))
	}
	hull := convexHull(pts)
	if len(hull) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(hull[0].x), float32(hull[0].y))
	for _, p := range hull[1:] {
		path.LineTo(float32(p.x), float32(p.y))
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(m.Color)
	vector.FillPath(r.target, &path, &vector.FillOptions{}, op)

	edge := color.RGBA{R: 10, G: 12, B: 10, A: 200}
	for i := range hull {
		a, b := hull[i], hull[(i+1)%len(hull)]
		vector.StrokeLine(r.target, float32(a.x), float32(a.y), float32(b.x), float32(b.y), 1.0, edge, true)
	}
}

// drawGround marks the open tiles so the corridors read at a glance.
func (r *screenRenderer) drawGround(a *sim.Arena) {
	const half = 13.0
	c := color.RGBA{R: 44, G: 56, B: 38, A: 255}
	for i := 0; i < sim.ArenaSize; i++ {
		for j := 0; j < sim.ArenaSize; j++ {
			t := sim.Tile{I: i, J: j}
			if !a.Open(t) {
				continue
			}
			x, z := a.Center(t)
			tl := r.toScreen(x-half, z+half)
			side := float32(2 * half * r.scale)
			vector.FillRect(r.target, float32(tl.x), float32(tl.y), side, side, c, false)
		}
	}
}

// drawTurretBearing draws the aim line from the hull along the turret heading
// and a marker where the chase camera eye sits.
func (r *screenRenderer) drawTurretBearing(t *sim.Tank) {
	if t.Dead() {
		return
	}
	eye, target := t.ChaseCamera()
	from := r.toScreen(target.X(), target.Z())
	aim := target.Sub(eye)
	aim[1] = 0
	if aim.Len() == 0 {
		return
	}
	tip := target.Add(aim.Normalize().Mul(40))
	to := r.toScreen(tip.X(), tip.Z())
	vector.StrokeLine(r.target, float32(from.x), float32(from.y), float32(to.x), float32(to.y), 1.0,
		color.RGBA{R: 255, G: 230, B: 120, A: 160}, true)
	cam := r.toScreen(eye.X(), eye.Z())
	vector.StrokeCircle(r.target, float32(cam.x), float32(cam.y), 3, 1.0,
		color.RGBA{R: 180, G: 200, B: 255, A: 180}, true)
}

// convexHull returns the hull of pts in order (monotone chain). Fewer than
// three distinct points come back unchanged.
func convexHull(pts []point) []point {
	if len(pts) < 3 {
		return pts
	}
	s := make([]point, len(pts))
	copy(s, pts)
	sort.Slice(s, func(i, j int) bool {
		if s[i].x != s[j].x {
			return s[i].x < s[j].x
		}
		return s[i].y < s[j].y
	})
	cross := func(o, a, b point) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}
	hull := make([]point, 0, 2*len(s))
	for _, p := range s {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(s) - 2; i >= 0; i-- {
		p := s[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
