package sim

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrModelNotFound is returned by a ModelLoader that has no entry for a name.
var ErrModelNotFound = errors.New("model not found")

// Model names requested by the world at setup.
const (
	ModelTank     = "tank"
	ModelTurret   = "turret"
	ModelBuilding = "building"
	ModelBullet   = "bullet"
)

// Model is a loaded mesh as the simulation sees it: the raw vertices, the
// local extents computed from them and a flat colour for the renderer.
type Model struct {
	Name     string
	Vertices []mgl64.Vec3
	Bounds   BoundingBox
	Color    color.RGBA
}

// ModelLoader resolves a model name to a loaded model.
type ModelLoader interface {
	Load(name string) (*Model, error)
}

// NewModel computes the local extents of vertices and wraps them in a Model.
func NewModel(name string, vertices []mgl64.Vec3, c color.RGBA) (*Model, error) {
	b, err := BuildBoundingBox(vertices)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}
	return &Model{Name: name, Vertices: vertices, Bounds: b, Color: c}, nil
}

// boxVertices returns the eight corners of the box [min,max].
func boxVertices(min, max mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, 8)
	for _, x := range []float64{min.X(), max.X()} {
		for _, y := range []float64{min.Y(), max.Y()} {
			for _, z := range []float64{min.Z(), max.Z()} {
				out = append(out, mgl64.Vec3{x, y, z})
			}
		}
	}
	return out
}

// Catalog is an in-memory ModelLoader. The zero value is empty; DefaultCatalog
// holds the procedural meshes the game ships with.
type Catalog struct {
	models map[string]*Model
}

// Add registers a model, replacing any previous entry with the same name.
func (c *Catalog) Add(m *Model) {
	if c.models == nil {
		c.models = make(map[string]*Model)
	}
	c.models[m.Name] = m
}

// Load implements ModelLoader.
func (c *Catalog) Load(name string) (*Model, error) {
	m, ok := c.models[name]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", name, ErrModelNotFound)
	}
	return m, nil
}

// DefaultCatalog builds box meshes sized in model units. Actors apply their
// own scale on top (tanks 0.07, buildings 0.2).
func DefaultCatalog() *Catalog {
	c := &Catalog{}
	specs := []struct {
		name     string
		min, max mgl64.Vec3
		col      color.RGBA
	}{
		{ModelTank, mgl64.Vec3{-60, 0, -45}, mgl64.Vec3{60, 40, 45}, color.RGBA{R: 70, G: 120, B: 60, A: 255}},
		{ModelTurret, mgl64.Vec3{-25, 0, -6}, mgl64.Vec3{85, 18, 6}, color.RGBA{R: 50, G: 90, B: 45, A: 255}},
		{ModelBuilding, mgl64.Vec3{-70, 0, -70}, mgl64.Vec3{70, 100, 70}, color.RGBA{R: 150, G: 140, B: 125, A: 255}},
		{ModelBullet, mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}, color.RGBA{R: 255, G: 220, B: 90, A: 255}},
	}
	for _, s := range specs {
		m, err := NewModel(s.name, boxVertices(s.min, s.max), s.col)
		if err != nil {
			// eight corners are always present
			panic(err)
		}
		c.Add(m)
	}
	return c
}
