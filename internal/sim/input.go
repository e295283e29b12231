package sim

// Input is the per-frame snapshot of held controls. The front end fills it
// from whatever input API it uses.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Fire    bool

	// MouseDX is the horizontal cursor travel in pixels since the last frame.
	MouseDX float64
}
