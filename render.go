package quill

// Image is an opaque backend texture handle. Backends wrap their native image
// type; the core only needs dimensions.
type Image interface {
	Size() (w, h int)
}

// Renderer is the narrow contract the core draws through. The core never
// depends on a specific backend; see the ebitendriver package for the
// Ebitengine implementation.
type Renderer interface {
	BeginFrame()
	EndFrame()

	DrawRect(r Rect, c Color)
	DrawImage(img Image, r Rect, tint Color)
	DrawText(s string, x, y float64, c Color)
	MeasureText(s string) (w, h float64)

	// PushScissor clips subsequent draws to r (global coordinates); PopScissor
	// restores the previous clip. Calls nest.
	PushScissor(r Rect)
	PopScissor()
}

// Draw renders the tree in painter order (insertion order, front-to-back)
// through r and clears the redraw flag. Invisible subtrees are skipped;
// drawables with ClipChildren scissor their children to their bounds.
func (ui *UI) Draw(r Renderer) {
	r.BeginFrame()
	drawTree(ui.root, r)
	r.EndFrame()
	ui.needsRedraw = false
}

func drawTree(d *Drawable, r Renderer) {
	if !d.Visible {
		return
	}
	if d.OnRender != nil {
		d.OnRender(d, r)
	}
	if len(d.children) == 0 {
		return
	}
	if d.ClipChildren {
		r.PushScissor(d.Bounds())
	}
	for _, child := range d.children {
		drawTree(child, r)
	}
	if d.ClipChildren {
		r.PopScissor()
	}
}
