package quill

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// recordRenderer logs the call sequence for painter-order assertions.
type recordRenderer struct {
	calls []string
}

func (r *recordRenderer) BeginFrame() { r.calls = append(r.calls, "begin") }
func (r *recordRenderer) EndFrame()   { r.calls = append(r.calls, "end") }
func (r *recordRenderer) DrawRect(Rect, Color) {
	r.calls = append(r.calls, "rect")
}
func (r *recordRenderer) DrawImage(Image, Rect, Color) {
	r.calls = append(r.calls, "image")
}
func (r *recordRenderer) DrawText(string, float64, float64, Color) {
	r.calls = append(r.calls, "text")
}
func (r *recordRenderer) MeasureText(string) (float64, float64) { return 0, 0 }
func (r *recordRenderer) PushScissor(Rect)                      { r.calls = append(r.calls, "push") }
func (r *recordRenderer) PopScissor()                           { r.calls = append(r.calls, "pop") }

func named(name string, r *recordRenderer) *Drawable {
	d := NewDrawable(name)
	d.OnRender = func(*Drawable, Renderer) { r.calls = append(r.calls, name) }
	return d
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
}

func TestDrawPainterOrder(t *testing.T) {
	ui := NewUI(nil)
	r := &recordRenderer{}

	a := named("a", r)
	b := named("b", r)
	inner := named("inner", r)
	a.AddChild(inner)
	ui.Root().AddChild(a)
	ui.Root().AddChild(b)

	ui.Draw(r)

	// Insertion order, parents before children: back-to-front on screen.
	assertCalls(t, r.calls, []string{"begin", "a", "inner", "b", "end"})
}

func TestDrawSkipsInvisibleSubtrees(t *testing.T) {
	ui := NewUI(nil)
	r := &recordRenderer{}

	hidden := named("hidden", r)
	inner := named("inner", r)
	hidden.AddChild(inner)
	hidden.Visible = false
	shown := named("shown", r)
	ui.Root().AddChild(hidden)
	ui.Root().AddChild(shown)

	ui.Draw(r)
	assertCalls(t, r.calls, []string{"begin", "shown", "end"})
}

func TestDrawClipChildrenScissorsNest(t *testing.T) {
	ui := NewUI(nil)
	r := &recordRenderer{}

	outer := named("outer", r)
	outer.ClipChildren = true
	outer.Width, outer.Height = 100, 100
	mid := named("mid", r)
	mid.ClipChildren = true
	mid.Width, mid.Height = 50, 50
	leaf := named("leaf", r)
	mid.AddChild(leaf)
	outer.AddChild(mid)
	ui.Root().AddChild(outer)

	ui.Draw(r)
	assertCalls(t, r.calls, []string{
		"begin", "outer", "push", "mid", "push", "leaf", "pop", "pop", "end",
	})
}

func TestClipWithoutChildrenPushesNothing(t *testing.T) {
	ui := NewUI(nil)
	r := &recordRenderer{}

	leaf := named("leaf", r)
	leaf.ClipChildren = true
	ui.Root().AddChild(leaf)

	ui.Draw(r)
	assertCalls(t, r.calls, []string{"begin", "leaf", "end"})
}

func TestDrawClearsRedrawFlag(t *testing.T) {
	ui := NewUI(nil)
	ui.Invalidate()
	if !ui.NeedsRedraw() {
		t.Fatal("Invalidate should raise the redraw flag")
	}
	ui.Draw(&recordRenderer{})
	if ui.NeedsRedraw() {
		t.Fatal("Draw should clear the redraw flag")
	}
}

func TestUpdateRaisesRedrawOnOperationActivity(t *testing.T) {
	ui := NewUI(nil)
	d := NewDrawable("d")
	ui.Root().AddChild(d)
	ui.Draw(&recordRenderer{})

	ui.Update(0.016)
	if ui.NeedsRedraw() {
		t.Fatal("a frame with no active operations must not raise the flag")
	}

	TranslateTo(d, 10, 0, 1.0, ease.Linear)
	ui.Update(0.016)
	if !ui.NeedsRedraw() {
		t.Fatal("operation activity must raise the redraw flag")
	}
}

func TestHoverRaisesRedraw(t *testing.T) {
	ui := newTestUI()
	button := newButton("button", 0, 0, 50, 50)
	ui.Root().AddChild(button)
	ui.Draw(&recordRenderer{})

	ui.Events().PointerMoved(10, 10)
	if !ui.NeedsRedraw() {
		t.Fatal("input-state transitions must raise the redraw flag")
	}
}

func TestFinishCallbackMayRemoveSibling(t *testing.T) {
	ui := NewUI(nil)
	a := NewDrawable("a")
	b := NewDrawable("b")
	ui.Root().AddChild(a)
	ui.Root().AddChild(b)

	op := FadeTo(a, 0, 0.5, ease.Linear)
	op.OnFinish = func() { b.RemoveFromParent() }

	// The tree walk must survive a completion callback shrinking the child
	// list it is iterating.
	ui.Update(0.25)
	ui.Update(0.25)

	if ui.Root().NumChildren() != 1 {
		t.Fatalf("children = %d, want 1", ui.Root().NumChildren())
	}
}
