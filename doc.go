// Package quill is the event dispatch and animation core of a retained-mode
// UI toolkit.
//
// Every component is a [Drawable] in a tree rooted at [UI.Root]. The [Manager]
// converts raw platform input — pointer movement, button presses, scroll, key
// and character input, file drops — into routed events against the set of
// drawables currently under the pointer, with click-combo counting, drag
// gating, and focus management. The [Binder] matches chords of held keys and
// buttons against registered bindings and can interactively record new ones.
// Timed visual effects (move, resize, rotate, recolor, fade) run as
// [Operation] values on their target drawable, advanced once per frame and
// eased via [gween].
//
// # Quick start
//
// Create a [UI], build a tree, and drive it from your platform loop. The
// ebitendriver subpackage does the driving for [Ebitengine]:
//
//	ui := quill.NewUI(nil)
//	ui.Root().Width, ui.Root().Height = 640, 480
//
//	button := quill.NewDrawable("button")
//	button.Width, button.Height = 120, 32
//	button.Focusable = true
//	button.OnClicked = func(d *quill.Drawable, ev quill.Event) bool {
//		quill.Pulse(d, 0.5, 1.0, 0.3, ease.Linear)
//		return true
//	}
//	ui.Root().AddChild(button)
//
//	ebitendriver.Run(ui, ebitendriver.Config{Title: "demo", Width: 640, Height: 480})
//
// For a custom backend, implement [Renderer], feed [Manager]'s entry points
// from your window callbacks, and call [UI.Update] with the frame's elapsed
// seconds, redrawing whenever [UI.NeedsRedraw] reports true.
//
// Rendering, layout, resource loading, and theming are external collaborators:
// the core draws only through the [Renderer] interface and treats drawable
// bounds as already computed when input runs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package quill
