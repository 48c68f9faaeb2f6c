package quill

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OpKind identifies the visual effect an operation applies.
type OpKind uint8

const (
	OpTranslate OpKind = iota // moves X/Y
	OpResize                  // changes Width/Height
	OpRotate                  // changes Rotation
	OpScale                   // changes ScaleX/ScaleY
	OpRecolor                 // blends Color toward a target
	OpFade                    // changes Alpha
	OpCustom                  // user-supplied per-frame mutation
)

// Operation is a timed, possibly-animated mutation applied to a drawable's
// visual state. Operations on a drawable form an unordered multiset; multiple
// operations of different kinds may run concurrently. Durations are in
// seconds; a duration <= 0 applies the end value on the next advance.
//
// Additive operations (the by-delta constructors) accumulate onto the target
// fields, so concurrent operations compose. Replacing operations (the *To
// constructors) override the field with the interpolated absolute value.
type Operation struct {
	Kind OpKind

	// OnFinish is invoked exactly once, synchronously, in the frame in which
	// the operation is first observed finished, before it is removed from its
	// owner's queue. The callback may enqueue new operations on the owner.
	OnFinish func()

	target *Drawable

	// Scalar tween state (translate/resize/rotate/scale/fade).
	tweens [2]*gween.Tween
	fields [2]*float64
	prev   [2]float64
	ends   [2]float64
	count  int
	add    bool

	// Recolor state: a single eased progress tween drives a color-space blend.
	progress  *gween.Tween
	fromColor Color
	toColor   Color

	// Looping state (Pulse): a gween sequence that repeats forever. Looping
	// operations never self-finish and must be removed explicitly.
	seq       *gween.Sequence
	loopField *float64

	custom func(*Drawable, float64) bool

	instant bool
	done    bool
}

// Target returns the drawable this operation mutates.
func (op *Operation) Target() *Drawable {
	return op.target
}

// IsFinished reports whether the operation has completed. Looping operations
// never report finished.
func (op *Operation) IsFinished() bool {
	return op.done
}

// advance moves the operation forward by dt seconds, applies its effect, and
// reports whether it finished this frame.
func (op *Operation) advance(dt float64) bool {
	switch {
	case op.custom != nil:
		return op.custom(op.target, dt)

	case op.seq != nil:
		v, _, _ := op.seq.Update(float32(dt))
		*op.loopField = float64(v)
		return false

	case op.progress != nil:
		if op.instant {
			op.target.Color = op.toColor
			return true
		}
		p, finished := op.progress.Update(float32(dt))
		op.target.Color = blendColor(op.fromColor, op.toColor, float64(p))
		return finished

	default:
		if op.instant {
			for i := 0; i < op.count; i++ {
				if op.add {
					*op.fields[i] += op.ends[i] - op.prev[i]
					op.prev[i] = op.ends[i]
				} else {
					*op.fields[i] = op.ends[i]
				}
			}
			return true
		}
		allDone := true
		for i := 0; i < op.count; i++ {
			v, finished := op.tweens[i].Update(float32(dt))
			fv := float64(v)
			if op.add {
				*op.fields[i] += fv - op.prev[i]
				op.prev[i] = fv
			} else {
				*op.fields[i] = fv
			}
			if !finished {
				allDone = false
			}
		}
		return allDone
	}
}

// blendColor interpolates between two colors: RGB through colorful's blend,
// alpha linearly.
func blendColor(from, to Color, t float64) Color {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	c1 := colorful.Color{R: from.R, G: from.G, B: from.B}
	c2 := colorful.Color{R: to.R, G: to.G, B: to.B}
	blended := c1.BlendRgb(c2, t)
	return Color{
		R: blended.R,
		G: blended.G,
		B: blended.B,
		A: from.A + (to.A-from.A)*t,
	}
}

// --- Constructors ---

// scalarOp builds a scalar operation over up to two fields and enqueues it.
func scalarOp(d *Drawable, kind OpKind, add bool, duration float64, fn ease.TweenFunc,
	fields []*float64, from, to []float64) *Operation {
	op := &Operation{Kind: kind, target: d, add: add, count: len(fields)}
	for i := range fields {
		op.fields[i] = fields[i]
		op.ends[i] = to[i]
	}
	if duration <= 0 {
		op.instant = true
	} else {
		for i := range fields {
			op.tweens[i] = gween.New(float32(from[i]), float32(to[i]), float32(duration), fn)
		}
	}
	d.AddOperation(op)
	return op
}

// Translate enqueues an additive move by (dx, dy) over duration seconds.
func Translate(d *Drawable, dx, dy, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpTranslate, true, duration, fn,
		[]*float64{&d.X, &d.Y}, []float64{0, 0}, []float64{dx, dy})
}

// TranslateTo enqueues a replacing move to the absolute position (x, y).
func TranslateTo(d *Drawable, x, y, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpTranslate, false, duration, fn,
		[]*float64{&d.X, &d.Y}, []float64{d.X, d.Y}, []float64{x, y})
}

// Resize enqueues an additive size change by (dw, dh).
func Resize(d *Drawable, dw, dh, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpResize, true, duration, fn,
		[]*float64{&d.Width, &d.Height}, []float64{0, 0}, []float64{dw, dh})
}

// ResizeTo enqueues a replacing size change to (w, h).
func ResizeTo(d *Drawable, w, h, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpResize, false, duration, fn,
		[]*float64{&d.Width, &d.Height}, []float64{d.Width, d.Height}, []float64{w, h})
}

// Rotate enqueues an additive rotation by the given radians.
func Rotate(d *Drawable, by, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpRotate, true, duration, fn,
		[]*float64{&d.Rotation}, []float64{0}, []float64{by})
}

// RotateTo enqueues a replacing rotation to the given absolute radians.
func RotateTo(d *Drawable, to, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpRotate, false, duration, fn,
		[]*float64{&d.Rotation}, []float64{d.Rotation}, []float64{to})
}

// ScaleTo enqueues a replacing scale change to (sx, sy).
func ScaleTo(d *Drawable, sx, sy, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpScale, false, duration, fn,
		[]*float64{&d.ScaleX, &d.ScaleY}, []float64{d.ScaleX, d.ScaleY}, []float64{sx, sy})
}

// FadeTo enqueues a replacing alpha change to the given value.
func FadeTo(d *Drawable, to, duration float64, fn ease.TweenFunc) *Operation {
	return scalarOp(d, OpFade, false, duration, fn,
		[]*float64{&d.Alpha}, []float64{d.Alpha}, []float64{to})
}

// Recolor enqueues a blend of the drawable's Color toward the target color.
func Recolor(d *Drawable, to Color, duration float64, fn ease.TweenFunc) *Operation {
	op := &Operation{Kind: OpRecolor, target: d, fromColor: d.Color, toColor: to}
	if duration <= 0 {
		op.instant = true
	} else {
		op.progress = gween.New(0, 1, float32(duration), fn)
	}
	d.AddOperation(op)
	return op
}

// Pulse enqueues a looping alpha oscillation between low and high, period
// seconds per half-cycle. Intended for hover-glow style effects: it never
// self-finishes and must be removed with [Drawable.RemoveOperation].
func Pulse(d *Drawable, low, high, period float64, fn ease.TweenFunc) *Operation {
	seq := gween.NewSequence(
		gween.New(float32(d.Alpha), float32(high), float32(period), fn),
		gween.New(float32(high), float32(low), float32(period), fn),
		gween.New(float32(low), float32(high), float32(period), fn),
	)
	seq.SetLoop(-1)
	op := &Operation{Kind: OpFade, target: d, seq: seq, loopField: &d.Alpha}
	d.AddOperation(op)
	return op
}

// Custom enqueues a user-supplied operation. fn is called once per frame with
// the elapsed seconds and returns true when the operation is finished.
func Custom(d *Drawable, fn func(*Drawable, float64) bool) *Operation {
	op := &Operation{Kind: OpCustom, target: d, custom: fn}
	d.AddOperation(op)
	return op
}

// --- Queue management ---

// AddOperation appends op to this drawable's active operation queue.
func (d *Drawable) AddOperation(op *Operation) {
	d.ops = append(d.ops, op)
}

// RemoveOperation removes op from the queue without running its OnFinish
// callback. This is how looping operations are stopped.
func (d *Drawable) RemoveOperation(op *Operation) {
	for i, o := range d.ops {
		if o == op {
			copy(d.ops[i:], d.ops[i+1:])
			d.ops[len(d.ops)-1] = nil
			d.ops = d.ops[:len(d.ops)-1]
			return
		}
	}
}

// Operations returns the active operation queue. The returned slice MUST NOT
// be mutated by the caller.
func (d *Drawable) Operations() []*Operation {
	return d.ops
}

// hasOperation reports whether op is still queued on d.
func (d *Drawable) hasOperation(op *Operation) bool {
	for _, o := range d.ops {
		if o == op {
			return true
		}
	}
	return false
}

// advanceOperations advances every active operation by dt seconds, runs
// OnFinish callbacks, and reaps finished operations. Iterates over a snapshot
// so callbacks may enqueue or remove operations on the same drawable.
// Returns whether the drawable needs a redraw.
func (d *Drawable) advanceOperations(dt float64) bool {
	if len(d.ops) == 0 {
		return false
	}
	d.opBuf = append(d.opBuf[:0], d.ops...)
	redraw := false
	for _, op := range d.opBuf {
		if op.done || !d.hasOperation(op) {
			continue
		}
		redraw = true
		if !op.advance(dt) {
			continue
		}
		op.done = true
		if op.OnFinish != nil {
			op.OnFinish()
		}
		d.RemoveOperation(op)
	}
	return redraw
}
