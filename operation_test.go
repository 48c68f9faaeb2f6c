package quill

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTranslateToReachesTarget(t *testing.T) {
	d := NewDrawable("pos")
	d.X = 10
	d.Y = 20

	op := TranslateTo(d, 100, 200, 1.0, ease.Linear)

	// Exact quarters avoid float32 accumulation drift.
	d.advanceOperations(0.25)
	d.advanceOperations(0.25)
	d.advanceOperations(0.25)
	if op.IsFinished() {
		t.Fatal("should not be finished before full duration")
	}
	d.advanceOperations(0.25)

	if !op.IsFinished() {
		t.Fatal("expected finished after full duration")
	}
	if math.Abs(d.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", d.X)
	}
	if math.Abs(d.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", d.Y)
	}
}

func TestTranslateFinishCallbackRunsOnce(t *testing.T) {
	d := NewDrawable("finish")
	finishes := 0

	op := TranslateTo(d, 100, 0, 1.0, ease.Linear)
	op.OnFinish = func() { finishes++ }

	for i := 0; i < 4; i++ {
		d.advanceOperations(0.25)
	}
	if finishes != 1 {
		t.Fatalf("OnFinish ran %d times, want 1", finishes)
	}
	if len(d.Operations()) != 0 {
		t.Fatal("finished operation should be removed from the queue")
	}

	// Further frames must not re-run the callback.
	d.advanceOperations(0.25)
	if finishes != 1 {
		t.Fatalf("OnFinish ran %d times after extra frame, want 1", finishes)
	}
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	d := NewDrawable("instant")
	d.Width = 10
	finishes := 0

	op := ResizeTo(d, 80, 40, 0, ease.Linear)
	op.OnFinish = func() { finishes++ }

	if d.Width != 10 {
		t.Fatal("instant operation must not apply before the next advance")
	}
	d.advanceOperations(0.016)

	if d.Width != 80 || d.Height != 40 {
		t.Errorf("size = (%f, %f), want (80, 40)", d.Width, d.Height)
	}
	if finishes != 1 {
		t.Errorf("OnFinish ran %d times, want 1", finishes)
	}
	if len(d.Operations()) != 0 {
		t.Error("instant operation should be reaped after its advance")
	}
}

func TestAdditiveOperationsCompose(t *testing.T) {
	d := NewDrawable("additive")
	d.X = 10

	Translate(d, 100, 0, 1.0, ease.Linear)
	Translate(d, 50, 0, 1.0, ease.Linear)

	d.advanceOperations(0.5)
	if math.Abs(d.X-85) > 0.5 { // 10 + 50 + 25
		t.Errorf("X = %f at midpoint, want ~85", d.X)
	}

	d.advanceOperations(0.5)
	if math.Abs(d.X-160) > 0.5 { // 10 + 100 + 50
		t.Errorf("X = %f at end, want ~160", d.X)
	}
}

func TestConcurrentDifferentKinds(t *testing.T) {
	d := NewDrawable("multi")
	d.Width, d.Height = 10, 10
	d.Alpha = 1

	TranslateTo(d, 100, 0, 1.0, ease.Linear)
	ResizeTo(d, 20, 20, 1.0, ease.Linear)
	FadeTo(d, 0, 1.0, ease.Linear)

	if len(d.Operations()) != 3 {
		t.Fatalf("queue length = %d, want 3", len(d.Operations()))
	}

	d.advanceOperations(0.5)
	d.advanceOperations(0.5)

	if math.Abs(d.X-100) > 0.5 || math.Abs(d.Width-20) > 0.5 || math.Abs(d.Alpha) > 0.01 {
		t.Errorf("X=%f Width=%f Alpha=%f after all kinds finished", d.X, d.Width, d.Alpha)
	}
	if len(d.Operations()) != 0 {
		t.Errorf("queue length = %d after completion, want 0", len(d.Operations()))
	}
}

func TestRotateAccumulates(t *testing.T) {
	d := NewDrawable("rot")
	d.Rotation = 1

	Rotate(d, math.Pi, 1.0, ease.Linear)
	d.advanceOperations(0.5)
	d.advanceOperations(0.5)

	if math.Abs(d.Rotation-(1+math.Pi)) > 0.01 {
		t.Errorf("Rotation = %f, want ~%f", d.Rotation, 1+math.Pi)
	}
}

func TestRecolorReachesTarget(t *testing.T) {
	d := NewDrawable("color")
	d.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	Recolor(d, target, 1.0, ease.Linear)

	d.advanceOperations(0.5)
	mid := d.Color
	if math.Abs(mid.R-0.5) > 0.05 || math.Abs(mid.G-0.5) > 0.05 {
		t.Errorf("midpoint color = %+v, want ~{0.5 0.5 0.25 0.75}", mid)
	}

	d.advanceOperations(0.5)
	if d.Color != target {
		t.Errorf("color = %+v, want %+v", d.Color, target)
	}
	if len(d.Operations()) != 0 {
		t.Error("recolor should be reaped after completion")
	}
}

func TestPulseNeverFinishes(t *testing.T) {
	d := NewDrawable("pulse")
	d.Alpha = 0.5

	op := Pulse(d, 0.2, 1.0, 0.25, ease.Linear)

	for i := 0; i < 20; i++ {
		d.advanceOperations(0.1)
	}
	if op.IsFinished() {
		t.Fatal("looping operation must never self-finish")
	}
	if len(d.Operations()) != 1 {
		t.Fatal("looping operation must stay queued until removed")
	}
	if d.CanBeRemoved() {
		t.Fatal("drawable with an active operation is not removable")
	}

	d.RemoveOperation(op)
	if len(d.Operations()) != 0 {
		t.Fatal("RemoveOperation should clear the queue")
	}
	if !d.CanBeRemoved() {
		t.Fatal("drawable with no operations is removable")
	}
}

func TestFinishCallbackMayEnqueue(t *testing.T) {
	d := NewDrawable("reentrant")
	var second *Operation

	first := TranslateTo(d, 10, 0, 0.5, ease.Linear)
	first.OnFinish = func() {
		second = TranslateTo(d, 20, 0, 0.5, ease.Linear)
	}

	d.advanceOperations(0.25)
	d.advanceOperations(0.25)

	if second == nil {
		t.Fatal("OnFinish should have enqueued a follow-up operation")
	}
	if second.IsFinished() {
		t.Fatal("follow-up must not be advanced in the frame it was enqueued")
	}
	if len(d.Operations()) != 1 || d.Operations()[0] != second {
		t.Fatal("queue should contain only the follow-up operation")
	}

	d.advanceOperations(0.25)
	d.advanceOperations(0.25)
	if !second.IsFinished() {
		t.Fatal("follow-up should finish after its own duration")
	}
	if math.Abs(d.X-20) > 0.5 {
		t.Errorf("X = %f, want ~20", d.X)
	}
}

func TestCustomOperation(t *testing.T) {
	d := NewDrawable("custom")
	elapsed := 0.0

	Custom(d, func(target *Drawable, dt float64) bool {
		elapsed += dt
		target.Y = elapsed * 10
		return elapsed >= 0.3
	})

	d.advanceOperations(0.1)
	d.advanceOperations(0.1)
	if len(d.Operations()) != 1 {
		t.Fatal("custom operation should still be active")
	}
	d.advanceOperations(0.1)
	if len(d.Operations()) != 0 {
		t.Fatal("custom operation should be reaped once it reports finished")
	}
	if math.Abs(d.Y-3) > 0.01 {
		t.Errorf("Y = %f, want ~3", d.Y)
	}
}

func TestEasingCurvesDiffer(t *testing.T) {
	// Spot-check: linear vs OutCubic at the midpoint should differ.
	dl := NewDrawable("linear")
	dc := NewDrawable("cubic")

	TranslateTo(dl, 100, 0, 1.0, ease.Linear)
	TranslateTo(dc, 100, 0, 1.0, ease.OutCubic)

	dl.advanceOperations(0.5)
	dc.advanceOperations(0.5)

	if math.Abs(dl.X-dc.X) < 1.0 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", dl.X, dc.X)
	}
}
