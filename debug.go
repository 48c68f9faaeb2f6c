package quill

import (
	"fmt"
	"os"
)

// globalDebug mirrors the most recently set UI debug flag so that drawable
// operations (which lack a UI pointer while detached) can check it cheaply.
// Only valid with a single UI; multiple UIs with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Thresholds for the structural sanity warnings below.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugWarn prints a prefixed warning to stderr.
func debugWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[quill] warning: "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// drawable is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(d *Drawable, op string) {
	if d.disposed {
		panic(fmt.Sprintf("quill debug: %s on disposed drawable %q (ID was %d)", op, d.Name, d.ID))
	}
}

// debugCheckTreeDepth warns when d sits deeper than debugMaxTreeDepth, a
// likely sign of a reparenting loop in caller code.
func debugCheckTreeDepth(d *Drawable) {
	depth := 0
	for p := d; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarn("tree depth %d exceeds %d (drawable %q)", depth, debugMaxTreeDepth, d.Name)
	}
}

// debugCheckChildCount warns when a drawable accumulates an implausible
// number of children.
func debugCheckChildCount(d *Drawable) {
	if n := len(d.children); n > debugMaxChildCount {
		debugWarn("drawable %q has %d children (threshold %d)", d.Name, n, debugMaxChildCount)
	}
}
