package reconcile

import (
	"github.com/YanChii/pcstopo/core/cib"
)

type (
	FenceAction int

	// Fence is the outcome of the fencing level membership test.
	// Matched is the exactly matching record when one exists.
	Fence struct {
		Action  FenceAction
		Matched *cib.FencingLevel
	}
)

const (
	FenceNoOp FenceAction = iota
	FenceCreate
	FenceDelete
)

// ReconcileFenceLevel evaluates one level, target, devices triple
// against the fencing levels of the CIB. Matching is exact triple
// equality, duplicates with different attributes are left untouched.
func ReconcileFenceLevel(levels []cib.FencingLevel, level int, target, devices string, state State) Fence {
	f := Fence{}
	for i, l := range levels {
		if l.Match(level, target, devices) {
			f.Matched = &levels[i]
			break
		}
	}
	switch {
	case state == StatePresent && f.Matched == nil:
		f.Action = FenceCreate
	case state == StateAbsent && f.Matched != nil:
		f.Action = FenceDelete
	default:
		f.Action = FenceNoOp
	}
	return f
}
