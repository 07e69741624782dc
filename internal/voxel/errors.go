package voxel

import (
	"errors"
	"fmt"
)

// ErrEmptyDomain is returned by generation when the signed distance field
// produces no non-empty voxel anywhere in its grid. Callers that tolerate an
// empty result should check with errors.Is(err, voxel.ErrEmptyDomain).
var ErrEmptyDomain = errors.New("voxel: sdf domain contains no non-empty voxels")

// precondition panics with a formatted message if ok is false. Used for
// programmer-error invariants that must never be reached through normal API
// use (negative extents, mismatched loop/slice lengths, an empty candidate
// voxel type list), mirroring the assert! calls throughout the original Rust source.
func precondition(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf(format, args...))
	}
}
