package voxel

import "fmt"

// VoxelType is a compact tag identifying the material kind of a non-empty
// voxel. NoVoxelType is reserved for empty voxels.
type VoxelType uint8

// NoVoxelType is the sentinel type carried by empty voxels.
const NoVoxelType VoxelType = 0

// MaxVoxelTypes bounds the number of distinct registered voxel types,
// including the reserved NoVoxelType slot.
const MaxVoxelTypes = 256

// Voxel is the atomic cell of a ChunkedVoxelObject: a type tag plus a signed
// distance sample of the generating SDF at the voxel center.
//
// Invariant: IsEmpty() iff SignedDistanceValue() >= 0. Construct through
// EmptyVoxel/NonEmptyVoxel rather than composite literals to keep this
// invariant enforced.
type Voxel struct {
	typeTag  VoxelType
	distance float32
}

// EmptyVoxel constructs an empty voxel with the given non-negative distance
// sample.
func EmptyVoxel(distance float32) Voxel {
	if distance < 0 {
		panic(fmt.Sprintf("voxel: empty voxel requires non-negative distance, got %g", distance))
	}
	return Voxel{typeTag: NoVoxelType, distance: distance}
}

// NonEmptyVoxel constructs a filled voxel of the given type. Precondition:
// distance < 0.
func NonEmptyVoxel(voxelType VoxelType, distance float32) Voxel {
	if distance >= 0 {
		panic(fmt.Sprintf("voxel: non-empty voxel requires negative distance, got %g", distance))
	}
	if voxelType == NoVoxelType {
		panic("voxel: non-empty voxel must not use NoVoxelType")
	}
	return Voxel{typeTag: voxelType, distance: distance}
}

// IsEmpty reports whether this voxel represents empty space.
func (v Voxel) IsEmpty() bool {
	return v.distance >= 0
}

// Type returns the voxel's type tag. For an empty voxel this is
// NoVoxelType.
func (v Voxel) Type() VoxelType {
	return v.typeTag
}

// SignedDistanceValue returns the stored distance sample.
func (v Voxel) SignedDistanceValue() float32 {
	return v.distance
}

// Sign-correct placeholder magnitudes that the padded SDF view writes for
// every cell in place of real distances (folded Empty/Uniform chunks store
// no per-cell samples, and NonUniform samples are mapped to the same two
// values). Never substitute 0 here: the assembler must never produce a
// zero sample.
const (
	signedDistanceIfEmpty    float32 = 0.5
	signedDistanceIfNonEmpty float32 = -0.5
)

// PlaceholderSignedDistanceValue returns the sign-correct placeholder for
// this voxel (+0.5 if empty, -0.5 if not). The padded SDF view writes this
// value for every voxel it samples, in place of SignedDistanceValue.
func (v Voxel) PlaceholderSignedDistanceValue() float32 {
	if v.IsEmpty() {
		return signedDistanceIfEmpty
	}
	return signedDistanceIfNonEmpty
}

// VoxelTypeRegistry tracks human-readable names for registered voxel types.
// Mirrors the teacher's GetVoxelColor/SetVoxelColor/ClearCustomVoxelColors
// pattern (internal/loader/voxel_core.go) generalized from "type -> render
// color" to "type -> name", since naming rather than shading is the core
// store's concern.
type VoxelTypeRegistry struct {
	names [MaxVoxelTypes]string
}

// NewVoxelTypeRegistry creates a registry with no types registered beyond
// the reserved NoVoxelType.
func NewVoxelTypeRegistry() *VoxelTypeRegistry {
	r := &VoxelTypeRegistry{}
	r.names[NoVoxelType] = "empty"
	return r
}

// Register assigns a name to a voxel type. Panics if voxelType is
// NoVoxelType.
func (r *VoxelTypeRegistry) Register(voxelType VoxelType, name string) {
	if voxelType == NoVoxelType {
		panic("voxel: cannot register a name for NoVoxelType")
	}
	r.names[voxelType] = name
}

// Name returns the registered name for a voxel type, or "" if unregistered.
func (r *VoxelTypeRegistry) Name(voxelType VoxelType) string {
	return r.names[voxelType]
}

// Clear removes all registered names except NoVoxelType's.
func (r *VoxelTypeRegistry) Clear() {
	for t := range r.names {
		if VoxelType(t) != NoVoxelType {
			r.names[t] = ""
		}
	}
}

// MaxVoxelTypeCount returns the number of non-reserved voxel type slots
// available to a registry.
func MaxVoxelTypeCount() int {
	return MaxVoxelTypes - 1
}
