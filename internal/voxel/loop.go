package voxel

// Dimension names a 3D spatial axis.
type Dimension int

const (
	DimX Dimension = iota
	DimY
	DimZ
)

// Side names one side of a grid along some dimension.
type Side int

const (
	SideLower Side = iota
	SideUpper
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideLower {
		return SideUpper
	}
	return SideLower
}

// asRange returns the single-index range on this side of a collection of n
// elements (0..1 for lower, n-1..n for upper).
func (s Side) asRange(n int) loopRange {
	if s == SideLower {
		return loopRange{0, 1}
	}
	return loopRange{n - 1, n}
}

type loopRange struct {
	start, end int
}

func (r loopRange) len() int { return r.end - r.start }

// Loop3 iterates over part of a 3D grid of N elements along each dimension.
// Rust's Loop3<const N: usize> uses a const generic array size; Go has no
// equivalent, so N is carried as a plain runtime field instead of a type
// parameter.
type Loop3 struct {
	n                            int
	iRange, jRange, kRange       loopRange
	moveJLoopOut, moveKLoopOut   bool
}

// NewLoop3OverAll creates a loop over all n^3 grid locations.
func NewLoop3OverAll(n int) Loop3 {
	full := fullRange(n)
	return Loop3{n: n, iRange: full, jRange: full, kRange: full}
}

// NewLoop3OverInterior creates a loop over all (n-2)^3 interior locations.
func NewLoop3OverInterior(n int) Loop3 {
	interior := interiorRange(n)
	return Loop3{n: n, iRange: interior, jRange: interior, kRange: interior}
}

// NewLoop3OverFace creates a loop over one full face of the grid (n^2
// locations).
func NewLoop3OverFace(n int, dim Dimension, side Side) Loop3 {
	return loop3OverFace(n, dim, side, fullRange(n))
}

// NewLoop3OverFaceInterior creates a loop over the interior of a face of the
// grid ((n-2)^2 locations).
func NewLoop3OverFaceInterior(n int, dim Dimension, side Side) Loop3 {
	return loop3OverFace(n, dim, side, interiorRange(n))
}

func loop3OverFace(n int, dim Dimension, side Side, r loopRange) Loop3 {
	switch dim {
	case DimX:
		return Loop3{n: n, iRange: side.asRange(n), jRange: r, kRange: r}
	case DimY:
		return Loop3{n: n, iRange: r, jRange: side.asRange(n), kRange: r, moveJLoopOut: true}
	default:
		return Loop3{n: n, iRange: r, jRange: r, kRange: side.asRange(n), moveKLoopOut: true}
	}
}

// NewLoop3OverEdge creates a loop over one full edge of the grid (n
// locations), specified by the dimension and side of the face holding the
// edge, and the edge's side on the face along the secondary dimension (the
// dimension following faceDim in the X -> Y -> Z -> X cycle).
func NewLoop3OverEdge(n int, faceDim Dimension, faceSide, secondarySide Side) Loop3 {
	return loop3OverEdge(n, faceDim, faceSide, secondarySide, fullRange(n))
}

// NewLoop3OverEdgeInterior creates a loop over the interior of an edge of
// the grid (n-2 locations).
func NewLoop3OverEdgeInterior(n int, faceDim Dimension, faceSide, secondarySide Side) Loop3 {
	return loop3OverEdge(n, faceDim, faceSide, secondarySide, interiorRange(n))
}

func loop3OverEdge(n int, faceDim Dimension, faceSide, secondarySide Side, r loopRange) Loop3 {
	switch faceDim {
	case DimX:
		return Loop3{n: n, iRange: faceSide.asRange(n), jRange: secondarySide.asRange(n), kRange: r}
	case DimY:
		return Loop3{n: n, iRange: r, jRange: faceSide.asRange(n), kRange: secondarySide.asRange(n), moveJLoopOut: true, moveKLoopOut: true}
	default:
		return Loop3{n: n, iRange: secondarySide.asRange(n), jRange: r, kRange: faceSide.asRange(n), moveJLoopOut: true}
	}
}

// NewLoop3OverCorner creates a single-iteration loop over a corner of the
// grid specified by a side along each of the x-, y- and z-dimensions.
func NewLoop3OverCorner(n int, xSide, ySide, zSide Side) Loop3 {
	return Loop3{n: n, iRange: xSide.asRange(n), jRange: ySide.asRange(n), kRange: zSide.asRange(n)}
}

// NewLoop3OverFullBoundary creates 6 loops together covering the full
// boundary of the grid, with no location iterated over more than once.
func NewLoop3OverFullBoundary(n int) [6]Loop3 {
	full := fullRange(n)
	interior := interiorRange(n)
	return [6]Loop3{
		{n: n, iRange: SideLower.asRange(n), jRange: full, kRange: full},
		{n: n, iRange: SideUpper.asRange(n), jRange: full, kRange: full},
		{n: n, iRange: interior, jRange: SideLower.asRange(n), kRange: full, moveJLoopOut: true},
		{n: n, iRange: interior, jRange: SideUpper.asRange(n), kRange: full, moveJLoopOut: true},
		{n: n, iRange: interior, jRange: interior, kRange: SideLower.asRange(n), moveKLoopOut: true},
		{n: n, iRange: interior, jRange: interior, kRange: SideUpper.asRange(n), moveKLoopOut: true},
	}
}

func fullRange(n int) loopRange     { return loopRange{0, n} }
func interiorRange(n int) loopRange { return loopRange{1, n - 1} }

// IRange returns the range of indices along i.
func (l Loop3) IRange() (int, int) { return l.iRange.start, l.iRange.end }

// JRange returns the range of indices along j.
func (l Loop3) JRange() (int, int) { return l.jRange.start, l.jRange.end }

// KRange returns the range of indices along k.
func (l Loop3) KRange() (int, int) { return l.kRange.start, l.kRange.end }

// NIterations returns the total number of iterations in the loop.
func (l Loop3) NIterations() int {
	return l.iRange.len() * l.jRange.len() * l.kRange.len()
}

// MaxLinearIdx returns the maximum linear index for any loop iteration.
func (l Loop3) MaxLinearIdx() int {
	return l.LinearIdx(l.iRange.end-1, l.jRange.end-1, l.kRange.end-1)
}

// LinearIdx returns the linear index for the given 3D indices, with k
// varying fastest, then j, then i, over a grid of l.n elements per
// dimension.
func (l Loop3) LinearIdx(i, j, k int) int {
	return i*(l.n*l.n) + j*l.n + k
}

// Execute calls f for each iteration in the loop, passing the 3D indices.
func (l Loop3) Execute(f func(i, j, k int)) {
	switch {
	case l.moveJLoopOut && l.moveKLoopOut:
		for j := l.jRange.start; j < l.jRange.end; j++ {
			for k := l.kRange.start; k < l.kRange.end; k++ {
				for i := l.iRange.start; i < l.iRange.end; i++ {
					f(i, j, k)
				}
			}
		}
	case l.moveJLoopOut:
		for j := l.jRange.start; j < l.jRange.end; j++ {
			for i := l.iRange.start; i < l.iRange.end; i++ {
				for k := l.kRange.start; k < l.kRange.end; k++ {
					f(i, j, k)
				}
			}
		}
	case l.moveKLoopOut:
		for k := l.kRange.start; k < l.kRange.end; k++ {
			for i := l.iRange.start; i < l.iRange.end; i++ {
				for j := l.jRange.start; j < l.jRange.end; j++ {
					f(i, j, k)
				}
			}
		}
	default:
		for i := l.iRange.start; i < l.iRange.end; i++ {
			for j := l.jRange.start; j < l.jRange.end; j++ {
				for k := l.kRange.start; k < l.kRange.end; k++ {
					f(i, j, k)
				}
			}
		}
	}
}

// ExecuteWithLinearIdx calls f for each iteration, passing the 3D indices
// and the linear index of the iteration.
func (l Loop3) ExecuteWithLinearIdx(f func(i, j, k, linearIdx int)) {
	l.Execute(func(i, j, k int) {
		f(i, j, k, l.LinearIdx(i, j, k))
	})
}

// ZipExecute iterates over this loop in tandem with other, calling f with
// the 3D indices in each loop for each iteration. Panics if the two loops
// do not have the same number of iterations.
func (l Loop3) ZipExecute(other Loop3, f func(i0, j0, k0, i1, j1, k1 int)) {
	precondition(l.NIterations() == other.NIterations(), "voxel: zip_execute loop iteration count mismatch (%d vs %d)", l.NIterations(), other.NIterations())

	is0, is1 := rangeValues(l.iRange), rangeValues(other.iRange)
	js0, js1 := rangeValues(l.jRange), rangeValues(other.jRange)
	ks0, ks1 := rangeValues(l.kRange), rangeValues(other.kRange)

	switch {
	case l.moveJLoopOut && l.moveKLoopOut:
		for jIdx := range js0 {
			for kIdx := range ks0 {
				for iIdx := range is0 {
					f(is0[iIdx], js0[jIdx], ks0[kIdx], is1[iIdx], js1[jIdx], ks1[kIdx])
				}
			}
		}
	case l.moveJLoopOut:
		for jIdx := range js0 {
			for iIdx := range is0 {
				for kIdx := range ks0 {
					f(is0[iIdx], js0[jIdx], ks0[kIdx], is1[iIdx], js1[jIdx], ks1[kIdx])
				}
			}
		}
	case l.moveKLoopOut:
		for kIdx := range ks0 {
			for iIdx := range is0 {
				for jIdx := range js0 {
					f(is0[iIdx], js0[jIdx], ks0[kIdx], is1[iIdx], js1[jIdx], ks1[kIdx])
				}
			}
		}
	default:
		for iIdx := range is0 {
			for jIdx := range js0 {
				for kIdx := range ks0 {
					f(is0[iIdx], js0[jIdx], ks0[kIdx], is1[iIdx], js1[jIdx], ks1[kIdx])
				}
			}
		}
	}
}

func rangeValues(r loopRange) []int {
	vals := make([]int, r.len())
	for i := range vals {
		vals[i] = r.start + i
	}
	return vals
}

// DataLoop3 pairs a Loop3 with a flat read-only slice containing one data
// value per grid location, laid out so the linear index varies fastest
// with k, then j, then i.
type DataLoop3[T any] struct {
	lp   Loop3
	data []T
}

// NewDataLoop3 creates a new data-bearing loop over (part of) data.
func NewDataLoop3[T any](lp Loop3, data []T) DataLoop3[T] {
	return DataLoop3[T]{lp: lp, data: data}
}

// Execute calls f for each iteration, passing the 3D indices and the data
// value at that location. Panics if data has no element at the loop's max
// linear index.
func (d DataLoop3[T]) Execute(f func(i, j, k int, value *T)) {
	precondition(len(d.data) > d.lp.MaxLinearIdx(), "voxel: data_loop3 data slice too short (%d, need > %d)", len(d.data), d.lp.MaxLinearIdx())
	d.lp.ExecuteWithLinearIdx(func(i, j, k, linearIdx int) {
		f(i, j, k, &d.data[linearIdx])
	})
}

// MutDataLoop3 pairs a Loop3 with a flat mutable slice containing one data
// value per grid location, laid out so the linear index varies fastest
// with k, then j, then i.
type MutDataLoop3[T any] struct {
	lp   Loop3
	data []T
}

// NewMutDataLoop3 creates a new mutable data-bearing loop over (part of)
// data.
func NewMutDataLoop3[T any](lp Loop3, data []T) MutDataLoop3[T] {
	return MutDataLoop3[T]{lp: lp, data: data}
}

// Execute calls f for each iteration, passing the 3D indices and a pointer
// to the mutable data value at that location.
func (d MutDataLoop3[T]) Execute(f func(i, j, k int, value *T)) {
	precondition(len(d.data) > d.lp.MaxLinearIdx(), "voxel: mut_data_loop3 data slice too short (%d, need > %d)", len(d.data), d.lp.MaxLinearIdx())
	d.lp.ExecuteWithLinearIdx(func(i, j, k, linearIdx int) {
		f(i, j, k, &d.data[linearIdx])
	})
}

// FillDataWithValue writes value into every location the loop covers.
func (d MutDataLoop3[T]) FillDataWithValue(value T) {
	precondition(len(d.data) > d.lp.MaxLinearIdx(), "voxel: fill_data_with_value data slice too short (%d, need > %d)", len(d.data), d.lp.MaxLinearIdx())
	d.lp.ExecuteWithLinearIdx(func(_, _, _, linearIdx int) {
		d.data[linearIdx] = value
	})
}

// MapSliceValuesIntoData writes map(slice[n]) into the n-th location the
// loop visits, in iteration order. Panics if len(slice) does not equal the
// loop's iteration count.
func (d MutDataLoop3[T]) MapSliceValuesIntoData(slice []T, mapFn func(T) T) {
	precondition(len(slice) == d.lp.NIterations(), "voxel: map_slice_values_into_data length mismatch (%d vs %d iterations)", len(slice), d.lp.NIterations())
	precondition(len(d.data) > d.lp.MaxLinearIdx(), "voxel: map_slice_values_into_data data slice too short (%d, need > %d)", len(d.data), d.lp.MaxLinearIdx())

	sliceIdx := 0
	d.lp.ExecuteWithLinearIdx(func(_, _, _, linearIdx int) {
		d.data[linearIdx] = mapFn(slice[sliceIdx])
		sliceIdx++
	})
}

// MapOtherDataIntoData iterates d's loop in tandem with other's loop, and
// for each iteration writes mapFn(other value) into d's data slice. A free
// function rather than a method of MutDataLoop3[T], since Go methods can't
// carry a type parameter of their own and other's element type U need not
// match d's element type T (a neighbor's Voxel samples mapped into a
// PaddedSDF's float32 buffer, say).
func MapOtherDataIntoData[T, U any](d MutDataLoop3[T], other DataLoop3[U], mapFn func(U) T) {
	precondition(len(d.data) > d.lp.MaxLinearIdx(), "voxel: map_other_data_into_data data slice too short")
	precondition(len(other.data) > other.lp.MaxLinearIdx(), "voxel: map_other_data_into_data other data slice too short")

	d.lp.ZipExecute(other.lp, func(i0, j0, k0, i1, j1, k1 int) {
		selfIdx := d.lp.LinearIdx(i0, j0, k0)
		otherIdx := other.lp.LinearIdx(i1, j1, k1)
		d.data[selfIdx] = mapFn(other.data[otherIdx])
	})
}
