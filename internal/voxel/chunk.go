package voxel

import (
	"sync/atomic"

	"VoxelStore/internal/logger"
)

// ChunkSize (C) is the number of voxels along each side of a VoxelChunk.
// Fixed at compile time because the mesher's padded-SDF contract is built
// around this exact size.
const ChunkSize = 16

// SuperchunkSize (S) is the number of chunks along each side of a
// VoxelSuperchunk.
const SuperchunkSize = 8

// ChunkVariant tags which of the three compressed representations a
// VoxelChunk or VoxelSuperchunk currently holds.
type ChunkVariant uint8

const (
	ChunkEmpty ChunkVariant = iota
	ChunkUniform
	ChunkNonUniform
)

// chunkFlags records, per chunk or superchunk, which of its six faces
// border an empty (or absent) neighbor. Bit layout: 2*dim+side, side 0 =
// lower, 1 = upper.
type chunkFlags uint8

func faceBit(dim Dimension, side Side) uint8 {
	return uint8(1) << uint(int(dim)*2+int(side))
}

func (f chunkFlags) face(dim Dimension, side Side) bool {
	return f&chunkFlags(faceBit(dim, side)) != 0
}

func (f *chunkFlags) setFace(dim Dimension, side Side) {
	*f |= chunkFlags(faceBit(dim, side))
}

// HasExposedFace reports whether any of the six per-face bits is set (I4).
func (f chunkFlags) HasExposedFace() bool {
	return f != 0
}

// VoxelChunk is one of Empty, Uniform(voxel), or NonUniform{voxel block in
// the owning object's voxel pool, exposed-face flags}.
type VoxelChunk struct {
	variant       ChunkVariant
	uniformVoxel  Voxel
	voxelsOffset  int
	flags         chunkFlags
}

// Variant reports which representation this chunk currently holds.
func (c VoxelChunk) Variant() ChunkVariant { return c.variant }

// UniformVoxel returns the shared voxel value of a Uniform chunk. Only
// meaningful when Variant() == ChunkUniform.
func (c VoxelChunk) UniformVoxel() Voxel { return c.uniformVoxel }

// VoxelsOffset returns the offset of this chunk's C³ voxel block in the
// owning object's voxel pool. Only meaningful when Variant() ==
// ChunkNonUniform.
func (c VoxelChunk) VoxelsOffset() int { return c.voxelsOffset }

// Flags returns the chunk's exposed-face flags. Only populated when
// Variant() == ChunkNonUniform: an Empty or Uniform chunk stores no
// per-chunk flags, since a uniform region's exposure depends on its
// neighbors rather than on anything recorded in the chunk itself. See
// chunkIsExposed in sdfview.go for the general check that covers all three
// variants.
func (c VoxelChunk) Flags() chunkFlags { return c.flags }

// VoxelSuperchunk is one of Empty, Uniform(voxel), or NonUniform{chunk
// block in the owning object's chunk pool, exposed-face flags aggregated
// from child chunks}.
type VoxelSuperchunk struct {
	variant      ChunkVariant
	uniformVoxel Voxel
	chunksOffset int
	flags        chunkFlags
}

func (s VoxelSuperchunk) Variant() ChunkVariant { return s.variant }
func (s VoxelSuperchunk) UniformVoxel() Voxel   { return s.uniformVoxel }
func (s VoxelSuperchunk) ChunksOffset() int     { return s.chunksOffset }
func (s VoxelSuperchunk) Flags() chunkFlags     { return s.flags }

// ChunkedVoxelObject is the root aggregate: a cubic grid of superchunks,
// plus the chunk and voxel pools their NonUniform variants index into.
// Chunks and superchunks never hold pointers into these pools, only
// integer offsets, so the object as a whole is safe to move or copy by
// value semantics at rest.
type ChunkedVoxelObject struct {
	voxelExtent         float64
	nSuperchunksPerAxis int
	superchunks         []VoxelSuperchunk
	chunks              []VoxelChunk
	voxels              []Voxel
}

// VoxelExtent returns the world-space size of one voxel.
func (o *ChunkedVoxelObject) VoxelExtent() float64 { return o.voxelExtent }

// NSuperchunksPerAxis returns the number of superchunks along each axis of
// the object's cubic superchunk grid.
func (o *ChunkedVoxelObject) NSuperchunksPerAxis() int { return o.nSuperchunksPerAxis }

// emptyPlaceholderVoxel stands in for a voxel outside the generator's real
// grid shape but inside the padded, chunk/superchunk-aligned cube: such
// cells were never sampled, so they are empty by construction.
var emptyPlaceholderVoxel = EmptyVoxel(1.0)

// NewChunkedVoxelObject generates a dense grid from generator and folds it
// into a two-level sparse hierarchy. Returns ErrEmptyDomain if the
// generated grid contains no non-empty voxel anywhere.
func NewChunkedVoxelObject(generator VoxelGenerator) (*ChunkedVoxelObject, error) {
	voxelExtent := generator.VoxelExtent()
	shape := generator.GridShape()

	dense := make([]Voxel, shape[0]*shape[1]*shape[2])
	var anyNonEmpty atomic.Bool

	GenerateVoxelsParallel(generator, func(i, j, k int, v Voxel) {
		dense[denseLinearIdx(shape, i, j, k)] = v
		if !v.IsEmpty() {
			anyNonEmpty.Store(true)
		}
	})

	if !anyNonEmpty.Load() {
		return nil, ErrEmptyDomain
	}

	chunksPerAxis := ceilDiv(maxInt3(shape), ChunkSize)
	nSuperchunksPerAxis := ceilDiv(chunksPerAxis, SuperchunkSize)

	object := &ChunkedVoxelObject{
		voxelExtent:         voxelExtent,
		nSuperchunksPerAxis: nSuperchunksPerAxis,
	}
	object.superchunks = make([]VoxelSuperchunk, nSuperchunksPerAxis*nSuperchunksPerAxis*nSuperchunksPerAxis)

	for si := 0; si < nSuperchunksPerAxis; si++ {
		for sj := 0; sj < nSuperchunksPerAxis; sj++ {
			for sk := 0; sk < nSuperchunksPerAxis; sk++ {
				childChunks := make([]VoxelChunk, SuperchunkSize*SuperchunkSize*SuperchunkSize)

				for li := 0; li < SuperchunkSize; li++ {
					for lj := 0; lj < SuperchunkSize; lj++ {
						for lk := 0; lk < SuperchunkSize; lk++ {
							ci := si*SuperchunkSize + li
							cj := sj*SuperchunkSize + lj
							ck := sk*SuperchunkSize + lk
							childChunks[li*SuperchunkSize*SuperchunkSize+lj*SuperchunkSize+lk] =
								foldChunk(object, dense, shape, ci, cj, ck)
						}
					}
				}

				object.superchunks[si*nSuperchunksPerAxis*nSuperchunksPerAxis+sj*nSuperchunksPerAxis+sk] =
					foldSuperchunk(object, dense, shape, si, sj, sk, childChunks)
			}
		}
	}

	logger.Log.Info("constructed chunked voxel object")

	return object, nil
}

func denseLinearIdx(shape [3]int, i, j, k int) int {
	return i*shape[1]*shape[2] + j*shape[2] + k
}

func denseVoxelAt(dense []Voxel, shape [3]int, i, j, k int) Voxel {
	if i < 0 || i >= shape[0] || j < 0 || j >= shape[1] || k < 0 || k >= shape[2] {
		return emptyPlaceholderVoxel
	}
	return dense[denseLinearIdx(shape, i, j, k)]
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 1
	}
	return (a + b - 1) / b
}

func maxInt3(shape [3]int) int {
	m := shape[0]
	if shape[1] > m {
		m = shape[1]
	}
	if shape[2] > m {
		m = shape[2]
	}
	return m
}

// foldChunk classifies the C³ voxel block at global chunk indices
// (ci, cj, ck) and, if it is NonUniform, appends its voxels to the
// object's voxel pool and computes its exposed-face flags.
func foldChunk(object *ChunkedVoxelObject, dense []Voxel, shape [3]int, ci, cj, ck int) VoxelChunk {
	originI, originJ, originK := ci*ChunkSize, cj*ChunkSize, ck*ChunkSize

	block := make([]Voxel, ChunkSize*ChunkSize*ChunkSize)
	allEmpty := true
	allSameType := true
	var firstType VoxelType
	typeSet := false

	NewLoop3OverAll(ChunkSize).Execute(func(li, lj, lk int) {
		v := denseVoxelAt(dense, shape, originI+li, originJ+lj, originK+lk)
		block[li*ChunkSize*ChunkSize+lj*ChunkSize+lk] = v

		if !v.IsEmpty() {
			allEmpty = false
			if !typeSet {
				firstType = v.Type()
				typeSet = true
			} else if v.Type() != firstType {
				allSameType = false
			}
		} else {
			allSameType = false
		}
	})

	switch {
	case allEmpty:
		return VoxelChunk{variant: ChunkEmpty}
	case allSameType:
		// The folded value discards the original per-cell distances: a
		// uniform region has no internal surface for them to describe, so
		// the canonical non-empty placeholder is used instead, the same
		// value a neighbor reads through a Uniform chunk in the padded SDF
		// view.
		return VoxelChunk{variant: ChunkUniform, uniformVoxel: NonEmptyVoxel(firstType, signedDistanceIfNonEmpty)}
	default:
		offset := len(object.voxels)
		object.voxels = append(object.voxels, block...)

		var flags chunkFlags
		for dim := DimX; dim <= DimZ; dim++ {
			for _, side := range [2]Side{SideLower, SideUpper} {
				if chunkFaceIsExposed(dense, shape, originI, originJ, originK, dim, side) {
					flags.setFace(dim, side)
				}
			}
		}

		return VoxelChunk{variant: ChunkNonUniform, voxelsOffset: offset, flags: flags}
	}
}

// chunkFaceIsExposed reports whether any voxel on the given face of the
// chunk at (originI, originJ, originK) is non-empty with an empty voxel
// immediately across the boundary.
func chunkFaceIsExposed(dense []Voxel, shape [3]int, originI, originJ, originK int, dim Dimension, side Side) bool {
	exposed := false
	NewLoop3OverFace(ChunkSize, dim, side).Execute(func(li, lj, lk int) {
		if exposed {
			return
		}
		gi, gj, gk := originI+li, originJ+lj, originK+lk
		self := denseVoxelAt(dense, shape, gi, gj, gk)
		if self.IsEmpty() {
			return
		}

		ngi, ngj, ngk := gi, gj, gk
		offset := -1
		if side == SideUpper {
			offset = 1
		}
		switch dim {
		case DimX:
			ngi += offset
		case DimY:
			ngj += offset
		default:
			ngk += offset
		}

		neighbor := denseVoxelAt(dense, shape, ngi, ngj, ngk)
		if neighbor.IsEmpty() {
			exposed = true
		}
	})
	return exposed
}

// foldSuperchunk classifies the S³ chunk block childChunks and, if it is
// NonUniform, appends the chunks to the object's chunk pool and computes
// its exposed-face flags from the dense array (see superchunkFaceIsExposed).
func foldSuperchunk(object *ChunkedVoxelObject, dense []Voxel, shape [3]int, si, sj, sk int, childChunks []VoxelChunk) VoxelSuperchunk {
	allEmpty := true
	allSameUniform := true
	var first Voxel
	firstSet := false

	for _, c := range childChunks {
		switch c.variant {
		case ChunkEmpty:
			allSameUniform = false
		case ChunkUniform:
			allEmpty = false
			if !firstSet {
				first = c.uniformVoxel
				firstSet = true
			} else if c.uniformVoxel != first {
				allSameUniform = false
			}
		default:
			allEmpty = false
			allSameUniform = false
		}
	}

	switch {
	case allEmpty:
		return VoxelSuperchunk{variant: ChunkEmpty}
	case allSameUniform:
		return VoxelSuperchunk{variant: ChunkUniform, uniformVoxel: first}
	default:
		offset := len(object.chunks)
		object.chunks = append(object.chunks, childChunks...)

		var flags chunkFlags
		for dim := DimX; dim <= DimZ; dim++ {
			for _, side := range [2]Side{SideLower, SideUpper} {
				if superchunkFaceIsExposed(dense, shape, si, sj, sk, dim, side) {
					flags.setFace(dim, side)
				}
			}
		}

		return VoxelSuperchunk{variant: ChunkNonUniform, chunksOffset: offset, flags: flags}
	}
}

// superchunkFaceIsExposed checks the same condition as chunkFaceIsExposed,
// one level up: it re-derives from the dense array rather than from already
// folded child chunks so that a boundary child folded to Uniform (which
// keeps no per-chunk flags of its own) is still accounted for.
func superchunkFaceIsExposed(dense []Voxel, shape [3]int, si, sj, sk int, dim Dimension, side Side) bool {
	exposed := false
	NewLoop3OverFace(SuperchunkSize, dim, side).Execute(func(li, lj, lk int) {
		if exposed {
			return
		}
		ci, cj, ck := si*SuperchunkSize+li, sj*SuperchunkSize+lj, sk*SuperchunkSize+lk
		originI, originJ, originK := ci*ChunkSize, cj*ChunkSize, ck*ChunkSize
		if chunkFaceIsExposed(dense, shape, originI, originJ, originK, dim, side) {
			exposed = true
		}
	})
	return exposed
}

// GetChunk returns the chunk at object-wide chunk indices (ci, cj, ck).
// Indices outside the object's bounds return an Empty chunk, matching the
// neighbor-lookup convention used throughout the store.
func (o *ChunkedVoxelObject) GetChunk(ci, cj, ck int) VoxelChunk {
	chunksPerAxis := o.nSuperchunksPerAxis * SuperchunkSize
	if ci < 0 || ci >= chunksPerAxis || cj < 0 || cj >= chunksPerAxis || ck < 0 || ck >= chunksPerAxis {
		return VoxelChunk{variant: ChunkEmpty}
	}

	si, sj, sk := ci/SuperchunkSize, cj/SuperchunkSize, ck/SuperchunkSize
	li, lj, lk := ci%SuperchunkSize, cj%SuperchunkSize, ck%SuperchunkSize

	superchunk := o.superchunks[si*o.nSuperchunksPerAxis*o.nSuperchunksPerAxis+sj*o.nSuperchunksPerAxis+sk]

	switch superchunk.variant {
	case ChunkEmpty:
		return VoxelChunk{variant: ChunkEmpty}
	case ChunkUniform:
		return VoxelChunk{variant: ChunkUniform, uniformVoxel: superchunk.uniformVoxel}
	default:
		return o.chunks[superchunk.chunksOffset+li*SuperchunkSize*SuperchunkSize+lj*SuperchunkSize+lk]
	}
}

// GetVoxel looks up the voxel at object-space voxel indices (x, y, z)
// through the superchunk-then-chunk-then-cell hierarchy. The second
// return value is false if the indices are outside the object's bounds.
func (o *ChunkedVoxelObject) GetVoxel(x, y, z int) (Voxel, bool) {
	voxelsPerAxis := o.nSuperchunksPerAxis * SuperchunkSize * ChunkSize
	if x < 0 || x >= voxelsPerAxis || y < 0 || y >= voxelsPerAxis || z < 0 || z >= voxelsPerAxis {
		return Voxel{}, false
	}

	ci, cj, ck := x/ChunkSize, y/ChunkSize, z/ChunkSize
	li, lj, lk := x%ChunkSize, y%ChunkSize, z%ChunkSize

	chunk := o.GetChunk(ci, cj, ck)
	switch chunk.variant {
	case ChunkEmpty:
		return EmptyVoxel(signedDistanceIfEmpty), true
	case ChunkUniform:
		return chunk.uniformVoxel, true
	default:
		return o.voxels[chunk.voxelsOffset+li*ChunkSize*ChunkSize+lj*ChunkSize+lk], true
	}
}

// ObjectStats summarizes the composition of a ChunkedVoxelObject, useful
// as a diagnostic and as the basis for cmd/voxelgen's summary output.
type ObjectStats struct {
	EmptySuperchunks      int
	UniformSuperchunks    int
	NonUniformSuperchunks int
	EmptyChunks           int
	UniformChunks         int
	NonUniformChunks      int
	ExposedChunks         int
}

// Stats computes an ObjectStats snapshot of the object's current
// composition.
func (o *ChunkedVoxelObject) Stats() ObjectStats {
	var stats ObjectStats

	for _, s := range o.superchunks {
		switch s.variant {
		case ChunkEmpty:
			stats.EmptySuperchunks++
		case ChunkUniform:
			stats.UniformSuperchunks++
		default:
			stats.NonUniformSuperchunks++
		}
	}

	for _, c := range o.chunks {
		switch c.variant {
		case ChunkEmpty:
			stats.EmptyChunks++
		case ChunkUniform:
			stats.UniformChunks++
		default:
			stats.NonUniformChunks++
			if c.flags.HasExposedFace() {
				stats.ExposedChunks++
			}
		}
	}

	return stats
}
