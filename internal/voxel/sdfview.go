package voxel

// PaddedChunkSize is ChunkSize plus one voxel of padding on every side: the
// size of the signed distance field buffer assembled for one exposed chunk.
const PaddedChunkSize = ChunkSize + 2

// PaddedSDF holds the signed distance samples for one chunk padded by one
// voxel on every side, so a mesher can interpolate distances all the way to
// the chunk's own boundary without special-casing the edge of the buffer.
// Every sample is a sign-correct placeholder (+0.5 empty, -0.5 non-empty)
// rather than a true distance: folded Empty and Uniform chunks retain no
// per-cell sample to draw a real one from, so the view never hands out
// real distances for any chunk, uniformly.
type PaddedSDF struct {
	data [PaddedChunkSize * PaddedChunkSize * PaddedChunkSize]float32
}

func paddedLinearIdx(a, b, c int) int {
	return a*PaddedChunkSize*PaddedChunkSize + b*PaddedChunkSize + c
}

// At returns the sample at padded indices (a, b, c), each in
// [0, PaddedChunkSize).
func (p *PaddedSDF) At(a, b, c int) float32 {
	return p.data[paddedLinearIdx(a, b, c)]
}

// AtInterior returns the sample for interior voxel (i, j, k), each in
// [0, ChunkSize): the chunk's own cell, not one of its neighbors'.
func (p *PaddedSDF) AtInterior(i, j, k int) float32 {
	return p.At(i+1, j+1, k+1)
}

// ExposedVoxelChunk identifies one chunk visited by
// ForEachExposedChunkWithSDF, by its chunk indices and the object-space
// voxel indices of its lower corner.
type ExposedVoxelChunk struct {
	ChunkIndices      [3]int
	LowerVoxelIndices [3]int
}

// ForEachExposedChunkWithSDF calls f once for every chunk that may be
// exposed to the outside of object, passing each one a padded SDF buffer
// assembled from the chunk and its 26 neighbors. The buffer is reused
// across calls to f: it must not be retained past the call.
//
// A chunk is visited when chunkIsExposed accepts it: a NonUniform chunk
// with at least one exposed-face bit, or a Uniform chunk with an empty cell
// on a neighbor's facing side. A NonUniform chunk whose non-empty voxels
// never reach its own faces has no face bits and is not visited. A chunk
// entirely enclosed by other chunks can still be visited if its own flags say a face borders empty space
// that itself turns out to be sealed off by a further chunk (a closed
// hollow volume crossing a superchunk boundary, say) — the flags are a
// conservative over-approximation, not an exact reachability computation.
// Superchunks are visited in row-major order; within a NonUniform
// superchunk, its interior chunks are visited before its boundary, in six
// per-face passes, matching the order the original iterates them in.
func ForEachExposedChunkWithSDF(object *ChunkedVoxelObject, f func(ExposedVoxelChunk, *PaddedSDF)) {
	var buf PaddedSDF
	n := object.nSuperchunksPerAxis

	for si := 0; si < n; si++ {
		for sj := 0; sj < n; sj++ {
			for sk := 0; sk < n; sk++ {
				superchunk := object.superchunks[si*n*n+sj*n+sk]

				switch superchunk.variant {
				case ChunkNonUniform:
					// The superchunk's own face flags describe only its
					// outer faces, so they are not used to skip it:
					// exposed chunks can lie entirely inside it.
					visitNonUniformSuperchunk(object, &buf, si, sj, sk, superchunk, f)
				case ChunkUniform:
					visitUniformSuperchunkBoundary(object, &buf, si, sj, sk, superchunk, f)
				}
			}
		}
	}
}

// visitNonUniformSuperchunk walks a mixed superchunk's children, interior
// first, then boundary in six face passes. A NonUniform child answers
// whether it is exposed from its own precomputed flags; an Empty child is
// skipped; a Uniform child has no flags of its own and is resolved
// generally, by probing its neighbors directly.
func visitNonUniformSuperchunk(object *ChunkedVoxelObject, buf *PaddedSDF, si, sj, sk int, superchunk VoxelSuperchunk, f func(ExposedVoxelChunk, *PaddedSDF)) {
	visit := func(li, lj, lk int) {
		localIdx := li*SuperchunkSize*SuperchunkSize + lj*SuperchunkSize + lk
		chunk := object.chunks[superchunk.chunksOffset+localIdx]
		if chunk.variant == ChunkEmpty {
			return
		}

		ci, cj, ck := si*SuperchunkSize+li, sj*SuperchunkSize+lj, sk*SuperchunkSize+lk
		if !chunkIsExposed(object, ci, cj, ck, chunk) {
			return
		}

		emit(object, buf, ci, cj, ck, chunk, f)
	}

	NewLoop3OverInterior(SuperchunkSize).Execute(visit)
	for _, boundary := range NewLoop3OverFullBoundary(SuperchunkSize) {
		boundary.Execute(visit)
	}
}

// visitUniformSuperchunkBoundary handles a superchunk that folded all the
// way to a single Uniform voxel. Its interior chunks can never be exposed
// (every neighbor within the same superchunk shares the same uniform
// voxel), so only the boundary layer, facing potentially different
// neighboring superchunks, needs checking.
func visitUniformSuperchunkBoundary(object *ChunkedVoxelObject, buf *PaddedSDF, si, sj, sk int, superchunk VoxelSuperchunk, f func(ExposedVoxelChunk, *PaddedSDF)) {
	chunk := VoxelChunk{variant: ChunkUniform, uniformVoxel: superchunk.uniformVoxel}

	visit := func(li, lj, lk int) {
		ci, cj, ck := si*SuperchunkSize+li, sj*SuperchunkSize+lj, sk*SuperchunkSize+lk
		if !chunkIsExposed(object, ci, cj, ck, chunk) {
			return
		}
		emit(object, buf, ci, cj, ck, chunk, f)
	}

	for _, boundary := range NewLoop3OverFullBoundary(SuperchunkSize) {
		boundary.Execute(visit)
	}
}

func emit(object *ChunkedVoxelObject, buf *PaddedSDF, ci, cj, ck int, chunk VoxelChunk, f func(ExposedVoxelChunk, *PaddedSDF)) {
	fillPaddedSDF(object, buf, ci, cj, ck, chunk)
	f(ExposedVoxelChunk{
		ChunkIndices:      [3]int{ci, cj, ck},
		LowerVoxelIndices: [3]int{ci * ChunkSize, cj * ChunkSize, ck * ChunkSize},
	}, buf)
}

// chunkIsExposed reports whether chunk, at object-wide chunk indices
// (ci, cj, ck), borders empty space anywhere. NonUniform chunks answer
// from their own precomputed flags (I4); Empty chunks are never exposed
// (nothing there to mesh); Uniform chunks keep no flags of their own and
// are checked directly against each of their six neighbors.
func chunkIsExposed(object *ChunkedVoxelObject, ci, cj, ck int, chunk VoxelChunk) bool {
	switch chunk.variant {
	case ChunkEmpty:
		return false
	case ChunkNonUniform:
		return chunk.flags.HasExposedFace()
	default:
		for _, fo := range faceOffsets {
			neighbor := object.GetChunk(ci+fo.d[0], cj+fo.d[1], ck+fo.d[2])
			if neighborFaceHasEmptyCell(object, neighbor, fo.dim, fo.side.Opposite()) {
				return true
			}
		}
		return false
	}
}

// neighborFaceHasEmptyCell reports whether any voxel on the given face of
// neighbor is empty: the condition under which a fully solid Uniform chunk
// bordering it on that face would itself be exposed there.
func neighborFaceHasEmptyCell(object *ChunkedVoxelObject, neighbor VoxelChunk, dim Dimension, side Side) bool {
	switch neighbor.variant {
	case ChunkEmpty:
		return true
	case ChunkUniform:
		return false
	default:
		exposed := false
		NewLoop3OverFace(ChunkSize, dim, side).Execute(func(li, lj, lk int) {
			if exposed {
				return
			}
			idx := neighbor.voxelsOffset + li*ChunkSize*ChunkSize + lj*ChunkSize + lk
			if object.voxels[idx].IsEmpty() {
				exposed = true
			}
		})
		return exposed
	}
}

type faceOffset struct {
	dim  Dimension
	side Side
	d    [3]int
}

var faceOffsets = [6]faceOffset{
	{DimX, SideLower, [3]int{-1, 0, 0}},
	{DimX, SideUpper, [3]int{1, 0, 0}},
	{DimY, SideLower, [3]int{0, -1, 0}},
	{DimY, SideUpper, [3]int{0, 1, 0}},
	{DimZ, SideLower, [3]int{0, 0, -1}},
	{DimZ, SideUpper, [3]int{0, 0, 1}},
}

type edgeOffset struct {
	faceDim                Dimension
	faceSide, secondarySide Side
	d                       [3]int
}

var edgeOffsets = [12]edgeOffset{
	{DimX, SideLower, SideLower, [3]int{-1, -1, 0}},
	{DimX, SideLower, SideUpper, [3]int{-1, 1, 0}},
	{DimX, SideUpper, SideLower, [3]int{1, -1, 0}},
	{DimX, SideUpper, SideUpper, [3]int{1, 1, 0}},
	{DimY, SideLower, SideLower, [3]int{0, -1, -1}},
	{DimY, SideLower, SideUpper, [3]int{0, -1, 1}},
	{DimY, SideUpper, SideLower, [3]int{0, 1, -1}},
	{DimY, SideUpper, SideUpper, [3]int{0, 1, 1}},
	{DimZ, SideLower, SideLower, [3]int{-1, 0, -1}},
	{DimZ, SideLower, SideUpper, [3]int{1, 0, -1}},
	{DimZ, SideUpper, SideLower, [3]int{-1, 0, 1}},
	{DimZ, SideUpper, SideUpper, [3]int{1, 0, 1}},
}

type sdfCornerOffset struct {
	xSide, ySide, zSide Side
	d                   [3]int
}

var sdfCornerOffsets = [8]sdfCornerOffset{
	{SideLower, SideLower, SideLower, [3]int{-1, -1, -1}},
	{SideLower, SideLower, SideUpper, [3]int{-1, -1, 1}},
	{SideLower, SideUpper, SideLower, [3]int{-1, 1, -1}},
	{SideLower, SideUpper, SideUpper, [3]int{-1, 1, 1}},
	{SideUpper, SideLower, SideLower, [3]int{1, -1, -1}},
	{SideUpper, SideLower, SideUpper, [3]int{1, -1, 1}},
	{SideUpper, SideUpper, SideLower, [3]int{1, 1, -1}},
	{SideUpper, SideUpper, SideUpper, [3]int{1, 1, 1}},
}

// fillPaddedSDF assembles buf for the exposed chunk at object-wide chunk
// indices (ci, cj, ck): its own interior, then the six face slabs, twelve
// edge strips and eight corner cells pulled from its neighbors.
//
// The original distinguishes a fast path (an interior chunk of the
// superchunk being visited, whose neighbors sit at fixed linear offsets
// into the same already-sliced chunk block) from a general path (a
// boundary chunk, whose neighbors are looked up one superchunk over).
// GetChunk here is already an O(1) index computation rather than a slice
// traversal, so both cases go through it uniformly; the distinction buys
// nothing in this layout.
func fillPaddedSDF(object *ChunkedVoxelObject, buf *PaddedSDF, ci, cj, ck int, chunk VoxelChunk) {
	fillInterior(object, buf, chunk)

	for _, fo := range faceOffsets {
		neighbor := object.GetChunk(ci+fo.d[0], cj+fo.d[1], ck+fo.d[2])
		sdfLoop := NewLoop3OverFaceInterior(PaddedChunkSize, fo.dim, fo.side)
		voxelLoop := NewLoop3OverFace(ChunkSize, fo.dim, fo.side.Opposite())
		fillFromNeighbor(object, buf, sdfLoop, voxelLoop, neighbor)
	}

	for _, eo := range edgeOffsets {
		neighbor := object.GetChunk(ci+eo.d[0], cj+eo.d[1], ck+eo.d[2])
		sdfLoop := NewLoop3OverEdgeInterior(PaddedChunkSize, eo.faceDim, eo.faceSide, eo.secondarySide)
		voxelLoop := NewLoop3OverEdge(ChunkSize, eo.faceDim, eo.faceSide.Opposite(), eo.secondarySide.Opposite())
		fillFromNeighbor(object, buf, sdfLoop, voxelLoop, neighbor)
	}

	for _, co := range sdfCornerOffsets {
		neighbor := object.GetChunk(ci+co.d[0], cj+co.d[1], ck+co.d[2])
		sdfLoop := NewLoop3OverCorner(PaddedChunkSize, co.xSide, co.ySide, co.zSide)
		voxelLoop := NewLoop3OverCorner(ChunkSize, co.xSide.Opposite(), co.ySide.Opposite(), co.zSide.Opposite())
		fillFromNeighbor(object, buf, sdfLoop, voxelLoop, neighbor)
	}
}

func fillInterior(object *ChunkedVoxelObject, buf *PaddedSDF, chunk VoxelChunk) {
	dst := NewMutDataLoop3(NewLoop3OverInterior(PaddedChunkSize), buf.data[:])
	switch chunk.variant {
	case ChunkEmpty:
		dst.FillDataWithValue(signedDistanceIfEmpty)
	case ChunkUniform:
		dst.FillDataWithValue(chunk.uniformVoxel.PlaceholderSignedDistanceValue())
	default:
		src := NewDataLoop3(NewLoop3OverAll(ChunkSize), object.voxels[chunk.voxelsOffset:])
		MapOtherDataIntoData(dst, src, Voxel.PlaceholderSignedDistanceValue)
	}
}

// fillFromNeighbor writes samples for every location sdfLoop covers in buf,
// read from the matching locations voxelLoop covers in neighbor, in
// lockstep. An Empty or Uniform neighbor has no per-cell samples to read,
// so every location gets the same placeholder instead.
func fillFromNeighbor(object *ChunkedVoxelObject, buf *PaddedSDF, sdfLoop, voxelLoop Loop3, neighbor VoxelChunk) {
	dst := NewMutDataLoop3(sdfLoop, buf.data[:])
	switch neighbor.variant {
	case ChunkEmpty:
		dst.FillDataWithValue(signedDistanceIfEmpty)
	case ChunkUniform:
		dst.FillDataWithValue(neighbor.uniformVoxel.PlaceholderSignedDistanceValue())
	default:
		src := NewDataLoop3(voxelLoop, object.voxels[neighbor.voxelsOffset:])
		MapOtherDataIntoData(dst, src, Voxel.PlaceholderSignedDistanceValue)
	}
}
