package voxel

import (
	"math"
	"testing"
)

// P6/P7: every cell of every exposed chunk's padded SDF is a sign-correct,
// non-zero, non-NaN placeholder, and matches the emptiness of the voxel it
// corresponds to (or +0.5 if that voxel falls outside the object's bounds).
func TestPaddedSDFCellsMatchVoxelEmptinessAndAreNeverZeroOrNaN(t *testing.T) {
	object := buildOrFatal(t, NewSDFVoxelGenerator(1, NewSphereSDFGenerator(20), NewSameVoxelTypeGenerator(1)))

	visited := 0
	ForEachExposedChunkWithSDF(object, func(c ExposedVoxelChunk, buf *PaddedSDF) {
		visited++
		for a := 0; a < PaddedChunkSize; a++ {
			for b := 0; b < PaddedChunkSize; b++ {
				for k := 0; k < PaddedChunkSize; k++ {
					v := buf.At(a, b, k)

					if v == 0 {
						t.Fatalf("chunk %v cell (%d,%d,%d) is exactly zero", c.ChunkIndices, a, b, k)
					}
					if math.IsNaN(float64(v)) {
						t.Fatalf("chunk %v cell (%d,%d,%d) is NaN", c.ChunkIndices, a, b, k)
					}

					x := c.LowerVoxelIndices[0] + a - 1
					y := c.LowerVoxelIndices[1] + b - 1
					z := c.LowerVoxelIndices[2] + k - 1

					voxel, ok := object.GetVoxel(x, y, z)
					if !ok {
						if v != signedDistanceIfEmpty {
							t.Fatalf("chunk %v cell (%d,%d,%d) maps to out-of-bounds voxel (%d,%d,%d) = %v, want %v",
								c.ChunkIndices, a, b, k, x, y, z, v, signedDistanceIfEmpty)
						}
						continue
					}

					if voxel.IsEmpty() && v <= 0 {
						t.Fatalf("chunk %v cell (%d,%d,%d) = %v is non-positive but voxel (%d,%d,%d) is empty",
							c.ChunkIndices, a, b, k, v, x, y, z)
					}
					if !voxel.IsEmpty() && v >= 0 {
						t.Fatalf("chunk %v cell (%d,%d,%d) = %v is non-negative but voxel (%d,%d,%d) is non-empty",
							c.ChunkIndices, a, b, k, v, x, y, z)
					}
				}
			}
		}
	})

	if visited == 0 {
		t.Fatal("expected at least one exposed chunk for a radius-20 sphere")
	}
}

// A chunk's own interior, read back out of its padded buffer, must match
// the object's own voxels at those indices exactly (not just in sign):
// fillInterior copies the chunk's own placeholder values verbatim.
func TestPaddedSDFInteriorMatchesChunkOwnVoxels(t *testing.T) {
	object := buildOrFatal(t, NewSDFVoxelGenerator(1, NewSphereSDFGenerator(14), NewSameVoxelTypeGenerator(1)))

	ForEachExposedChunkWithSDF(object, func(c ExposedVoxelChunk, buf *PaddedSDF) {
		for i := 0; i < ChunkSize; i++ {
			for j := 0; j < ChunkSize; j++ {
				for k := 0; k < ChunkSize; k++ {
					voxel, ok := object.GetVoxel(
						c.LowerVoxelIndices[0]+i,
						c.LowerVoxelIndices[1]+j,
						c.LowerVoxelIndices[2]+k,
					)
					if !ok {
						t.Fatalf("chunk %v interior voxel (%d,%d,%d) out of object bounds", c.ChunkIndices, i, j, k)
					}
					want := voxel.PlaceholderSignedDistanceValue()
					if got := buf.AtInterior(i, j, k); got != want {
						t.Fatalf("chunk %v interior (%d,%d,%d) = %v, want %v", c.ChunkIndices, i, j, k, got, want)
					}
				}
			}
		}
	})
}

// Face padding pulled from a neighboring chunk must agree with directly
// asking the object for the same voxel through GetVoxel, for both a
// NonUniform neighbor (individual cell lookup) and, via the sphere's
// interior, a Uniform one (the whole face reads the same placeholder).
func TestPaddedSDFFacePaddingMatchesNeighborLookup(t *testing.T) {
	object := buildOrFatal(t, NewSDFVoxelGenerator(1, NewSphereSDFGenerator(20), NewSameVoxelTypeGenerator(1)))

	checked := 0
	ForEachExposedChunkWithSDF(object, func(c ExposedVoxelChunk, buf *PaddedSDF) {
		lo := c.LowerVoxelIndices

		// The lower-X face padding slab sits at padded index a=0, spanning
		// the full interior range on the other two axes.
		for b := 1; b <= ChunkSize; b++ {
			for k := 1; k <= ChunkSize; k++ {
				x, y, z := lo[0]-1, lo[1]+b-1, lo[2]+k-1
				voxel, ok := object.GetVoxel(x, y, z)

				got := buf.At(0, b, k)
				if !ok {
					if got != signedDistanceIfEmpty {
						t.Fatalf("face padding (%d,%d) out of bounds but = %v, want %v", b, k, got, signedDistanceIfEmpty)
					}
					continue
				}
				if want := voxel.PlaceholderSignedDistanceValue(); got != want {
					t.Fatalf("face padding at voxel (%d,%d,%d) = %v, want %v", x, y, z, got, want)
				}
				checked++
			}
		}
	})

	if checked == 0 {
		t.Fatal("expected at least one in-bounds face padding cell to check")
	}
}

// S2, re-examined from the SDF-view side: a chunk-aligned solid block
// folds to a single Uniform chunk, and ForEachExposedChunkWithSDF reaches
// it through the Uniform source path (fillInterior's ChunkUniform branch),
// not the NonUniform one.
func TestForEachExposedChunkWithSDFUsesUniformSourcePath(t *testing.T) {
	g := solidChunks(2, func(ci, cj, ck int) bool { return ci == 0 && cj == 0 && ck == 0 }, 5)
	object := buildOrFatal(t, g)

	visited := 0
	ForEachExposedChunkWithSDF(object, func(c ExposedVoxelChunk, buf *PaddedSDF) {
		visited++
		chunk := object.GetChunk(c.ChunkIndices[0], c.ChunkIndices[1], c.ChunkIndices[2])
		if chunk.variant != ChunkUniform {
			t.Fatalf("chunk %v has variant %v, want ChunkUniform", c.ChunkIndices, chunk.variant)
		}
		for i := 0; i < ChunkSize; i++ {
			for j := 0; j < ChunkSize; j++ {
				for k := 0; k < ChunkSize; k++ {
					if got := buf.AtInterior(i, j, k); got != signedDistanceIfNonEmpty {
						t.Fatalf("interior (%d,%d,%d) = %v, want %v", i, j, k, got, signedDistanceIfNonEmpty)
					}
				}
			}
		}
	})
	if visited != 1 {
		t.Fatalf("visited %d chunks, want 1", visited)
	}
}
