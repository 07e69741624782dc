package voxel

import (
	"sync"
	"testing"
)

func TestNewSDFVoxelGeneratorGridShapeHasEmptyBorder(t *testing.T) {
	sdf := NewBoxSDFGenerator([3]float64{10, 10, 10})
	g := NewSDFVoxelGenerator(1, sdf, NewSameVoxelTypeGenerator(1))

	shape := g.GridShape()
	want := [3]int{14, 14, 14}
	if shape != want {
		t.Fatalf("grid shape = %v, want %v", shape, want)
	}
}

func TestNewSDFVoxelGeneratorRejectsNonPositiveExtent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive voxel extent")
		}
	}()
	NewSDFVoxelGenerator(0, NewSphereSDFGenerator(1), NewSameVoxelTypeGenerator(1))
}

func TestSDFVoxelGeneratorBorderCellsAreEmpty(t *testing.T) {
	sdf := NewBoxSDFGenerator([3]float64{8, 8, 8})
	g := NewSDFVoxelGenerator(1, sdf, NewSameVoxelTypeGenerator(1))
	shape := g.GridShape()

	corner := g.VoxelAtIndices(0, 0, 0)
	if !corner.IsEmpty() {
		t.Fatal("grid corner (inside the generation border) should be empty")
	}
	far := g.VoxelAtIndices(shape[0]-1, shape[1]-1, shape[2]-1)
	if !far.IsEmpty() {
		t.Fatal("opposite grid corner (inside the generation border) should be empty")
	}
}

func TestSDFVoxelGeneratorCenterCellIsNonEmptyForSolidShape(t *testing.T) {
	sdf := NewBoxSDFGenerator([3]float64{8, 8, 8})
	g := NewSDFVoxelGenerator(1, sdf, NewSameVoxelTypeGenerator(7))
	shape := g.GridShape()

	center := g.VoxelAtIndices(shape[0]/2, shape[1]/2, shape[2]/2)
	if center.IsEmpty() {
		t.Fatal("center cell of a solid box should be non-empty")
	}
	if center.Type() != 7 {
		t.Fatalf("center cell type = %v, want 7", center.Type())
	}
}

func TestGenerateVoxelsParallelVisitsEveryCellExactlyOnce(t *testing.T) {
	sdf := NewBoxSDFGenerator([3]float64{6, 10, 4})
	g := NewSDFVoxelGenerator(1, sdf, NewSameVoxelTypeGenerator(1))
	shape := g.GridShape()

	var mu sync.Mutex
	seen := make(map[[3]int]int)

	GenerateVoxelsParallel(g, func(i, j, k int, _ Voxel) {
		mu.Lock()
		seen[[3]int{i, j, k}]++
		mu.Unlock()
	})

	if len(seen) != shape[0]*shape[1]*shape[2] {
		t.Fatalf("visited %d distinct cells, want %d", len(seen), shape[0]*shape[1]*shape[2])
	}
	for idx, count := range seen {
		if count != 1 {
			t.Fatalf("cell %v visited %d times, want 1", idx, count)
		}
	}
}

func TestGenerateVoxelsParallelMatchesSequentialSampling(t *testing.T) {
	sdf := NewSphereSDFGenerator(6)
	g := NewSDFVoxelGenerator(1, sdf, NewSameVoxelTypeGenerator(2))
	shape := g.GridShape()

	var mu sync.Mutex
	got := make(map[[3]int]Voxel)
	GenerateVoxelsParallel(g, func(i, j, k int, v Voxel) {
		mu.Lock()
		got[[3]int{i, j, k}] = v
		mu.Unlock()
	})

	for i := 0; i < shape[0]; i += 3 {
		for j := 0; j < shape[1]; j += 3 {
			for k := 0; k < shape[2]; k += 3 {
				want := g.VoxelAtIndices(i, j, k)
				v := got[[3]int{i, j, k}]
				if v.IsEmpty() != want.IsEmpty() || v.SignedDistanceValue() != want.SignedDistanceValue() {
					t.Fatalf("parallel sample at (%d,%d,%d) = %+v, want %+v", i, j, k, v, want)
				}
			}
		}
	}
}
