package voxel

import (
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl64"

	"VoxelStore/internal/logger"
)

// VoxelGenerator supplies a grid shape and a voxel at each grid index, the
// contract the dense generation driver and ChunkedVoxelObject construction
// are built against.
type VoxelGenerator interface {
	VoxelExtent() float64
	GridShape() [3]int
	VoxelAtIndices(i, j, k int) Voxel
}

// SDFVoxelGenerator derives a dense voxel grid from a signed distance
// field generator and a voxel type generator: the grid shape is sized to
// the SDF's domain plus a two-voxel empty border on every side (so a
// padded SDF view can always be assembled even at the object's outer
// boundary), and each cell samples the field at its center.
type SDFVoxelGenerator struct {
	voxelExtent        float64
	gridShape          [3]int
	gridCenter         mgl64.Vec3
	sdfGenerator       SDFGenerator
	voxelTypeGenerator VoxelTypeGenerator
}

// NewSDFVoxelGenerator creates a voxel generator sampling sdfGenerator and
// voxelTypeGenerator on a grid of the given voxel extent. Panics if
// voxelExtent is not positive.
func NewSDFVoxelGenerator(voxelExtent float64, sdfGenerator SDFGenerator, voxelTypeGenerator VoxelTypeGenerator) *SDFVoxelGenerator {
	precondition(voxelExtent > 0, "voxel: voxel extent must be positive, got %g", voxelExtent)

	domainExtents := sdfGenerator.DomainExtents()

	// A two-voxel border of empty voxels on every side lets a mesher
	// interpolate distances correctly all the way to the grid boundary.
	var gridShape [3]int
	for dim := 0; dim < 3; dim++ {
		gridShape[dim] = int(ceil(domainExtents[dim])) + 4
	}

	// The center is offset by half a grid cell relative to the object's
	// own coordinates, since the SDF is evaluated at the center of each
	// voxel rather than at its lower corner.
	gridCenter := mgl64.Vec3{
		0.5 * float64(gridShape[0]-1),
		0.5 * float64(gridShape[1]-1),
		0.5 * float64(gridShape[2]-1),
	}

	return &SDFVoxelGenerator{
		voxelExtent:        voxelExtent,
		gridShape:          gridShape,
		gridCenter:         gridCenter,
		sdfGenerator:       sdfGenerator,
		voxelTypeGenerator: voxelTypeGenerator,
	}
}

func ceil(x float64) float64 {
	i := float64(int64(x))
	if x > i {
		return i + 1
	}
	return i
}

func (g *SDFVoxelGenerator) VoxelExtent() float64 {
	return g.voxelExtent
}

func (g *SDFVoxelGenerator) GridShape() [3]int {
	return g.gridShape
}

func (g *SDFVoxelGenerator) VoxelAtIndices(i, j, k int) Voxel {
	displacement := mgl64.Vec3{float64(i), float64(j), float64(k)}.Sub(g.gridCenter)

	distance := float32(g.sdfGenerator.ComputeSignedDistance(displacement))

	if distance < 0 {
		voxelType := g.voxelTypeGenerator.VoxelTypeAtIndices(i, j, k)
		return NonEmptyVoxel(voxelType, distance)
	}
	return EmptyVoxel(distance)
}

// GenerateVoxelsParallel evaluates generator at every grid index and calls
// set(i, j, k, voxel) for each one, partitioning the work into
// contiguous Y-slabs handed to a worker pool. Mirrors the teacher's
// GenerateVoxelsParallel/GenerateSDFParallel XZ-tile partitioning in
// internal/loader/voxel_core.go, adapted to slab along Y since here every
// cell is independent (no shared chunk state is mutated concurrently;
// set is expected to write into disjoint regions per slab, e.g. a
// pre-sized buffer).
func GenerateVoxelsParallel(generator VoxelGenerator, set func(i, j, k int, v Voxel)) {
	shape := generator.GridShape()

	numWorkers := runtime.NumCPU()
	pool := pond.NewPool(numWorkers)
	defer pool.StopAndWait()

	var wg sync.WaitGroup

	slabHeight := (shape[1] + numWorkers - 1) / numWorkers
	if slabHeight < 1 {
		slabHeight = 1
	}

	for y0 := 0; y0 < shape[1]; y0 += slabHeight {
		y1 := y0 + slabHeight
		if y1 > shape[1] {
			y1 = shape[1]
		}

		wg.Add(1)
		startY, endY := y0, y1
		pool.Submit(func() {
			defer wg.Done()

			for i := 0; i < shape[0]; i++ {
				for j := startY; j < endY; j++ {
					for k := 0; k < shape[2]; k++ {
						set(i, j, k, generator.VoxelAtIndices(i, j, k))
					}
				}
			}
		})
	}

	wg.Wait()

	logger.Log.Debug("generated dense voxel grid")
}
