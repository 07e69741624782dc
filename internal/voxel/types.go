package voxel

// VoxelTypeGenerator assigns a voxel type to each grid index, independent
// of the distance field that decides which indices are filled at all.
type VoxelTypeGenerator interface {
	VoxelTypeAtIndices(i, j, k int) VoxelType
}

// SameVoxelTypeGenerator always returns the same voxel type, for objects
// made of a single material.
type SameVoxelTypeGenerator struct {
	voxelType VoxelType
}

// NewSameVoxelTypeGenerator creates a generator that always returns
// voxelType.
func NewSameVoxelTypeGenerator(voxelType VoxelType) *SameVoxelTypeGenerator {
	return &SameVoxelTypeGenerator{voxelType: voxelType}
}

func (g *SameVoxelTypeGenerator) VoxelTypeAtIndices(_, _, _ int) VoxelType {
	return g.voxelType
}

// GradientNoiseVoxelTypeGenerator determines voxel types by sampling a 4D
// gradient noise field and picking, at each location, the candidate type
// whose fourth noise coordinate gives the strongest value. This spreads
// several material types through a volume in coherent patches rather than
// uniform noise speckling.
type GradientNoiseVoxelTypeGenerator struct {
	voxelTypes                []VoxelType
	noiseFrequency            float64
	noiseScaleForVoxelTypeDim float64
	noise                     *quadNoise4D
}

// NewGradientNoiseVoxelTypeGenerator creates a generator that chooses among
// voxelTypes using 4D noise at the given spatial frequency and
// voxel-type-axis frequency. Panics if voxelTypes is empty.
func NewGradientNoiseVoxelTypeGenerator(voxelTypes []VoxelType, noiseFrequency, voxelTypeFrequency float64, seed int64) *GradientNoiseVoxelTypeGenerator {
	precondition(len(voxelTypes) > 0, "voxel: gradient noise voxel type generator needs at least one candidate type")

	types := make([]VoxelType, len(voxelTypes))
	copy(types, voxelTypes)

	return &GradientNoiseVoxelTypeGenerator{
		voxelTypes:                types,
		noiseFrequency:            noiseFrequency,
		noiseScaleForVoxelTypeDim: voxelTypeFrequency / float64(len(types)),
		noise:                     newQuadNoise4D(seed),
	}
}

func (g *GradientNoiseVoxelTypeGenerator) VoxelTypeAtIndices(i, j, k int) VoxelType {
	x := float64(i) * g.noiseFrequency
	y := float64(j) * g.noiseFrequency
	z := float64(k) * g.noiseFrequency

	bestType := g.voxelTypes[0]
	bestValue := g.noise.at(x, y, z, 0)

	for idx := 1; idx < len(g.voxelTypes); idx++ {
		voxelTypeCoord := float64(idx) * g.noiseScaleForVoxelTypeDim
		value := g.noise.at(x, y, z, voxelTypeCoord)
		if value > bestValue {
			bestValue = value
			bestType = g.voxelTypes[idx]
		}
	}

	return bestType
}
