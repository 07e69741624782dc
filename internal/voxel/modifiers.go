package voxel

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// MultifractalNoiseModifier wraps a signed distance field generator, adding
// a multifractal noise perturbation to its output. The result is in
// general no longer a true distance field, so this is best used only for
// minor surface perturbations.
type MultifractalNoiseModifier struct {
	noise     *octaveNoise3D
	amplitude float64
	generator SDFGenerator
}

// NewMultifractalNoiseModifier wraps generator with a multifractal noise
// term of the given octave count, frequency, lacunarity, persistence and
// amplitude.
func NewMultifractalNoiseModifier(generator SDFGenerator, octaves int, frequency, lacunarity, persistence, amplitude float64, seed int64) *MultifractalNoiseModifier {
	return &MultifractalNoiseModifier{
		noise:     newOctaveNoise3D(octaves, frequency, lacunarity, persistence, seed),
		amplitude: amplitude,
		generator: generator,
	}
}

func (m *MultifractalNoiseModifier) DomainExtents() [3]float64 {
	return m.generator.DomainExtents()
}

func (m *MultifractalNoiseModifier) ComputeSignedDistance(d mgl64.Vec3) float64 {
	signedDistance := m.generator.ComputeSignedDistance(d)
	perturbation := m.amplitude * m.noise.at(d[0], d[1], d[2])
	return signedDistance + perturbation
}

// goldenRotationQuat is the unit quaternion for a rotation by an angle of
// 2*pi/goldenRatio around the axis [1, 1, 1], the same fixed rotation the
// original source applies between MultiscaleSphereModifier octaves to
// break up the regular sphere grid's pattern. goldenRotate applies it with
// mgl64.Quat.Rotate (v' = q*v*q^-1).
var goldenRotationQuat = mgl64.Quat{
	W: -0.36237489008036256,
	V: mgl64.Vec3{0.5381091707820528, 0.5381091707820528, 0.5381091707820528},
}

func goldenRotate(v mgl64.Vec3) mgl64.Vec3 {
	return goldenRotationQuat.Rotate(v)
}

// MultiscaleSphereModifier performs a stochastic multiscale modification of
// a signed distance field's surface by superimposing, at each octave, a
// field representing a grid of spheres with hashed radii, smooth-
// intersected with the parent field near the surface and then smooth-
// unioned back in. See https://iquilezles.org/articles/fbmsdf/. Unlike
// MultifractalNoiseModifier, the result remains a valid signed distance
// field.
type MultiscaleSphereModifier struct {
	octaves     int
	frequency   float64
	persistence float64
	inflation   float64
	smoothness  float64
	seed        uint64
	generator   SDFGenerator
}

// NewMultiscaleSphereModifier wraps generator with octaves octaves of
// hashed-radius sphere grids at progressively smaller, more numerous
// scales starting at maxScale.
func NewMultiscaleSphereModifier(generator SDFGenerator, octaves int, maxScale, persistence, inflation, smoothness float64, seed uint64) *MultiscaleSphereModifier {
	return &MultiscaleSphereModifier{
		octaves:     octaves,
		frequency:   0.5 / maxScale,
		persistence: persistence,
		inflation:   maxScale * inflation,
		smoothness:  maxScale * smoothness,
		seed:        seed,
		generator:   generator,
	}
}

func (m *MultiscaleSphereModifier) DomainExtents() [3]float64 {
	e := m.generator.DomainExtents()
	inflated := 5 * m.inflation
	return [3]float64{e[0] + inflated, e[1] + inflated, e[2] + inflated}
}

func (m *MultiscaleSphereModifier) ComputeSignedDistance(d mgl64.Vec3) float64 {
	signedDistance := m.generator.ComputeSignedDistance(d)
	return m.modifySignedDistance(d, signedDistance)
}

func (m *MultiscaleSphereModifier) modifySignedDistance(position mgl64.Vec3, signedDistance float64) float64 {
	parentDistance := signedDistance
	p := position.Mul(m.frequency)
	scale := 1.0

	for octave := 0; octave < m.octaves; octave++ {
		sphereGridDistance := scale * m.evaluateSphereGridSDF(p)

		intersected := smoothIntersection(
			sphereGridDistance,
			parentDistance-m.inflation*scale,
			m.smoothness*scale,
		)

		parentDistance = smoothUnion(intersected, parentDistance, m.smoothness*scale)

		p = goldenRotate(p.Mul(1 / m.persistence))
		scale *= m.persistence
	}

	return parentDistance
}

var cornerOffsets = [8][3]int32{
	{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
	{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1},
}

func (m *MultiscaleSphereModifier) evaluateSphereGridSDF(position mgl64.Vec3) float64 {
	gridCellIndices := [3]int32{
		int32(math.Floor(position[0])),
		int32(math.Floor(position[1])),
		int32(math.Floor(position[2])),
	}
	offsetInGridCell := mgl64.Vec3{
		position[0] - float64(gridCellIndices[0]),
		position[1] - float64(gridCellIndices[1]),
		position[2] - float64(gridCellIndices[2]),
	}

	min := math.Inf(1)
	for _, corner := range cornerOffsets {
		d := m.evaluateCornerSphereSDF(gridCellIndices, offsetInGridCell, corner)
		if d < min {
			min = d
		}
	}
	return min
}

func (m *MultiscaleSphereModifier) evaluateCornerSphereSDF(gridCellIndices [3]int32, offsetInGridCell mgl64.Vec3, cornerOffsets [3]int32) float64 {
	radius := m.cornerSphereRadius(gridCellIndices, cornerOffsets)

	dx := offsetInGridCell[0] - float64(cornerOffsets[0])
	dy := offsetInGridCell[1] - float64(cornerOffsets[1])
	dz := offsetInGridCell[2] - float64(cornerOffsets[2])
	distanceToCenter := math.Sqrt(dx*dx + dy*dy + dz*dz)

	return distanceToCenter - radius
}

// hashToRadius scales a 64-bit hash down to [0, 0.5], the maximum radius
// being half the extent of a grid cell.
const maxUint64AsFloat64 = 1.8446744073709552e19

const hashToRadius = 0.5 / maxUint64AsFloat64

// cornerSphereRadius hashes a grid cell's corner coordinates into a
// pseudo-random radius, mirroring the original's
// XxHash64::oneshot(seed, bytemuck::bytes_of(&(grid_cell_indices +
// corner_offsets))). The three summed coordinates are packed tightly (12
// bytes, no padding) to match the Rust side's Vector3<i32> layout.
func (m *MultiscaleSphereModifier) cornerSphereRadius(gridCellIndices [3]int32, cornerOffsets [3]int32) float64 {
	var key [12]byte
	putInt32(key[0:4], gridCellIndices[0]+cornerOffsets[0])
	putInt32(key[4:8], gridCellIndices[1]+cornerOffsets[1])
	putInt32(key[8:12], gridCellIndices[2]+cornerOffsets[2])

	h := xxhash.NewWithSeed(m.seed)
	_, _ = h.Write(key[:])
	hash := h.Sum64()

	return hashToRadius * float64(hash)
}

func putInt32(b []byte, v int32) {
	u := uint32(v)
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
	b[3] = byte(u >> 24)
}
