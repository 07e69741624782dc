package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SDFGenerator evaluates a signed distance field: negative inside the
// surface, positive outside, with displacements measured in voxel grid
// coordinates relative to the field's own center.
type SDFGenerator interface {
	// DomainExtents returns the extents, along each axis, of the region
	// around the center where the field can be negative.
	DomainExtents() [3]float64

	// ComputeSignedDistance returns the signed distance at the given
	// displacement from the field's center.
	ComputeSignedDistance(displacementFromCenter mgl64.Vec3) float64
}

// BoxSDFGenerator is a signed distance field for an axis-aligned box.
type BoxSDFGenerator struct {
	halfExtents mgl64.Vec3
}

// NewBoxSDFGenerator creates a generator for a box with the given extents
// (in voxels). Panics if any extent is negative.
func NewBoxSDFGenerator(extents [3]float64) *BoxSDFGenerator {
	for _, e := range extents {
		precondition(e >= 0, "voxel: box extents must be non-negative, got %v", extents)
	}
	return &BoxSDFGenerator{
		halfExtents: mgl64.Vec3{0.5 * extents[0], 0.5 * extents[1], 0.5 * extents[2]},
	}
}

func (b *BoxSDFGenerator) DomainExtents() [3]float64 {
	return [3]float64{2 * b.halfExtents[0], 2 * b.halfExtents[1], 2 * b.halfExtents[2]}
}

func (b *BoxSDFGenerator) ComputeSignedDistance(d mgl64.Vec3) float64 {
	qx := math.Abs(d[0]) - b.halfExtents[0]
	qy := math.Abs(d[1]) - b.halfExtents[1]
	qz := math.Abs(d[2]) - b.halfExtents[2]

	outsideX, outsideY, outsideZ := math.Max(qx, 0), math.Max(qy, 0), math.Max(qz, 0)
	outsideMagnitude := math.Sqrt(outsideX*outsideX + outsideY*outsideY + outsideZ*outsideZ)

	insideMax := math.Max(qx, math.Max(qy, qz))
	return outsideMagnitude + math.Min(insideMax, 0)
}

// SphereSDFGenerator is a signed distance field for a sphere centered at
// the origin of its domain.
type SphereSDFGenerator struct {
	radius float64
}

// NewSphereSDFGenerator creates a generator for a sphere with the given
// radius (in voxels). Panics if radius is negative.
func NewSphereSDFGenerator(radius float64) *SphereSDFGenerator {
	precondition(radius >= 0, "voxel: sphere radius must be non-negative, got %g", radius)
	return &SphereSDFGenerator{radius: radius}
}

func (s *SphereSDFGenerator) DomainExtents() [3]float64 {
	e := 2 * s.radius
	return [3]float64{e, e, e}
}

func (s *SphereSDFGenerator) ComputeSignedDistance(d mgl64.Vec3) float64 {
	return d.Len() - s.radius
}

// GradientNoiseSDFGenerator produces a signed "distance" field obtained by
// thresholding a gradient noise pattern. The resulting field is not a true
// distance field away from the threshold crossing.
type GradientNoiseSDFGenerator struct {
	extents        [3]float64
	noiseFrequency float64
	noiseThreshold float64
	noise          *simplexNoise3D
}

// NewGradientNoiseSDFGenerator creates a generator for a gradient noise
// voxel pattern with the given extents (in voxels), noise frequency, noise
// threshold and seed. Panics if any extent is negative.
func NewGradientNoiseSDFGenerator(extents [3]float64, noiseFrequency, noiseThreshold float64, seed int64) *GradientNoiseSDFGenerator {
	for _, e := range extents {
		precondition(e >= 0, "voxel: gradient noise extents must be non-negative, got %v", extents)
	}
	return &GradientNoiseSDFGenerator{
		extents:        extents,
		noiseFrequency: noiseFrequency,
		noiseThreshold: noiseThreshold,
		noise:          newSimplexNoise3D(seed),
	}
}

func (g *GradientNoiseSDFGenerator) DomainExtents() [3]float64 {
	return g.extents
}

func (g *GradientNoiseSDFGenerator) ComputeSignedDistance(d mgl64.Vec3) float64 {
	noiseValue := g.noise.at(g.noiseFrequency*d[0], g.noiseFrequency*d[1], g.noiseFrequency*d[2])
	return g.noiseThreshold - noiseValue
}

// SDFUnion wraps two signed distance field generators and outputs the
// smooth union of the two fields.
type SDFUnion struct {
	smoothness                                                   float64
	domainExtents                                                [3]float64
	displacementFromCenterToCenter1, displacementFromCenterToCenter2 mgl64.Vec3
	generator1, generator2                                       SDFGenerator
}

// NewSDFUnion creates a smooth union wrapper over generator1 and
// generator2, assuming their domain centers are offset by centerOffsets
// (in voxels).
func NewSDFUnion(generator1, generator2 SDFGenerator, centerOffsets [3]float64, smoothness float64) *SDFUnion {
	extents1 := generator1.DomainExtents()
	extents2 := generator2.DomainExtents()

	var lowerCornerOffsets, lowerCorner, domainExtents [3]float64
	for dim := 0; dim < 3; dim++ {
		lowerCornerOffsets[dim] = centerOffsets[dim] + 0.5*(extents1[dim]-extents2[dim])
		lowerCorner[dim] = math.Min(0, lowerCornerOffsets[dim])
		domainExtents[dim] = math.Max(extents1[dim], extents2[dim]+lowerCornerOffsets[dim]) - lowerCorner[dim]
	}

	var toCenter1, toCenter2 mgl64.Vec3
	for dim := 0; dim < 3; dim++ {
		toCenter1[dim] = 0.5*(extents1[dim]-domainExtents[dim]) - lowerCorner[dim]
		toCenter2[dim] = lowerCornerOffsets[dim] + 0.5*(extents2[dim]-domainExtents[dim]) - lowerCorner[dim]
	}

	return &SDFUnion{
		smoothness:                       smoothness,
		domainExtents:                    domainExtents,
		displacementFromCenterToCenter1:  toCenter1,
		displacementFromCenterToCenter2:  toCenter2,
		generator1:                       generator1,
		generator2:                       generator2,
	}
}

func (u *SDFUnion) DomainExtents() [3]float64 {
	return u.domainExtents
}

func (u *SDFUnion) ComputeSignedDistance(d mgl64.Vec3) float64 {
	d1 := d.Sub(u.displacementFromCenterToCenter1)
	d2 := d.Sub(u.displacementFromCenterToCenter2)

	sd1 := u.generator1.ComputeSignedDistance(d1)
	sd2 := u.generator2.ComputeSignedDistance(d2)

	return smoothUnion(sd1, sd2, u.smoothness)
}

// SDFIntersection wraps two signed distance field generators sharing the
// same domain center and outputs the smooth intersection of the two
// fields. Exposed as a standalone composer (the original uses the
// equivalent smooth-intersection free function only internally, from
// MultiscaleSphereModifier), matching the framing of smooth-union and
// smooth-intersection as a generic composition toolkit.
type SDFIntersection struct {
	smoothness              float64
	generator1, generator2  SDFGenerator
}

// NewSDFIntersection creates a smooth intersection wrapper over
// generator1 and generator2, which must share a domain center.
func NewSDFIntersection(generator1, generator2 SDFGenerator, smoothness float64) *SDFIntersection {
	return &SDFIntersection{smoothness: smoothness, generator1: generator1, generator2: generator2}
}

func (x *SDFIntersection) DomainExtents() [3]float64 {
	e1 := x.generator1.DomainExtents()
	e2 := x.generator2.DomainExtents()
	var e [3]float64
	for dim := 0; dim < 3; dim++ {
		e[dim] = math.Min(e1[dim], e2[dim])
	}
	return e
}

func (x *SDFIntersection) ComputeSignedDistance(d mgl64.Vec3) float64 {
	sd1 := x.generator1.ComputeSignedDistance(d)
	sd2 := x.generator2.ComputeSignedDistance(d)
	return smoothIntersection(sd1, sd2, x.smoothness)
}

// smoothUnion blends two signed distances with a quadratic polynomial kernel
// of the given smoothness, falling back to plain min as smoothness
// approaches zero.
func smoothUnion(distance1, distance2, smoothness float64) float64 {
	h := clamp01(0.5 + 0.5*(distance2-distance1)/smoothness)
	return mix(distance2, distance1, h) - smoothness*h*(1-h)
}

// smoothSubtraction subtracts distance1 from distance2 with the same
// polynomial blending as smoothUnion. Kept for completeness of the
// composition algebra even though no exposed composer currently uses it
// directly (mirrors the original leaving it private and unused outside
// tests).
func smoothSubtraction(distance1, distance2, smoothness float64) float64 {
	h := clamp01(0.5 - 0.5*(distance2+distance1)/smoothness)
	return mix(distance2, -distance1, h) + smoothness*h*(1-h)
}

// smoothIntersection blends two signed distances toward their max with
// the same polynomial kernel as smoothUnion.
func smoothIntersection(distance1, distance2, smoothness float64) float64 {
	h := clamp01(0.5 - 0.5*(distance2-distance1)/smoothness)
	return mix(distance2, distance1, h) + smoothness*h*(1-h)
}

func mix(a, b, factor float64) float64 {
	return (1-factor)*a + factor*b
}

func clamp01(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x >= 0 {
		return x
	}
	// Negative values and NaN (0/0 from equal distances at zero
	// smoothness) both clamp to 0.
	return 0
}
