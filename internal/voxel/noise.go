package voxel

import (
	"math"
	"math/rand"

	perlin "github.com/aquilax/go-perlin"
)

// simplexNoise3D wraps the teacher's go-perlin dependency (already used for
// terrain height fields in the teacher's gocraft example) as a single,
// roughly [-1, 1]-valued 3D noise field, for GradientNoiseSDFGenerator.
type simplexNoise3D struct {
	p *perlin.Perlin
}

func newSimplexNoise3D(seed int64) *simplexNoise3D {
	return &simplexNoise3D{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (n *simplexNoise3D) at(x, y, z float64) float64 {
	return n.p.Noise3D(x, y, z)
}

// octaveNoise3D is a hybrid-multifractal-style fractal sum of 3D noise
// octaves, backing MultifractalNoiseModifier. Named after the original's
// noise::HybridMulti<Simplex> combinator: each octave's contribution is
// weighted by the running product of prior octaves' normalized amplitude,
// so ridges reinforce rather than simply accumulate.
type octaveNoise3D struct {
	p           *perlin.Perlin
	octaves     int
	frequency   float64
	lacunarity  float64
	persistence float64
}

func newOctaveNoise3D(octaves int, frequency, lacunarity, persistence float64, seed int64) *octaveNoise3D {
	precondition(octaves > 0, "voxel: multifractal noise requires at least 1 octave, got %d", octaves)
	return &octaveNoise3D{
		p:           perlin.NewPerlin(2, 2, int32(octaves), seed),
		octaves:     octaves,
		frequency:   frequency,
		lacunarity:  lacunarity,
		persistence: persistence,
	}
}

func (n *octaveNoise3D) at(x, y, z float64) float64 {
	x *= n.frequency
	y *= n.frequency
	z *= n.frequency

	result := n.p.Noise3D(x, y, z)
	weight := math.Abs(result)

	for octave := 1; octave < n.octaves; octave++ {
		x *= n.lacunarity
		y *= n.lacunarity
		z *= n.lacunarity

		if weight > 1 {
			weight = 1
		}

		signal := n.p.Noise3D(x, y, z) * weight
		result += signal * math.Pow(n.persistence, float64(octave))
		weight *= math.Abs(signal)
	}

	return result
}

// grad4 lists the 32 gradient directions of the 4D improved-Perlin lattice
// (every permutation of (±1, ±1, ±1, 0)), the standard extension of the 12
// edge-midpoint gradients used by the teacher's 3D ImprovedPerlinNoise
// (internal/renderer/improved_perlin.go) to four dimensions.
var grad4 = [32][4]float64{
	{0, 1, 1, 1}, {0, 1, 1, -1}, {0, 1, -1, 1}, {0, 1, -1, -1},
	{0, -1, 1, 1}, {0, -1, 1, -1}, {0, -1, -1, 1}, {0, -1, -1, -1},
	{1, 0, 1, 1}, {1, 0, 1, -1}, {1, 0, -1, 1}, {1, 0, -1, -1},
	{-1, 0, 1, 1}, {-1, 0, 1, -1}, {-1, 0, -1, 1}, {-1, 0, -1, -1},
	{1, 1, 0, 1}, {1, 1, 0, -1}, {1, -1, 0, 1}, {1, -1, 0, -1},
	{-1, 1, 0, 1}, {-1, 1, 0, -1}, {-1, -1, 0, 1}, {-1, -1, 0, -1},
	{1, 1, 1, 0}, {1, 1, -1, 0}, {1, -1, 1, 0}, {1, -1, -1, 0},
	{-1, 1, 1, 0}, {-1, 1, -1, 0}, {-1, -1, 1, 0}, {-1, -1, -1, 0},
}

// quadNoise4D is a 4D improved-Perlin noise field, extended from the
// teacher's 3D ImprovedPerlinNoise since go-perlin exposes only
// Noise1D/Noise2D/Noise3D and the voxel-type selection field needs a
// fourth, per-candidate-type axis.
type quadNoise4D struct {
	perm [512]int
}

func newQuadNoise4D(seed int64) *quadNoise4D {
	n := &quadNoise4D{}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < 256; i++ {
		n.perm[i] = i
	}
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		n.perm[i], n.perm[j] = n.perm[j], n.perm[i]
	}
	for i := 0; i < 256; i++ {
		n.perm[256+i] = n.perm[i]
	}
	return n
}

func quadFade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func quadLerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func quadGrad(hash int, x, y, z, w float64) float64 {
	g := grad4[hash%32]
	return g[0]*x + g[1]*y + g[2]*z + g[3]*w
}

// at returns the 4D improved-Perlin noise value at (x, y, z, w).
func (n *quadNoise4D) at(x, y, z, w float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255
	wi := int(math.Floor(w)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)
	w -= math.Floor(w)

	u := quadFade(x)
	v := quadFade(y)
	t := quadFade(z)
	s := quadFade(w)

	var corner [16]int
	for idx := 0; idx < 16; idx++ {
		i := (idx >> 3) & 1
		j := (idx >> 2) & 1
		k := (idx >> 1) & 1
		l := idx & 1
		corner[idx] = n.perm[n.perm[n.perm[n.perm[xi+i]+yi+j]+zi+k]+wi+l]
	}

	sample := func(idx int) float64 {
		i := (idx >> 3) & 1
		j := (idx >> 2) & 1
		k := (idx >> 1) & 1
		l := idx & 1
		return quadGrad(corner[idx], x-float64(i), y-float64(j), z-float64(k), w-float64(l))
	}

	// Interpolate the 16 hypercube corners down to 1 value, innermost axis
	// first (w, then z, then y, then x), mirroring the nested lerp
	// structure of the teacher's 3D Noise3D.
	var c [8]float64
	for idx := 0; idx < 8; idx++ {
		c[idx] = quadLerp(s, sample(idx*2), sample(idx*2+1))
	}
	var d [4]float64
	for idx := 0; idx < 4; idx++ {
		d[idx] = quadLerp(t, c[idx*2], c[idx*2+1])
	}
	var e [2]float64
	for idx := 0; idx < 2; idx++ {
		e[idx] = quadLerp(v, d[idx*2], d[idx*2+1])
	}
	return quadLerp(u, e[0], e[1])
}
