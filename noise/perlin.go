package noise

import "math"

// grad2 holds the eight 2D gradient directions for classic Perlin noise.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Perlin generates classic gradient-grid noise (improved 2002 variant).
// The permutation table is shuffled with a splitmix64 stream keyed on the
// seed, never a process-wide random source, so tables are identical across
// runs and platforms.
type Perlin struct {
	perm [512]int
}

// NewPerlin creates a Perlin noise generator for the given seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Fisher-Yates driven by splitmix64.
	state := uint64(seed)
	for i := len(perm) - 1; i > 0; i-- {
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		z ^= z >> 31
		j := int(z % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate so corner hashing never needs a wrap.
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Sample returns 2D Perlin noise at (x, y) in [-1, 1].
func (p *Perlin) Sample(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := p.perm[p.perm[xi]+yi]
	ab := p.perm[p.perm[xi]+yi+1]
	ba := p.perm[p.perm[xi+1]+yi]
	bb := p.perm[p.perm[xi+1]+yi+1]

	x1 := lerp(u, grad(aa, xf, yf), grad(ba, xf-1, yf))
	x2 := lerp(u, grad(ab, xf, yf-1), grad(bb, xf-1, yf-1))

	return lerp(v, x1, x2)
}

// Sample3 returns 3D Perlin noise at (x, y, z) in [-1, 1]. The third
// coordinate is typically a time phase, used for evolving turbulence.
func (p *Perlin) Sample3(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := p.perm[xi] + yi
	aa := p.perm[a] + zi
	ab := p.perm[a+1] + zi
	b := p.perm[xi+1] + yi
	ba := p.perm[b] + zi
	bb := p.perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad3(p.perm[aa], x, y, z), grad3(p.perm[ba], x-1, y, z)),
			lerp(u, grad3(p.perm[ab], x, y-1, z), grad3(p.perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad3(p.perm[aa+1], x, y, z-1), grad3(p.perm[ba+1], x-1, y, z-1)),
			lerp(u, grad3(p.perm[ab+1], x, y-1, z-1), grad3(p.perm[bb+1], x-1, y-1, z-1))))
}

// grad computes the dot product of a hashed 2D gradient with (x, y).
func grad(hash int, x, y float64) float64 {
	g := grad2[hash&7]
	return g[0]*x + g[1]*y
}

// grad3 computes the dot product of a hashed 3D gradient with (x, y, z).
func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
