package recognition

import (
	"math"
	"math/bits"
)

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// Generator is a 32-bit Mersenne Twister (MT19937). It is not safe for concurrent use.
type Generator struct {
	mt  [mtN]uint32
	mti int
}

// NewGenerator returns a generator seeded with seed. The seed's absolute value is split into
// little-endian 32-bit words and fed through the array initializer, so every integer seed maps to
// exactly one stream.
func NewGenerator(seed int64) *Generator {
	g := &Generator{}
	g.initByArray(seedKey(seed))
	return g
}

func seedKey(seed int64) []uint32 {
	var n uint64
	if seed < 0 {
		n = uint64(-(seed + 1)) + 1
	} else {
		n = uint64(seed)
	}
	key := []uint32{uint32(n)}
	if hi := uint32(n >> 32); hi != 0 {
		key = append(key, hi)
	}
	return key
}

func (g *Generator) initGenrand(s uint32) {
	g.mt[0] = s
	for i := 1; i < mtN; i++ {
		g.mt[i] = 1812433253*(g.mt[i-1]^(g.mt[i-1]>>30)) + uint32(i)
	}
	g.mti = mtN
}

func (g *Generator) initByArray(key []uint32) {
	g.initGenrand(19650218)
	i, j := 1, 0
	k := len(key)
	if mtN > k {
		k = mtN
	}
	for ; k > 0; k-- {
		g.mt[i] = (g.mt[i] ^ ((g.mt[i-1] ^ (g.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			g.mt[0] = g.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		g.mt[i] = (g.mt[i] ^ ((g.mt[i-1] ^ (g.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			g.mt[0] = g.mt[mtN-1]
			i = 1
		}
	}
	g.mt[0] = 0x80000000
}

func (g *Generator) twist() {
	mag01 := [2]uint32{0, mtMatrixA}
	var kk int
	for kk = 0; kk < mtN-mtM; kk++ {
		y := (g.mt[kk] & mtUpperMask) | (g.mt[kk+1] & mtLowerMask)
		g.mt[kk] = g.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
	}
	for ; kk < mtN-1; kk++ {
		y := (g.mt[kk] & mtUpperMask) | (g.mt[kk+1] & mtLowerMask)
		g.mt[kk] = g.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
	}
	y := (g.mt[mtN-1] & mtUpperMask) | (g.mt[0] & mtLowerMask)
	g.mt[mtN-1] = g.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
	g.mti = 0
}

// Uint32 returns the next 32-bit output.
func (g *Generator) Uint32() uint32 {
	if g.mti >= mtN {
		g.twist()
	}
	y := g.mt[g.mti]
	g.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Bits returns a value made of the top k bits of the next output. k must be in [1,32].
func (g *Generator) Bits(k int) uint32 {
	return g.Uint32() >> (32 - k)
}

// Below returns a uniform integer in [0,n) by rejection on the bit length of n.
// n must be in [1, 1<<32).
func (g *Generator) Below(n int) int {
	if n <= 0 {
		panic("recognition: Below called with non-positive n")
	}
	k := bits.Len64(uint64(n))
	r := int(g.Bits(k))
	for r >= n {
		r = int(g.Bits(k))
	}
	return r
}

// IntRange returns a uniform integer in the closed range [lo,hi].
func (g *Generator) IntRange(lo, hi int) int {
	if hi < lo {
		panic("recognition: IntRange called with empty range")
	}
	return lo + g.Below(hi-lo+1)
}

// Sample draws k distinct elements of population without replacement, in selection order.
// Small populations use a partial Fisher-Yates shuffle over a copy; large populations
// relative to k use rejection against the set of already chosen indices.
func Sample[T any](g *Generator, population []T, k int) []T {
	n := len(population)
	if k < 0 || k > n {
		panic("recognition: sample larger than population or negative")
	}
	result := make([]T, k)

	setSize := 21
	if k > 5 {
		setSize += int(math.Pow(4, math.Ceil(math.Log(float64(k*3))/math.Log(4))))
	}

	if n <= setSize {
		pool := make([]T, n)
		copy(pool, population)
		for i := 0; i < k; i++ {
			j := g.Below(n - i)
			result[i] = pool[j]
			pool[j] = pool[n-i-1]
		}
		return result
	}

	selected := make(map[int]struct{}, k)
	for i := 0; i < k; i++ {
		j := g.Below(n)
		for {
			if _, taken := selected[j]; !taken {
				break
			}
			j = g.Below(n)
		}
		selected[j] = struct{}{}
		result[i] = population[j]
	}
	return result
}
