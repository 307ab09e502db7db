// Package rng provides a caller-owned, concurrency-safe random generator for
// weight initialization and dropout masks.
//
// A Generator never hands out shared mutable state. Each fill request takes
// a fresh call index, splits the destination into fixed-size chunks, and
// draws chunk c from its own PCG stream derived from (seed, call, c). Fills
// are therefore reproducible for a given seed and call sequence, independent
// of how many workers process the chunks.
package rng

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// ChunkSize is the number of elements drawn from one stream.
const ChunkSize = 4096

// Generator is a seeded source of independent random streams.
// It is safe for concurrent use.
type Generator struct {
	seed  uint64
	calls atomic.Uint64
}

// New creates a generator with a fixed seed.
func New(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// NewFromTime creates a generator seeded from the wall clock.
func NewFromTime() *Generator {
	return New(uint64(time.Now().UnixNano()))
}

// Seed returns the generator's seed.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Calls returns how many fills the generator has served.
func (g *Generator) Calls() uint64 {
	return g.calls.Load()
}

// stream returns the source for chunk of call.
func (g *Generator) stream(call, chunk uint64) rand.Source {
	return rand.NewPCG(splitmix64(g.seed^splitmix64(call)), splitmix64(chunk+1))
}

// splitmix64 is the SplitMix64 finalizer.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// fill runs draw over dst chunk by chunk, one stream per chunk.
func fill[T tensor.Float](g *Generator, dst []T, cfg parallel.Config, draw func(src rand.Source, chunk []T)) {
	if len(dst) == 0 {
		return
	}
	call := g.calls.Add(1) - 1
	numChunks := (len(dst) + ChunkSize - 1) / ChunkSize

	chunkCfg := cfg
	chunkCfg.MinChunkSize = 1
	parallel.For(numChunks, func(c int) {
		start := c * ChunkSize
		end := min(start+ChunkSize, len(dst))
		draw(g.stream(call, uint64(c)), dst[start:end])
	}, chunkCfg)
}

// Uniform fills dst with draws from U[low, high).
func Uniform[T tensor.Float](g *Generator, dst []T, low, high T, cfg parallel.Config) {
	fill(g, dst, cfg, func(src rand.Source, chunk []T) {
		d := distuv.Uniform{Min: float64(low), Max: float64(high), Src: src}
		for i := range chunk {
			chunk[i] = below(T(d.Rand()), low, high)
		}
	})
}

// Normal fills dst with draws from N(loc, scale²).
func Normal[T tensor.Float](g *Generator, dst []T, loc, scale T, cfg parallel.Config) {
	fill(g, dst, cfg, func(src rand.Source, chunk []T) {
		d := distuv.Normal{Mu: float64(loc), Sigma: float64(scale), Src: src}
		for i := range chunk {
			chunk[i] = T(d.Rand())
		}
	})
}

// below keeps x inside [low, high) after narrowing to T.
func below[T tensor.Float](x, low, high T) T {
	if x < high || high <= low {
		return x
	}
	if tensor.DataTypeOf[T]() == tensor.Float32 {
		return T(math.Nextafter32(float32(high), float32(math.Inf(-1))))
	}
	return T(math.Nextafter(float64(high), math.Inf(-1)))
}
