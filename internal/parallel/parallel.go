// Package parallel provides the data-parallel fan-out used by the CPU kernels.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on GOMAXPROCS and the
// vector width of the host CPU.
func DefaultConfig() Config {
	n := runtime.GOMAXPROCS(0)
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: minChunkForCPU(),
	}
}

// Sequential returns a config that runs every loop on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// minChunkForCPU scales the chunk floor with the host SIMD width.
func minChunkForCPU() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 256
	case cpu.X86.HasAVX2:
		return 128
	default:
		return 64 // Typical cache line aware chunk.
	}
}

// chunkSize returns the range length used to split [0, n), or false when the
// loop should run sequentially.
func (cfg Config) chunkSize(n int) (int, bool) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize || n <= 1 {
		return n, false
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1), true
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// ForRange executes f over contiguous sub-ranges [start, end) covering [0, n).
// Every index is visited by exactly one call. Blocks until all ranges finish.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}
	chunkSize, ok := cfg.chunkSize(n)
	if !ok {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ForBatch optimized for batch*features iteration pattern.
func ForBatch(batch, features int, f func(b, j int), cfg Config) {
	n := batch * features
	For(n, func(k int) {
		f(k/features, k%features)
	}, cfg)
}

// Number is the set of types Reduce can accumulate.
type Number interface {
	~float32 | ~float64 | ~int | ~int64
}

// Reduce sums partial(start, end) over a partition of [0, n).
//
// Each worker accumulates a private partial over its range and then merges
// it into the shared total under a single lock acquisition, so
// synchronization is O(workers) rather than O(n). The combine order is not
// fixed; floating-point results may differ in the last bits between runs.
func Reduce[T Number](n int, partial func(start, end int) T, cfg Config) T {
	var total T
	if n <= 0 {
		return total
	}
	chunkSize, ok := cfg.chunkSize(n)
	if !ok {
		return partial(0, n)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			p := partial(s, e)
			mu.Lock()
			total += p
			mu.Unlock()
		}(start, end)
	}
	wg.Wait()
	return total
}
