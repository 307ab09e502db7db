// Package cpu implements the CPU execution kernels of the training framework:
// elementwise ops, reductions, activations, losses, batch normalization,
// matrix multiply, gradient descent, random initialization and evaluation.
//
// Kernels are stateless methods on Backend[T]. They never allocate or resize
// their arguments: every output is pre-allocated by the caller and checked
// against the inputs before anything is written. Work is fanned out over the
// index space with internal/parallel.
package cpu

import (
	"log/slog"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// Config configures a Backend.
type Config struct {
	Parallel parallel.Config // Worker fan-out for data-parallel loops.
	Logger   *slog.Logger    // Debug logging; nil means slog.Default().
}

// DefaultConfig returns a config using every available CPU.
func DefaultConfig() Config {
	return Config{
		Parallel: parallel.DefaultConfig(),
	}
}

// Backend runs kernels over element type T.
// A Backend holds no mutable state and is safe for concurrent use.
type Backend[T tensor.Float] struct {
	cfg    parallel.Config
	logger *slog.Logger
}

// New creates a CPU backend with DefaultConfig.
func New[T tensor.Float]() *Backend[T] {
	return NewWithConfig[T](DefaultConfig())
}

// NewWithConfig creates a CPU backend with the given config.
func NewWithConfig[T tensor.Float](cfg Config) *Backend[T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Parallel.NumWorkers <= 0 {
		cfg.Parallel.NumWorkers = 1
	}

	b := &Backend[T]{
		cfg:    cfg.Parallel,
		logger: logger.With(slog.String("backend", "cpu"), slog.String("dtype", tensor.DataTypeOf[T]().String())),
	}
	b.logger.Debug("backend created",
		slog.Bool("parallel", cfg.Parallel.Enabled),
		slog.Int("workers", cfg.Parallel.NumWorkers),
		slog.Int("min_chunk", cfg.Parallel.MinChunkSize))
	return b
}

// Name returns the backend name.
func (b *Backend[T]) Name() string {
	return "CPU"
}

// DType returns the element type the backend operates on.
func (b *Backend[T]) DType() tensor.DataType {
	return tensor.DataTypeOf[T]()
}

// Parallel returns the fan-out configuration.
func (b *Backend[T]) Parallel() parallel.Config {
	return b.cfg
}
