package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/facet/pkg/scene"
)

// EvalTimeout bounds a single evaluation when the caller's context has no
// earlier deadline.
const EvalTimeout = 5 * time.Second

var (
	// ErrSuperseded is returned to a caller whose evaluation finished after
	// a newer one had started.
	ErrSuperseded = errors.New("engine: evaluation superseded by newer request")
	// ErrTimeout is returned when an evaluation outlives its deadline.
	ErrTimeout = errors.New("engine: evaluation timed out")
)

// evalResult passes an evaluation's outcome back from its goroutine.
type evalResult struct {
	specs  []scene.Spec
	errors []EvalError
	err    error
}

// generations numbers evaluations so only the latest result is delivered.
type generations struct {
	mu      sync.Mutex
	current uint64
}

func (g *generations) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

func (g *generations) isCurrent(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.current
}

// await blocks until ch delivers or ctx ends. The evaluating goroutine may
// outlive a timeout; its late result lands in the buffered channel and is
// dropped.
func await(ctx context.Context, ch <-chan evalResult, gen uint64, g *generations) ([]scene.Spec, []EvalError, error) {
	select {
	case res := <-ch:
		if !g.isCurrent(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.specs, res.errors, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, nil, fmt.Errorf("engine: %w", ctx.Err())
	}
}
