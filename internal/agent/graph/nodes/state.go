package nodes

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/compose"

	"github.com/chative-support-desk/server/internal/agent/model"
)

// NewVisitPreHandler records node in AppState.Visited before it runs.
func NewVisitPreHandler[I any](node string) func(context.Context, I, *model.AppState) (I, error) {
	return func(ctx context.Context, in I, s *model.AppState) (I, error) {
		s.Visited = append(s.Visited, node)
		return in, nil
	}
}

// recordUsage accounts one classifier round trip in the graph state.
func recordUsage(ctx context.Context, usage model.Usage) {
	_ = compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
		s.ClassifierCalls++
		s.TotalCostUSD += usage.CostUSD()
		return nil
	})
}

type failureKey struct{}

// Failure carries the error that aborted a run out of the graph untouched.
type Failure struct {
	mu  sync.Mutex
	err error
}

// WithFailure attaches a Failure slot to ctx.
func WithFailure(ctx context.Context) (context.Context, *Failure) {
	f := &Failure{}
	return context.WithValue(ctx, failureKey{}, f), f
}

func (f *Failure) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// fail remembers the first error of the run and returns it.
func fail(ctx context.Context, err error) error {
	if f, ok := ctx.Value(failureKey{}).(*Failure); ok {
		f.mu.Lock()
		if f.err == nil {
			f.err = err
		}
		f.mu.Unlock()
	}
	return err
}
