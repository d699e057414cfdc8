package sim

import (
	"context"
	"sync"
)

// Variant is one member of an ensemble: a label plus a setup hook applied
// to a freshly built simulator before the run starts.
type Variant struct {
	Label string
	Setup func(*Simulator) error
}

// Ensemble runs several independent descents concurrently, one per
// variant. Every variant gets its own simulator from the build function,
// so runs never share mutable state.
type Ensemble struct {
	build    func() (*Simulator, error)
	variants []Variant
}

func NewEnsemble(build func() (*Simulator, error), variants []Variant) *Ensemble {
	return &Ensemble{build: build, variants: variants}
}

// Run executes all variants with the same run configuration and returns
// their results in variant order. The first build, setup, or run error
// aborts the whole ensemble.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.variants))
	errs := make([]error, len(e.variants))

	var wg sync.WaitGroup
	for i := range e.variants {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.build()
			if err != nil {
				errs[idx] = err
				return
			}
			if setup := e.variants[idx].Setup; setup != nil {
				if err := setup(s); err != nil {
					errs[idx] = err
					return
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
