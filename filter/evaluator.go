package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/devmate/devmate"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator splits large listings into batches evaluated in
// parallel. Matches keep the order of the input
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

var _ Evaluator = (*ConcurrentEvaluator)(nil)

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the customers matching filter
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter Filter, customers []devmate.Customer) ([]devmate.Customer, error) {
	if len(customers) == 0 {
		return []devmate.Customer{}, nil
	}

	// For small listings, don't bother with concurrency
	if len(customers) <= e.batchSize {
		return evaluateSequential(filter, customers), nil
	}

	batches := make([][]devmate.Customer, (len(customers)+e.batchSize-1)/e.batchSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range batches {
		i := i
		start := i * e.batchSize
		end := min(start+e.batchSize, len(customers))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batches[i] = evaluateSequential(filter, customers[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]devmate.Customer, 0, len(customers))
	for _, batch := range batches {
		matches = append(matches, batch...)
	}
	return matches, nil
}

func evaluateSequential(filter Filter, customers []devmate.Customer) []devmate.Customer {
	matches := make([]devmate.Customer, 0, len(customers))
	for _, customer := range customers {
		if filter.Evaluate(customer) {
			matches = append(matches, customer)
		}
	}
	return matches
}
