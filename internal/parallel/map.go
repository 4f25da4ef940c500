// Package parallel implements the bounded fan-out/fan-in loop used to
// dispatch independent work items.
package parallel

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

type outcome[R any] struct {
	value R
	err   error
}

// Map fans work items out over at most limit concurrent workers and hands
// the outcomes back as an iterator, in completion order. Work items are
// fully independent, no completion order between them is guaranteed. A
// canceled context stops the processing.
//
//	for res, err := range parallel.NewMap(ctx, limit, work).Iter(items) {}
type Map[W, R any] struct {
	parentCtx    context.Context
	cancelParent context.CancelFunc
	g            *errgroup.Group
	gctx         context.Context
	done         chan outcome[R]
	work         func(context.Context, W) (R, error)
}

func NewMap[W, R any](parentCtx context.Context, limit int, work func(context.Context, W) (R, error)) *Map[W, R] {
	parentCtx, cancelParent := context.WithCancel(parentCtx)
	g, gctx := errgroup.WithContext(parentCtx)
	// one extra slot for the goroutine feeding the workers
	g.SetLimit(limit + 1)

	return &Map[W, R]{
		parentCtx:    parentCtx,
		cancelParent: cancelParent,
		g:            g,
		gctx:         gctx,
		done:         make(chan outcome[R], limit),
		work:         work,
	}
}

func (m *Map[W, R]) goWorkers(seq iter.Seq2[W, error]) {
	m.g.Go(func() error {
		for item, ierr := range seq {
			if ierr != nil {
				continue
			}
			m.g.Go(func() error {
				value, err := m.work(m.gctx, item)
				select {
				case <-m.gctx.Done():
					return m.gctx.Err()
				default:
					m.done <- outcome[R]{value: value, err: err}
				}
				return nil
			})
		}
		return nil
	})
}

// Iter consumes seq and yields one outcome per work item. The returned
// iterator must be drained by a single consumer, which is what keeps
// result aggregation free of any extra locking.
func (m *Map[W, R]) Iter(seq iter.Seq2[W, error]) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		defer m.cancelParent()
		m.goWorkers(seq)

		go func() {
			_ = m.g.Wait()
			close(m.done)
		}()

		for out := range m.done {
			if m.parentCtx.Err() != nil {
				return
			}
			if !yield(out.value, out.err) {
				return
			}
		}
	}
}
