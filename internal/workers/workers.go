package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers side by side.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws; nil entries are skipped.
func NewWorkers(ws ...Worker) *Workers {
	group := &Workers{}
	for _, w := range ws {
		if w != nil {
			group.workers = append(group.workers, w)
		}
	}
	return group
}

// Len reports how many workers the group runs.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker in its own goroutine and returns once all of them
// have returned after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
