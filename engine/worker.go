package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/rigsim/core"
)

var ErrWorkerPanic = errors.New("worker task panicked")

type result struct {
	cont bool
	err  error
}

type task func() (bool, error)

// worker is the single background slot running the logic step
// At most one task is outstanding; dispatch and join alternate strictly
type worker struct {
	tasks   chan task
	results chan result
	pending bool
	stopped bool
}

func newWorker() *worker {
	w := &worker{
		tasks:   make(chan task),
		results: make(chan result, 1),
	}
	core.Go(w.loop)
	return w
}

func (w *worker) loop() {
	for t := range w.tasks {
		w.results <- w.run(t)
	}
}

func (w *worker) run(t task) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res = result{err: fmt.Errorf("%w: %v", ErrWorkerPanic, r)}
		}
	}()
	cont, err := t()
	return result{cont: cont, err: err}
}

// dispatch hands t to the worker goroutine, panics if a task is outstanding
func (w *worker) dispatch(t task) {
	if w.pending {
		panic("engine: dispatch with outstanding task")
	}
	w.pending = true
	w.tasks <- t
}

// join blocks until the outstanding task returns
func (w *worker) join() result {
	if !w.pending {
		return result{cont: true}
	}
	res := <-w.results
	w.pending = false
	return res
}

// stopIfStarted ends the worker goroutine after joining any outstanding task
// Safe on a nil worker
func (w *worker) stopIfStarted() {
	if w == nil || w.stopped {
		return
	}
	w.join()
	w.stopped = true
	close(w.tasks)
}
