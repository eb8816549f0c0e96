package platform

import (
	"sync"

	quillerrors "github.com/go-quill/quill/pkg/errors"
)

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the UI thread. The host engine calls this once during initialization; tests
// register either a synchronous function or a manual TaskQueue.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the next turn of the UI thread's
// event loop. Returns true if the callback was scheduled, false if no dispatch
// function is registered or the callback is nil.
//
// Delegate events that mutate shared state while the native toolkit is still
// inside its own event-delivery stack frame must go through Dispatch rather
// than run inline.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		if callback != nil {
			quillerrors.Report(&quillerrors.Error{
				Op:   "platform.Dispatch",
				Kind: quillerrors.KindDispatch,
				Err:  ErrHostUnavailable,
			})
		}
		return false
	}
	fn(callback)
	return true
}

// TaskQueue is a manual zero-delay task queue. Installing it as the dispatch
// function lets tests and the simulator control exactly when deferred delegate
// work runs.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// Enqueue appends a task. Suitable for RegisterDispatch(q.Enqueue).
func (q *TaskQueue) Enqueue(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of pending tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs all pending tasks, including any scheduled while flushing.
func (q *TaskQueue) Flush() {
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		task()
	}
}
