// Package msgloop provides a single-goroutine message loop for running
// completion callbacks. It is the apartment the rest of the package
// assumes: callbacks posted from any goroutine are dispatched in FIFO
// order on the one goroutine that called Run.
package msgloop

import (
	"errors"
	"sync"

	"github.com/eapache/queue"

	"github.com/melchi45/ppapi"
)

// ErrQuit is returned by PostWork once the loop has quit.
var ErrQuit = errors.New("msgloop: message loop has quit")

type task struct {
	cc     *ppapi.CompletionCallback
	result int32
	quit   bool
}

// MessageLoop dispatches completion callbacks in FIFO order.
//
// Posting is safe from any goroutine; dispatch happens only on the
// goroutine running Run. The zero value is not usable, call New.
type MessageLoop struct {
	mu   sync.Mutex
	work *queue.Queue
	quit bool
	wake chan struct{}
}

// New creates an idle message loop. Callbacks can be posted immediately;
// they are dispatched once Run is called.
func New() *MessageLoop {
	return &MessageLoop{
		work: queue.New(),
		wake: make(chan struct{}, 1),
	}
}

// PostWork schedules cc to run with ppapi.OK on the loop's goroutine.
//
// After PostQuit, PostWork refuses new work and returns ErrQuit; the
// caller still owns cc and should run it with ppapi.ErrorAborted (or leak
// it) on its own goroutine.
func (l *MessageLoop) PostWork(cc *ppapi.CompletionCallback) error {
	return l.PostWorkWithResult(cc, ppapi.OK)
}

// PostWorkWithResult schedules cc to run with an explicit result code.
func (l *MessageLoop) PostWorkWithResult(cc *ppapi.CompletionCallback, result int32) error {
	l.mu.Lock()
	if l.quit {
		l.mu.Unlock()
		ppapi.Logf(ppapi.LogLevelWarning, "msgloop: work posted after quit")
		return ErrQuit
	}
	l.work.Add(task{cc: cc, result: result})
	l.mu.Unlock()
	l.signal()
	return nil
}

// PostQuit asks the loop to exit. Work already queued runs first; work
// posted afterwards is refused. Idempotent.
func (l *MessageLoop) PostQuit() {
	l.mu.Lock()
	if l.quit {
		l.mu.Unlock()
		return
	}
	l.quit = true
	l.work.Add(task{quit: true})
	l.mu.Unlock()
	l.signal()
}

// Run dispatches queued callbacks on the calling goroutine until PostQuit
// is processed. Each callback runs exactly once with its posted result.
func (l *MessageLoop) Run() {
	for {
		t, ok := l.next()
		if !ok {
			return
		}
		t.cc.Run(t.result)
	}
}

// next blocks until a task is available. ok is false once the quit marker
// is reached.
func (l *MessageLoop) next() (task, bool) {
	for {
		l.mu.Lock()
		if l.work.Length() > 0 {
			t := l.work.Remove().(task)
			l.mu.Unlock()
			if t.quit {
				return task{}, false
			}
			return t, true
		}
		done := l.quit
		l.mu.Unlock()
		if done {
			// Quit marker already consumed on a previous Run.
			return task{}, false
		}
		<-l.wake
	}
}

func (l *MessageLoop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
