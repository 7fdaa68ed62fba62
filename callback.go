package ppapi

import (
	"github.com/melchi45/ppapi/internal/handles"
)

// CompletionCallback is a single-use callback bound to a method on a target
// object. Use CompletionCallbackFactory to create instances.
//
// Normally the host runs a CompletionCallback after an asynchronous
// operation completes, through the record returned by ToC. If the host
// returns a result other than OKCompletionPending, the operation finished
// synchronously and the caller must invoke Run manually to reuse the same
// completion path. Exactly one of the two triggers may fire; the callback
// consumes itself when it runs.
type CompletionCallback struct {
	dispatch func(result int32)
	handle   uintptr
	hasRun   bool
}

// Run executes the callback with the given result code and consumes it.
//
// The bound method is invoked only if the owning factory is still attached;
// if the factory was closed or CancelAll was called after this callback was
// created, Run releases the callback's resources without invoking anything.
// Running a callback twice panics.
func (cc *CompletionCallback) Run(result int32) {
	if cc.hasRun {
		panic("ppapi: completion callback run twice")
	}
	cc.hasRun = true

	// Retire the host-side handle if this callback was projected with ToC
	// and the host never fired it.
	if cc.handle != 0 {
		handles.Unregister(cc.handle)
		cc.handle = 0
	}

	cc.dispatch(result)
}

// HasRun returns true once the callback has been consumed by Run.
func (cc *CompletionCallback) HasRun() bool {
	return cc.hasRun
}
