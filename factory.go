package ppapi

// CompletionCallbackFactory creates CompletionCallback objects bound to
// methods of a single target object. It exists so that outstanding
// callbacks can outlive the object they target: each callback resolves the
// object through a shared back pointer at run time, and closing the factory
// (or calling CancelAll) severs that back pointer, turning not-yet-run
// callbacks into no-ops.
//
// The factory is typically embedded in the target object with a matching
// lifetime:
//
//	type downloader struct {
//		factory *ppapi.CompletionCallbackFactory[downloader]
//	}
//
//	func newDownloader() *downloader {
//		d := &downloader{}
//		d.factory = ppapi.NewCompletionCallbackFactory(d)
//		return d
//	}
//
// The factory, its callbacks, and the target object must all be used from
// one goroutine; no locking is provided or required.
type CompletionCallbackFactory[T any] struct {
	object *T
	back   *backPointer[T]
	closed bool
}

// NewCompletionCallbackFactory creates a factory bound to object.
// A nil object is a programming error and panics.
func NewCompletionCallbackFactory[T any](object *T) *CompletionCallbackFactory[T] {
	if object == nil {
		panic("ppapi: completion callback factory requires a non-nil object")
	}
	f := &CompletionCallbackFactory[T]{object: object}
	f.initBackPointer()
	return f
}

// NewCallback allocates a new single-use CompletionCallback bound to
// method. The callback holds a reference to the factory's current back
// pointer, not to the object itself; the object is resolved when the
// callback runs.
//
// The caller owns the returned callback and must arrange for it to run
// exactly once: either by the host through its ToC projection, or manually
// via Run when the host completes synchronously.
func (f *CompletionCallbackFactory[T]) NewCallback(method func(*T, int32)) *CompletionCallback {
	if f.closed {
		panic("ppapi: NewCallback on closed factory")
	}
	bp := f.back
	bp.addRef()
	return &CompletionCallback{
		dispatch: func(result int32) {
			if obj := bp.object(); obj != nil {
				method(obj, result)
			}
			bp.release()
		},
	}
}

// CancelAll cancels every callback previously created by this factory.
// Canceled callbacks still consume themselves normally when run, but their
// bound method is not invoked. Callbacks created after CancelAll are
// unaffected.
func (f *CompletionCallbackFactory[T]) CancelAll() {
	if f.closed {
		return
	}
	f.resetBackPointer()
	f.initBackPointer()
}

// Object returns the bound target object.
func (f *CompletionCallbackFactory[T]) Object() *T {
	return f.object
}

// Close severs the factory from its outstanding callbacks. After Close,
// running a previously created callback is a no-op. Close is idempotent.
func (f *CompletionCallbackFactory[T]) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.resetBackPointer()
	f.back = nil
}

func (f *CompletionCallbackFactory[T]) initBackPointer() {
	f.back = &backPointer[T]{factory: f}
	f.back.addRef()
}

func (f *CompletionCallbackFactory[T]) resetBackPointer() {
	f.back.sever()
	f.back.release()
}

// backPointer is a reference-counted cell shared between a factory and the
// callbacks it has issued. It is the single point of truth for "is my owner
// still alive": severing it makes every subsequent resolution report no
// object, without touching the callbacks that hold it.
//
// Reference counting here is not about memory (the GC handles that); it
// tracks the cancellation protocol so that misuse is detectable. The cell
// dies exactly when the factory and every outstanding callback have
// released it.
type backPointer[T any] struct {
	ref     int32
	dead    bool
	factory *CompletionCallbackFactory[T]
}

func (bp *backPointer[T]) addRef() {
	if bp.dead {
		panic("ppapi: addRef on dead back pointer")
	}
	bp.ref++
}

func (bp *backPointer[T]) release() {
	if bp.dead {
		panic("ppapi: release of dead back pointer")
	}
	bp.ref--
	if bp.ref == 0 {
		bp.dead = true
		bp.factory = nil
	}
}

// sever permanently detaches the cell from its factory. Idempotent; a
// severed cell can never be reattached.
func (bp *backPointer[T]) sever() {
	bp.factory = nil
}

// object resolves the live target, or nil once the cell is severed.
func (bp *backPointer[T]) object() *T {
	if bp.factory == nil {
		return nil
	}
	return bp.factory.object
}
