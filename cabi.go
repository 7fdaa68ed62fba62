//go:build !ios && !android && (amd64 || arm64)

package ppapi

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/melchi45/ppapi/internal/handles"
)

// CCompletionCallback is the two-field record that crosses the host's C
// ABI: a function pointer and an opaque user_data recovered by the thunk.
// It is the only artifact this package hands to the host; the host's sole
// obligation is to invoke Func(UserData, result) at most once, ever.
type CCompletionCallback struct {
	Func     uintptr
	UserData unsafe.Pointer
}

// IsBlocking reports whether the record is the BlockUntilComplete
// sentinel, which asks the host to complete the operation synchronously
// instead of invoking a callback.
func (c CCompletionCallback) IsBlocking() bool {
	return c.Func == 0
}

// BlockUntilComplete returns the sentinel record meaning "do not call me
// back; block until the operation completes".
func BlockUntilComplete() CCompletionCallback {
	return CCompletionCallback{}
}

// One trampoline is registered per process and shared by every projected
// callback, to stay within purego's callback limit. Dispatch to the right
// CompletionCallback goes through the user_data handle.
var (
	thunkOnce sync.Once
	thunkPtr  uintptr
)

func completionThunk() uintptr {
	thunkOnce.Do(func() {
		thunkPtr = purego.NewCallback(func(_ purego.CDecl, userData unsafe.Pointer, result int32) {
			dispatchPending(uintptr(userData), result)
		})
	})
	return thunkPtr
}

// dispatchPending recovers a projected callback by its handle and runs it.
// Take removes the registry entry, so a handle that was already dispatched
// by the host, or retired by a manual Run, resolves to nothing.
func dispatchPending(id uintptr, result int32) {
	p := handles.Take(id)
	if p == nil {
		return
	}
	if cc, ok := p.(*CompletionCallback); ok {
		// The handle is already out of the registry; Run must not retire
		// it a second time.
		cc.handle = 0
	}
	p.Run(result)
}

// ToC projects cc into the generic record consumed by the host. A nil cc
// yields the BlockUntilComplete sentinel.
//
// The projected record and a manual Run are mutually exclusive triggers
// for the same callback: whichever fires first consumes it, and the other
// becomes a no-op at the registry.
func ToC(cc *CompletionCallback) CCompletionCallback {
	if cc == nil {
		return BlockUntilComplete()
	}
	cc.handle = handles.Register(cc)
	return CCompletionCallback{
		Func:     completionThunk(),
		UserData: *(*unsafe.Pointer)(unsafe.Pointer(&cc.handle)),
	}
}
