// Package ppapi provides typed, cancelable completion callbacks for
// asynchronous host APIs that speak a plain-C callback ABI: a function
// pointer plus an opaque user_data pointer, invoked at most once with an
// int32 result code.
//
// A CompletionCallbackFactory binds callbacks to methods of one target
// object. Callbacks resolve the object only when they run, through a
// shared back pointer, so the object and its factory can be torn down (or
// cancel in-flight work) while callbacks are still outstanding: a stale
// callback simply runs as a no-op.
//
// The usual shape is a factory owned by the object issuing asynchronous
// requests:
//
//	type fileReader struct {
//		factory *ppapi.CompletionCallbackFactory[fileReader]
//		offset  int64
//	}
//
//	func (r *fileReader) readMore() {
//		cc := r.factory.NewCallback((*fileReader).didRead)
//		rv := host.Read(r.offset, ppapi.ToC(cc))
//		if !ppapi.IsPending(rv) {
//			// Completed synchronously; reuse the same completion path.
//			cc.Run(rv)
//		}
//	}
//
//	func (r *fileReader) didRead(result int32) {
//		if result > 0 {
//			r.offset += int64(result)
//			r.readMore()
//		}
//	}
//
// Each callback must run exactly once, by whichever of the two triggers
// fires: the host through the ToC projection, or a manual Run. The msgloop
// package provides a single-goroutine message loop for hosts and tests
// that need an apartment to run completions on.
package ppapi
