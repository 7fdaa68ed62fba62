//go:build !ios && !android && (amd64 || arm64)

package ppapi

import (
	"testing"

	"github.com/melchi45/ppapi/internal/handles"
)

func TestToCNilIsBlockingSentinel(t *testing.T) {
	rec := ToC(nil)
	if !rec.IsBlocking() {
		t.Error("nil callback should project to the blocking sentinel")
	}
	if rec.Func != 0 || rec.UserData != nil {
		t.Errorf("blocking sentinel should be zero-valued: %+v", rec)
	}
}

func TestToCProjection(t *testing.T) {
	r := &recorder{}
	f := NewCompletionCallbackFactory(r)
	defer f.Close()

	base := handles.Count()

	cc := f.NewCallback((*recorder).onDone)
	rec := ToC(cc)

	if rec.IsBlocking() {
		t.Fatal("projected record must not be the blocking sentinel")
	}
	if rec.Func == 0 {
		t.Fatal("projected record needs a thunk pointer")
	}
	if handles.Count() != base+1 {
		t.Fatalf("projection should park one handle, count %d want %d", handles.Count(), base+1)
	}

	// Host fires the thunk.
	dispatchPending(uintptr(rec.UserData), 5)

	if len(r.results) != 1 || r.results[0] != 5 {
		t.Fatalf("expected onDone(5), got %v", r.results)
	}
	if handles.Count() != base {
		t.Errorf("dispatch should retire the handle, count %d want %d", handles.Count(), base)
	}

	// A contract-violating second host invocation resolves to nothing.
	dispatchPending(uintptr(rec.UserData), 9)
	if len(r.results) != 1 {
		t.Errorf("stale handle must not dispatch again, got %v", r.results)
	}
}

func TestManualRunRetiresProjectedHandle(t *testing.T) {
	r := &recorder{}
	f := NewCompletionCallbackFactory(r)
	defer f.Close()

	base := handles.Count()

	cc := f.NewCallback((*recorder).onDone)
	rec := ToC(cc)

	// Host completed synchronously and never stored the record; the owner
	// runs the callback manually.
	cc.Run(3)

	if len(r.results) != 1 || r.results[0] != 3 {
		t.Fatalf("expected onDone(3), got %v", r.results)
	}
	if handles.Count() != base {
		t.Errorf("manual Run should retire the parked handle, count %d want %d", handles.Count(), base)
	}

	// A late host invocation of the same record is a no-op.
	dispatchPending(uintptr(rec.UserData), 9)
	if len(r.results) != 1 {
		t.Errorf("retired handle must not dispatch, got %v", r.results)
	}
}

func TestProjectedCallbackOfClosedFactory(t *testing.T) {
	r := &recorder{}
	f := NewCompletionCallbackFactory(r)

	cc := f.NewCallback((*recorder).onDone)
	rec := ToC(cc)

	f.Close()

	// The host fires after the owner is gone; the action is skipped but the
	// handle is still retired.
	base := handles.Count()
	dispatchPending(uintptr(rec.UserData), OK)
	if len(r.results) != 0 {
		t.Errorf("severed callback must not invoke, got %v", r.results)
	}
	if handles.Count() != base-1 {
		t.Errorf("dispatch should retire the handle, count %d want %d", handles.Count(), base-1)
	}
}

func TestCompletionThunkIsShared(t *testing.T) {
	p1 := completionThunk()
	p2 := completionThunk()
	if p1 == 0 {
		t.Fatal("thunk pointer must be non-zero")
	}
	if p1 != p2 {
		t.Error("the trampoline must be registered once and reused")
	}
}
