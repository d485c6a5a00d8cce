package holonrpc

import "testing"

func TestPendingTableCompleteDeliversResult(t *testing.T) {
	pt := newPendingTable()
	slot := pt.register("c1")

	if !pt.complete("c1", pendingResult{result: map[string]any{"ok": true}}) {
		t.Fatal("complete() = false, want true")
	}

	res := <-slot
	if res.result["ok"] != true {
		t.Fatalf("result = %v", res.result)
	}
}

func TestPendingTableCompleteUnknownIDIsNoop(t *testing.T) {
	pt := newPendingTable()
	if pt.complete("missing", pendingResult{}) {
		t.Fatal("complete() = true for unregistered id, want false")
	}
}

func TestPendingTableFailAllClearsEveryEntry(t *testing.T) {
	pt := newPendingTable()
	a := pt.register("c1")
	b := pt.register("c2")

	pt.failAll(ErrNotConnected)

	ra := <-a
	rb := <-b
	if ra.err != ErrNotConnected || rb.err != ErrNotConnected {
		t.Fatalf("got errs %v, %v, want ErrNotConnected both", ra.err, rb.err)
	}

	if pt.complete("c1", pendingResult{}) {
		t.Fatal("complete() after failAll = true, want false (table should be cleared)")
	}
}

func TestPendingTableForgetRemovesSlot(t *testing.T) {
	pt := newPendingTable()
	pt.register("c1")
	pt.forget("c1")
	if pt.complete("c1", pendingResult{}) {
		t.Fatal("complete() after forget = true, want false")
	}
}
