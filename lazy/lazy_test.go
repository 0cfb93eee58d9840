package lazy_test

import (
	"testing"

	. "github.com/npillmayer/odfops/lazy"
)

func TestLazySimple(t *testing.T) {
	calls := 0
	x := New(func() int {
		calls++
		return 7
	})

	if x.IsFresh() {
		t.Error("expected new lazy value to be stale")
	}
	if x.Get() != 7 || x.Get() != 7 {
		t.Error("expected lazy value to compute to 7")
	}
	if calls != 1 {
		t.Errorf("expected compute function to be called once, was called %d times", calls)
	}
	if !x.IsFresh() {
		t.Error("expected value to be fresh after Get")
	}
}

func TestLazyReset(t *testing.T) {
	n := 0
	x := New(func() int {
		n++
		return n
	})
	if x.Get() != 1 {
		t.Fatal("expected first computation to yield 1")
	}
	x.Reset()
	if x.IsFresh() {
		t.Error("expected value to be stale after Reset")
	}
	if x.Get() != 2 {
		t.Error("expected re-computation after Reset")
	}
}
