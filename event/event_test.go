package event

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestKindNames(t *testing.T) {
	if len(kindNames) != int(numberOfKinds) {
		t.Fatalf("expected a name for each of %d kinds, have %d", numberOfKinds, len(kindNames))
	}
	if (ParagraphChanged{}).Kind().String() != "ParagraphChanged" {
		t.Errorf("unexpected kind name %q", (ParagraphChanged{}).Kind())
	}
}

func TestEmitTyped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.event")
	defer teardown()
	//
	bus := NewBus()
	var got []string
	On(bus, func(e CursorAdded) {
		got = append(got, "added:"+e.MemberID)
	})
	sub := On(bus, func(e CursorRemoved) {
		got = append(got, "removed:"+e.MemberID)
	})
	bus.Emit(CursorAdded{MemberID: "alice"})
	bus.Emit(CursorRemoved{MemberID: "alice"})
	bus.Emit(CursorMoved{MemberID: "alice"}) // nobody listening
	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)
	bus.Emit(CursorRemoved{MemberID: "bob"})
	if len(got) != 2 || got[0] != "added:alice" || got[1] != "removed:alice" {
		t.Errorf("unexpected event sequence %v", got)
	}
	if bus.Subscribers(KindCursorRemoved) != 0 {
		t.Errorf("expected no subscribers left for CursorRemoved")
	}
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "odf.event")
	defer teardown()
	//
	bus := NewBus()
	calls := 0
	var first Subscription
	first = bus.Subscribe(KindProcessingBatchEnd, func(Event) {
		calls++
		bus.Unsubscribe(first)
	})
	bus.Subscribe(KindProcessingBatchEnd, func(Event) {
		calls++
	})
	bus.Emit(ProcessingBatchEnd{})
	if calls != 2 {
		t.Errorf("expected both handlers to be called during first emit, have %d calls", calls)
	}
	bus.Emit(ProcessingBatchEnd{})
	if calls != 3 {
		t.Errorf("expected one handler to be called during second emit, have %d calls", calls)
	}
}
