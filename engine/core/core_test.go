package core

import "testing"

func TestArena_StaleHandleAfterRemove(t *testing.T) {
	var a Arena[string]
	h := a.Insert("knight")
	if v, ok := a.Get(h); !ok || v != "knight" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if !a.Remove(h) {
		t.Fatal("Remove should succeed for a live handle")
	}
	if _, ok := a.Get(h); ok {
		t.Fatal("removed handle must be stale")
	}
	h2 := a.Insert("archer")
	if h2.Index != h.Index || h2.Gen == h.Gen {
		t.Fatalf("slot should be reused with a new generation: %v vs %v", h, h2)
	}
	if _, ok := a.Get(h); ok {
		t.Fatal("old handle must not resolve to the new value")
	}
	if a.Remove(h) {
		t.Fatal("removing a stale handle should be a no-op")
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d", a.Len())
	}
}

func TestArena_HandlesInSlotOrder(t *testing.T) {
	var a Arena[int]
	hs := []Handle{a.Insert(1), a.Insert(2), a.Insert(3)}
	a.Remove(hs[1])
	got := a.Handles()
	if len(got) != 2 || got[0] != hs[0] || got[1] != hs[2] {
		t.Fatalf("unexpected handles %v", got)
	}
	sum := 0
	a.Each(func(_ Handle, v int) { sum += v })
	if sum != 4 {
		t.Fatalf("Each visited wrong values, sum=%d", sum)
	}
}

func TestZeroHandle(t *testing.T) {
	var a Arena[int]
	a.Insert(7)
	if _, ok := a.Get(Handle{}); ok {
		t.Fatal("zero handle must never resolve")
	}
}

func TestEventBus_DispatchOrder(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	bus.On(EvtUnitDied, func(e Event) { got = append(got, e.Type) })
	all := 0
	bus.OnAll(func(Event) { all++ })

	bus.Emit(Event{Type: EvtUnitDamaged})
	bus.Emit(Event{Type: EvtUnitDied})
	if bus.Pending() != 2 {
		t.Fatalf("Pending = %d", bus.Pending())
	}
	bus.Dispatch()
	if len(got) != 1 || got[0] != EvtUnitDied || all != 2 {
		t.Fatalf("got=%v all=%d", got, all)
	}
	if bus.Pending() != 0 {
		t.Fatal("queue should be empty after dispatch")
	}
}

func TestTeamRelations(t *testing.T) {
	if !TeamRed.Hostile(TeamBlue) || TeamRed.Hostile(TeamRed) {
		t.Fatal("red and blue are enemies, red is not its own enemy")
	}
	if TeamNeutral.Hostile(TeamRed) {
		t.Fatal("neutral is never hostile")
	}
	if !TeamBlue.Allied(TeamBlue) {
		t.Fatal("a team is allied with itself")
	}
}
