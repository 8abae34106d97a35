package event

import "testing"

func TestDispatcherDeliversInSubscriptionOrder(t *testing.T) {
	d := NewDispatcher()

	var order []string
	d.Subscribe(WaveStarted, ListenerFunc(func(e Event) { order = append(order, "first") }))
	d.Subscribe(WaveStarted, ListenerFunc(func(e Event) { order = append(order, "second") }))
	d.SubscribeAll(ListenerFunc(func(e Event) { order = append(order, "all") }))

	d.Dispatch(Event{Type: WaveStarted, Data: WaveStartedData{Wave: 1}})

	expected := []string{"first", "second", "all"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d deliveries, got %d", len(expected), len(order))
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("delivery %d = %q, want %q", i, order[i], expected[i])
		}
	}
}

func TestDispatcherFiltersByType(t *testing.T) {
	d := NewDispatcher()
	rec := &Recorder{}
	d.Subscribe(EnemyDefeated, rec)

	d.Dispatch(Event{Type: EnemyArrived})
	d.Dispatch(Event{Type: EnemyDefeated, Data: EnemyDefeatedData{Reward: 5}})

	if len(rec.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.Events))
	}
	data, ok := rec.Events[0].Data.(EnemyDefeatedData)
	if !ok || data.Reward != 5 {
		t.Errorf("unexpected payload %+v", rec.Events[0].Data)
	}
}

func TestDispatcherUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	rec := &Recorder{}
	d.Subscribe(TowerFired, rec)
	d.Unsubscribe(TowerFired, rec)

	d.Dispatch(Event{Type: TowerFired})
	if len(rec.Events) != 0 {
		t.Errorf("unsubscribed listener should not receive events, got %d", len(rec.Events))
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Type: GameOver})
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.OnEvent(Event{Type: WaveStarted})
	rec.OnEvent(Event{Type: WaveCleared})
	rec.OnEvent(Event{Type: WaveStarted})

	if rec.Count(WaveStarted) != 2 {
		t.Errorf("expected 2 wave started events, got %d", rec.Count(WaveStarted))
	}
	if rec.Count(Victory) != 0 {
		t.Error("expected no victory events")
	}

	rec.Reset()
	if len(rec.Events) != 0 {
		t.Error("Reset should clear events")
	}
}
