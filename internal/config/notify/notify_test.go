package notify

import (
	"testing"
)

func TestChangeTypeString(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("ChangeType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var received []Change
	n.Subscribe(func(c Change) {
		received = append(received, c)
	})

	n.NotifySet("buffer.slack", 8, 16)

	if len(received) != 1 {
		t.Fatalf("received %d changes, want 1", len(received))
	}
	c := received[0]
	if c.Path != "buffer.slack" || c.Type != ChangeSet {
		t.Errorf("change = %+v", c)
	}
	if c.OldValue != 8 || c.NewValue != 16 {
		t.Errorf("values = %v -> %v, want 8 -> 16", c.OldValue, c.NewValue)
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		changed string
		want    bool
	}{
		{"exact", "buffer.slack", "buffer.slack", true},
		{"parent", "buffer", "buffer.slack", true},
		{"sibling", "buffer.slack", "buffer.maxCapacity", false},
		{"prefix not section", "buffer", "buffers.slack", false},
		{"child of change", "buffer.slack", "buffer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			called := false
			n.SubscribePath(tt.path, func(Change) { called = true })

			n.NotifySet(tt.changed, nil, 1)

			if called != tt.want {
				t.Errorf("observer called = %v, want %v", called, tt.want)
			}
		})
	}
}

func TestNotifier_Reload(t *testing.T) {
	n := New()

	var global, path int
	n.Subscribe(func(c Change) {
		if c.Type == ChangeReload {
			global++
		}
	})
	n.SubscribePath("buffer.slack", func(c Change) {
		if c.Type == ChangeReload {
			path++
		}
	})

	n.NotifyReload()

	if global != 1 || path != 1 {
		t.Errorf("reload delivered to global=%d path=%d, want 1 and 1", global, path)
	}
}

func TestNotifier_Order(t *testing.T) {
	n := New()

	var order []int
	for i := range 3 {
		n.Subscribe(func(Change) { order = append(order, i) })
	}

	n.NotifyReload()

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestSubscription_Unsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })

	n.NotifyReload()
	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifyReload()

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
}

func TestNotifier_UnsubscribeDuringNotify(t *testing.T) {
	n := New()

	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(Change) {
		calls++
		sub.Unsubscribe()
	})

	n.NotifyReload()
	n.NotifyReload()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New()

	called := false
	n.Subscribe(func(Change) { called = true })

	n.Close()
	n.NotifyReload()

	if called {
		t.Error("observer called after Close")
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", n.Len())
	}
}
