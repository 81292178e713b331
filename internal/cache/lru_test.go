package cache

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func TestLRUEvictsOldest(t *testing.T) {
	var evicted []string
	c := NewLRUCache[int](2, time.Minute, WithEvictHandler(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Set("a", 1)
	c.Set("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a")
	}
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted as least recently used")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d", c.Size())
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v", evicted)
	}
}

func TestLRUSlidingTTL(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](10, 10*time.Minute, WithClock[string](clk.Now))

	c.Set("s", "session")
	clk.t = clk.t.Add(8 * time.Minute)
	if _, ok := c.Get("s"); !ok {
		t.Fatalf("entry should still be live")
	}
	clk.t = clk.t.Add(8 * time.Minute)
	if _, ok := c.Get("s"); !ok {
		t.Fatalf("Get should have refreshed expiry")
	}
	clk.t = clk.t.Add(11 * time.Minute)
	if _, ok := c.Get("s"); ok {
		t.Fatalf("entry should have expired after idling")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry should be removed, size=%d", c.Size())
	}
}

func TestLRUCleanExpired(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	var evicted int
	c := NewLRUCache[int](10, time.Minute,
		WithClock[int](clk.Now),
		WithEvictHandler(func(string, int) { evicted++ }),
	)
	c.Set("a", 1)
	c.Set("b", 2)
	clk.t = clk.t.Add(30 * time.Second)
	c.Set("c", 3)
	clk.t = clk.t.Add(45 * time.Second)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("CleanExpired = %d, want 2", n)
	}
	if evicted != 2 || c.Size() != 1 {
		t.Fatalf("evicted=%d size=%d", evicted, c.Size())
	}
}

func TestLRUDeleteSkipsEvictHandler(t *testing.T) {
	called := false
	c := NewLRUCache[int](2, time.Minute, WithEvictHandler(func(string, int) { called = true }))
	c.Set("a", 1)
	c.Delete("a")
	if called || c.Size() != 0 {
		t.Fatalf("called=%v size=%d", called, c.Size())
	}
}

func TestManagerSweepAndStop(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[int](10, time.Second, WithClock[int](clk.Now))
	c.Set("a", 1)
	clk.t = clk.t.Add(2 * time.Second)

	m := NewManager(nil)
	m.Register(c)
	if n := m.Sweep(); n != 1 {
		t.Fatalf("Sweep = %d", n)
	}

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}
