package metrics

import (
	"sync"
	"testing"
)

func TestRegistry_GetOrCreateReturnsSame(t *testing.T) {
	r := NewRegistry()
	if r.Counter("a") != r.Counter("a") {
		t.Fatal("Counter returned different instances")
	}
	if r.Gauge("a") != r.Gauge("a") {
		t.Fatal("Gauge returned different instances")
	}
	if r.Histogram("a") != r.Histogram("a") {
		t.Fatal("Histogram returned different instances")
	}
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	got := make([]*Counter, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.Counter("shared")
			got[i].Inc()
		}(i)
	}
	wg.Wait()
	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("instance %d differs", i)
		}
	}
	if got[0].Value() != 32 {
		t.Fatalf("value = %d, want 32", got[0].Value())
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter("calls").Add(4)
	r.Gauge("handlers").Set(2)
	r.Histogram("latency").Observe(7)

	snap := r.Snapshot()
	if snap["calls"] != int64(4) {
		t.Errorf("calls = %v", snap["calls"])
	}
	if snap["handlers"] != int64(2) {
		t.Errorf("handlers = %v", snap["handlers"])
	}
	s, ok := snap["latency"].(Summary)
	if !ok || s.Count != 1 || s.Sum != 7 {
		t.Errorf("latency = %#v", snap["latency"])
	}

	r.Counter("calls").Inc()
	if snap["calls"] != int64(4) {
		t.Error("snapshot changed after write")
	}
}

func TestRegistryNamesAreDistinctPerKind(t *testing.T) {
	r := NewRegistry()
	r.Counter(OracleCallsName).Inc()
	r.Gauge(OracleRegisteredName).Set(2)
	if r.Counter(OracleCallsName) != r.Counter(OracleCallsName) {
		t.Fatal("counter not reused")
	}
	if r.Counter(OracleErrorsName).Value() != 0 {
		t.Fatal("distinct names share a counter")
	}
	snap := r.Snapshot()
	if snap[OracleCallsName] != int64(1) || snap[OracleRegisteredName] != int64(2) {
		t.Fatalf("snapshot = %v", snap)
	}
}
