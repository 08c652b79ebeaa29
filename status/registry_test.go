package status

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"
)

func TestCounterPointerIsCached(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(FoodSpawned)
	b := r.Counter(FoodSpawned)
	if a != b {
		t.Fatal("Expected same pointer for repeated lookups")
	}
	a.Add(3)
	if got := b.Load(); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Counter(EngineTicks).Add(1)
		}()
	}
	wg.Wait()
	if got := r.Counter(EngineTicks).Load(); got != 16 {
		t.Errorf("Expected 16, got %d", got)
	}
	if r.Ints.Count() != 1 {
		t.Errorf("Expected single metric, got %d", r.Ints.Count())
	}
}

func TestLabelTruncates(t *testing.T) {
	r := NewRegistry()
	r.Label(FSMState).Store(strings.Repeat("x", 50))
	if got := len(r.Label(FSMState).Load()); got != MaxStringLen {
		t.Errorf("Expected length %d, got %d", MaxStringLen, got)
	}
	if r.Label("unset").Load() != "" {
		t.Error("Expected empty zero value")
	}
}

func TestDumpSortedOutput(t *testing.T) {
	r := NewRegistry()
	r.Counter(SnakeDeaths).Add(2)
	r.Counter(EngineTicks).Add(7)
	r.Label(SessionID).Store("abcd1234")

	var buf bytes.Buffer
	r.Dump(log.New(&buf, "", 0))

	want := "session.id=abcd1234\nengine.ticks=7\nsnake.deaths=2\n"
	if buf.String() != want {
		t.Errorf("Expected dump %q, got %q", want, buf.String())
	}
	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}
}
