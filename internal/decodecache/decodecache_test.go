package decodecache_test

import (
	"testing"

	"github.com/mikegtech/insbridge-decoder/internal/decodecache"
)

func openTestCache(t *testing.T) *decodecache.Cache {
	t.Helper()
	c, err := decodecache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := openTestCache(t)
	entries, ok, err := c.Get("AUTO123/7")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() ok = true on an empty cache, want false")
	}
	if len(entries) != 0 {
		t.Errorf("Get() entries = %+v, want none", entries)
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := openTestCache(t)
	want := []decodecache.Entry{
		{Step: 1, Opcode: 10, StepType: "Calculation", English: "Set X = Y"},
		{Step: 2, Opcode: 20, StepType: "Decision", English: "If X > Y Then Go To Step 3"},
	}
	if err := c.Put("AUTO123/7", want); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok, err := c.Get("AUTO123/7")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false after Put, want true")
	}
	if len(got) != len(want) {
		t.Fatalf("Get() = %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPutReplacesPriorEntries(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("k", []decodecache.Entry{{Step: 1, English: "old"}}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := c.Put("k", []decodecache.Entry{{Step: 1, English: "new"}}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, _, err := c.Get("k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != 1 || got[0].English != "new" {
		t.Errorf("Get() = %+v, want a single entry with English \"new\"", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("program-a", []decodecache.Entry{{Step: 1, English: "a"}}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := c.Put("program-b", []decodecache.Entry{{Step: 1, English: "b"}}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	a, _, _ := c.Get("program-a")
	b, _, _ := c.Get("program-b")
	if len(a) != 1 || a[0].English != "a" {
		t.Errorf("program-a = %+v, want English \"a\"", a)
	}
	if len(b) != 1 || b[0].English != "b" {
		t.Errorf("program-b = %+v, want English \"b\"", b)
	}
}
