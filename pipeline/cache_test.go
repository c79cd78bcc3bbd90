package pipeline

import "testing"

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get("missing"); ok {
		t.Fatal("unexpected hit")
	}

	run := NewRun("an idea")
	s.Put("an idea", run)

	got, ok := s.Get("an idea")
	if !ok || got.ID != run.ID {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	a, b := NewRun("a"), NewRun("b")
	s.Put("a", a)
	s.Put("b", b)

	gotA, _ := s.Get("a")
	gotB, _ := s.Get("b")
	if gotA.ID == gotB.ID {
		t.Fatal("keys must map to independent entries")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestMemoryStoreEmptyKeyIsLegal(t *testing.T) {
	s := NewMemoryStore()
	run := NewRun("")
	s.Put("", run)
	if got, ok := s.Get(""); !ok || got.ID != run.ID {
		t.Fatal("empty key must be a usable degenerate key")
	}
}

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	first, second := NewRun("k"), NewRun("k")
	s.Put("k", first)
	s.Put("k", second)
	got, _ := s.Get("k")
	if got.ID != second.ID {
		t.Fatal("overwrite must keep the last write")
	}
}
