package backtrack

import "testing"

func TestIterativeStack_PushPop(t *testing.T) {
	s := NewIterativeStack(0)

	for i := 0; i < blockSize*3+1; i++ {
		if !s.Push(Frame{Kind: KindPositionRestore, Position: i}) {
			t.Fatalf("Push(%d) = false, want true", i)
		}
	}
	if s.Len() != blockSize*3+1 {
		t.Fatalf("Len() = %d, want %d", s.Len(), blockSize*3+1)
	}

	for i := blockSize*3 + 1 - 1; i >= 0; i-- {
		f, ok := s.Pop()
		if !ok {
			t.Fatalf("Pop() at %d: ok = false", i)
		}
		if f.Position != i {
			t.Fatalf("Pop() at %d: Position = %d, want %d", i, f.Position, i)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("Len() after draining = %d, want 0", s.Len())
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack: ok = true")
	}
}

func TestIterativeStack_BlockRecycling(t *testing.T) {
	s := NewIterativeStack(0)
	for i := 0; i < blockSize; i++ {
		s.Push(Frame{Position: i})
	}
	for i := 0; i < blockSize; i++ {
		s.Pop()
	}
	if len(s.free) != 1 {
		t.Fatalf("free blocks = %d, want 1", len(s.free))
	}
	if len(s.blocks) != 0 {
		t.Fatalf("live blocks = %d, want 0", len(s.blocks))
	}

	s.Push(Frame{Position: 99})
	if len(s.free) != 0 {
		t.Fatalf("free blocks after reuse = %d, want 0", len(s.free))
	}
}

func TestIterativeStack_MaxFrames(t *testing.T) {
	s := NewIterativeStack(2)
	if !s.Push(Frame{}) || !s.Push(Frame{}) {
		t.Fatal("Push within budget failed")
	}
	if s.Push(Frame{}) {
		t.Fatal("Push beyond budget = true, want false")
	}
}

func TestIterativeStack_Reset(t *testing.T) {
	s := NewIterativeStack(0)
	for i := 0; i < blockSize*2; i++ {
		s.Push(Frame{})
	}
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", s.Len())
	}
	if len(s.free) == 0 {
		t.Fatal("Reset() did not recycle blocks onto freelist")
	}
}

func TestRecursiveStack_DepthGuard(t *testing.T) {
	s := NewRecursiveStack(2)
	if !s.Push(Frame{}) || !s.Push(Frame{}) {
		t.Fatal("Push within depth cap failed")
	}
	if s.Push(Frame{}) {
		t.Fatal("Push beyond depth cap = true, want false")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	s.Pop()
	if !s.Push(Frame{}) {
		t.Fatal("Push after Pop freed room = false, want true")
	}
}

func TestRecursiveStack_DefaultMaxDepth(t *testing.T) {
	s := NewRecursiveStack(0)
	if s.maxDepth != DefaultMaxDepth {
		t.Fatalf("maxDepth = %d, want %d", s.maxDepth, DefaultMaxDepth)
	}
}

func TestRecursiveStack_Reset(t *testing.T) {
	s := NewRecursiveStack(5)
	s.Push(Frame{})
	s.Push(Frame{})
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", s.Len())
	}
}
