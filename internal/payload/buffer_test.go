package payload

import "testing"

func TestAppendAndBytes(t *testing.T) {
	b := New(4)
	if err := b.Append([]byte{1, 2}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Append([]byte{3}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got := b.Bytes(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Bytes() = %v, want [1 2 3]", got)
	}
}

func TestAppendOutOfSpace(t *testing.T) {
	b := New(2)
	if err := b.Append([]byte{1, 2, 3}); err != ErrOutOfSpace {
		t.Errorf("err = %v, want ErrOutOfSpace", err)
	}
}

func TestPopLast(t *testing.T) {
	b := New(4)
	b.Append([]byte{1, 2, 3})

	last, ok := b.PopLast()
	if !ok || last != 3 {
		t.Errorf("PopLast() = (%d, %v), want (3, true)", last, ok)
	}
	if len(b.Bytes()) != 2 {
		t.Errorf("len(Bytes()) = %d, want 2", len(b.Bytes()))
	}
}

func TestPopLastEmpty(t *testing.T) {
	b := New(4)
	if _, ok := b.PopLast(); ok {
		t.Error("PopLast on an empty buffer should report false")
	}
}

func TestTakeResets(t *testing.T) {
	b := New(4)
	b.Append([]byte{9, 8})

	got := b.Take()
	if len(got) != 2 {
		t.Fatalf("Take() = %v, want length 2", got)
	}
	if len(b.Bytes()) != 0 {
		t.Error("buffer should be empty after Take")
	}
}

func TestReset(t *testing.T) {
	b := New(4)
	b.Append([]byte{1, 2})
	b.Reset()
	if len(b.Bytes()) != 0 {
		t.Error("Reset should empty the buffer")
	}
	if err := b.Append([]byte{1, 2, 3, 4}); err != nil {
		t.Errorf("Append after Reset should still respect capacity: %v", err)
	}
}
