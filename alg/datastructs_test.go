package alg

import "testing"

func TestStackArray(t *testing.T) {
	s := NewStackArray(4)
	if _, exists := s.Peek(); exists {
		t.Error("Empty stack has a top")
	}
	if _, exists := s.Pop(); exists {
		t.Error("Popped an empty stack")
	}
	s.Push(0)
	s.Push(3)
	s.Push(5)
	if top, _ := s.Peek(); top != 5 {
		t.Errorf("Expected top 5, got %d", top)
	}
	if bottom, _ := s.Index(2); bottom != 0 {
		t.Errorf("Expected bottom 0, got %d", bottom)
	}
	for _, pos := range []int{-1, 3, 100} {
		if _, exists := s.Index(pos); exists {
			t.Errorf("Index(%d) should not exist", pos)
		}
	}
	copied := s.Copy()
	if !s.Equal(copied) {
		t.Error("Copy is not equal to original")
	}
	if val, _ := s.Pop(); val != 5 {
		t.Errorf("Expected to pop 5, got %d", val)
	}
	if copied.Size() != 3 {
		t.Error("Pop on original changed the copy")
	}
	if s.Equal(copied) {
		t.Error("Stacks of different size compare equal")
	}
	s.Clear()
	if s.Size() != 0 {
		t.Error("Clear left elements")
	}
}
