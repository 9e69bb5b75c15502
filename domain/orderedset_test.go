package domain

import (
	"reflect"
	"testing"
)

func TestOrderedSet_PreservesInsertionOrder(t *testing.T) {
	s := NewOrderedSet()
	s.AddAll([]string{"c", "a", "b", "a", "c"})

	want := []string{"c", "a", "b"}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestOrderedSet_AddReportsInsertion(t *testing.T) {
	s := NewOrderedSet()
	if !s.Add("x") {
		t.Error("First Add should report insertion")
	}
	if s.Add("x") {
		t.Error("Duplicate Add should report no insertion")
	}
}

func TestOrderedSet_Contains(t *testing.T) {
	s := NewOrderedSet()
	s.Add("present")

	if !s.Contains("present") {
		t.Error("Contains should find an added value")
	}
	if s.Contains("absent") {
		t.Error("Contains should not find a missing value")
	}
}

func TestOrderedSet_ValuesIsACopy(t *testing.T) {
	s := NewOrderedSet()
	s.AddAll([]string{"a", "b"})

	values := s.Values()
	values[0] = "mutated"

	if got := s.Values()[0]; got != "a" {
		t.Errorf("Mutating the returned slice must not affect the set, got %s", got)
	}
}
