package utils

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

/*
SortedSet is a set of values held in a slice kept in ascending order with no duplicates.
It is much lighter than a map based set when the sets are small, as they are for node
neighbor lists in a tetrahedral mesh, where a node usually has a few tens of neighbors.
*/
type SortedSet[T cmp.Ordered] struct {
	vals []T
}

func NewSortedSet[T cmp.Ordered](capacity int) *SortedSet[T] {
	return &SortedSet[T]{vals: make([]T, 0, capacity)}
}

// Insert adds val at its ordered position, inserting an existing value is a no-op
func (s *SortedSet[T]) Insert(val T) {
	i, found := slices.BinarySearch(s.vals, val)
	if found {
		return
	}
	s.vals = slices.Insert(s.vals, i, val)
}

func (s *SortedSet[T]) Contains(val T) bool {
	_, found := slices.BinarySearch(s.vals, val)
	return found
}

// Intersect removes from s every value not present in other, in one merge pass over both
func (s *SortedSet[T]) Intersect(other *SortedSet[T]) {
	var (
		me, next, o int
		ov          = other.vals
	)
	for next < len(s.vals) {
		// jump over others that can't match
		for o < len(ov) && ov[o] < s.vals[next] {
			o++
		}
		if o == len(ov) {
			break
		}
		if s.vals[next] == ov[o] {
			s.vals[me] = s.vals[next]
			me++
			next++
		} else {
			for next < len(s.vals) && s.vals[next] < ov[o] {
				next++
			}
		}
	}
	clear(s.vals[me:])
	s.vals = s.vals[:me]
}

func (s *SortedSet[T]) Remove(val T) {
	if i, found := slices.BinarySearch(s.vals, val); found {
		s.vals = slices.Delete(s.vals, i, i+1)
	}
}

func (s *SortedSet[T]) Clear() { s.vals = s.vals[:0] }

// NotEmpty is the occupancy check, true when the set holds at least one value
func (s *SortedSet[T]) NotEmpty() bool { return len(s.vals) > 0 }

func (s *SortedSet[T]) Len() int { return len(s.vals) }

func (s *SortedSet[T]) At(i int) T { return s.vals[i] }

// Values returns the ascending backing slice, callers must not modify it
func (s *SortedSet[T]) Values() []T { return s.vals }

func (s *SortedSet[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range s.vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
