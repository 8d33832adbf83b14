// Package stack provides the bounded stack of open element names used while
// mapping a metadata document.
package stack

import "errors"

var (
	// ErrCapacityExceeded is returned by Push when the stack is full.
	ErrCapacityExceeded = errors.New("stack capacity exceeded")

	// ErrEmpty is returned by Pop and Peek on an empty stack.
	ErrEmpty = errors.New("stack is empty")
)

// Stack is a fixed-capacity LIFO of element names.
// The zero value has capacity 0 and rejects every Push.
type Stack struct {
	items    []string
	capacity int
}

// New creates a stack that holds at most capacity names.
func New(capacity int) *Stack {
	if capacity < 0 {
		capacity = 0
	}
	return &Stack{
		items:    make([]string, 0, min(capacity, 64)),
		capacity: capacity,
	}
}

// Push adds name on top of the stack.
func (s *Stack) Push(name string) error {
	if len(s.items) >= s.capacity {
		return ErrCapacityExceeded
	}
	s.items = append(s.items, name)
	return nil
}

// Pop removes and returns the most recently pushed name.
func (s *Stack) Pop() (string, error) {
	if len(s.items) == 0 {
		return "", ErrEmpty
	}
	last := len(s.items) - 1
	name := s.items[last]
	s.items[last] = ""
	s.items = s.items[:last]
	return name, nil
}

// Peek returns the top name without removing it.
func (s *Stack) Peek() (string, error) {
	if len(s.items) == 0 {
		return "", ErrEmpty
	}
	return s.items[len(s.items)-1], nil
}

// Len returns the number of names on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// Cap returns the maximum depth.
func (s *Stack) Cap() int {
	return s.capacity
}
