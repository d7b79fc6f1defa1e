package ecs

import "github.com/milk9111/fpscore/component"

// EventQueue is a simple FIFO of combat events collected during a frame.
type EventQueue struct {
	items []component.CombatEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt component.CombatEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Handle adapts the queue to a combat event handler.
func (q *EventQueue) Handle(evt component.CombatEvent) {
	q.Push(evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []component.CombatEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
