// Package events provides the in-process event bus the daemon and API
// use to broadcast brightness changes.
package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for typed publish/subscribe.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish broadcasts an event to all subscribers of its type.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case BrightnessChangedEvent:
		event.Publish(b.dispatcher, e)
	case CardSelectedEvent:
		event.Publish(b.dispatcher, e)
	case ScheduleReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler; the handler's parameter type selects
// which events it receives. Returns an unsubscribe function.
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(BrightnessChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(CardSelectedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ScheduleReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
