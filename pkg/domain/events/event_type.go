package events

// EventType represents the type of an event in the system.
type EventType string

func (t EventType) String() string { return string(t) }
