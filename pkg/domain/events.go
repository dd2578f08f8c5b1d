package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventCreateInstance EventType = "create_instance"
	EventCreateText     EventType = "create_text"
	EventCommitUpdate   EventType = "commit_update"
	EventCommitText     EventType = "commit_text"
	EventAppendChild    EventType = "append_child"
	EventInsertBefore   EventType = "insert_before"
	EventRemoveChild    EventType = "remove_child"
	EventReplaceRoot    EventType = "replace_root"
	EventSchedule       EventType = "schedule"
	EventFlush          EventType = "flush"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// InstanceEvent describes the creation of a host node.
type InstanceEvent struct {
	EventBase
	InstanceID   int    `json:"instance_id,omitempty"`
	InstanceType string `json:"instance_type,omitempty"`
}

// MutationEvent describes a mutation of the committed tree.
type MutationEvent struct {
	EventBase
	ParentID int  `json:"parent_id,omitempty"`
	Failed   bool `json:"failed,omitempty"`
}

// SchedulerEvent describes scheduler activity on one class.
type SchedulerEvent struct {
	EventBase
	Class     string `json:"class"`
	Discarded bool   `json:"discarded,omitempty"` // a pending callback was overwritten
}

// LifecycleHooks defines callbacks for host observability. All hooks are
// optional and run synchronously on the mutating call.
type LifecycleHooks struct {
	OnCreateInstance func(*InstanceEvent)
	OnMutation       func(*MutationEvent)
	OnSchedule       func(*SchedulerEvent)
	OnFlush          func(*SchedulerEvent)
}
