package planner

import "time"

// TargetKind names what a task was dropped on.
type TargetKind string

const (
	// TargetSlot is an hourly cell of the timebox grid.
	TargetSlot TargetKind = "slot"
	// TargetBrainDump is the unscheduled list container.
	TargetBrainDump TargetKind = "braindump"
	// TargetTask is another task card inside the unscheduled list.
	TargetTask TargetKind = "task"
)

// BrainDumpID is the droppable id of the unscheduled container.
const BrainDumpID = "braindump-area"

// Target describes the drop destination resolved by the client.
type Target struct {
	Kind     TargetKind `json:"kind"`
	ID       string     `json:"id"`
	DateTime time.Time  `json:"dateTime"`
}

// SlotTarget builds the target for the grid cell at t, read in t's location.
func SlotTarget(t time.Time) Target {
	t = StartOfHour(t)
	return Target{Kind: TargetSlot, ID: "slot-" + SlotKey(t, t.Location()), DateTime: t}
}

// TaskTarget builds the target for the task card with the given id.
func TaskTarget(id string) Target {
	return Target{Kind: TargetTask, ID: id}
}

// BrainDumpTarget is the unscheduled container.
func BrainDumpTarget() Target {
	return Target{Kind: TargetBrainDump, ID: BrainDumpID}
}

// EventKind enumerates the phases of a drag gesture.
type EventKind string

const (
	DragStart  EventKind = "start"
	DragEnd    EventKind = "end"
	DragCancel EventKind = "cancel"
)

// Event is a single phase of a drag gesture. Over is nil when the pointer
// was released outside any droppable.
type Event struct {
	Kind   EventKind
	TaskID string
	Over   *Target
}

// DragState is either idle (zero value) or dragging one task.
type DragState struct {
	TaskID string `json:"taskId,omitempty"`
}

// Dragging reports whether a task is currently captured.
func (s DragState) Dragging() bool {
	return s.TaskID != ""
}

// EffectKind enumerates the task-table changes a drag can produce.
type EffectKind string

const (
	EffectNone       EffectKind = ""
	EffectAssign     EffectKind = "assign"
	EffectUnschedule EffectKind = "unschedule"
	EffectReorder    EffectKind = "reorder"
)

// Effect is the change a finished drag asks the calendar to make.
type Effect struct {
	Kind   EffectKind
	TaskID string
	OverID string
	At     time.Time
}

// Reduce advances the drag protocol. It never touches task state; the
// returned effect is applied separately by Calendar.Apply.
func Reduce(state DragState, ev Event) (DragState, Effect) {
	switch ev.Kind {
	case DragStart:
		if ev.TaskID == "" {
			return DragState{}, Effect{}
		}
		return DragState{TaskID: ev.TaskID}, Effect{}
	case DragEnd:
		if !state.Dragging() {
			return DragState{}, Effect{}
		}
		return DragState{}, resolveDrop(state.TaskID, ev.Over)
	default:
		return DragState{}, Effect{}
	}
}

func resolveDrop(active string, over *Target) Effect {
	if over == nil || over.ID == active {
		return Effect{}
	}
	switch over.Kind {
	case TargetSlot:
		if over.DateTime.IsZero() {
			return Effect{}
		}
		return Effect{Kind: EffectAssign, TaskID: active, At: over.DateTime}
	case TargetBrainDump:
		return Effect{Kind: EffectUnschedule, TaskID: active}
	case TargetTask:
		if over.ID == "" {
			return Effect{}
		}
		return Effect{Kind: EffectReorder, TaskID: active, OverID: over.ID}
	}
	return Effect{}
}
