package model

// Task priorities, highest first.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task types.
const (
	TypeWork     = "Work"
	TypeLearning = "Learning"
	TypeMeeting  = "Meeting"
)

// Sort modes for the day view.
const (
	SortPriority  = "priority"
	SortCategory  = "category"
	SortTaskType  = "taskType"
	SortCreatedAt = "createdAt"
	SortManual    = "manual"
)

// Status filter values.
const (
	StatusAll       = "All"
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Task represents a single item in the planner document.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	TaskType    string `json:"taskType"`
	MeetingTime string `json:"meetingTime"`
	Date        string `json:"date"`
	Done        bool   `json:"done"`
	Hidden      bool   `json:"hidden"`
	CreatedAt   int64  `json:"createdAt"`
	Order       *int   `json:"order,omitempty"`
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t string) bool {
	return t == TypeWork || t == TypeLearning || t == TypeMeeting
}

// ValidSortMode reports whether m is one of the known sort modes.
func ValidSortMode(m string) bool {
	switch m {
	case SortPriority, SortCategory, SortTaskType, SortCreatedAt, SortManual:
		return true
	}
	return false
}
