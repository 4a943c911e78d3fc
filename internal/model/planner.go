package model

import (
	"strings"

	"github.com/google/uuid"
)

// GeneralCategory is the category every planner document carries; tasks fall
// back to it whenever their own category disappears.
const GeneralCategory = "General"

// DefaultColor is assigned to any category without a valid color.
const DefaultColor = "#6366f1"

// DocumentKey identifies the singleton planner document in storage.
const DocumentKey = "planner"

// PlannerState is the whole persisted planner document: every task, the
// category set with colors, the view settings, and the countdown timers.
type PlannerState struct {
	Tasks          []Task            `json:"tasks"`
	Categories     []string          `json:"categories"`
	CategoryColors map[string]string `json:"categoryColors"`
	SelectedDate   string            `json:"selectedDate"`
	SortBy         string            `json:"sortBy"`
	PomodoroTimers map[string]Timer  `json:"pomodoroTimers"`
}

// DefaultState returns the canonical empty document.
func DefaultState() PlannerState {
	return PlannerState{
		Tasks:          []Task{},
		Categories:     []string{GeneralCategory},
		CategoryColors: map[string]string{GeneralCategory: DefaultColor},
		SelectedDate:   Today(),
		SortBy:         SortPriority,
		PomodoroTimers: map[string]Timer{},
	}
}

// Clone returns a deep copy so transforms never alias the source document.
func (s PlannerState) Clone() PlannerState {
	out := s
	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.Order != nil {
			o := *t.Order
			t.Order = &o
		}
		out.Tasks[i] = t
	}
	out.Categories = append([]string(nil), s.Categories...)
	out.CategoryColors = make(map[string]string, len(s.CategoryColors))
	for k, v := range s.CategoryColors {
		out.CategoryColors[k] = v
	}
	out.PomodoroTimers = make(map[string]Timer, len(s.PomodoroTimers))
	for k, v := range s.PomodoroTimers {
		out.PomodoroTimers[k] = v
	}
	return out
}

// HasCategory reports whether name is in the category set (case-sensitive).
func (s PlannerState) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// TaskByID returns the task with the given id, if present.
func (s PlannerState) TaskByID(id string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// AddTask appends a task to the document. Missing fields are filled with the
// usual defaults; an empty id gets a fresh UUID.
func (s PlannerState) AddTask(t Task) PlannerState {
	out := s.Clone()
	if strings.TrimSpace(t.ID) == "" {
		t.ID = uuid.NewString()
	}
	if !ValidPriority(t.Priority) {
		t.Priority = PriorityMedium
	}
	if !ValidTaskType(t.TaskType) {
		t.TaskType = TypeWork
	}
	if !s.HasCategory(t.Category) {
		t.Category = GeneralCategory
	}
	if !ValidDate(t.Date) {
		t.Date = Today()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = NowMillis()
	}
	if t.Done {
		t.Hidden = true
	}
	out.Tasks = append(out.Tasks, t)
	return out
}

// ToggleDone flips a task's completion. Completing a task always hides it;
// marking it pending again reveals it.
func (s PlannerState) ToggleDone(id string) PlannerState {
	out := s.Clone()
	for i, t := range out.Tasks {
		if t.ID == id {
			out.Tasks[i].Done = !t.Done
			out.Tasks[i].Hidden = out.Tasks[i].Done
			break
		}
	}
	return out
}

// Hide marks a task hidden without touching its completion flag.
func (s PlannerState) Hide(id string) PlannerState {
	out := s.Clone()
	for i, t := range out.Tasks {
		if t.ID == id {
			out.Tasks[i].Hidden = true
			break
		}
	}
	return out
}

// Restore reveals a hidden task and marks it pending again.
func (s PlannerState) Restore(id string) PlannerState {
	out := s.Clone()
	for i, t := range out.Tasks {
		if t.ID == id {
			out.Tasks[i].Hidden = false
			out.Tasks[i].Done = false
			break
		}
	}
	return out
}

// CloneTask duplicates a task under a fresh id with a new creation time. The
// copy starts pending and visible; manual rank is not carried over.
func (s PlannerState) CloneTask(id string) PlannerState {
	src, ok := s.TaskByID(id)
	if !ok {
		return s.Clone()
	}
	out := s.Clone()
	dup := src
	dup.ID = uuid.NewString()
	dup.CreatedAt = NowMillis()
	dup.Done = false
	dup.Hidden = false
	dup.Order = nil
	out.Tasks = append(out.Tasks, dup)
	return out
}

// MoveTask reassigns a task to another calendar date. Invalid dates are
// ignored.
func (s PlannerState) MoveTask(id, date string) PlannerState {
	if !ValidDate(date) {
		return s.Clone()
	}
	out := s.Clone()
	for i, t := range out.Tasks {
		if t.ID == id {
			out.Tasks[i].Date = date
			out.Tasks[i].Order = nil
			break
		}
	}
	return out
}

// AddCategory inserts a new category with the default color. Blank or
// duplicate names are no-ops.
func (s PlannerState) AddCategory(name string) PlannerState {
	name = strings.TrimSpace(name)
	out := s.Clone()
	if name == "" || out.HasCategory(name) {
		return out
	}
	out.Categories = append(out.Categories, name)
	out.CategoryColors[name] = DefaultColor
	return out
}

// RemoveCategory drops a category and its color, reassigning its tasks to
// "General". "General" itself is never removed.
func (s PlannerState) RemoveCategory(name string) PlannerState {
	out := s.Clone()
	if name == GeneralCategory || !out.HasCategory(name) {
		return out
	}
	kept := out.Categories[:0]
	for _, c := range out.Categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	out.Categories = kept
	delete(out.CategoryColors, name)
	for i, t := range out.Tasks {
		if t.Category == name {
			out.Tasks[i].Category = GeneralCategory
		}
	}
	return out
}

// SetCategoryColor assigns a color to an existing category. Unknown
// categories are ignored; the caller validates the hex format.
func (s PlannerState) SetCategoryColor(name, color string) PlannerState {
	out := s.Clone()
	if out.HasCategory(name) {
		out.CategoryColors[name] = color
	}
	return out
}

// SetSelectedDate switches the viewed day. Invalid dates are ignored.
func (s PlannerState) SetSelectedDate(date string) PlannerState {
	out := s.Clone()
	if ValidDate(date) {
		out.SelectedDate = date
	}
	return out
}

// SetSortBy switches the sort mode. Unknown modes are ignored.
func (s PlannerState) SetSortBy(mode string) PlannerState {
	out := s.Clone()
	if ValidSortMode(mode) {
		out.SortBy = mode
	}
	return out
}
