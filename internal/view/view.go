// Package view derives the visible, grouped, sorted task list for a day. All
// functions are pure: they never mutate the document they are given.
package view

import (
	"sort"
	"strings"
	"time"

	"dayplan/internal/model"
)

// Filters narrows the day view. Zero-value string fields mean "All".
type Filters struct {
	ShowAll  bool
	Type     string
	Category string
	Status   string
}

// CategoryGroup is one rendered section of the day view.
type CategoryGroup struct {
	Category string
	Color    string
	Tasks    []model.Task
}

func (f Filters) matches(t model.Task) bool {
	if !f.ShowAll && t.Hidden {
		return false
	}
	if f.Type != "" && f.Type != model.StatusAll && t.TaskType != f.Type {
		return false
	}
	if f.Category != "" && f.Category != model.StatusAll && t.Category != f.Category {
		return false
	}
	switch f.Status {
	case model.StatusPending:
		return !t.Done
	case model.StatusCompleted:
		return t.Done
	}
	return true
}

// Visible returns the tasks for the selected date that pass the filters,
// sorted according to the document's sort mode.
func Visible(s model.PlannerState, f Filters) []model.Task {
	var tasks []model.Task
	for _, t := range s.Tasks {
		if t.Date == s.SelectedDate && f.matches(t) {
			tasks = append(tasks, t)
		}
	}
	sortTasks(tasks, s.SortBy)
	return tasks
}

// Grouped partitions the visible tasks by category, groups in alphabetical
// order, preserving the sort order inside each group.
func Grouped(s model.PlannerState, f Filters) []CategoryGroup {
	tasks := Visible(s, f)
	byCat := map[string][]model.Task{}
	var names []string
	for _, t := range tasks {
		if _, ok := byCat[t.Category]; !ok {
			names = append(names, t.Category)
		}
		byCat[t.Category] = append(byCat[t.Category], t)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		color := s.CategoryColors[name]
		if color == "" {
			color = model.DefaultColor
		}
		groups = append(groups, CategoryGroup{Category: name, Color: color, Tasks: byCat[name]})
	}
	return groups
}

func sortTasks(tasks []model.Task, mode string) {
	switch mode {
	case model.SortManual:
		ranks := make([]int, len(tasks))
		for i, t := range tasks {
			if t.Order != nil {
				ranks[i] = *t.Order
			} else {
				ranks[i] = i
			}
		}
		idx := make([]int, len(tasks))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return ranks[idx[a]] < ranks[idx[b]] })
		ordered := make([]model.Task, len(tasks))
		for i, j := range idx {
			ordered[i] = tasks[j]
		}
		copy(tasks, ordered)
	case model.SortCategory:
		sort.SliceStable(tasks, func(a, b int) bool {
			if tasks[a].Category != tasks[b].Category {
				return tasks[a].Category < tasks[b].Category
			}
			return tasks[a].Name < tasks[b].Name
		})
	case model.SortTaskType:
		sort.SliceStable(tasks, func(a, b int) bool {
			if tasks[a].TaskType != tasks[b].TaskType {
				return tasks[a].TaskType < tasks[b].TaskType
			}
			return tasks[a].Name < tasks[b].Name
		})
	case model.SortCreatedAt:
		sort.SliceStable(tasks, func(a, b int) bool {
			return tasks[a].CreatedAt > tasks[b].CreatedAt
		})
	default: // priority
		sort.SliceStable(tasks, func(a, b int) bool {
			ra, rb := priorityRank(tasks[a].Priority), priorityRank(tasks[b].Priority)
			if ra != rb {
				return ra < rb
			}
			if tasks[a].TaskType == model.TypeMeeting && tasks[b].TaskType == model.TypeMeeting {
				ma, oka := meetingMinutes(tasks[a].MeetingTime)
				mb, okb := meetingMinutes(tasks[b].MeetingTime)
				switch {
				case oka && okb:
					return ma < mb
				case oka:
					return true
				case okb:
					return false
				}
			}
			return tasks[a].Name < tasks[b].Name
		})
	}
}

func priorityRank(p string) int {
	switch p {
	case model.PriorityHigh:
		return 0
	case model.PriorityMedium:
		return 1
	default:
		return 2
	}
}

// meetingMinutes parses an "HH:MM AM/PM" label into minutes since midnight.
func meetingMinutes(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	t, err := time.Parse("3:04 PM", label)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// Reorder moves the task sourceID to the position of targetID within the
// selected day and reassigns contiguous 0-based manual ranks to every task of
// that day. The act of reordering switches the document to manual sort.
// Unknown or identical ids leave the document untouched.
func Reorder(s model.PlannerState, sourceID, targetID string) model.PlannerState {
	if sourceID == targetID {
		return s
	}

	var day []model.Task
	for _, t := range s.Tasks {
		if t.Date == s.SelectedDate {
			day = append(day, t)
		}
	}
	sortTasks(day, model.SortManual)

	src, tgt := -1, -1
	for i, t := range day {
		switch t.ID {
		case sourceID:
			src = i
		case targetID:
			tgt = i
		}
	}
	if src < 0 || tgt < 0 {
		return s
	}

	moved := day[src]
	day = append(day[:src], day[src+1:]...)
	if src < tgt {
		tgt--
	}
	day = append(day[:tgt], append([]model.Task{moved}, day[tgt:]...)...)

	ranks := make(map[string]int, len(day))
	for i, t := range day {
		ranks[t.ID] = i
	}

	out := s.Clone()
	for i, t := range out.Tasks {
		if rank, ok := ranks[t.ID]; ok {
			r := rank
			out.Tasks[i].Order = &r
		}
	}
	out.SortBy = model.SortManual
	return out
}
