// Package normalize repairs arbitrary client-submitted documents into a
// canonical planner state. Every function here is total: garbage in, a valid
// document out.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"dayplan/internal/model"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidColor reports whether s is a 6-hex-digit color like "#1a2b3c".
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// Normalize parses raw JSON and repairs it into a valid planner state. A nil,
// empty, or malformed payload yields the default document.
func Normalize(raw []byte) model.PlannerState {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return model.DefaultState()
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return model.DefaultState()
	}
	return Document(doc)
}

// State re-canonicalizes an already typed document. Used defensively before
// every save and after every load.
func State(s model.PlannerState) model.PlannerState {
	raw, err := json.Marshal(s)
	if err != nil {
		return model.DefaultState()
	}
	return Normalize(raw)
}

// Document repairs a decoded JSON object into a valid planner state,
// applying every defaulting rule in one pass.
func Document(doc map[string]any) model.PlannerState {
	out := model.PlannerState{}
	out.Categories = normalizeCategories(doc["categories"])
	out.CategoryColors = normalizeColors(doc["categoryColors"], out.Categories)
	out.Tasks = normalizeTasks(doc["tasks"], out.Categories)
	out.SelectedDate = normalizeDate(doc["selectedDate"])
	out.SortBy = normalizeSortBy(doc["sortBy"])
	out.PomodoroTimers = normalizeTimers(doc["pomodoroTimers"])
	return out
}

// normalizeCategories trims, drops empties, deduplicates preserving first
// occurrence, and forces "General" to the front when absent.
func normalizeCategories(v any) []string {
	items, _ := v.([]any)
	seen := map[string]bool{}
	var cats []string
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cats = append(cats, name)
	}
	if !seen[model.GeneralCategory] {
		cats = append([]string{model.GeneralCategory}, cats...)
	}
	return cats
}

// normalizeColors keeps well-formed entries and guarantees every category a
// color.
func normalizeColors(v any, categories []string) map[string]string {
	raw, _ := v.(map[string]any)
	colors := make(map[string]string, len(categories))
	for key, val := range raw {
		key = strings.TrimSpace(key)
		color, ok := val.(string)
		if key == "" || !ok || !colorPattern.MatchString(color) {
			continue
		}
		colors[key] = color
	}
	for _, cat := range categories {
		if _, ok := colors[cat]; !ok {
			colors[cat] = model.DefaultColor
		}
	}
	return colors
}

func normalizeTasks(v any, categories []string) []model.Task {
	valid := make(map[string]bool, len(categories))
	for _, c := range categories {
		valid[c] = true
	}

	items, _ := v.([]any)
	tasks := make([]model.Task, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		t := model.Task{
			ID:          asString(raw["id"]),
			Name:        asString(raw["name"]),
			Description: asString(raw["description"]),
			Priority:    asString(raw["priority"]),
			Category:    asString(raw["category"]),
			TaskType:    asString(raw["taskType"]),
			MeetingTime: asString(raw["meetingTime"]),
			Date:        asString(raw["date"]),
			Done:        asBool(raw["done"]),
			Hidden:      asBool(raw["hidden"]),
			CreatedAt:   asInt64(raw["createdAt"]),
		}
		if strings.TrimSpace(t.ID) == "" {
			t.ID = uuid.NewString()
		}
		if !model.ValidPriority(t.Priority) {
			t.Priority = model.PriorityMedium
		}
		if !valid[t.Category] {
			t.Category = model.GeneralCategory
		}
		if !model.ValidTaskType(t.TaskType) {
			t.TaskType = model.TypeWork
		}
		if !model.ValidDate(t.Date) {
			t.Date = model.Today()
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = model.NowMillis()
		}
		if t.Done {
			t.Hidden = true
		}
		if n, ok := asNumber(raw["order"]); ok {
			rank := int(n)
			t.Order = &rank
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func normalizeDate(v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return model.Today()
}

func normalizeSortBy(v any) string {
	if s, ok := v.(string); ok && model.ValidSortMode(s) {
		return s
	}
	return model.SortPriority
}

// normalizeTimers clamps remaining into [0, duration] and never leaves an
// expired timer running.
func normalizeTimers(v any) map[string]model.Timer {
	raw, _ := v.(map[string]any)
	timers := make(map[string]model.Timer, len(raw))
	for key, val := range raw {
		if strings.TrimSpace(key) == "" {
			continue
		}
		entry, ok := val.(map[string]any)
		if !ok {
			continue
		}
		t := model.Timer{
			DurationSeconds:  int(asInt64(entry["durationSeconds"])),
			RemainingSeconds: int(asInt64(entry["remainingSeconds"])),
			IsRunning:        asBool(entry["isRunning"]),
		}
		if t.DurationSeconds <= 0 {
			t.DurationSeconds = model.DefaultTimerSeconds
		}
		if t.RemainingSeconds < 0 {
			t.RemainingSeconds = 0
		}
		if t.RemainingSeconds > t.DurationSeconds {
			t.RemainingSeconds = t.DurationSeconds
		}
		if t.RemainingSeconds == 0 {
			t.IsRunning = false
		}
		timers[key] = t
	}
	return timers
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

func asInt64(v any) int64 {
	n, _ := asNumber(v)
	return int64(n)
}
