package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"dayplan/internal/model"
)

func checkInvariants(t *testing.T, s model.PlannerState) {
	t.Helper()

	if !s.HasCategory(model.GeneralCategory) {
		t.Errorf("General missing from categories: %v", s.Categories)
	}
	for _, cat := range s.Categories {
		color, ok := s.CategoryColors[cat]
		if !ok {
			t.Errorf("category %q has no color", cat)
		} else if !ValidColor(color) {
			t.Errorf("category %q has invalid color %q", cat, color)
		}
	}
	for _, task := range s.Tasks {
		if !s.HasCategory(task.Category) {
			t.Errorf("task %q references unknown category %q", task.ID, task.Category)
		}
		if task.ID == "" {
			t.Error("task with empty id survived normalization")
		}
		if task.Done && !task.Hidden {
			t.Errorf("task %q is done but not hidden", task.ID)
		}
	}
	for id, tm := range s.PomodoroTimers {
		if tm.RemainingSeconds < 0 || tm.RemainingSeconds > tm.DurationSeconds {
			t.Errorf("timer %q out of range: %+v", id, tm)
		}
		if tm.RemainingSeconds == 0 && tm.IsRunning {
			t.Errorf("timer %q expired but running", id)
		}
	}
}

func TestNormalizeTotality(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"null", "null"},
		{"array", "[1,2,3]"},
		{"string", `"hello"`},
		{"number", "42"},
		{"malformed", `{"tasks": [`},
		{"empty object", "{}"},
		{"wrong field types", `{"tasks": 5, "categories": "x", "categoryColors": [], "pomodoroTimers": 7}`},
		{"mixed garbage", `{"tasks": [1, "two", null, {}], "categories": [true, "  ", "Work", "Work"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Normalize([]byte(tt.raw))
			checkInvariants(t, state)
		})
	}
}

func TestNormalizeIdempotence(t *testing.T) {
	samples := []string{
		"",
		"{}",
		`{"tasks": [{}, {"name": "a", "done": true}], "categories": [" Work ", "Work", "Home"]}`,
		`{"categoryColors": {"General": "#abcdef", "Home": "nope", " ": "#123456"},
		  "categories": ["Home"],
		  "pomodoroTimers": {"t1": {"remainingSeconds": 900, "durationSeconds": 100, "isRunning": true},
		                     "t2": {"remainingSeconds": -5, "isRunning": true}},
		  "selectedDate": "2026-03-14", "sortBy": "manual"}`,
	}

	for _, raw := range samples {
		first := Normalize([]byte(raw))
		second := State(first)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("normalize not idempotent for %q:\nfirst:  %+v\nsecond: %+v", raw, first, second)
		}
	}
}

func TestNormalizeCategories(t *testing.T) {
	state := Normalize([]byte(`{"categories": ["  Work ", "Home", "Work", "", 7, "Home"]}`))

	want := []string{"General", "Work", "Home"}
	if !reflect.DeepEqual(state.Categories, want) {
		t.Errorf("categories: got %v, want %v", state.Categories, want)
	}
}

func TestNormalizeKeepsGeneralFirstWhenAbsent(t *testing.T) {
	state := Normalize([]byte(`{"categories": ["Zeta"]}`))
	if state.Categories[0] != model.GeneralCategory {
		t.Errorf("expected General first, got %v", state.Categories)
	}
}

func TestNormalizeColors(t *testing.T) {
	raw := `{"categories": ["Work"],
	         "categoryColors": {"Work": "#A1b2C3", "General": "red", "  ": "#123456"}}`
	state := Normalize([]byte(raw))

	if got := state.CategoryColors["Work"]; got != "#A1b2C3" {
		t.Errorf("Work color: got %q", got)
	}
	if got := state.CategoryColors[model.GeneralCategory]; got != model.DefaultColor {
		t.Errorf("General color: got %q, want default %q", got, model.DefaultColor)
	}
}

func TestNormalizeTaskDefaults(t *testing.T) {
	state := Normalize([]byte(`{"tasks": [{}]}`))
	if len(state.Tasks) != 1 {
		t.Fatalf("tasks: got %d, want 1", len(state.Tasks))
	}

	task := state.Tasks[0]
	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("priority: got %q, want Medium", task.Priority)
	}
	if task.Category != model.GeneralCategory {
		t.Errorf("category: got %q, want General", task.Category)
	}
	if task.TaskType != model.TypeWork {
		t.Errorf("taskType: got %q, want Work", task.TaskType)
	}
	if task.Date != model.Today() {
		t.Errorf("date: got %q, want today", task.Date)
	}
	if task.CreatedAt == 0 {
		t.Error("expected createdAt to default to current time")
	}
	if task.Order != nil {
		t.Errorf("order: got %v, want nil", *task.Order)
	}
}

func TestNormalizeTaskCategoryFallback(t *testing.T) {
	raw := `{"categories": ["Work"], "tasks": [{"category": "Gone"}, {"category": "Work"}]}`
	state := Normalize([]byte(raw))

	if state.Tasks[0].Category != model.GeneralCategory {
		t.Errorf("unknown category: got %q, want General", state.Tasks[0].Category)
	}
	if state.Tasks[1].Category != "Work" {
		t.Errorf("valid category: got %q, want Work", state.Tasks[1].Category)
	}
}

func TestNormalizeDoneImpliesHidden(t *testing.T) {
	state := Normalize([]byte(`{"tasks": [{"name": "a", "done": true, "hidden": false}]}`))
	if !state.Tasks[0].Hidden {
		t.Error("done task must be hidden")
	}
}

func TestNormalizeTimers(t *testing.T) {
	raw := `{"pomodoroTimers": {
		"over":    {"remainingSeconds": 5000, "durationSeconds": 100, "isRunning": true},
		"under":   {"remainingSeconds": -3, "durationSeconds": 60, "isRunning": true},
		"nodur":   {"remainingSeconds": 10},
		"":        {"remainingSeconds": 1},
		"notobj":  5
	}}`
	state := Normalize([]byte(raw))

	if got := state.PomodoroTimers["over"]; got.RemainingSeconds != 100 || !got.IsRunning {
		t.Errorf("over: got %+v", got)
	}
	if got := state.PomodoroTimers["under"]; got.RemainingSeconds != 0 || got.IsRunning {
		t.Errorf("under: got %+v", got)
	}
	if got := state.PomodoroTimers["nodur"]; got.DurationSeconds != model.DefaultTimerSeconds {
		t.Errorf("nodur: got %+v", got)
	}
	if _, ok := state.PomodoroTimers[""]; ok {
		t.Error("blank timer key kept")
	}
	if _, ok := state.PomodoroTimers["notobj"]; ok {
		t.Error("non-object timer kept")
	}
}

func TestNormalizeSelectedDateAndSort(t *testing.T) {
	state := Normalize([]byte(`{"selectedDate": "", "sortBy": "bogus"}`))
	if state.SelectedDate != model.Today() {
		t.Errorf("selectedDate: got %q, want today", state.SelectedDate)
	}
	if state.SortBy != model.SortPriority {
		t.Errorf("sortBy: got %q, want priority", state.SortBy)
	}

	state = Normalize([]byte(`{"selectedDate": "2026-01-02", "sortBy": "manual"}`))
	if state.SelectedDate != "2026-01-02" || state.SortBy != model.SortManual {
		t.Errorf("explicit values lost: %q %q", state.SelectedDate, state.SortBy)
	}
}

func TestNormalizeRoundTripsThroughJSON(t *testing.T) {
	state := Normalize([]byte(`{"tasks": [{"name": "a", "order": 3}]}`))
	payload, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again := Normalize(payload)
	if !reflect.DeepEqual(state, again) {
		t.Errorf("wire round trip changed state:\nbefore: %+v\nafter:  %+v", state, again)
	}
}
