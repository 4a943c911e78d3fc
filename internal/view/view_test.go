package view

import (
	"reflect"
	"sort"
	"testing"

	"dayplan/internal/model"
)

const day = "2026-04-01"

func stateWith(tasks ...model.Task) model.PlannerState {
	s := model.DefaultState()
	s.SelectedDate = day
	s.Tasks = tasks
	return s
}

func task(id, name string) model.Task {
	return model.Task{
		ID:       id,
		Name:     name,
		Priority: model.PriorityMedium,
		Category: model.GeneralCategory,
		TaskType: model.TypeWork,
		Date:     day,
	}
}

func names(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func TestPrioritySortScenario(t *testing.T) {
	a := task("1", "B")
	a.Priority = model.PriorityLow
	b := task("2", "A")
	b.Priority = model.PriorityHigh
	c := task("3", "C")
	c.Priority = model.PriorityMedium

	s := stateWith(a, b, c)
	s.SortBy = model.SortPriority

	got := names(Visible(s, Filters{}))
	want := []string{"A", "C", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("priority sort: got %v, want %v", got, want)
	}
}

func TestPriorityTieBreakMeetings(t *testing.T) {
	early := task("1", "zz-early")
	early.TaskType = model.TypeMeeting
	early.MeetingTime = "9:30 AM"
	late := task("2", "aa-late")
	late.TaskType = model.TypeMeeting
	late.MeetingTime = "02:00 PM"
	broken := task("3", "aa-broken")
	broken.TaskType = model.TypeMeeting
	broken.MeetingTime = "noonish"

	s := stateWith(broken, late, early)
	s.SortBy = model.SortPriority

	got := names(Visible(s, Filters{}))
	// Parseable meeting times win over names; unparseable sorts last.
	want := []string{"zz-early", "aa-late", "aa-broken"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("meeting tie-break: got %v, want %v", got, want)
	}
}

func TestPriorityTieBreakNamesForNonMeetings(t *testing.T) {
	x := task("1", "beta")
	y := task("2", "alpha")

	got := names(Visible(stateWith(x, y), Filters{}))
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("name tie-break: got %v, want %v", got, want)
	}
}

func TestHiddenFilterScenario(t *testing.T) {
	a := task("1", "visible")
	b := task("2", "hidden-1")
	b.Hidden = true
	c := task("3", "hidden-2")
	c.Hidden = true

	s := stateWith(a, b, c)

	got := Visible(s, Filters{ShowAll: false})
	if len(got) != 1 || got[0].Name != "visible" {
		t.Errorf("hidden filter: got %v", names(got))
	}

	all := Visible(s, Filters{ShowAll: true})
	if len(all) != 3 {
		t.Errorf("show all: got %d tasks, want 3", len(all))
	}
}

func TestDateFilter(t *testing.T) {
	a := task("1", "today")
	b := task("2", "tomorrow")
	b.Date = "2026-04-02"

	got := Visible(stateWith(a, b), Filters{})
	if len(got) != 1 || got[0].Name != "today" {
		t.Errorf("date filter: got %v", names(got))
	}
}

func TestTypeCategoryStatusFilters(t *testing.T) {
	work := task("1", "work")
	study := task("2", "study")
	study.TaskType = model.TypeLearning
	done := task("3", "done")
	done.Done = true

	s := stateWith(work, study, done)

	if got := names(Visible(s, Filters{Type: model.TypeLearning})); !reflect.DeepEqual(got, []string{"study"}) {
		t.Errorf("type filter: got %v", got)
	}
	if got := names(Visible(s, Filters{ShowAll: true, Status: model.StatusCompleted})); !reflect.DeepEqual(got, []string{"done"}) {
		t.Errorf("completed filter: got %v", got)
	}
	if got := Visible(s, Filters{ShowAll: true, Status: model.StatusPending}); len(got) != 2 {
		t.Errorf("pending filter: got %v", names(got))
	}
	if got := Visible(s, Filters{Category: "Nope"}); len(got) != 0 {
		t.Errorf("category filter: got %v", names(got))
	}
}

func TestCreatedAtSortNewestFirst(t *testing.T) {
	old := task("1", "old")
	old.CreatedAt = 100
	fresh := task("2", "fresh")
	fresh.CreatedAt = 200
	missing := task("3", "missing")

	s := stateWith(old, missing, fresh)
	s.SortBy = model.SortCreatedAt

	got := names(Visible(s, Filters{}))
	want := []string{"fresh", "old", "missing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("createdAt sort: got %v, want %v", got, want)
	}
}

func TestManualSort(t *testing.T) {
	rank := func(n int) *int { return &n }

	a := task("1", "third")
	a.Order = rank(2)
	b := task("2", "first")
	b.Order = rank(0)
	c := task("3", "implicit") // no rank: takes its filtered index (2)

	s := stateWith(a, b, c)
	s.SortBy = model.SortManual

	got := names(Visible(s, Filters{}))
	want := []string{"first", "third", "implicit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("manual sort: got %v, want %v", got, want)
	}
}

func TestGroupedAlphabetical(t *testing.T) {
	s := stateWith(task("1", "a"), task("2", "b"), task("3", "c"))
	s.Categories = []string{model.GeneralCategory, "Beta", "Alpha"}
	s.CategoryColors = map[string]string{
		model.GeneralCategory: model.DefaultColor,
		"Beta":                "#111111",
		"Alpha":               "#222222",
	}
	s.Tasks[1].Category = "Beta"
	s.Tasks[2].Category = "Alpha"

	groups := Grouped(s, Filters{})
	var order []string
	for _, g := range groups {
		order = append(order, g.Category)
	}
	want := []string{"Alpha", "Beta", "General"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("group order: got %v, want %v", order, want)
	}
	if groups[0].Color != "#222222" {
		t.Errorf("Alpha color: got %q", groups[0].Color)
	}
}

func TestReorderIsPermutationWithContiguousRanks(t *testing.T) {
	s := stateWith(task("a", "a"), task("b", "b"), task("c", "c"), task("d", "d"))
	other := task("e", "other-day")
	other.Date = "2026-04-09"
	s.Tasks = append(s.Tasks, other)

	out := Reorder(s, "d", "b")

	if out.SortBy != model.SortManual {
		t.Errorf("sortBy: got %q, want manual", out.SortBy)
	}

	var ranks []int
	var dayIDs []string
	for _, tk := range out.Tasks {
		if tk.Date != day {
			if tk.Order != nil {
				t.Errorf("other-day task %q got rank %d", tk.ID, *tk.Order)
			}
			continue
		}
		dayIDs = append(dayIDs, tk.ID)
		if tk.Order == nil {
			t.Fatalf("day task %q has no rank", tk.ID)
		}
		ranks = append(ranks, *tk.Order)
	}

	sort.Strings(dayIDs)
	if !reflect.DeepEqual(dayIDs, []string{"a", "b", "c", "d"}) {
		t.Errorf("task ids changed: %v", dayIDs)
	}
	sort.Ints(ranks)
	if !reflect.DeepEqual(ranks, []int{0, 1, 2, 3}) {
		t.Errorf("ranks not contiguous: %v", ranks)
	}

	got := names(Visible(out, Filters{}))
	want := []string{"a", "d", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reorder result: got %v, want %v", got, want)
	}
}

func TestReorderNoops(t *testing.T) {
	s := stateWith(task("a", "a"), task("b", "b"))
	s.SortBy = model.SortPriority

	for _, tc := range []struct {
		name     string
		src, tgt string
	}{
		{"same id", "a", "a"},
		{"unknown source", "zz", "a"},
		{"unknown target", "a", "zz"},
	} {
		out := Reorder(s, tc.src, tc.tgt)
		if out.SortBy != model.SortPriority {
			t.Errorf("%s: sort mode changed", tc.name)
		}
		if !reflect.DeepEqual(out.Tasks, s.Tasks) {
			t.Errorf("%s: tasks changed", tc.name)
		}
	}
}
