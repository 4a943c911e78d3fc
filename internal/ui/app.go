// Package ui renders the planner day view in the terminal.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/model"
	"dayplan/internal/normalize"
	"dayplan/internal/service"
	"dayplan/internal/timer"
	"dayplan/internal/view"
)

// Store is the persistence boundary the UI operates against. Both the HTTP
// client and the local document service satisfy it.
type Store interface {
	Load(ctx context.Context) (model.PlannerState, error)
	Save(ctx context.Context, state model.PlannerState) error
}

// Input mode
type mode int

const (
	modeList mode = iota
	modeAdd
	modePrompt
)

// What a prompt input is asking for
type promptKind int

const (
	promptDuration promptKind = iota
	promptAddCategory
	promptRemoveCategory
	promptMoveDate
	promptColor
)

type loadedMsg struct {
	state model.PlannerState
	err   error
}

type savedMsg struct{ err error }

type tickMsg time.Time

var typeCycle = []string{model.StatusAll, model.TypeWork, model.TypeLearning, model.TypeMeeting}

var statusCycle = []string{model.StatusAll, model.StatusPending, model.StatusCompleted}

var sortCycle = []string{model.SortPriority, model.SortCategory, model.SortTaskType, model.SortCreatedAt, model.SortManual}

// App is the bubbletea model for the planner client.
type App struct {
	store  Store
	styles *Styles

	state   model.PlannerState
	filters view.Filters
	loaded  bool

	mode    mode
	cursor  int
	status  string
	ticking bool

	form *taskForm

	prompt     textinput.Model
	promptFor  promptKind
	promptID   string
	promptName string

	width  int
	height int
}

// NewApp creates the planner application over the given store.
func NewApp(store Store) *App {
	prompt := textinput.New()
	prompt.CharLimit = 40

	return &App{
		store:   store,
		styles:  NewStyles(),
		state:   model.DefaultState(),
		filters: view.Filters{Type: model.StatusAll, Category: model.StatusAll, Status: model.StatusAll},
		prompt:  prompt,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadCmd()
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		state, err := a.store.Load(ctx)
		return loadedMsg{state: state, err: err}
	}
}

// saveCmd persists a snapshot of the document. Fire-and-forget: a failure
// only surfaces on the status line, the in-memory session keeps going.
func (a *App) saveCmd() tea.Cmd {
	snapshot := a.state.Clone()
	store := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return savedMsg{err: store.Save(ctx, snapshot)}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loadedMsg:
		a.loaded = true
		a.state = msg.state
		if msg.err != nil {
			a.status = "offline: " + msg.err.Error()
		}
		if timer.AnyRunning(a.state.PomodoroTimers) {
			a.ticking = true
			return a, tickCmd()
		}
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.status = "save failed: " + msg.err.Error()
		}
		return a, nil

	case tickMsg:
		if !timer.AnyRunning(a.state.PomodoroTimers) {
			a.ticking = false
			return a, nil
		}
		a.state.PomodoroTimers = timer.Tick(a.state.PomodoroTimers)
		cmds := []tea.Cmd{a.saveCmd()}
		if timer.AnyRunning(a.state.PomodoroTimers) {
			cmds = append(cmds, tickCmd())
		} else {
			a.ticking = false
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch a.mode {
		case modeAdd:
			return a.updateAdd(msg)
		case modePrompt:
			return a.updatePrompt(msg)
		default:
			return a.updateList(msg)
		}
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := a.visible()

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < len(tasks)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "h", "left":
		a.state = a.state.SetSelectedDate(model.ShiftDate(a.state.SelectedDate, -1))
		a.cursor = 0
		return a, a.saveCmd()
	case "l", "right":
		a.state = a.state.SetSelectedDate(model.ShiftDate(a.state.SelectedDate, 1))
		a.cursor = 0
		return a, a.saveCmd()
	case "t":
		a.state = a.state.SetSelectedDate(model.Today())
		a.cursor = 0
		return a, a.saveCmd()

	case " ", "enter":
		if t, ok := a.current(); ok {
			a.state = a.state.ToggleDone(t.ID)
			return a, a.saveCmd()
		}
	case "x":
		if t, ok := a.current(); ok {
			a.state = a.state.Hide(t.ID)
			return a, a.saveCmd()
		}
	case "u":
		if t, ok := a.current(); ok {
			a.state = a.state.Restore(t.ID)
			return a, a.saveCmd()
		}
	case "c":
		if t, ok := a.current(); ok {
			a.state = a.state.CloneTask(t.ID)
			return a, a.saveCmd()
		}
	case "m":
		if t, ok := a.current(); ok {
			return a, a.openPrompt(promptMoveDate, "Move to date (YYYY-MM-DD)", t.ID, a.state.SelectedDate)
		}

	case "K":
		if prev, cur, ok := a.neighbor(-1); ok {
			a.state = view.Reorder(a.state, cur.ID, prev.ID)
			return a, a.saveCmd()
		}
	case "J":
		if next, cur, ok := a.neighbor(1); ok {
			a.state = view.Reorder(a.state, next.ID, cur.ID)
			a.cursor++
			return a, a.saveCmd()
		}

	case "s":
		a.state = a.state.SetSortBy(cycle(sortCycle, a.state.SortBy))
		return a, a.saveCmd()
	case "f":
		a.filters.Type = cycle(typeCycle, a.filters.Type)
		a.cursor = 0
	case "F":
		a.filters.Status = cycle(statusCycle, a.filters.Status)
		a.cursor = 0
	case "g":
		a.filters.Category = cycle(append([]string{model.StatusAll}, a.state.Categories...), a.filters.Category)
		a.cursor = 0
	case "v":
		a.filters.ShowAll = !a.filters.ShowAll
		a.cursor = 0

	case "a":
		a.form = newTaskForm(a.state.SelectedDate, a.state.Categories)
		a.mode = modeAdd
		return a, a.form.Focus()

	case "C":
		return a, a.openPrompt(promptAddCategory, "New category name", "", "")
	case "X":
		return a, a.openPrompt(promptRemoveCategory, "Category to remove", "", "")
	case "#":
		if t, ok := a.current(); ok {
			return a, a.openPrompt(promptColor, "Color for "+t.Category+" (#RRGGBB)", t.Category, a.state.CategoryColors[t.Category])
		}

	case "p":
		if t, ok := a.current(); ok {
			existing, has := a.state.PomodoroTimers[t.ID]
			if !has {
				return a, a.openPrompt(promptDuration, "Timer duration (minutes)", t.ID, strconv.Itoa(timer.DefaultMinutes))
			}
			if existing.IsRunning {
				a.state.PomodoroTimers = timer.Engine{}.Pause(a.state.PomodoroTimers, t.ID)
				return a, a.saveCmd()
			}
			a.state.PomodoroTimers = timer.Engine{}.Start(a.state.PomodoroTimers, t.ID)
			return a, tea.Batch(a.saveCmd(), a.ensureTick())
		}
	case "R":
		if t, ok := a.current(); ok {
			a.state.PomodoroTimers = timer.Engine{}.Reset(a.state.PomodoroTimers, t.ID)
			return a, a.saveCmd()
		}
	}

	a.clampCursor()
	return a, nil
}

func (a *App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.form = nil
		return a, nil
	case "ctrl+s":
		return a.submitForm()
	case "enter":
		if a.form.onLastField() {
			return a.submitForm()
		}
		return a, a.form.Next()
	case "tab", "shift+tab", "ctrl+p", "ctrl+t":
		return a, a.form.Cycle(msg.String())
	}
	return a, a.form.Update(msg)
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	task := a.form.Task()
	if err := service.ValidateNewTask(task); err != nil {
		a.form.err = err.Error()
		return a, nil
	}
	a.state = a.state.AddTask(task)
	a.mode = modeList
	a.form = nil
	a.status = ""
	return a, a.saveCmd()
}

func (a *App) openPrompt(kind promptKind, label, id, initial string) tea.Cmd {
	a.mode = modePrompt
	a.promptFor = kind
	a.promptID = id
	a.promptName = label
	a.prompt.SetValue(initial)
	a.prompt.CursorEnd()
	return a.prompt.Focus()
}

func (a *App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		a.prompt.Blur()
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.prompt.Value())
		a.mode = modeList
		a.prompt.Blur()
		return a.applyPrompt(value)
	}
	var cmd tea.Cmd
	a.prompt, cmd = a.prompt.Update(msg)
	return a, cmd
}

func (a *App) applyPrompt(value string) (tea.Model, tea.Cmd) {
	switch a.promptFor {
	case promptDuration:
		minutes, err := strconv.Atoi(value)
		ok := err == nil
		engine := timer.Engine{RequestDuration: func() (int, bool) { return minutes, ok }}
		a.state.PomodoroTimers = engine.Start(a.state.PomodoroTimers, a.promptID)
		return a, tea.Batch(a.saveCmd(), a.ensureTick())

	case promptAddCategory:
		if value == "" {
			a.status = "category name is required"
			return a, nil
		}
		a.state = a.state.AddCategory(value)
		return a, a.saveCmd()

	case promptRemoveCategory:
		if value == model.GeneralCategory {
			a.status = `"General" cannot be removed`
			return a, nil
		}
		if !a.state.HasCategory(value) {
			a.status = "no such category: " + value
			return a, nil
		}
		if a.filters.Category == value {
			a.filters.Category = model.StatusAll
		}
		a.state = a.state.RemoveCategory(value)
		return a, a.saveCmd()

	case promptMoveDate:
		if !model.ValidDate(value) {
			a.status = "invalid date: " + value
			return a, nil
		}
		a.state = a.state.MoveTask(a.promptID, value)
		return a, a.saveCmd()

	case promptColor:
		if !normalize.ValidColor(value) {
			a.status = "color must look like #1a2b3c"
			return a, nil
		}
		a.state = a.state.SetCategoryColor(a.promptID, value)
		return a, a.saveCmd()
	}
	return a, nil
}

// ensureTick starts the 1-second loop if a timer is running and the loop is
// not already scheduled.
func (a *App) ensureTick() tea.Cmd {
	if a.ticking || !timer.AnyRunning(a.state.PomodoroTimers) {
		return nil
	}
	a.ticking = true
	return tickCmd()
}

// visible flattens the grouped day view into the cursor-addressable row list.
func (a *App) visible() []model.Task {
	var tasks []model.Task
	for _, g := range view.Grouped(a.state, a.filters) {
		tasks = append(tasks, g.Tasks...)
	}
	return tasks
}

func (a *App) current() (model.Task, bool) {
	tasks := a.visible()
	if a.cursor < 0 || a.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[a.cursor], true
}

// neighbor returns the task delta rows away from the cursor plus the current
// task, if both exist.
func (a *App) neighbor(delta int) (model.Task, model.Task, bool) {
	tasks := a.visible()
	other := a.cursor + delta
	if a.cursor < 0 || a.cursor >= len(tasks) || other < 0 || other >= len(tasks) {
		return model.Task{}, model.Task{}, false
	}
	return tasks[other], tasks[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (a *App) View() string {
	if !a.loaded {
		return "loading planner..."
	}
	if a.mode == modeAdd && a.form != nil {
		return a.form.View(a.styles)
	}

	var b strings.Builder
	st := a.styles

	b.WriteString(st.DateTitle.Render(a.state.SelectedDate))
	b.WriteString(st.Muted.Render(fmt.Sprintf("  sort:%s  type:%s  status:%s  category:%s",
		a.state.SortBy, a.filters.Type, a.filters.Status, a.filters.Category)))
	if a.filters.ShowAll {
		b.WriteString(st.Muted.Render("  [showing hidden]"))
	}
	b.WriteString("\n\n")

	groups := view.Grouped(a.state, a.filters)
	if len(groups) == 0 {
		b.WriteString(st.Muted.Render("no tasks for this day"))
		b.WriteString("\n")
	}

	row := 0
	for _, g := range groups {
		b.WriteString(st.CategoryHeader(g.Color).Render(g.Category))
		b.WriteString("\n")
		for _, t := range g.Tasks {
			b.WriteString(a.renderTask(t, row == a.cursor))
			b.WriteString("\n")
			row++
		}
		b.WriteString("\n")
	}

	if a.mode == modePrompt {
		b.WriteString(a.promptName + ": " + a.prompt.View())
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(st.Error.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(st.Help.Render("a:add  space:done  x:hide  u:restore  c:clone  m:move  J/K:reorder  p:timer  R:reset  s:sort  f/F/g:filters  v:hidden  h/l:day  q:quit"))
	return b.String()
}

func (a *App) renderTask(t model.Task, selected bool) string {
	st := a.styles

	check := "[ ]"
	if t.Done {
		check = "[x]"
	}

	var prio string
	switch t.Priority {
	case model.PriorityHigh:
		prio = st.PrioHigh.Render("!!!")
	case model.PriorityMedium:
		prio = st.PrioMed.Render(" !!")
	default:
		prio = st.PrioLow.Render("  !")
	}

	name := t.Name
	if t.Done {
		name = st.TaskDone.Render(name)
	} else if t.Hidden {
		name = st.Hidden.Render(name)
	}

	line := fmt.Sprintf("  %s %s %s", check, prio, name)
	if t.TaskType == model.TypeMeeting && t.MeetingTime != "" {
		line += st.Muted.Render(" @ " + t.MeetingTime)
	}
	line += st.Muted.Render(" · " + t.TaskType)

	if tm, ok := a.state.PomodoroTimers[t.ID]; ok {
		label := fmt.Sprintf(" %02d:%02d %d%%", tm.RemainingSeconds/60, tm.RemainingSeconds%60, timer.Progress(tm))
		switch {
		case tm.Expired():
			line += st.Expired.Render(" ⏰ done")
		case tm.IsRunning:
			line += st.Timer.Render(" ▶" + label)
		default:
			line += st.Muted.Render(" ⏸" + label)
		}
	}

	if selected {
		return st.Selected.Render(">") + line[1:]
	}
	return line
}
