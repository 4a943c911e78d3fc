package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/model"
)

// Form field order
const (
	fieldName = iota
	fieldDescription
	fieldCategory
	fieldDate
	fieldMeetingTime
	fieldCount
)

var priorities = []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}

var taskTypes = []string{model.TypeWork, model.TypeLearning, model.TypeMeeting}

// taskForm collects input for a new task.
type taskForm struct {
	inputs     []textinput.Model
	focus      int
	prio       int
	ttype      int
	categories []string
	err        string
}

func newTaskForm(date string, categories []string) *taskForm {
	f := &taskForm{
		inputs:     make([]textinput.Model, fieldCount),
		prio:       1, // Medium
		categories: categories,
	}

	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[fieldName].Placeholder = "Task name"
	f.inputs[fieldDescription].Placeholder = "Description"
	f.inputs[fieldCategory].Placeholder = model.GeneralCategory
	f.inputs[fieldDate].SetValue(date)
	f.inputs[fieldMeetingTime].Placeholder = "09:30 AM"

	return f
}

func (f *taskForm) Focus() tea.Cmd {
	return f.inputs[f.focus].Focus()
}

func (f *taskForm) onLastField() bool {
	return f.focus == fieldCount-1
}

// Next advances focus to the following field.
func (f *taskForm) Next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// Cycle handles the non-text keys: field navigation and the priority/type
// carousels.
func (f *taskForm) Cycle(key string) tea.Cmd {
	switch key {
	case "tab":
		return f.Next()
	case "shift+tab":
		return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	case "ctrl+p":
		f.prio = (f.prio + 1) % len(priorities)
	case "ctrl+t":
		f.ttype = (f.ttype + 1) % len(taskTypes)
	}
	return nil
}

func (f *taskForm) setFocus(idx int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = idx
	return f.inputs[f.focus].Focus()
}

func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Task builds the new task from the form fields. Unknown categories and bad
// dates are left for the document transforms to default.
func (f *taskForm) Task() model.Task {
	category := strings.TrimSpace(f.inputs[fieldCategory].Value())
	if category == "" {
		category = model.GeneralCategory
	}
	return model.Task{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Priority:    priorities[f.prio],
		TaskType:    taskTypes[f.ttype],
		Category:    category,
		Date:        strings.TrimSpace(f.inputs[fieldDate].Value()),
		MeetingTime: strings.TrimSpace(f.inputs[fieldMeetingTime].Value()),
	}
}

func (f *taskForm) View(st *Styles) string {
	var b strings.Builder
	b.WriteString(st.FormTitle.Render("New task"))
	b.WriteString("\n\n")

	labels := []string{"Name", "Description", "Category", "Date", "Meeting time"}
	for i, in := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-13s %s\n", marker, labels[i], in.View()))
	}

	b.WriteString(fmt.Sprintf("\n  Priority: %s (ctrl+p)   Type: %s (ctrl+t)\n", priorities[f.prio], taskTypes[f.ttype]))
	b.WriteString(st.Muted.Render("  Categories: " + strings.Join(f.categories, ", ")))
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString("\n" + st.Error.Render(f.err) + "\n")
	}
	b.WriteString("\n" + st.Help.Render("enter/tab:next field  ctrl+s:save  esc:cancel"))
	return b.String()
}
