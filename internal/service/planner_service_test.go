package service

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplan/internal/model"
	"dayplan/internal/repository"
)

func newTestService(t *testing.T) *PlannerService {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	repo := repository.NewDocumentRepository(db, model.DocumentKey)
	return NewPlannerService(repo, log.New(io.Discard))
}

func TestLoadSeedsDefaultDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.True(t, state.HasCategory(model.GeneralCategory))
	assert.Empty(t, state.Tasks)
	assert.Equal(t, model.SortPriority, state.SortBy)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state := model.DefaultState()
	state = state.AddCategory("Deep Work")
	state = state.AddTask(model.Task{Name: "write draft", Category: "Deep Work", Priority: model.PriorityHigh})

	require.NoError(t, svc.Save(ctx, state))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, "write draft", loaded.Tasks[0].Name)
	assert.Equal(t, "Deep Work", loaded.Tasks[0].Category)
	assert.True(t, loaded.HasCategory("Deep Work"))
}

func TestSaveNormalizesBeforePersisting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A state violating the invariants: done-but-visible task, category the
	// document does not know about.
	state := model.PlannerState{
		Tasks: []model.Task{
			{ID: "t1", Name: "x", Category: "Ghost", Done: true, Hidden: false,
				Priority: model.PriorityLow, TaskType: model.TypeWork, Date: "2026-05-05", CreatedAt: 1},
		},
		Categories:     []string{"General"},
		CategoryColors: map[string]string{},
		SelectedDate:   "2026-05-05",
		SortBy:         model.SortManual,
		PomodoroTimers: map[string]model.Timer{},
	}
	require.NoError(t, svc.Save(ctx, state))

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	assert.Equal(t, model.GeneralCategory, loaded.Tasks[0].Category)
	assert.True(t, loaded.Tasks[0].Hidden, "done task must come back hidden")
	assert.Equal(t, model.DefaultColor, loaded.CategoryColors[model.GeneralCategory])
}

func TestWriteSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	require.NoError(t, svc.WriteSnapshot(ctx, path))
	assert.FileExists(t, path)
}

func TestValidateNewTask(t *testing.T) {
	tests := []struct {
		name    string
		task    model.Task
		wantErr bool
	}{
		{"valid work task", model.Task{Name: "x", TaskType: model.TypeWork}, false},
		{"blank name", model.Task{Name: "   ", TaskType: model.TypeWork}, true},
		{"meeting without time", model.Task{Name: "standup", TaskType: model.TypeMeeting}, true},
		{"meeting with time", model.Task{Name: "standup", TaskType: model.TypeMeeting, MeetingTime: "9:30 AM"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewTask(tt.task)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
