package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"dayplan/internal/model"
	"dayplan/internal/normalize"
	"dayplan/internal/repository"
)

// PlannerService is the persistence façade over the document store. Every
// state that passes through it is normalized: on the way in before a save,
// and again defensively on the way out of a load.
type PlannerService struct {
	repo   *repository.DocumentRepository
	logger *log.Logger
}

func NewPlannerService(repo *repository.DocumentRepository, logger *log.Logger) *PlannerService {
	return &PlannerService{repo: repo, logger: logger}
}

// Load returns the stored planner state. A missing document is seeded with
// the default state; a corrupted one is repaired in place and the repair
// written back. Only storage failures surface as errors.
func (s *PlannerService) Load(ctx context.Context) (model.PlannerState, error) {
	payload, err := s.repo.Load(ctx)
	if err != nil {
		return model.DefaultState(), err
	}

	state := normalize.Normalize(payload)
	canonical, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("encode state: %w", err)
	}
	if !bytes.Equal(canonical, payload) {
		// Repair write-back; a failure here only costs us the repair.
		if err := s.repo.Save(ctx, canonical); err != nil {
			s.logger.Warn("state repair write-back failed", "err", err)
		}
	}
	return state, nil
}

// Save normalizes and persists the state.
func (s *PlannerService) Save(ctx context.Context, state model.PlannerState) error {
	canonical := normalize.State(state)
	payload, err := json.Marshal(canonical)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.repo.Save(ctx, payload); err != nil {
		return err
	}
	return nil
}

// WriteSnapshot dumps the current document as indented JSON to path.
func (s *PlannerService) WriteSnapshot(ctx context.Context, path string) error {
	state, err := s.Load(ctx)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot %q: %w", path, err)
	}
	return nil
}

// ValidateNewTask rejects task input that must not reach the document:
// nameless tasks and meetings without a meeting time.
func ValidateNewTask(t model.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("task name is required")
	}
	if t.TaskType == model.TypeMeeting && strings.TrimSpace(t.MeetingTime) == "" {
		return errors.New("meeting time is required for meetings")
	}
	return nil
}
