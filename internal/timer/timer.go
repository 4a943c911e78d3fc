// Package timer implements the per-task countdown state machine. Timers live
// in the planner document as a map from task id to timer; every transition
// here returns a fresh map so a tick lands as one batched state update.
package timer

import "dayplan/internal/model"

// DefaultMinutes is used when the duration prompt yields nothing usable.
const DefaultMinutes = 30

// Engine applies countdown transitions. RequestDuration is the injected
// prompt for a new timer's length in minutes; a nil engine-level prompt or a
// declined prompt falls back to DefaultMinutes.
type Engine struct {
	RequestDuration func() (minutes int, ok bool)
}

func clone(timers map[string]model.Timer) map[string]model.Timer {
	out := make(map[string]model.Timer, len(timers))
	for k, v := range timers {
		out[k] = v
	}
	return out
}

// Start begins or resumes the countdown for a task. Starting an expired timer
// is a no-op; it stays expired until reset.
func (e Engine) Start(timers map[string]model.Timer, id string) map[string]model.Timer {
	out := clone(timers)
	if t, ok := out[id]; ok {
		if t.RemainingSeconds > 0 {
			t.IsRunning = true
			out[id] = t
		}
		return out
	}

	minutes := 0
	if e.RequestDuration != nil {
		if m, ok := e.RequestDuration(); ok {
			minutes = m
		}
	}
	if minutes <= 0 {
		minutes = DefaultMinutes
	}
	seconds := minutes * 60
	out[id] = model.Timer{
		RemainingSeconds: seconds,
		DurationSeconds:  seconds,
		IsRunning:        true,
	}
	return out
}

// Pause halts the countdown, preserving remaining time. Pausing a task with
// no timer parks a full-length default timer on it.
func (e Engine) Pause(timers map[string]model.Timer, id string) map[string]model.Timer {
	out := clone(timers)
	t, ok := out[id]
	if !ok {
		t = model.Timer{
			RemainingSeconds: model.DefaultTimerSeconds,
			DurationSeconds:  model.DefaultTimerSeconds,
		}
	}
	t.IsRunning = false
	out[id] = t
	return out
}

// Reset removes the timer entirely, back to the never-started state.
func (e Engine) Reset(timers map[string]model.Timer, id string) map[string]model.Timer {
	out := clone(timers)
	delete(out, id)
	return out
}

// Tick advances every running timer by one second, clamping at zero and
// forcing expired timers off. All decrements land in the one returned map.
func Tick(timers map[string]model.Timer) map[string]model.Timer {
	out := clone(timers)
	for id, t := range out {
		if !t.IsRunning {
			continue
		}
		t.RemainingSeconds--
		if t.RemainingSeconds <= 0 {
			t.RemainingSeconds = 0
			t.IsRunning = false
		}
		out[id] = t
	}
	return out
}

// AnyRunning reports whether at least one timer is counting down, which is
// what gates the 1-second tick loop.
func AnyRunning(timers map[string]model.Timer) bool {
	for _, t := range timers {
		if t.IsRunning {
			return true
		}
	}
	return false
}

// Progress returns the elapsed percentage for display, rounded to the
// nearest whole percent.
func Progress(t model.Timer) int {
	dur := t.DurationSeconds
	if dur < 1 {
		dur = 1
	}
	return int(float64(dur-t.RemainingSeconds)/float64(dur)*100 + 0.5)
}
