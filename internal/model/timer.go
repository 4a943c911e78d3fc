package model

// DefaultTimerSeconds is the countdown length used when the user gives no
// duration (30 minutes).
const DefaultTimerSeconds = 30 * 60

// Timer is a per-task countdown. A timer with RemainingSeconds at zero is
// expired; IsRunning is never true for an expired timer.
type Timer struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	DurationSeconds  int  `json:"durationSeconds"`
	IsRunning        bool `json:"isRunning"`
}

// Expired reports whether the countdown has reached zero.
func (t Timer) Expired() bool {
	return t.RemainingSeconds <= 0
}
