package syncer

import (
	"fmt"
	"time"
)

// Phase names a step of a sync run.
type Phase string

const (
	PhaseAuthenticate Phase = "authenticate"
	PhasePush         Phase = "push"
	PhasePull         Phase = "pull"
	PhaseApply        Phase = "apply"
	PhaseDone         Phase = "done"
)

// Counts holds per-kind row counts.
type Counts struct {
	Bookmarks  int `json:"bookmarks"`
	Highlights int `json:"highlights"`
	Notes      int `json:"notes"`
}

func (c Counts) Total() int {
	return c.Bookmarks + c.Highlights + c.Notes
}

// Result is the terminal outcome of one sync run. A failed run names the phase
// that failed; writes from earlier phases are not rolled back.
type Result struct {
	OK        bool          `json:"ok"`
	Phase     Phase         `json:"phase"`
	Message   string        `json:"message,omitempty"`
	Cancelled bool          `json:"cancelled,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	Pushed    Counts        `json:"pushed"`
	Pulled    Counts        `json:"pulled"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
}

func (r Result) Summary() string {
	if !r.OK {
		return r.Message
	}
	summary := fmt.Sprintf("Pushed %d and pulled %d annotations in %v",
		r.Pushed.Total(), r.Pulled.Total(), r.Duration.Round(time.Millisecond))
	if r.Skipped > 0 {
		summary += fmt.Sprintf(" (%d incomplete remote rows skipped)", r.Skipped)
	}
	return summary
}

func failed(phase Phase, format string, args ...any) Result {
	return Result{OK: false, Phase: phase, Message: fmt.Sprintf(format, args...)}
}
