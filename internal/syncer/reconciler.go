// Package syncer reconciles local annotations with a remote annotation service.
//
// A run has four strictly sequential phases: authenticate, push, pull and apply.
// Each phase either completes or fails the run; cancellation is only observed between
// phases. Remote rows overwrite local rows with the same key once pulled.
package syncer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/remote"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

// LocalStore is the annotation store the reconciler pushes from and applies into.
type LocalStore interface {
	ListBookmarks() ([]entities.Bookmark, error)
	ListHighlights() ([]entities.Highlight, error)
	ListNotes() ([]entities.Note, error)
	ReplaceBookmarks([]entities.Bookmark) error
	ReplaceHighlights([]entities.Highlight) error
	ReplaceNotes([]entities.Note) error
}

// StatusRecorder persists the outcome of each run.
type StatusRecorder interface {
	SetSyncStatus(status, message string, at time.Time) error
}

// Auditor receives one entry per finished run.
type Auditor interface {
	LogSync(action, description string, metadata map[string]any, err error)
}

type Reconciler struct {
	local     LocalStore
	remote    remote.Service
	recorder  StatusRecorder
	auditor   Auditor
	batchSize int
	now       func() time.Time

	running sync.Mutex
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithRecorder persists status, message and last_sync_at after every run.
func WithRecorder(recorder StatusRecorder) Option {
	return func(r *Reconciler) { r.recorder = recorder }
}

// WithAuditor writes every run to the audit log.
func WithAuditor(auditor Auditor) Option {
	return func(r *Reconciler) { r.auditor = auditor }
}

// WithBatchSize sets how many rows are sent per upsert call.
func WithBatchSize(size int) Option {
	return func(r *Reconciler) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// NewReconciler creates a reconciler. A nil service yields a reconciler that reports
// sync as not configured.
func NewReconciler(local LocalStore, service remote.Service, opts ...Option) *Reconciler {
	r := &Reconciler{
		local:     local,
		remote:    service,
		batchSize: config.DefaultSyncBatchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configured reports whether a remote service is available.
func (r *Reconciler) Configured() bool {
	return r.remote != nil
}

// Sync runs one full reconciliation. It never returns an error; failures are
// described by the Result. Concurrent calls do not overlap: a call made while
// another run is in progress fails immediately.
func (r *Reconciler) Sync(ctx context.Context) Result {
	if !r.Configured() {
		result := failed(PhaseAuthenticate, "%s", remote.ErrNotConfigured.Error())
		r.record(result)
		return result
	}

	if !r.running.TryLock() {
		return failed(PhaseAuthenticate, "sync already in progress")
	}
	defer r.running.Unlock()

	started := r.now()
	result := r.run(ctx)
	result.Duration = r.now().Sub(started)

	if result.OK {
		log.Printf("Sync: %s", result.Summary())
	} else {
		log.Printf("Sync: failed during %s: %s", result.Phase, result.Message)
	}
	r.record(result)
	return result
}

func (r *Reconciler) run(ctx context.Context) Result {
	var result Result

	if res, stop := checkCancelled(ctx, PhaseAuthenticate); stop {
		return res
	}
	userID, err := r.remote.Authenticate(ctx)
	if err != nil {
		return failed(PhaseAuthenticate, "authenticate: %v", err)
	}
	result.UserID = userID

	if res, stop := checkCancelled(ctx, PhasePush); stop {
		res.UserID = userID
		return res
	}
	pushed, res, ok := r.push(ctx, userID)
	result.Pushed = pushed
	if !ok {
		res.UserID, res.Pushed = userID, pushed
		return res
	}

	if res, stop := checkCancelled(ctx, PhasePull); stop {
		res.UserID, res.Pushed = userID, pushed
		return res
	}
	pulled, res, ok := r.pull(ctx, userID)
	if !ok {
		res.UserID, res.Pushed = userID, pushed
		return res
	}

	if res, stop := checkCancelled(ctx, PhaseApply); stop {
		res.UserID, res.Pushed = userID, pushed
		return res
	}
	applied, skipped, res, ok := r.apply(pulled)
	result.Pulled = applied
	result.Skipped = skipped
	if !ok {
		res.UserID, res.Pushed, res.Pulled, res.Skipped = userID, pushed, applied, skipped
		return res
	}

	result.OK = true
	result.Phase = PhaseDone
	return result
}

func checkCancelled(ctx context.Context, next Phase) (Result, bool) {
	if err := ctx.Err(); err != nil {
		res := failed(next, "cancelled before %s: %v", next, err)
		res.Cancelled = true
		return res, true
	}
	return Result{}, false
}

func (r *Reconciler) record(result Result) {
	r.audit(result)
	if r.recorder == nil {
		return
	}
	status := settingsstore.SyncStatusSuccess
	switch {
	case result.Cancelled:
		status = settingsstore.SyncStatusCancelled
	case !result.OK:
		status = settingsstore.SyncStatusFailed
	}
	if err := r.recorder.SetSyncStatus(status, result.Summary(), r.now()); err != nil {
		log.Printf("Sync: failed to record status: %v", err)
	}
}

func (r *Reconciler) audit(result Result) {
	if r.auditor == nil {
		return
	}
	var err error
	if !result.OK {
		err = errors.New(result.Message)
	}
	r.auditor.LogSync("annotation_sync", result.Summary(), map[string]any{
		"phase":     string(result.Phase),
		"cancelled": result.Cancelled,
		"pushed":    result.Pushed.Total(),
		"pulled":    result.Pulled.Total(),
		"skipped":   result.Skipped,
	}, err)
}
