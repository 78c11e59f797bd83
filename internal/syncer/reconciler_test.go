package syncer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/dailyword/internal/database"
	"github.com/mrlokans/dailyword/internal/database/annotations"
	"github.com/mrlokans/dailyword/internal/database/state"
	"github.com/mrlokans/dailyword/internal/entities"
	"github.com/mrlokans/dailyword/internal/remote"
	"github.com/mrlokans/dailyword/internal/remote/memory"
	"github.com/mrlokans/dailyword/internal/settingsstore"
)

type fixture struct {
	repo     *annotations.Repository
	settings *settingsstore.SettingsStore
	remote   *memory.Service
}

func setupFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return fixture{
		repo:     annotations.NewRepository(db.DB),
		settings: settingsstore.New(state.NewRepository(db.DB), settingsstore.Defaults{}),
		remote:   memory.NewWithUser("user-1"),
	}
}

func (f fixture) reconciler(opts ...Option) *Reconciler {
	opts = append([]Option{WithRecorder(f.settings)}, opts...)
	return NewReconciler(f.repo, f.remote, opts...)
}

func ref(translation string, index int) entities.VerseRef {
	return entities.VerseRef{Translation: translation, VerseIndex: index, Book: 1, Chapter: 1, Verse: index}
}

// snapshot captures the annotation set by key, ignoring timestamps.
type snapshot struct {
	Bookmarks  []string
	Highlights map[string]string
	Notes      map[string]string
}

func takeSnapshot(t *testing.T, repo *annotations.Repository) snapshot {
	t.Helper()
	s := snapshot{Highlights: map[string]string{}, Notes: map[string]string{}}

	bookmarks, err := repo.ListBookmarks()
	require.NoError(t, err)
	for _, b := range bookmarks {
		s.Bookmarks = append(s.Bookmarks, key(b.Translation, b.VerseIndex))
	}
	sort.Strings(s.Bookmarks)
	highlights, err := repo.ListHighlights()
	require.NoError(t, err)
	for _, h := range highlights {
		s.Highlights[key(h.Translation, h.VerseIndex)] = h.Color
	}
	notes, err := repo.ListNotes()
	require.NoError(t, err)
	for _, n := range notes {
		s.Notes[key(n.Translation, n.VerseIndex)] = n.Text
	}
	return s
}

func key(translation string, index int) string {
	return fmt.Sprintf("%s:%d", translation, index)
}

func seedLocal(t *testing.T, repo *annotations.Repository) {
	t.Helper()
	_, err := repo.ToggleBookmark(ref("KJV", 1))
	require.NoError(t, err)
	_, err = repo.ToggleBookmark(ref("WEB", 4))
	require.NoError(t, err)
	_, err = repo.SetHighlight(ref("KJV", 2), "#ABC")
	require.NoError(t, err)
	_, err = repo.SaveNote(ref("KJV", 3), "  remember  ")
	require.NoError(t, err)
}

func TestReconciler_PushThenPullRoundTrip(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)
	before := takeSnapshot(t, f.repo)

	result := f.reconciler().Sync(context.Background())
	require.True(t, result.OK, result.Message)
	assert.Equal(t, PhaseDone, result.Phase)
	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, Counts{Bookmarks: 2, Highlights: 1, Notes: 1}, result.Pushed)
	assert.Equal(t, Counts{Bookmarks: 2, Highlights: 1, Notes: 1}, result.Pulled)
	assert.Len(t, f.remote.Rows(remote.TableBookmarks), 2)

	require.NoError(t, f.repo.Clear())
	assert.Empty(t, takeSnapshot(t, f.repo).Bookmarks)

	result = f.reconciler().Sync(context.Background())
	require.True(t, result.OK, result.Message)
	assert.Equal(t, Counts{}, result.Pushed)
	assert.Equal(t, before, takeSnapshot(t, f.repo))
}

func TestReconciler_MergesRemoteOnlyRows(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)

	// first sync publishes local rows
	require.True(t, f.reconciler().Sync(context.Background()).OK)

	// another device changes the highlight and adds a note
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f.remote.Put(remote.TableHighlights, remote.Row{UserID: "user-1", Translation: "KJV", VerseIndex: 2, Book: 1, Chapter: 1, Verse: 2, Color: "#000", CreatedAt: &later})
	f.remote.Put(remote.TableNotes, remote.Row{UserID: "user-1", Translation: "ASV", VerseIndex: 7, Book: 1, Chapter: 1, Verse: 7, Text: "from phone", CreatedAt: &later, UpdatedAt: &later})

	// local edit in the meantime is pushed first, then the pull brings back what the remote holds
	_, err := f.repo.SetHighlight(ref("KJV", 5), "#FFF")
	require.NoError(t, err)

	result := f.reconciler().Sync(context.Background())
	require.True(t, result.OK, result.Message)

	color, err := f.repo.GetHighlight("KJV", 2)
	require.NoError(t, err)
	// the local "#ABC" row was pushed over the remote "#000" before pulling
	assert.Equal(t, "#ABC", color)

	color, err = f.repo.GetHighlight("KJV", 5)
	require.NoError(t, err)
	assert.Equal(t, "#FFF", color)

	note, err := f.repo.GetNote("ASV", 7)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "from phone", note.Text)
}

func TestReconciler_PartialPushFailure(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)
	f.remote.UpsertErr[remote.TableHighlights] = &remote.ServerError{StatusCode: 503}

	result := f.reconciler().Sync(context.Background())
	assert.False(t, result.OK)
	assert.Equal(t, PhasePush, result.Phase)
	assert.Contains(t, result.Message, "push highlights")
	assert.Contains(t, result.Message, "503")
	assert.Equal(t, Counts{Bookmarks: 2}, result.Pushed)

	// bookmarks already pushed stay on the remote
	assert.Len(t, f.remote.Rows(remote.TableBookmarks), 2)
	assert.Empty(t, f.remote.Rows(remote.TableNotes))
	assert.Equal(t, []remote.Table{remote.TableBookmarks, remote.TableHighlights}, f.remote.UpsertCalls)

	status := f.settings.GetSyncStatus()
	assert.Equal(t, settingsstore.SyncStatusFailed, status.Status)
	assert.Contains(t, status.Message, "push highlights")
	assert.Nil(t, status.LastSyncAt)
}

func TestReconciler_PhaseFailures(t *testing.T) {
	tests := []struct {
		name    string
		inject  func(*memory.Service)
		phase   Phase
		message string
	}{
		{
			name:    "authentication",
			inject:  func(s *memory.Service) { s.AuthErr = errors.New("offline") },
			phase:   PhaseAuthenticate,
			message: "authenticate: authentication failed: offline",
		},
		{
			name:    "pull notes",
			inject:  func(s *memory.Service) { s.SelectErr[remote.TableNotes] = errors.New("timeout") },
			phase:   PhasePull,
			message: "pull notes: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			seedLocal(t, f.repo)
			tt.inject(f.remote)

			result := f.reconciler().Sync(context.Background())
			assert.False(t, result.OK)
			assert.Equal(t, tt.phase, result.Phase)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}

func TestReconciler_SkipsIncompleteRemoteRows(t *testing.T) {
	f := setupFixture(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.remote.Put(remote.TableNotes,
		remote.Row{UserID: "user-1", Translation: "KJV", VerseIndex: 1, Text: "ok", CreatedAt: &created, UpdatedAt: &created},
		remote.Row{UserID: "user-1", Translation: "KJV", VerseIndex: 2, Text: "no created_at", UpdatedAt: &created},
		remote.Row{UserID: "user-1", Translation: "KJV", VerseIndex: 3, Text: "   ", CreatedAt: &created, UpdatedAt: &created},
	)
	f.remote.Put(remote.TableBookmarks, remote.Row{UserID: "user-1", Translation: "KJV", VerseIndex: 4})
	f.remote.Put(remote.TableHighlights, remote.Row{UserID: "user-1", Translation: "", VerseIndex: 5, Color: "#1", CreatedAt: &created})

	result := f.reconciler().Sync(context.Background())
	require.True(t, result.OK, result.Message)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, Counts{Notes: 1}, result.Pulled)
	assert.Contains(t, result.Summary(), "4 incomplete remote rows skipped")

	note, err := f.repo.GetNote("KJV", 2)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestReconciler_Cancelled(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := f.reconciler().Sync(ctx)
	assert.False(t, result.OK)
	assert.True(t, result.Cancelled)
	assert.Equal(t, PhaseAuthenticate, result.Phase)
	assert.Empty(t, f.remote.UpsertCalls)
	assert.Equal(t, settingsstore.SyncStatusCancelled, f.settings.GetSyncStatus().Status)
}

// cancellingService cancels the run once authentication completes.
type cancellingService struct {
	*memory.Service
	cancel context.CancelFunc
}

func (c cancellingService) Authenticate(ctx context.Context) (string, error) {
	id, err := c.Service.Authenticate(ctx)
	c.cancel()
	return id, err
}

func TestReconciler_CancelledBetweenPhases(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := cancellingService{Service: f.remote, cancel: cancel}

	result := NewReconciler(f.repo, svc).Sync(ctx)
	assert.True(t, result.Cancelled)
	assert.Equal(t, PhasePush, result.Phase)
	assert.Equal(t, "user-1", result.UserID)
	assert.Empty(t, f.remote.UpsertCalls)
}

func TestReconciler_BatchSize(t *testing.T) {
	f := setupFixture(t)
	for i := 1; i <= 5; i++ {
		_, err := f.repo.ToggleBookmark(ref("KJV", i))
		require.NoError(t, err)
	}

	result := f.reconciler(WithBatchSize(2)).Sync(context.Background())
	require.True(t, result.OK, result.Message)

	bookmarkCalls := 0
	for _, table := range f.remote.UpsertCalls {
		if table == remote.TableBookmarks {
			bookmarkCalls++
		}
	}
	assert.Equal(t, 3, bookmarkCalls)
	assert.Len(t, f.remote.Rows(remote.TableBookmarks), 5)
}

func TestReconciler_NotConfigured(t *testing.T) {
	f := setupFixture(t)
	r := NewReconciler(f.repo, nil, WithRecorder(f.settings))

	assert.False(t, r.Configured())
	result := r.Sync(context.Background())
	assert.False(t, result.OK)
	assert.Equal(t, "sync is not configured", result.Message)
	assert.Equal(t, settingsstore.SyncStatusFailed, f.settings.GetSyncStatus().Status)
}

func TestReconciler_RecordsSuccess(t *testing.T) {
	f := setupFixture(t)
	r := f.reconciler()
	fixed := time.Date(2024, 4, 1, 6, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	result := r.Sync(context.Background())
	require.True(t, result.OK)

	status := f.settings.GetSyncStatus()
	assert.Equal(t, settingsstore.SyncStatusSuccess, status.Status)
	require.NotNil(t, status.LastSyncAt)
	assert.True(t, fixed.Equal(*status.LastSyncAt))
	assert.Equal(t, "Pushed 0 and pulled 0 annotations in 0s", status.Message)
}

func TestReconciler_NoOverlap(t *testing.T) {
	f := setupFixture(t)
	r := f.reconciler()

	r.running.Lock()
	result := r.Sync(context.Background())
	r.running.Unlock()

	assert.False(t, result.OK)
	assert.Equal(t, "sync already in progress", result.Message)
}

type recordingAuditor struct {
	actions []string
	errs    []error
	meta    []map[string]any
}

func (a *recordingAuditor) LogSync(action, description string, metadata map[string]any, err error) {
	a.actions = append(a.actions, action)
	a.errs = append(a.errs, err)
	a.meta = append(a.meta, metadata)
}

func TestReconciler_AuditsEveryRun(t *testing.T) {
	f := setupFixture(t)
	seedLocal(t, f.repo)
	auditor := &recordingAuditor{}
	r := f.reconciler(WithAuditor(auditor))

	require.True(t, r.Sync(context.Background()).OK)
	f.remote.SelectErr[remote.TableBookmarks] = errors.New("boom")
	require.False(t, r.Sync(context.Background()).OK)

	require.Len(t, auditor.actions, 2)
	assert.Equal(t, "annotation_sync", auditor.actions[0])
	assert.NoError(t, auditor.errs[0])
	assert.Equal(t, 4, auditor.meta[0]["pushed"])
	assert.EqualError(t, auditor.errs[1], "pull bookmarks: boom")
	assert.Equal(t, "pull", auditor.meta[1]["phase"])
}
