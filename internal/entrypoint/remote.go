package entrypoint

import (
	"context"
	"log"

	"github.com/mrlokans/dailyword/internal/config"
	"github.com/mrlokans/dailyword/internal/remote"
	"github.com/mrlokans/dailyword/internal/remote/pgstore"
	"github.com/mrlokans/dailyword/internal/remote/postgrest"
)

// NewRemote returns the remote annotation service selected by cfg, or a nil service
// when sync is not configured. The cleanup is always safe to call.
func NewRemote(ctx context.Context, cfg config.Sync, sessions remote.SessionStore) (remote.Service, func(), error) {
	switch cfg.Backend() {
	case config.SyncBackendPostgREST:
		log.Printf("Sync backend: postgrest (%s)", cfg.URL)
		return postgrest.NewClient(cfg.URL, cfg.AnonKey, sessions, postgrest.WithMaxAttempts(cfg.HTTPAttempts)), func() {}, nil

	case config.SyncBackendPostgres:
		log.Printf("Sync backend: postgres")
		store, err := pgstore.Open(ctx, cfg.DatabaseURL, sessions)
		if err != nil {
			return nil, func() {}, err
		}
		return store, store.Close, nil
	}

	log.Printf("Sync backend: none (set SUPABASE_URL and SUPABASE_ANON_KEY, or SYNC_DATABASE_URL to enable)")
	return nil, func() {}, nil
}
