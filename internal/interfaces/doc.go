// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - VerseStore / VerseReader: verse lookup, search and ranges (internal/http/stores.go, internal/plan/planner.go)
//   - AnnotationStore / LocalStore: bookmarks, highlights and notes (internal/http/stores.go, internal/syncer/reconciler.go)
//   - AnchorStore, StatusRecorder, SessionStore: state-backed settings (internal/settingsstore)
//
// ## Remote Service Interfaces
//
//   - remote.Service: Authenticate, Upsert and SelectAll against the annotation backend
//     (internal/remote/remote.go). Implemented by postgrest.Client, pgstore.Store and memory.Service.
//
// ## Scheduling Interfaces
//
//   - reminders.Scheduler: daily reminder capability (internal/reminders/service.go)
//   - scheduler.Syncer / tasks.Syncer: anything that runs one sync pass
//
// # Adding a New Remote Backend
//
//  1. Create a package under internal/remote/ implementing remote.Service:
//
//     type Client struct { ... }
//
//     func (c *Client) Authenticate(ctx context.Context) (string, error)
//     func (c *Client) Upsert(ctx context.Context, table remote.Table, rows []remote.Row, onConflict string) error
//     func (c *Client) SelectAll(ctx context.Context, table remote.Table, userID string) ([]remote.Row, error)
//
//     var _ remote.Service = (*Client)(nil)
//
//  2. Add a config.SyncBackend value and select it in entrypoint.NewRemote.
//
// # Adding a New Verse Source Format
//
//  1. Implement importers.Decoder in internal/importers/:
//
//     type CSVDecoder struct{}
//
//     func (CSVDecoder) Decode(ctx context.Context, path string) ([]entities.Verse, error)
//
//  2. Register the file extension in importers.NewPipeline.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
