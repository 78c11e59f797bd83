// Package audit records what the application did on the user's behalf:
// verse imports, sync runs and settings changes.
package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/dailyword/internal/database/audit"
	"github.com/mrlokans/dailyword/internal/entities"
)

const maxMessageLength = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until all pending LogAsync writes have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogImport records a verse import event.
func (s *Service) LogImport(source, description string, versesCount int64, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventImport,
		Action:      source + "_import",
		Description: description,
		Status:      entities.AuditStatusSuccess,
		Metadata:    encodeMetadata(map[string]any{"verses_count": versesCount}),
	}
	markFailed(event, err)

	s.LogAsync(event)
}

// LogSync records a sync event. metadata is stored as JSON when non-empty.
func (s *Service) LogSync(action, description string, metadata map[string]any, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSync,
		Action:      action,
		Description: truncate(description, maxMessageLength),
		Status:      entities.AuditStatusSuccess,
		Metadata:    encodeMetadata(metadata),
	}
	markFailed(event, err)

	s.LogAsync(event)
}

// LogSettings records a settings change event.
func (s *Service) LogSettings(action, description string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func markFailed(event *entities.AuditEvent, err error) {
	if err == nil {
		return
	}
	event.Status = entities.AuditStatusFailed
	event.ErrorMsg = truncate(err.Error(), maxMessageLength)
}

func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
