package entities

import (
	"encoding/json"
	"time"
)

// AuditEventType groups history entries by the subsystem that wrote them.
type AuditEventType string

const (
	AuditEventImport   AuditEventType = "import"
	AuditEventSync     AuditEventType = "sync"
	AuditEventSettings AuditEventType = "settings"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is one entry of the local history: a sync run, a verse import or a
// settings change. Metadata holds a JSON object with per-type details.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"` // annotation_sync, json_import, reminder_update
	Description string         `gorm:"size:500" json:"description"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

func (e AuditEvent) Succeeded() bool {
	return e.Status == AuditStatusSuccess
}

// MetadataMap decodes Metadata. Empty or malformed metadata yields an empty map.
func (e AuditEvent) MetadataMap() map[string]any {
	values := map[string]any{}
	if e.Metadata == "" {
		return values
	}
	if err := json.Unmarshal([]byte(e.Metadata), &values); err != nil {
		return map[string]any{}
	}
	return values
}
