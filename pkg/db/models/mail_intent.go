package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/procureflow/procureflow-backend/pkg/db/types"
)

// MailIntent is a queued instruction for the external mail system. This
// service only guarantees the row is written; delivery belongs to the
// dispatcher and whatever consumes its topic.
type MailIntent struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	To           dbtypes.StringArray `gorm:"type:text[];not null"`
	Subject      string              `gorm:"type:text;not null"`
	HTML         string              `gorm:"column:html;type:text;not null"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	DispatchedAt *time.Time          `gorm:"column:dispatched_at"`
	AttemptCount int                 `gorm:"column:attempt_count;not null;default:0"`
	LastError    *string             `gorm:"column:last_error"`
}
