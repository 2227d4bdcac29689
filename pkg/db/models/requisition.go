package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/procureflow/procureflow-backend/pkg/enums"
)

// Requisition is an open-demand line item. Rows are written once by the
// catalog seed and never updated or deleted by this service.
type Requisition struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PartNumber  string                  `gorm:"column:part_number;type:text;not null;index"`
	Description string                  `gorm:"type:text;not null"`
	Quantity    int                     `gorm:"not null;check:quantity > 0"`
	Status      enums.RequisitionStatus `gorm:"type:requisition_status;not null;default:open"`
	Category    string                  `gorm:"type:text;not null"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
}
