package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procureflow/procureflow-backend/pkg/enums"
)

// Quote is an append-only ledger row. RequisitionID is the authoritative join
// key; PartNumber and Description are denormalized display copies only.
// VendorID is the sole authorization discriminant and is never rewritten.
type Quote struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteNumber   string            `gorm:"column:quote_number;type:text;not null"`
	RequisitionID uuid.UUID         `gorm:"column:requisition_id;type:uuid;not null;index"`
	PartNumber    string            `gorm:"column:part_number;type:text;not null"`
	Description   string            `gorm:"type:text;not null"`
	VendorName    string            `gorm:"column:vendor_name;type:text;not null"`
	VendorID      uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null;index"`
	Price         decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	LeadTime      string            `gorm:"column:lead_time;type:text;not null"`
	Notes         *string           `gorm:"type:text"`
	Status        enums.QuoteStatus `gorm:"type:quote_status;not null;default:submitted"`
	SubmittedAt   time.Time         `gorm:"column:submitted_at;type:timestamptz;not null;index"`
}
