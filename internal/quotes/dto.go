package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
)

// SubmitQuoteRequest is the vendor-facing submission payload. Price is a
// pointer so a quoted zero passes the required check; sign is validated in
// the service.
type SubmitQuoteRequest struct {
	Price    *decimal.Decimal `json:"price" validate:"required"`
	LeadTime string           `json:"lead_time" validate:"required"`
	Notes    *string          `json:"notes,omitempty"`
}

// QuoteDTO is the transport shape of a ledger row.
type QuoteDTO struct {
	ID            uuid.UUID         `json:"id"`
	QuoteNumber   string            `json:"quote_number"`
	RequisitionID uuid.UUID         `json:"requisition_id"`
	PartNumber    string            `json:"part_number"`
	Description   string            `json:"description"`
	VendorName    string            `json:"vendor_name"`
	VendorID      uuid.UUID         `json:"vendor_id"`
	Price         decimal.Decimal   `json:"price"`
	LeadTime      string            `json:"lead_time"`
	Notes         *string           `json:"notes,omitempty"`
	Status        enums.QuoteStatus `json:"status"`
	SubmittedAt   time.Time         `json:"submitted_at"`
}

// QuoteList is a cursor-paginated page of quotes.
type QuoteList struct {
	Quotes     []QuoteDTO `json:"quotes"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// SubmitResult reports the ledger write plus the fate of each mail intent.
// The quote is authoritative; mail errors never imply rollback.
type SubmitResult struct {
	Quote      *QuoteDTO `json:"quote"`
	MailQueued int       `json:"mail_queued"`
	MailErrors []string  `json:"mail_errors,omitempty"`
}

// FromModel converts a persisted quote into its transport shape.
func FromModel(q *models.Quote) *QuoteDTO {
	if q == nil {
		return nil
	}
	return &QuoteDTO{
		ID:            q.ID,
		QuoteNumber:   q.QuoteNumber,
		RequisitionID: q.RequisitionID,
		PartNumber:    q.PartNumber,
		Description:   q.Description,
		VendorName:    q.VendorName,
		VendorID:      q.VendorID,
		Price:         q.Price,
		LeadTime:      q.LeadTime,
		Notes:         q.Notes,
		Status:        q.Status,
		SubmittedAt:   q.SubmittedAt,
	}
}

// FromModels converts a slice of quotes preserving order.
func FromModels(rows []models.Quote) []QuoteDTO {
	out := make([]QuoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
