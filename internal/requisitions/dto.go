package requisitions

import (
	"time"

	"github.com/google/uuid"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
)

// RequisitionDTO is the transport shape for an open-demand line item.
type RequisitionDTO struct {
	ID          uuid.UUID               `json:"id"`
	PartNumber  string                  `json:"part_number"`
	Description string                  `json:"description"`
	Quantity    int                     `json:"quantity"`
	Status      enums.RequisitionStatus `json:"status"`
	Category    string                  `json:"category"`
	CreatedAt   time.Time               `json:"created_at"`
}

// FromModel converts a persisted requisition into its transport shape.
func FromModel(r *models.Requisition) *RequisitionDTO {
	if r == nil {
		return nil
	}
	return &RequisitionDTO{
		ID:          r.ID,
		PartNumber:  r.PartNumber,
		Description: r.Description,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

// FromModels converts a slice of requisitions preserving order.
func FromModels(rows []models.Requisition) []RequisitionDTO {
	out := make([]RequisitionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
