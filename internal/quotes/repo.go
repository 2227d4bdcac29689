package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/pagination"
	"github.com/procureflow/procureflow-backend/pkg/visibility"
)

// Repository manages persistence for the append-only quote ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.Quote) error
	ListByRequisition(ctx context.Context, requisitionID uuid.UUID, viewer visibility.Viewer, cursor *pagination.Cursor, limit int) ([]models.Quote, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Quote, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a quote repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *repository) ListByRequisition(ctx context.Context, requisitionID uuid.UUID, viewer visibility.Viewer, cursor *pagination.Cursor, limit int) ([]models.Quote, error) {
	q := r.db.WithContext(ctx).
		Where("requisition_id = ?", requisitionID).
		Scopes(visibility.QuoteScope(viewer))
	return listOrdered(q, cursor, limit)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Quote, error) {
	q := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID)
	return listOrdered(q, cursor, limit)
}

func listOrdered(q *gorm.DB, cursor *pagination.Cursor, limit int) ([]models.Quote, error) {
	if cursor != nil {
		q = q.Where("(submitted_at, id) < (?, ?)", cursor.Timestamp, cursor.ID)
	}
	var rows []models.Quote
	err := q.Order("submitted_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
