package requisitions

import (
	"context"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for requisition rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, rows []models.Requisition) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error)
	List(ctx context.Context) ([]models.Requisition, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a requisition repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Requisition{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CreateBatch(ctx context.Context, rows []models.Requisition) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error) {
	var row models.Requisition
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context) ([]models.Requisition, error) {
	var rows []models.Requisition
	if err := r.db.WithContext(ctx).
		Order("part_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
