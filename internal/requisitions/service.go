package requisitions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	pkgerrors "github.com/procureflow/procureflow-backend/pkg/errors"
	"github.com/procureflow/procureflow-backend/pkg/logger"
)

// SeedCatalog is the fixed demand catalog inserted on first boot.
func SeedCatalog() []models.Requisition {
	return []models.Requisition{
		{PartNumber: "PN-1044", Description: "Stainless Steel Valve Body", Quantity: 50, Status: enums.RequisitionStatusOpen, Category: "Mechanical"},
		{PartNumber: "PN-2099", Description: "Gasket Kit Neoprene", Quantity: 200, Status: enums.RequisitionStatusOpen, Category: "Consumables"},
		{PartNumber: "PN-3500", Description: "Control Module PCB Rev 3", Quantity: 15, Status: enums.RequisitionStatusOpen, Category: "Electronics"},
		{PartNumber: "PN-4100", Description: "Hydraulic Cylinder 5000 PSI", Quantity: 4, Status: enums.RequisitionStatusOpen, Category: "Hydraulics"},
		{PartNumber: "PN-8822", Description: "M12 x 50mm Hex Bolt Grade 8", Quantity: 1000, Status: enums.RequisitionStatusOpen, Category: "Fasteners"},
	}
}

// Service defines the requisition catalog operations.
type Service interface {
	EnsureSeeded(ctx context.Context) error
	List(ctx context.Context) ([]RequisitionDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RequisitionDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires a requisition service with the provided repository.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requisition repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// EnsureSeeded inserts the demand catalog when the table is empty. The
// check-then-insert pair is not atomic: two instances booting at once can
// both observe an empty table and double-insert. Catalog rows are
// display-only and quotes join on requisition id, so duplicates are an
// accepted cosmetic artifact rather than a correctness problem.
func (s *service) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count requisitions")
	}
	if count > 0 {
		return nil
	}

	rows := SeedCatalog()
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed requisitions")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(rows)), "requisition catalog seeded")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]RequisitionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list requisitions")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RequisitionDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requisition id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "requisition not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requisition")
	}
	return FromModel(row), nil
}
