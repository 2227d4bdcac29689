package requisitions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	pkgerrors "github.com/procureflow/procureflow-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeRepository struct {
	rows    []models.Requisition
	countFn func(ctx context.Context) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx)
	}
	return int64(len(f.rows)), nil
}

func (f *fakeRepository) CreateBatch(ctx context.Context, rows []models.Requisition) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Requisition, error) {
	return f.rows, nil
}

func TestEnsureSeededPopulatesEmptyCatalog(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if err := svc.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}
	if len(repo.rows) != 5 {
		t.Fatalf("expected 5 seeded requisitions, got %d", len(repo.rows))
	}

	byPart := map[string]models.Requisition{}
	for _, row := range repo.rows {
		byPart[row.PartNumber] = row
	}
	pcb, ok := byPart["PN-3500"]
	if !ok {
		t.Fatal("expected PN-3500 in seed catalog")
	}
	if pcb.Description != "Control Module PCB Rev 3" || pcb.Quantity != 15 || pcb.Category != "Electronics" {
		t.Fatalf("unexpected PN-3500 row: %+v", pcb)
	}
}

func TestEnsureSeededSkipsNonEmptyCatalog(t *testing.T) {
	repo := &fakeRepository{rows: []models.Requisition{{ID: uuid.New(), PartNumber: "PN-0001"}}}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if err := svc.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("ensure seeded: %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected existing catalog untouched, got %d rows", len(repo.rows))
	}
}

func TestEnsureSeededWrapsCountError(t *testing.T) {
	repo := &fakeRepository{countFn: func(ctx context.Context) (int64, error) {
		return 0, errors.New("connection reset")
	}}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	err = svc.EnsureSeeded(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal code, got %s", pkgerrors.As(err).Code())
	}
}

func TestGetUnknownRequisition(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", pkgerrors.As(err).Code())
	}
}
