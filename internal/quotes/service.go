package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/internal/mail"
	"github.com/procureflow/procureflow-backend/internal/roles"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	pkgerrors "github.com/procureflow/procureflow-backend/pkg/errors"
	"github.com/procureflow/procureflow-backend/pkg/logger"
	"github.com/procureflow/procureflow-backend/pkg/pagination"
	"github.com/procureflow/procureflow-backend/pkg/visibility"
)

// SubmitInput carries a validated submission from the HTTP layer.
type SubmitInput struct {
	RequisitionID  uuid.UUID
	Submitter      roles.Identity
	SubmitterEmail string
	Price          decimal.Decimal
	LeadTime       string
	Notes          *string
}

// Service defines the quote ledger operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	ForRequisition(ctx context.Context, requisitionID uuid.UUID, viewer visibility.Viewer, page pagination.Params) (*QuoteList, error)
	Mine(ctx context.Context, viewer visibility.Viewer, page pagination.Params) (*QuoteList, error)
}

type requisitionFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error)
}

type mailEnqueuer interface {
	EnqueueBuyerSummary(ctx context.Context, d mail.QuoteMailData) error
	EnqueueVendorConfirmation(ctx context.Context, d mail.QuoteMailData) error
}

type service struct {
	repo         Repository
	requisitions requisitionFinder
	mailer       mailEnqueuer
	logg         *logger.Logger
	now          func() time.Time
}

// ServiceParams bundles the dependencies required to build a quote service.
type ServiceParams struct {
	Repo         Repository
	Requisitions requisitionFinder
	Mailer       mailEnqueuer
	Logger       *logger.Logger
	Now          func() time.Time
}

// NewService wires a quote service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if params.Requisitions == nil {
		return nil, fmt.Errorf("requisition finder required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mail enqueuer required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:         params.Repo,
		requisitions: params.Requisitions,
		mailer:       params.Mailer,
		logg:         params.Logger,
		now:          now,
	}, nil
}

// Submit appends a quote to the ledger and queues the two notification
// intents. The ledger write is the authoritative success condition: a
// failure there aborts the whole operation and nothing is queued. Intent
// writes after it are best-effort and reported in the result, never rolled
// back into a ledger failure.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if input.RequisitionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requisition id is required")
	}
	if input.Submitter.UID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "submitter identity required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if strings.TrimSpace(input.LeadTime) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lead time is required")
	}

	requisition, err := s.requisitions.FindByID(ctx, input.RequisitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "requisition not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requisition")
	}

	submittedAt := s.now().UTC()
	quote := &models.Quote{
		QuoteNumber:   GenerateQuoteNumber(submittedAt),
		RequisitionID: requisition.ID,
		PartNumber:    requisition.PartNumber,
		Description:   requisition.Description,
		VendorName:    input.Submitter.VendorName,
		VendorID:      input.Submitter.UID,
		Price:         input.Price,
		LeadTime:      strings.TrimSpace(input.LeadTime),
		Notes:         input.Notes,
		Status:        enums.QuoteStatusSubmitted,
		SubmittedAt:   submittedAt,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append quote to ledger")
	}

	result := &SubmitResult{Quote: FromModel(quote)}

	mailData := mail.QuoteMailData{
		QuoteNumber: quote.QuoteNumber,
		PartNumber:  quote.PartNumber,
		Description: quote.Description,
		VendorName:  quote.VendorName,
		VendorEmail: input.SubmitterEmail,
		Price:       quote.Price,
		LeadTime:    quote.LeadTime,
		Notes:       quote.Notes,
		SubmittedAt: quote.SubmittedAt,
	}

	if err := s.mailer.EnqueueBuyerSummary(ctx, mailData); err != nil {
		s.reportMailFailure(ctx, result, "buyer summary", err)
	} else {
		result.MailQueued++
	}
	if err := s.mailer.EnqueueVendorConfirmation(ctx, mailData); err != nil {
		s.reportMailFailure(ctx, result, "vendor confirmation", err)
	} else {
		result.MailQueued++
	}

	return result, nil
}

func (s *service) reportMailFailure(ctx context.Context, result *SubmitResult, kind string, err error) {
	result.MailErrors = append(result.MailErrors, fmt.Sprintf("%s: %v", kind, err))
	if s.logg != nil {
		s.logg.Error(s.logg.WithField(ctx, "intent", kind), "mail intent write failed", err)
	}
}

func (s *service) ForRequisition(ctx context.Context, requisitionID uuid.UUID, viewer visibility.Viewer, page pagination.Params) (*QuoteList, error) {
	if requisitionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requisition id is required")
	}
	if _, err := s.requisitions.FindByID(ctx, requisitionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "requisition not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load requisition")
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	rows, err := s.repo.ListByRequisition(ctx, requisitionID, viewer, cursor, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list quotes")
	}
	return buildPage(rows, limit), nil
}

func (s *service) Mine(ctx context.Context, viewer visibility.Viewer, page pagination.Params) (*QuoteList, error) {
	if viewer.UID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "viewer identity required")
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	rows, err := s.repo.ListByVendor(ctx, viewer.UID, cursor, pagination.LimitWithBuffer(page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list own quotes")
	}
	return buildPage(rows, limit), nil
}

func buildPage(rows []models.Quote, limit int) *QuoteList {
	list := &QuoteList{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{Timestamp: last.SubmittedAt, ID: last.ID})
		list.NextCursor = &next
	}
	list.Quotes = FromModels(rows)
	return list
}
