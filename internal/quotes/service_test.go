package quotes

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/internal/mail"
	"github.com/procureflow/procureflow-backend/internal/roles"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	pkgerrors "github.com/procureflow/procureflow-backend/pkg/errors"
	"github.com/procureflow/procureflow-backend/pkg/pagination"
	"github.com/procureflow/procureflow-backend/pkg/visibility"
)

type fakeRepository struct {
	quotes   []models.Quote
	createFn func(ctx context.Context, quote *models.Quote) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, quote *models.Quote) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, quote); err != nil {
			return err
		}
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	f.quotes = append(f.quotes, *quote)
	return nil
}

func (f *fakeRepository) ListByRequisition(ctx context.Context, requisitionID uuid.UUID, viewer visibility.Viewer, cursor *pagination.Cursor, limit int) ([]models.Quote, error) {
	matched := make([]models.Quote, 0)
	for _, q := range f.quotes {
		if q.RequisitionID == requisitionID && visibility.Allowed(q, viewer) {
			matched = append(matched, q)
		}
	}
	return orderAndPage(matched, cursor, limit), nil
}

func (f *fakeRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Quote, error) {
	matched := make([]models.Quote, 0)
	for _, q := range f.quotes {
		if q.VendorID == vendorID {
			matched = append(matched, q)
		}
	}
	return orderAndPage(matched, cursor, limit), nil
}

func orderAndPage(rows []models.Quote, cursor *pagination.Cursor, limit int) []models.Quote {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].SubmittedAt.Equal(rows[j].SubmittedAt) {
			return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
		}
		return rows[i].ID.String() > rows[j].ID.String()
	})
	if cursor != nil {
		filtered := rows[:0]
		for _, q := range rows {
			if q.SubmittedAt.Before(cursor.Timestamp) ||
				(q.SubmittedAt.Equal(cursor.Timestamp) && q.ID.String() < cursor.ID.String()) {
				filtered = append(filtered, q)
			}
		}
		rows = filtered
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

type fakeRequisitionFinder struct {
	rows map[uuid.UUID]*models.Requisition
}

func (f *fakeRequisitionFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Requisition, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

type fakeMailer struct {
	buyerSummaries      []mail.QuoteMailData
	vendorConfirmations []mail.QuoteMailData
	buyerSummaryErr     error
	vendorConfirmErr    error
	buyerSummaryCalls   int
	vendorConfirmCalls  int
}

func (f *fakeMailer) EnqueueBuyerSummary(ctx context.Context, d mail.QuoteMailData) error {
	f.buyerSummaryCalls++
	if f.buyerSummaryErr != nil {
		return f.buyerSummaryErr
	}
	f.buyerSummaries = append(f.buyerSummaries, d)
	return nil
}

func (f *fakeMailer) EnqueueVendorConfirmation(ctx context.Context, d mail.QuoteMailData) error {
	f.vendorConfirmCalls++
	if f.vendorConfirmErr != nil {
		return f.vendorConfirmErr
	}
	f.vendorConfirmations = append(f.vendorConfirmations, d)
	return nil
}

func newTestService(t *testing.T, repo *fakeRepository, finder *fakeRequisitionFinder, mailer *fakeMailer, now func() time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:         repo,
		Requisitions: finder,
		Mailer:       mailer,
		Now:          now,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func pcbRequisition() *models.Requisition {
	return &models.Requisition{
		ID:          uuid.New(),
		PartNumber:  "PN-3500",
		Description: "Control Module PCB Rev 3",
		Quantity:    15,
		Status:      enums.RequisitionStatusOpen,
		Category:    "Electronics",
	}
}

func vendorIdentity(name string) roles.Identity {
	return roles.Identity{UID: uuid.New(), Role: enums.RoleVendor, VendorName: name}
}

func TestSubmitAppendsLedgerRowAndQueuesMail(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	mailer := &fakeMailer{}
	submitted := time.Date(2025, 8, 11, 14, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, finder, mailer, func() time.Time { return submitted })

	vendor := vendorIdentity("Acme Supply Co.")
	notes := "Conformal coating included"
	result, err := svc.Submit(context.Background(), SubmitInput{
		RequisitionID:  requisition.ID,
		Submitter:      vendor,
		SubmitterEmail: "vendor@acme.example",
		Price:          decimal.RequireFromString("1250.50"),
		LeadTime:       "3 Weeks",
		Notes:          &notes,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(repo.quotes) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(repo.quotes))
	}
	row := repo.quotes[0]
	if row.RequisitionID != requisition.ID {
		t.Fatal("quote must join on requisition id")
	}
	if row.PartNumber != "PN-3500" || row.Description != "Control Module PCB Rev 3" {
		t.Fatalf("denormalized display copies wrong: %+v", row)
	}
	if row.VendorID != vendor.UID || row.VendorName != "Acme Supply Co." {
		t.Fatalf("vendor identity wrong: %+v", row)
	}
	if !row.Price.Equal(decimal.RequireFromString("1250.50")) {
		t.Fatalf("price mismatch: %s", row.Price)
	}
	if row.Status != enums.QuoteStatusSubmitted {
		t.Fatalf("unexpected status %s", row.Status)
	}
	if !row.SubmittedAt.Equal(submitted) {
		t.Fatalf("submitted_at mismatch: %s", row.SubmittedAt)
	}
	if !regexp.MustCompile(`^QT-202508-\d{4}$`).MatchString(row.QuoteNumber) {
		t.Fatalf("unexpected quote number %q", row.QuoteNumber)
	}

	if result.MailQueued != 2 || len(result.MailErrors) != 0 {
		t.Fatalf("expected both intents queued, got %+v", result)
	}
	if len(mailer.buyerSummaries) != 1 || len(mailer.vendorConfirmations) != 1 {
		t.Fatal("expected one buyer summary and one vendor confirmation")
	}
	if mailer.vendorConfirmations[0].VendorEmail != "vendor@acme.example" {
		t.Fatalf("confirmation addressed to %q", mailer.vendorConfirmations[0].VendorEmail)
	}
}

func TestSubmitLedgerFailureAbortsBeforeMail(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{createFn: func(ctx context.Context, quote *models.Quote) error {
		return errors.New("store unavailable")
	}}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	mailer := &fakeMailer{}
	svc := newTestService(t, repo, finder, mailer, time.Now)

	_, err := svc.Submit(context.Background(), SubmitInput{
		RequisitionID: requisition.ID,
		Submitter:     vendorIdentity("Acme Supply Co."),
		Price:         decimal.NewFromInt(10),
		LeadTime:      "1 Week",
	})
	if err == nil {
		t.Fatal("expected ledger failure")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %s", pkgerrors.As(err).Code())
	}
	if mailer.buyerSummaryCalls != 0 || mailer.vendorConfirmCalls != 0 {
		t.Fatal("no mail intent may be written when the ledger write fails")
	}
}

func TestSubmitMailFailureDoesNotRollBackQuote(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	mailer := &fakeMailer{buyerSummaryErr: errors.New("intent table locked")}
	svc := newTestService(t, repo, finder, mailer, time.Now)

	result, err := svc.Submit(context.Background(), SubmitInput{
		RequisitionID: requisition.ID,
		Submitter:     vendorIdentity("Acme Supply Co."),
		Price:         decimal.NewFromInt(99),
		LeadTime:      "2 Weeks",
	})
	if err != nil {
		t.Fatalf("mail failure must not fail submission: %v", err)
	}
	if len(repo.quotes) != 1 {
		t.Fatal("quote should remain persisted")
	}
	if result.MailQueued != 1 {
		t.Fatalf("expected one intent queued, got %d", result.MailQueued)
	}
	if len(result.MailErrors) != 1 {
		t.Fatalf("expected one reported mail error, got %v", result.MailErrors)
	}
}

func TestSubmitAcceptsZeroPrice(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	svc := newTestService(t, repo, finder, &fakeMailer{}, time.Now)

	result, err := svc.Submit(context.Background(), SubmitInput{
		RequisitionID: requisition.ID,
		Submitter:     vendorIdentity("Acme Supply Co."),
		Price:         decimal.Zero,
		LeadTime:      "3 Weeks",
	})
	if err != nil {
		t.Fatalf("zero is a valid price: %v", err)
	}
	if len(repo.quotes) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(repo.quotes))
	}
	if !repo.quotes[0].Price.Equal(decimal.Zero) {
		t.Fatalf("price mismatch: %s", repo.quotes[0].Price)
	}
	if result.MailQueued != 2 {
		t.Fatalf("expected both intents queued, got %d", result.MailQueued)
	}
}

func TestSubmitValidation(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	svc := newTestService(t, repo, finder, &fakeMailer{}, time.Now)

	tests := []struct {
		name  string
		input SubmitInput
		code  pkgerrors.Code
	}{
		{
			name: "negative price",
			input: SubmitInput{
				RequisitionID: requisition.ID,
				Submitter:     vendorIdentity("Acme Supply Co."),
				Price:         decimal.NewFromInt(-5),
				LeadTime:      "1 Week",
			},
			code: pkgerrors.CodeValidation,
		},
		{
			name: "blank lead time",
			input: SubmitInput{
				RequisitionID: requisition.ID,
				Submitter:     vendorIdentity("Acme Supply Co."),
				Price:         decimal.NewFromInt(5),
				LeadTime:      "   ",
			},
			code: pkgerrors.CodeValidation,
		},
		{
			name: "unknown requisition",
			input: SubmitInput{
				RequisitionID: uuid.New(),
				Submitter:     vendorIdentity("Acme Supply Co."),
				Price:         decimal.NewFromInt(5),
				LeadTime:      "1 Week",
			},
			code: pkgerrors.CodeNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if pkgerrors.As(err).Code() != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, pkgerrors.As(err).Code())
			}
			if len(repo.quotes) != 0 {
				t.Fatal("no ledger row may be written")
			}
		})
	}
}

func TestVisibilityRoundTrip(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}
	svc := newTestService(t, repo, finder, &fakeMailer{}, time.Now)

	vendor1 := vendorIdentity("Acme Supply Co.")
	vendor2 := vendorIdentity("Globex Industrial")

	result, err := svc.Submit(context.Background(), SubmitInput{
		RequisitionID:  requisition.ID,
		Submitter:      vendor1,
		SubmitterEmail: "v1@acme.example",
		Price:          decimal.RequireFromString("1250.50"),
		LeadTime:       "3 Weeks",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	buyer := visibility.Viewer{UID: uuid.New(), Role: enums.RoleBuyer}
	buyerList, err := svc.ForRequisition(context.Background(), requisition.ID, buyer, pagination.Params{})
	if err != nil {
		t.Fatalf("buyer list: %v", err)
	}
	if len(buyerList.Quotes) != 1 || buyerList.Quotes[0].ID != result.Quote.ID {
		t.Fatalf("buyer should see the submitted quote, got %+v", buyerList.Quotes)
	}
	got := buyerList.Quotes[0]
	if !got.Price.Equal(decimal.RequireFromString("1250.50")) || got.LeadTime != "3 Weeks" {
		t.Fatalf("quote fields lost in round trip: %+v", got)
	}

	ownList, err := svc.ForRequisition(context.Background(), requisition.ID, visibility.Viewer{UID: vendor1.UID, Role: enums.RoleVendor}, pagination.Params{})
	if err != nil {
		t.Fatalf("vendor1 list: %v", err)
	}
	if len(ownList.Quotes) != 1 {
		t.Fatalf("submitting vendor should see own quote, got %d", len(ownList.Quotes))
	}

	otherList, err := svc.ForRequisition(context.Background(), requisition.ID, visibility.Viewer{UID: vendor2.UID, Role: enums.RoleVendor}, pagination.Params{})
	if err != nil {
		t.Fatalf("vendor2 list: %v", err)
	}
	if len(otherList.Quotes) != 0 {
		t.Fatalf("competing vendor must not see the quote, got %d", len(otherList.Quotes))
	}

	mine, err := svc.Mine(context.Background(), visibility.Viewer{UID: vendor1.UID, Role: enums.RoleVendor}, pagination.Params{})
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if len(mine.Quotes) != 1 || mine.Quotes[0].VendorID != vendor1.UID {
		t.Fatalf("mine projection wrong: %+v", mine.Quotes)
	}
}

func TestForRequisitionOrdersNewestHighest(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}

	clock := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, finder, &fakeMailer{}, func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	vendor := vendorIdentity("Acme Supply Co.")
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), SubmitInput{
			RequisitionID: requisition.ID,
			Submitter:     vendor,
			Price:         decimal.NewFromInt(int64(100 + i)),
			LeadTime:      "1 Week",
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	buyer := visibility.Viewer{UID: uuid.New(), Role: enums.RoleBuyer}
	list, err := svc.ForRequisition(context.Background(), requisition.ID, buyer, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(list.Quotes))
	}
	for i := 1; i < len(list.Quotes); i++ {
		if list.Quotes[i].SubmittedAt.After(list.Quotes[i-1].SubmittedAt) {
			t.Fatal("quotes must be ordered newest first")
		}
	}
}

func TestForRequisitionPaginates(t *testing.T) {
	requisition := pcbRequisition()
	repo := &fakeRepository{}
	finder := &fakeRequisitionFinder{rows: map[uuid.UUID]*models.Requisition{requisition.ID: requisition}}

	clock := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, repo, finder, &fakeMailer{}, func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	vendor := vendorIdentity("Acme Supply Co.")
	for i := 0; i < 5; i++ {
		if _, err := svc.Submit(context.Background(), SubmitInput{
			RequisitionID: requisition.ID,
			Submitter:     vendor,
			Price:         decimal.NewFromInt(int64(10 + i)),
			LeadTime:      "1 Week",
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	buyer := visibility.Viewer{UID: uuid.New(), Role: enums.RoleBuyer}
	first, err := svc.ForRequisition(context.Background(), requisition.ID, buyer, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Quotes) != 3 || first.NextCursor == nil {
		t.Fatalf("expected full first page with cursor, got %d quotes", len(first.Quotes))
	}

	second, err := svc.ForRequisition(context.Background(), requisition.ID, buyer, pagination.Params{Limit: 3, Cursor: *first.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Quotes) != 2 || second.NextCursor != nil {
		t.Fatalf("expected final page of 2, got %d (cursor %v)", len(second.Quotes), second.NextCursor)
	}

	seen := map[uuid.UUID]bool{}
	for _, q := range append(first.Quotes, second.Quotes...) {
		if seen[q.ID] {
			t.Fatalf("quote %s appeared on both pages", q.ID)
		}
		seen[q.ID] = true
	}
}
