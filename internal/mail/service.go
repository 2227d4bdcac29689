package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/procureflow/procureflow-backend/pkg/config"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	dbtypes "github.com/procureflow/procureflow-backend/pkg/db/types"
)

type intentWriter interface {
	Create(ctx context.Context, intent *models.MailIntent) error
}

// Service writes mail intent records. It never talks to the mail system
// itself; the dispatcher drains the table.
type Service struct {
	repo intentWriter
	cfg  config.MailConfig
}

// NewService wires a mail service with the provided repository.
func NewService(repo intentWriter, cfg config.MailConfig) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("mail repository required")
	}
	if strings.TrimSpace(cfg.PurchasingAddress) == "" {
		return nil, fmt.Errorf("purchasing address required")
	}
	return &Service{repo: repo, cfg: cfg}, nil
}

// EnqueueBuyerSummary queues the purchasing-team notification.
func (s *Service) EnqueueBuyerSummary(ctx context.Context, d QuoteMailData) error {
	subject, html, err := BuyerSummary(d)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, &models.MailIntent{
		To:      dbtypes.StringArray{s.cfg.PurchasingAddress},
		Subject: subject,
		HTML:    html,
	})
}

// EnqueueVendorConfirmation queues the submitter confirmation.
func (s *Service) EnqueueVendorConfirmation(ctx context.Context, d QuoteMailData) error {
	if strings.TrimSpace(d.VendorEmail) == "" {
		return fmt.Errorf("vendor email required")
	}
	subject, html, err := VendorConfirmation(d)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, &models.MailIntent{
		To:      dbtypes.StringArray{d.VendorEmail},
		Subject: subject,
		HTML:    html,
	})
}
