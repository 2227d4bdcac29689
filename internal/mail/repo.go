package mail

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
)

// Repository manages persistence for queued mail intents.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a mail intent repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new mail intent row.
func (r *Repository) Create(ctx context.Context, intent *models.MailIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

// FetchPending returns undispatched intents oldest first. Intents that
// burned through maxAttempts stay in the table but are no longer picked up.
func (r *Repository) FetchPending(ctx context.Context, limit, maxAttempts int) ([]models.MailIntent, error) {
	var rows []models.MailIntent
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Where("attempt_count < ?", maxAttempts).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkDispatched stamps the intent as handed to the mail topic.
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.MailIntent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"dispatched_at": time.Now(),
		}).Error
}

// MarkFailed records a failed dispatch attempt.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, err error) error {
	return r.db.WithContext(ctx).Model(&models.MailIntent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_error":    err.Error(),
			"attempt_count": gorm.Expr("attempt_count + 1"),
		}).Error
}
