package roles

import (
	"context"

	"github.com/google/uuid"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	"github.com/procureflow/procureflow-backend/pkg/logger"
)

// DefaultVendorName is used when a vendor record carries no display name.
const DefaultVendorName = "Internal Test Vendor"

// Identity is the resolved role profile a request runs under.
type Identity struct {
	UID        uuid.UUID
	Role       enums.Role
	VendorName string
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service resolves directory records into request identities.
type Service struct {
	users userFinder
	logg  *logger.Logger
}

// NewService constructs the role resolution service.
func NewService(users userFinder, logg *logger.Logger) *Service {
	return &Service{users: users, logg: logg}
}

// Resolve maps a user ID to its role profile. A missing directory record or
// an unreadable role does not fail the request: the identity falls back to
// the vendor role so the caller proceeds with the most restrictive
// visibility. Every fallback is logged for audit.
func (s *Service) Resolve(ctx context.Context, userID uuid.UUID) Identity {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.fallback(ctx, userID, "directory lookup failed", err)
	}
	if !user.Role.IsValid() {
		return s.fallback(ctx, userID, "directory role unreadable", nil)
	}

	return Identity{
		UID:        userID,
		Role:       user.Role,
		VendorName: vendorNameFor(user),
	}
}

func (s *Service) fallback(ctx context.Context, userID uuid.UUID, reason string, err error) Identity {
	if s.logg != nil {
		fields := map[string]any{
			"user_id": userID.String(),
			"role":    string(enums.RoleFallback),
			"reason":  reason,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		s.logg.Warn(s.logg.WithFields(ctx, fields), "role fallback applied")
	}
	return Identity{
		UID:        userID,
		Role:       enums.RoleFallback,
		VendorName: DefaultVendorName,
	}
}

// vendorNameFor prefers the explicit display name, then the account email.
// The placeholder is reserved for records with no usable identity at all.
func vendorNameFor(user *models.User) string {
	if user.VendorName != nil && *user.VendorName != "" {
		return *user.VendorName
	}
	if user.Email != "" {
		return user.Email
	}
	return DefaultVendorName
}
