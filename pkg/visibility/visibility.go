package visibility

import (
	"github.com/google/uuid"
	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	"gorm.io/gorm"
)

// Viewer identifies the authenticated principal a quote query runs as.
type Viewer struct {
	UID  uuid.UUID
	Role enums.Role
}

// Allowed reports whether the viewer may see the quote. Buyers see every
// quote; vendors see only the quotes they submitted. This predicate is the
// single source of truth for quote visibility; QuoteScope applies the same
// rule in SQL.
func Allowed(quote models.Quote, viewer Viewer) bool {
	if viewer.Role == enums.RoleBuyer {
		return true
	}
	return quote.VendorID == viewer.UID
}

// Filter returns the subset of quotes visible to the viewer, preserving order.
func Filter(quotes []models.Quote, viewer Viewer) []models.Quote {
	visible := make([]models.Quote, 0, len(quotes))
	for _, quote := range quotes {
		if Allowed(quote, viewer) {
			visible = append(visible, quote)
		}
	}
	return visible
}

// QuoteScope restricts a quote query to rows Allowed would accept.
func QuoteScope(viewer Viewer) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if viewer.Role == enums.RoleBuyer {
			return tx
		}
		return tx.Where("vendor_id = ?", viewer.UID)
	}
}
