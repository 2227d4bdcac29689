package visibility

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/procureflow/procureflow-backend/pkg/db/models"
	"github.com/procureflow/procureflow-backend/pkg/enums"
)

func TestAllowed(t *testing.T) {
	vendorID := uuid.New()
	otherVendorID := uuid.New()
	quote := models.Quote{VendorID: vendorID}

	t.Run("buyer sees every quote", func(t *testing.T) {
		viewer := Viewer{UID: uuid.New(), Role: enums.RoleBuyer}
		if !Allowed(quote, viewer) {
			t.Fatal("expected buyer to see the quote")
		}
	})
	t.Run("owning vendor sees own quote", func(t *testing.T) {
		viewer := Viewer{UID: vendorID, Role: enums.RoleVendor}
		if !Allowed(quote, viewer) {
			t.Fatal("expected vendor to see own quote")
		}
	})
	t.Run("other vendor is denied", func(t *testing.T) {
		viewer := Viewer{UID: otherVendorID, Role: enums.RoleVendor}
		if Allowed(quote, viewer) {
			t.Fatal("expected quote hidden from competing vendor")
		}
	})
}

func TestFilterPreservesOrder(t *testing.T) {
	vendorID := uuid.New()
	quotes := []models.Quote{
		{ID: uuid.New(), VendorID: vendorID},
		{ID: uuid.New(), VendorID: uuid.New()},
		{ID: uuid.New(), VendorID: vendorID},
	}

	visible := Filter(quotes, Viewer{UID: vendorID, Role: enums.RoleVendor})
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible quotes, got %d", len(visible))
	}
	if visible[0].ID != quotes[0].ID || visible[1].ID != quotes[2].ID {
		t.Fatal("expected filter to preserve input order")
	}

	all := Filter(quotes, Viewer{UID: uuid.New(), Role: enums.RoleBuyer})
	if len(all) != len(quotes) {
		t.Fatalf("expected buyer to see all %d quotes, got %d", len(quotes), len(all))
	}
}

// Pins the SQL scope to the in-memory predicate: for every viewer, the rows
// QuoteScope returns must be exactly the rows Allowed accepts.
func TestQuoteScopeMatchesAllowed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := `
CREATE TABLE quotes (
  id TEXT PRIMARY KEY,
  quote_number TEXT NOT NULL,
  requisition_id TEXT NOT NULL,
  part_number TEXT NOT NULL,
  description TEXT NOT NULL,
  vendor_name TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  price NUMERIC NOT NULL,
  lead_time TEXT NOT NULL,
  notes TEXT,
  status TEXT NOT NULL DEFAULT 'submitted',
  submitted_at DATETIME NOT NULL
);`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	vendorOne := uuid.New()
	vendorTwo := uuid.New()
	all := make([]models.Quote, 0, 4)
	for i, vendorID := range []uuid.UUID{vendorOne, vendorOne, vendorTwo, uuid.New()} {
		quote := models.Quote{
			ID:            uuid.New(),
			QuoteNumber:   "QT-202508-1234",
			RequisitionID: uuid.New(),
			PartNumber:    "PN-3500",
			Description:   "Control Module PCB Rev 3",
			VendorName:    "Acme Metals",
			VendorID:      vendorID,
			LeadTime:      "3 Weeks",
			Status:        enums.QuoteStatusSubmitted,
			SubmittedAt:   time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&quote).Error; err != nil {
			t.Fatalf("insert quote: %v", err)
		}
		all = append(all, quote)
	}

	viewers := map[string]Viewer{
		"buyer":           {UID: uuid.New(), Role: enums.RoleBuyer},
		"vendor one":      {UID: vendorOne, Role: enums.RoleVendor},
		"vendor two":      {UID: vendorTwo, Role: enums.RoleVendor},
		"stranger vendor": {UID: uuid.New(), Role: enums.RoleVendor},
	}
	for name, viewer := range viewers {
		t.Run(name, func(t *testing.T) {
			var scoped []models.Quote
			if err := db.Scopes(QuoteScope(viewer)).Find(&scoped).Error; err != nil {
				t.Fatalf("scoped query: %v", err)
			}

			want := map[uuid.UUID]bool{}
			for _, quote := range Filter(all, viewer) {
				want[quote.ID] = true
			}
			if len(scoped) != len(want) {
				t.Fatalf("scope returned %d rows, predicate allows %d", len(scoped), len(want))
			}
			for _, quote := range scoped {
				if !want[quote.ID] {
					t.Fatalf("scope returned quote %s the predicate denies", quote.ID)
				}
			}
		})
	}
}
