package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuotesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_quotes.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no quotes migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS quotes",
		"FOREIGN KEY (requisition_id) REFERENCES requisitions(id)",
		"FOREIGN KEY (vendor_id) REFERENCES users(id)",
		"CHECK (price > 0)",
		"idx_quotes_submitted_at ON quotes (submitted_at DESC, id DESC)",
		"DROP TABLE IF EXISTS quotes",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMailIntentsMigrationKeepsPendingIndexPartial(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_mail_intents.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no mail intents migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "WHERE dispatched_at IS NULL") {
		t.Errorf("pending index should be partial on dispatched_at IS NULL")
	}
}
