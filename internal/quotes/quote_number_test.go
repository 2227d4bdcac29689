package quotes

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateQuoteNumberFormat(t *testing.T) {
	now := time.Date(2025, 8, 11, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^QT-202508-\d{4}$`)

	for i := 0; i < 100; i++ {
		number := GenerateQuoteNumber(now)
		if !pattern.MatchString(number) {
			t.Fatalf("unexpected quote number %q", number)
		}
	}
}

func TestGenerateQuoteNumberUsesUTCMonth(t *testing.T) {
	// 23:30 in UTC-5 on Dec 31 is already January in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 12, 31, 23, 30, 0, 0, loc)

	number := GenerateQuoteNumber(now)
	if number[:10] != "QT-202601-" {
		t.Fatalf("expected UTC month 202601, got %q", number)
	}
}
