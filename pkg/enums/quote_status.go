package enums

import "fmt"

// QuoteStatus maps to the quote_status enum in Postgres. The ledger is
// append-only, so submitted is the only state reachable today.
type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusSubmitted,
}

// IsValid reports whether the value matches the canonical enum.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
