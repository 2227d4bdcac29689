package enums

import "fmt"

// RequisitionStatus maps to the requisition_status enum in Postgres.
type RequisitionStatus string

const (
	RequisitionStatusOpen RequisitionStatus = "open"
	// Reserved states; no transition paths exist yet.
	RequisitionStatusClosed  RequisitionStatus = "closed"
	RequisitionStatusAwarded RequisitionStatus = "awarded"
)

var validRequisitionStatuses = []RequisitionStatus{
	RequisitionStatusOpen,
	RequisitionStatusClosed,
	RequisitionStatusAwarded,
}

// IsValid reports whether the value matches the canonical enum.
func (s RequisitionStatus) IsValid() bool {
	for _, candidate := range validRequisitionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequisitionStatus converts raw input into RequisitionStatus.
func ParseRequisitionStatus(value string) (RequisitionStatus, error) {
	for _, candidate := range validRequisitionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid requisition status %q", value)
}
