package enums

import "fmt"

// ItemStatus is the lifecycle state of an inventory item. The storage layer
// enforces the value set with a CHECK constraint; application code only
// validates at the API boundary.
type ItemStatus string

const (
	ItemStatusAvailable        ItemStatus = "Available"
	ItemStatusAssigned         ItemStatus = "Assigned"
	ItemStatusUnderMaintenance ItemStatus = "UnderMaintenance"
	ItemStatusDamaged          ItemStatus = "Damaged"
)

var validItemStatuses = []ItemStatus{
	ItemStatusAvailable,
	ItemStatusAssigned,
	ItemStatusUnderMaintenance,
	ItemStatusDamaged,
}

// String returns the literal string for the status.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}

// ItemStatuses returns the full value set in declaration order.
func ItemStatuses() []ItemStatus {
	out := make([]ItemStatus, len(validItemStatuses))
	copy(out, validItemStatuses)
	return out
}
