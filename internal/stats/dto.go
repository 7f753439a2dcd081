package stats

// GeneralStats is the aggregate snapshot for the dashboard. Each counter
// comes from its own query; the snapshot is not cross-consistent.
type GeneralStats struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"byStatus"`
	ByDepartment    map[string]int64 `json:"byDepartment"`
	ByType          map[string]int64 `json:"byType"`
	NeedMaintenance int64            `json:"needMaintenance"`
}

// RecentItem is the reduced listing shape for the latest registrations.
type RecentItem struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Brand        string  `json:"brand"`
	Model        *string `json:"model"`
	Status       string  `json:"status"`
	RegisteredAt string  `json:"registeredAt"`
}
