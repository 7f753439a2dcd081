package stats

import (
	"context"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"gorm.io/gorm"
)

// recentLimit caps the reduced listing of latest registrations.
const recentLimit = 10

type bucketRow struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// Repository runs the aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to stats queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAll returns the total number of items.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByStatus groups item counts by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "status", false)
}

// CountByDepartment groups item counts by department. Items without a
// department are excluded rather than bucketed under an empty key.
func (r *Repository) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "department", true)
}

// CountByType groups item counts by equipment type.
func (r *Repository) CountByType(ctx context.Context) (map[string]int64, error) {
	return r.countBy(ctx, "type", false)
}

// CountNeedMaintenance counts items whose last maintenance is older than the
// cutoff. Items never maintained are not included.
func (r *Repository) CountNeedMaintenance(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("last_maintenance_at IS NOT NULL AND last_maintenance_at < ?", cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Recent returns the latest registrations, newest first.
func (r *Repository) Recent(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Order("registered_at DESC").
		Limit(recentLimit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) countBy(ctx context.Context, column string, skipNull bool) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column)
	if skipNull {
		query = query.Where(column + " IS NOT NULL")
	}

	var rows []bucketRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}
