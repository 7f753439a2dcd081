package maintenance

import (
	"context"
	"fmt"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles maintenance report persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to maintenance operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByItem returns the reports for an item, most recent intervention first.
func (r *Repository) ListByItem(ctx context.Context, itemID string) ([]models.MaintenanceReport, error) {
	var reports []models.MaintenanceReport
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("date DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// CreateAndTouchItem inserts the report and advances the parent item's
// last_maintenance_at in one transaction. Either both writes land or
// neither does.
func (r *Repository) CreateAndTouchItem(ctx context.Context, report *models.MaintenanceReport) error {
	if report == nil {
		return fmt.Errorf("report is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}
		return tx.Model(&models.InventoryItem{}).
			Where("id = ?", report.ItemID).
			Update("last_maintenance_at", report.Date).Error
	})
}

// Delete removes a report by id. It reports gorm.ErrRecordNotFound when no
// row matched.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MaintenanceReport{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
