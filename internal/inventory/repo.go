package inventory

import (
	"context"
	"fmt"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles inventory item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every item, newest registration first.
func (r *Repository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).Order(OrderClause).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Search returns the items matching the provided criteria, newest
// registration first.
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria) ([]models.InventoryItem, error) {
	cond, args := BuildFilter(criteria)
	query := fmt.Sprintf("SELECT * FROM inventory_items WHERE %s ORDER BY %s", cond, OrderClause)

	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads an item by its code.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// NextItemCode reserves the next equipment code. Codes come from a dedicated
// sequence so a deleted item's code is never handed out again.
func (r *Repository) NextItemCode(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('inventory_item_code_seq')").
		Scan(&n).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("EQ%03d", n), nil
}

// Create persists a new item row.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves the provided item. Save writes every column, so callers must
// pass a fully populated row.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("item is required")
	}
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item by code. It reports gorm.ErrRecordNotFound when no
// row matched so callers can distinguish a miss from success.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
