package models

import (
	"time"

	"github.com/hospinv/hospinv-backend/pkg/enums"
)

// InventoryItem is the storage shape of a tracked piece of hospital equipment.
// Column names are the persistence contract; the wire shape lives in the
// inventory package's DTOs.
type InventoryItem struct {
	ID                string           `gorm:"column:id;primaryKey"`
	Type              string           `gorm:"column:type;not null"`
	Brand             string           `gorm:"column:brand;not null"`
	Model             *string          `gorm:"column:model"`
	Serial            string           `gorm:"column:serial;not null;unique"`
	Status            enums.ItemStatus `gorm:"column:status;not null"`
	AssignedTo        *string          `gorm:"column:assigned_to"`
	Location          *string          `gorm:"column:location"`
	Department        *string          `gorm:"column:department"`
	SubArea           *string          `gorm:"column:sub_area"`
	RegisteredAt      time.Time        `gorm:"column:registered_at;type:date;not null"`
	LastMaintenanceAt *time.Time       `gorm:"column:last_maintenance_at;type:date"`
	Image             *string          `gorm:"column:image"`
	ImageThumbnail    *string          `gorm:"column:image_thumbnail"`
	ImageDeleteURL    *string          `gorm:"column:image_delete_url"`
}

// TableName pins the table name regardless of GORM pluralization rules.
func (InventoryItem) TableName() string {
	return "inventory_items"
}
