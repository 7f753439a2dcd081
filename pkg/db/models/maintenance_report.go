package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceReport records a single intervention on an inventory item.
// Reports belong to exactly one item; deleting a report never touches the
// item row.
type MaintenanceReport struct {
	ID          int64            `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID      string           `gorm:"column:item_id;not null"`
	Type        string           `gorm:"column:type;not null"`
	Description *string          `gorm:"column:description"`
	Technician  *string          `gorm:"column:technician"`
	Cost        *decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
	Notes       *string          `gorm:"column:notes"`
	Date        time.Time        `gorm:"column:date;type:date;not null"`
}

// TableName pins the table name regardless of GORM pluralization rules.
func (MaintenanceReport) TableName() string {
	return "maintenance_reports"
}
