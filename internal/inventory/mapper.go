package inventory

import (
	"fmt"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"github.com/hospinv/hospinv-backend/pkg/enums"
)

// The storage and wire shapes meet exactly here. Handlers never rename or
// reformat fields themselves; every conversion goes through ToWire/ToStorage
// so the two conventions cannot drift apart per call site.

// ToWire converts a storage row into its wire shape. Dates are truncated to
// day granularity; nil optionals pass through as nil.
func ToWire(item models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:                item.ID,
		Type:              item.Type,
		Brand:             item.Brand,
		Model:             item.Model,
		Serial:            item.Serial,
		Status:            item.Status.String(),
		AssignedTo:        item.AssignedTo,
		Location:          item.Location,
		Department:        item.Department,
		SubArea:           item.SubArea,
		RegisteredAt:      item.RegisteredAt.Format(time.DateOnly),
		LastMaintenanceAt: formatDatePtr(item.LastMaintenanceAt),
		Image:             item.Image,
		ImageThumbnail:    item.ImageThumbnail,
		ImageDeleteURL:    item.ImageDeleteURL,
	}
}

// ToWireList converts a result set, preserving order.
func ToWireList(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ToWire(item))
	}
	return out
}

// ToStorage converts a wire record back into its storage shape. It only
// renames and parses; value-level validation (status set membership, serial
// uniqueness) stays with the storage constraints.
func ToStorage(dto ItemDTO) (models.InventoryItem, error) {
	registeredAt, err := parseDate(dto.RegisteredAt)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("parse registeredAt: %w", err)
	}

	lastMaintenance, err := parseDatePtr(dto.LastMaintenanceAt)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("parse lastMaintenanceAt: %w", err)
	}

	return models.InventoryItem{
		ID:                dto.ID,
		Type:              dto.Type,
		Brand:             dto.Brand,
		Model:             dto.Model,
		Serial:            dto.Serial,
		Status:            enums.ItemStatus(dto.Status),
		AssignedTo:        dto.AssignedTo,
		Location:          dto.Location,
		Department:        dto.Department,
		SubArea:           dto.SubArea,
		RegisteredAt:      registeredAt,
		LastMaintenanceAt: lastMaintenance,
		Image:             dto.Image,
		ImageThumbnail:    dto.ImageThumbnail,
		ImageDeleteURL:    dto.ImageDeleteURL,
	}, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
