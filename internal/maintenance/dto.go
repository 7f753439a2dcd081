package maintenance

import (
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ReportDTO is the wire shape of a maintenance report. Cost serializes as a
// JSON number string via shopspring semantics; dates are YYYY-MM-DD.
type ReportDTO struct {
	ID          int64            `json:"id"`
	ItemID      string           `json:"itemId"`
	Type        string           `json:"type"`
	Description *string          `json:"description"`
	Technician  *string          `json:"technician"`
	Cost        *decimal.Decimal `json:"cost"`
	Notes       *string          `json:"notes"`
	Date        string           `json:"date"`
}

// CreateReportInput is the validated payload for recording an intervention.
// An empty Date means the intervention happened today.
type CreateReportInput struct {
	Type        string
	Description *string
	Technician  *string
	Cost        *decimal.Decimal
	Notes       *string
	Date        *string
}

func toWire(report models.MaintenanceReport) ReportDTO {
	return ReportDTO{
		ID:          report.ID,
		ItemID:      report.ItemID,
		Type:        report.Type,
		Description: report.Description,
		Technician:  report.Technician,
		Cost:        report.Cost,
		Notes:       report.Notes,
		Date:        report.Date.Format(time.DateOnly),
	}
}

func toWireList(reports []models.MaintenanceReport) []ReportDTO {
	out := make([]ReportDTO, 0, len(reports))
	for _, report := range reports {
		out = append(out, toWire(report))
	}
	return out
}
