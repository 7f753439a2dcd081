package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hospinv/hospinv-backend/api/responses"
	"github.com/hospinv/hospinv-backend/api/validators"
	"github.com/hospinv/hospinv-backend/internal/maintenance"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

type createReportRequest struct {
	ItemID      string           `json:"itemId" validate:"required"`
	Type        string           `json:"type" validate:"required"`
	Description *string          `json:"description"`
	Technician  *string          `json:"technician"`
	Cost        *decimal.Decimal `json:"cost"`
	Notes       *string          `json:"notes"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MaintenanceListByItem returns an item's reports, newest first.
func MaintenanceListByItem(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, itemID)
		}

		reports, err := svc.ListReports(ctx, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, reports)
	}
}

// MaintenanceCreate records an intervention and advances the parent item's
// maintenance date.
func MaintenanceCreate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReportRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, req.ItemID)
		}

		report, err := svc.CreateReport(ctx, req.ItemID, maintenance.CreateReportInput{
			Type:        req.Type,
			Description: req.Description,
			Technician:  req.Technician,
			Cost:        req.Cost,
			Notes:       req.Notes,
			Date:        req.Date,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, report)
	}
}

// MaintenanceDelete removes a report.
func MaintenanceDelete(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseQueryInt64(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteReport(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "report deleted")
	}
}
