package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hospinv/hospinv-backend/api/responses"
	"github.com/hospinv/hospinv-backend/internal/export"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportExcel streams the filtered inventory as a spreadsheet attachment.
// The same query string criteria as the search endpoint apply.
func ExportExcel(exporter *export.ExcelExporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := searchCriteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Rendered into memory first so failures still produce a JSON error
		// instead of a truncated download.
		var buf bytes.Buffer
		if err := exporter.Write(r.Context(), &buf, criteria); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ExcelFileName))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
		buf.WriteTo(w)
	}
}

// ExportPDF streams an item's maintenance history as a PDF attachment.
func ExportPDF(exporter *export.PDFExporter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, itemID)
		}

		var buf bytes.Buffer
		if err := exporter.Write(ctx, &buf, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.PDFFileName(itemID)))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
		buf.WriteTo(w)
	}
}
