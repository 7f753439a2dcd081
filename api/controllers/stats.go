package controllers

import (
	"net/http"

	"github.com/hospinv/hospinv-backend/api/responses"
	"github.com/hospinv/hospinv-backend/internal/stats"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

// StatsGeneral returns the dashboard counters.
func StatsGeneral(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		general, err := svc.General(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, general)
	}
}

// StatsRecent returns the latest registrations in reduced shape.
func StatsRecent(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := svc.RecentItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recent)
	}
}
