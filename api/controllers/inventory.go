package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hospinv/hospinv-backend/api/responses"
	"github.com/hospinv/hospinv-backend/api/validators"
	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/hospinv/hospinv-backend/internal/upload"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"github.com/hospinv/hospinv-backend/pkg/logger"
)

const imageFormField = "image"

type upsertItemRequest struct {
	Type              string  `json:"type" validate:"required"`
	Brand             string  `json:"brand" validate:"required"`
	Model             *string `json:"model"`
	Serial            string  `json:"serial" validate:"required"`
	Status            string  `json:"status" validate:"required,oneof=Available Assigned UnderMaintenance Damaged"`
	AssignedTo        *string `json:"assignedTo"`
	Location          *string `json:"location"`
	Department        *string `json:"department"`
	SubArea           *string `json:"subArea"`
	RegisteredAt      *string `json:"registeredAt" validate:"omitempty,datetime=2006-01-02"`
	LastMaintenanceAt *string `json:"lastMaintenanceAt" validate:"omitempty,datetime=2006-01-02"`
}

func (req upsertItemRequest) toInput(image *inventory.ImageData) inventory.UpsertItemInput {
	return inventory.UpsertItemInput{
		Type:              req.Type,
		Brand:             req.Brand,
		Model:             req.Model,
		Serial:            req.Serial,
		Status:            req.Status,
		AssignedTo:        req.AssignedTo,
		Location:          req.Location,
		Department:        req.Department,
		SubArea:           req.SubArea,
		RegisteredAt:      req.RegisteredAt,
		LastMaintenanceAt: req.LastMaintenanceAt,
		Image:             image,
	}
}

// InventoryList returns every item, newest registration first.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventorySearch returns the items matching the query string criteria.
func InventorySearch(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := searchCriteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.SearchItems(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryGet fetches a single item by code.
func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		item, err := svc.GetItem(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryCreate registers a new item. The body is JSON, or multipart
// form-data when an image file rides along.
func InventoryCreate(svc inventory.Service, uploads *upload.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, image, err := decodeItemRequest(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), req.toInput(image))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryUpdate replaces an item's fields. Omitted image fields keep the
// stored image.
func InventoryUpdate(svc inventory.Service, uploads *upload.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		req, image, err := decodeItemRequest(r, uploads)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.UpdateItem(ctx, id, req.toInput(image))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete removes an item and, best effort, its local image file.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		if err := svc.DeleteItem(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "item deleted")
	}
}

func searchCriteriaFromQuery(r *http.Request) (inventory.SearchCriteria, error) {
	dateFrom, err := validators.QueryDate(r, "dateFrom")
	if err != nil {
		return inventory.SearchCriteria{}, err
	}
	dateTo, err := validators.QueryDate(r, "dateTo")
	if err != nil {
		return inventory.SearchCriteria{}, err
	}
	return inventory.SearchCriteria{
		Term:       validators.QueryString(r, "searchTerm"),
		Status:     validators.QueryString(r, "status"),
		Department: validators.QueryString(r, "department"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}, nil
}

// decodeItemRequest parses either body shape. Multipart requests carry the
// item fields as plain form values and an optional file under "image".
func decodeItemRequest(r *http.Request, uploads *upload.Service) (upsertItemRequest, *inventory.ImageData, error) {
	var req upsertItemRequest

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return req, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}

	req = upsertItemRequest{
		Type:              r.FormValue("type"),
		Brand:             r.FormValue("brand"),
		Model:             formValuePtr(r, "model"),
		Serial:            r.FormValue("serial"),
		Status:            r.FormValue("status"),
		AssignedTo:        formValuePtr(r, "assignedTo"),
		Location:          formValuePtr(r, "location"),
		Department:        formValuePtr(r, "department"),
		SubArea:           formValuePtr(r, "subArea"),
		RegisteredAt:      formValuePtr(r, "registeredAt"),
		LastMaintenanceAt: formValuePtr(r, "lastMaintenanceAt"),
	}
	if err := validators.ValidateStruct(&req); err != nil {
		return req, nil, err
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		if err == http.ErrMissingFile {
			return req, nil, nil
		}
		return req, nil, pkgerrors.Wrap(pkgerrors.CodeUpload, err, "read image part")
	}
	defer file.Close()

	if uploads == nil {
		return req, nil, pkgerrors.New(pkgerrors.CodeInternal, "upload service unavailable")
	}
	image, err := uploads.Store(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		return req, nil, err
	}
	return req, image, nil
}

func formValuePtr(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.FormValue(key))
	if value == "" {
		return nil
	}
	return &value
}
