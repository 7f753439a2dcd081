package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db"
	"github.com/hospinv/hospinv-backend/pkg/db/models"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"gorm.io/gorm"
)

type reportsRepository interface {
	ListByItem(ctx context.Context, itemID string) ([]models.MaintenanceReport, error)
	CreateAndTouchItem(ctx context.Context, report *models.MaintenanceReport) error
	Delete(ctx context.Context, id int64) error
}

// Service exposes maintenance report listing, creation, and deletion.
type Service interface {
	ListReports(ctx context.Context, itemID string) ([]ReportDTO, error)
	CreateReport(ctx context.Context, itemID string, input CreateReportInput) (*ReportDTO, error)
	DeleteReport(ctx context.Context, id int64) error
}

type service struct {
	repo reportsRepository
	now  func() time.Time
}

// NewService builds a maintenance service backed by the provided repository.
func NewService(repo reportsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListReports(ctx context.Context, itemID string) ([]ReportDTO, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	reports, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reports")
	}
	return toWireList(reports), nil
}

func (s *service) CreateReport(ctx context.Context, itemID string, input CreateReportInput) (*ReportDTO, error) {
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type is required")
	}

	date := s.now().Truncate(24 * time.Hour)
	if input.Date != nil && *input.Date != "" {
		parsed, err := time.Parse(time.DateOnly, *input.Date)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	report := &models.MaintenanceReport{
		ItemID:      itemID,
		Type:        strings.TrimSpace(input.Type),
		Description: input.Description,
		Technician:  input.Technician,
		Cost:        input.Cost,
		Notes:       input.Notes,
		Date:        date,
	}

	if err := s.repo.CreateAndTouchItem(ctx, report); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create report")
	}

	dto := toWire(*report)
	return &dto, nil
}

// DeleteReport removes a report. A miss is treated as success so repeated
// deletes stay idempotent.
func (s *service) DeleteReport(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "report id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete report")
	}
	return nil
}
