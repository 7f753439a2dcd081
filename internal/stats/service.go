package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
)

// maintenanceWindow is the age past which an item counts as due for
// maintenance.
const maintenanceWindow = 6

type statsRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	CountNeedMaintenance(ctx context.Context, cutoff time.Time) (int64, error)
	Recent(ctx context.Context) ([]models.InventoryItem, error)
}

// Service exposes the dashboard aggregates.
type Service interface {
	General(ctx context.Context) (*GeneralStats, error)
	RecentItems(ctx context.Context) ([]RecentItem, error)
}

type service struct {
	repo statsRepository
	now  func() time.Time
}

// NewService builds a stats service backed by the provided repository.
func NewService(repo statsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) General(ctx context.Context) (*GeneralStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count items")
	}
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by status")
	}
	byDepartment, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by department")
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count by type")
	}

	cutoff := s.now().AddDate(0, -maintenanceWindow, 0)
	needMaintenance, err := s.repo.CountNeedMaintenance(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stale maintenance")
	}

	return &GeneralStats{
		Total:           total,
		ByStatus:        byStatus,
		ByDepartment:    byDepartment,
		ByType:          byType,
		NeedMaintenance: needMaintenance,
	}, nil
}

func (s *service) RecentItems(ctx context.Context) ([]RecentItem, error) {
	items, err := s.repo.Recent(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent items")
	}

	out := make([]RecentItem, 0, len(items))
	for _, item := range items {
		out = append(out, RecentItem{
			ID:           item.ID,
			Type:         item.Type,
			Brand:        item.Brand,
			Model:        item.Model,
			Status:       item.Status.String(),
			RegisteredAt: item.RegisteredAt.Format(time.DateOnly),
		})
	}
	return out, nil
}
