package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db"
	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"github.com/hospinv/hospinv-backend/pkg/enums"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"gorm.io/gorm"
)

type itemsRepository interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*models.InventoryItem, error)
	NextItemCode(ctx context.Context) (string, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

type imageCleaner interface {
	RemoveLocal(path string) error
}

// Service exposes inventory listing, search, and lifecycle semantics.
type Service interface {
	ListItems(ctx context.Context) ([]ItemDTO, error)
	SearchItems(ctx context.Context, criteria SearchCriteria) ([]ItemDTO, error)
	GetItem(ctx context.Context, id string) (*ItemDTO, error)
	CreateItem(ctx context.Context, input UpsertItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, id string, input UpsertItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id string) error
}

type service struct {
	repo   itemsRepository
	images imageCleaner
	now    func() time.Time
}

// NewService builds an inventory service backed by the provided repository.
// The image cleaner is optional; without it locally stored images survive
// item deletion.
func NewService(repo itemsRepository, images imageCleaner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{
		repo:   repo,
		images: images,
		now:    time.Now,
	}, nil
}

func (s *service) ListItems(ctx context.Context) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return ToWireList(items), nil
}

func (s *service) SearchItems(ctx context.Context, criteria SearchCriteria) ([]ItemDTO, error) {
	items, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search items")
	}
	return ToWireList(items), nil
}

func (s *service) GetItem(ctx context.Context, id string) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item")
	}
	dto := ToWire(*item)
	return &dto, nil
}

func (s *service) CreateItem(ctx context.Context, input UpsertItemInput) (*ItemDTO, error) {
	item, err := s.buildItem(input, nil)
	if err != nil {
		return nil, err
	}

	code, err := s.repo.NextItemCode(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve item code")
	}
	item.ID = code

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, storageError(err, "create item")
	}

	dto := ToWire(*item)
	return &dto, nil
}

func (s *service) UpdateItem(ctx context.Context, id string, input UpsertItemInput) (*ItemDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item")
	}

	item, err := s.buildItem(input, existing)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, storageError(err, "update item")
	}

	dto := ToWire(*item)
	return &dto, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}

	// Image cleanup is best-effort and only applies to locally stored files.
	// Hosted images keep their delete URL with the external host.
	if s.images != nil && item.Image != nil && isLocalImage(*item.Image) {
		_ = s.images.RemoveLocal(*item.Image)
	}
	return nil
}

// buildItem assembles the storage row for an upsert. On update the existing
// row supplies image fields the payload omitted, so re-submitting the edit
// form without a new file keeps the current image.
func (s *service) buildItem(input UpsertItemInput, existing *models.InventoryItem) (*models.InventoryItem, error) {
	if strings.TrimSpace(input.Type) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type is required")
	}
	if strings.TrimSpace(input.Brand) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand is required")
	}
	if strings.TrimSpace(input.Serial) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "serial is required")
	}
	status, err := enums.ParseItemStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	registeredAt := s.now().Truncate(24 * time.Hour)
	if input.RegisteredAt != nil && *input.RegisteredAt != "" {
		registeredAt, err = time.Parse(time.DateOnly, *input.RegisteredAt)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "registeredAt must be YYYY-MM-DD")
		}
	} else if existing != nil {
		registeredAt = existing.RegisteredAt
	}

	lastMaintenance, err := parseDatePtr(input.LastMaintenanceAt)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lastMaintenanceAt must be YYYY-MM-DD")
	}
	if lastMaintenance == nil && existing != nil {
		lastMaintenance = existing.LastMaintenanceAt
	}

	item := &models.InventoryItem{
		Type:              strings.TrimSpace(input.Type),
		Brand:             strings.TrimSpace(input.Brand),
		Model:             input.Model,
		Serial:            strings.TrimSpace(input.Serial),
		Status:            status,
		AssignedTo:        input.AssignedTo,
		Location:          input.Location,
		Department:        input.Department,
		SubArea:           input.SubArea,
		RegisteredAt:      registeredAt,
		LastMaintenanceAt: lastMaintenance,
	}

	switch {
	case input.Image != nil:
		item.Image = &input.Image.URL
		item.ImageThumbnail = input.Image.ThumbnailURL
		item.ImageDeleteURL = input.Image.DeleteURL
	case existing != nil:
		item.Image = existing.Image
		item.ImageThumbnail = existing.ImageThumbnail
		item.ImageDeleteURL = existing.ImageDeleteURL
	}

	return item, nil
}

func storageError(err error, op string) error {
	if db.IsUniqueViolation(err, "") || db.IsCheckViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}

func isLocalImage(url string) bool {
	return !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://")
}
