package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hospinv/hospinv-backend/pkg/db/models"
	"github.com/hospinv/hospinv-backend/pkg/enums"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubItemsRepo struct {
	items      map[string]models.InventoryItem
	nextCode   int64
	createErr  error
	updateErr  error
	lastCreate *models.InventoryItem
	lastUpdate *models.InventoryItem
}

func newStubItemsRepo() *stubItemsRepo {
	return &stubItemsRepo{items: map[string]models.InventoryItem{}, nextCode: 1}
}

func (r *stubItemsRepo) List(ctx context.Context) ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubItemsRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.InventoryItem, error) {
	return r.List(ctx)
}

func (r *stubItemsRepo) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *stubItemsRepo) NextItemCode(ctx context.Context) (string, error) {
	code := fmt.Sprintf("EQ%03d", r.nextCode)
	r.nextCode++
	return code, nil
}

func (r *stubItemsRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.lastCreate = item
	r.items[item.ID] = *item
	return nil
}

func (r *stubItemsRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.lastUpdate = item
	r.items[item.ID] = *item
	return nil
}

func (r *stubItemsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

type stubCleaner struct {
	removed []string
}

func (c *stubCleaner) RemoveLocal(path string) error {
	c.removed = append(c.removed, path)
	return nil
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func newTestService(t *testing.T, repo *stubItemsRepo, cleaner imageCleaner) Service {
	t.Helper()
	svc, err := NewService(repo, cleaner)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.(*service).now = func() time.Time {
		return time.Date(2025, 8, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateItemGeneratesCodeAndDefaultsDate(t *testing.T) {
	repo := newStubItemsRepo()
	svc := newTestService(t, repo, nil)

	dto, err := svc.CreateItem(context.Background(), UpsertItemInput{
		Type:   "Defibrillator",
		Brand:  "Zoll",
		Serial: "SN-77",
		Status: "Available",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if dto.ID != "EQ001" {
		t.Fatalf("expected generated code EQ001, got %q", dto.ID)
	}
	if dto.RegisteredAt != "2025-08-15" {
		t.Fatalf("registeredAt should default to today, got %q", dto.RegisteredAt)
	}

	next, err := svc.CreateItem(context.Background(), UpsertItemInput{
		Type:   "Monitor",
		Brand:  "GE",
		Serial: "SN-78",
		Status: "Available",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if next.ID != "EQ002" {
		t.Fatalf("codes must be sequential, got %q", next.ID)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := newTestService(t, newStubItemsRepo(), nil)

	cases := []UpsertItemInput{
		{Brand: "GE", Serial: "SN-1", Status: "Available"},
		{Type: "Monitor", Serial: "SN-1", Status: "Available"},
		{Type: "Monitor", Brand: "GE", Status: "Available"},
		{Type: "Monitor", Brand: "GE", Serial: "SN-1", Status: "Broken"},
	}
	for i, input := range cases {
		_, err := svc.CreateItem(context.Background(), input)
		if err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestCreateItemDuplicateSerial(t *testing.T) {
	repo := newStubItemsRepo()
	repo.createErr = fmt.Errorf(`ERROR: duplicate key value violates unique constraint "inventory_items_serial_key"`)
	svc := newTestService(t, repo, nil)

	_, err := svc.CreateItem(context.Background(), UpsertItemInput{
		Type:   "Monitor",
		Brand:  "GE",
		Serial: "SN-1",
		Status: "Available",
	})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateItemKeepsStoredImage(t *testing.T) {
	repo := newStubItemsRepo()
	repo.items["EQ005"] = models.InventoryItem{
		ID:             "EQ005",
		Type:           "Ultrasound",
		Brand:          "Philips",
		Serial:         "SN-5",
		Status:         enums.ItemStatusAvailable,
		RegisteredAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Image:          strPtr("uploads/eq005.png"),
		ImageThumbnail: strPtr("uploads/eq005.png"),
	}
	svc := newTestService(t, repo, nil)

	dto, err := svc.UpdateItem(context.Background(), "EQ005", UpsertItemInput{
		Type:   "Ultrasound",
		Brand:  "Philips",
		Serial: "SN-5",
		Status: "Assigned",
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if dto.Image == nil || *dto.Image != "uploads/eq005.png" {
		t.Fatalf("stored image must survive an update without a new file: %v", dto.Image)
	}
	if dto.Status != "Assigned" {
		t.Fatalf("status not updated: %q", dto.Status)
	}
	if dto.RegisteredAt != "2024-06-01" {
		t.Fatalf("registeredAt must fall back to stored value, got %q", dto.RegisteredAt)
	}
}

func TestUpdateItemReplacesImage(t *testing.T) {
	repo := newStubItemsRepo()
	repo.items["EQ005"] = models.InventoryItem{
		ID:           "EQ005",
		Type:         "Ultrasound",
		Brand:        "Philips",
		Serial:       "SN-5",
		Status:       enums.ItemStatusAvailable,
		RegisteredAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Image:        strPtr("uploads/old.png"),
	}
	svc := newTestService(t, repo, nil)

	dto, err := svc.UpdateItem(context.Background(), "EQ005", UpsertItemInput{
		Type:   "Ultrasound",
		Brand:  "Philips",
		Serial: "SN-5",
		Status: "Available",
		Image: &ImageData{
			URL:          "https://i.ibb.co/new.png",
			ThumbnailURL: strPtr("https://i.ibb.co/new-thumb.png"),
			DeleteURL:    strPtr("https://ibb.co/delete/new"),
		},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if dto.Image == nil || *dto.Image != "https://i.ibb.co/new.png" {
		t.Fatalf("image not replaced: %v", dto.Image)
	}
	if dto.ImageDeleteURL == nil || *dto.ImageDeleteURL != "https://ibb.co/delete/new" {
		t.Fatalf("delete url not replaced: %v", dto.ImageDeleteURL)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := newTestService(t, newStubItemsRepo(), nil)

	_, err := svc.UpdateItem(context.Background(), "EQ404", UpsertItemInput{
		Type:   "Monitor",
		Brand:  "GE",
		Serial: "SN-1",
		Status: "Available",
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteItemRemovesLocalImage(t *testing.T) {
	repo := newStubItemsRepo()
	repo.items["EQ009"] = models.InventoryItem{
		ID:           "EQ009",
		Type:         "Monitor",
		Brand:        "GE",
		Serial:       "SN-9",
		Status:       enums.ItemStatusAvailable,
		RegisteredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Image:        strPtr("uploads/eq009.jpg"),
	}
	cleaner := &stubCleaner{}
	svc := newTestService(t, repo, cleaner)

	if err := svc.DeleteItem(context.Background(), "EQ009"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(cleaner.removed) != 1 || cleaner.removed[0] != "uploads/eq009.jpg" {
		t.Fatalf("local image should be removed, got %v", cleaner.removed)
	}
	if _, ok := repo.items["EQ009"]; ok {
		t.Fatal("item still present after delete")
	}
}

func TestDeleteItemKeepsHostedImage(t *testing.T) {
	repo := newStubItemsRepo()
	repo.items["EQ010"] = models.InventoryItem{
		ID:           "EQ010",
		Type:         "Monitor",
		Brand:        "GE",
		Serial:       "SN-10",
		Status:       enums.ItemStatusAvailable,
		RegisteredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Image:        strPtr("https://i.ibb.co/abc.jpg"),
	}
	cleaner := &stubCleaner{}
	svc := newTestService(t, repo, cleaner)

	if err := svc.DeleteItem(context.Background(), "EQ010"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(cleaner.removed) != 0 {
		t.Fatalf("hosted images must not be deleted locally, got %v", cleaner.removed)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	svc := newTestService(t, newStubItemsRepo(), nil)
	err := svc.DeleteItem(context.Background(), "EQ404")
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetItemNotFound(t *testing.T) {
	svc := newTestService(t, newStubItemsRepo(), nil)
	_, err := svc.GetItem(context.Background(), "EQ404")
	requireCode(t, err, pkgerrors.CodeNotFound)
}
