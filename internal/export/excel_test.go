package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/xuri/excelize/v2"
)

type stubSearcher struct {
	items    []inventory.ItemDTO
	criteria inventory.SearchCriteria
}

func (s *stubSearcher) SearchItems(ctx context.Context, criteria inventory.SearchCriteria) ([]inventory.ItemDTO, error) {
	s.criteria = criteria
	return s.items, nil
}

func strPtr(s string) *string { return &s }

func TestExcelWriteRoundTrip(t *testing.T) {
	searcher := &stubSearcher{
		items: []inventory.ItemDTO{
			{
				ID:           "EQ001",
				Type:         "Monitor",
				Brand:        "Dell",
				Model:        strPtr("U2415"),
				Serial:       "SN-001",
				Status:       "Available",
				Location:     strPtr("ER-1"),
				Department:   strPtr("ER"),
				RegisteredAt: "2025-01-10",
			},
			{
				ID:           "EQ002",
				Type:         "Ventilator",
				Brand:        "Drager",
				Serial:       "SN-002",
				Status:       "Assigned",
				RegisteredAt: "2025-02-20",
			},
		},
	}
	exporter, err := NewExcelExporter(searcher)
	if err != nil {
		t.Fatalf("NewExcelExporter: %v", err)
	}

	var buf bytes.Buffer
	criteria := inventory.SearchCriteria{Department: "ER"}
	if err := exporter.Write(context.Background(), &buf, criteria); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if searcher.criteria != criteria {
		t.Fatalf("criteria not forwarded: %+v", searcher.criteria)
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "Status" || rows[0][11] != "Department" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "EQ001" || rows[1][3] != "U2415" || rows[1][9] != "2025-01-10" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
	if rows[2][0] != "EQ002" {
		t.Fatalf("unexpected second data row: %v", rows[2])
	}
}

func TestExcelWriteEmptyListing(t *testing.T) {
	exporter, err := NewExcelExporter(&stubSearcher{})
	if err != nil {
		t.Fatalf("NewExcelExporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Write(context.Background(), &buf, inventory.SearchCriteria{}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
