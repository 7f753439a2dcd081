package export

import (
	"context"
	"fmt"
	"io"

	"github.com/hospinv/hospinv-backend/internal/inventory"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ExcelFileName is the attachment name for spreadsheet downloads.
const ExcelFileName = "Inventory.xlsx"

const sheetName = "Inventory"

var excelColumns = []string{
	"ID",
	"Type",
	"Brand",
	"Model",
	"Serial",
	"Status",
	"Assigned To",
	"Sub Area",
	"Location",
	"Registered",
	"Last Maintenance",
	"Department",
}

type itemsSearcher interface {
	SearchItems(ctx context.Context, criteria inventory.SearchCriteria) ([]inventory.ItemDTO, error)
}

// ExcelExporter renders filtered inventory listings as a spreadsheet.
type ExcelExporter struct {
	items itemsSearcher
}

// NewExcelExporter builds an exporter over the inventory service.
func NewExcelExporter(items itemsSearcher) (*ExcelExporter, error) {
	if items == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	return &ExcelExporter{items: items}, nil
}

// Write renders the items matching criteria into an .xlsx document on w.
func (e *ExcelExporter) Write(ctx context.Context, w io.Writer, criteria inventory.SearchCriteria) error {
	items, err := e.items.SearchItems(ctx, criteria)
	if err != nil {
		return err
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet, err := file.NewSheet(sheetName)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sheet")
	}
	file.SetActiveSheet(sheet)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drop default sheet")
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build header style")
	}

	for i, column := range excelColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve header cell")
		}
		if err := file.SetCellValue(sheetName, cell, column); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header cell")
		}
		if err := file.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "style header cell")
		}
	}
	if err := file.SetColWidth(sheetName, "A", "L", 18); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "size columns")
	}

	for rowIdx, item := range items {
		values := []any{
			item.ID,
			item.Type,
			item.Brand,
			deref(item.Model),
			item.Serial,
			item.Status,
			deref(item.AssignedTo),
			deref(item.SubArea),
			deref(item.Location),
			item.RegisteredAt,
			deref(item.LastMaintenanceAt),
			deref(item.Department),
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve data cell")
			}
			if err := file.SetCellValue(sheetName, cell, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write data cell")
			}
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stream workbook")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
