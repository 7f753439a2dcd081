package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/hospinv/hospinv-backend/internal/inventory"
	"github.com/hospinv/hospinv-backend/internal/maintenance"
	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
)

type itemFinder interface {
	GetItem(ctx context.Context, id string) (*inventory.ItemDTO, error)
}

type reportsLister interface {
	ListReports(ctx context.Context, itemID string) ([]maintenance.ReportDTO, error)
}

// PDFExporter renders an item's maintenance history as a printable document.
type PDFExporter struct {
	items   itemFinder
	reports reportsLister
}

// NewPDFExporter builds a PDF exporter over the inventory and maintenance
// services.
func NewPDFExporter(items itemFinder, reports reportsLister) (*PDFExporter, error) {
	if items == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if reports == nil {
		return nil, fmt.Errorf("maintenance service required")
	}
	return &PDFExporter{items: items, reports: reports}, nil
}

// PDFFileName returns the attachment name for an item's history document.
func PDFFileName(itemID string) string {
	return fmt.Sprintf("maintenance-%s.pdf", itemID)
}

// Write renders the maintenance history for itemID on w. A missing item
// surfaces as a not-found error before any bytes are written.
func (e *PDFExporter) Write(ctx context.Context, w io.Writer, itemID string) error {
	item, err := e.items.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	reports, err := e.reports.ListReports(ctx, itemID)
	if err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Maintenance History", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Maintenance History", "", 1, "C", false, 0, "")
	doc.Ln(4)

	writeItemBlock(doc, item)
	writeReportsTable(doc, reports)
	writeSignatureLines(doc)

	if err := doc.Output(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render pdf")
	}
	return nil
}

func writeItemBlock(doc *fpdf.Fpdf, item *inventory.ItemDTO) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, "Equipment", "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)

	rows := [][2]string{
		{"Code", item.ID},
		{"Type", item.Type},
		{"Brand", item.Brand},
		{"Model", deref(item.Model)},
		{"Serial", item.Serial},
		{"Status", item.Status},
		{"Location", deref(item.Location)},
		{"Department", deref(item.Department)},
		{"Registered", item.RegisteredAt},
		{"Last maintenance", deref(item.LastMaintenanceAt)},
	}
	for _, row := range rows {
		doc.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func writeReportsTable(doc *fpdf.Fpdf, reports []maintenance.ReportDTO) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, "Interventions", "B", 1, "L", false, 0, "")

	if len(reports) == 0 {
		doc.SetFont("Helvetica", "I", 10)
		doc.CellFormat(0, 8, "No interventions recorded.", "", 1, "L", false, 0, "")
		doc.Ln(4)
		return
	}

	headers := []struct {
		label string
		width float64
	}{
		{"Date", 24},
		{"Type", 30},
		{"Technician", 40},
		{"Cost", 22},
		{"Description", 74},
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(221, 221, 221)
	for _, h := range headers {
		doc.CellFormat(h.width, 7, h.label, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, report := range reports {
		cost := ""
		if report.Cost != nil {
			cost = report.Cost.StringFixed(2)
		}
		doc.CellFormat(24, 6, report.Date, "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, report.Type, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 6, deref(report.Technician), "1", 0, "L", false, 0, "")
		doc.CellFormat(22, 6, cost, "1", 0, "R", false, 0, "")
		doc.CellFormat(74, 6, deref(report.Description), "1", 0, "L", false, 0, "")
		doc.Ln(-1)
	}
	doc.Ln(6)
}

func writeSignatureLines(doc *fpdf.Fpdf) {
	doc.Ln(14)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(90, 6, "_______________________", "", 0, "C", false, 0, "")
	doc.CellFormat(90, 6, "_______________________", "", 1, "C", false, 0, "")
	doc.CellFormat(90, 6, "Technician", "", 0, "C", false, 0, "")
	doc.CellFormat(90, 6, "Department Head", "", 1, "C", false, 0, "")
}
