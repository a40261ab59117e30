// =============================================================================
// AVC Purchase-Order Processor - Report Renderer
// =============================================================================
//
// This module renders the classified buckets into the output workbook:
//
//   Sheet "Accepted" : resolved item data plus the vendor-side columns,
//                      with the formatted accepted total in cell A1.
//   Sheet "Rejected" : rejected lines with their reason codes.
//   Sheet "Optional" : suggested lines for manual review (same columns).
//
// SHEET LAYOUT:
//   Column headers sit on row 3 and data starts on row 4, with a 1-based
//   row index in column A and the data in columns B onward. Downstream
//   consumers of the previous report generation rely on this exact layout,
//   so it is preserved verbatim.
//
// Rendering is a pure formatting step: no business logic, no mutation of
// its inputs. A write failure is a hard failure surfaced to the caller.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bazic-ecom/avc-po-processor/internal/apperrors"
	"github.com/bazic-ecom/avc-po-processor/internal/classify"
)

// Sheet names in the output workbook.
const (
	SheetAccepted  = "Accepted"
	SheetRejected  = "Rejected"
	SheetSuggested = "Optional"
)

// headerRow is the 1-based worksheet row carrying the column headers; data
// starts on the row after.
const headerRow = 3

// acceptedHeaders is the fixed column schema of the Accepted sheet. The two
// blank columns separate the warehouse-facing block from the vendor-facing
// block.
var acceptedHeaders = []string{
	"SKU", "Desc", "UOM", "QTY", "PpP", "", "",
	"PO", "Item Number", "Qty", "Amazon Price", "UOM", "Total Price", "Bazic Price",
}

// rejectedHeaders is the fixed column schema of the Rejected and Optional
// sheets.
var rejectedHeaders = []string{
	"PO", "Item Number", "Qty", "Amazon Price", "UOM", "Total Price", "Bazic Price", "Reason",
}

// FileName returns the output workbook name for a run timestamp
// (MMDDYYYYHHMMSS).
func FileName(timestamp string) string {
	return fmt.Sprintf("po_output_%s.xlsx", timestamp)
}

// Write renders the sorted buckets and the accepted total into a workbook at
// the given path.
func Write(path string, buckets *classify.Buckets, acceptedTotal decimal.Decimal) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes Accepted so the workbook carries exactly
	// the three named sheets.
	if err := f.SetSheetName(f.GetSheetName(0), SheetAccepted); err != nil {
		return apperrors.Render("failed to name accepted sheet", err)
	}
	if _, err := f.NewSheet(SheetRejected); err != nil {
		return apperrors.Render("failed to create rejected sheet", err)
	}
	if _, err := f.NewSheet(SheetSuggested); err != nil {
		return apperrors.Render("failed to create optional sheet", err)
	}

	if err := writeAcceptedSheet(f, buckets.Accepted, acceptedTotal); err != nil {
		return err
	}
	if err := writeRejectedSheet(f, SheetRejected, buckets.Rejected); err != nil {
		return err
	}
	if err := writeRejectedSheet(f, SheetSuggested, buckets.Suggested); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.Render("failed to write output workbook", err).
			WithContext("path", path)
	}
	return nil
}

// writeAcceptedSheet fills the Accepted sheet, including the summary cell.
func writeAcceptedSheet(f *excelize.File, entries []classify.AcceptedEntry, total decimal.Decimal) error {
	summary := fmt.Sprintf("Total PO Price: $%s", total.StringFixed(2))
	if err := f.SetCellValue(SheetAccepted, "A1", summary); err != nil {
		return apperrors.Render("failed to write summary cell", err)
	}

	if err := writeHeaders(f, SheetAccepted, acceptedHeaders); err != nil {
		return err
	}

	for i, e := range entries {
		row := []interface{}{
			e.ItemNumber,
			"",
			e.UOMCode,
			e.Quantity,
			e.PricePerUnitInEach.InexactFloat64(),
			"",
			"",
			e.PO,
			e.ModelNumber,
			e.Quantity,
			e.UnitCost.InexactFloat64(),
			e.UOMCode,
			e.TotalPrice.InexactFloat64(),
			e.ReferenceUnitPrice.InexactFloat64(),
		}
		if err := writeDataRow(f, SheetAccepted, i, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRejectedSheet fills the Rejected or Optional sheet.
func writeRejectedSheet(f *excelize.File, sheet string, entries []classify.RejectedEntry) error {
	if err := writeHeaders(f, sheet, rejectedHeaders); err != nil {
		return err
	}

	for i, e := range entries {
		row := []interface{}{
			e.PO,
			e.ModelNumber,
			e.Quantity,
			e.UnitCost.InexactFloat64(),
			e.UOMCode,
			e.TotalPrice.InexactFloat64(),
			e.ReferenceUnitPrice.InexactFloat64(),
			string(e.Reason),
		}
		if err := writeDataRow(f, sheet, i, row); err != nil {
			return err
		}
	}
	return nil
}

// writeHeaders writes the column schema on the header row, columns B onward.
func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+2, headerRow)
		if err != nil {
			return apperrors.Render("failed to compute header cell", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return apperrors.Render("failed to write header cell", err)
		}
	}
	return nil
}

// writeDataRow writes one data row: the 1-based index in column A, values in
// columns B onward.
func writeDataRow(f *excelize.File, sheet string, idx int, values []interface{}) error {
	rowNum := headerRow + 1 + idx

	indexCell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return apperrors.Render("failed to compute index cell", err)
	}
	if err := f.SetCellValue(sheet, indexCell, idx+1); err != nil {
		return apperrors.Render("failed to write index cell", err)
	}

	startCell, err := excelize.CoordinatesToCellName(2, rowNum)
	if err != nil {
		return apperrors.Render("failed to compute data cell", err)
	}
	if err := f.SetSheetRow(sheet, startCell, &values); err != nil {
		return apperrors.Render("failed to write data row", err)
	}
	return nil
}
