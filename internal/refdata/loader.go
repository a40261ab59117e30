// =============================================================================
// AVC Purchase-Order Processor - Reference Data Loader
// =============================================================================
//
// This module loads the two reference masters into lookup tables:
//
//   UOM master           : 3 columns [modelNumber, sku, packQuantity],
//                          either CSV or an XLSX with the same layout.
//                          Rows with the wrong shape are skipped silently.
//   Inventory/price master: XLSX, first worksheet only, header row ignored.
//                          Item number in column 2, available quantity in
//                          column 4, reference unit price in column 8.
//
// Each loader also reports a human-readable staleness message derived from
// the file's last-modified timestamp, so the operator can tell when a master
// export is out of date.
//
// FAILURE CONTRACT:
//   An unreadable or corrupt master yields an empty table plus a typed
//   REFERENCE_LOAD_FAILURE error. The pipeline continues with the empty
//   table; every lookup then falls back to defaults that can never pass the
//   acceptance checks.
//
// =============================================================================

package refdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/bazic-ecom/avc-po-processor/internal/apperrors"
	"github.com/bazic-ecom/avc-po-processor/internal/logging"
	"github.com/bazic-ecom/avc-po-processor/pkg/utils"
)

// uomColumnCount is the mandatory column count of a UOM master row.
const uomColumnCount = 3

// compositeKey builds the "SKU-packQty" lookup key, which matches the shape
// of a vendor model number.
func compositeKey(sku string, packQty int) string {
	return fmt.Sprintf("%s-%d", sku, packQty)
}

// stalenessMessage formats the age of a master file in whole days.
func stalenessMessage(name, path string) string {
	modTime, err := utils.ModTime(path)
	if err != nil {
		return ""
	}
	age := utils.AgeInDays(time.Now(), modTime)
	return fmt.Sprintf("%s master file was updated %d days ago.", name, age)
}

// LoadUOMMaster loads the unit-of-measure master. The file format is chosen
// by extension: .xlsx is read as a spreadsheet, anything else as CSV. Both
// layouts carry the same three columns.
func LoadUOMMaster(path string) (*UOMTable, string, error) {
	message := stalenessMessage("UOM", path)

	var (
		table *UOMTable
		err   error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, err = loadUOMMasterXLSX(path)
	} else {
		table, err = loadUOMMasterCSV(path)
	}
	if err != nil {
		return NewUOMTable(), message, err
	}

	logging.Debug("loaded UOM master",
		zap.String("path", path), zap.Int("entries", table.Len()))
	return table, message, nil
}

// loadUOMMasterCSV reads the CSV layout in a single streaming pass.
func loadUOMMasterCSV(path string) (*UOMTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.ReferenceLoad("failed to open UOM master", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ReferenceLoad("failed to read UOM master", err).
			WithContext("path", path)
	}

	table := NewUOMTable()
	for _, row := range rows {
		addUOMRow(table, row)
	}
	return table, nil
}

// loadUOMMasterXLSX reads the spreadsheet layout: first worksheet, header
// row ignored, same three columns.
func loadUOMMasterXLSX(path string) (*UOMTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.ReferenceLoad("failed to open UOM master", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, apperrors.ReferenceLoad("UOM master has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.ReferenceLoad("failed to read UOM master rows", err).
			WithContext("path", path)
	}

	table := NewUOMTable()
	for i, row := range rows {
		if i == 0 {
			continue
		}
		addUOMRow(table, row)
	}
	return table, nil
}

// addUOMRow indexes one master row. Rows with the wrong column count, empty
// cells, or a non-numeric pack quantity are skipped silently; a header row
// falls out naturally here.
func addUOMRow(table *UOMTable, row []string) {
	if len(row) != uomColumnCount {
		return
	}

	modelNumber := strings.TrimSpace(row[0])
	sku := strings.TrimSpace(row[1])
	packQty, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if modelNumber == "" || sku == "" || err != nil {
		return
	}

	table.Add(UOMEntry{
		ModelNumber: modelNumber,
		SKU:         sku,
		PackQty:     packQty,
	})
}

// LoadInventoryMaster loads the inventory/price master spreadsheet. Only the
// first worksheet is read, in one grid scan.
func LoadInventoryMaster(path string) (*InventoryTable, string, error) {
	message := stalenessMessage("Inventory", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return NewInventoryTable(), message,
			apperrors.ReferenceLoad("failed to open inventory master", err).
				WithContext("path", path)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return NewInventoryTable(), message,
			apperrors.ReferenceLoad("inventory master has no sheets", nil).
				WithContext("path", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return NewInventoryTable(), message,
			apperrors.ReferenceLoad("failed to read inventory master rows", err).
				WithContext("path", path)
	}

	table := NewInventoryTable()
	for i, row := range rows {
		if i == 0 {
			continue
		}
		addInventoryRow(table, row)
	}

	logging.Debug("loaded inventory master",
		zap.String("path", path), zap.Int("entries", table.Len()))
	return table, message, nil
}

// Inventory master column indexes (0-based): item number in column 2,
// available quantity in column 4, reference unit price in column 8.
const (
	invColItemNumber     = 1
	invColAvailableQty   = 3
	invColReferencePrice = 7
)

// addInventoryRow indexes one export row. Unparseable cells leave the
// corresponding field at its zero value; an empty item number skips the row.
func addInventoryRow(table *InventoryTable, row []string) {
	itemNumber := cellAt(row, invColItemNumber)
	if itemNumber == "" {
		return
	}

	entry := InventoryEntry{ItemNumber: itemNumber}

	if qty := cellAt(row, invColAvailableQty); qty != "" {
		entry.AvailableQty = parseCellInt(qty)
	}
	if price := cellAt(row, invColReferencePrice); price != "" {
		if d, err := decimal.NewFromString(price); err == nil {
			entry.ReferencePrice = d
		}
	}

	table.Add(entry)
}

// cellAt returns a trimmed cell value, tolerating short rows: excelize drops
// trailing empty cells from GetRows.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseCellInt parses an integer cell, tolerating the decimal formatting
// spreadsheets apply to numeric cells ("1000" or "1000.0").
func parseCellInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}
