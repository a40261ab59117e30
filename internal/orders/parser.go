// =============================================================================
// AVC Purchase-Order Processor - Batch File Parser
// =============================================================================
//
// This module parses the vendor purchase-order batch file into OrderLine
// records. The batch file is comma-separated with exactly 17 positional
// columns:
//
//   [PO, vendor, shipToLocation, ASIN, externalId, externalIdType,
//    modelNumber, title, availability, windowType, windowStart, windowEnd,
//    expectedDate, quantityRequested, expectedQuantity, unitCost,
//    currencyCode]
//
// PARSING RULES:
//   - The header row is skipped.
//   - Rows with any column count other than 17 are skipped.
//   - Rows with an empty model number are skipped (nothing to classify).
//   - Rows whose numeric fields fail to parse, or parse negative, are
//     dropped; the rest of the file is still processed.
//   - Parse order is preserved.
//
// =============================================================================

package orders

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazic-ecom/avc-po-processor/internal/apperrors"
	"github.com/bazic-ecom/avc-po-processor/internal/logging"
)

// batchColumnCount is the mandatory column count of a batch data row.
const batchColumnCount = 17

// Positional column indexes in the batch file.
const (
	colPO = iota
	colVendor
	colShipToLocation
	colASIN
	colExternalID
	colExternalIDType
	colModelNumber
	colTitle
	colAvailability
	colWindowType
	colWindowStart
	colWindowEnd
	colExpectedDate
	colQuantityRequested
	colExpectedQuantity
	colUnitCost
	colCurrencyCode
)

// ParseFile reads a vendor batch file and returns the order lines in file
// order. Row-level problems are absorbed (the row is dropped); only a file
// that cannot be opened at all produces an error, and even then the empty
// slice lets the pipeline continue to its no-results handling.
func ParseFile(filePath string) ([]OrderLine, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.Parse("failed to open batch file", err).
			WithContext("path", filePath)
	}
	defer file.Close()

	return parse(bufio.NewReader(file))
}

// parse consumes batch rows from a reader in a single pass.
func parse(r io.Reader) ([]OrderLine, error) {
	reader := csv.NewReader(r)

	// Column-count validation is done per row; let the reader hand over
	// whatever it finds.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var lines []OrderLine
	rowNum := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Malformed row; the reader can keep going.
				rowNum++
				logging.Debug("skipping malformed batch row",
					zap.Int("row", rowNum), zap.Error(err))
				continue
			}
			return lines, apperrors.Parse("failed to read batch file", err)
		}

		rowNum++

		// Header row.
		if rowNum == 1 {
			continue
		}

		if len(row) != batchColumnCount {
			logging.Debug("skipping batch row with wrong column count",
				zap.Int("row", rowNum), zap.Int("columns", len(row)))
			continue
		}

		line, ok := buildOrderLine(row, rowNum)
		if !ok {
			continue
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// buildOrderLine converts one 17-column row into an OrderLine. Returns
// ok=false when a numeric field is missing, unparseable, or negative.
func buildOrderLine(row []string, rowNum int) (OrderLine, bool) {
	modelNumber := strings.TrimSpace(row[colModelNumber])
	if modelNumber == "" {
		logging.Debug("skipping batch row without model number",
			zap.Int("row", rowNum))
		return OrderLine{}, false
	}

	quantityRequested, err := strconv.Atoi(strings.TrimSpace(row[colQuantityRequested]))
	if err != nil || quantityRequested < 0 {
		logging.Debug("skipping batch row with bad quantity requested",
			zap.Int("row", rowNum), zap.String("value", row[colQuantityRequested]))
		return OrderLine{}, false
	}

	expectedQuantity, err := strconv.Atoi(strings.TrimSpace(row[colExpectedQuantity]))
	if err != nil {
		logging.Debug("skipping batch row with bad expected quantity",
			zap.Int("row", rowNum), zap.String("value", row[colExpectedQuantity]))
		return OrderLine{}, false
	}

	unitCost, err := decimal.NewFromString(strings.TrimSpace(row[colUnitCost]))
	if err != nil || unitCost.IsNegative() {
		logging.Debug("skipping batch row with bad unit cost",
			zap.Int("row", rowNum), zap.String("value", row[colUnitCost]))
		return OrderLine{}, false
	}

	line := OrderLine{
		PO:                strings.TrimSpace(row[colPO]),
		Vendor:            strings.TrimSpace(row[colVendor]),
		ShipToLocation:    strings.TrimSpace(row[colShipToLocation]),
		ASIN:              strings.TrimSpace(row[colASIN]),
		ExternalID:        strings.TrimSpace(row[colExternalID]),
		ExternalIDType:    strings.TrimSpace(row[colExternalIDType]),
		ModelNumber:       modelNumber,
		Title:             strings.TrimSpace(row[colTitle]),
		Availability:      strings.TrimSpace(row[colAvailability]),
		WindowType:        strings.TrimSpace(row[colWindowType]),
		WindowStart:       strings.TrimSpace(row[colWindowStart]),
		WindowEnd:         strings.TrimSpace(row[colWindowEnd]),
		ExpectedDate:      strings.TrimSpace(row[colExpectedDate]),
		QuantityRequested: quantityRequested,
		ExpectedQuantity:  expectedQuantity,
		UnitCost:          unitCost,
		CurrencyCode:      strings.TrimSpace(row[colCurrencyCode]),
		SourceRow:         rowNum,
	}
	line.derive()

	return line, true
}
