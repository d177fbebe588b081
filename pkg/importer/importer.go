// Package importer moves inventory between the asset store and .xlsx
// workbooks.
package importer

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
	"github.com/tealeg/xlsx/v3"

	"techtrack-api/internal/inventory"
	"techtrack-api/internal/models"
)

// DefaultMaxErrors is used when ImportOptions.MaxErrors is zero
const DefaultMaxErrors = 50

// ErrTooManyErrors stops an import once MaxErrors rows have failed
var ErrTooManyErrors = errors.New("too many errors")

// Target receives rows that pass the add flow
type Target interface {
	Create(d inventory.Draft) (models.Asset, error)
}

// ImportOptions defines the configuration for Excel import operations
type ImportOptions struct {
	Mapping   *Mapping // nil means DefaultMapping
	DryRun    bool
	MaxErrors int
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SheetSummary contains the import statistics for a single sheet
type SheetSummary struct {
	Name     string     `json:"name"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   int        `json:"errors"`
	Samples  []RowError `json:"error_samples,omitempty"`
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	Errors   int            `json:"errors"`
	Sheets   []SheetSummary `json:"sheets"`
	DryRun   bool           `json:"dry_run"`
}

const maxSamples = 10

// ImportExcel reads every mapped sheet of the workbook in r and runs each
// row through the add flow of target. In dry-run mode rows are validated
// but target is never called. The summary is returned even on error.
func ImportExcel(ctx context.Context, target Target, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{
		DryRun: opts.DryRun,
		Sheets: []SheetSummary{},
	}

	if opts.MaxErrors <= 0 {
		opts.MaxErrors = DefaultMaxErrors
	}
	mapping := opts.Mapping
	if mapping == nil {
		var err error
		if mapping, err = DefaultMapping(); err != nil {
			return summary, errors.Wrap(err, "load default mapping")
		}
	}

	// xlsx needs random access, so the upload is buffered
	data, err := io.ReadAll(r)
	if err != nil {
		return summary, errors.Wrap(err, "read workbook")
	}
	wb, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, errors.Wrap(err, "open workbook")
	}

	for _, sheet := range wb.Sheets {
		if !mapping.wantsSheet(sheet.Name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ss, sheetErr := processSheet(ctx, target, sheet, mapping, opts, opts.MaxErrors-summary.Errors)
		summary.Sheets = append(summary.Sheets, ss)
		summary.Inserted += ss.Inserted
		summary.Skipped += ss.Skipped
		summary.Errors += ss.Errors

		if sheetErr != nil {
			return summary, sheetErr
		}
	}

	return summary, nil
}

func processSheet(ctx context.Context, target Target, sheet *xlsx.Sheet, mapping *Mapping, opts ImportOptions, budget int) (SheetSummary, error) {
	summary := SheetSummary{Name: sheet.Name}
	if sheet.MaxRow == 0 {
		return summary, nil
	}

	columns := make(map[int]string)
	for c := 0; c < sheet.MaxCol; c++ {
		field, ok := mapping.fieldFor(cellValue(sheet, 0, c))
		if !ok {
			continue
		}
		// first matching column wins
		if !hasField(columns, field) {
			columns[c] = field
		}
	}
	if len(columns) == 0 {
		return summary, nil
	}

	fail := func(row int, err error) {
		summary.Errors++
		if len(summary.Samples) < maxSamples {
			summary.Samples = append(summary.Samples, RowError{
				Sheet:   sheet.Name,
				Row:     row + 1,
				Message: err.Error(),
			})
		}
	}

	for r := 1; r < sheet.MaxRow; r++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		values := make(map[string]string, len(columns))
		for c, field := range columns {
			if v := cellValue(sheet, r, c); v != "" {
				values[field] = v
			}
		}
		if len(values) == 0 {
			summary.Skipped++
			continue
		}

		d, err := buildDraft(values)
		if err == nil {
			if opts.DryRun {
				_, err = d.Build("dry-run")
			} else {
				_, err = target.Create(d)
			}
		}
		if err != nil {
			fail(r, err)
			if summary.Errors >= budget {
				return summary, errors.Wrapf(ErrTooManyErrors, "sheet %q stopped at row %d", sheet.Name, r+1)
			}
			continue
		}
		summary.Inserted++
	}

	return summary, nil
}

func hasField(columns map[int]string, field string) bool {
	for _, f := range columns {
		if f == field {
			return true
		}
	}
	return false
}

func cellValue(sheet *xlsx.Sheet, row, col int) string {
	cell, err := sheet.Cell(row, col)
	if err != nil || cell == nil {
		return ""
	}
	return strings.TrimSpace(cell.Value)
}

// buildDraft converts raw cell text to a draft. Category and status are
// matched loosely; dates accept ISO, US and Excel serial forms.
func buildDraft(values map[string]string) (inventory.Draft, error) {
	d := inventory.Draft{
		Name:         values[FieldName],
		Vendor:       values[FieldVendor],
		SerialNumber: values[FieldSerialNumber],
	}

	if v, ok := values[FieldCategory]; ok {
		c, err := models.ParseCategory(v)
		if err != nil {
			return d, err
		}
		d.Category = c
	}
	if v, ok := values[FieldStatus]; ok {
		s, err := models.ParseStatus(v)
		if err != nil {
			return d, err
		}
		d.Status = s
	}
	if v, ok := values[FieldPurchaseDate]; ok {
		date, err := parseDate(v)
		if err != nil {
			return d, err
		}
		d.PurchaseDate = &date
	}
	if v, ok := values[FieldWarrantyYears]; ok {
		years, err := parseYears(v)
		if err != nil {
			return d, err
		}
		d.WarrantyPeriodYears = &years
	}
	if v, ok := values[FieldCost]; ok {
		cost, err := parseCost(v)
		if err != nil {
			return d, err
		}
		d.Cost = &cost
	}
	return d, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(v string) (civil.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return civil.DateOf(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		return civil.DateOf(xlsx.TimeFromExcelTime(serial, false)), nil
	}
	return civil.Date{}, errors.Errorf("invalid purchase date %q", v)
}

func parseYears(v string) (int, error) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(v), "years"))
	v = strings.TrimSpace(strings.TrimSuffix(v, "year"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.Errorf("invalid warranty period %q", v)
	}
	return int(f), nil
}

func parseCost(v string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(v)
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, errors.Errorf("invalid cost %q", v)
	}
	return f, nil
}
