package importer

import (
	"io"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx/v3"

	"techtrack-api/internal/models"
)

// ExportSheet is the name of the sheet ExportExcel writes
const ExportSheet = "Inventory"

var exportHeader = []string{
	"ID",
	"Name",
	"Category",
	"Vendor",
	"Purchase Date",
	"Warranty (Years)",
	"Warranty Expiration",
	"Serial Number",
	"Cost",
	"Status",
}

// ExportExcel writes assets as a single-sheet workbook. The header row
// uses names the importer maps back, so an export can be re-imported.
func ExportExcel(w io.Writer, assets []models.Asset) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet(ExportSheet)
	if err != nil {
		return errors.Wrap(err, "add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetString(h)
	}

	for _, a := range assets {
		row := sheet.AddRow()
		row.AddCell().SetString(a.ID)
		row.AddCell().SetString(a.Name)
		row.AddCell().SetString(string(a.Category))
		row.AddCell().SetString(a.Vendor)
		row.AddCell().SetString(a.PurchaseDate.String())
		row.AddCell().SetInt(a.WarrantyPeriodYears)
		row.AddCell().SetString(a.WarrantyExpirationDate.String())
		row.AddCell().SetString(a.SerialNumber)
		row.AddCell().SetFloat(a.Cost)
		row.AddCell().SetString(string(a.Status))
	}

	if err := wb.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}
