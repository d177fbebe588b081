package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"techtrack-api/internal/inventory"
	"techtrack-api/internal/models"
)

// workbook builds an in-memory .xlsx with one sheet of string cells
func workbook(t *testing.T, name string, rows [][]string) *bytes.Buffer {
	t.Helper()
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet(name)
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return &buf
}

func TestImportExcelAddsRows(t *testing.T) {
	store := inventory.NewStore()
	buf := workbook(t, "Assets", [][]string{
		{"Asset Name", "Manufacturer", "Purchased", "Warranty", "S/N", "Price", "Type", "State", "Notes"},
		{"ThinkPad X1", "Lenovo", "2024-03-01", "3", "LNV-1", "$1,499.50", "laptop", "in repair", "ignored"},
		{"Core Switch", "Cisco", "06/15/2022", "", "", "", "Networking", "", ""},
		{" ", "", "", "", "", "", "", "", ""},
	})

	sum, err := ImportExcel(context.Background(), store, buf, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Inserted)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Errors)
	require.Len(t, sum.Sheets, 1)
	assert.Equal(t, "Assets", sum.Sheets[0].Name)

	assets := store.List()
	require.Len(t, assets, 2)

	// newest first
	sw := assets[0]
	assert.Equal(t, "Core Switch", sw.Name)
	assert.Equal(t, models.CategoryNetworking, sw.Category)
	assert.Equal(t, models.StatusActive, sw.Status)
	assert.Equal(t, inventory.DefaultWarrantyYears, sw.WarrantyPeriodYears)
	assert.Equal(t, "2023-06-15", sw.WarrantyExpirationDate.String())
	assert.Equal(t, inventory.DefaultSerialNumber, sw.SerialNumber)

	tp := assets[1]
	assert.Equal(t, models.CategoryLaptop, tp.Category)
	assert.Equal(t, models.StatusInRepair, tp.Status)
	assert.Equal(t, 1499.5, tp.Cost)
	assert.Equal(t, "2027-03-01", tp.WarrantyExpirationDate.String())
}

func TestImportExcelRowErrors(t *testing.T) {
	store := inventory.NewStore()
	buf := workbook(t, "Sheet1", [][]string{
		{"Name", "Vendor", "Purchase Date", "Cost", "Category"},
		{"Missing vendor", "", "2024-01-01", "10", ""},
		{"Bad date", "Dell", "yesterday", "10", ""},
		{"Bad category", "Dell", "2024-01-01", "10", "Toaster"},
		{"Negative cost", "Dell", "2024-01-01", "-5", ""},
		{"Good", "Dell", "2024-01-01", "10", ""},
	})

	sum, err := ImportExcel(context.Background(), store, buf, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 4, sum.Errors)
	samples := sum.Sheets[0].Samples
	require.Len(t, samples, 4)
	assert.Equal(t, 2, samples[0].Row)
	assert.Equal(t, inventory.ErrIncompleteDraft.Error(), samples[0].Message)
	assert.Contains(t, samples[1].Message, "invalid purchase date")
	assert.Equal(t, 1, store.Len())
}

func TestImportExcelDryRun(t *testing.T) {
	store := inventory.NewStore()
	buf := workbook(t, "Sheet1", [][]string{
		{"Name", "Vendor", "Purchase Date"},
		{"Monitor", "LG", "2024-02-02"},
		{"No date", "LG", ""},
	})

	sum, err := ImportExcel(context.Background(), store, buf, ImportOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, sum.DryRun)
	assert.Equal(t, 1, sum.Inserted)
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 0, store.Len())
}

func TestImportExcelStopsAtMaxErrors(t *testing.T) {
	rows := [][]string{{"Name", "Vendor", "Purchase Date"}}
	for i := 0; i < 5; i++ {
		rows = append(rows, []string{"", "Acme", "2024-01-01"})
	}
	rows = append(rows, []string{"Late", "Acme", "2024-01-01"})

	store := inventory.NewStore()
	sum, err := ImportExcel(context.Background(), store, workbook(t, "Sheet1", rows), ImportOptions{MaxErrors: 2})

	require.ErrorIs(t, err, ErrTooManyErrors)
	assert.Equal(t, 2, sum.Errors)
	assert.Equal(t, 0, store.Len())
}

func TestImportExcelRejectsGarbage(t *testing.T) {
	_, err := ImportExcel(context.Background(), inventory.NewStore(), strings.NewReader("not a workbook"), ImportOptions{})
	assert.Error(t, err)
}

func TestImportExcelUnmappedSheetIgnored(t *testing.T) {
	buf := workbook(t, "Notes", [][]string{{"Remark", "Owner"}, {"hello", "bob"}})

	sum, err := ImportExcel(context.Background(), inventory.NewStore(), buf, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	assert.Equal(t, 0, sum.Skipped)
}

func TestExportThenImportRoundTrip(t *testing.T) {
	sample, err := inventory.SampleAssets()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportExcel(&buf, sample))

	store := inventory.NewStore()
	sum, err := ImportExcel(context.Background(), store, &buf, ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(sample), sum.Inserted)
	assert.Equal(t, 0, sum.Errors)

	// import prepends, so the order is reversed
	got := store.List()
	for i, want := range sample {
		a := got[len(got)-1-i]
		assert.Equal(t, want.Name, a.Name)
		assert.Equal(t, want.Category, a.Category)
		assert.Equal(t, want.PurchaseDate, a.PurchaseDate)
		assert.Equal(t, want.WarrantyExpirationDate, a.WarrantyExpirationDate)
		assert.Equal(t, want.Cost, a.Cost)
		assert.Equal(t, want.Status, a.Status)
		assert.NotEqual(t, want.ID, a.ID, "import assigns fresh ids")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2023-01-15", want: "2023-01-15"},
		{in: "2023/01/15", want: "2023-01-15"},
		{in: "1/15/2023", want: "2023-01-15"},
		{in: "44941", want: "2023-01-15"},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMapping(t *testing.T) {
	m, err := DefaultMapping()
	require.NoError(t, err)

	field, ok := m.fieldFor(" warranty (years) ")
	assert.True(t, ok)
	assert.Equal(t, FieldWarrantyYears, field)

	_, ok = m.fieldFor("Notes")
	assert.False(t, ok)

	_, err = ParseMapping(strings.NewReader("columns:\n  color: [Colour]\n"))
	assert.Error(t, err)
}
