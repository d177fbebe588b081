package importer

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Draft fields a column can feed
const (
	FieldName          = "name"
	FieldCategory      = "category"
	FieldVendor        = "vendor"
	FieldPurchaseDate  = "purchase_date"
	FieldWarrantyYears = "warranty_period_years"
	FieldSerialNumber  = "serial_number"
	FieldCost          = "cost"
	FieldStatus        = "status"
)

var knownFields = map[string]bool{
	FieldName:          true,
	FieldCategory:      true,
	FieldVendor:        true,
	FieldPurchaseDate:  true,
	FieldWarrantyYears: true,
	FieldSerialNumber:  true,
	FieldCost:          true,
	FieldStatus:        true,
}

//go:embed mapping.yaml
var defaultMapping []byte

// Mapping ties spreadsheet headers to draft fields
type Mapping struct {
	Version int                 `yaml:"version"`
	Sheets  []string            `yaml:"sheets"`
	Columns map[string][]string `yaml:"columns"`
}

// DefaultMapping returns the built-in header aliases
func DefaultMapping() (*Mapping, error) {
	return ParseMapping(bytes.NewReader(defaultMapping))
}

// LoadMapping reads a mapping file from path
func LoadMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mapping")
	}
	defer f.Close()
	return ParseMapping(f)
}

// ParseMapping decodes a YAML mapping and rejects unknown fields
func ParseMapping(r io.Reader) (*Mapping, error) {
	var m Mapping
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode mapping")
	}
	if len(m.Columns) == 0 {
		return nil, errors.New("mapping has no columns")
	}
	for field := range m.Columns {
		if !knownFields[field] {
			return nil, errors.Errorf("mapping: unknown field %q", field)
		}
	}
	return &m, nil
}

// fieldFor returns the draft field a header maps to, if any
func (m *Mapping) fieldFor(header string) (string, bool) {
	key := headerKey(header)
	if key == "" {
		return "", false
	}
	for field, aliases := range m.Columns {
		if headerKey(field) == key {
			return field, true
		}
		for _, alias := range aliases {
			if headerKey(alias) == key {
				return field, true
			}
		}
	}
	return "", false
}

// wantsSheet reports whether a sheet should be read
func (m *Mapping) wantsSheet(name string) bool {
	if len(m.Sheets) == 0 {
		return true
	}
	for _, s := range m.Sheets {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func headerKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
