package inventory

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"techtrack-api/internal/models"
)

//go:embed seed.yaml
var sampleSeed []byte

// seedFile is the on-disk layout of a seed inventory
type seedFile struct {
	Version int         `yaml:"version"`
	Assets  []seedAsset `yaml:"assets"`
}

type seedAsset struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Category      string  `yaml:"category"`
	Vendor        string  `yaml:"vendor"`
	PurchaseDate  string  `yaml:"purchase_date"`
	WarrantyYears *int    `yaml:"warranty_years"`
	SerialNumber  string  `yaml:"serial_number"`
	Cost          float64 `yaml:"cost"`
	Status        string  `yaml:"status"`
}

// SampleAssets returns the built-in demo inventory
func SampleAssets() ([]models.Asset, error) {
	return LoadSeed(bytes.NewReader(sampleSeed))
}

// LoadSeedFile reads a YAML seed inventory from path
func LoadSeedFile(path string) ([]models.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a YAML seed inventory. Every entry goes through the
// add flow so defaults and the derived expiration date match assets
// created at runtime. Entries without an id get a fresh one.
func LoadSeed(r io.Reader) ([]models.Asset, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return []models.Asset{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	assets := make([]models.Asset, 0, len(file.Assets))
	seen := make(map[string]bool, len(file.Assets))
	for i, sa := range file.Assets {
		d, err := sa.draft()
		if err != nil {
			return nil, fmt.Errorf("seed asset %d: %w", i+1, err)
		}
		id := sa.ID
		if id == "" {
			id = newID()
		}
		if seen[id] {
			return nil, fmt.Errorf("seed asset %d: duplicate id %q", i+1, id)
		}
		seen[id] = true

		a, err := d.Build(id)
		if err != nil {
			return nil, fmt.Errorf("seed asset %d: %w", i+1, err)
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func (sa seedAsset) draft() (Draft, error) {
	d := Draft{
		Name:                sa.Name,
		Vendor:              sa.Vendor,
		WarrantyPeriodYears: sa.WarrantyYears,
		SerialNumber:        sa.SerialNumber,
		Cost:                &sa.Cost,
	}
	if sa.PurchaseDate != "" {
		pd, err := civil.ParseDate(sa.PurchaseDate)
		if err != nil {
			return Draft{}, fmt.Errorf("purchase_date: %w", err)
		}
		d.PurchaseDate = &pd
	}
	if sa.Category != "" {
		c, err := models.ParseCategory(sa.Category)
		if err != nil {
			return Draft{}, err
		}
		d.Category = c
	}
	if sa.Status != "" {
		s, err := models.ParseStatus(sa.Status)
		if err != nil {
			return Draft{}, err
		}
		d.Status = s
	}
	return d, nil
}
