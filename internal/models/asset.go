package models

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Category is the hardware category of an asset
type Category string

const (
	CategoryLaptop     Category = "Laptop"
	CategoryDesktop    Category = "Desktop"
	CategoryServer     Category = "Server"
	CategoryNetworking Category = "Networking"
	CategoryPeripheral Category = "Peripheral"
	CategoryMobile     Category = "Mobile"
	CategoryOther      Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryLaptop,
	CategoryDesktop,
	CategoryServer,
	CategoryNetworking,
	CategoryPeripheral,
	CategoryMobile,
	CategoryOther,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle status of an asset
type Status string

const (
	StatusActive   Status = "Active"
	StatusInRepair Status = "In Repair"
	StatusRetired  Status = "Retired"
	StatusLost     Status = "Lost"
)

// Statuses lists every status in display order
var Statuses = []Status{
	StatusActive,
	StatusInRepair,
	StatusRetired,
	StatusLost,
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively
func ParseCategory(v string) (Category, error) {
	for _, c := range Categories {
		if equalFold(string(c), v) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", v)
}

// ParseStatus matches a status name case-insensitively.
// "in_repair" and "inrepair" are accepted for In Repair.
func ParseStatus(v string) (Status, error) {
	for _, s := range Statuses {
		if equalFold(string(s), v) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", v)
}

// Asset represents a tracked hardware item
type Asset struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Category               Category   `json:"category"`
	Vendor                 string     `json:"vendor"`
	PurchaseDate           civil.Date `json:"purchase_date"`
	WarrantyPeriodYears    int        `json:"warranty_period_years"`
	WarrantyExpirationDate civil.Date `json:"warranty_expiration_date"`
	SerialNumber           string     `json:"serial_number"`
	Cost                   float64    `json:"cost"`
	Status                 Status     `json:"status"`
}

// AssetView is an asset as rendered in lists, with the display-time expiry flag
type AssetView struct {
	Asset
	Expired bool `json:"expired"`
}

// equalFold compares ignoring case, spaces, underscores and dashes
func equalFold(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == ' ' || ch == '_' || ch == '-':
			continue
		case ch >= 'A' && ch <= 'Z':
			out = append(out, ch+('a'-'A'))
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
