package inventory

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"techtrack-api/internal/models"
)

const (
	// DefaultSerialNumber is stored when no serial number is given
	DefaultSerialNumber = "N/A"
	// DefaultWarrantyYears applies when a draft leaves the warranty unset
	DefaultWarrantyYears = 1
	// FormWarrantyYears is the warranty the entry form starts with
	FormWarrantyYears = 3
)

var (
	// ErrIncompleteDraft means name, vendor or purchase date is missing
	ErrIncompleteDraft = errors.New("name, vendor and purchase date are required")
	// ErrInvalidDraft means a field holds a value outside its domain
	ErrInvalidDraft = errors.New("invalid asset draft")
)

// Draft is the user input of the add flow. Pointer fields distinguish
// unset from zero.
type Draft struct {
	Name                string          `json:"name" validate:"required"`
	Category            models.Category `json:"category" validate:"omitempty,category"`
	Vendor              string          `json:"vendor" validate:"required"`
	PurchaseDate        *civil.Date     `json:"purchase_date" validate:"required,calendar_date"`
	WarrantyPeriodYears *int            `json:"warranty_period_years" validate:"omitempty,gte=0"`
	SerialNumber        string          `json:"serial_number"`
	Cost                *float64        `json:"cost" validate:"omitempty,gte=0"`
	Status              models.Status   `json:"status" validate:"omitempty,asset_status"`
}

// DefaultDraft returns the values the entry form is reset to
func DefaultDraft() Draft {
	years := FormWarrantyYears
	return Draft{
		Category:            models.CategoryLaptop,
		Status:              models.StatusActive,
		WarrantyPeriodYears: &years,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("asset_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(civil.Date)
		return ok && d.IsValid()
	})
	return v
}

// Build turns a draft into a complete asset with id. Defaults: category
// Laptop, status Active, warranty one year, cost zero, serial "N/A".
// The expiration date is derived here and never recomputed.
func (d Draft) Build(id string) (models.Asset, error) {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return models.Asset{}, ErrIncompleteDraft
				}
			}
			return models.Asset{}, fmt.Errorf("%w: %s", ErrInvalidDraft, verrs[0].Field())
		}
		return models.Asset{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	a := models.Asset{
		ID:                  id,
		Name:                d.Name,
		Category:            d.Category,
		Vendor:              d.Vendor,
		PurchaseDate:        *d.PurchaseDate,
		WarrantyPeriodYears: DefaultWarrantyYears,
		SerialNumber:        d.SerialNumber,
		Status:              d.Status,
	}
	if a.Category == "" {
		a.Category = models.CategoryLaptop
	}
	if a.Status == "" {
		a.Status = models.StatusActive
	}
	if d.WarrantyPeriodYears != nil {
		a.WarrantyPeriodYears = *d.WarrantyPeriodYears
	}
	if d.Cost != nil {
		a.Cost = *d.Cost
	}
	if a.SerialNumber == "" {
		a.SerialNumber = DefaultSerialNumber
	}
	a.WarrantyExpirationDate = ExpiryDate(a.PurchaseDate, a.WarrantyPeriodYears)
	return a, nil
}

// Create runs the add flow: the draft is completed with a fresh id and
// prepended. On error the store is unchanged.
func (s *Store) Create(d Draft) (models.Asset, error) {
	a, err := d.Build(s.newID())
	if err != nil {
		return models.Asset{}, err
	}
	s.Add(a)
	return a, nil
}

func newID() string {
	return uuid.NewString()
}
