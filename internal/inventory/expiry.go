package inventory

import (
	"time"

	"cloud.google.com/go/civil"

	"techtrack-api/internal/models"
)

// ExpiryDate adds years calendar years to purchase. A Feb 29 purchase
// lands on Feb 28 when the target year has no leap day.
func ExpiryDate(purchase civil.Date, years int) civil.Date {
	if years == 0 {
		return purchase
	}
	out := civil.Date{Year: purchase.Year + years, Month: purchase.Month, Day: purchase.Day}
	if out.Month == time.February && out.Day == 29 && !isLeap(out.Year) {
		out.Day = 28
	}
	return out
}

// IsExpired reports whether the warranty of a ended before now. The
// expiration date is taken at midnight UTC, so an asset counts as expired
// from the first instant of its expiration day.
func IsExpired(a models.Asset, now time.Time) bool {
	return a.WarrantyExpirationDate.In(time.UTC).Before(now)
}

// Views decorates assets with their expiry flag at now
func Views(assets []models.Asset, now time.Time) []models.AssetView {
	out := make([]models.AssetView, 0, len(assets))
	for _, a := range assets {
		out = append(out, models.AssetView{Asset: a, Expired: IsExpired(a, now)})
	}
	return out
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
