package inventory

import (
	"time"

	"github.com/dustin/go-humanize"

	"techtrack-api/internal/models"
)

// Bucket is one group-by-count entry
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary holds the dashboard statistics for a collection
type Summary struct {
	TotalAssets          int      `json:"total_assets"`
	TotalValue           float64  `json:"total_value"`
	TotalValueDisplay    string   `json:"total_value_display"`
	ExpiredWarrantyCount int      `json:"expired_warranty_count"`
	ActiveCount          int      `json:"active_count"`
	CategoryBreakdown    []Bucket `json:"category_breakdown"`
	StatusBreakdown      []Bucket `json:"status_breakdown"`
}

// Summarize computes the dashboard statistics of assets at now.
// Breakdowns list each distinct value in first-seen order.
func Summarize(assets []models.Asset, now time.Time) Summary {
	sum := Summary{
		TotalAssets:       len(assets),
		CategoryBreakdown: []Bucket{},
		StatusBreakdown:   []Bucket{},
	}

	categoryIdx := make(map[models.Category]int)
	statusIdx := make(map[models.Status]int)

	for _, a := range assets {
		sum.TotalValue += a.Cost
		if IsExpired(a, now) {
			sum.ExpiredWarrantyCount++
		}
		if a.Status == models.StatusActive {
			sum.ActiveCount++
		}

		if i, ok := categoryIdx[a.Category]; ok {
			sum.CategoryBreakdown[i].Value++
		} else {
			categoryIdx[a.Category] = len(sum.CategoryBreakdown)
			sum.CategoryBreakdown = append(sum.CategoryBreakdown, Bucket{Name: string(a.Category), Value: 1})
		}

		if i, ok := statusIdx[a.Status]; ok {
			sum.StatusBreakdown[i].Value++
		} else {
			statusIdx[a.Status] = len(sum.StatusBreakdown)
			sum.StatusBreakdown = append(sum.StatusBreakdown, Bucket{Name: string(a.Status), Value: 1})
		}
	}

	sum.TotalValueDisplay = "$" + humanize.Commaf(sum.TotalValue)
	return sum
}
