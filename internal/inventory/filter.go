package inventory

import (
	"strings"

	"techtrack-api/internal/models"
)

// Filter keeps the assets whose name, vendor or serial number contain
// term, ignoring case. An empty term keeps everything.
func Filter(assets []models.Asset, term string) []models.Asset {
	out := make([]models.Asset, 0, len(assets))
	needle := strings.ToLower(term)
	for _, a := range assets {
		if matches(a, needle) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a models.Asset, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name), needle) ||
		strings.Contains(strings.ToLower(a.Vendor), needle) ||
		strings.Contains(strings.ToLower(a.SerialNumber), needle)
}
