package assistant

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"techtrack-api/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fixed replies returned instead of errors
const (
	MissingKeyReply = "API Key is missing. Please configure your environment variables."
	EmptyReply      = "I couldn't generate a response based on that query."
	FailureReply    = "Sorry, I encountered an error while processing your request. Please try again."
)

// SnapshotItem is the reduced view of an asset shared with the model
type SnapshotItem struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Vendor          string   `json:"vendor"`
	Purchased       string   `json:"purchased"`
	WarrantyExpires string   `json:"warrantyExpires"`
	Status          string   `json:"status"`
	Cost            *float64 `json:"cost,omitempty"`
}

// Snapshot reduces assets to the fields the model sees. Ids are never
// included; cost only when includeCost is set.
func Snapshot(assets []models.Asset, includeCost bool) []SnapshotItem {
	out := make([]SnapshotItem, 0, len(assets))
	for _, a := range assets {
		item := SnapshotItem{
			Name:            a.Name,
			Category:        string(a.Category),
			Vendor:          a.Vendor,
			Purchased:       a.PurchaseDate.String(),
			WarrantyExpires: a.WarrantyExpirationDate.String(),
			Status:          string(a.Status),
		}
		if includeCost {
			cost := a.Cost
			item.Cost = &cost
		}
		out = append(out, item)
	}
	return out
}

const instructionTemplate = `
You are an expert IT Inventory Manager AI Assistant.
You have access to the current hardware inventory dataset provided below in JSON format.

Your role is to:
1. Answer questions about the specific data (e.g., "How many Dells?", "What is expiring soon?").
2. Provide insights on lifecycle management, warranty risks, and vendor diversification.
3. Suggest replacements or budget considerations based on industry standards if asked.

Current Inventory Data:
%s

Keep answers concise, professional, and formatted with Markdown where helpful (lists, bold text).
`

// SystemInstruction embeds the serialized snapshot in the fixed preamble
func SystemInstruction(items []SnapshotItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal inventory snapshot: %w", err)
	}
	return fmt.Sprintf(instructionTemplate, data), nil
}
