package inventory

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"techtrack-api/internal/models"
)

func TestExpiryDate(t *testing.T) {
	tests := []struct {
		name     string
		purchase civil.Date
		years    int
		want     civil.Date
	}{
		{
			name:     "three years",
			purchase: civil.Date{Year: 2023, Month: time.January, Day: 15},
			years:    3,
			want:     civil.Date{Year: 2026, Month: time.January, Day: 15},
		},
		{
			name:     "zero years is identity",
			purchase: civil.Date{Year: 2021, Month: time.June, Day: 10},
			years:    0,
			want:     civil.Date{Year: 2021, Month: time.June, Day: 10},
		},
		{
			name:     "leap day clamps in common year",
			purchase: civil.Date{Year: 2024, Month: time.February, Day: 29},
			years:    1,
			want:     civil.Date{Year: 2025, Month: time.February, Day: 28},
		},
		{
			name:     "leap day kept in leap year",
			purchase: civil.Date{Year: 2024, Month: time.February, Day: 29},
			years:    4,
			want:     civil.Date{Year: 2028, Month: time.February, Day: 29},
		},
		{
			name:     "leap day clamps in century year",
			purchase: civil.Date{Year: 2096, Month: time.February, Day: 29},
			years:    4,
			want:     civil.Date{Year: 2100, Month: time.February, Day: 28},
		},
		{
			name:     "leap day kept in 400 year",
			purchase: civil.Date{Year: 1996, Month: time.February, Day: 29},
			years:    4,
			want:     civil.Date{Year: 2000, Month: time.February, Day: 29},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpiryDate(tt.purchase, tt.years)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
			// deterministic
			assert.Equal(t, got, ExpiryDate(tt.purchase, tt.years))
		})
	}
}

func TestIsExpired(t *testing.T) {
	a := testAsset("1", "x")
	a.WarrantyExpirationDate = civil.Date{Year: 2024, Month: time.January, Day: 1}

	assert.False(t, IsExpired(a, time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, IsExpired(a, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsExpired(a, time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)))
	assert.True(t, IsExpired(a, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestViews(t *testing.T) {
	old := testAsset("1", "old")
	old.WarrantyExpirationDate = civil.Date{Year: 2020, Month: time.March, Day: 1}
	fresh := testAsset("2", "fresh")
	fresh.WarrantyExpirationDate = civil.Date{Year: 2030, Month: time.March, Day: 1}

	views := Views([]models.Asset{old, fresh}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, views, 2)
	assert.True(t, views[0].Expired)
	assert.False(t, views[1].Expired)
	assert.Equal(t, "fresh", views[1].Name)
}
