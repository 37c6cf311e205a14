package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

func TestExportProcessed(t *testing.T) {
	dir := t.TempDir()

	rows := []domain.FeatureRow{
		{
			ProductName:        "Cola",
			Date:               time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			ProductCategory:    "Beverage",
			BasePrice:          5.5,
			DiscountPercentage: 20,
			PromoType:          "Discount",
			IsPromo:            true,
			QuantitySold:       120,
		},
	}

	require.NoError(t, ExportProcessed(rows, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "processed_data.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "product_name,date,product_category"))
	assert.Contains(t, lines[1], "Cola,2024-01-10,Beverage,5.5,20,Discount,1")
}
