package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
)

func TestGroupImportances(t *testing.T) {
	expanded := []modeling.FeatureWeight{
		{Feature: "discount_percentage", Importance: 0.4},
		{Feature: "product_category_Beverage", Importance: 0.2},
		{Feature: "product_category_Snack", Importance: 0.15},
		{Feature: "promo_type_Discount", Importance: 0.15},
		{Feature: "base_price", Importance: 0.1},
	}

	grouped := groupImportances(expanded, []string{"product_category", "promo_type", "region", "channel"})

	require.Len(t, grouped, 4)

	// Blocos one-hot somados na coluna de origem, ordenados por importância
	assert.Equal(t, "discount_percentage", grouped[0].Feature)
	assert.Equal(t, "product_category", grouped[1].Feature)
	assert.InDelta(t, 0.35, grouped[1].Importance, 1e-9)
	assert.Equal(t, "promo_type", grouped[2].Feature)
	assert.Equal(t, "base_price", grouped[3].Feature)
}

func TestGroupImportancesEmpty(t *testing.T) {
	assert.Empty(t, groupImportances(nil, []string{"product_category"}))
}
