package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeValidFixtures(t *testing.T, dir string) {
	writeFixture(t, dir, SalesFile,
		"product_name,date,quantity_sold,revenue\n"+
			"Cola,2024-01-10,100,550.5\n"+
			"Cola,2024-01-11,,\n")

	writeFixture(t, dir, PromoFile,
		"product_name,promo_type,discount_percentage,region,channel,promo_cost,promo_start_date,promo_end_date\n"+
			"Cola,Discount,20,South,Retail,1500,2024-01-10,2024-01-12\n")

	writeFixture(t, dir, CatalogFile,
		`[{"product_name":"Cola","category":"Beverage","base_price":5.5,"margin_percentage":0.4}]`)

	writeFixture(t, dir, ProfileFile,
		`{"name":"Mercado Central","industry":"Retail","regions":["South"]}`)
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeValidFixtures(t, dir)

	ds, err := NewLoader(dir).Load()
	require.NoError(t, err)

	require.Len(t, ds.Sales, 2)
	assert.Equal(t, "Cola", ds.Sales[0].ProductName)
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), ds.Sales[0].Date)
	require.NotNil(t, ds.Sales[0].QuantitySold)
	assert.Equal(t, 100.0, *ds.Sales[0].QuantitySold)

	// Células vazias viram nil, sem default aqui
	assert.Nil(t, ds.Sales[1].QuantitySold)
	assert.Nil(t, ds.Sales[1].Revenue)

	require.Len(t, ds.Promotions, 1)
	require.NotNil(t, ds.Promotions[0].DiscountPercentage)
	assert.Equal(t, 20.0, *ds.Promotions[0].DiscountPercentage)
	assert.Equal(t, 1500.0, ds.Promotions[0].PromoCost)

	require.Len(t, ds.Catalog, 1)
	assert.Equal(t, "Beverage", ds.Catalog[0].Category)

	require.NotNil(t, ds.Profile)
	assert.Equal(t, "Mercado Central", ds.Profile.Name)
	assert.Equal(t, []string{"South"}, ds.Profile.Regions)
}

func TestLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	// Sem sales_data.csv

	_, err := NewLoader(dir).Load()
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, SalesFile, loadErr.File)
}

func TestLoaderInvalidRows(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		file    string
	}{
		{
			name: "Data inválida nas vendas",
			mutate: func(t *testing.T, dir string) {
				writeFixture(t, dir, SalesFile,
					"product_name,date,quantity_sold,revenue\n"+
						"Cola,10/01/2024,100,550\n")
			},
			file: SalesFile,
		},
		{
			name: "Quantidade não numérica nas vendas",
			mutate: func(t *testing.T, dir string) {
				writeFixture(t, dir, SalesFile,
					"product_name,date,quantity_sold,revenue\n"+
						"Cola,2024-01-10,muitas,550\n")
			},
			file: SalesFile,
		},
		{
			name: "Número de colunas errado nas promoções",
			mutate: func(t *testing.T, dir string) {
				writeFixture(t, dir, PromoFile,
					"product_name,promo_type\n"+
						"Cola,Discount\n")
			},
			file: PromoFile,
		},
		{
			name: "JSON inválido no catálogo",
			mutate: func(t *testing.T, dir string) {
				writeFixture(t, dir, CatalogFile, "{nao é json")
			},
			file: CatalogFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeValidFixtures(t, dir)
			tt.mutate(t, dir)

			_, err := NewLoader(dir).Load()
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.file, loadErr.File)
		})
	}
}

func TestLoaderEmptyCSV(t *testing.T) {
	dir := t.TempDir()
	writeValidFixtures(t, dir)
	writeFixture(t, dir, SalesFile, "")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
}
