package domain

// ProductCatalogEntry representa um produto do catálogo (product_catalog.json)
type ProductCatalogEntry struct {
	ProductName      string  `json:"product_name"`
	Category         string  `json:"category"`
	BasePrice        float64 `json:"base_price"`
	MarginPercentage float64 `json:"margin_percentage"`
}
