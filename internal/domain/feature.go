package domain

import "time"

// Nomes das colunas consumidas pelo modelo. A ordem é o contrato do pré-processador:
// primeiro as numéricas padronizadas, depois as categóricas one-hot.
var (
	NumericalFeatures = []string{
		"base_price",
		"discount_percentage",
		"avg_monthly_sales",
		"sales_volatility",
		"seasonality_index",
		"competitor_intensity",
	}

	CategoricalFeatures = []string{
		"product_category",
		"promo_type",
		"region",
		"channel",
	}
)

// FeatureRow é uma observação engenheirada (produto × data), pronta para o modelo.
// Campos intermediários (calendário, unit_price, is_promo, margem) acompanham a
// linha durante o pipeline de derivação mesmo não sendo entradas do modelo.
type FeatureRow struct {
	ProductName string    `json:"product_name"`
	Date        time.Time `json:"date"`

	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	DayOfWeek int     `json:"day_of_week"`
	IsWeekend bool    `json:"is_weekend"`
	UnitPrice float64 `json:"unit_price"`

	IsPromo            bool    `json:"is_promo"`
	PromoType          string  `json:"promo_type"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Region             string  `json:"region"`
	Channel            string  `json:"channel"`

	ProductCategory  string  `json:"product_category"`
	BasePrice        float64 `json:"base_price"`
	MarginPercentage float64 `json:"margin_percentage"`

	AvgMonthlySales     float64 `json:"avg_monthly_sales"`
	SalesVolatility     float64 `json:"sales_volatility"`
	SeasonalityIndex    float64 `json:"seasonality_index"`
	CompetitorIntensity float64 `json:"competitor_intensity"`

	QuantitySold float64 `json:"quantity_sold"`
}

// NumericValue retorna o valor de uma feature numérica pelo nome da coluna
func (r FeatureRow) NumericValue(name string) float64 {
	switch name {
	case "base_price":
		return r.BasePrice
	case "discount_percentage":
		return r.DiscountPercentage
	case "avg_monthly_sales":
		return r.AvgMonthlySales
	case "sales_volatility":
		return r.SalesVolatility
	case "seasonality_index":
		return r.SeasonalityIndex
	case "competitor_intensity":
		return r.CompetitorIntensity
	case "margin_percentage":
		return r.MarginPercentage
	case "unit_price":
		return r.UnitPrice
	}
	return 0
}

// CategoricalValue retorna o valor de uma feature categórica pelo nome da coluna
func (r FeatureRow) CategoricalValue(name string) string {
	switch name {
	case "product_category":
		return r.ProductCategory
	case "promo_type":
		return r.PromoType
	case "region":
		return r.Region
	case "channel":
		return r.Channel
	}
	return ""
}
