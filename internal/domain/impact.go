package domain

import "time"

// ProductData descreve o produto em uma requisição de predição. Campos opcionais
// são ponteiros: ausentes recebem os defaults documentados do motor de predição.
type ProductData struct {
	ProductName         string   `json:"product_name"`
	BasePrice           float64  `json:"base_price"`
	AvgMonthlySales     float64  `json:"avg_monthly_sales"`
	SalesVolatility     *float64 `json:"sales_volatility,omitempty"`
	SeasonalityIndex    *float64 `json:"seasonality_index,omitempty"`
	CompetitorIntensity *float64 `json:"competitor_intensity,omitempty"`
	ProductCategory     string   `json:"product_category"`
	MarginPercentage    *float64 `json:"margin_percentage,omitempty"`
}

// PromotionDetails descreve a promoção em uma requisição de predição
type PromotionDetails struct {
	PromoType          string  `json:"promo_type"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Region             *string `json:"region,omitempty"`
	Channel            *string `json:"channel,omitempty"`
	PromoCost          float64 `json:"promo_cost"`
	PromoStartDate     *string `json:"promo_start_date,omitempty"`
	PromoEndDate       *string `json:"promo_end_date,omitempty"`
}

// PromotionImpactRequest é o corpo de POST /v1/predict/promotion
type PromotionImpactRequest struct {
	Product   ProductData      `json:"product"`
	Promotion PromotionDetails `json:"promotion"`
}

// BulkPromotionImpactRequest aplica a mesma promoção a vários produtos
type BulkPromotionImpactRequest struct {
	Products  []ProductData    `json:"products"`
	Promotion PromotionDetails `json:"promotion"`
}

// PromotionImpactResult é o resultado derivado de uma predição de promoção.
// Confidence é uma pontuação heurística limitada (função do r² de validação),
// não um intervalo estatístico de predição.
type PromotionImpactResult struct {
	ProductName         string  `json:"product"`
	BaselineSales       float64 `json:"baseline_sales"`
	PredictedSales      float64 `json:"predicted_sales"`
	SalesLift           float64 `json:"sales_lift"`
	SalesLiftPercentage float64 `json:"sales_lift_percentage"`
	PromoCost           float64 `json:"promo_cost"`
	IncrementalMargin   float64 `json:"incremental_margin"`
	ROI                 float64 `json:"roi"`
	Confidence          float64 `json:"confidence"`
}

// PromotionImpactResponse anexa o timestamp de atendimento ao resultado
type PromotionImpactResponse struct {
	PromotionImpactResult
	Timestamp time.Time `json:"timestamp"`
}

// ValidationMetrics são as métricas calculadas no conjunto de validação
type ValidationMetrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// ModelInfo resume um artefato persistido para GET /v1/models
type ModelInfo struct {
	ModelID      string            `json:"model_id"`
	ModelType    string            `json:"model_type"`
	TrainingDate time.Time         `json:"training_date"`
	Metrics      ValidationMetrics `json:"metrics"`
	Features     []string          `json:"features"`
	IsActive     bool              `json:"is_active"`
}
