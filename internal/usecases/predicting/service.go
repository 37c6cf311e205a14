// Package predicting responde o impacto esperado de uma promoção usando o
// modelo ativo do serviço.
package predicting

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

// Defaults aplicados a campos opcionais ausentes na requisição
const (
	defaultVolatilityRatio = 0.2
	defaultSeasonality     = 1.0
	defaultCompetitor      = 0.5
	defaultMargin          = 0.3
	defaultRegion          = "National"
	defaultChannel         = "Retail"
	defaultPromoType       = "Discount"
	defaultCategory        = "Unknown"
)

type Predictor interface {
	PredictPromotionImpact(req domain.PromotionImpactRequest) (*domain.PromotionImpactResponse, error)
	PredictBulk(req domain.BulkPromotionImpactRequest) ([]domain.PromotionImpactResponse, error)
}

type Service struct {
	models *ModelContext
}

func NewService(models *ModelContext) *Service {
	return &Service{models: models}
}

// PredictPromotionImpact monta a linha de features da promoção proposta,
// prediz as vendas do período e deriva lift, margem incremental, ROI e a
// pontuação de confiança. Razões com denominador zero (baseline ou custo)
// degradam para 0 em vez de propagar infinito.
func (s *Service) PredictPromotionImpact(req domain.PromotionImpactRequest) (*domain.PromotionImpactResponse, error) {
	artifact, err := s.models.Current()
	if err != nil {
		return nil, err
	}

	row := featureRowFromRequest(req.Product, req.Promotion)

	predicted, err := artifact.Pipeline.PredictOne(row)
	if err != nil {
		return nil, err
	}

	baseline := req.Product.AvgMonthlySales
	lift := predicted - baseline

	liftPercentage := 0.0
	if baseline > 0 {
		liftPercentage = lift / baseline * 100
	}

	margin := defaultMargin
	if req.Product.MarginPercentage != nil {
		margin = *req.Product.MarginPercentage
	}
	incrementalMargin := lift * req.Product.BasePrice * margin

	roi := 0.0
	if req.Promotion.PromoCost > 0 {
		roi = incrementalMargin / req.Promotion.PromoCost * 100
	}

	result := domain.PromotionImpactResult{
		ProductName:         req.Product.ProductName,
		BaselineSales:       baseline,
		PredictedSales:      predicted,
		SalesLift:           lift,
		SalesLiftPercentage: liftPercentage,
		PromoCost:           req.Promotion.PromoCost,
		IncrementalMargin:   incrementalMargin,
		ROI:                 roi,
		Confidence:          confidence(artifact.Metrics),
	}

	logrus.WithFields(logrus.Fields{
		"component":  "predicting",
		"product":    result.ProductName,
		"model_type": artifact.ModelType,
		"sales_lift": result.SalesLift,
		"roi":        result.ROI,
	}).Debug("promotion impact predicted")

	return &domain.PromotionImpactResponse{
		PromotionImpactResult: result,
		Timestamp:             time.Now().UTC(),
	}, nil
}

// PredictBulk aplica a mesma promoção a cada produto da lista, na ordem
func (s *Service) PredictBulk(req domain.BulkPromotionImpactRequest) ([]domain.PromotionImpactResponse, error) {
	if len(req.Products) == 0 {
		return nil, ErrEmptyBulk
	}

	out := make([]domain.PromotionImpactResponse, 0, len(req.Products))
	for _, product := range req.Products {
		response, err := s.PredictPromotionImpact(domain.PromotionImpactRequest{
			Product:   product,
			Promotion: req.Promotion,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *response)
	}

	return out, nil
}

// featureRowFromRequest materializa a linha de features da predição,
// preenchendo os opcionais ausentes com os defaults documentados
func featureRowFromRequest(product domain.ProductData, promo domain.PromotionDetails) domain.FeatureRow {
	volatility := defaultVolatilityRatio * product.AvgMonthlySales
	if product.SalesVolatility != nil {
		volatility = *product.SalesVolatility
	}

	seasonality := defaultSeasonality
	if product.SeasonalityIndex != nil {
		seasonality = *product.SeasonalityIndex
	}

	competitor := defaultCompetitor
	if product.CompetitorIntensity != nil {
		competitor = *product.CompetitorIntensity
	}

	region := defaultRegion
	if promo.Region != nil && *promo.Region != "" {
		region = *promo.Region
	}

	channel := defaultChannel
	if promo.Channel != nil && *promo.Channel != "" {
		channel = *promo.Channel
	}

	promoType := promo.PromoType
	if promoType == "" {
		promoType = defaultPromoType
	}

	category := product.ProductCategory
	if category == "" {
		category = defaultCategory
	}

	return domain.FeatureRow{
		ProductName:         product.ProductName,
		BasePrice:           product.BasePrice,
		DiscountPercentage:  promo.DiscountPercentage,
		AvgMonthlySales:     product.AvgMonthlySales,
		SalesVolatility:     volatility,
		SeasonalityIndex:    seasonality,
		CompetitorIntensity: competitor,
		ProductCategory:     category,
		PromoType:           promoType,
		Region:              region,
		Channel:             channel,
		IsPromo:             true,
	}
}

// confidence converte o r² de validação em uma pontuação heurística no
// intervalo [0.7, 1.0]; sem métricas, retorna o valor conservador 0.85
func confidence(metrics *domain.ValidationMetrics) float64 {
	if metrics == nil {
		return 0.85
	}

	r2 := math.Min(math.Max(metrics.R2, 0), 1)
	return 0.7 + 0.3*r2
}
