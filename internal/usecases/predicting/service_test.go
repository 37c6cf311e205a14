package predicting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
)

func floatPtr(v float64) *float64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

// constantModel devolve sempre o mesmo valor, para fixar a aritmética de
// lift/margem/ROI sem depender de um modelo treinado
type constantModel struct {
	value float64
}

func (m *constantModel) Fit(x [][]float64, y []float64) error { return nil }

func (m *constantModel) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = m.value
	}
	return out
}

func (m *constantModel) FeatureImportances() []float64 { return nil }

func constantContext(t *testing.T, value float64) *ModelContext {
	t.Helper()

	preprocessor := modeling.NewPreprocessor()
	_, err := preprocessor.FitTransform([]domain.FeatureRow{
		{ProductCategory: "Beverage", PromoType: "Discount", Region: "National", Channel: "Retail"},
		{ProductCategory: "Snack", PromoType: "BOGO", Region: "South", Channel: "Online"},
	})
	require.NoError(t, err)

	models := NewModelContext()
	models.Swap(&modeling.Artifact{
		ModelType: modeling.ModelElasticNet,
		Pipeline: &modeling.Pipeline{
			Preprocessor: preprocessor,
			Model:        &constantModel{value: value},
		},
	}, "elastic_net_model_20240101_000000")

	return models
}

// trainedContext treina um modelo pequeno em dados sintéticos e o ativa
func trainedContext(t *testing.T) *ModelContext {
	t.Helper()

	rows, target := modeling.SyntheticDataset(200, 42)

	artifact, err := modeling.NewService().Train(rows, target, modeling.TrainOptions{
		ModelType: modeling.ModelRandomForest,
	})
	require.NoError(t, err)

	models := NewModelContext()
	models.Swap(artifact, "random_forest_model_20240101_000000")

	return models
}

func TestPredictPromotionImpact(t *testing.T) {
	models := trainedContext(t)
	service := NewService(models)

	request := domain.PromotionImpactRequest{
		Product: domain.ProductData{
			ProductName:      "Cola Premium",
			BasePrice:        50,
			AvgMonthlySales:  5000,
			ProductCategory:  "Beverage",
			MarginPercentage: floatPtr(0.4),
		},
		Promotion: domain.PromotionDetails{
			PromoType:          "Discount",
			DiscountPercentage: 20,
			PromoCost:          2000,
		},
	}

	response, err := service.PredictPromotionImpact(request)
	require.NoError(t, err)

	assert.Equal(t, "Cola Premium", response.ProductName)
	assert.Equal(t, 5000.0, response.BaselineSales)
	assert.Greater(t, response.PredictedSales, 0.0)
	assert.InDelta(t, response.PredictedSales-response.BaselineSales, response.SalesLift, 1e-9)
	assert.InDelta(t, response.IncrementalMargin/response.PromoCost*100, response.ROI, 1e-9)
	assert.GreaterOrEqual(t, response.Confidence, 0.7)
	assert.LessOrEqual(t, response.Confidence, 1.0)
	assert.Equal(t, 2000.0, response.PromoCost)
	assert.False(t, response.Timestamp.IsZero())
}

func TestPredictPromotionImpactDerivedValues(t *testing.T) {
	service := NewService(constantContext(t, 123.456789))

	response, err := service.PredictPromotionImpact(domain.PromotionImpactRequest{
		Product: domain.ProductData{
			ProductName:      "Cola",
			BasePrice:        10,
			AvgMonthlySales:  100,
			ProductCategory:  "Beverage",
			MarginPercentage: floatPtr(0.5),
		},
		Promotion: domain.PromotionDetails{
			PromoType:          "Discount",
			DiscountPercentage: 20,
			PromoCost:          50,
		},
	})
	require.NoError(t, err)

	// Valores crus do motor, sem arredondamento de apresentação
	assert.Equal(t, 123.456789, response.PredictedSales)
	assert.InDelta(t, 23.456789, response.SalesLift, 1e-9)
	assert.InDelta(t, 23.456789, response.SalesLiftPercentage, 1e-9)

	// margem incremental = lift * preço base * margem
	assert.InDelta(t, 117.283945, response.IncrementalMargin, 1e-9)

	// roi = margem incremental / custo * 100, sem subtrair o custo
	assert.InDelta(t, 234.56789, response.ROI, 1e-9)

	// Sem métricas no artefato, confiança conservadora
	assert.Equal(t, 0.85, response.Confidence)
}

func TestPredictPromotionImpactNegativePrediction(t *testing.T) {
	service := NewService(constantContext(t, -50))

	response, err := service.PredictPromotionImpact(domain.PromotionImpactRequest{
		Product: domain.ProductData{
			ProductName:      "Cola",
			BasePrice:        10,
			AvgMonthlySales:  100,
			ProductCategory:  "Beverage",
			MarginPercentage: floatPtr(0.4),
		},
		Promotion: domain.PromotionDetails{
			PromoType:          "Discount",
			DiscountPercentage: 20,
			PromoCost:          2000,
		},
	})
	require.NoError(t, err)

	// A saída do modelo segue sem clamp: predição negativa propaga no lift
	assert.Equal(t, -50.0, response.PredictedSales)
	assert.InDelta(t, -150.0, response.SalesLift, 1e-9)
	assert.InDelta(t, -150.0, response.SalesLiftPercentage, 1e-9)
	assert.InDelta(t, -600.0, response.IncrementalMargin, 1e-9)
	assert.InDelta(t, -30.0, response.ROI, 1e-9)
}

func TestPredictPromotionImpactModelNotReady(t *testing.T) {
	service := NewService(NewModelContext())

	_, err := service.PredictPromotionImpact(domain.PromotionImpactRequest{})
	assert.ErrorIs(t, err, ErrModelNotReady)
}

func TestPredictPromotionImpactZeroDenominators(t *testing.T) {
	models := trainedContext(t)
	service := NewService(models)

	request := domain.PromotionImpactRequest{
		Product: domain.ProductData{
			ProductName:     "Produto Novo",
			BasePrice:       10,
			AvgMonthlySales: 0, // sem histórico
		},
		Promotion: domain.PromotionDetails{
			DiscountPercentage: 10,
			PromoCost:          0, // promoção sem custo
		},
	}

	response, err := service.PredictPromotionImpact(request)
	require.NoError(t, err)

	// Baseline zero: percentual de lift degrada para 0, não para infinito
	assert.Equal(t, 0.0, response.SalesLiftPercentage)
	// Custo zero: ROI degrada para 0
	assert.Equal(t, 0.0, response.ROI)
}

func TestPredictBulk(t *testing.T) {
	models := trainedContext(t)
	service := NewService(models)

	request := domain.BulkPromotionImpactRequest{
		Products: []domain.ProductData{
			{ProductName: "Cola", BasePrice: 50, AvgMonthlySales: 5000, ProductCategory: "Beverage"},
			{ProductName: "Suco", BasePrice: 30, AvgMonthlySales: 2000, ProductCategory: "Beverage"},
		},
		Promotion: domain.PromotionDetails{
			PromoType:          "Discount",
			DiscountPercentage: 15,
			PromoCost:          500,
		},
	}

	responses, err := service.PredictBulk(request)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	// Respostas na ordem da requisição
	assert.Equal(t, "Cola", responses[0].ProductName)
	assert.Equal(t, "Suco", responses[1].ProductName)
}

func TestPredictBulkEmpty(t *testing.T) {
	service := NewService(trainedContext(t))

	_, err := service.PredictBulk(domain.BulkPromotionImpactRequest{})
	assert.ErrorIs(t, err, ErrEmptyBulk)
}

func TestFeatureRowDefaults(t *testing.T) {
	row := featureRowFromRequest(
		domain.ProductData{
			ProductName:     "Cola",
			BasePrice:       50,
			AvgMonthlySales: 1000,
		},
		domain.PromotionDetails{DiscountPercentage: 20},
	)

	assert.Equal(t, 200.0, row.SalesVolatility) // 20% do volume médio
	assert.Equal(t, 1.0, row.SeasonalityIndex)
	assert.Equal(t, 0.5, row.CompetitorIntensity)
	assert.Equal(t, "National", row.Region)
	assert.Equal(t, "Retail", row.Channel)
	assert.Equal(t, "Discount", row.PromoType)
	assert.Equal(t, "Unknown", row.ProductCategory)
	assert.True(t, row.IsPromo)
}

func TestFeatureRowExplicitValuesWin(t *testing.T) {
	row := featureRowFromRequest(
		domain.ProductData{
			ProductName:         "Cola",
			BasePrice:           50,
			AvgMonthlySales:     1000,
			SalesVolatility:     floatPtr(333),
			SeasonalityIndex:    floatPtr(1.2),
			CompetitorIntensity: floatPtr(0.9),
			ProductCategory:     "Beverage",
		},
		domain.PromotionDetails{
			PromoType: "BOGO",
			Region:    stringPtr("South"),
			Channel:   stringPtr("Online"),
		},
	)

	assert.Equal(t, 333.0, row.SalesVolatility)
	assert.Equal(t, 1.2, row.SeasonalityIndex)
	assert.Equal(t, 0.9, row.CompetitorIntensity)
	assert.Equal(t, "South", row.Region)
	assert.Equal(t, "Online", row.Channel)
	assert.Equal(t, "BOGO", row.PromoType)
	assert.Equal(t, "Beverage", row.ProductCategory)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name    string
		metrics *domain.ValidationMetrics
		want    float64
	}{
		{"Sem métricas usa o valor conservador", nil, 0.85},
		{"R² alto aproxima de 1", &domain.ValidationMetrics{R2: 1.0}, 1.0},
		{"R² zero fica no piso", &domain.ValidationMetrics{R2: 0}, 0.7},
		{"R² negativo é clampeado", &domain.ValidationMetrics{R2: -3}, 0.7},
		{"R² acima de 1 é clampeado", &domain.ValidationMetrics{R2: 1.5}, 1.0},
		{"R² intermediário interpola", &domain.ValidationMetrics{R2: 0.5}, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, confidence(tt.metrics), 1e-9)
		})
	}
}
