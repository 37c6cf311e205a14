package modeling

import (
	"math"
	"math/rand"

	"github.com/vfg2006/promo-impact-api/internal/domain"
)

// SyntheticDataset gera uma tabela de features plausível com o alvo derivado
// de uma relação linear ruidosa. Usada para treinar o modelo de bootstrap na
// subida do serviço, quando ainda não existe artefato em disco.
func SyntheticDataset(n int, seed int64) ([]domain.FeatureRow, []float64) {
	rng := rand.New(rand.NewSource(seed))

	categories := []string{"Beverage", "Snack", "Dairy", "Bakery", "Frozen"}
	promoTypes := []string{"Discount", "BOGO", "Bundle", "Clearance"}
	regions := []string{"National", "North", "South", "East", "West"}
	channels := []string{"Retail", "Online", "Wholesale"}

	rows := make([]domain.FeatureRow, n)
	target := make([]float64, n)

	for i := 0; i < n; i++ {
		basePrice := 10 + rng.Float64()*90
		discount := rng.Float64() * 30
		avgMonthly := 1000 + rng.Float64()*9000
		volatility := 100 + rng.Float64()*1900
		seasonality := 0.7 + rng.Float64()*0.6
		competitor := rng.Float64()
		promoType := promoTypes[rng.Intn(len(promoTypes))]

		rows[i] = domain.FeatureRow{
			BasePrice:           basePrice,
			DiscountPercentage:  discount,
			AvgMonthlySales:     avgMonthly,
			SalesVolatility:     volatility,
			SeasonalityIndex:    seasonality,
			CompetitorIntensity: competitor,
			ProductCategory:     categories[rng.Intn(len(categories))],
			PromoType:           promoType,
			Region:              regions[rng.Intn(len(regions))],
			Channel:             channels[rng.Intn(len(channels))],
		}

		promoEffect := 0.0
		if promoType == "BOGO" {
			promoEffect = 800
		}

		value := avgMonthly +
			discount*50 -
			basePrice*10 +
			(seasonality-1)*1000 -
			competitor*300 +
			promoEffect +
			rng.NormFloat64()*500

		target[i] = math.Max(value, 0)
	}

	return rows, target
}
