// Package engineering transforma os registros brutos de vendas/promoções/catálogo
// na tabela de features consumida pelo treinamento e pela predição.
package engineering

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/config"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

// Políticas de resolução para promoções sobrepostas no mesmo produto/data.
// A dependência de ordem do legado (last_wins) é preservada apenas como opção.
const (
	PolicyLastWins        = "last_wins"
	PolicyHighestDiscount = "highest_discount"
)

// DefaultWindow é a janela (em dias observados) das estatísticas móveis
const DefaultWindow = 30

type FeatureBuilder interface {
	BuildFeatures(ds *domain.Dataset) ([]domain.FeatureRow, error)
}

type Service struct {
	window        int
	overlapPolicy string
}

func NewService(cfg *config.Config) *Service {
	window := cfg.FeatureEngine.Window
	if window < 1 {
		window = DefaultWindow
	}

	policy := cfg.FeatureEngine.OverlapPolicy
	if policy == "" {
		policy = PolicyHighestDiscount
	}

	return &Service{
		window:        window,
		overlapPolicy: policy,
	}
}

// BuildFeatures executa o pipeline ordenado de derivações. Cada etapa é uma
// função pura: recebe a sequência anterior de linhas e devolve uma nova, o que
// mantém cada derivação auditável e testável isoladamente.
func (s *Service) BuildFeatures(ds *domain.Dataset) ([]domain.FeatureRow, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	if s.overlapPolicy != PolicyLastWins && s.overlapPolicy != PolicyHighestDiscount {
		return nil, ErrUnknownOverlapPolicy
	}

	steps := []struct {
		name  string
		apply func([]domain.FeatureRow) ([]domain.FeatureRow, error)
	}{
		{"mark_promotions", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return markPromotions(rows, ds.Promotions, s.overlapPolicy)
		}},
		{"enrich_products", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return enrichProducts(rows, ds.Catalog), nil
		}},
		{"seasonality_index", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return addSeasonality(rows, s.window), nil
		}},
		{"sales_volatility", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return addVolatility(rows, s.window), nil
		}},
		{"competitor_intensity", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return addCompetitorIntensity(rows), nil
		}},
		{"avg_monthly_sales", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return addAvgMonthlySales(rows), nil
		}},
		{"select_and_fill", func(rows []domain.FeatureRow) ([]domain.FeatureRow, error) {
			return selectAndFill(rows), nil
		}},
	}

	rows := cleanSales(ds.Sales)
	logrus.WithField("rows", len(rows)).Debug("Etapa clean_sales concluída")

	for _, step := range steps {
		var err error
		rows, err = step.apply(rows)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"step": step.name,
			"rows": len(rows),
		}).Debug("Etapa de derivação concluída")
	}

	return rows, nil
}
