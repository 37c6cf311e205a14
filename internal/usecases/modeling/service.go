// Package modeling treina os regressores de impacto promocional e produz o
// artefato versionável consumido pela predição.
package modeling

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

// Pipeline acopla o pré-processamento ao regressor ajustado. É a unidade
// serializada no artefato: quem carrega o artefato prediz sem reaprender nada.
type Pipeline struct {
	Preprocessor *Preprocessor
	Model        Regressor
}

func (p *Pipeline) Fit(rows []domain.FeatureRow, target []float64) error {
	x, err := p.Preprocessor.FitTransform(rows)
	if err != nil {
		return err
	}
	return p.Model.Fit(x, target)
}

func (p *Pipeline) Predict(rows []domain.FeatureRow) ([]float64, error) {
	x, err := p.Preprocessor.Transform(rows)
	if err != nil {
		return nil, err
	}
	return p.Model.Predict(x), nil
}

// PredictOne prediz uma única linha de features
func (p *Pipeline) PredictOne(row domain.FeatureRow) (float64, error) {
	out, err := p.Predict([]domain.FeatureRow{row})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// FeatureWeight é uma entrada do relatório de importância de features
type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Artifact é o resultado completo de um treinamento: pipeline ajustado,
// métricas de validação e importâncias ordenadas. Os campos de schema
// registram o contrato de features vigente quando o modelo foi treinado.
type Artifact struct {
	ModelType           string
	Pipeline            *Pipeline
	FeatureImportance   []FeatureWeight
	Metrics             *domain.ValidationMetrics
	NumericalFeatures   []string
	CategoricalFeatures []string
	TrainingRows        int
	CreatedAt           time.Time
}

// TrainOptions parametriza um treinamento
type TrainOptions struct {
	ModelType string
	Optimize  bool
}

type Trainer interface {
	Train(rows []domain.FeatureRow, target []float64, opts TrainOptions) (*Artifact, error)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Train separa 20% das linhas para validação (embaralhamento com semente
// fixa), ajusta o pipeline no restante e mede MAE/RMSE/R² no holdout.
// Com Optimize ligado, os hiperparâmetros das famílias de árvore passam antes
// pela busca em grade; elastic_net não tem grade e ignora a flag.
func (s *Service) Train(rows []domain.FeatureRow, target []float64, opts TrainOptions) (*Artifact, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if len(rows) != len(target) {
		return nil, ErrLengthMismatch
	}

	model, err := newRegressor(opts.ModelType)
	if err != nil {
		return nil, err
	}

	n := len(rows)
	valSize := int(math.Ceil(float64(n) * 0.2))
	if valSize >= n {
		valSize = n - 1
	}

	perm := rand.New(rand.NewSource(randomSeed)).Perm(n)
	valIdx := perm[:valSize]
	trainIdx := perm[valSize:]

	trainRows := make([]domain.FeatureRow, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, j := range trainIdx {
		trainRows[i] = rows[j]
		trainY[i] = target[j]
	}

	valRows := make([]domain.FeatureRow, len(valIdx))
	valY := make([]float64, len(valIdx))
	for i, j := range valIdx {
		valRows[i] = rows[j]
		valY[i] = target[j]
	}

	pipeline := &Pipeline{
		Preprocessor: NewPreprocessor(),
		Model:        model,
	}

	if opts.Optimize && opts.ModelType != ModelElasticNet {
		x, err := pipeline.Preprocessor.FitTransform(trainRows)
		if err != nil {
			return nil, err
		}
		pipeline.Model = gridSearch(x, trainY, opts.ModelType)
	}

	if err := pipeline.Fit(trainRows, trainY); err != nil {
		return nil, err
	}

	metrics := &domain.ValidationMetrics{}
	if len(valRows) > 0 {
		predicted, err := pipeline.Predict(valRows)
		if err != nil {
			return nil, err
		}

		metrics.MAE = meanAbsoluteError(valY, predicted)
		metrics.RMSE = rootMeanSquaredError(valY, predicted)
		metrics.R2 = rSquared(valY, predicted)
	}

	artifact := &Artifact{
		ModelType:           opts.ModelType,
		Pipeline:            pipeline,
		FeatureImportance:   rankImportances(pipeline),
		Metrics:             metrics,
		NumericalFeatures:   pipeline.Preprocessor.NumericalFeatures,
		CategoricalFeatures: pipeline.Preprocessor.CategoricalFeatures,
		TrainingRows:        len(trainRows),
		CreatedAt:           time.Now().UTC(),
	}

	logrus.WithFields(logrus.Fields{
		"model_type":    opts.ModelType,
		"training_rows": len(trainRows),
		"mae":           metrics.MAE,
		"rmse":          metrics.RMSE,
		"r2":            metrics.R2,
	}).Info("Treinamento de modelo concluído")

	return artifact, nil
}

// rankImportances mapeia as importâncias para os nomes expandidos das
// features, em ordem decrescente. Famílias sem importâncias retornam vazio.
func rankImportances(pipeline *Pipeline) []FeatureWeight {
	values := pipeline.Model.FeatureImportances()
	if values == nil {
		return []FeatureWeight{}
	}

	names := pipeline.Preprocessor.FeatureNames()
	weights := make([]FeatureWeight, len(values))
	for i, v := range values {
		weights[i] = FeatureWeight{Feature: names[i], Importance: v}
	}

	sort.SliceStable(weights, func(a, b int) bool {
		if weights[a].Importance != weights[b].Importance {
			return weights[a].Importance > weights[b].Importance
		}
		return weights[a].Feature < weights[b].Feature
	})

	return weights
}
