package modeling

import "encoding/gob"

// Famílias de modelo aceitas pelo treinamento
const (
	ModelEnsemble         = "ensemble"
	ModelRandomForest     = "random_forest"
	ModelGradientBoosting = "gradient_boosting"
	ModelElasticNet       = "elastic_net"
)

// randomSeed fixa a aleatoriedade de split e bootstrap para reprodutibilidade
const randomSeed = 42

// Regressor é o contrato comum dos modelos supervisionados.
// FeatureImportances retorna nil quando a família não expõe importâncias.
type Regressor interface {
	Fit(x [][]float64, y []float64) error
	Predict(x [][]float64) []float64
	FeatureImportances() []float64
}

func init() {
	// Artefatos serializam Regressor por trás da interface
	gob.Register(&RandomForest{})
	gob.Register(&GradientBoosting{})
	gob.Register(&ElasticNet{})
}

// newRegressor monta a família pedida com seus hiperparâmetros padrão
func newRegressor(modelType string) (Regressor, error) {
	switch modelType {
	case ModelEnsemble:
		return &RandomForest{
			NEstimators:     200,
			MaxDepth:        20,
			MinSamplesSplit: 5,
			MinSamplesLeaf:  2,
			Seed:            randomSeed,
		}, nil
	case ModelRandomForest:
		return &RandomForest{
			NEstimators:     100,
			MaxDepth:        15,
			MinSamplesSplit: 5,
			MinSamplesLeaf:  2,
			Seed:            randomSeed,
		}, nil
	case ModelGradientBoosting:
		return &GradientBoosting{
			NEstimators:     100,
			LearningRate:    0.1,
			MaxDepth:        5,
			MinSamplesSplit: 2,
			MinSamplesLeaf:  1,
		}, nil
	case ModelElasticNet:
		return &ElasticNet{
			Alpha:   0.5,
			L1Ratio: 0.5,
		}, nil
	}

	return nil, ErrUnknownModelType
}

// regressorWithParams monta a família de árvore com os hiperparâmetros do
// candidato da busca em grade
func regressorWithParams(modelType string, c candidate) Regressor {
	if modelType == ModelGradientBoosting {
		return &GradientBoosting{
			NEstimators:     c.nEstimators,
			LearningRate:    0.1,
			MaxDepth:        c.maxDepth,
			MinSamplesSplit: c.minSamplesSplit,
			MinSamplesLeaf:  c.minSamplesLeaf,
		}
	}

	return &RandomForest{
		NEstimators:     c.nEstimators,
		MaxDepth:        c.maxDepth,
		MinSamplesSplit: c.minSamplesSplit,
		MinSamplesLeaf:  c.minSamplesLeaf,
		Seed:            randomSeed,
	}
}
