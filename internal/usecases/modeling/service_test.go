package modeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/promo-impact-api/internal/domain"
)

func TestTrainValidatesInput(t *testing.T) {
	service := NewService()

	tests := []struct {
		name    string
		rows    []domain.FeatureRow
		target  []float64
		opts    TrainOptions
		wantErr error
	}{
		{
			name:    "Tabela de features vazia",
			rows:    nil,
			target:  nil,
			opts:    TrainOptions{ModelType: ModelEnsemble},
			wantErr: ErrEmptyTrainingSet,
		},
		{
			name:    "Tamanhos de features e alvo diferentes",
			rows:    []domain.FeatureRow{{}},
			target:  []float64{1, 2},
			opts:    TrainOptions{ModelType: ModelEnsemble},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "Família de modelo desconhecida",
			rows:    []domain.FeatureRow{{}},
			target:  []float64{1},
			opts:    TrainOptions{ModelType: "svm"},
			wantErr: ErrUnknownModelType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Train(tt.rows, tt.target, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTrainProducesArtifact(t *testing.T) {
	rows, target := SyntheticDataset(200, 42)
	service := NewService()

	artifact, err := service.Train(rows, target, TrainOptions{ModelType: ModelRandomForest})
	require.NoError(t, err)

	assert.Equal(t, ModelRandomForest, artifact.ModelType)
	assert.NotNil(t, artifact.Pipeline)
	assert.Equal(t, 160, artifact.TrainingRows)
	assert.False(t, artifact.CreatedAt.IsZero())

	require.NotNil(t, artifact.Metrics)
	assert.Greater(t, artifact.Metrics.MAE, 0.0)
	assert.Greater(t, artifact.Metrics.RMSE, 0.0)
	assert.GreaterOrEqual(t, artifact.Metrics.RMSE, artifact.Metrics.MAE)

	// Importâncias em ordem decrescente
	require.NotEmpty(t, artifact.FeatureImportance)
	for i := 1; i < len(artifact.FeatureImportance); i++ {
		assert.GreaterOrEqual(t,
			artifact.FeatureImportance[i-1].Importance,
			artifact.FeatureImportance[i].Importance,
		)
	}
}

func TestTrainReproducible(t *testing.T) {
	rows, target := SyntheticDataset(150, 42)
	service := NewService()

	first, err := service.Train(rows, target, TrainOptions{ModelType: ModelRandomForest})
	require.NoError(t, err)

	second, err := service.Train(rows, target, TrainOptions{ModelType: ModelRandomForest})
	require.NoError(t, err)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.FeatureImportance, second.FeatureImportance)
}

func TestTrainElasticNetHasNoImportances(t *testing.T) {
	rows, target := SyntheticDataset(100, 42)
	service := NewService()

	artifact, err := service.Train(rows, target, TrainOptions{ModelType: ModelElasticNet})
	require.NoError(t, err)

	assert.Empty(t, artifact.FeatureImportance)
}

func TestTrainPipelinePredicts(t *testing.T) {
	rows, target := SyntheticDataset(200, 42)
	service := NewService()

	artifact, err := service.Train(rows, target, TrainOptions{ModelType: ModelGradientBoosting})
	require.NoError(t, err)

	predicted, err := artifact.Pipeline.PredictOne(rows[0])
	require.NoError(t, err)
	assert.False(t, predicted != predicted, "predição não pode ser NaN")
}

func TestSyntheticDatasetDeterministic(t *testing.T) {
	rowsA, targetA := SyntheticDataset(50, 42)
	rowsB, targetB := SyntheticDataset(50, 42)

	assert.Equal(t, rowsA, rowsB)
	assert.Equal(t, targetA, targetB)

	for _, v := range targetA {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestCrossValidateScoresCandidate(t *testing.T) {
	x, y := linearSamples(100, 0.5, 23)

	score := crossValidate(x, y, ModelRandomForest, candidate{
		nEstimators:     10,
		maxDepth:        5,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	})

	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 100.0)
}

func TestMetrics(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	predicted := []float64{1, 2, 3, 4}

	assert.Equal(t, 0.0, meanAbsoluteError(actual, predicted))
	assert.Equal(t, 0.0, rootMeanSquaredError(actual, predicted))
	assert.Equal(t, 1.0, rSquared(actual, predicted))

	// Alvo constante: r² degrada para 0, sem divisão por zero
	assert.Equal(t, 0.0, rSquared([]float64{2, 2}, []float64{1, 3}))
}
