package scheduler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	datasetmocks "github.com/vfg2006/promo-impact-api/infrastructure/dataset/mocks"
	storemocks "github.com/vfg2006/promo-impact-api/infrastructure/modelstore/mocks"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	engineeringmocks "github.com/vfg2006/promo-impact-api/internal/usecases/engineering/mocks"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
	modelingmocks "github.com/vfg2006/promo-impact-api/internal/usecases/modeling/mocks"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
	"go.uber.org/mock/gomock"
)

type retrainMocks struct {
	loader         *datasetmocks.MockLoader
	featureBuilder *engineeringmocks.MockFeatureBuilder
	trainer        *modelingmocks.MockTrainer
	store          *storemocks.MockStore
	models         *predicting.ModelContext
}

func newRetrainService(t *testing.T) (*RetrainService, retrainMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := retrainMocks{
		loader:         datasetmocks.NewMockLoader(ctrl),
		featureBuilder: engineeringmocks.NewMockFeatureBuilder(ctrl),
		trainer:        modelingmocks.NewMockTrainer(ctrl),
		store:          storemocks.NewMockStore(ctrl),
		models:         predicting.NewModelContext(),
	}

	service := &RetrainService{
		loader:         m.loader,
		featureBuilder: m.featureBuilder,
		trainer:        m.trainer,
		store:          m.store,
		models:         m.models,
		config: RetrainConfig{
			CronSchedule: "0 3 * * *",
			SyncEnabled:  true,
			ModelType:    modeling.ModelRandomForest,
		},
	}

	return service, m
}

func TestRetrain(t *testing.T) {
	service, m := newRetrainService(t)

	ds := &domain.Dataset{}
	rows := []domain.FeatureRow{
		{ProductName: "Cola", QuantitySold: 120},
		{ProductName: "Suco", QuantitySold: 80},
	}
	artifact := &modeling.Artifact{
		ModelType:    modeling.ModelRandomForest,
		TrainingRows: 2,
		CreatedAt:    time.Now(),
	}

	m.loader.EXPECT().Load().Return(ds, nil)
	m.featureBuilder.EXPECT().BuildFeatures(ds).Return(rows, nil)

	// O alvo do treino é a quantidade vendida de cada linha de features
	m.trainer.EXPECT().
		Train(rows, []float64{120, 80}, modeling.TrainOptions{ModelType: modeling.ModelRandomForest}).
		Return(artifact, nil)

	m.store.EXPECT().Save(artifact).Return("random_forest_model_20240601_030000", nil)

	require.NoError(t, service.Retrain())

	// O artefato recém treinado vira o modelo ativo
	assert.Equal(t, "random_forest_model_20240601_030000", m.models.CurrentID())

	active, err := m.models.Current()
	require.NoError(t, err)
	assert.Same(t, artifact, active)

	status := service.GetStatus()
	assert.Equal(t, "random_forest_model_20240601_030000", status["last_model_id"])
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestRetrainErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m retrainMocks)
	}{
		{
			name: "Erro na carga do dataset",
			setup: func(m retrainMocks) {
				m.loader.EXPECT().Load().Return(nil, errors.New("arquivo ausente"))
			},
		},
		{
			name: "Erro na engenharia de features",
			setup: func(m retrainMocks) {
				m.loader.EXPECT().Load().Return(&domain.Dataset{}, nil)
				m.featureBuilder.EXPECT().BuildFeatures(gomock.Any()).Return(nil, errors.New("dataset inválido"))
			},
		},
		{
			name: "Erro no treinamento",
			setup: func(m retrainMocks) {
				m.loader.EXPECT().Load().Return(&domain.Dataset{}, nil)
				m.featureBuilder.EXPECT().BuildFeatures(gomock.Any()).Return([]domain.FeatureRow{{}}, nil)
				m.trainer.EXPECT().Train(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("treino falhou"))
			},
		},
		{
			name: "Erro na persistência do artefato",
			setup: func(m retrainMocks) {
				m.loader.EXPECT().Load().Return(&domain.Dataset{}, nil)
				m.featureBuilder.EXPECT().BuildFeatures(gomock.Any()).Return([]domain.FeatureRow{{}}, nil)
				m.trainer.EXPECT().Train(gomock.Any(), gomock.Any(), gomock.Any()).Return(&modeling.Artifact{}, nil)
				m.store.EXPECT().Save(gomock.Any()).Return("", errors.New("disco cheio"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newRetrainService(t)
			tt.setup(m)

			assert.Error(t, service.Retrain())

			// Nada foi promovido a modelo ativo
			assert.False(t, m.models.Ready())
		})
	}
}

func TestRetrainSkipsWhenAlreadyRunning(t *testing.T) {
	service, _ := newRetrainService(t)

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	// Nenhuma expectativa nos mocks: o ciclo concorrente é ignorado
	assert.NoError(t, service.Retrain())
}

func TestGetStatus(t *testing.T) {
	service, _ := newRetrainService(t)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, modeling.ModelRandomForest, status["model_type"])
	assert.Equal(t, "", status["last_model_id"])
}
