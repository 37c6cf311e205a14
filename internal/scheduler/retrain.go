// Package scheduler contém os serviços de agendamento para retreinamento de modelos
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/infrastructure/dataset"
	"github.com/vfg2006/promo-impact-api/infrastructure/modelstore"
	"github.com/vfg2006/promo-impact-api/internal/config"
	"github.com/vfg2006/promo-impact-api/internal/usecases/engineering"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
)

type RetrainConfig struct {
	CronSchedule string
	SyncEnabled  bool
	ModelType    string
	Optimize     bool
	ExportDir    string
}

// RetrainService reexecuta o pipeline completo de treinamento (carga de dados,
// engenharia de features, treino, persistência) e promove o novo artefato a
// modelo ativo ao final.
type RetrainService struct {
	scheduler      *gocron.Scheduler
	loader         dataset.Loader
	featureBuilder engineering.FeatureBuilder
	trainer        modeling.Trainer
	store          modelstore.Store
	models         *predicting.ModelContext
	config         RetrainConfig

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastModelID         string
}

func NewRetrainService(
	loader dataset.Loader,
	featureBuilder engineering.FeatureBuilder,
	trainer modeling.Trainer,
	store modelstore.Store,
	models *predicting.ModelContext,
	cfg *config.Config,
) *RetrainService {
	retrainConfig := RetrainConfig{
		CronSchedule: cfg.RetrainSync.CronSchedule, // Default: 3h da manhã todos os dias
		SyncEnabled:  cfg.RetrainSync.SyncEnabled,  // Default: desabilitado
		ModelType:    cfg.RetrainSync.ModelType,
		Optimize:     cfg.RetrainSync.Optimize,
		ExportDir:    cfg.DataDir,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retrainConfig.CronSchedule,
		"model_type":    retrainConfig.ModelType,
	}).Info("Configuração do agendador de retreinamento carregada")

	return &RetrainService{
		scheduler:      scheduler,
		loader:         loader,
		featureBuilder: featureBuilder,
		trainer:        trainer,
		store:          store,
		models:         models,
		config:         retrainConfig,
	}
}

func (s *RetrainService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de retreinamento de modelo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de retreinamento de modelo")

	// Agendar o retreinamento periódico
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Retrain(); err != nil {
			logrus.WithError(err).Error("Erro no retreinamento do modelo")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar retreinamento de modelo: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de retreinamento de modelo")
		s.scheduler.Stop()
	}()

	return nil
}

// Retrain executa um ciclo completo de retreinamento. Execuções concorrentes
// são colapsadas: se um ciclo já está em andamento, o novo pedido é ignorado.
func (s *RetrainService) Retrain() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Retreinamento de modelo já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando retreinamento do modelo")

	ds, err := s.loader.Load()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar o dataset para retreinamento")
		return err
	}

	rows, err := s.featureBuilder.BuildFeatures(ds)
	if err != nil {
		logrus.WithError(err).Error("Erro na engenharia de features para retreinamento")
		return err
	}

	if s.config.ExportDir != "" {
		// Espelho de depuração da tabela de features, não bloqueia o ciclo
		if err := dataset.ExportProcessed(rows, s.config.ExportDir); err != nil {
			logrus.WithError(err).Warn("Erro ao exportar a tabela de features processada")
		}
	}

	target := make([]float64, len(rows))
	for i, row := range rows {
		target[i] = row.QuantitySold
	}

	artifact, err := s.trainer.Train(rows, target, modeling.TrainOptions{
		ModelType: s.config.ModelType,
		Optimize:  s.config.Optimize,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro no treinamento do modelo")
		return err
	}

	modelID, err := s.store.Save(artifact)
	if err != nil {
		logrus.WithError(err).Error("Erro ao persistir o artefato retreinado")
		return err
	}

	s.models.Swap(artifact, modelID)

	s.syncMutex.Lock()
	s.lastModelID = modelID
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"model_id":      modelID,
		"training_rows": artifact.TrainingRows,
	}).Info("Retreinamento do modelo concluído")

	return nil
}

// TriggerManualSync inicia manualmente um ciclo de retreinamento
func (s *RetrainService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Retreinamento já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando retreinamento manual do modelo")
	go func() {
		if err := s.Retrain(); err != nil {
			logrus.WithError(err).Error("Erro no retreinamento manual do modelo")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *RetrainService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"model_type":             s.config.ModelType,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_model_id":          s.lastModelID,
	}
}
