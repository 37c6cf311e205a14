package main

import (
	"context"
	"errors"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/promo-impact-api/infrastructure/database/postgres"
	"github.com/vfg2006/promo-impact-api/infrastructure/dataset"
	"github.com/vfg2006/promo-impact-api/infrastructure/modelstore"
	"github.com/vfg2006/promo-impact-api/infrastructure/repository"
	"github.com/vfg2006/promo-impact-api/internal/api"
	"github.com/vfg2006/promo-impact-api/internal/config"
	"github.com/vfg2006/promo-impact-api/internal/domain"
	"github.com/vfg2006/promo-impact-api/internal/scheduler"
	"github.com/vfg2006/promo-impact-api/internal/usecases/engineering"
	"github.com/vfg2006/promo-impact-api/internal/usecases/modeling"
	"github.com/vfg2006/promo-impact-api/internal/usecases/predicting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := modelstore.NewFileStore(cfg.ModelDir)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o diretório de modelos")
	}

	loader := dataset.NewLoader(cfg.DataDir)
	featureBuilder := engineering.NewService(cfg)
	trainer := modeling.NewService()

	models := predicting.NewModelContext()
	predictionService := predicting.NewService(models)

	// Trilha de auditoria é opcional: sem banco, as predições só são logadas
	var auditRepo repository.PredictionLogRepository
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		auditRepo = repository.NewPredictionLogRepository(pgConn)
	}

	bootstrapModel(cfg, store, loader, featureBuilder, trainer, models)

	retrainService := scheduler.NewRetrainService(
		loader,
		featureBuilder,
		trainer,
		store,
		models,
		cfg,
	)

	// Inicia o agendador em background
	if err := retrainService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de retreinamento de modelo")
	} else {
		logrus.Info("Agendador de retreinamento de modelo iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		predictionService,
		models,
		store,
		auditRepo,
		retrainService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// bootstrapModel garante um modelo ativo na subida: carrega o artefato mais
// recente do disco ou, na ausência de artefatos, treina o modelo inicial com
// os dados do diretório de entrada, caindo para dados sintéticos quando o
// diretório não é carregável.
func bootstrapModel(
	cfg *config.Config,
	store modelstore.Store,
	loader dataset.Loader,
	featureBuilder engineering.FeatureBuilder,
	trainer modeling.Trainer,
	models *predicting.ModelContext,
) {
	artifact, modelID, err := store.Latest()
	if err == nil {
		models.Swap(artifact, modelID)
		logrus.WithField("model_id", modelID).Info("Artefato de modelo carregado do disco")
		return
	}

	if !errors.Is(err, modelstore.ErrArtifactNotFound) {
		logrus.WithError(err).Error("Erro ao carregar o artefato de modelo mais recente")
	}

	if !cfg.Bootstrap.Enabled {
		logrus.Warn("Nenhum modelo disponível e bootstrap desabilitado, predições indisponíveis até o primeiro treinamento")
		return
	}

	rows, target, err := bootstrapTrainingData(cfg, loader, featureBuilder)
	if err != nil {
		logrus.WithError(err).Error("Erro ao montar os dados de treinamento iniciais")
		return
	}

	artifact, err = trainer.Train(rows, target, modeling.TrainOptions{
		ModelType: cfg.Bootstrap.ModelType,
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao treinar o modelo inicial")
		return
	}

	modelID, err = store.Save(artifact)
	if err != nil {
		logrus.WithError(err).Error("Erro ao persistir o modelo inicial")
		return
	}

	models.Swap(artifact, modelID)
	logrus.WithField("model_id", modelID).Info("Modelo inicial treinado e ativado")
}

func bootstrapTrainingData(
	cfg *config.Config,
	loader dataset.Loader,
	featureBuilder engineering.FeatureBuilder,
) ([]domain.FeatureRow, []float64, error) {
	if ds, err := loader.Load(); err == nil {
		rows, err := featureBuilder.BuildFeatures(ds)
		if err != nil {
			return nil, nil, err
		}

		target := make([]float64, len(rows))
		for i, row := range rows {
			target[i] = row.QuantitySold
		}

		logrus.WithField("rows", len(rows)).Info("Treinando modelo inicial com os dados do diretório de entrada")
		return rows, target, nil
	}

	logrus.WithFields(logrus.Fields{
		"model_type": cfg.Bootstrap.ModelType,
		"rows":       cfg.Bootstrap.SyntheticN,
	}).Info("Diretório de dados indisponível, treinando modelo inicial com dados sintéticos")

	rows, target := modeling.SyntheticDataset(cfg.Bootstrap.SyntheticN, cfg.Bootstrap.SyntheticSeed)
	return rows, target, nil
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
