package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	FeatureEngine FeatureEngine `mapstructure:",squash"`
	Bootstrap     Bootstrap     `mapstructure:",squash"`
	RetrainSync   RetrainSync   `mapstructure:",squash"`
	DataDir       string        `mapstructure:"data_dir"`
	ModelDir      string        `mapstructure:"model_dir"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Enabled  bool   `mapstructure:"database_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type FeatureEngine struct {
	Window        int    `mapstructure:"feature_engine_window"`
	OverlapPolicy string `mapstructure:"feature_engine_overlap_policy"`
}

// Bootstrap controla o treinamento do modelo inicial na subida do serviço,
// quando não há artefato persistido para carregar
type Bootstrap struct {
	Enabled       bool   `mapstructure:"bootstrap_enabled"`
	ModelType     string `mapstructure:"bootstrap_model_type"`
	SyntheticN    int    `mapstructure:"bootstrap_synthetic_rows"`
	SyntheticSeed int64  `mapstructure:"bootstrap_synthetic_seed"`
}

type RetrainSync struct {
	CronSchedule string `mapstructure:"retrain_sync_cron"`
	SyncEnabled  bool   `mapstructure:"retrain_sync_enabled"`
	ModelType    string `mapstructure:"retrain_sync_model_type"`
	Optimize     bool   `mapstructure:"retrain_sync_optimize"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/promo")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_ENABLED", false)

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("MODEL_DIR", "models")

	viper.SetDefault("FEATURE_ENGINE_WINDOW", 30)
	viper.SetDefault("FEATURE_ENGINE_OVERLAP_POLICY", "highest_discount")

	viper.SetDefault("BOOTSTRAP_ENABLED", true)
	viper.SetDefault("BOOTSTRAP_MODEL_TYPE", "ensemble")
	viper.SetDefault("BOOTSTRAP_SYNTHETIC_ROWS", 500)
	viper.SetDefault("BOOTSTRAP_SYNTHETIC_SEED", 42)

	// Defaults para retreinamento periódico
	viper.SetDefault("RETRAIN_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("RETRAIN_SYNC_ENABLED", false)    // Habilitar retreinamento periódico
	viper.SetDefault("RETRAIN_SYNC_MODEL_TYPE", "ensemble")
	viper.SetDefault("RETRAIN_SYNC_OPTIMIZE", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
