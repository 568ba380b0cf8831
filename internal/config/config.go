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
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Auth               Auth               `mapstructure:",squash"`
	Planning           Planning           `mapstructure:",squash"`
	SalesHistory       SalesHistory       `mapstructure:",squash"`
	Report             Report             `mapstructure:",squash"`
	Erp                Erp                `mapstructure:",squash"`
	SubmissionReminder SubmissionReminder `mapstructure:",squash"`
	ErpSalesSync       ErpSalesSync       `mapstructure:",squash"`
	SecretKey          string             `mapstructure:"secret_key"`
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
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Planning agrupa os parâmetros do ciclo S&OP
type Planning struct {
	SubmissionLeadTimeDays int `mapstructure:"submission_lead_time_days"`
}

// SalesHistory define o mapeamento de nomes de tabela/colunas do histórico de
// vendas. O esquema canônico usa year/month inteiros; os nomes legados
// (month_num, sales_history_legacy) ficam acessíveis somente via este mapeamento,
// para leitura e migração.
type SalesHistory struct {
	Table       string `mapstructure:"sales_history_table"`
	YearColumn  string `mapstructure:"sales_history_year_column"`
	MonthColumn string `mapstructure:"sales_history_month_column"`
	LegacyTable string `mapstructure:"sales_history_legacy_table"`
}

type Report struct {
	TimeoutSeconds int `mapstructure:"report_timeout_seconds"`
	DefaultTopN    int `mapstructure:"report_default_top_n"`
}

type Erp struct {
	URL         string `mapstructure:"erp_url"`
	AccessToken string `mapstructure:"erp_access_token"`
}

type SubmissionReminder struct {
	CronSchedule string `mapstructure:"submission_reminder_cron"`
	WindowDays   int    `mapstructure:"submission_reminder_window_days"`
	Enabled      bool   `mapstructure:"submission_reminder_enabled"`
}

type ErpSalesSync struct {
	CronSchedule  string `mapstructure:"erp_sales_sync_cron"`
	MonthLookback int    `mapstructure:"erp_sales_sync_month_lookback"`
	Enabled       bool   `mapstructure:"erp_sales_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sop")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SUBMISSION_LEAD_TIME_DAYS", 7)

	// Esquema canônico do histórico de vendas
	viper.SetDefault("SALES_HISTORY_TABLE", "sales_history")
	viper.SetDefault("SALES_HISTORY_YEAR_COLUMN", "year")
	viper.SetDefault("SALES_HISTORY_MONTH_COLUMN", "month")
	viper.SetDefault("SALES_HISTORY_LEGACY_TABLE", "sales_history_legacy")

	viper.SetDefault("REPORT_TIMEOUT_SECONDS", 30)
	viper.SetDefault("REPORT_DEFAULT_TOP_N", 10)

	viper.SetDefault("ERP_URL", "https://erp.example.com/api/v1")
	viper.SetDefault("ERP_ACCESS_TOKEN", "your_access_token")

	// Defaults dos agendadores
	viper.SetDefault("SUBMISSION_REMINDER_CRON", "0 8 * * *") // Todos os dias às 8h da manhã
	viper.SetDefault("SUBMISSION_REMINDER_WINDOW_DAYS", 3)    // Lembrar faltando 3 dias para o prazo
	viper.SetDefault("SUBMISSION_REMINDER_ENABLED", false)

	viper.SetDefault("ERP_SALES_SYNC_CRON", "0 5 2 * *") // Dia 2 de cada mês às 5h da manhã
	viper.SetDefault("ERP_SALES_SYNC_MONTH_LOOKBACK", 1)
	viper.SetDefault("ERP_SALES_SYNC_ENABLED", false)

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
	viper.AutomaticEnv()

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
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
