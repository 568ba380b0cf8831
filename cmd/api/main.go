package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp"
	"github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/erpclient"
	"github.com/vfg2006/sop-manager-api/infrastructure/notification"
	"github.com/vfg2006/sop-manager-api/infrastructure/rendering"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/api"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/scheduler"
	"github.com/vfg2006/sop-manager-api/internal/usecases/aggregating"
	"github.com/vfg2006/sop-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/sop-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/sop-manager-api/internal/usecases/cycling"
	"github.com/vfg2006/sop-manager-api/internal/usecases/forecasting"
	"github.com/vfg2006/sop-manager-api/internal/usecases/importing"
	"github.com/vfg2006/sop-manager-api/internal/usecases/reporting"
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

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	cycleRepo := repository.NewCycleRepository(pgConn)
	forecastRepo := repository.NewForecastRepository(pgConn)
	salesRepo := repository.NewSalesHistoryRepository(pgConn, cfg.SalesHistory)
	customerRepo := repository.NewCustomerRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	matrixRepo := repository.NewMatrixRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	notifier := notification.NewLogNotifier()

	cycleService := cycling.NewService(cycleRepo, forecastRepo, matrixRepo, notifier)
	forecastService := forecasting.NewService(
		forecastRepo,
		cycleRepo,
		customerRepo,
		productRepo,
		matrixRepo,
		notifier,
		cfg.Planning.SubmissionLeadTimeDays,
	)
	aggregator := aggregating.NewService(salesRepo)
	reporter := reporting.NewService(aggregator, cfg.Report)
	renderer := rendering.New()
	importer := importing.NewService(salesRepo)
	cataloger := cataloging.NewService(customerRepo, productRepo, matrixRepo)

	erpClient := erpclient.NewClient(cfg)
	erpIntegrator := erp.New(cfg, erpClient)

	// Inicializa os agendadores de sincronização e lembrete
	erpSalesSyncService := scheduler.NewErpSalesSyncService(erpIntegrator, importer, cfg)
	submissionReminderService := scheduler.NewSubmissionReminderService(
		cycleRepo,
		forecastRepo,
		userRepo,
		notifier,
		cfg,
	)

	// Inicia os agendadores em background
	if err := erpSalesSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de vendas do ERP")
	} else {
		logrus.Info("Agendador de sincronização de vendas do ERP iniciado com sucesso")
	}

	if err := submissionReminderService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de lembretes de submissão")
	} else {
		logrus.Info("Agendador de lembretes de submissão iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		cycleService,
		forecastService,
		aggregator,
		reporter,
		renderer,
		importer,
		cataloger,
		authenticator,
		erpSalesSyncService,
		submissionReminderService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
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
