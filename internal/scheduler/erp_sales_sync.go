package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp"
	erpdomain "github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/domain"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/usecases/importing"
)

// ErpSalesSyncConfig representa a configuração do agendador de sincronização do ERP
type ErpSalesSyncConfig struct {
	CronSchedule  string
	MonthLookback int
	SyncEnabled   bool
}

// ErpSalesSyncService gerencia o agendamento e execução da sincronização mensal
// do histórico de vendas a partir do ERP
type ErpSalesSyncService struct {
	scheduler           *gocron.Scheduler
	config              ErpSalesSyncConfig
	erpService          erp.ErpIntegrator
	importer            importing.Importer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewErpSalesSyncService cria uma nova instância do serviço de sincronização do ERP
func NewErpSalesSyncService(
	erpService erp.ErpIntegrator,
	importer importing.Importer,
	appConfig *config.Config,
) *ErpSalesSyncService {
	// Criar a configuração com base na config global
	syncConfig := ErpSalesSyncConfig{
		CronSchedule:  appConfig.ErpSalesSync.CronSchedule,
		MonthLookback: appConfig.ErpSalesSync.MonthLookback,
		SyncEnabled:   appConfig.ErpSalesSync.Enabled,
	}

	if syncConfig.MonthLookback <= 0 {
		syncConfig.MonthLookback = 1
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"month_lookback": syncConfig.MonthLookback,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização do ERP carregada")

	return &ErpSalesSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		erpService:  erpService,
		importer:    importer,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *ErpSalesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de vendas do ERP desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de vendas do ERP")

	// Agendar a sincronização mensal
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncClosedMonths()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de vendas do ERP: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de vendas do ERP")
		s.scheduler.Stop()
	}()

	return nil
}

// syncClosedMonths importa do ERP os últimos meses fechados. O mês corrente
// nunca é importado: os números ainda mudam até o fechamento contábil.
func (s *ErpSalesSyncService) syncClosedMonths() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendas do ERP já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("month_lookback", s.config.MonthLookback).
		Info("Iniciando sincronização de vendas do ERP")

	months := s.getMonthsToProcess()

	for _, month := range months {
		s.syncMonth(month)
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"months":   len(months),
	}).Info("Sincronização de vendas do ERP concluída")

	s.lastSyncCompletedAt = time.Now()
}

// getMonthsToProcess devolve os meses fechados a importar, do mais antigo para
// o mais recente
func (s *ErpSalesSyncService) getMonthsToProcess() []erpdomain.GetSalesParams {
	now := time.Now()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]erpdomain.GetSalesParams, 0, s.config.MonthLookback)
	for i := s.config.MonthLookback; i >= 1; i-- {
		m := firstOfCurrent.AddDate(0, -i, 0)
		months = append(months, erpdomain.GetSalesParams{
			Year:  m.Year(),
			Month: int(m.Month()),
		})
	}

	return months
}

// syncMonth importa um único mês do ERP para o histórico canônico
func (s *ErpSalesSyncService) syncMonth(month erpdomain.GetSalesParams) {
	logrus.WithFields(logrus.Fields{
		"year":  month.Year,
		"month": month.Month,
	}).Info("Importando vendas do ERP para o mês")

	records, err := s.erpService.GetMonthlySales(month)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"year":  month.Year,
			"month": month.Month,
			"error": err.Error(),
		}).Error("Erro ao consultar vendas do ERP")
		return
	}

	if len(records) == 0 {
		logrus.WithFields(logrus.Fields{
			"year":  month.Year,
			"month": month.Month,
		}).Warn("Nenhuma venda retornada pelo ERP para o mês")
		return
	}

	result, err := s.importer.ImportBatch(context.Background(), records)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"year":  month.Year,
			"month": month.Month,
			"error": err.Error(),
		}).Error("Erro ao importar vendas do ERP no histórico")
		return
	}

	logrus.WithFields(logrus.Fields{
		"year":     month.Year,
		"month":    month.Month,
		"imported": result.Imported,
		"rejected": result.Rejected,
	}).Info("Vendas do ERP importadas para o mês")
}

// TriggerManualSync inicia manualmente uma sincronização de vendas do ERP
func (s *ErpSalesSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de vendas do ERP já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de vendas do ERP")
	go s.syncClosedMonths()
}

// GetStatus retorna o status atual do agendador
func (s *ErpSalesSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_month_lookback":    s.config.MonthLookback,
		"retention_policy":       "dados mantidos permanentemente",
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
