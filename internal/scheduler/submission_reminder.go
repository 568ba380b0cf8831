package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sop-manager-api/infrastructure/notification"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/usecases/planning"
)

// SubmissionReminderConfig representa a configuração do agendador de lembretes de prazo
type SubmissionReminderConfig struct {
	CronSchedule string
	WindowDays   int
	Enabled      bool
	LeadTimeDays int
}

// SubmissionReminderService verifica diariamente o ciclo aberto e lembra os
// vendedores com previsões pendentes quando o prazo de submissão se aproxima
type SubmissionReminderService struct {
	scheduler         *gocron.Scheduler
	config            SubmissionReminderConfig
	cycleRepo         repository.CycleRepository
	forecastRepo      repository.ForecastRepository
	userRepo          repository.UserRepository
	notifier          notification.Notifier
	runRunning        bool
	runMutex          sync.Mutex
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
}

// NewSubmissionReminderService cria uma nova instância do serviço de lembretes
func NewSubmissionReminderService(
	cycleRepo repository.CycleRepository,
	forecastRepo repository.ForecastRepository,
	userRepo repository.UserRepository,
	notifier notification.Notifier,
	appConfig *config.Config,
) *SubmissionReminderService {
	// Criar a configuração com base na config global
	reminderConfig := SubmissionReminderConfig{
		CronSchedule: appConfig.SubmissionReminder.CronSchedule,
		WindowDays:   appConfig.SubmissionReminder.WindowDays,
		Enabled:      appConfig.SubmissionReminder.Enabled,
		LeadTimeDays: appConfig.Planning.SubmissionLeadTimeDays,
	}

	if reminderConfig.WindowDays <= 0 {
		reminderConfig.WindowDays = 3
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reminderConfig.CronSchedule,
		"window_days":   reminderConfig.WindowDays,
		"enabled":       reminderConfig.Enabled,
	}).Info("Configuração do agendador de lembretes de submissão carregada")

	return &SubmissionReminderService{
		scheduler:    scheduler,
		config:       reminderConfig,
		cycleRepo:    cycleRepo,
		forecastRepo: forecastRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		runRunning:   false,
	}
}

// Start inicia o agendador
func (s *SubmissionReminderService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Lembretes de submissão desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de lembretes de submissão")

	// Agendar a verificação diária
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.remindPendingSubmissions()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar lembretes de submissão: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de lembretes de submissão")
		s.scheduler.Stop()
	}()

	return nil
}

// remindPendingSubmissions emite um lembrete por vendedor com previsões ainda
// editáveis quando o prazo do ciclo aberto está dentro da janela configurada
func (s *SubmissionReminderService) remindPendingSubmissions() {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Verificação de lembretes já em andamento, ignorando")
		return
	}
	s.runRunning = true
	s.runMutex.Unlock()

	s.lastRunStartedAt = time.Now()

	defer func() {
		s.runMutex.Lock()
		s.runRunning = false
		s.runMutex.Unlock()
		s.lastRunFinishedAt = time.Now()
	}()

	ctx := context.Background()

	cycle, err := s.cycleRepo.GetOpen(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar ciclo aberto para lembretes")
		return
	}
	if cycle == nil {
		logrus.Info("Nenhum ciclo aberto, lembretes não são necessários")
		return
	}

	deadline := planning.DeadlineFor(cycle, s.config.LeadTimeDays)
	now := time.Now().UTC()

	if now.After(deadline) {
		logrus.WithField("deadline", deadline.Format(time.RFC3339)).
			Info("Prazo de submissão já expirou, lembretes não são enviados")
		return
	}

	windowStart := deadline.AddDate(0, 0, -s.config.WindowDays)
	if now.Before(windowStart) {
		logrus.WithFields(logrus.Fields{
			"deadline":    deadline.Format(time.RFC3339),
			"window_days": s.config.WindowDays,
		}).Info("Prazo de submissão fora da janela de lembrete")
		return
	}

	pendingByRep, err := s.pendingForecastsByRep(ctx, cycle.ID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao levantar previsões pendentes para lembretes")
		return
	}

	if len(pendingByRep) == 0 {
		logrus.WithField("cycle_id", cycle.ID).Info("Nenhuma previsão pendente, lembretes não são necessários")
		return
	}

	reps, err := s.userRepo.ListActiveSalesReps(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar vendedores ativos para lembretes")
		return
	}

	sent := 0
	for _, rep := range reps {
		pending, ok := pendingByRep[rep.ID]
		if !ok || pending == 0 {
			continue
		}

		notification.Dispatch(ctx, s.notifier, notification.EventSubmissionReminder, map[string]any{
			"cycle_id":          cycle.ID,
			"cycle_name":        cycle.Name,
			"sales_rep_id":      rep.ID,
			"sales_rep_email":   rep.Email,
			"pending_forecasts": pending,
			"deadline":          deadline.Format(time.RFC3339),
		})
		sent++
	}

	logrus.WithFields(logrus.Fields{
		"cycle_id":  cycle.ID,
		"reminders": sent,
		"deadline":  deadline.Format(time.RFC3339),
	}).Info("Lembretes de submissão enviados")
}

// pendingForecastsByRep conta as previsões ainda editáveis por vendedor
func (s *SubmissionReminderService) pendingForecastsByRep(ctx context.Context, cycleID string) (map[int]int, error) {
	forecasts, err := s.forecastRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	pending := make(map[int]int)
	for _, f := range forecasts {
		if f.Status.Editable() {
			pending[f.SalesRepID]++
		}
	}

	return pending, nil
}

// TriggerManualRun dispara manualmente a verificação de lembretes
func (s *SubmissionReminderService) TriggerManualRun() {
	s.runMutex.Lock()
	if s.runRunning {
		s.runMutex.Unlock()
		logrus.Info("Verificação de lembretes já em andamento, ignorando solicitação manual")
		return
	}
	s.runMutex.Unlock()

	logrus.Info("Iniciando verificação manual de lembretes de submissão")
	go s.remindPendingSubmissions()
}

// GetStatus retorna o status atual do agendador
func (s *SubmissionReminderService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":             s.config.Enabled,
		"cron":                s.config.CronSchedule,
		"window_days":         s.config.WindowDays,
		"lead_time_days":      s.config.LeadTimeDays,
		"last_run_started_at": s.lastRunStartedAt,
		"last_run_ended_at":   s.lastRunFinishedAt,
	}
}
