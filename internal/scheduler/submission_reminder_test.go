package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sop-manager-api/infrastructure/notification"
	notifmocks "github.com/vfg2006/sop-manager-api/infrastructure/notification/mocks"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func openCycleEndingIn(days int) *domain.Cycle {
	end := time.Now().UTC().AddDate(0, 0, days)
	return &domain.Cycle{
		ID:      "CYC001",
		Name:    "Ciclo S&OP 2025-03",
		Status:  domain.CycleStatusOpen,
		Year:    end.Year(),
		Month:   int(end.Month()),
		EndDate: &end,
	}
}

func TestSubmissionReminderService_remindPendingSubmissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newService := func(
		cycleRepo *mocks.MockCycleRepository,
		forecastRepo *mocks.MockForecastRepository,
		userRepo *mocks.MockUserRepository,
		notifier *notifmocks.MockNotifier,
	) *SubmissionReminderService {
		return &SubmissionReminderService{
			config: SubmissionReminderConfig{
				WindowDays:   3,
				Enabled:      true,
				LeadTimeDays: 0,
			},
			cycleRepo:    cycleRepo,
			forecastRepo: forecastRepo,
			userRepo:     userRepo,
			notifier:     notifier,
		}
	}

	t.Run("Vendedor com previsões editáveis recebe lembrete dentro da janela", func(t *testing.T) {
		cycleRepo := mocks.NewMockCycleRepository(ctrl)
		forecastRepo := mocks.NewMockForecastRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)
		notifier := notifmocks.NewMockNotifier(ctrl)

		service := newService(cycleRepo, forecastRepo, userRepo, notifier)

		cycle := openCycleEndingIn(1)
		cycleRepo.EXPECT().GetOpen(gomock.Any()).Return(cycle, nil)
		forecastRepo.EXPECT().ListByCycle(gomock.Any(), "CYC001").Return([]*domain.Forecast{
			{ID: "FCT001", SalesRepID: 10, Status: domain.ForecastStatusDraft},
			{ID: "FCT002", SalesRepID: 10, Status: domain.ForecastStatusRejected},
			{ID: "FCT003", SalesRepID: 20, Status: domain.ForecastStatusSubmitted},
			{ID: "FCT004", SalesRepID: 30, Status: domain.ForecastStatusApproved},
		}, nil)
		userRepo.EXPECT().ListActiveSalesReps(gomock.Any()).Return([]*domain.User{
			{ID: 10, Email: "rep10@empresa.com"},
			{ID: 20, Email: "rep20@empresa.com"},
			{ID: 30, Email: "rep30@empresa.com"},
		}, nil)

		// Só o vendedor 10 tem previsões ainda editáveis
		notifier.EXPECT().
			Notify(gomock.Any(), notification.EventSubmissionReminder, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ notification.Event, payload map[string]any) error {
				assert.Equal(t, 10, payload["sales_rep_id"])
				assert.Equal(t, 2, payload["pending_forecasts"])
				return nil
			})

		service.remindPendingSubmissions()
	})

	t.Run("Sem ciclo aberto nenhum lembrete é enviado", func(t *testing.T) {
		cycleRepo := mocks.NewMockCycleRepository(ctrl)
		forecastRepo := mocks.NewMockForecastRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)
		notifier := notifmocks.NewMockNotifier(ctrl)

		service := newService(cycleRepo, forecastRepo, userRepo, notifier)

		cycleRepo.EXPECT().GetOpen(gomock.Any()).Return(nil, nil)

		service.remindPendingSubmissions()
	})

	t.Run("Prazo distante fica fora da janela de lembrete", func(t *testing.T) {
		cycleRepo := mocks.NewMockCycleRepository(ctrl)
		forecastRepo := mocks.NewMockForecastRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)
		notifier := notifmocks.NewMockNotifier(ctrl)

		service := newService(cycleRepo, forecastRepo, userRepo, notifier)

		cycleRepo.EXPECT().GetOpen(gomock.Any()).Return(openCycleEndingIn(30), nil)

		service.remindPendingSubmissions()
	})

	t.Run("Prazo já expirado não gera lembrete tardio", func(t *testing.T) {
		cycleRepo := mocks.NewMockCycleRepository(ctrl)
		forecastRepo := mocks.NewMockForecastRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)
		notifier := notifmocks.NewMockNotifier(ctrl)

		service := newService(cycleRepo, forecastRepo, userRepo, notifier)

		cycleRepo.EXPECT().GetOpen(gomock.Any()).Return(openCycleEndingIn(-5), nil)

		service.remindPendingSubmissions()
	})

	t.Run("Ciclo sem pendências não gera lembrete", func(t *testing.T) {
		cycleRepo := mocks.NewMockCycleRepository(ctrl)
		forecastRepo := mocks.NewMockForecastRepository(ctrl)
		userRepo := mocks.NewMockUserRepository(ctrl)
		notifier := notifmocks.NewMockNotifier(ctrl)

		service := newService(cycleRepo, forecastRepo, userRepo, notifier)

		cycleRepo.EXPECT().GetOpen(gomock.Any()).Return(openCycleEndingIn(1), nil)
		forecastRepo.EXPECT().ListByCycle(gomock.Any(), "CYC001").Return([]*domain.Forecast{
			{ID: "FCT001", SalesRepID: 10, Status: domain.ForecastStatusSubmitted},
		}, nil)

		service.remindPendingSubmissions()
	})
}

func TestSubmissionReminderService_pendingForecastsByRep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	service := &SubmissionReminderService{forecastRepo: forecastRepo}

	forecastRepo.EXPECT().ListByCycle(gomock.Any(), "CYC001").Return([]*domain.Forecast{
		{SalesRepID: 10, Status: domain.ForecastStatusDraft},
		{SalesRepID: 10, Status: domain.ForecastStatusApproved},
		{SalesRepID: 20, Status: domain.ForecastStatusRejected},
	}, nil)

	pending, err := service.pendingForecastsByRep(context.Background(), "CYC001")

	require.NoError(t, err)
	assert.Equal(t, map[int]int{10: 1, 20: 1}, pending)
}
