package cycling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notifmocks "github.com/vfg2006/sop-manager-api/infrastructure/notification/mocks"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockCycleRepository, *mocks.MockForecastRepository, *mocks.MockMatrixRepository, *notifmocks.MockNotifier) {
	cycleRepo := mocks.NewMockCycleRepository(ctrl)
	forecastRepo := mocks.NewMockForecastRepository(ctrl)
	matrixRepo := mocks.NewMockMatrixRepository(ctrl)
	notifier := notifmocks.NewMockNotifier(ctrl)

	service := &Service{
		cycleRepo:    cycleRepo,
		forecastRepo: forecastRepo,
		matrixRepo:   matrixRepo,
		notifier:     notifier,
	}

	return service, cycleRepo, forecastRepo, matrixRepo, notifier
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.CreateCycleRequest
		setup    func(cycleRepo *mocks.MockCycleRepository)
		wantCode string
		validate func(t *testing.T, cycle *domain.Cycle)
	}{
		{
			name: "Ciclo válido é criado em DRAFT com nome padrão",
			req:  &domain.CreateCycleRequest{Year: 2025, Month: 3},
			setup: func(cycleRepo *mocks.MockCycleRepository) {
				cycleRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, cycle *domain.Cycle) {
				assert.Equal(t, domain.CycleStatusDraft, cycle.Status)
				assert.Equal(t, "Ciclo S&OP 2025-03", cycle.Name)
				assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), cycle.StartDate)
				// Janela de 16 meses começa 4 meses antes do mês de referência
				assert.Equal(t, "2024-11", cycle.PlanningStartMonth)
				assert.NotEmpty(t, cycle.ID)
			},
		},
		{
			name:     "Ano fora do intervalo é rejeitado",
			req:      &domain.CreateCycleRequest{Year: 1999, Month: 1},
			wantCode: apiErrors.ErrInvalidRequest,
		},
		{
			name:     "Mês inválido é rejeitado",
			req:      &domain.CreateCycleRequest{Year: 2025, Month: 13},
			wantCode: apiErrors.ErrInvalidRequest,
		},
		{
			name: "Data de fim anterior à de início é rejeitada",
			req: &domain.CreateCycleRequest{
				Year:      2025,
				Month:     3,
				StartDate: timePtr(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
				EndDate:   timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantCode: apiErrors.ErrInvalidRequest,
		},
		{
			name: "Dupla ano/mês duplicada vira erro de duplicidade",
			req:  &domain.CreateCycleRequest{Year: 2025, Month: 3},
			setup: func(cycleRepo *mocks.MockCycleRepository) {
				cycleRepo.EXPECT().Create(ctx, gomock.Any()).Return(repository.ErrDuplicateCycle)
			},
			wantCode: apiErrors.ErrCycleDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, cycleRepo, _, _, _ := newTestService(ctrl)
			if tt.setup != nil {
				tt.setup(cycleRepo)
			}

			cycle, err := service.Create(ctx, tt.req, 42)

			if tt.wantCode != "" {
				require.Error(t, err)
				var cycleErr *CycleError
				require.ErrorAs(t, err, &cycleErr)
				assert.Equal(t, tt.wantCode, cycleErr.Code)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cycle)
			assert.Equal(t, 42, cycle.CreatedBy)
			if tt.validate != nil {
				tt.validate(t, cycle)
			}
		})
	}
}

func TestService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	draftCycle := func() *domain.Cycle {
		return &domain.Cycle{
			ID:        "CYC001",
			Name:      "Ciclo S&OP 2025-03",
			Status:    domain.CycleStatusDraft,
			Year:      2025,
			Month:     3,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Ciclo em DRAFT é aberto e a notificação é disparada", func(t *testing.T) {
		service, cycleRepo, _, _, notifier := newTestService(ctrl)

		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(draftCycle(), nil)
		cycleRepo.EXPECT().OpenExclusive(ctx, "CYC001").Return(true, nil)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		cycle, err := service.Open(ctx, "CYC001")

		require.NoError(t, err)
		assert.Equal(t, domain.CycleStatusOpen, cycle.Status)
	})

	t.Run("Ciclo inexistente devolve não encontrado", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		cycleRepo.EXPECT().GetByID(ctx, "NOPE").Return(nil, nil)

		_, err := service.Open(ctx, "NOPE")

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, apiErrors.ErrCycleNotFound, cycleErr.Code)
	})

	t.Run("Ciclo fora de DRAFT não pode ser aberto", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		closed := draftCycle()
		closed.Status = domain.CycleStatusClosed
		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(closed, nil)

		_, err := service.Open(ctx, "CYC001")

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, apiErrors.ErrCycleInvalidState, cycleErr.Code)
	})

	t.Run("Outro ciclo já aberto bloqueia a abertura", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		other := draftCycle()
		other.ID = "CYC999"
		other.Status = domain.CycleStatusOpen

		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(draftCycle(), nil)
		cycleRepo.EXPECT().OpenExclusive(ctx, "CYC001").Return(false, nil)
		cycleRepo.EXPECT().GetOpen(ctx).Return(other, nil)

		_, err := service.Open(ctx, "CYC001")

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, apiErrors.ErrCycleAlreadyOpen, cycleErr.Code)
		assert.Equal(t, "CYC999", cycleErr.CycleID)
	})

	t.Run("Escrita condicional perdida sem outro ciclo aberto vira estado inválido", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(draftCycle(), nil)
		cycleRepo.EXPECT().OpenExclusive(ctx, "CYC001").Return(false, nil)
		cycleRepo.EXPECT().GetOpen(ctx).Return(nil, nil)

		_, err := service.Open(ctx, "CYC001")

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, apiErrors.ErrCycleInvalidState, cycleErr.Code)
	})
}

func TestService_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	openCycle := func() *domain.Cycle {
		return &domain.Cycle{
			ID:        "CYC001",
			Status:    domain.CycleStatusOpen,
			Year:      2025,
			Month:     3,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Fechamento calcula a completude sobre a matriz ativa", func(t *testing.T) {
		service, cycleRepo, forecastRepo, matrixRepo, notifier := newTestService(ctrl)

		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(openCycle(), nil)
		cycleRepo.EXPECT().Close(ctx, "CYC001").Return(nil)
		matrixRepo.EXPECT().CountActive(ctx).Return(40, nil)
		forecastRepo.EXPECT().
			CountByCycleAndStatus(ctx, "CYC001", domain.ForecastStatusSubmitted, domain.ForecastStatusApproved).
			Return(30, nil)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		summary, err := service.Close(ctx, "CYC001")

		require.NoError(t, err)
		assert.Equal(t, domain.CycleStatusClosed, summary.Cycle.Status)
		assert.Equal(t, 40, summary.ExpectedForecasts)
		assert.Equal(t, 30, summary.SubmittedForecasts)
		assert.InDelta(t, 75.0, summary.CompletionPercentage, 0.001)
	})

	t.Run("Matriz vazia devolve completude zero sem divisão por zero", func(t *testing.T) {
		service, cycleRepo, forecastRepo, matrixRepo, notifier := newTestService(ctrl)

		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(openCycle(), nil)
		cycleRepo.EXPECT().Close(ctx, "CYC001").Return(nil)
		matrixRepo.EXPECT().CountActive(ctx).Return(0, nil)
		forecastRepo.EXPECT().
			CountByCycleAndStatus(ctx, "CYC001", domain.ForecastStatusSubmitted, domain.ForecastStatusApproved).
			Return(0, nil)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		summary, err := service.Close(ctx, "CYC001")

		require.NoError(t, err)
		assert.Zero(t, summary.CompletionPercentage)
	})

	t.Run("Ciclo fora de OPEN não pode ser fechado", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		draft := openCycle()
		draft.Status = domain.CycleStatusDraft
		cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(draft, nil)

		_, err := service.Close(ctx, "CYC001")

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, apiErrors.ErrCycleInvalidState, cycleErr.Code)
	})
}

func TestService_GetCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Ciclo aberto devolve o período de 16 meses", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		cycleRepo.EXPECT().GetOpen(ctx).Return(&domain.Cycle{
			ID:        "CYC001",
			Status:    domain.CycleStatusOpen,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		}, nil)

		cycle, period, err := service.GetCurrent(ctx)

		require.NoError(t, err)
		require.NotNil(t, cycle)
		require.NotNil(t, period)
		assert.Len(t, period.Months, 16)
		assert.Equal(t, 2024, period.StartYear)
		assert.Equal(t, 11, period.StartMonth)
		assert.Equal(t, 2026, period.EndYear)
		assert.Equal(t, 2, period.EndMonth)
	})

	t.Run("Sem ciclo aberto devolve nil sem erro", func(t *testing.T) {
		service, cycleRepo, _, _, _ := newTestService(ctrl)

		cycleRepo.EXPECT().GetOpen(ctx).Return(nil, nil)

		cycle, period, err := service.GetCurrent(ctx)

		require.NoError(t, err)
		assert.Nil(t, cycle)
		assert.Nil(t, period)
	})
}

func timePtr(t time.Time) *time.Time {
	return &t
}
