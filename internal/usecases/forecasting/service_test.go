package forecasting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	notifmocks "github.com/vfg2006/sop-manager-api/infrastructure/notification/mocks"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/planning"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	forecastRepo *mocks.MockForecastRepository
	cycleRepo    *mocks.MockCycleRepository
	customerRepo *mocks.MockCustomerRepository
	productRepo  *mocks.MockProductRepository
	matrixRepo   *mocks.MockMatrixRepository
	notifier     *notifmocks.MockNotifier
}

func newTestService(ctrl *gomock.Controller, leadTimeDays int) (*Service, serviceMocks) {
	m := serviceMocks{
		forecastRepo: mocks.NewMockForecastRepository(ctrl),
		cycleRepo:    mocks.NewMockCycleRepository(ctrl),
		customerRepo: mocks.NewMockCustomerRepository(ctrl),
		productRepo:  mocks.NewMockProductRepository(ctrl),
		matrixRepo:   mocks.NewMockMatrixRepository(ctrl),
		notifier:     notifmocks.NewMockNotifier(ctrl),
	}

	service := &Service{
		forecastRepo: m.forecastRepo,
		cycleRepo:    m.cycleRepo,
		customerRepo: m.customerRepo,
		productRepo:  m.productRepo,
		matrixRepo:   m.matrixRepo,
		notifier:     m.notifier,
		leadTimeDays: leadTimeDays,
	}

	return service, m
}

// openCycleFor devolve um ciclo aberto cujo mês de referência é o mês corrente,
// mantendo o prazo de submissão sempre no futuro durante o teste
func openCycleFor(reference time.Time) *domain.Cycle {
	end := planning.EndOfMonth(reference.Year(), int(reference.Month())).AddDate(0, 2, 0)
	return &domain.Cycle{
		ID:        "CYC001",
		Status:    domain.CycleStatusOpen,
		Year:      reference.Year(),
		Month:     int(reference.Month()),
		StartDate: time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}
}

// validMonths monta o vetor com os 16 meses do período do ciclo
// (4 históricos + corrente + 11 futuros)
func validMonths(cycle *domain.Cycle) []domain.MonthlyForecast {
	expected := planning.CalculatePeriod(cycle.StartDate).Months

	months := make([]domain.MonthlyForecast, 0, len(expected))
	for _, m := range expected {
		months = append(months, domain.MonthlyForecast{
			Year:      m.Year,
			Month:     m.Month,
			Quantity:  10,
			UnitPrice: 2.5,
		})
	}
	return months
}

func activeCustomer() *domain.Customer {
	return &domain.Customer{ID: "CLI001", Name: "Cliente A", Active: true}
}

func activeProduct() *domain.Product {
	return &domain.Product{ID: "PRD001", Name: "Produto A", Active: true}
}

func activeEntry() *domain.MatrixEntry {
	return &domain.MatrixEntry{CustomerID: "CLI001", ProductID: "PRD001", IsActive: true}
}

func TestService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Now().UTC()
	cycle := openCycleFor(now)

	expectValidationChain := func(m serviceMocks) {
		m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
		m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
		m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(activeEntry(), nil)
	}

	t.Run("Previsão nova é criada em DRAFT", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
		expectValidationChain(m)
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD001").Return(nil, nil)
		m.forecastRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		forecast, err := service.Upsert(ctx, "CYC001", "CLI001", 7, &domain.ForecastPayload{
			ProductID: "PRD001",
			Months:    validMonths(cycle),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ForecastStatusDraft, forecast.Status)
		assert.Equal(t, 7, forecast.SalesRepID)
		assert.NotEmpty(t, forecast.ID)
	})

	t.Run("Payload cobrindo os 16 meses do período é aceito", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		months := validMonths(cycle)
		require.Len(t, months, planning.PeriodMonths)

		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
		expectValidationChain(m)
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD001").Return(nil, nil)
		m.forecastRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		forecast, err := service.Upsert(ctx, "CYC001", "CLI001", 7, &domain.ForecastPayload{
			ProductID: "PRD001",
			Months:    months,
		})

		require.NoError(t, err)
		assert.Len(t, forecast.Months, 16)
	})

	t.Run("Reenvio sobre previsão editável preserva o ID", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		existing := &domain.Forecast{ID: "FCT001", Status: domain.ForecastStatusRejected}

		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
		expectValidationChain(m)
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD001").Return(existing, nil)
		m.forecastRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		forecast, err := service.Upsert(ctx, "CYC001", "CLI001", 7, &domain.ForecastPayload{
			ProductID: "PRD001",
			Months:    validMonths(cycle),
		})

		require.NoError(t, err)
		assert.Equal(t, "FCT001", forecast.ID)
		assert.Equal(t, domain.ForecastStatusDraft, forecast.Status)
	})

	t.Run("Previsão submetida é imutável para o vendedor", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		existing := &domain.Forecast{ID: "FCT001", Status: domain.ForecastStatusSubmitted}

		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
		expectValidationChain(m)
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD001").Return(existing, nil)

		_, err := service.Upsert(ctx, "CYC001", "CLI001", 7, &domain.ForecastPayload{
			ProductID: "PRD001",
			Months:    validMonths(cycle),
		})

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrForecastInvalidState, forecastErr.Code)
	})

	t.Run("Ciclo fora de OPEN rejeita o lançamento", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		closed := *cycle
		closed.Status = domain.CycleStatusClosed
		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(&closed, nil)

		_, err := service.Upsert(ctx, "CYC001", "CLI001", 7, &domain.ForecastPayload{
			ProductID: "PRD001",
			Months:    validMonths(cycle),
		})

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrCycleInvalidState, forecastErr.Code)
	})
}

func TestService_Upsert_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Now().UTC()
	cycle := openCycleFor(now)

	tests := []struct {
		name    string
		payload *domain.ForecastPayload
		setup   func(m serviceMocks)
	}{
		{
			name:    "Payload sem produto",
			payload: &domain.ForecastPayload{},
			setup:   func(m serviceMocks) {},
		},
		{
			name:    "Cliente inexistente",
			payload: &domain.ForecastPayload{ProductID: "PRD001", Months: validMonths(cycle)},
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(nil, nil)
			},
		},
		{
			name:    "Cliente inativo",
			payload: &domain.ForecastPayload{ProductID: "PRD001", Months: validMonths(cycle)},
			setup: func(m serviceMocks) {
				inactive := activeCustomer()
				inactive.Active = false
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(inactive, nil)
			},
		},
		{
			name:    "Produto inexistente",
			payload: &domain.ForecastPayload{ProductID: "PRD001", Months: validMonths(cycle)},
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
				m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(nil, nil)
			},
		},
		{
			name:    "Combinação desabilitada na matriz",
			payload: &domain.ForecastPayload{ProductID: "PRD001", Months: validMonths(cycle)},
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
				m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
				entry := activeEntry()
				entry.IsActive = false
				m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(entry, nil)
			},
		},
		{
			name: "Quantidade de meses diferente da janela do ciclo",
			payload: &domain.ForecastPayload{
				ProductID: "PRD001",
				Months:    validMonths(cycle)[:3],
			},
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
				m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
				m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(activeEntry(), nil)
			},
		},
		{
			// Mandar só o corrente e os futuros deixa o período descoberto
			name: "Meses sem os históricos do período",
			payload: &domain.ForecastPayload{
				ProductID: "PRD001",
				Months:    validMonths(cycle)[planning.HistoricalMonths:],
			},
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
				m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
				m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(activeEntry(), nil)
			},
		},
		{
			name: "Quantidade negativa",
			payload: func() *domain.ForecastPayload {
				months := validMonths(cycle)
				months[0].Quantity = -1
				return &domain.ForecastPayload{ProductID: "PRD001", Months: months}
			}(),
			setup: func(m serviceMocks) {
				m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil)
				m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
				m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(activeEntry(), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(ctrl, 7)

			m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
			tt.setup(m)

			_, err := service.Upsert(ctx, "CYC001", "CLI001", 7, tt.payload)

			var forecastErr *ForecastError
			require.ErrorAs(t, err, &forecastErr)
			assert.Equal(t, apiErrors.ErrForecastValidation, forecastErr.Code)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Previsão editável é submetida dentro do prazo", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)
		cycle := openCycleFor(now)

		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(&domain.Forecast{
			ID:      "FCT001",
			CycleID: "CYC001",
			Status:  domain.ForecastStatusDraft,
		}, nil)
		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)
		m.forecastRepo.EXPECT().
			UpdateStatus(ctx, "FCT001", domain.ForecastStatusSubmitted, gomock.Any()).
			Return(nil)

		forecast, err := service.Submit(ctx, "FCT001", 7)

		require.NoError(t, err)
		assert.Equal(t, domain.ForecastStatusSubmitted, forecast.Status)
		require.NotNil(t, forecast.SubmittedAt)
	})

	t.Run("Prazo expirado bloqueia a submissão", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		// Ciclo encerrado há meses: o prazo já passou
		past := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
		cycle := &domain.Cycle{
			ID:        "CYC001",
			Status:    domain.CycleStatusOpen,
			Year:      2020,
			Month:     1,
			StartDate: past,
		}

		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(&domain.Forecast{
			ID:      "FCT001",
			CycleID: "CYC001",
			Status:  domain.ForecastStatusDraft,
		}, nil)
		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil)

		_, err := service.Submit(ctx, "FCT001", 7)

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrForecastDeadline, forecastErr.Code)
	})

	t.Run("Previsão já submetida não pode ser submetida de novo", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(&domain.Forecast{
			ID:      "FCT001",
			CycleID: "CYC001",
			Status:  domain.ForecastStatusSubmitted,
		}, nil)

		_, err := service.Submit(ctx, "FCT001", 7)

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrForecastInvalidState, forecastErr.Code)
	})
}

func TestService_Review(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	submitted := func() *domain.Forecast {
		return &domain.Forecast{
			ID:         "FCT001",
			CycleID:    "CYC001",
			CustomerID: "CLI001",
			ProductID:  "PRD001",
			SalesRepID: 7,
			Status:     domain.ForecastStatusSubmitted,
		}
	}

	t.Run("Aprovação transiciona para APPROVED e notifica", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(submitted(), nil)
		m.forecastRepo.EXPECT().
			UpdateStatus(ctx, "FCT001", domain.ForecastStatusApproved, nil).
			Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		forecast, err := service.Approve(ctx, "FCT001", 99)

		require.NoError(t, err)
		assert.Equal(t, domain.ForecastStatusApproved, forecast.Status)
	})

	t.Run("Rejeição transiciona para REJECTED e devolve ao vendedor", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(submitted(), nil)
		m.forecastRepo.EXPECT().
			UpdateStatus(ctx, "FCT001", domain.ForecastStatusRejected, nil).
			Return(nil)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		forecast, err := service.Reject(ctx, "FCT001", 99, "volumes acima do histórico")

		require.NoError(t, err)
		assert.Equal(t, domain.ForecastStatusRejected, forecast.Status)
		// REJECTED volta a ser editável pelo vendedor
		assert.True(t, forecast.Status.Editable())
	})

	t.Run("Previsão em DRAFT não pode ser revisada", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		draft := submitted()
		draft.Status = domain.ForecastStatusDraft
		m.forecastRepo.EXPECT().GetByID(ctx, "FCT001").Return(draft, nil)

		_, err := service.Approve(ctx, "FCT001", 99)

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrForecastInvalidState, forecastErr.Code)
	})
}

func TestService_BulkUpsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Now().UTC()
	cycle := openCycleFor(now)

	t.Run("Itens são independentes: um inválido não derruba o lote", func(t *testing.T) {
		service, m := newTestService(ctrl, 7)

		good := &domain.ForecastPayload{ProductID: "PRD001", Months: validMonths(cycle)}
		bad := &domain.ForecastPayload{ProductID: "PRD002", Months: validMonths(cycle)[:2]}

		// Validação do lote
		m.cycleRepo.EXPECT().GetByID(ctx, "CYC001").Return(cycle, nil).AnyTimes()

		// Item bom: criado
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD001").Return(nil, nil).Times(2)
		m.customerRepo.EXPECT().GetByID(ctx, "CLI001").Return(activeCustomer(), nil).Times(2)
		m.productRepo.EXPECT().GetByID(ctx, "PRD001").Return(activeProduct(), nil)
		m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD001").Return(activeEntry(), nil)
		m.forecastRepo.EXPECT().Upsert(ctx, gomock.Any()).Return(nil)

		// Item ruim: meses insuficientes, falha na validação
		m.forecastRepo.EXPECT().GetByTriple(ctx, "CYC001", "CLI001", "PRD002").Return(nil, nil)
		m.productRepo.EXPECT().GetByID(ctx, "PRD002").Return(&domain.Product{ID: "PRD002", Active: true}, nil)
		m.matrixRepo.EXPECT().GetEntry(ctx, "CLI001", "PRD002").
			Return(&domain.MatrixEntry{CustomerID: "CLI001", ProductID: "PRD002", IsActive: true}, nil)

		result, err := service.BulkUpsert(ctx, "CYC001", "CLI001", 7, []*domain.ForecastPayload{good, bad})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 0, result.Updated)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Items, 2)
		assert.True(t, result.Items[0].Created)
		assert.NotEmpty(t, result.Items[1].Error)
	})

	t.Run("Lote vazio é rejeitado", func(t *testing.T) {
		service, _ := newTestService(ctrl, 7)

		_, err := service.BulkUpsert(ctx, "CYC001", "CLI001", 7, nil)

		var forecastErr *ForecastError
		require.ErrorAs(t, err, &forecastErr)
		assert.Equal(t, apiErrors.ErrForecastValidation, forecastErr.Code)
	})
}
