package aggregating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func record(customerID, productID string, year, month int, qty, price, total, cogs float64) *domain.SalesHistoryRecord {
	return &domain.SalesHistoryRecord{
		CustomerID:   customerID,
		CustomerName: "Cliente " + customerID,
		ProductID:    productID,
		ProductName:  "Produto " + productID,
		Year:         year,
		Month:        month,
		Quantity:     qty,
		UnitPrice:    price,
		TotalSales:   total,
		Cogs:         cogs,
		GrossProfit:  total - cogs,
	}
}

func TestService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Resumo acumula os totais e a margem bruta", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return([]*domain.SalesHistoryRecord{
			record("CLI001", "PRD001", 2025, 1, 10, 5, 50, 30),
			record("CLI001", "PRD002", 2025, 1, 20, 2, 40, 20),
			record("CLI002", "PRD001", 2025, 2, 5, 2, 10, 10),
		}, nil)

		summary, err := service.Summary(ctx, &domain.SalesHistoryFilter{})

		require.NoError(t, err)
		assert.Equal(t, 3, summary.RecordCount)
		assert.InDelta(t, 35.0, summary.TotalQuantity, 0.001)
		assert.InDelta(t, 100.0, summary.TotalRevenue, 0.001)
		assert.InDelta(t, 60.0, summary.TotalCogs, 0.001)
		assert.InDelta(t, 40.0, summary.TotalGrossProfit, 0.001)
		assert.InDelta(t, 40.0, summary.GrossProfitPct, 0.001)
		assert.InDelta(t, 5.0, summary.MinQuantity, 0.001)
		assert.InDelta(t, 20.0, summary.MaxQuantity, 0.001)
		assert.InDelta(t, 3.0, summary.AverageUnitPrice, 0.001)
	})

	t.Run("Receita zero não divide: margem fica indefinida em zero", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return([]*domain.SalesHistoryRecord{
			record("CLI001", "PRD001", 2025, 1, 10, 0, 0, 0),
		}, nil)

		summary, err := service.Summary(ctx, &domain.SalesHistoryFilter{})

		require.NoError(t, err)
		assert.Zero(t, summary.GrossProfitPct)
	})

	t.Run("Sem registros devolve resumo zerado com RecordCount zero", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return(nil, nil)

		summary, err := service.Summary(ctx, &domain.SalesHistoryFilter{})

		require.NoError(t, err)
		assert.Zero(t, summary.RecordCount)
		assert.Zero(t, summary.TotalRevenue)
	})

	t.Run("Erro de consulta vira erro de banco", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := service.Summary(ctx, &domain.SalesHistoryFilter{})

		var aggErr *AggregationError
		require.ErrorAs(t, err, &aggErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, aggErr.Code)
	})
}

func TestService_MonthlySeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Série sai em ordem cronológica inclusive na virada de ano", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return([]*domain.SalesHistoryRecord{
			record("CLI001", "PRD001", 2025, 2, 1, 1, 10, 5),
			record("CLI001", "PRD001", 2024, 12, 1, 1, 20, 10),
			record("CLI001", "PRD001", 2025, 1, 1, 1, 30, 15),
			record("CLI002", "PRD001", 2025, 1, 1, 1, 5, 2),
		}, nil)

		series, err := service.MonthlySeries(ctx, &domain.SalesHistoryFilter{})

		require.NoError(t, err)
		require.Len(t, series, 3)

		assert.Equal(t, 2024, series[0].Year)
		assert.Equal(t, 12, series[0].Month)
		assert.Equal(t, 2025, series[1].Year)
		assert.Equal(t, 1, series[1].Month)
		assert.Equal(t, 2025, series[2].Year)
		assert.Equal(t, 2, series[2].Month)

		// Janeiro agrega os dois registros
		assert.InDelta(t, 35.0, series[1].Revenue, 0.001)
		assert.Equal(t, 2, series[1].RecordCount)
	})

	t.Run("Meses sem registro não aparecem na série", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return([]*domain.SalesHistoryRecord{
			record("CLI001", "PRD001", 2025, 1, 1, 1, 10, 5),
			record("CLI001", "PRD001", 2025, 4, 1, 1, 10, 5),
		}, nil)

		series, err := service.MonthlySeries(ctx, &domain.SalesHistoryFilter{})

		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, 1, series[0].Month)
		assert.Equal(t, 4, series[1].Month)
	})
}

func TestService_Rankings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	records := []*domain.SalesHistoryRecord{
		record("CLI001", "PRD001", 2025, 1, 10, 10, 100, 50),
		record("CLI001", "PRD002", 2025, 1, 5, 10, 50, 25),
		record("CLI002", "PRD001", 2025, 1, 30, 10, 300, 100),
		record("CLI003", "PRD003", 2025, 1, 1, 10, 10, 5),
	}

	t.Run("TopCustomers ordena por receita decrescente e respeita o limite", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return(records, nil)

		ranking, err := service.TopCustomers(ctx, &domain.SalesHistoryFilter{}, 2)

		require.NoError(t, err)
		require.Len(t, ranking, 2)
		assert.Equal(t, 1, ranking[0].Position)
		assert.Equal(t, "CLI002", ranking[0].CustomerID)
		assert.InDelta(t, 300.0, ranking[0].Revenue, 0.001)
		assert.Equal(t, 2, ranking[1].Position)
		assert.Equal(t, "CLI001", ranking[1].CustomerID)
		assert.InDelta(t, 150.0, ranking[1].Revenue, 0.001)
	})

	t.Run("TopProducts agrega por produto através de clientes", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return(records, nil)

		ranking, err := service.TopProducts(ctx, &domain.SalesHistoryFilter{}, 0)

		require.NoError(t, err)
		require.Len(t, ranking, 3)
		assert.Equal(t, "PRD001", ranking[0].ProductID)
		assert.InDelta(t, 400.0, ranking[0].Revenue, 0.001)
		assert.InDelta(t, 40.0, ranking[0].Quantity, 0.001)
	})

	t.Run("Empate de receita desempata pelo ID para um ranking estável", func(t *testing.T) {
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
		service := NewService(salesRepo)

		salesRepo.EXPECT().FindByFilter(ctx, gomock.Any()).Return([]*domain.SalesHistoryRecord{
			record("CLI002", "PRD001", 2025, 1, 1, 1, 100, 50),
			record("CLI001", "PRD001", 2025, 1, 1, 1, 100, 50),
		}, nil)

		ranking, err := service.TopCustomers(ctx, &domain.SalesHistoryFilter{}, 10)

		require.NoError(t, err)
		require.Len(t, ranking, 2)
		assert.Equal(t, "CLI001", ranking[0].CustomerID)
		assert.Equal(t, "CLI002", ranking[1].CustomerID)
	})
}
