package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erpdomain "github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/domain"
	erpmocks "github.com/vfg2006/sop-manager-api/infrastructure/integrator/erp/mocks"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/importing"
	"go.uber.org/mock/gomock"
)

func TestErpSalesSyncService_getMonthsToProcess(t *testing.T) {
	service := &ErpSalesSyncService{
		config: ErpSalesSyncConfig{MonthLookback: 3},
	}

	months := service.getMonthsToProcess()

	require.Len(t, months, 3)

	// Os meses saem do mais antigo para o mais recente e nunca incluem o
	// mês corrente, que ainda está em aberto no ERP
	now := time.Now()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i, month := range months {
		expected := firstOfCurrent.AddDate(0, i-3, 0)
		assert.Equal(t, expected.Year(), month.Year)
		assert.Equal(t, int(expected.Month()), month.Month)
	}
}

func TestErpSalesSyncService_syncMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	month := erpdomain.GetSalesParams{Year: 2025, Month: 2}

	t.Run("Vendas do ERP são gravadas no histórico canônico", func(t *testing.T) {
		erpService := erpmocks.NewMockErpIntegrator(ctrl)
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)

		service := &ErpSalesSyncService{
			erpService: erpService,
			importer:   importing.NewService(salesRepo),
		}

		erpService.EXPECT().GetMonthlySales(month).Return([]*domain.SalesHistoryRecord{
			{
				CustomerID:  "CLI001",
				ProductID:   "PRD001",
				Year:        2025,
				Month:       2,
				Quantity:    10,
				UnitPrice:   3,
				TotalSales:  30,
				Cogs:        18,
				GrossProfit: 12,
			},
		}, nil)
		salesRepo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)

		service.syncMonth(month)
	})

	t.Run("Erro de consulta no ERP não alcança o histórico", func(t *testing.T) {
		erpService := erpmocks.NewMockErpIntegrator(ctrl)
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)

		service := &ErpSalesSyncService{
			erpService: erpService,
			importer:   importing.NewService(salesRepo),
		}

		erpService.EXPECT().GetMonthlySales(month).Return(nil, assert.AnError)

		service.syncMonth(month)
	})

	t.Run("Mês sem vendas não dispara importação", func(t *testing.T) {
		erpService := erpmocks.NewMockErpIntegrator(ctrl)
		salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)

		service := &ErpSalesSyncService{
			erpService: erpService,
			importer:   importing.NewService(salesRepo),
		}

		erpService.EXPECT().GetMonthlySales(month).Return([]*domain.SalesHistoryRecord{}, nil)

		service.syncMonth(month)
	})
}

func TestErpSalesSyncService_GetStatus(t *testing.T) {
	service := &ErpSalesSyncService{
		config: ErpSalesSyncConfig{
			CronSchedule:  "0 4 2 * *",
			MonthLookback: 2,
			SyncEnabled:   true,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 4 2 * *", status["sync_cron"])
	assert.Equal(t, 2, status["sync_month_lookback"])
}
