package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sop-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sop-manager-api/internal/config"
	"github.com/vfg2006/sop-manager-api/internal/domain"
	"github.com/vfg2006/sop-manager-api/internal/usecases/aggregating"
	"github.com/vfg2006/sop-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestReporter(ctrl *gomock.Controller) (Reporter, *mocks.MockSalesHistoryRepository) {
	salesRepo := mocks.NewMockSalesHistoryRepository(ctrl)
	aggregator := aggregating.NewService(salesRepo)
	reporter := NewService(aggregator, config.Report{TimeoutSeconds: 5, DefaultTopN: 10})
	return reporter, salesRepo
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestService_Generate_FilterValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	tests := []struct {
		name string
		req  *domain.ReportRequest
	}{
		{
			name: "Payload vazio",
			req:  nil,
		},
		{
			name: "Tipo desconhecido",
			req:  &domain.ReportRequest{Type: "inventory", Year: intPtr(2025)},
		},
		{
			name: "Sem filtro de período",
			req:  &domain.ReportRequest{},
		},
		{
			name: "Ano e intervalo ao mesmo tempo",
			req: &domain.ReportRequest{
				Year:      intPtr(2025),
				StartDate: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
				EndDate:   timePtr(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
		{
			name: "Mês sem ano",
			req:  &domain.ReportRequest{Month: intPtr(3)},
		},
		{
			name: "Ano fora do intervalo",
			req:  &domain.ReportRequest{Year: intPtr(1950)},
		},
		{
			name: "Mês inválido",
			req:  &domain.ReportRequest{Year: intPtr(2025), Month: intPtr(13)},
		},
		{
			name: "Intervalo sem data de fim",
			req: &domain.ReportRequest{
				StartDate: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
		{
			name: "Intervalo com fim antes do início",
			req: &domain.ReportRequest{
				StartDate: timePtr(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
				EndDate:   timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter, _ := newTestReporter(ctrl)

			_, err := reporter.Generate(ctx, tt.req)

			var reportErr *ReportError
			require.ErrorAs(t, err, &reportErr)
			assert.Equal(t, apiErrors.ErrReportInvalid, reportErr.Code)
		})
	}
}

func TestService_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("Relatório completo com todas as seções", func(t *testing.T) {
		reporter, salesRepo := newTestReporter(ctrl)

		records := []*domain.SalesHistoryRecord{
			{
				CustomerID: "CLI001", CustomerName: "Cliente A",
				ProductID: "PRD001", ProductName: "Produto A",
				Year: 2025, Month: 1,
				Quantity: 10, UnitPrice: 5, TotalSales: 50, Cogs: 30, GrossProfit: 20,
			},
			{
				CustomerID: "CLI002", CustomerName: "Cliente B",
				ProductID: "PRD001", ProductName: "Produto A",
				Year: 2025, Month: 2,
				Quantity: 4, UnitPrice: 25, TotalSales: 100, Cogs: 60, GrossProfit: 40,
			},
		}

		// Summary, MonthlyTrends, TopCustomers e TopProducts consultam o filtro
		salesRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(records, nil).Times(4)

		report, err := reporter.Generate(ctx, &domain.ReportRequest{Year: intPtr(2025)})

		require.NoError(t, err)
		assert.Equal(t, domain.ReportTypeSalesSummary, report.Type)
		assert.Equal(t, "2025", report.PeriodLabel)
		assert.False(t, report.NoData)
		require.NotNil(t, report.Summary)
		assert.Equal(t, 2, report.Summary.RecordCount)
		assert.Len(t, report.MonthlyTrends, 2)
		assert.Len(t, report.TopCustomers, 2)
		assert.Len(t, report.TopProducts, 1)
		assert.Nil(t, report.Charts)
		assert.Nil(t, report.RawData)
	})

	t.Run("IncludeCharts monta as séries rotuladas para o portal", func(t *testing.T) {
		reporter, salesRepo := newTestReporter(ctrl)

		records := []*domain.SalesHistoryRecord{
			{
				CustomerID: "CLI001", CustomerName: "Cliente A",
				ProductID: "PRD001", ProductName: "Produto A",
				Year: 2025, Month: 1,
				Quantity: 10, TotalSales: 50, Cogs: 30, GrossProfit: 20,
			},
			{
				CustomerID: "CLI002", CustomerName: "Cliente B",
				ProductID: "PRD001", ProductName: "Produto A",
				Year: 2025, Month: 2,
				Quantity: 4, TotalSales: 100, Cogs: 60, GrossProfit: 40,
			},
		}

		salesRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(records, nil).Times(4)

		report, err := reporter.Generate(ctx, &domain.ReportRequest{
			Year:          intPtr(2025),
			IncludeCharts: true,
		})

		require.NoError(t, err)
		require.Len(t, report.Charts, 3)

		revenue := report.Charts[0]
		assert.Equal(t, "Receita mensal", revenue.Title)
		assert.Equal(t, []string{"2025-01", "2025-02"}, revenue.Labels)
		assert.Equal(t, []float64{50, 100}, revenue.Values)

		customers := report.Charts[1]
		assert.Equal(t, "Receita por cliente", customers.Title)
		assert.Equal(t, []string{"Cliente B", "Cliente A"}, customers.Labels)
		assert.Equal(t, []float64{100, 50}, customers.Values)

		products := report.Charts[2]
		assert.Equal(t, "Receita por produto", products.Title)
		assert.Equal(t, []float64{150}, products.Values)
	})

	t.Run("IncludeRawData anexa os registros brutos", func(t *testing.T) {
		reporter, salesRepo := newTestReporter(ctrl)

		records := []*domain.SalesHistoryRecord{
			{CustomerID: "CLI001", ProductID: "PRD001", Year: 2025, Month: 3, TotalSales: 10},
		}

		salesRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(records, nil).Times(5)

		report, err := reporter.Generate(ctx, &domain.ReportRequest{
			Year:           intPtr(2025),
			Month:          intPtr(3),
			IncludeRawData: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-03", report.PeriodLabel)
		assert.Len(t, report.RawData, 1)
	})

	t.Run("Filtro sem registros produz NoData sem seções", func(t *testing.T) {
		reporter, salesRepo := newTestReporter(ctrl)

		salesRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(nil, nil)

		report, err := reporter.Generate(ctx, &domain.ReportRequest{Year: intPtr(2030)})

		require.NoError(t, err)
		assert.True(t, report.NoData)
		assert.Nil(t, report.Summary)
		assert.Nil(t, report.MonthlyTrends)
		assert.Nil(t, report.TopCustomers)
		assert.Nil(t, report.TopProducts)
	})

	t.Run("Intervalo de datas produz o rótulo do período", func(t *testing.T) {
		reporter, salesRepo := newTestReporter(ctrl)

		salesRepo.EXPECT().FindByFilter(gomock.Any(), gomock.Any()).Return(nil, nil)

		report, err := reporter.Generate(ctx, &domain.ReportRequest{
			StartDate: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			EndDate:   timePtr(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)),
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-01-01 a 2025-03-31", report.PeriodLabel)
	})
}
