package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sop-manager-api/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Type:        domain.ReportTypeSalesSummary,
		PeriodLabel: "2025",
		GeneratedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		Summary: &domain.SalesSummary{
			RecordCount:      2,
			TotalQuantity:    14,
			TotalRevenue:     150,
			TotalCogs:        90,
			TotalGrossProfit: 60,
			GrossProfitPct:   40,
		},
		MonthlyTrends: []*domain.MonthlyAggregate{
			{Year: 2025, Month: 1, Quantity: 10, Revenue: 50, GrossProfit: 20, RecordCount: 1},
			{Year: 2025, Month: 2, Quantity: 4, Revenue: 100, GrossProfit: 40, RecordCount: 1},
		},
		TopCustomers: []*domain.CustomerRevenue{
			{Position: 1, CustomerID: "CLI002", CustomerName: "Cliente B", Quantity: 4, Revenue: 100, GrossProfit: 40},
			{Position: 2, CustomerID: "CLI001", CustomerName: "Cliente A", Quantity: 10, Revenue: 50, GrossProfit: 20},
		},
		TopProducts: []*domain.ProductRevenue{
			{Position: 1, ProductID: "PRD001", ProductName: "Produto A", Quantity: 14, Revenue: 150, GrossProfit: 60},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	renderer := New()

	t.Run("JSON é o formato padrão quando nenhum é informado", func(t *testing.T) {
		data, contentType, err := renderer.Render(sampleReport(), "")

		require.NoError(t, err)
		assert.Equal(t, "application/json", contentType)
		assert.Contains(t, string(data), `"period_label": "2025"`)
	})

	t.Run("CSV traz cabeçalho e todas as seções presentes", func(t *testing.T) {
		data, contentType, err := renderer.Render(sampleReport(), domain.ReportFormatCSV)

		require.NoError(t, err)
		assert.Equal(t, "text/csv", contentType)

		body := string(data)
		assert.Contains(t, body, "report_type,"+domain.ReportTypeSalesSummary)
		assert.Contains(t, body, "period,2025")
		assert.Contains(t, body, "SUMMARY")
		assert.Contains(t, body, "total_revenue,150.00")
		assert.Contains(t, body, "MONTHLY TRENDS")
		assert.Contains(t, body, "2025,01,10.00,50.00,20.00,1")
		assert.Contains(t, body, "TOP CUSTOMERS")
		assert.Contains(t, body, "1,CLI002,Cliente B,4.00,100.00,40.00")
		assert.Contains(t, body, "TOP PRODUCTS")
		assert.NotContains(t, body, "RAW DATA")
		assert.NotContains(t, body, "no_data")
	})

	t.Run("CSV sem dados marca no_data em vez de zerar receita", func(t *testing.T) {
		report := &domain.Report{
			Type:        domain.ReportTypeSalesSummary,
			PeriodLabel: "2030",
			GeneratedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			NoData:      true,
		}

		data, _, err := renderer.Render(report, domain.ReportFormatCSV)

		require.NoError(t, err)
		body := string(data)
		assert.Contains(t, body, "no_data,true")
		assert.NotContains(t, body, "SUMMARY")
	})

	t.Run("CSV inclui os registros brutos quando presentes", func(t *testing.T) {
		report := sampleReport()
		report.RawData = []*domain.SalesHistoryRecord{
			{
				CustomerID: "CLI001", CustomerName: "Cliente A",
				ProductID: "PRD001", ProductName: "Produto A",
				Year: 2025, Month: 1,
				Quantity: 10, UnitPrice: 5, TotalSales: 50, Cogs: 30, GrossProfit: 20, GrossProfitPct: 40,
			},
		}

		data, _, err := renderer.Render(report, domain.ReportFormatCSV)

		require.NoError(t, err)
		body := string(data)
		assert.Contains(t, body, "RAW DATA")
		assert.Contains(t, body, "CLI001,Cliente A,PRD001,Produto A,2025,01,10.00,5.00,50.00,30.00,20.00,40.00")
	})

	t.Run("Formato desconhecido devolve erro", func(t *testing.T) {
		_, _, err := renderer.Render(sampleReport(), "xlsx")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
