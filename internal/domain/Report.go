package domain

import "time"

// Tipos e formatos de relatório suportados
const (
	ReportTypeSalesSummary = "sales_summary"

	ReportFormatJSON = "json"
	ReportFormatCSV  = "csv"
)

// ReportRequest é a especificação de um relatório: tipo, formato, filtro
// (ano+mês OU intervalo de datas) e flags de seções opcionais.
type ReportRequest struct {
	Type           string     `json:"type"`
	Format         string     `json:"format"`
	Year           *int       `json:"year"`
	Month          *int       `json:"month"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	TopN           int        `json:"top_n"`
	IncludeCharts  bool       `json:"include_charts"`
	IncludeRawData bool       `json:"include_raw_data"`
}

// ReportChart é uma série rotulada pronta para plotagem no portal
type ReportChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Report é o relatório montado em seções, pronto para ser renderizado.
// NoData marca explicitamente a ausência de registros para o filtro pedido:
// um relatório vazio nunca pode ser confundido com um período de receita zero.
type Report struct {
	Type          string                `json:"type"`
	GeneratedAt   time.Time             `json:"generated_at"`
	PeriodLabel   string                `json:"period_label"`
	NoData        bool                  `json:"no_data"`
	Summary       *SalesSummary         `json:"summary,omitempty"`
	MonthlyTrends []*MonthlyAggregate   `json:"monthly_trends,omitempty"`
	TopCustomers  []*CustomerRevenue    `json:"top_customers,omitempty"`
	TopProducts   []*ProductRevenue     `json:"top_products,omitempty"`
	Charts        []*ReportChart        `json:"charts,omitempty"`
	RawData       []*SalesHistoryRecord `json:"raw_data,omitempty"`
}
