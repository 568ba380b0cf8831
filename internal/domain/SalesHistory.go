package domain

import "time"

// SalesHistoryRecord é o agregado histórico de vendas por (cliente, produto, ano, mês).
// Imutável depois de importado; correções passam pelo script de normalização.
type SalesHistoryRecord struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Quantity       float64   `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	TotalSales     float64   `json:"total_sales"`
	Cogs           float64   `json:"cogs"`
	GrossProfit    float64   `json:"gross_profit"`
	GrossProfitPct float64   `json:"gross_profit_pct"`
	SalesRepID     int       `json:"sales_rep_id"`
	ImportedAt     time.Time `json:"imported_at"`
}

// SalesHistoryFilter restringe a consulta do histórico. Ano sozinho, ano+mês ou
// intervalo de datas; cliente/produto opcionais.
type SalesHistoryFilter struct {
	Year       *int       `json:"year"`
	Month      *int       `json:"month"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CustomerID string     `json:"customer_id,omitempty"`
	ProductID  string     `json:"product_id,omitempty"`
}

// SalesSummary são as estatísticas agregadas do histórico para um filtro
type SalesSummary struct {
	RecordCount      int     `json:"record_count"`
	TotalQuantity    float64 `json:"total_quantity"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCogs        float64 `json:"total_cogs"`
	TotalGrossProfit float64 `json:"total_gross_profit"`
	GrossProfitPct   float64 `json:"gross_profit_pct"`
	AverageQuantity  float64 `json:"average_quantity"`
	AverageUnitPrice float64 `json:"average_unit_price"`
	MinQuantity      float64 `json:"min_quantity"`
	MaxQuantity      float64 `json:"max_quantity"`
}

// MonthlyAggregate é um ponto da série temporal mensal
type MonthlyAggregate struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
	RecordCount int     `json:"record_count"`
}

// ProductRevenue é um item do ranking de produtos por receita
type ProductRevenue struct {
	Position    int     `json:"position"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
}

// CustomerRevenue é um item do ranking de clientes por receita
type CustomerRevenue struct {
	Position     int     `json:"position"`
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	Quantity     float64 `json:"quantity"`
	Revenue      float64 `json:"revenue"`
	GrossProfit  float64 `json:"gross_profit"`
}

// SalesImportResult agrega o resultado de uma importação em lote do histórico
type SalesImportResult struct {
	Imported int      `json:"imported"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}
