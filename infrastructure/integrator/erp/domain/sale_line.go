package domain

// SaleLine é uma linha de venda consolidada como o ERP a devolve:
// um agregado mensal por cliente e produto.
type SaleLine struct {
	CustomerCode string  `json:"codigo_cliente"`
	CustomerName string  `json:"nome_cliente"`
	ProductCode  string  `json:"codigo_produto"`
	ProductName  string  `json:"nome_produto"`
	Year         int     `json:"ano"`
	Month        int     `json:"mes"`
	Quantity     float64 `json:"quantidade"`
	UnitPrice    float64 `json:"preco_unitario"`
	TotalSales   float64 `json:"valor_total"`
	Cogs         float64 `json:"custo_mercadoria"`
	SalesRepCode int     `json:"codigo_vendedor"`
}

// GetSalesParams delimita a consulta mensal de vendas no ERP
type GetSalesParams struct {
	Year  int
	Month int
}
