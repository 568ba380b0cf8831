package domain

import "time"

// ForecastStatus representa o estado de uma previsão dentro do ciclo
type ForecastStatus string

const (
	ForecastStatusDraft     ForecastStatus = "DRAFT"
	ForecastStatusSubmitted ForecastStatus = "SUBMITTED"
	ForecastStatusApproved  ForecastStatus = "APPROVED"
	ForecastStatusRejected  ForecastStatus = "REJECTED"
)

// Valid retorna verdadeiro se o status é um dos valores conhecidos
func (s ForecastStatus) Valid() bool {
	switch s {
	case ForecastStatusDraft, ForecastStatusSubmitted, ForecastStatusApproved, ForecastStatusRejected:
		return true
	}
	return false
}

// Editable retorna verdadeiro se a previsão pode ser sobrescrita pelo vendedor
func (s ForecastStatus) Editable() bool {
	return s == ForecastStatusDraft || s == ForecastStatusRejected
}

// MonthlyForecast é a projeção de quantidade e preço de um único mês
type MonthlyForecast struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Forecast é uma linha por tripla (ciclo, cliente, produto), com a lista ordenada
// de projeções mensais cobrindo exatamente os 16 meses do período do ciclo.
type Forecast struct {
	ID          string            `json:"id"`
	CycleID     string            `json:"cycle_id"`
	CustomerID  string            `json:"customer_id"`
	ProductID   string            `json:"product_id"`
	SalesRepID  int               `json:"sales_rep_id"`
	Months      []MonthlyForecast `json:"months"`
	Status      ForecastStatus    `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	SubmittedAt *time.Time        `json:"submitted_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ForecastPayload é o corpo de criação/atualização de uma previsão
type ForecastPayload struct {
	ProductID string            `json:"product_id"`
	Months    []MonthlyForecast `json:"months"`
	Notes     string            `json:"notes,omitempty"`
}

// BulkForecastItemResult é o resultado de um item do lote
type BulkForecastItemResult struct {
	ProductID string `json:"product_id"`
	Created   bool   `json:"created"`
	Updated   bool   `json:"updated"`
	Error     string `json:"error,omitempty"`
}

// BulkForecastResult agrega o resultado de uma criação em lote. Cada item é
// processado de forma independente: um item inválido não derruba o lote inteiro.
type BulkForecastResult struct {
	Created int                      `json:"created"`
	Updated int                      `json:"updated"`
	Failed  int                      `json:"failed"`
	Items   []BulkForecastItemResult `json:"items"`
}
