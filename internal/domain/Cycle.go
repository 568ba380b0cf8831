// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// CycleStatus representa o estado de um ciclo de planejamento S&OP
type CycleStatus string

const (
	CycleStatusDraft  CycleStatus = "DRAFT"
	CycleStatusOpen   CycleStatus = "OPEN"
	CycleStatusClosed CycleStatus = "CLOSED"
)

// Valid retorna verdadeiro se o status é um dos valores conhecidos
func (s CycleStatus) Valid() bool {
	switch s {
	case CycleStatusDraft, CycleStatusOpen, CycleStatusClosed:
		return true
	}
	return false
}

// Cycle representa uma rodada de planejamento S&OP. A dupla (year, month) é única
// e no máximo um ciclo pode estar OPEN por vez.
type Cycle struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Status             CycleStatus `json:"status"`
	Year               int         `json:"year"`
	Month              int         `json:"month"`
	StartDate          time.Time   `json:"start_date"`
	EndDate            *time.Time  `json:"end_date"`
	PlanningStartMonth string      `json:"planning_start_month"` // Formato yyyy-mm (ex: 2025-01)
	CreatedBy          int         `json:"created_by"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// CreateCycleRequest é o payload de criação de ciclo
type CreateCycleRequest struct {
	Name      string     `json:"name"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CycleCloseSummary é o resultado do fechamento de um ciclo
type CycleCloseSummary struct {
	Cycle                *Cycle  `json:"cycle"`
	ExpectedForecasts    int     `json:"expected_forecasts"`
	SubmittedForecasts   int     `json:"submitted_forecasts"`
	CompletionPercentage float64 `json:"completion_percentage"`
}
