package domain

// PeriodMonth é um mês do período de planejamento, classificado em relação ao mês
// de referência do ciclo.
type PeriodMonth struct {
	Year         int  `json:"year"`
	Month        int  `json:"month"`
	IsHistorical bool `json:"is_historical"`
	IsCurrent    bool `json:"is_current"`
	IsFuture     bool `json:"is_future"`
}

// PlanningPeriod representa a janela móvel de 16 meses de um ciclo S&OP:
// 4 meses históricos + mês corrente + 11 meses futuros.
type PlanningPeriod struct {
	StartYear  int           `json:"start_year"`
	StartMonth int           `json:"start_month"`
	EndYear    int           `json:"end_year"`
	EndMonth   int           `json:"end_month"`
	Months     []PeriodMonth `json:"months"`
}
