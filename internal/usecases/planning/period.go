// Package planning implementa o cálculo do período móvel de 16 meses dos ciclos
// S&OP e o prazo de submissão de previsões.
package planning

import (
	"time"

	"github.com/vfg2006/sop-manager-api/internal/domain"
)

const (
	// HistoricalMonths é a quantidade de meses estritamente anteriores ao mês de referência
	HistoricalMonths = 4
	// FutureMonths é a quantidade de meses posteriores ao mês de referência
	FutureMonths = 11
	// PeriodMonths é o tamanho total da janela (históricos + corrente + futuros)
	PeriodMonths = HistoricalMonths + 1 + FutureMonths

	// DefaultSubmissionLeadTimeDays é a antecedência padrão do prazo de submissão
	// em relação ao fim do ciclo
	DefaultSubmissionLeadTimeDays = 7
)

// CalculatePeriod retorna o período de 16 meses ancorado na data de referência:
// os 4 meses anteriores, o mês corrente e os 11 meses seguintes, com a virada de
// ano tratada pela aritmética de calendário do time.Date.
func CalculatePeriod(reference time.Time) domain.PlanningPeriod {
	refMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC)

	start := refMonth.AddDate(0, -HistoricalMonths, 0)
	end := refMonth.AddDate(0, FutureMonths, 0)

	months := make([]domain.PeriodMonth, 0, PeriodMonths)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		months = append(months, domain.PeriodMonth{
			Year:         cursor.Year(),
			Month:        int(cursor.Month()),
			IsHistorical: cursor.Before(refMonth),
			IsCurrent:    cursor.Equal(refMonth),
			IsFuture:     cursor.After(refMonth),
		})
	}

	return domain.PlanningPeriod{
		StartYear:  start.Year(),
		StartMonth: int(start.Month()),
		EndYear:    end.Year(),
		EndMonth:   int(end.Month()),
		Months:     months,
	}
}

// ForecastMonths retorna os meses que recebem previsão: o corrente e os futuros
func ForecastMonths(period domain.PlanningPeriod) []domain.PeriodMonth {
	months := make([]domain.PeriodMonth, 0, FutureMonths+1)
	for _, m := range period.Months {
		if m.IsCurrent || m.IsFuture {
			months = append(months, m)
		}
	}
	return months
}

// HistoricalMonthsOf retorna os meses históricos do período
func HistoricalMonthsOf(period domain.PlanningPeriod) []domain.PeriodMonth {
	months := make([]domain.PeriodMonth, 0, HistoricalMonths)
	for _, m := range period.Months {
		if m.IsHistorical {
			months = append(months, m)
		}
	}
	return months
}

// IsDateInPeriod verifica se a data cai dentro dos limites do período, inclusive
func IsDateInPeriod(date time.Time, period domain.PlanningPeriod) bool {
	ym := date.Year()*12 + int(date.Month()) - 1
	start := period.StartYear*12 + period.StartMonth - 1
	end := period.EndYear*12 + period.EndMonth - 1
	return ym >= start && ym <= end
}

// EndOfMonth retorna o último dia do mês informado, correto inclusive em
// fevereiro de anos bissextos.
func EndOfMonth(year, month int) time.Time {
	firstOfNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// SubmissionDeadline calcula o prazo de submissão de previsões: leadTimeDays
// antes do fim do ciclo, às 23:59:59 daquele dia. Quando o ciclo não tem data de
// fim, o fim é derivado como o último dia do mês de início.
func SubmissionDeadline(cycleEnd *time.Time, startYear, startMonth, leadTimeDays int) time.Time {
	if leadTimeDays <= 0 {
		leadTimeDays = DefaultSubmissionLeadTimeDays
	}

	end := EndOfMonth(startYear, startMonth)
	if cycleEnd != nil {
		end = *cycleEnd
	}

	deadlineDay := end.AddDate(0, 0, -leadTimeDays)
	return time.Date(deadlineDay.Year(), deadlineDay.Month(), deadlineDay.Day(), 23, 59, 59, 0, time.UTC)
}

// DeadlineFor é um atalho que calcula o prazo de submissão de um ciclo
func DeadlineFor(cycle *domain.Cycle, leadTimeDays int) time.Time {
	return SubmissionDeadline(cycle.EndDate, cycle.Year, cycle.Month, leadTimeDays)
}
